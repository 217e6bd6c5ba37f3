package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/core"
	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/models"
	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/utils"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// 명령행 인자
var (
	// 전역 인자
	configFile string
	verbose    bool
	logLevel   string

	// 수집 인자
	keyword        string
	viewportWidth  int
	viewportHeight int
	fullPage       bool
	headless       bool
	outputDir      string
)

var rootCmd = &cobra.Command{
	Use:   "navercrawler",
	Short: "네이버 검색 결과 콘텐츠 수집 도구",
	Long: `navercrawler - 네이버 통합검색 결과 수집 도구

키워드 1개의 검색 결과 페이지에서 다음을 수집합니다:
  • 연관 검색어 / 인기주제
  • 일반 게시글 / 인플루언서 콘텐츠 카드
  • 게시글 상세 (제목/본문/조회수)
  • 댓글 (JSON 엔드포인트 우선, DOM 폴백)

사용 예시:
  navercrawler -k "맛집 추천"
  navercrawler -k "캠핑" --full-page -o results

버전: ` + Version + `
빌드 시각: ` + BuildTime,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("설정 로드 실패: %w", err)
		}

		logConfig := config.LogConfig()
		// 명령행 인자가 설정 파일보다 우선
		if logLevel != "" {
			logConfig.Level = logLevel
		}

		if err := utils.InitLogger(logConfig); err != nil {
			return fmt.Errorf("로그 시스템 초기화 실패: %w", err)
		}

		if verbose {
			utils.Info("상세 출력 모드 활성화")
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// 시그널 처리 (Ctrl+C)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		go func() {
			sig := <-sigChan
			utils.Warnf("\n중단 시그널 수신: %v, 종료합니다...", sig)
			// 중단은 실패 종료 코드로 알린다
			// 브라우저 프로세스는 launcher의 leakless 감시자가 함께 정리한다
			os.Exit(1)
		}()

		if keyword == "" {
			return cmd.Help()
		}

		if err := ValidateFlags(keyword, viewportWidth, viewportHeight, logLevel); err != nil {
			return err
		}

		config, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("설정 로드 실패: %w", err)
		}
		config.MergeCLIFlags(viewportWidth, viewportHeight, headless, logLevel, outputDir)

		req := models.NewCrawlRequest(keyword)
		req.Viewport = models.Viewport{
			Width:  config.Crawl.ViewportWidth,
			Height: config.Crawl.ViewportHeight,
		}
		req.CaptureFullPage = fullPage

		crawler := core.NewCrawler(config)
		result, err := crawler.RunCrawl(req)
		if err != nil {
			return fmt.Errorf("크롤링 실패: %w", err)
		}

		// 결과 요약 출력
		fmt.Println("\n==================================================")
		fmt.Println("📊 수집 결과 요약")
		fmt.Println("==================================================")
		fmt.Printf("🔑 키워드: %s\n", result.Keyword)
		fmt.Printf("🆔 실행 ID: %s\n", result.RunID)
		fmt.Printf("✅ 연관 검색어: %d건\n", len(result.RelatedKeywords))
		fmt.Printf("✅ 인기주제: %d건\n", len(result.PopularTopics))
		fmt.Printf("✅ 일반 게시글: %d건\n", len(result.Posts))
		fmt.Printf("✅ 인플루언서 콘텐츠: %d건\n", len(result.InfluencerContents))
		fmt.Printf("📦 병합 테이블: %d건\n", len(result.MergedTable))
		fmt.Println("==================================================")

		utils.Info("✨ 수집 작업 완료!")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 출력",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("navercrawler %s\n", Version)
		fmt.Printf("빌드 시각: %s\n", BuildTime)
	},
}

func init() {
	// 전역 인자
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "설정 파일 경로")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "상세 출력 모드")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "로그 레벨 (trace|debug|info|warn|error)")

	// 수집 인자
	rootCmd.Flags().StringVarP(&keyword, "keyword", "k", "", "검색 키워드 (필수)")
	rootCmd.Flags().IntVar(&viewportWidth, "width", 0, "브라우저 가로 크기 (기본: 설정값)")
	rootCmd.Flags().IntVar(&viewportHeight, "height", 0, "브라우저 세로 크기 (기본: 설정값)")
	rootCmd.Flags().BoolVar(&fullPage, "full-page", false, "전체 페이지 스크린샷 캡처")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "헤드리스 브라우저 모드")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "산출물 출력 디렉터리")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "오류: %v\n", err)
		os.Exit(1)
	}
}
