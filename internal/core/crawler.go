package core

import (
	"fmt"
	"time"

	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/crawlers"
	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/models"
	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/utils"
)

// Crawler 크롤링 파이프라인 오케스트레이터
// 검색 결과 추출 → 상세 보강 → 산출물 기록의 전체 흐름을 책임진다
type Crawler struct {
	config *Config
}

// NewCrawler 오케스트레이터 생성
func NewCrawler(config *Config) *Crawler {
	return &Crawler{config: config}
}

// RunCrawl 키워드 1개에 대한 크롤링 1회 실행
// 검색 결과 페이지 실패만 치명적이고, 카드 단위 실패는 해당 카드만 건너뛴다
func (c *Crawler) RunCrawl(req models.CrawlRequest) (*models.CrawlResult, error) {
	if err := models.ValidateKeyword(req.Keyword); err != nil {
		return nil, err
	}

	runID := models.NewRunID()
	startedAt := time.Now()

	runlog := utils.NewRunLog(c.config.Output.BaseDir, startedAt)
	defer runlog.Close()

	utils.Infof("🚀 크롤링 시작: 키워드=%q (runId=%s)", req.Keyword, runID)
	runlog.Writef("크롤링 시작: 키워드=%q runId=%s", req.Keyword, runID)

	var outcome *crawlers.SearchOutcome

	sessionCfg := crawlers.SessionConfig{
		Headless:      c.config.Crawl.Headless,
		LaunchTimeout: time.Duration(c.config.Crawl.LaunchTimeout) * time.Second,
		Viewport:      req.Viewport,
	}

	err := crawlers.WithSession(sessionCfg, func(session *crawlers.Session) error {
		extractor := crawlers.NewSearchExtractor(session, runlog, crawlers.SearchConfig{
			NavTimeout:    c.config.NavTimeoutDuration(),
			MarkerTimeout: time.Duration(c.config.Crawl.MarkerTimeout) * time.Second,
			ScrollStep:    c.config.Crawl.ScrollStep,
			ScrollDelay:   time.Duration(c.config.Crawl.ScrollDelayMs) * time.Millisecond,
			MaxScrollStep: c.config.Crawl.MaxScrollSteps,
			OutputDir:     c.config.Output.BaseDir,
		})

		out, err := extractor.Extract(req)
		if err != nil {
			return fmt.Errorf("검색 결과 페이지 크롤링 실패: %w", err)
		}
		outcome = out

		fetcher := crawlers.NewCommentFetcher(runlog)
		resolver := crawlers.NewDetailResolver(session, fetcher, runlog, crawlers.DetailConfig{
			NavTimeout:  c.config.NavTimeoutDuration(),
			WaitTimeout: time.Duration(c.config.Crawl.MarkerTimeout) * time.Second,
		})

		utils.Infof("📥 상세 페이지 수집 시작: %d건", len(outcome.Posts))
		bar := utils.NewProgressBar(len(outcome.Posts), "📥 상세 수집")
		for i := range outcome.Posts {
			// 비공개 글은 상세 페이지를 열어도 얻을 것이 없다
			if outcome.Posts[i].IsPrivate() {
				runlog.Writef("비공개 글 상세 수집 생략: %s", outcome.Posts[i].URL)
				_ = bar.Add(1)
				continue
			}
			outcome.Posts[i] = resolver.Resolve(outcome.Posts[i])
			_ = bar.Add(1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := c.buildResult(runID, req, startedAt, outcome)
	resyncMergedTable(result)
	c.writeResultArtifact(result, startedAt, runlog)

	utils.Infof("✅ 크롤링 완료: 키워드=%q 카드 %d건", req.Keyword, len(result.MergedTable))
	runlog.Writef("크롤링 완료: 카드 %d건", len(result.MergedTable))
	return result, nil
}

// buildResult 추출 결과를 최종 산출물 구조로 조립한다
func (c *Crawler) buildResult(runID string, req models.CrawlRequest, startedAt time.Time, outcome *crawlers.SearchOutcome) *models.CrawlResult {
	return &models.CrawlResult{
		RunID:              runID,
		Keyword:            req.Keyword,
		CollectedAt:        startedAt.Format("2006.01.02 15:04:05"),
		RelatedKeywords:    outcome.RelatedKeywords,
		PopularTopics:      outcome.PopularTopics,
		KeywordRows:        models.PairKeywords(outcome.RelatedKeywords),
		Posts:              outcome.Posts,
		InfluencerContents: outcome.InfluencerContents,
		MergedTable:        outcome.Merged,
	}
}

// resyncMergedTable 상세 보강으로 갱신된 게시글 필드를 병합 테이블에 반영한다
// 병합 테이블의 순서는 절대 바꾸지 않고 같은 URL의 항목만 제자리에서 갱신한다
func resyncMergedTable(result *models.CrawlResult) {
	byURL := make(map[string]*models.ContentCard, len(result.Posts))
	for i := range result.Posts {
		byURL[result.Posts[i].URL] = &result.Posts[i]
	}

	for i := range result.MergedTable {
		if result.MergedTable[i].Category != models.CategoryPosts {
			continue
		}
		post, ok := byURL[result.MergedTable[i].URL]
		if !ok {
			continue
		}
		result.MergedTable[i].Title = post.Title
		result.MergedTable[i].Content = post.Content
		result.MergedTable[i].Comments = post.Comments
		result.MergedTable[i].ViewCount = post.ViewCount
	}
}

// writeResultArtifact 최종 결과 JSON 산출물 기록 (실패해도 실행은 성공으로 취급)
func (c *Crawler) writeResultArtifact(result *models.CrawlResult, startedAt time.Time, runlog *utils.RunLog) {
	filename := fmt.Sprintf("naver_result_%s.json", utils.ArtifactTimestamp(startedAt))
	path, err := utils.SaveJSONArtifact(c.config.Output.BaseDir, filename, result)
	if err != nil {
		utils.Errorf("결과 산출물 저장 실패: %v", err)
		runlog.Writef("결과 산출물 저장 실패: %v", err)
		return
	}
	utils.Infof("💾 결과 저장: %s", path)
	runlog.Writef("결과 저장: %s", path)
}
