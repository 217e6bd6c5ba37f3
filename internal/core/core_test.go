package core

import (
	"testing"

	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/models"
)

func TestLoadConfig_기본값(t *testing.T) {
	// 설정 파일 없이 로드하면 기본값으로 동작해야 한다
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() 오류: %v", err)
	}

	if !config.Crawl.Headless {
		t.Error("기본 headless = false, want true")
	}
	if config.Crawl.NavTimeout != 25 {
		t.Errorf("기본 nav_timeout = %d, want 25", config.Crawl.NavTimeout)
	}
	if config.Crawl.MaxScrollSteps != 60 {
		t.Errorf("기본 max_scroll_steps = %d, want 60", config.Crawl.MaxScrollSteps)
	}
	if config.Crawl.ViewportWidth != 1200 || config.Crawl.ViewportHeight != 7500 {
		t.Errorf("기본 뷰포트 = %dx%d, want 1200x7500",
			config.Crawl.ViewportWidth, config.Crawl.ViewportHeight)
	}
	if config.Logging.Level != "info" {
		t.Errorf("기본 로그 레벨 = %q, want info", config.Logging.Level)
	}
	if config.Output.BaseDir != "logs" {
		t.Errorf("기본 출력 디렉터리 = %q, want logs", config.Output.BaseDir)
	}
}

func TestConfig_MergeCLIFlags(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() 오류: %v", err)
	}

	config.MergeCLIFlags(1920, 9000, false, "debug", "results")

	if config.Crawl.ViewportWidth != 1920 || config.Crawl.ViewportHeight != 9000 {
		t.Errorf("뷰포트 병합 실패: %dx%d", config.Crawl.ViewportWidth, config.Crawl.ViewportHeight)
	}
	if config.Crawl.Headless {
		t.Error("headless 병합 실패")
	}
	if config.Logging.Level != "debug" {
		t.Errorf("로그 레벨 병합 실패: %q", config.Logging.Level)
	}
	if config.Output.BaseDir != "results" {
		t.Errorf("출력 디렉터리 병합 실패: %q", config.Output.BaseDir)
	}

	// 0은 "설정값 유지"
	config.MergeCLIFlags(0, 0, false, "", "")
	if config.Crawl.ViewportWidth != 1920 {
		t.Errorf("0 인자가 뷰포트를 덮어썼습니다: %d", config.Crawl.ViewportWidth)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("빈 인자가 로그 레벨을 덮어썼습니다: %q", config.Logging.Level)
	}
}

func TestResyncMergedTable(t *testing.T) {
	result := &models.CrawlResult{
		Posts: []models.ContentCard{
			{
				URL:       "https://blog.naver.com/a/1",
				Title:     "보강된 제목",
				Content:   "보강된 본문",
				ViewCount: 41,
				Comments:  []models.Comment{{ID: 1, Contents: "댓글"}},
			},
		},
		MergedTable: []models.MergedCard{
			{
				Category:    models.CategoryPosts,
				ContentCard: models.ContentCard{URL: "https://blog.naver.com/a/1", Title: "검색 결과 제목"},
			},
			{
				Category:    models.CategoryInfluencer,
				ContentCard: models.ContentCard{URL: "https://blog.naver.com/b/2", Title: "인플루언서 제목"},
			},
		},
	}

	resyncMergedTable(result)

	// 게시글 카테고리 항목은 보강 필드가 반영되어야 한다
	got := result.MergedTable[0]
	if got.Title != "보강된 제목" || got.Content != "보강된 본문" || got.ViewCount != 41 {
		t.Errorf("병합 테이블 갱신 실패: %+v", got)
	}
	if len(got.Comments) != 1 {
		t.Errorf("댓글 반영 실패: %d건", len(got.Comments))
	}

	// 다른 카테고리 항목은 그대로
	if result.MergedTable[1].Title != "인플루언서 제목" {
		t.Errorf("인플루언서 항목이 변경되었습니다: %q", result.MergedTable[1].Title)
	}

	// 순서는 절대 바뀌지 않는다
	if result.MergedTable[0].URL != "https://blog.naver.com/a/1" ||
		result.MergedTable[1].URL != "https://blog.naver.com/b/2" {
		t.Error("병합 테이블 순서가 바뀌었습니다")
	}
}
