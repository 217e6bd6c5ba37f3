package models

// Viewport 브라우저 화면 크기
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultViewport 기본 화면 크기
// 세로를 크게 잡아야 지연 로딩되는 검색 섹션들이 데스크톱 DOM으로 렌더링된다
var DefaultViewport = Viewport{Width: 1200, Height: 7500}

// CrawlRequest 크롤링 1회 실행 요청
// 생성 후 불변이며 오케스트레이터가 소비한다
type CrawlRequest struct {
	Keyword         string   `json:"keyword"`
	Viewport        Viewport `json:"viewportResolution"`
	CaptureFullPage bool     `json:"captureFullPage"`
}

// NewCrawlRequest 기본 설정으로 크롤링 요청 생성
func NewCrawlRequest(keyword string) CrawlRequest {
	return CrawlRequest{
		Keyword:         keyword,
		Viewport:        DefaultViewport,
		CaptureFullPage: false,
	}
}
