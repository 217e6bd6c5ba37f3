package config

// HTTP 요청 헤더 상수
// 브라우저/엔드포인트 양쪽에서 같은 데스크톱 프로필로 보이도록 한 곳에서 관리한다

const (
	// DesktopUserAgent 데스크톱 크롬 프로필
	// 모바일 UA로 접근하면 검색 결과가 다른 DOM으로 렌더링되므로 고정한다
	DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// AcceptLanguage 한국어 우선
	AcceptLanguage = "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7"
)

// EndpointHeaders 댓글/조회수 JSON 엔드포인트 요청 헤더
// referer에는 반드시 해당 콘텐츠 페이지 URL을 넣는다 (없으면 차단됨)
func EndpointHeaders(referer string) map[string]string {
	return map[string]string{
		"User-Agent":      DesktopUserAgent,
		"Referer":         referer,
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": AcceptLanguage,
	}
}

// PageFetchHeaders 식별자 추출용 단건 HTML 요청 헤더
func PageFetchHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      DesktopUserAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": AcceptLanguage,
	}
}
