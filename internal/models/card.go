package models

// PrivateTitleText 비공개 게시글 제목 치환 문구
// media와 title이 동일하게 수집된 카드는 제목이 채널명의 반복일 뿐이므로 비공개로 간주한다
const PrivateTitleText = "비공개 게시글"

// ViewCountNotFound 조회수 요소를 찾지 못했을 때의 값
// 0은 "실제 조회수 0"과 구분되어야 하므로 -1을 사용한다
const ViewCountNotFound = -1

// ContentCard 검색 결과에서 발견된 콘텐츠 카드 1건
// 검색 결과 추출기가 date/media/title/url/section을 채우고
// 상세 해석기가 content/viewCount/comments를 보강한다
type ContentCard struct {
	Date        string    `json:"date"`
	Media       string    `json:"media"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Section     string    `json:"section"`
	CollectedAt string    `json:"collectedAt"`
	MediaType   string    `json:"mediaType"`
	Content     string    `json:"content,omitempty"`
	// viewCount는 omitempty를 쓰지 않는다: 확인된 0과 미측정(-1)이 모두 직렬화되어야 한다
	ViewCount int       `json:"viewCount"`
	Comments  []Comment `json:"comments,omitempty"`
}

// IsAdmissible URL이 비어 있거나 자리표시자 "#"인 카드는 테이블에 넣지 않는다
func (c *ContentCard) IsAdmissible() bool {
	return c.URL != "" && c.URL != "#"
}

// ApplyPrivacyRule media == title 규칙 적용
// 카드 생성 시점과 상세 해석 후 양쪽에서 호출된다 (해석이 충돌을 다시 만들 수 있음)
func (c *ContentCard) ApplyPrivacyRule() {
	if c.Media != "" && c.Media == c.Title {
		c.Title = PrivateTitleText
	}
}

// IsPrivate 비공개 게시글 여부
func (c *ContentCard) IsPrivate() bool {
	return c.Title == PrivateTitleText
}
