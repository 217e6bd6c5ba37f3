package models

// 카드 카테고리 (검색 결과 페이지의 섹션 구분)
const (
	CategoryPosts      = "posts"
	CategoryInfluencer = "influencer-content"
)

// RelatedKeyword 연관 검색어
type RelatedKeyword struct {
	Keyword string `json:"keyword"`
}

// PopularTopic 인기주제
type PopularTopic struct {
	Topic string `json:"topic"`
}

// KeywordRow 연관 검색어 2열 테이블의 한 행
type KeywordRow struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// MergedCard 카테고리 태그가 붙은 콘텐츠 카드
type MergedCard struct {
	Category string `json:"category"`
	ContentCard
}

// CrawlResult 크롤링 1회 실행의 최종 산출물
// 한 번 기록되면 더 이상 변경되지 않는다
type CrawlResult struct {
	RunID              string           `json:"runId"`
	Keyword            string           `json:"keyword"`
	CollectedAt        string           `json:"collectedAt"`
	RelatedKeywords    []RelatedKeyword `json:"relatedKeywords"`
	PopularTopics      []PopularTopic   `json:"popularTopics"`
	KeywordRows        []KeywordRow     `json:"keywordRows"`
	Posts              []ContentCard    `json:"posts"`
	InfluencerContents []ContentCard    `json:"influencerContents"`
	// MergedTable 모든 카테고리의 카드를 페이지 노출 순서 그대로 이어붙인 테이블
	// 웹 노출 순위 보고에 사용되므로 날짜 등으로 재정렬하면 안 된다
	MergedTable []MergedCard `json:"mergedTable"`
}

// PairKeywords 연관 검색어를 2개씩 묶어 고정 2열 테이블 행으로 변환
// 홀수 개인 경우 마지막 행의 오른쪽 칸은 빈 문자열
func PairKeywords(keywords []RelatedKeyword) []KeywordRow {
	rows := make([]KeywordRow, 0, (len(keywords)+1)/2)
	for i := 0; i < len(keywords); i += 2 {
		row := KeywordRow{Left: keywords[i].Keyword}
		if i+1 < len(keywords) {
			row.Right = keywords[i+1].Keyword
		}
		rows = append(rows, row)
	}
	return rows
}
