package crawlers

import (
	"testing"

	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/models"
)

func TestClassifyPlatform(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want platform
	}{
		{"블로그", "https://blog.naver.com/writer/223456789", platformBlog},
		{"카페 신형 주소", "https://cafe.naver.com/ca-fe/cafes/12345/articles/678", platformCafe},
		{"카페 구형 주소", "https://cafe.naver.com/ArticleRead.nhn?clubid=12345&articleid=678", platformCafe},
		{"외부 사이트", "https://example.com/post/1", platformOther},
		{"잘못된 URL", "://잘못된주소", platformOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyPlatform(tt.url); got != tt.want {
				t.Errorf("classifyPlatform(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestFirstMatch_후보순서우선(t *testing.T) {
	lookup := func(available map[string]string) func(string) string {
		return func(sel string) string { return available[sel] }
	}

	tests := []struct {
		name      string
		available map[string]string
		selectors []string
		want      string
	}{
		{
			"앞쪽 후보가 이긴다",
			map[string]string{".se-title-text": "현행 제목", ".pcol1 .se_title": "구형 제목"},
			blogTitleSelectors,
			"현행 제목",
		},
		{
			"앞쪽이 비면 다음 후보",
			map[string]string{".pcol1 .se_title": "구형 제목"},
			blogTitleSelectors,
			"구형 제목",
		},
		{
			"모두 비면 빈 문자열",
			map[string]string{},
			blogTitleSelectors,
			"",
		},
		{
			"카페 본문: 깊은 컨테이너 우선",
			map[string]string{
				".se-main-container .se-component-content": "본문만",
				".se-main-container":                       "본문+부속요소",
			},
			cafeBodySelectors,
			"본문만",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := firstMatch(lookup(tt.available), tt.selectors...)
			if got != tt.want {
				t.Errorf("firstMatch() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectorCandidates_시도순서(t *testing.T) {
	// 현행 레이아웃 셀렉터가 항상 구형/범용 폴백보다 먼저 와야 한다
	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"블로그 제목", blogTitleSelectors, []string{".se-title-text", ".pcol1 .se_title"}},
		{"블로그 본문", blogBodySelectors, []string{".se-main-container", "#postViewArea"}},
		{"카페 제목", cafeTitleSelectors, []string{"h3.title_text", ".tit-box .b"}},
		{"카페 iframe 본문", cafeFrameBodySelectors, []string{".se-main-container", "#tbody"}},
		{"카페 조회수", cafeViewCountSelectors, []string{".article_info .count", ".count_view"}},
		{"범용 제목", genericTitleSelectors, []string{"h1", "h2", "h3", ".title"}},
		{"범용 본문", genericBodySelectors, []string{"article", "main", ".content"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.got) != len(tt.want) {
				t.Fatalf("후보 수 = %d, want %d", len(tt.got), len(tt.want))
			}
			for i := range tt.got {
				if tt.got[i] != tt.want[i] {
					t.Errorf("후보 %d = %q, want %q", i, tt.got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseViewCount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"숫자만", "150", 149},
		{"접두사 포함", "조회 150", 149},
		{"천 단위 구분자", "조회 1,150", 1149},
		{"요소 없음", "", models.ViewCountNotFound},
		{"숫자 없음", "조회수 비공개", models.ViewCountNotFound},
		{"0도 무조건 뺀다", "0", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseViewCount(tt.raw); got != tt.want {
				t.Errorf("parseViewCount(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
