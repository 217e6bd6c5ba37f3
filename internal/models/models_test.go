package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestContentCard_IsAdmissible(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"정상 URL", "https://blog.naver.com/writer/123", true},
		{"빈 URL", "", false},
		{"자리표시자 URL", "#", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := ContentCard{Title: "제목", URL: tt.url}
			if got := card.IsAdmissible(); got != tt.want {
				t.Errorf("IsAdmissible() = %v, want %v (url=%q)", got, tt.want, tt.url)
			}
		})
	}
}

func TestContentCard_ApplyPrivacyRule(t *testing.T) {
	tests := []struct {
		name      string
		media     string
		title     string
		wantTitle string
	}{
		{"채널명과 제목이 같으면 비공개", "우리동네카페", "우리동네카페", PrivateTitleText},
		{"제목이 다르면 유지", "우리동네카페", "오늘의 후기", "오늘의 후기"},
		{"media가 비어 있으면 규칙 미적용", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := ContentCard{Media: tt.media, Title: tt.title}
			card.ApplyPrivacyRule()
			if card.Title != tt.wantTitle {
				t.Errorf("ApplyPrivacyRule() title = %q, want %q", card.Title, tt.wantTitle)
			}
		})
	}
}

func TestContentCard_ApplyPrivacyRule_해석후재적용(t *testing.T) {
	// 상세 해석이 제목을 채널명으로 되돌려 놓은 경우에도 규칙이 다시 걸려야 한다
	card := ContentCard{Media: "맛집블로그", Title: "상세 제목"}
	card.ApplyPrivacyRule()
	if card.IsPrivate() {
		t.Fatal("제목이 다른 카드가 비공개로 판정되었습니다")
	}

	card.Title = card.Media
	card.ApplyPrivacyRule()
	if !card.IsPrivate() {
		t.Errorf("재적용 후 비공개 판정 실패: title=%q", card.Title)
	}
}

func TestPairKeywords(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		want     []KeywordRow
	}{
		{
			"짝수 개",
			[]string{"a", "b", "c", "d"},
			[]KeywordRow{{Left: "a", Right: "b"}, {Left: "c", Right: "d"}},
		},
		{
			"홀수 개는 마지막 오른쪽이 빈 칸",
			[]string{"a", "b", "c"},
			[]KeywordRow{{Left: "a", Right: "b"}, {Left: "c", Right: ""}},
		},
		{"빈 목록", []string{}, []KeywordRow{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keywords := make([]RelatedKeyword, 0, len(tt.keywords))
			for _, k := range tt.keywords {
				keywords = append(keywords, RelatedKeyword{Keyword: k})
			}

			got := PairKeywords(keywords)
			if len(got) != len(tt.want) {
				t.Fatalf("PairKeywords() 행 수 = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("행 %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCrawlResult_JSON필드명(t *testing.T) {
	result := CrawlResult{
		RunID:   "run-1",
		Keyword: "맛집",
		MergedTable: []MergedCard{
			{Category: CategoryPosts, ContentCard: ContentCard{Title: "제목", URL: "https://blog.naver.com/a/1"}},
		},
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("직렬화 실패: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("역직렬화 실패: %v", err)
	}

	for _, key := range []string{"runId", "keyword", "mergedTable", "relatedKeywords"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON 출력에 %q 필드가 없습니다", key)
		}
	}

	// 병합 테이블 항목은 카테고리와 카드 필드가 평탄화되어야 한다
	merged := decoded["mergedTable"].([]interface{})[0].(map[string]interface{})
	if merged["category"] != CategoryPosts {
		t.Errorf("category = %v, want %q", merged["category"], CategoryPosts)
	}
	if merged["title"] != "제목" {
		t.Errorf("title = %v, want %q", merged["title"], "제목")
	}
}

func TestContentCard_조회수직렬화(t *testing.T) {
	// 확인된 조회수 0과 미측정(-1)은 JSON에서도 구분되어야 한다
	tests := []struct {
		name      string
		viewCount int
		want      string
	}{
		{"확인된 0", 0, `"viewCount":0`},
		{"미측정", ViewCountNotFound, `"viewCount":-1`},
		{"일반 값", 149, `"viewCount":149`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := ContentCard{URL: "https://cafe.naver.com/a/1", ViewCount: tt.viewCount}
			data, err := json.Marshal(card)
			if err != nil {
				t.Fatalf("직렬화 실패: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("JSON 출력에 %s 가 없습니다: %s", tt.want, data)
			}
		})
	}
}

func TestValidateKeyword(t *testing.T) {
	if err := ValidateKeyword("맛집"); err != nil {
		t.Errorf("정상 키워드가 거부되었습니다: %v", err)
	}
	if err := ValidateKeyword("   "); err == nil {
		t.Error("공백 키워드가 허용되었습니다")
	}
	if err := ValidateKeyword(""); err == nil {
		t.Error("빈 키워드가 허용되었습니다")
	}
}

func TestNewRunID_유일성(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == "" || b == "" {
		t.Fatal("빈 실행 ID가 생성되었습니다")
	}
	if a == b {
		t.Errorf("실행 ID가 중복되었습니다: %s", a)
	}
}
