package utils

import (
	"testing"
	"time"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"빈 문자열", "", ""},
		{"공백만", "   \n\t  ", ""},
		{"제로폭 문자 제거", "맛\u200b집\ufeff 추천", "맛집 추천"},
		{"NBSP 공백 변환", "서울\u00a0맛집", "서울 맛집"},
		{"줄 단위 트림", "  첫 줄  \n   둘째 줄   ", "첫 줄\n둘째 줄"},
		{"빈 줄 제거", "첫 줄\n\n\n둘째 줄", "첫 줄\n둘째 줄"},
		{"CRLF 정규화", "첫 줄\r\n둘째 줄\r셋째 줄", "첫 줄\n둘째 줄\n셋째 줄"},
		{"정상 입력 유지", "그대로 유지", "그대로 유지"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanText(tt.input)
			if got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanText_멱등성(t *testing.T) {
	inputs := []string{
		"맛\u200b집\n\n  추천  ",
		"서울 카페\r\n목록",
		"이미 정리된 텍스트",
	}
	for _, input := range inputs {
		once := CleanText(input)
		twice := CleanText(once)
		if once != twice {
			t.Errorf("CleanText 멱등성 위반: 1회=%q 2회=%q", once, twice)
		}
	}
}

func TestResolveRelativeDate(t *testing.T) {
	// 기준 시각 고정
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"N시간 전", "5시간 전", "2024.06.15"},
		{"N일 전", "3일 전", "2024.06.12"},
		{"N주 전", "2주 전", "2024.06.01"},
		{"N개월 전", "1개월 전", "2024.05.15"},
		{"공백 변형", "3일  전", "2024.06.12"},
		{"절대 날짜는 그대로", "2024.01.05.", "2024.01.05."},
		{"어제 표현은 그대로", "어제", "어제"},
		{"빈 문자열", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRelativeDate(tt.label, now)
			if got != tt.want {
				t.Errorf("ResolveRelativeDate(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestClassifyMediaType(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"카페 URL", "https://cafe.naver.com/somecafe/123", "카페"},
		{"블로그 URL", "https://blog.naver.com/writer/456", "블로그"},
		{"기타 URL은 블로그 취급", "https://example.com/post", "블로그"},
		{"빈 URL", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyMediaType(tt.url)
			if got != tt.want {
				t.Errorf("ClassifyMediaType(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{"줄바꿈 태그 보존", "첫 줄<br>둘째 줄", "첫 줄\n둘째 줄"},
		{"단락 태그 보존", "<p>첫 단락</p><p>둘째 단락</p>", "첫 단락\n둘째 단락"},
		{"태그 제거", "<span class=\"u_cbox_contents\">본문</span>", "본문"},
		{"엔티티 복원", "A &amp; B &lt;C&gt;", "A & B <C>"},
		{"빈 입력", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HTMLToText(tt.fragment)
			if got != tt.want {
				t.Errorf("HTMLToText(%q) = %q, want %q", tt.fragment, got, tt.want)
			}
		})
	}
}

func TestArtifactTimestamp(t *testing.T) {
	ts := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	got := ArtifactTimestamp(ts)
	want := "2024-06-15T10-30-00Z"
	if got != want {
		t.Errorf("ArtifactTimestamp() = %q, want %q", got, want)
	}
}
