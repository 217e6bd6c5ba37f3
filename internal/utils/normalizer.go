package utils

import (
	"html"
	"regexp"
	"strings"
	"time"
)

// 텍스트 정규화 도우미 모음
// 추출 경로 전체가 공유하는 순수 함수들로, 실패하지 않는다

var (
	relativeDatePattern = regexp.MustCompile(`^(\d+)(시간|일|주|개월)\s*전$`)
	blankLinePattern    = regexp.MustCompile(`\n{2,}`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
	lineBreakTagPattern = regexp.MustCompile(`(?i)<\s*(br\s*/?|/p|/div|/li)\s*>`)
)

// CleanText 추출 원문을 표준 형태로 정리
// 제로폭 문자 제거, NBSP/탭을 공백으로, 줄 단위 트림, 빈 줄 제거, 연속 개행 축소
// 전함수이며 멱등: CleanText(CleanText(x)) == CleanText(x)
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}

	replacer := strings.NewReplacer(
		"\u200b", "",
		"\u200c", "",
		"\u200d", "",
		"\ufeff", "",
		"\u00a0", " ",
		"\t", " ",
		"\r\n", "\n",
		"\r", "\n",
	)
	cleaned := replacer.Replace(raw)

	lines := strings.Split(cleaned, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}

	result := strings.Join(kept, "\n")
	result = blankLinePattern.ReplaceAllString(result, "\n")
	return strings.TrimSpace(result)
}

// ResolveRelativeDate 한국어 상대 시간 표현을 절대 날짜로 변환
// "3일 전" 형태(시간/일/주/개월)를 now 기준으로 환산해 YYYY.MM.DD를 돌려준다
// 매칭되지 않는 입력은 이미 절대 날짜로 보고 그대로 돌려준다
func ResolveRelativeDate(rawLabel string, now time.Time) string {
	label := strings.TrimSpace(rawLabel)

	m := relativeDatePattern.FindStringSubmatch(label)
	if m == nil {
		return rawLabel
	}

	n := 0
	for _, ch := range m[1] {
		n = n*10 + int(ch-'0')
	}

	var resolved time.Time
	switch m[2] {
	case "시간":
		resolved = now.Add(-time.Duration(n) * time.Hour)
	case "일":
		resolved = now.AddDate(0, 0, -n)
	case "주":
		resolved = now.AddDate(0, 0, -7*n)
	case "개월":
		resolved = now.AddDate(0, -n, 0)
	default:
		return rawLabel
	}

	return resolved.Format("2006.01.02")
}

// ClassifyMediaType URL로 매체 구분 판정
// cafe가 포함되면 "카페", 그 외에는 "블로그", URL이 비어 있으면 ""
func ClassifyMediaType(url string) string {
	if url == "" {
		return ""
	}
	if strings.Contains(url, "cafe") {
		return "카페"
	}
	return "블로그"
}

// HTMLToText HTML 조각을 줄바꿈이 보존된 일반 텍스트로 변환
// DOM 폴백 댓글처럼 원문이 HTML로만 남는 경우에 사용한다
func HTMLToText(fragment string) string {
	if fragment == "" {
		return ""
	}
	text := lineBreakTagPattern.ReplaceAllString(fragment, "\n")
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	return CleanText(text)
}
