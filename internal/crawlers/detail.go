package crawlers

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/models"
	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/utils"
)

// platform 콘텐츠 페이지 플랫폼 분류
type platform int

const (
	platformOther platform = iota
	platformBlog
	platformCafe
)

// classifyPlatform 최종 URL의 호스트로 플랫폼을 분류한다
func classifyPlatform(rawURL string) platform {
	u, err := url.Parse(rawURL)
	if err != nil {
		return platformOther
	}
	host := strings.ToLower(u.Host)
	switch {
	case strings.Contains(host, "blog.naver.com"):
		return platformBlog
	case strings.Contains(host, "cafe.naver.com"):
		return platformCafe
	default:
		return platformOther
	}
}

// 플랫폼별 셀렉터 후보 목록
// 배열 순서가 곧 시도 순서다: 앞이 현행 레이아웃, 뒤가 구형/범용 폴백
var (
	blogTitleSelectors = []string{".se-title-text", ".pcol1 .se_title"}
	blogBodySelectors  = []string{".se-main-container", "#postViewArea"}

	cafeTitleSelectors     = []string{"h3.title_text", ".tit-box .b"}
	cafeBodySelectors      = []string{".se-main-container .se-component-content", ".se-main-container"}
	cafeFrameBodySelectors = []string{".se-main-container", "#tbody"}
	cafeViewCountSelectors = []string{".article_info .count", ".count_view"}

	genericTitleSelectors = []string{"h1", "h2", "h3", ".title"}
	genericBodySelectors  = []string{"article", "main", ".content"}
)

// DetailConfig 상세 페이지 해석 동작 설정
type DetailConfig struct {
	NavTimeout  time.Duration
	WaitTimeout time.Duration
}

// DetailResolver 콘텐츠 카드의 상세 페이지 해석기
// 카드 1건마다 새 페이지를 열고 닫으며, 어떤 실패도 배치 전체로 전파하지 않는다
type DetailResolver struct {
	session  *Session
	comments *CommentFetcher
	runlog   *utils.RunLog
	cfg      DetailConfig
}

// NewDetailResolver 상세 해석기 생성
func NewDetailResolver(session *Session, comments *CommentFetcher, runlog *utils.RunLog, cfg DetailConfig) *DetailResolver {
	if cfg.NavTimeout <= 0 {
		cfg.NavTimeout = 25 * time.Second
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = 5 * time.Second
	}
	return &DetailResolver{
		session:  session,
		comments: comments,
		runlog:   runlog,
		cfg:      cfg,
	}
}

// Resolve 카드의 상세 페이지를 열어 제목/본문/댓글/조회수를 보강한다
// 실패 시 검색 결과에서 얻은 기존 필드를 그대로 유지한 카드를 돌려준다
func (dr *DetailResolver) Resolve(card models.ContentCard) models.ContentCard {
	resolved := card

	page, err := dr.session.OpenPage()
	if err != nil {
		utils.Errorf("상세 페이지 생성 실패 [%s]: %v", card.URL, err)
		dr.runlog.Writef("상세 해석 실패(페이지 생성): %s", card.URL)
		return card
	}
	defer ClosePage(page)

	if err := page.Timeout(dr.cfg.NavTimeout).Navigate(card.URL); err != nil {
		utils.Warnf("상세 페이지 이동 실패 [%s]: %v", card.URL, err)
		dr.runlog.Writef("상세 해석 실패(이동): %s (%v)", card.URL, err)
		return card
	}
	if err := page.Timeout(dr.cfg.NavTimeout).WaitLoad(); err != nil {
		utils.Warnf("상세 페이지 로딩 실패 [%s]: %v", card.URL, err)
		dr.runlog.Writef("상세 해석 실패(로딩): %s (%v)", card.URL, err)
		return card
	}

	// 리다이렉트 이후의 최종 URL 기준으로 플랫폼을 판정한다
	finalURL := card.URL
	if info, err := page.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}

	switch classifyPlatform(finalURL) {
	case platformBlog:
		dr.resolveBlog(page, finalURL, &resolved)
	case platformCafe:
		dr.resolveCafe(page, finalURL, &resolved)
	default:
		dr.resolveGeneric(page, &resolved)
	}

	// 해석이 제목을 채널명으로 되돌려 놓았을 수 있으므로 규칙을 다시 적용한다
	resolved.ApplyPrivacyRule()

	utils.Debugf("상세 해석 완료 [%s]: 제목=%q 본문=%d자 댓글=%d건",
		resolved.URL, resolved.Title, len(resolved.Content), len(resolved.Comments))
	return resolved
}

// resolveBlog 블로그 글 해석
// 구형 레이아웃은 본문이 mainFrame iframe 안에 있고, 현행 레이아웃은 최상위 문서에 있다
func (dr *DetailResolver) resolveBlog(page *rod.Page, finalURL string, card *models.ContentCard) {
	doc := page
	if has, el, err := page.Has("iframe#mainFrame"); err == nil && has {
		if frame, err := el.Frame(); err == nil {
			if err := frame.Timeout(dr.cfg.WaitTimeout).WaitLoad(); err != nil {
				utils.Debugf("블로그 iframe 로딩 대기 타임아웃, 현재 상태로 진행: %v", err)
			}
			doc = frame
		} else {
			utils.Warnf("블로그 iframe 접근 실패, 최상위 문서로 진행: %v", err)
		}
	}

	title := elementText(doc, blogTitleSelectors...)
	if title == "" {
		title = metaTitle(page)
	}
	if title == "" {
		title = pageTitle(page)
	}
	if title != "" {
		card.Title = title
	}

	body := elementText(doc, blogBodySelectors...)
	if body != "" {
		card.Content = body
	}

	card.Comments = dr.comments.FetchComments(doc, finalURL)
}

// resolveCafe 카페 글 해석
func (dr *DetailResolver) resolveCafe(page *rod.Page, finalURL string, card *models.ContentCard) {
	title := metaTitle(page)
	if title == "" {
		title = elementText(page, cafeTitleSelectors...)
	}
	if title == "" {
		// <title>은 뒤에 사이트명이 붙는다
		title = utils.CleanText(strings.TrimSuffix(pageTitle(page), " : 네이버 카페"))
	}
	if title != "" {
		card.Title = title
	}

	body := elementText(page, cafeBodySelectors...)
	if body == "" {
		// 구형 레이아웃: 본문이 cafe_main iframe 안에 있다
		if has, el, err := page.Has("iframe#cafe_main"); err == nil && has {
			if frame, err := el.Frame(); err == nil {
				body = elementText(frame, cafeFrameBodySelectors...)
			}
		}
	}
	if body != "" {
		card.Content = body
	}

	card.ViewCount = parseViewCount(elementText(page, cafeViewCountSelectors...))

	card.Comments = dr.comments.FetchComments(page, finalURL)
}

// resolveGeneric 알려지지 않은 플랫폼 해석 (댓글은 지원 플랫폼에만 정의됨)
func (dr *DetailResolver) resolveGeneric(page *rod.Page, card *models.ContentCard) {
	title := metaTitle(page)
	if title == "" {
		title = pageTitle(page)
	}
	if title == "" {
		title = elementText(page, genericTitleSelectors...)
	}
	if title != "" {
		card.Title = title
	}

	body := elementText(page, genericBodySelectors...)
	if body != "" {
		card.Content = body
	}
}

var viewCountDigits = regexp.MustCompile(`\d[\d,]*`)

// parseViewCount 조회수 문자열에서 숫자를 뽑아 1을 뺀다
// 카페는 현재 요청 자신까지 세서 표시값이 1 크다
// 원본 값이 "0"이나 "1"이어도 무조건 빼는 기존 동작을 유지한다 (원 구현을 따름, 버그 가능성 있음)
// 요소를 찾지 못하면 -1 (0과 구분하기 위해)
func parseViewCount(raw string) int {
	m := viewCountDigits.FindString(raw)
	if m == "" {
		return models.ViewCountNotFound
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return models.ViewCountNotFound
	}
	return n - 1
}

// firstMatch 셀렉터 후보를 순서대로 조회해 첫 번째 비어 있지 않은 값을 돌려준다
// 앞쪽 후보가 있으면 뒤쪽 후보는 조회 결과와 무관하게 무시된다
func firstMatch(lookup func(sel string) string, selectors ...string) string {
	for _, sel := range selectors {
		if v := lookup(sel); v != "" {
			return v
		}
	}
	return ""
}

// elementText 셀렉터 후보를 순서대로 시도해 첫 번째로 얻은 비어 있지 않은 텍스트를 돌려준다
// 셀렉터가 하나도 맞지 않으면 빈 문자열 (없는 것은 "해당 필드 없음"일 뿐 오류가 아니다)
func elementText(page *rod.Page, selectors ...string) string {
	return firstMatch(func(sel string) string {
		has, el, err := page.Has(sel)
		if err != nil || !has {
			return ""
		}
		text, err := el.Text()
		if err != nil {
			return ""
		}
		return utils.CleanText(text)
	}, selectors...)
}

// metaTitle 소셜 미리보기 메타 제목
func metaTitle(page *rod.Page) string {
	has, el, err := page.Has(`meta[property="og:title"]`)
	if err != nil || !has {
		return ""
	}
	attr, err := el.Attribute("content")
	if err != nil || attr == nil {
		return ""
	}
	return utils.CleanText(*attr)
}

// pageTitle 문서 <title> 태그 값
func pageTitle(page *rod.Page) string {
	info, err := page.Info()
	if err != nil {
		return ""
	}
	return utils.CleanText(info.Title)
}
