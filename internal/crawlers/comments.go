package crawlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	appconfig "github.com/shrms0307/Marketers-WorkTool-sub000/internal/config"
	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/models"
	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/utils"
)

const (
	defaultAPIBase = "https://apis.naver.com"

	// 댓글 페이지네이션 상한 (폭주 방지)
	maxCommentPages   = 50
	maxLoadMoreClicks = 30
)

// 페이지 HTML에 심긴 식별자 변수 패턴 (최후 수단 추출용)
var (
	cafePathPattern   = regexp.MustCompile(`/cafes/(\d+)/articles/(\d+)`)
	clubIDVarPattern  = regexp.MustCompile(`g_sClubId\s*=\s*"(\d+)"`)
	articleVarPattern = regexp.MustCompile(`g_sArticleId\s*=\s*"(\d+)"`)
	blogIDVarPattern  = regexp.MustCompile(`blogId["']?\s*[:=]\s*["']([A-Za-z0-9_-]+)["']`)
	logNoVarPattern   = regexp.MustCompile(`logNo["']?\s*[:=]\s*["']?(\d+)`)
	digitsOnlyPattern = regexp.MustCompile(`^\d+$`)

	// 댓글 본문 내 이미지 표식
	imageMarkerPattern = regexp.MustCompile(`(?i)<img[^>]*/?>|\[(?:사진|이미지)\]`)
)

// CommentFetcher 콘텐츠 페이지의 댓글 수집기
// JSON 엔드포인트를 먼저 시도하고, 엔드포인트 경로가 완전히 실패했을 때만
// DOM 페이지네이션("더보기")으로 폴백한다
type CommentFetcher struct {
	client *resty.Client
	runlog *utils.RunLog

	// 테스트에서 주입할 수 있도록 엔드포인트 베이스를 분리해 둔다
	cafeAPIBase string
	blogAPIBase string
}

// NewCommentFetcher 댓글 수집기 생성
func NewCommentFetcher(runlog *utils.RunLog) *CommentFetcher {
	client := resty.New().
		SetTimeout(20 * time.Second).
		SetHeader("User-Agent", appconfig.DesktopUserAgent)

	return &CommentFetcher{
		client:      client,
		runlog:      runlog,
		cafeAPIBase: defaultAPIBase,
		blogAPIBase: defaultAPIBase,
	}
}

// FetchComments 콘텐츠 URL의 댓글 전체를 순서대로 수집한다
// 어떤 경우에도 에러를 던지지 않는다: 완전 실패 시 빈 목록 + 실행 로그 기록
func (cf *CommentFetcher) FetchComments(page *rod.Page, contentURL string) []models.Comment {
	comments, err := cf.fetch(page, contentURL)
	if err != nil {
		utils.Warnf("댓글 수집 불가 [%s]: %v", contentURL, err)
		cf.runlog.Writef("댓글 수집 불가: %s (%v)", contentURL, err)
		return []models.Comment{}
	}
	return comments
}

func (cf *CommentFetcher) fetch(page *rod.Page, contentURL string) ([]models.Comment, error) {
	switch classifyPlatform(contentURL) {
	case platformCafe:
		ids, err := cf.extractCafeIDs(contentURL)
		if err != nil {
			return nil, fmt.Errorf("게시글 식별자 추출 실패: %w", err)
		}
		comments, err := cf.fetchCafeJSON(contentURL, ids)
		if err == nil {
			// 엔드포인트가 성공했으면 (비어 있어도) 그 결과가 우선이다
			return comments, nil
		}
		utils.Warnf("카페 댓글 엔드포인트 실패, DOM 폴백 시도 [%s]: %v", contentURL, err)
		cf.runlog.Writef("카페 댓글 엔드포인트 실패, DOM 폴백: %s", contentURL)
		return cf.fetchFromDOM(page)

	case platformBlog:
		ids, err := cf.extractBlogIDs(contentURL)
		if err != nil {
			return nil, fmt.Errorf("게시글 식별자 추출 실패: %w", err)
		}
		comments, err := cf.fetchBlogJSON(contentURL, ids)
		if err == nil {
			return comments, nil
		}
		utils.Warnf("블로그 댓글 엔드포인트 실패, DOM 폴백 시도 [%s]: %v", contentURL, err)
		cf.runlog.Writef("블로그 댓글 엔드포인트 실패, DOM 폴백: %s", contentURL)
		return cf.fetchFromDOM(page)

	default:
		return nil, fmt.Errorf("댓글을 지원하지 않는 플랫폼: %s", contentURL)
	}
}

// ---------------------------------------------------------------------------
// 식별자 추출

type cafeIDs struct {
	clubID    string
	articleID string
}

type blogIDs struct {
	blogID string
	logNo  string
}

// extractCafeIDs 카페 글 URL에서 clubid/articleid 추출
// 쿼리 파라미터 → 경로 세그먼트 → iframe 파라미터 → HTML 내장 변수 순으로 시도한다
func (cf *CommentFetcher) extractCafeIDs(rawURL string) (cafeIDs, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return cafeIDs{}, fmt.Errorf("URL 해석 실패: %w", err)
	}

	// 1) 쿼리 파라미터 (구형 ArticleRead 주소)
	q := u.Query()
	if club, article := q.Get("clubid"), q.Get("articleid"); club != "" && article != "" {
		return cafeIDs{clubID: club, articleID: article}, nil
	}

	// 2) 경로 세그먼트 (/ca-fe/cafes/{clubid}/articles/{articleid})
	if m := cafePathPattern.FindStringSubmatch(u.Path); m != nil {
		return cafeIDs{clubID: m[1], articleID: m[2]}, nil
	}

	// 이후 전략은 페이지 HTML이 필요하다 (1회만 가져와 공유)
	html, htmlErr := cf.fetchPageHTML(rawURL)

	// 2b) /{카페별칭}/{글번호} 형태: 글번호는 경로에, clubid는 HTML 변수에만 있다
	segments := nonEmptySegments(u.Path)
	if len(segments) == 2 && digitsOnlyPattern.MatchString(segments[1]) && htmlErr == nil {
		if m := clubIDVarPattern.FindStringSubmatch(html); m != nil {
			return cafeIDs{clubID: m[1], articleID: segments[1]}, nil
		}
	}

	if htmlErr != nil {
		return cafeIDs{}, fmt.Errorf("식별자 추출용 페이지 요청 실패: %w", htmlErr)
	}

	// 3) iframe 파라미터 (cafe_main iframe src의 쿼리)
	if src, ok := iframeSrc(html, "iframe#cafe_main"); ok {
		if iq, err := url.Parse(src); err == nil {
			if club, article := iq.Query().Get("clubid"), iq.Query().Get("articleid"); club != "" && article != "" {
				return cafeIDs{clubID: club, articleID: article}, nil
			}
		}
	}

	// 4) HTML 내장 변수 (최후 수단)
	clubMatch := clubIDVarPattern.FindStringSubmatch(html)
	articleMatch := articleVarPattern.FindStringSubmatch(html)
	if clubMatch != nil && articleMatch != nil {
		return cafeIDs{clubID: clubMatch[1], articleID: articleMatch[1]}, nil
	}

	return cafeIDs{}, fmt.Errorf("카페 식별자를 찾을 수 없습니다: %s", rawURL)
}

// extractBlogIDs 블로그 글 URL에서 blogId/logNo 추출
func (cf *CommentFetcher) extractBlogIDs(rawURL string) (blogIDs, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return blogIDs{}, fmt.Errorf("URL 해석 실패: %w", err)
	}

	// 1) 쿼리 파라미터 (PostView 주소)
	q := u.Query()
	if blog, logNo := q.Get("blogId"), q.Get("logNo"); blog != "" && logNo != "" {
		return blogIDs{blogID: blog, logNo: logNo}, nil
	}

	// 2) 경로 세그먼트 (blog.naver.com/{blogId}/{logNo})
	segments := nonEmptySegments(u.Path)
	if len(segments) == 2 && digitsOnlyPattern.MatchString(segments[1]) {
		return blogIDs{blogID: segments[0], logNo: segments[1]}, nil
	}

	html, err := cf.fetchPageHTML(rawURL)
	if err != nil {
		return blogIDs{}, fmt.Errorf("식별자 추출용 페이지 요청 실패: %w", err)
	}

	// 3) iframe 파라미터 (mainFrame iframe src의 쿼리)
	if src, ok := iframeSrc(html, "iframe#mainFrame"); ok {
		if iq, err := url.Parse(src); err == nil {
			if blog, logNo := iq.Query().Get("blogId"), iq.Query().Get("logNo"); blog != "" && logNo != "" {
				return blogIDs{blogID: blog, logNo: logNo}, nil
			}
		}
	}

	// 4) HTML 내장 변수 (최후 수단)
	blogMatch := blogIDVarPattern.FindStringSubmatch(html)
	logMatch := logNoVarPattern.FindStringSubmatch(html)
	if blogMatch != nil && logMatch != nil {
		return blogIDs{blogID: blogMatch[1], logNo: logMatch[1]}, nil
	}

	return blogIDs{}, fmt.Errorf("블로그 식별자를 찾을 수 없습니다: %s", rawURL)
}

// fetchPageHTML 식별자 추출용 단건 HTML 요청
func (cf *CommentFetcher) fetchPageHTML(rawURL string) (string, error) {
	resp, err := cf.client.R().SetHeaders(appconfig.PageFetchHeaders()).Get(rawURL)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode())
	}
	return resp.String(), nil
}

// iframeSrc HTML에서 iframe src 속성을 찾는다
func iframeSrc(html, selector string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}
	src, ok := doc.Find(selector).First().Attr("src")
	if !ok || strings.TrimSpace(src) == "" {
		return "", false
	}
	return strings.TrimSpace(src), true
}

func nonEmptySegments(path string) []string {
	raw := strings.Split(path, "/")
	segments := make([]string, 0, len(raw))
	for _, seg := range raw {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// ---------------------------------------------------------------------------
// JSON 엔드포인트 경로

// cafeCommentItem 카페 댓글 응답 항목
// 외부 응답이므로 모든 필드는 없거나 타입이 다를 수 있다고 가정한다
type cafeCommentItem struct {
	ID         json.Number `json:"id"`
	Content    string      `json:"content"`
	UpdateDate int64       `json:"updateDate"`
	ReplyToID  json.Number `json:"replyToCommentId"`
	IsRef      bool        `json:"isRef"`
	IsDeleted  bool        `json:"isDeleted"`
	IsSecret   bool        `json:"isSecret"`
	Writer     struct {
		ID   string `json:"id"`
		Nick string `json:"nick"`
	} `json:"writer"`
}

type cafeCommentPage struct {
	Result struct {
		Comments struct {
			Items []cafeCommentItem `json:"items"`
		} `json:"comments"`
		HasNext bool `json:"hasNext"`
	} `json:"result"`
}

// fetchCafeJSON 카페 댓글 엔드포인트 페이지네이션
// hasNext가 꺼질 때까지 오래된 순으로 페이지를 넘긴다
func (cf *CommentFetcher) fetchCafeJSON(contentURL string, ids cafeIDs) ([]models.Comment, error) {
	comments := []models.Comment{}

	for pageNo := 1; pageNo <= maxCommentPages; pageNo++ {
		endpoint := fmt.Sprintf("%s/cafe-web/cafe-articleapi/v2/cafes/%s/articles/%s/comments/pages/%d",
			cf.cafeAPIBase, ids.clubID, ids.articleID, pageNo)

		resp, err := cf.client.R().
			SetHeaders(appconfig.EndpointHeaders(contentURL)).
			SetQueryParams(map[string]string{
				"requestFrom": "A",
				"orderBy":     "asc",
			}).
			Get(endpoint)
		if err != nil {
			return nil, fmt.Errorf("카페 댓글 요청 실패 (페이지 %d): %w", pageNo, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("카페 댓글 응답 오류 (페이지 %d): HTTP %d", pageNo, resp.StatusCode())
		}

		var payload cafeCommentPage
		if err := json.Unmarshal(resp.Body(), &payload); err != nil && len(payload.Result.Comments.Items) == 0 {
			return nil, fmt.Errorf("카페 댓글 응답 해석 실패 (페이지 %d): %w", pageNo, err)
		}

		for _, item := range payload.Result.Comments.Items {
			comments = append(comments, mapCafeComment(item))
		}
		if !payload.Result.HasNext {
			break
		}
	}

	return comments, nil
}

// mapCafeComment 카페 응답 항목을 Comment로 변환
func mapCafeComment(item cafeCommentItem) models.Comment {
	contents := utils.CleanText(item.Content)
	if item.IsDeleted || item.IsSecret || contents == "" {
		contents = models.SecretCommentText
	} else {
		contents = normalizeCommentBody(contents)
	}

	id, _ := item.ID.Int64()
	parent, _ := item.ReplyToID.Int64()

	comment := models.Comment{
		ID:       id,
		Contents: contents,
		Writer: models.CommentWriter{
			ID:   item.Writer.ID,
			Nick: utils.CleanText(item.Writer.Nick),
		},
		ParentCommentID: parent,
		IsReply:         parent != 0 || item.IsRef,
	}
	if item.UpdateDate > 0 {
		comment.Date = time.UnixMilli(item.UpdateDate).Format("2006.01.02 15:04")
	}
	return comment
}

// blogCommentItem 블로그 댓글 응답 항목
type blogCommentItem struct {
	CommentNo       json.Number `json:"commentNo"`
	ParentCommentNo json.Number `json:"parentCommentNo"`
	Contents        string      `json:"contents"`
	UserName        string      `json:"userName"`
	ProfileUserID   string      `json:"profileUserId"`
	RegTime         string      `json:"regTime"`
	ReplyLevel      json.Number `json:"replyLevel"`
	Secret          bool        `json:"secret"`
	Deleted         bool        `json:"deleted"`
}

type blogCommentPage struct {
	Result struct {
		ResultList []blogCommentItem `json:"resultList"`
		PageModel  struct {
			TotalPages json.Number `json:"totalPages"`
		} `json:"pageModel"`
	} `json:"result"`
}

// fetchBlogJSON 블로그 댓글 엔드포인트 페이지네이션
// resultList가 비거나 전체 페이지 수를 소진할 때까지 넘긴다
func (cf *CommentFetcher) fetchBlogJSON(contentURL string, ids blogIDs) ([]models.Comment, error) {
	comments := []models.Comment{}
	endpoint := fmt.Sprintf("%s/commentBox/cbox/web_naver_list_jsonp.json", cf.blogAPIBase)

	for pageNo := 1; pageNo <= maxCommentPages; pageNo++ {
		resp, err := cf.client.R().
			SetHeaders(appconfig.EndpointHeaders(contentURL)).
			SetQueryParams(map[string]string{
				"ticket":   "blog",
				"lang":     "ko",
				"objectId": fmt.Sprintf("%s_%s", ids.blogID, ids.logNo),
				"pageSize": "100",
				"sort":     "asc",
				"page":     fmt.Sprintf("%d", pageNo),
			}).
			Get(endpoint)
		if err != nil {
			return nil, fmt.Errorf("블로그 댓글 요청 실패 (페이지 %d): %w", pageNo, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("블로그 댓글 응답 오류 (페이지 %d): HTTP %d", pageNo, resp.StatusCode())
		}

		var payload blogCommentPage
		body := stripJSONP(resp.Body())
		if err := json.Unmarshal(body, &payload); err != nil && len(payload.Result.ResultList) == 0 {
			return nil, fmt.Errorf("블로그 댓글 응답 해석 실패 (페이지 %d): %w", pageNo, err)
		}

		if len(payload.Result.ResultList) == 0 {
			break
		}
		for _, item := range payload.Result.ResultList {
			comments = append(comments, mapBlogComment(item))
		}

		totalPages, _ := payload.Result.PageModel.TotalPages.Int64()
		if totalPages > 0 && int64(pageNo) >= totalPages {
			break
		}
	}

	return comments, nil
}

// mapBlogComment 블로그 응답 항목을 Comment로 변환
// 엔드포인트는 최상위 댓글의 parentCommentNo에 자기 번호를 넣으므로 0으로 정규화한다
func mapBlogComment(item blogCommentItem) models.Comment {
	contents := utils.CleanText(item.Contents)
	if item.Deleted || item.Secret || contents == "" {
		contents = models.SecretCommentText
	} else {
		contents = normalizeCommentBody(contents)
	}

	id, _ := item.CommentNo.Int64()
	parent, _ := item.ParentCommentNo.Int64()
	if parent == id {
		parent = 0
	}
	replyLevel, _ := item.ReplyLevel.Int64()

	return models.Comment{
		ID:       id,
		Date:     utils.CleanText(item.RegTime),
		Contents: contents,
		Writer: models.CommentWriter{
			ID:   item.ProfileUserID,
			Nick: utils.CleanText(item.UserName),
		},
		ParentCommentID: parent,
		IsReply:         parent != 0 || replyLevel > 1,
	}
}

// stripJSONP JSONP 래핑("_callback({...});" 또는 세미콜론 없는 변형)을 벗긴다
// 일반 JSON은 그대로 통과한다
func stripJSONP(body []byte) []byte {
	s := strings.TrimSpace(string(body))
	s = strings.TrimSuffix(s, ";")
	if i := strings.Index(s, "("); i >= 0 && strings.HasSuffix(s, ")") {
		return []byte(s[i+1 : len(s)-1])
	}
	return body
}

// normalizeCommentBody 여러 줄 본문을 탭으로 이어붙이고 이미지 표식을 치환한다
func normalizeCommentBody(contents string) string {
	contents = imageMarkerPattern.ReplaceAllString(contents, models.ImageMarkerText)
	lines := strings.Split(contents, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\t")
}

// ---------------------------------------------------------------------------
// DOM 폴백 경로

// rawDOMComment 페이지 스크립트가 돌려주는 댓글 원본
type rawDOMComment struct {
	Nick        string `json:"nick"`
	ContentHTML string `json:"contentHtml"`
	DateAttr    string `json:"dateAttr"`
	DateText    string `json:"dateText"`
	IsReply     bool   `json:"isReply"`
}

// fetchFromDOM "더보기"를 반복 클릭한 뒤 DOM에서 댓글을 일괄 추출하는 최후 수단
// 엔드포인트와 달리 전달 순서 보장이 없고 부모 관계도 복원하지 못한다 (ParentCommentID는 항상 0)
func (cf *CommentFetcher) fetchFromDOM(page *rod.Page) ([]models.Comment, error) {
	if page == nil {
		return nil, fmt.Errorf("DOM 폴백에 사용할 페이지가 없습니다")
	}

	// 더보기 버튼이 사라질 때까지 클릭
	for i := 0; i < maxLoadMoreClicks; i++ {
		has, btn, err := page.Has(".u_cbox_btn_more, .u_cbox_page_more, .btn_more")
		if err != nil || !has {
			break
		}
		if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
			utils.Debugf("더보기 클릭 실패, 현재까지 로드된 댓글로 진행: %v", err)
			break
		}
		time.Sleep(400 * time.Millisecond)
	}

	var raw []rawDOMComment
	if err := evalJSON(page, jsExtractComments, &raw); err != nil {
		return nil, fmt.Errorf("DOM 댓글 추출 실패: %w", err)
	}

	comments := make([]models.Comment, 0, len(raw))
	for _, rc := range raw {
		contents := utils.HTMLToText(rc.ContentHTML)
		if contents == "" {
			contents = models.SecretCommentText
		} else {
			contents = normalizeCommentBody(contents)
		}

		// 기계가 읽는 날짜 속성을 표시 텍스트보다 우선한다
		date := strings.TrimSpace(rc.DateAttr)
		if date == "" {
			date = utils.CleanText(rc.DateText)
		}

		comments = append(comments, models.Comment{
			Date:            date,
			Contents:        contents,
			Writer:          models.CommentWriter{Nick: utils.CleanText(rc.Nick)},
			ParentCommentID: 0,
			IsReply:         rc.IsReply,
		})
	}
	return comments, nil
}

// 댓글 DOM 일괄 추출 스크립트
const jsExtractComments = `() => {
	const out = [];
	document.querySelectorAll('.u_cbox_comment, .comment_item, .CommentItem').forEach((node) => {
		const q = (sel) => node.querySelector(sel);
		const nickEl = q('.u_cbox_nick') || q('.comment_nickname') || q('.nick');
		const contentEl = q('.u_cbox_contents') || q('.comment_text_view') || q('.text_comment');
		const timeEl = q('.u_cbox_date') || q('.comment_info_date') || q('time');
		out.push({
			nick: nickEl ? (nickEl.textContent || '') : '',
			contentHtml: contentEl ? contentEl.innerHTML : '',
			dateAttr: timeEl ? (timeEl.getAttribute('data-value') || timeEl.getAttribute('datetime') || '') : '',
			dateText: timeEl ? (timeEl.textContent || '') : '',
			isReply: node.classList.contains('u_cbox_reply_item') || !!node.closest('.u_cbox_reply_area'),
		});
	});
	return out;
}`
