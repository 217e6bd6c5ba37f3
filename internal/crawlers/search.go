package crawlers

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/models"
	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/utils"
)

const searchBaseURL = "https://search.naver.com/search.naver"

// 검색 결과 섹션이 하나라도 렌더링됐는지 확인하는 마커 셀렉터
var sectionMarkers = []string{
	"section.sc_new",
	".fds-collection-root",
	".api_subject_bx",
}

// searchSection 섹션 루트 셀렉터와 카드 카테고리 매핑
// 배열 순서가 곧 페이지 노출 순서 검사 순서다
var searchSections = []struct {
	name     string
	root     string
	category string
}{
	{"일반 수집형", "section.sc_new.sp_ntotal", models.CategoryPosts},
	{"인플루언서 콘텐츠", "section.sc_new.sp_influencer", models.CategoryInfluencer},
	{"인기글(구형)", "section.sc_new.sp_nreview", models.CategoryPosts},
}

// SearchConfig 검색 결과 추출 동작 설정
type SearchConfig struct {
	NavTimeout    time.Duration
	MarkerTimeout time.Duration
	ScrollStep    int
	ScrollDelay   time.Duration
	MaxScrollStep int
	OutputDir     string
}

// SearchOutcome 검색 결과 페이지에서 추출된 전체 구조
type SearchOutcome struct {
	RelatedKeywords    []models.RelatedKeyword
	PopularTopics      []models.PopularTopic
	Posts              []models.ContentCard
	InfluencerContents []models.ContentCard
	// Merged 섹션 노출 순서 그대로 카테고리 태그를 붙여 이어붙인 테이블
	Merged []models.MergedCard
}

// SearchExtractor 키워드 검색 결과 페이지 추출기
type SearchExtractor struct {
	session *Session
	runlog  *utils.RunLog
	cfg     SearchConfig
	now     func() time.Time
}

// NewSearchExtractor 검색 결과 추출기 생성
func NewSearchExtractor(session *Session, runlog *utils.RunLog, cfg SearchConfig) *SearchExtractor {
	if cfg.NavTimeout <= 0 {
		cfg.NavTimeout = 25 * time.Second
	}
	if cfg.MarkerTimeout <= 0 {
		cfg.MarkerTimeout = 5 * time.Second
	}
	if cfg.ScrollStep <= 0 {
		cfg.ScrollStep = 600
	}
	if cfg.ScrollDelay <= 0 {
		cfg.ScrollDelay = 400 * time.Millisecond
	}
	if cfg.MaxScrollStep <= 0 {
		cfg.MaxScrollStep = 60
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "logs"
	}
	return &SearchExtractor{
		session: session,
		runlog:  runlog,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Extract 검색 결과 페이지로 이동해 연관 검색어/인기주제/콘텐츠 카드를 추출한다
// 최초 내비게이션 실패는 전체 실행에 치명적이므로 그대로 전파한다
func (se *SearchExtractor) Extract(req models.CrawlRequest) (*SearchOutcome, error) {
	page, err := se.session.OpenPage()
	if err != nil {
		return nil, err
	}
	defer ClosePage(page)

	searchURL := fmt.Sprintf("%s?query=%s", searchBaseURL, url.QueryEscape(req.Keyword))
	utils.Infof("🔍 검색 결과 페이지 이동: %s", searchURL)
	se.runlog.Writef("검색 페이지 이동: %s", searchURL)

	if err := page.Timeout(se.cfg.NavTimeout).Navigate(searchURL); err != nil {
		return nil, fmt.Errorf("검색 페이지 이동 실패: %w", err)
	}
	if err := page.Timeout(se.cfg.NavTimeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("검색 페이지 로딩 실패: %w", err)
	}

	// 섹션 마커 대기: 늦게 뜨는 섹션에 기회를 주되, 타임아웃은 치명적이지 않다
	markerSel := strings.Join(sectionMarkers, ", ")
	if _, err := page.Timeout(se.cfg.MarkerTimeout).Element(markerSel); err != nil {
		utils.Warnf("결과 섹션 마커 대기 타임아웃, 렌더링된 내용으로 진행: %v", err)
		se.runlog.Writef("섹션 마커 대기 타임아웃 (진행)")
	}

	se.autoScroll(page)
	se.captureScreenshot(page, req)

	outcome := &SearchOutcome{
		RelatedKeywords:    se.extractRelatedKeywords(page),
		PopularTopics:      se.extractPopularTopics(page),
		Posts:              []models.ContentCard{},
		InfluencerContents: []models.ContentCard{},
		Merged:             []models.MergedCard{},
	}

	collectedAt := se.now().Format("2006.01.02 15:04:05")
	for _, section := range searchSections {
		cards := se.extractSectionCards(page, section.root, section.name, collectedAt)
		if len(cards) == 0 {
			utils.Debugf("섹션 카드 없음: %s", section.name)
			continue
		}

		se.runlog.Writef("섹션 %q: 카드 %d건", section.name, len(cards))
		for _, card := range cards {
			switch section.category {
			case models.CategoryInfluencer:
				outcome.InfluencerContents = append(outcome.InfluencerContents, card)
			default:
				outcome.Posts = append(outcome.Posts, card)
			}
			// 노출 순서 그대로 병합 테이블에 누적한다 (절대 재정렬하지 않음)
			outcome.Merged = append(outcome.Merged, models.MergedCard{
				Category:    section.category,
				ContentCard: card,
			})
		}
	}

	utils.Infof("✅ 검색 결과 추출 완료: 카드 %d건, 연관검색어 %d건, 인기주제 %d건",
		len(outcome.Merged), len(outcome.RelatedKeywords), len(outcome.PopularTopics))
	return outcome, nil
}

// autoScroll 고정 스텝으로 바닥까지 스크롤해 지연 로딩 섹션을 마운트시킨다
// 스텝 사이마다 쉬어야 페이지가 새 섹션을 붙일 틈이 생기므로 한 번에 내리지 않는다
func (se *SearchExtractor) autoScroll(page *rod.Page) {
	for i := 0; i < se.cfg.MaxScrollStep; i++ {
		var state struct {
			Bottom bool `json:"bottom"`
		}
		if err := evalJSON(page, jsScrollStep, &state, se.cfg.ScrollStep); err != nil {
			utils.Warnf("스크롤 실패, 현재 위치에서 진행: %v", err)
			return
		}
		if state.Bottom {
			utils.Debugf("페이지 바닥 도달 (스텝 %d)", i+1)
			return
		}
		time.Sleep(se.cfg.ScrollDelay)
	}
	utils.Debugf("최대 스크롤 스텝 도달, 진행")
}

// captureScreenshot 감사/디버깅용 스크린샷 (실패해도 무시)
func (se *SearchExtractor) captureScreenshot(page *rod.Page, req models.CrawlRequest) {
	data, err := page.Screenshot(req.CaptureFullPage, nil)
	if err != nil {
		utils.Warnf("스크린샷 캡처 실패: %v", err)
		se.runlog.Writef("스크린샷 캡처 실패: %v", err)
		return
	}

	name := fmt.Sprintf("naver_screenshot_%s_%s.png",
		sanitizeFileToken(req.Keyword), utils.ArtifactTimestamp(se.now()))
	path := filepath.Join(se.cfg.OutputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		utils.Warnf("스크린샷 저장 실패 [%s]: %v", path, err)
		return
	}
	utils.Debugf("스크린샷 저장: %s", path)
	se.runlog.Writef("스크린샷 저장: %s", path)
}

// extractRelatedKeywords 연관 검색어 추출
func (se *SearchExtractor) extractRelatedKeywords(page *rod.Page) []models.RelatedKeyword {
	var texts []string
	if err := evalJSON(page, jsTextList, &texts, ".related_srch .keyword, .lst_related_srch .tit"); err != nil {
		utils.Warnf("연관 검색어 추출 실패: %v", err)
		return []models.RelatedKeyword{}
	}

	keywords := make([]models.RelatedKeyword, 0, len(texts))
	for _, text := range texts {
		text = utils.CleanText(text)
		if text != "" {
			keywords = append(keywords, models.RelatedKeyword{Keyword: text})
		}
	}
	return keywords
}

// extractPopularTopics 인기주제 추출
func (se *SearchExtractor) extractPopularTopics(page *rod.Page) []models.PopularTopic {
	var texts []string
	if err := evalJSON(page, jsTextList, &texts, ".fds-keyword-text, .keyword_challenge .txt"); err != nil {
		utils.Warnf("인기주제 추출 실패: %v", err)
		return []models.PopularTopic{}
	}

	topics := make([]models.PopularTopic, 0, len(texts))
	for _, text := range texts {
		text = utils.CleanText(text)
		if text != "" {
			topics = append(topics, models.PopularTopic{Topic: text})
		}
	}
	return topics
}

// rawCard 페이지 스크립트가 돌려주는 카드 원본
type rawCard struct {
	Date  string `json:"date"`
	Media string `json:"media"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// rawSection 페이지 스크립트가 돌려주는 섹션 원본
type rawSection struct {
	Section string    `json:"section"`
	Cards   []rawCard `json:"cards"`
}

// extractSectionCards 섹션 루트 1개에서 카드들을 추출해 정규화한다
func (se *SearchExtractor) extractSectionCards(page *rod.Page, rootSel, fallbackName, collectedAt string) []models.ContentCard {
	var raw rawSection
	if err := evalJSON(page, jsSectionCards, &raw, rootSel); err != nil {
		utils.Warnf("섹션 추출 실패 [%s]: %v", fallbackName, err)
		return nil
	}

	sectionName := utils.CleanText(raw.Section)
	if sectionName == "" {
		sectionName = fallbackName
	}

	now := se.now()
	cards := make([]models.ContentCard, 0, len(raw.Cards))
	for _, rc := range raw.Cards {
		card := models.ContentCard{
			Date:        utils.ResolveRelativeDate(utils.CleanText(rc.Date), now),
			Media:       utils.CleanText(rc.Media),
			Title:       utils.CleanText(rc.Title),
			URL:         strings.TrimSpace(rc.URL),
			Section:     sectionName,
			CollectedAt: collectedAt,
			MediaType:   utils.ClassifyMediaType(strings.TrimSpace(rc.URL)),
		}

		// URL이 없거나 자리표시자면 카드 자체를 버린다
		if !card.IsAdmissible() {
			utils.Debugf("URL 없는 카드 제외: %q", card.Title)
			continue
		}

		card.ApplyPrivacyRule()
		cards = append(cards, card)
	}
	return cards
}

// sanitizeFileToken 파일명에 쓸 수 없는 문자를 밑줄로 치환
func sanitizeFileToken(token string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_",
		"?", "_", "\"", "_", "<", "_", ">", "_",
		"|", "_", " ", "_",
	)
	return replacer.Replace(token)
}

// 페이지 컨텍스트에서 실행되는 추출 스크립트 모음
// DOM 의존 로직은 전부 여기에 가둔다
const (
	jsScrollStep = `(step) => {
		window.scrollBy(0, step);
		const bottom = window.scrollY + window.innerHeight >= document.body.scrollHeight - 2;
		return { bottom: bottom };
	}`

	jsTextList = `(sel) => {
		const out = [];
		document.querySelectorAll(sel).forEach((el) => {
			const text = (el.textContent || '').trim();
			if (text) out.push(text);
		});
		return out;
	}`

	// 카드 추출: 제목/URL은 셀렉터 폴백을 순서대로 시도한다
	// 일반 카드 앵커 → 카페 변형 앵커 → 범용 콘텐츠 링크 → 저장 트리거 data 속성(URL 전용)
	jsSectionCards = `(rootSel) => {
		const out = { section: '', cards: [] };
		const root = document.querySelector(rootSel);
		if (!root) return out;

		const heading = root.querySelector('.fds-header-title, .api_title, h2.blind, .title_area');
		out.section = heading ? (heading.textContent || '').trim() : '';

		const pickFrom = (item, sels, attr) => {
			for (const sel of sels) {
				const el = item.querySelector(sel);
				if (!el) continue;
				const v = attr ? el.getAttribute(attr) : (el.textContent || '').trim();
				if (v) return v;
			}
			return '';
		};

		const items = root.querySelectorAll('.fds-ugc-block-mod, li.bx, .view_wrap');
		items.forEach((item) => {
			const title = pickFrom(item, [
				'.fds-comps-right-image-text-title',
				'.title_link',
				'.api_txt_lines.total_tit',
				'a.link_tit',
			]);

			let href = pickFrom(item, ['.fds-comps-right-image-text-title', '.title_link'], 'href');
			if (!href) {
				href = pickFrom(item, ['a.link_tit', 'a[href*="cafe.naver.com"]'], 'href');
			}
			if (!href) {
				href = pickFrom(item, ['a.fds-comps-right-image-content-url', 'a[class*="content"]'], 'href');
			}
			if (!href) {
				// 마지막 수단: 저장(스크랩) 트리거에 심어둔 원문 URL
				const save = item.querySelector('svg[data-url], [data-save-url]');
				if (save) href = save.getAttribute('data-url') || save.getAttribute('data-save-url') || '';
			}

			const media = pickFrom(item, [
				'.fds-info-inner-text',
				'.sub_txt.sub_name',
				'.user_info a.name',
				'.name',
			]);
			const date = pickFrom(item, [
				'.fds-info-sub-inner-text',
				'.sub_time',
				'.sub_txt.sub_time',
				'.date',
			]);

			out.cards.push({ date: date, media: media, title: title, url: href });
		});
		return out;
	}`
)
