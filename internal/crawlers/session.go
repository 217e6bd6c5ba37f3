package crawlers

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/shirou/gopsutil/v3/process"

	appconfig "github.com/shrms0307/Marketers-WorkTool-sub000/internal/config"
	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/models"
	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/utils"
)

// SessionConfig 브라우저 세션 설정
type SessionConfig struct {
	Headless      bool
	LaunchTimeout time.Duration
	Viewport      models.Viewport
}

// Session 브라우저 1개 프로세스와 그 페이지들의 수명을 관리한다
// OS 시그널 처리는 호출자(프로세스 진입점) 몫이며 여기서는 설치하지 않는다
type Session struct {
	browser  *rod.Browser
	viewport models.Viewport
	pid      int
	closed   bool
}

// hardenedFlags 헤드리스 컨테이너에서 안정적으로 뜨는 고정 브라우저 플래그 세트
func hardenedFlags() map[string][]string {
	return map[string][]string{
		"no-sandbox":             nil,
		"disable-setuid-sandbox": nil,
		"disable-gpu":            nil,
		"disable-dev-shm-usage":  nil,
		"disable-extensions":     nil,
		"mute-audio":             nil,
		"lang":                   {"ko-KR"},
	}
}

// LaunchSession 하드닝된 설정으로 브라우저 프로세스 1개를 띄운다
func LaunchSession(cfg SessionConfig) (*Session, error) {
	l := launcher.New().Headless(cfg.Headless)
	for name, values := range hardenedFlags() {
		l = l.Set(flags.Flag(name), values...)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("브라우저 시작 실패: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if cfg.LaunchTimeout > 0 {
		if err := browser.Timeout(cfg.LaunchTimeout).Connect(); err != nil {
			return nil, fmt.Errorf("브라우저 연결 실패: %w", err)
		}
	} else {
		if err := browser.Connect(); err != nil {
			return nil, fmt.Errorf("브라우저 연결 실패: %w", err)
		}
	}

	viewport := cfg.Viewport
	if viewport.Width <= 0 || viewport.Height <= 0 {
		viewport = models.DefaultViewport
	}

	utils.Debugf("브라우저 시작 완료: %s (pid=%d)", controlURL, l.PID())

	return &Session{
		browser:  browser,
		viewport: viewport,
		pid:      l.PID(),
	}, nil
}

// WithSession 세션을 열고 fn 실행 후 모든 경로에서 정확히 한 번 닫는다
func WithSession(cfg SessionConfig, fn func(*Session) error) error {
	session, err := LaunchSession(cfg)
	if err != nil {
		return err
	}
	defer session.Close()
	return fn(session)
}

// OpenPage 데스크톱 UA와 고정 대형 뷰포트를 적용한 새 페이지를 연다
func (s *Session) OpenPage() (*rod.Page, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("새 페이지 생성 실패: %w", err)
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      appconfig.DesktopUserAgent,
		AcceptLanguage: appconfig.AcceptLanguage,
	}); err != nil {
		utils.Warnf("UA 설정 실패: %v", err)
	}

	// 지연 로딩 섹션이 데스크톱 DOM으로 렌더링되도록 세로를 크게 잡는다
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             s.viewport.Width,
		Height:            s.viewport.Height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}); err != nil {
		utils.Warnf("뷰포트 설정 실패: %v", err)
	}

	return page, nil
}

// ClosePage 페이지 닫기
// 멱등: 이미 닫힌 핸들이어도 전체 실행을 죽이지 않는다
func ClosePage(page *rod.Page) {
	if page == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			utils.Warnf("페이지 닫기 중 panic 복구: %v", r)
		}
	}()

	// 이미 닫힌 페이지인지 먼저 확인
	if _, err := page.Timeout(2 * time.Second).Info(); err != nil {
		utils.Debugf("이미 닫힌 페이지, 닫기 생략")
		return
	}

	if err := page.Close(); err != nil {
		utils.Warnf("페이지 닫기 실패: %v", err)
	}
}

// Close 열린 페이지를 모두 닫고 브라우저를 종료한다
// 개별 페이지 닫기 실패는 건너뛰고 계속하며, 브라우저 종료가 실패하면
// 프로세스 핸들을 찾아 강제 종료한다 (떠돌이 브라우저 프로세스는 실제 운영 비용)
// 중복 호출 안전
func (s *Session) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true

	pages, err := s.browser.Pages()
	if err != nil {
		utils.Warnf("페이지 목록 조회 실패: %v", err)
	} else {
		for _, page := range pages {
			ClosePage(page)
		}
	}

	if err := s.browser.Close(); err != nil {
		utils.Warnf("브라우저 닫기 실패: %v", err)
		s.forceKill()
		return
	}

	// OS 프로세스가 완전히 내려갈 시간을 잠깐 준다
	time.Sleep(500 * time.Millisecond)

	if s.pid > 0 {
		if proc, err := process.NewProcess(int32(s.pid)); err == nil {
			if running, _ := proc.IsRunning(); running {
				s.forceKill()
			}
		}
	}

	utils.Debugf("브라우저 세션 종료 완료")
}

// forceKill 브라우저 프로세스 강제 종료 (최후 수단)
func (s *Session) forceKill() {
	if s.pid <= 0 {
		return
	}

	proc, err := process.NewProcess(int32(s.pid))
	if err != nil {
		utils.Debugf("브라우저 프로세스 핸들 조회 실패 (이미 종료된 것으로 간주): %v", err)
		return
	}

	if err := proc.Kill(); err != nil {
		utils.Errorf("브라우저 프로세스 강제 종료 실패 [pid=%d]: %v", s.pid, err)
		return
	}
	utils.Warnf("브라우저 프로세스 강제 종료 [pid=%d]", s.pid)
}
