package crawlers

import "testing"

func TestHardenedFlags(t *testing.T) {
	flags := hardenedFlags()

	// 컨테이너 실행에 필수적인 플래그들
	for _, name := range []string{"no-sandbox", "disable-dev-shm-usage", "disable-gpu"} {
		if _, ok := flags[name]; !ok {
			t.Errorf("필수 플래그 누락: %s", name)
		}
	}

	lang, ok := flags["lang"]
	if !ok || len(lang) != 1 || lang[0] != "ko-KR" {
		t.Errorf("lang 플래그 = %v, want [ko-KR]", lang)
	}
}

func TestClosePage_Nil안전(t *testing.T) {
	// nil 페이지로 호출해도 panic 없이 넘어가야 한다
	ClosePage(nil)
}

func TestSessionClose_중복호출안전(t *testing.T) {
	// 브라우저가 붙지 않은 세션도 Close가 안전해야 한다
	s := &Session{closed: true}
	s.Close()
	s.Close()

	var nilSession *Session
	nilSession.Close()
}
