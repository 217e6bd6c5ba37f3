package crawlers

import (
	"encoding/json"
	"fmt"

	"github.com/go-rod/rod"
)

// evalJSON 페이지 컨텍스트에서 JS를 실행하고 결과를 JSON으로 받아 구조체에 푼다
// DOM을 만지는 로직은 전부 이 경계 안의 JS에 가두고,
// 나머지 파이프라인은 일반 구조체만 다루게 한다
func evalJSON(page *rod.Page, js string, out interface{}, args ...interface{}) error {
	obj, err := page.Eval(js, args...)
	if err != nil {
		return fmt.Errorf("페이지 스크립트 실행 실패: %w", err)
	}

	raw, err := json.Marshal(obj.Value.Val())
	if err != nil {
		return fmt.Errorf("스크립트 결과 직렬화 실패: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("스크립트 결과 해석 실패: %w", err)
	}
	return nil
}
