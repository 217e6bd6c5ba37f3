package main

import (
	"fmt"

	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/models"
)

// ValidateFlags 명령행 인자 검증
func ValidateFlags(keyword string, width int, height int, logLevel string) error {
	// 키워드
	if err := models.ValidateKeyword(keyword); err != nil {
		return fmt.Errorf("유효하지 않은 키워드: %w", err)
	}

	// 뷰포트 (0은 "설정값 사용")
	if width < 0 || width > 7680 {
		return fmt.Errorf("가로 크기는 0-7680 사이여야 합니다, 현재 값: %d", width)
	}
	if height < 0 || height > 30000 {
		return fmt.Errorf("세로 크기는 0-30000 사이여야 합니다, 현재 값: %d", height)
	}

	// 로그 레벨
	if logLevel != "" {
		validLevels := map[string]bool{
			"trace": true,
			"debug": true,
			"info":  true,
			"warn":  true,
			"error": true,
		}
		if !validLevels[logLevel] {
			return fmt.Errorf("유효하지 않은 로그 레벨: %s (유효값: trace, debug, info, warn, error)", logLevel)
		}
	}

	return nil
}
