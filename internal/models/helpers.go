package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewRunID 크롤링 실행 식별자 생성
func NewRunID() string {
	return uuid.New().String()
}

// ValidateKeyword 검색 키워드 검증
func ValidateKeyword(keyword string) error {
	if strings.TrimSpace(keyword) == "" {
		return fmt.Errorf("검색 키워드가 비어 있습니다")
	}
	return nil
}
