package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArtifactTimestamp 산출물 파일명에 쓰는 타임스탬프
// ISO 8601에서 파일명에 쓸 수 없는 콜론만 대시로 바꾼다
func ArtifactTimestamp(t time.Time) string {
	return strings.ReplaceAll(t.Format(time.RFC3339), ":", "-")
}

// RunLog 크롤링 1회 실행의 사람이 읽는 실행 로그
// 실행 내내 줄 단위로 추가 기록되는 산출물이며, 기록 실패는 앱 로그에만 남기고 무시한다
type RunLog struct {
	path string
	file *os.File
}

// NewRunLog 실행 로그 파일 생성
// 파일을 열지 못해도 nil을 돌려주지 않는다 (이후 기록이 조용히 무시될 뿐)
func NewRunLog(dir string, startedAt time.Time) *RunLog {
	if err := os.MkdirAll(dir, 0755); err != nil {
		Warnf("실행 로그 디렉터리 생성 실패: %v", err)
		return &RunLog{}
	}

	path := filepath.Join(dir, fmt.Sprintf("naver_crawler_%s.log", ArtifactTimestamp(startedAt)))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		Warnf("실행 로그 파일 생성 실패 [%s]: %v", path, err)
		return &RunLog{path: path}
	}

	return &RunLog{path: path, file: file}
}

// Path 실행 로그 파일 경로
func (r *RunLog) Path() string {
	return r.path
}

// Write 한 줄 기록
func (r *RunLog) Write(line string) {
	if r == nil || r.file == nil {
		return
	}
	if _, err := fmt.Fprintf(r.file, "[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), line); err != nil {
		Warnf("실행 로그 기록 실패: %v", err)
	}
}

// Writef 포맷 한 줄 기록
func (r *RunLog) Writef(format string, args ...interface{}) {
	r.Write(fmt.Sprintf(format, args...))
}

// Close 실행 로그 파일 닫기 (중복 호출 안전)
func (r *RunLog) Close() {
	if r == nil || r.file == nil {
		return
	}
	if err := r.file.Close(); err != nil {
		Warnf("실행 로그 파일 닫기 실패: %v", err)
	}
	r.file = nil
}
