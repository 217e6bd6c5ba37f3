package utils

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestRunLog_기록과닫기(t *testing.T) {
	dir := t.TempDir()
	startedAt := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

	runlog := NewRunLog(dir, startedAt)
	if runlog.Path() == "" {
		t.Fatal("실행 로그 경로가 비어 있습니다")
	}
	if !strings.Contains(runlog.Path(), "naver_crawler_2024-06-15T10-30-00Z.log") {
		t.Errorf("실행 로그 파일명이 규칙과 다릅니다: %s", runlog.Path())
	}

	runlog.Write("첫 줄")
	runlog.Writef("카드 %d건", 3)
	runlog.Close()
	runlog.Close() // 중복 호출 안전

	data, err := os.ReadFile(runlog.Path())
	if err != nil {
		t.Fatalf("실행 로그 읽기 실패: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "첫 줄") || !strings.Contains(content, "카드 3건") {
		t.Errorf("기록된 내용이 없습니다: %q", content)
	}
	// 각 줄에 타임스탬프 접두사
	if !strings.Contains(content, "] 첫 줄\n") {
		t.Errorf("타임스탬프 접두사 형식이 다릅니다: %q", content)
	}
}

func TestRunLog_Nil안전(t *testing.T) {
	var runlog *RunLog
	runlog.Write("무시")
	runlog.Writef("무시 %d", 1)
	runlog.Close()
}

func TestSaveJSONArtifact(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveJSONArtifact(dir, "result.json", map[string]string{"keyword": "맛집"})
	if err != nil {
		t.Fatalf("SaveJSONArtifact() 오류: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("산출물 읽기 실패: %v", err)
	}
	if !strings.Contains(string(data), "맛집") {
		t.Errorf("산출물 내용이 올바르지 않습니다: %s", data)
	}
}
