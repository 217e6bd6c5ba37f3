package utils

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger 전역 로거
var Logger zerolog.Logger

// LogConfig 로그 설정
type LogConfig struct {
	Level      string // 로그 레벨: trace, debug, info, warn, error
	LogDir     string // 로그 디렉터리
	MaxSize    int    // 로그 파일 1개 최대 크기(MB)
	MaxBackups int    // 보관할 이전 로그 파일 수
	MaxAge     int    // 보관 일수
	Compress   bool   // 이전 로그 압축 여부
}

// DefaultLogConfig 기본 로그 설정
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		LogDir:     "logs",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

// InitLogger 로그 시스템 초기화
// 콘솔(컬러) + 회전 로그 파일로 동시에 출력한다
func InitLogger(config LogConfig) error {
	if err := os.MkdirAll(config.LogDir, 0755); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	mainLogFile := &lumberjack.Logger{
		Filename:   filepath.Join(config.LogDir, "naver_crawler_app.log"),
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    false,
	}

	multiWriter := io.MultiWriter(consoleWriter, mainLogFile)

	Logger = zerolog.New(multiWriter).
		With().
		Timestamp().
		Logger()

	log.Logger = Logger

	Logger.Info().
		Str("level", config.Level).
		Str("log_dir", config.LogDir).
		Msg("로그 시스템 초기화 완료")

	return nil
}

// Info 정보 로그
func Info(msg string) {
	Logger.Info().Msg(msg)
}

// Infof 포맷 정보 로그
func Infof(format string, args ...interface{}) {
	Logger.Info().Msgf(format, args...)
}

// Error 오류 로그
func Error(err error, msg string) {
	Logger.Error().Err(err).Msg(msg)
}

// Errorf 포맷 오류 로그
func Errorf(format string, args ...interface{}) {
	Logger.Error().Msgf(format, args...)
}

// Warn 경고 로그
func Warn(msg string) {
	Logger.Warn().Msg(msg)
}

// Warnf 포맷 경고 로그
func Warnf(format string, args ...interface{}) {
	Logger.Warn().Msgf(format, args...)
}

// Debug 디버그 로그
func Debug(msg string) {
	Logger.Debug().Msg(msg)
}

// Debugf 포맷 디버그 로그
func Debugf(format string, args ...interface{}) {
	Logger.Debug().Msgf(format, args...)
}
