package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/shrms0307/Marketers-WorkTool-sub000/internal/utils"
)

// Config 애플리케이션 설정
type Config struct {
	Crawl   CrawlSettings `mapstructure:"crawl"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// CrawlSettings 수집 동작 설정
type CrawlSettings struct {
	Headless       bool `mapstructure:"headless"`
	LaunchTimeout  int  `mapstructure:"launch_timeout"`
	NavTimeout     int  `mapstructure:"nav_timeout"`
	MarkerTimeout  int  `mapstructure:"marker_timeout"`
	ScrollStep     int  `mapstructure:"scroll_step"`
	ScrollDelayMs  int  `mapstructure:"scroll_delay_ms"`
	MaxScrollSteps int  `mapstructure:"max_scroll_steps"`
	ViewportWidth  int  `mapstructure:"viewport_width"`
	ViewportHeight int  `mapstructure:"viewport_height"`
}

// LoggingConfig 로그 설정
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	LogDir   string         `mapstructure:"log_dir"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig 로그 파일 회전 설정
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

// OutputConfig 산출물 출력 설정
type OutputConfig struct {
	BaseDir string `mapstructure:"base_dir"`
}

// LoadConfig 설정 파일 로드
// 파일이 없으면 기본값으로 동작한다
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath("./configs")
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".navercrawler"))
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("설정 파일 읽기 실패: %w", err)
		}
		// 설정 파일이 없으면 기본값 사용
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("설정 파일 해석 실패: %w", err)
	}

	return &config, nil
}

// setDefaults 기본 설정값
func setDefaults(v *viper.Viper) {
	// 수집 기본값
	v.SetDefault("crawl.headless", true)
	v.SetDefault("crawl.launch_timeout", 20)
	v.SetDefault("crawl.nav_timeout", 25)
	v.SetDefault("crawl.marker_timeout", 5)
	v.SetDefault("crawl.scroll_step", 600)
	v.SetDefault("crawl.scroll_delay_ms", 400)
	v.SetDefault("crawl.max_scroll_steps", 60)
	v.SetDefault("crawl.viewport_width", 1200)
	v.SetDefault("crawl.viewport_height", 7500)

	// 로그 기본값
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.log_dir", "logs")
	v.SetDefault("logging.rotation.max_size", 10)
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.max_age", 28)
	v.SetDefault("logging.rotation.compress", true)

	// 출력 기본값
	v.SetDefault("output.base_dir", "logs")
}

// LogConfig 로그 초기화용 설정으로 변환
func (c *Config) LogConfig() utils.LogConfig {
	return utils.LogConfig{
		Level:      c.Logging.Level,
		LogDir:     c.Logging.LogDir,
		MaxSize:    c.Logging.Rotation.MaxSize,
		MaxBackups: c.Logging.Rotation.MaxBackups,
		MaxAge:     c.Logging.Rotation.MaxAge,
		Compress:   c.Logging.Rotation.Compress,
	}
}

// NavTimeoutDuration 페이지 이동 타임아웃
func (c *Config) NavTimeoutDuration() time.Duration {
	return time.Duration(c.Crawl.NavTimeout) * time.Second
}

// MergeCLIFlags 명령행 인자를 설정에 병합
// 명령행 인자가 설정 파일보다 우선한다
func (c *Config) MergeCLIFlags(
	width int,
	height int,
	headless bool,
	logLevel string,
	outputDir string,
) {
	if width > 0 {
		c.Crawl.ViewportWidth = width
	}
	if height > 0 {
		c.Crawl.ViewportHeight = height
	}
	c.Crawl.Headless = headless
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if outputDir != "" {
		c.Output.BaseDir = outputDir
	}
}
