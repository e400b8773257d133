package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Backend BackendConfig `yaml:"backend"`
	Console ConsoleConfig `yaml:"console"`
	Session SessionConfig `yaml:"session"`
	Audit   AuditConfig   `yaml:"audit"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// BackendConfig 는 locker REST 백엔드 호출 설정이다.
type BackendConfig struct {
	// BaseURL 은 "/api" 까지 포함한 백엔드 주소다. 예: http://localhost:8080/api
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	SourceSystem string        `yaml:"source_system"`
}

// ConsoleConfig 는 콘솔 JSON API 서버 설정이다.
type ConsoleConfig struct {
	ListenAddr     string   `yaml:"listen_addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// PageSizes 는 페이지별 기본 page size 다. 지정하지 않은 페이지는 DefaultPageSize 를 사용한다.
	PageSizes       map[string]int `yaml:"page_sizes"`
	DefaultPageSize int            `yaml:"default_page_size"`
	NoticeBuffer    int            `yaml:"notice_buffer"`
	// FetchTimeout 은 목록 조회 1회에 허용하는 최대 시간이다.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// SessionConfig 는 운영자 세션 저장소 설정이다.
type SessionConfig struct {
	// Store 는 "file" 또는 "mongo" 다.
	Store    string `yaml:"store"`
	FilePath string `yaml:"file_path"`
	MongoURI string `yaml:"mongo_uri"`
	MongoDB  string `yaml:"mongo_db"`
}

// AuditConfig 는 변경 작업 감사 이벤트 발행 설정이다.
type AuditConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Brokers    string `yaml:"brokers"`
	Topic      string `yaml:"topic"`
	Partitions int    `yaml:"partitions"`
}

var config *AppConfig

// InitApp 은 .env 와 config.yaml 을 읽어 전역 설정을 초기화한다.
// config.yaml 이 없으면 기본값만으로 동작한다.
func InitApp() error {
	base := GetBasePath()
	_ = godotenv.Load(filepath.Join(base, ENV_FILE))

	c := Default()
	if base != "" {
		data, err := os.ReadFile(filepath.Join(base, CONFIG_FILE))
		if err != nil {
			return fmt.Errorf("read %s: %w", CONFIG_FILE, err)
		}
		parsed, err := Parse(data)
		if err != nil {
			return err
		}
		c = parsed
	}
	c.applyEnv()
	config = &c
	return nil
}

// Parse 는 yaml 바이트를 기본값 위에 덮어써 AppConfig 로 변환한다.
func Parse(data []byte) (AppConfig, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return AppConfig{}, fmt.Errorf("parse %s: %w", CONFIG_FILE, err)
	}
	c.normalize()
	return c, nil
}

// Default 는 원본 콘솔의 기본값(백엔드 :8080/api, Source_System=Backstage)을 담은 설정이다.
func Default() AppConfig {
	return AppConfig{
		Logging: LoggingConfig{Level: "info"},
		Backend: BackendConfig{
			BaseURL:      "http://localhost:8080/api",
			Timeout:      10 * time.Second,
			SourceSystem: "Backstage",
		},
		Console: ConsoleConfig{
			ListenAddr:      ":8090",
			DefaultPageSize: 10,
			NoticeBuffer:    20,
			FetchTimeout:    15 * time.Second,
			PageSizes: map[string]int{
				"users":            10,
				"comments":         10,
				"notifications":    10,
				"cabinets":         8,
				"cabinet-settings": 50,
				"categories":       5,
				"orders":           15,
				"lost-items":       10,
				"logistics":        15,
			},
		},
		Session: SessionConfig{
			Store:    "file",
			FilePath: ".locker-console/session.json",
			MongoDB:  "locker_console",
		},
		Audit: AuditConfig{
			Topic:      "locker-console.audit",
			Partitions: 1,
		},
	}
}

// PageSize 는 페이지 이름에 해당하는 기본 page size 를 반환한다.
func (c ConsoleConfig) PageSize(page string) int {
	if n, ok := c.PageSizes[page]; ok && n > 0 {
		return n
	}
	if c.DefaultPageSize > 0 {
		return c.DefaultPageSize
	}
	return 10
}

func (c *AppConfig) normalize() {
	d := Default()
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = d.Backend.BaseURL
	}
	c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = d.Backend.Timeout
	}
	if c.Backend.SourceSystem == "" {
		c.Backend.SourceSystem = d.Backend.SourceSystem
	}
	if c.Console.ListenAddr == "" {
		c.Console.ListenAddr = d.Console.ListenAddr
	}
	if c.Console.NoticeBuffer <= 0 {
		c.Console.NoticeBuffer = d.Console.NoticeBuffer
	}
	if c.Console.FetchTimeout <= 0 {
		c.Console.FetchTimeout = d.Console.FetchTimeout
	}
	if c.Session.Store == "" {
		c.Session.Store = d.Session.Store
	}
	if c.Session.FilePath == "" {
		c.Session.FilePath = d.Session.FilePath
	}
	if c.Session.MongoDB == "" {
		c.Session.MongoDB = d.Session.MongoDB
	}
	if c.Audit.Topic == "" {
		c.Audit.Topic = d.Audit.Topic
	}
	if c.Audit.Partitions <= 0 {
		c.Audit.Partitions = d.Audit.Partitions
	}
}

// applyEnv 는 배포 환경에서 주로 바꾸는 값들을 환경변수로 덮어쓴다.
func (c *AppConfig) applyEnv() {
	if v := os.Getenv("LOCKER_API_BASE_URL"); v != "" {
		c.Backend.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("CONSOLE_LISTEN_ADDR"); v != "" {
		c.Console.ListenAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Session.MongoURI = v
	}
	if v := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); v != "" {
		c.Audit.Brokers = v
	}
}

func GetConfig() AppConfig {
	if config == nil {
		if err := InitApp(); err != nil {
			panic(err)
		}
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
