package logger

import (
	"os"
	"slices"
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// Logger 는 콘솔 프로세스 전역에서 사용하는 최소 로거 인터페이스다.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Fields 는 구조화 로그를 위한 공통 필드 타입이다.
type Fields map[string]any

// Log 는 전역 로거 인스턴스다.
// Init 이 호출되지 않더라도 기본 info 레벨로 동작하도록 초기화한다.
var Log Logger = NewLogger("info")

// Init 은 설정 파일의 레벨을 기준으로 전역 로거를 초기화한다.
// LOG_LEVEL 환경변수가 있으면 설정 값보다 우선한다.
func Init(level string) {
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = "info"
	}
	Log = NewLogger(level)
}

// NewLogger 는 주어진 레벨로 gookit/slog 기반 JSON 로거를 생성한다.
func NewLogger(level string) Logger {
	threshold := slog.LevelByName(level)
	levels := slices.DeleteFunc(slices.Clone(slog.AllLevels), func(lv slog.Level) bool { return lv > threshold })

	h := handler.NewConsoleHandler(levels)
	formatter := slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		f.Fields = []string{
			slog.FieldKeyDatetime,
			slog.FieldKeyLevel,
			slog.FieldKeyMessage,
		}
		f.Aliases = slog.StringMap{
			slog.FieldKeyDatetime: "datetime",
			slog.FieldKeyLevel:    "level",
			slog.FieldKeyMessage:  "message",
		}
		f.TimeFormat = "2006-01-02T15:04:05"
	})
	h.SetFormatter(formatter)

	return slog.NewWithHandlers(h)
}

const defaultServiceName = "locker-console"

// InfoWithFields 는 request_id, page 같은 구조화 필드를 붙여 JSON 한 줄로 남긴다.
func InfoWithFields(msg string, fields Fields) { emit(slog.InfoLevel, msg, fields) }

func DebugWithFields(msg string, fields Fields) { emit(slog.DebugLevel, msg, fields) }

func WarnWithFields(msg string, fields Fields) { emit(slog.WarnLevel, msg, fields) }

func ErrorWithFields(msg string, fields Fields) { emit(slog.ErrorLevel, msg, fields) }

// emit 은 service_name 을 채운 뒤 level 에 맞는 메서드로 보낸다.
// 테스트 등에서 Log 가 slog 로거가 아니면 필드 없이 메시지만 남긴다.
func emit(level slog.Level, msg string, fields Fields) {
	lg, ok := Log.(*slog.Logger)
	if !ok {
		plain(level, msg)
		return
	}
	out := make(slog.M, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	if _, set := out["service_name"]; !set {
		out["service_name"] = serviceName()
	}

	r := lg.WithFields(out)
	switch level {
	case slog.DebugLevel:
		r.Debug(msg)
	case slog.WarnLevel:
		r.Warn(msg)
	case slog.ErrorLevel:
		r.Error(msg)
	default:
		r.Info(msg)
	}
}

func plain(level slog.Level, msg string) {
	switch level {
	case slog.DebugLevel:
		Log.Debug(msg)
	case slog.WarnLevel:
		Log.Warn(msg)
	case slog.ErrorLevel:
		Log.Error(msg)
	default:
		Log.Info(msg)
	}
}

func serviceName() string {
	if sn := os.Getenv("SERVICE_NAME"); sn != "" {
		return sn
	}
	return defaultServiceName
}
