package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Encoding  string `envconfig:"ENCODING"`
	Level     string `envconfig:"LEVEL"`
	AddSource bool   `envconfig:"ADD_SOURCE" default:"true"`
}

type requestIDKey struct{}

// WithRequestID кладёт id запроса в контекст. Его подхватывают все записи с этим контекстом
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID id запроса из контекста или пустая строка
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func New(app string, cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = &Config{AddSource: true}
	}

	handler, err := NewHandler(os.Stderr, cfg)
	if err != nil {
		panic(fmt.Errorf("invalid logger config: %w", err))
	}

	return slog.New(handler).With("app", app)
}

// NewHandler обработчик по настройкам. Пустые поля заменяются на console/info
func NewHandler(w io.Writer, cfg *Config) (slog.Handler, error) {
	encoding := cfg.Encoding
	if encoding == "" {
		encoding = "console"
	}
	levelName := cfg.Level
	if levelName == "" {
		levelName = "info"
	}

	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	switch encoding {
	case "json":
		return &contextHandler{handler: slog.NewJSONHandler(w, opts)}, nil
	case "console":
		return &contextHandler{handler: slog.NewTextHandler(w, opts)}, nil
	default:
		return nil, fmt.Errorf("encoding %s is not supported", encoding)
	}
}

// ParseLevel парсит строковый уровень в slog.Level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("level %s is not supported", level)
	}
}

// contextHandler дописывает request_id из контекста записи
type contextHandler struct {
	handler slog.Handler
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	if id := RequestID(ctx); id != "" {
		record.AddAttrs(slog.String("request_id", id))
	}
	return h.handler.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{handler: h.handler.WithGroup(name)}
}
