package middlewares

import (
	"log/slog"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader заголовок с id запроса. Пустой заменяется новым uuid
const RequestIDHeader = "X-Request-ID"

// RequestID проставляет id запроса в контекст и в ответ
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		log.DebugContext(req.Context(), "incoming request",
			"method", req.Method,
			"path", req.URL.Path,
			"query", req.URL.RawQuery,
			"remote_addr", req.RemoteAddr,
			"content_length", req.ContentLength,
		)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		// Уровень зависит от статуса ответа
		var logLevel slog.Level
		switch {
		case status >= 500:
			logLevel = slog.LevelError
		case status >= 400:
			logLevel = slog.LevelWarn
		default:
			logLevel = slog.LevelInfo
		}

		attrs := []slog.Attr{
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int("response_size", c.Writer.Size()),
			slog.String("user_agent", req.UserAgent()),
		}
		if user := CurrentUser(c); user != nil {
			attrs = append(attrs, slog.String("user_id", user.ID.String()))
		}

		log.LogAttrs(req.Context(), logLevel, "request completed", attrs...)
	}
}
