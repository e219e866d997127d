package middlewares

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/response"
	"github.com/gin-gonic/gin"
)

// RecoveryLogger ловит панику обработчика, логирует стек и отвечает 500
func RecoveryLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("PANIC CAUGHT",
					"panic", r,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"full_path", c.FullPath(),
					"client_ip", c.ClientIP(),
					"user_agent", c.Request.UserAgent(),
				)

				// Выводим стек трейс отдельно для читаемости
				log.Error("Stack trace:",
					"stack", string(debug.Stack()),
				)

				response.Fail(c, http.StatusInternalServerError, "internal server error")
			}
		}()
		c.Next()
	}
}
