package healthcheckController

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

// Pinger зависимость, доступность которой проверяет /ready
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthCheckController struct {
	deps map[string]Pinger
	log  *slog.Logger
}

// New deps имя зависимости -> проверка. Отключённые зависимости не передаются
func New(deps map[string]Pinger, log *slog.Logger) *HealthCheckController {
	return &HealthCheckController{
		deps: deps,
		log:  log,
	}
}

func (c *HealthCheckController) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", c.health)
	r.GET("/ready", c.ready)
}

// health базовая проверка (всегда возвращает 200)
func (c *HealthCheckController) health(ctx *gin.Context) {
	ctx.JSON(200, gin.H{
		"status":  "ok",
		"service": "ai-astro-tarot",
	})
}

// ready проверка готовности: пингует каждую подключённую зависимость
func (c *HealthCheckController) ready(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), pingTimeout)
	defer cancel()

	unavailable := make([]string, 0)
	for name, dep := range c.deps {
		if err := dep.Ping(pingCtx); err != nil {
			c.log.Error("dependency not ready", "dependency", name, "error", err)
			unavailable = append(unavailable, name)
		}
	}

	if len(unavailable) > 0 {
		ctx.JSON(503, gin.H{
			"status":      "not ready",
			"unavailable": unavailable,
		})
		return
	}

	ctx.JSON(200, gin.H{
		"status": "ready",
	})
}
