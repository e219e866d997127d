package alerter

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/response"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/service"
	"github.com/gin-gonic/gin"
)

const tokenHeader = "X-Alert-Token"

// alertPayload внешний алерт в свободной форме (мониторинг, деплой)
type alertPayload struct {
	Message  string `json:"message"`
	Source   string `json:"source"`
	Severity string `json:"severity"`
}

// Controller пересылает внешние алерты в Telegram.
// Пустой Token отключает вебхук
type Controller struct {
	AlerterService service.IAlerterService
	Token          string
	Log            *slog.Logger
}

func New(alerterService service.IAlerterService, token string, log *slog.Logger) *Controller {
	return &Controller{
		AlerterService: alerterService,
		Token:          token,
		Log:            log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/webhooks/alert", c.handleAlert)
}

func (c *Controller) handleAlert(ctx *gin.Context) {
	if c.Token == "" || subtle.ConstantTimeCompare([]byte(ctx.GetHeader(tokenHeader)), []byte(c.Token)) != 1 {
		response.Fail(ctx, http.StatusUnauthorized, "invalid alert token")
		return
	}

	var payload alertPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		c.Log.Warn("failed to bind alert request", "error", err)
		response.Fail(ctx, http.StatusBadRequest, "invalid request")
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		response.Fail(ctx, http.StatusBadRequest, "message is required")
		return
	}

	if c.AlerterService == nil {
		c.Log.Info("alerter service not configured, skipping alert", "source", payload.Source)
		ctx.JSON(http.StatusOK, gin.H{"success": true, "delivered": false})
		return
	}

	if err := c.AlerterService.SendAlert(ctx.Request.Context(), formatAlert(payload)); err != nil {
		c.Log.Warn("failed to send alert",
			"error", err,
			"source", payload.Source,
		)
		// 200, чтобы отправитель не повторял запрос
		ctx.JSON(http.StatusOK, gin.H{"success": false, "delivered": false})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "delivered": true})
}

func formatAlert(payload alertPayload) string {
	var builder strings.Builder
	builder.WriteString("🔔 Внешний алерт")
	if payload.Severity != "" {
		fmt.Fprintf(&builder, " [%s]", strings.ToUpper(payload.Severity))
	}
	builder.WriteString("\n\n")
	if payload.Source != "" {
		fmt.Fprintf(&builder, "📦 Источник: %s\n", payload.Source)
	}
	builder.WriteString(payload.Message)
	return builder.String()
}
