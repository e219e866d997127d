package cabinetController

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/middlewares"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/response"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/cabinet"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CabinetService прогнозы и настройки личного кабинета
type CabinetService interface {
	ListPredictions(ctx context.Context, user *domain.User) ([]*domain.Calculation, error)
	GetPrediction(ctx context.Context, user *domain.User, id uuid.UUID) (*cabinet.PredictionDetails, error)
	ExportPrediction(ctx context.Context, user *domain.User, id uuid.UUID) (*cabinet.ExportLink, error)
	UpdateSettings(ctx context.Context, user *domain.User, settings domain.UserSettings) (*domain.User, error)
}

type Controller struct {
	Cabinet CabinetService
	Auth    middlewares.Authenticator
	Log     *slog.Logger
}

func New(cabinet CabinetService, auth middlewares.Authenticator, log *slog.Logger) *Controller {
	return &Controller{
		Cabinet: cabinet,
		Auth:    auth,
		Log:     log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/cabinet", middlewares.RequireAuth(c.Auth, c.Log))
	group.GET("/predictions", c.list)
	group.GET("/predictions/:id", c.get)
	group.GET("/predictions/:id/export", c.export)
	group.GET("/settings", c.settings)
	group.PUT("/settings", c.updateSettings)
}

// settingsRequest частичное обновление: отсутствующие поля не меняются
type settingsRequest struct {
	ProfileVisible     *bool `json:"profileVisible"`
	HistoryVisible     *bool `json:"historyVisible"`
	EmailNotifications *bool `json:"emailNotifications"`
}

func (r settingsRequest) apply(settings domain.UserSettings) domain.UserSettings {
	if r.ProfileVisible != nil {
		settings.ProfileVisible = *r.ProfileVisible
	}
	if r.HistoryVisible != nil {
		settings.HistoryVisible = *r.HistoryVisible
	}
	if r.EmailNotifications != nil {
		settings.EmailNotifications = *r.EmailNotifications
	}
	return settings
}

func (c *Controller) list(ctx *gin.Context) {
	predictions, err := c.Cabinet.ListPredictions(ctx.Request.Context(), middlewares.CurrentUser(ctx))
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	response.OK(ctx, predictions)
}

func (c *Controller) get(ctx *gin.Context) {
	id, err := response.UUIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}

	prediction, err := c.Cabinet.GetPrediction(ctx.Request.Context(), middlewares.CurrentUser(ctx), id)
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	response.OK(ctx, prediction)
}

func (c *Controller) export(ctx *gin.Context) {
	id, err := response.UUIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}

	link, err := c.Cabinet.ExportPrediction(ctx.Request.Context(), middlewares.CurrentUser(ctx), id)
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	response.OK(ctx, link)
}

func (c *Controller) settings(ctx *gin.Context) {
	response.OK(ctx, middlewares.CurrentUser(ctx).Settings)
}

func (c *Controller) updateSettings(ctx *gin.Context) {
	var req settingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "invalid request")
		return
	}

	user := middlewares.CurrentUser(ctx)
	updated, err := c.Cabinet.UpdateSettings(ctx.Request.Context(), user, req.apply(user.Settings))
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	response.OK(ctx, updated.Settings)
}
