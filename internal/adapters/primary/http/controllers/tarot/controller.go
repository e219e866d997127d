package tarotController

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/middlewares"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/response"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionService сессии раскладов
type SessionService interface {
	Layouts(ctx context.Context) ([]domain.SpreadLayout, error)
	CreateSession(ctx context.Context) (*domain.TarotSession, error)
	GetSession(ctx context.Context, id uuid.UUID, user *domain.User) (*domain.TarotSession, error)
	Shuffle(ctx context.Context, id uuid.UUID) (*domain.TarotSession, error)
	Draw(ctx context.Context, id uuid.UUID, spreadID string, user *domain.User) (*domain.TarotSession, error)
	Reset(ctx context.Context, id uuid.UUID) (*domain.TarotSession, error)
}

type Controller struct {
	Sessions SessionService
	Auth     middlewares.Authenticator
	Log      *slog.Logger
}

func New(sessions SessionService, auth middlewares.Authenticator, log *slog.Logger) *Controller {
	return &Controller{
		Sessions: sessions,
		Auth:     auth,
		Log:      log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/tarot")
	if c.Auth != nil {
		group.Use(middlewares.OptionalAuth(c.Auth, c.Log))
	}

	group.GET("/spreads", c.spreads)
	group.POST("/sessions", c.create)
	group.GET("/sessions/:id", c.get)
	group.POST("/sessions/:id/shuffle", c.shuffle)
	group.POST("/sessions/:id/draw", c.draw)
	group.DELETE("/sessions/:id", c.reset)
}

type drawRequest struct {
	SpreadID string `json:"spreadId"`
}

func (c *Controller) spreads(ctx *gin.Context) {
	layouts, err := c.Sessions.Layouts(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	response.OK(ctx, layouts)
}

func (c *Controller) create(ctx *gin.Context) {
	session, err := c.Sessions.CreateSession(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "data": session})
}

func (c *Controller) get(ctx *gin.Context) {
	id, err := response.UUIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}

	session, err := c.Sessions.GetSession(ctx.Request.Context(), id, middlewares.CurrentUser(ctx))
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	response.OK(ctx, session)
}

// shuffle отвечает, когда колода перемешана
func (c *Controller) shuffle(ctx *gin.Context) {
	id, err := response.UUIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}

	session, err := c.Sessions.Shuffle(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	response.OK(ctx, session)
}

func (c *Controller) draw(ctx *gin.Context) {
	id, err := response.UUIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}

	var req drawRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.SpreadID == "" {
		response.Fail(ctx, http.StatusBadRequest, "spreadId is required")
		return
	}

	session, err := c.Sessions.Draw(ctx.Request.Context(), id, req.SpreadID, middlewares.CurrentUser(ctx))
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	response.OK(ctx, session)
}

func (c *Controller) reset(ctx *gin.Context) {
	id, err := response.UUIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}

	session, err := c.Sessions.Reset(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	response.OK(ctx, session)
}
