package authController

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/middlewares"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/response"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/auth"
	"github.com/gin-gonic/gin"
)

// AccountService вход, регистрация и проверка токенов
type AccountService interface {
	middlewares.Authenticator
	Register(ctx context.Context, req auth.RegisterRequest) (*domain.Session, error)
	Login(ctx context.Context, req auth.LoginRequest) (*domain.Session, error)
	SocialLogin(ctx context.Context, provider domain.AuthProvider) (*domain.Session, error)
	RequestMagicLink(ctx context.Context, email string) error
	Logout(ctx context.Context, claims *domain.TokenClaims) error
}

type Controller struct {
	Accounts AccountService
	Log      *slog.Logger
}

func New(accounts AccountService, log *slog.Logger) *Controller {
	return &Controller{
		Accounts: accounts,
		Log:      log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/auth")
	group.POST("/register", c.register)
	group.POST("/login", c.login)
	group.POST("/social/:provider", c.social)
	group.POST("/magic-link", c.magicLink)

	private := group.Group("", middlewares.RequireAuth(c.Accounts, c.Log))
	private.POST("/logout", c.logout)
	private.GET("/me", c.me)
}

type magicLinkRequest struct {
	Email string `json:"email"`
}

func (c *Controller) register(ctx *gin.Context) {
	var req auth.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "invalid request")
		return
	}

	session, err := c.Accounts.Register(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "data": session})
}

func (c *Controller) login(ctx *gin.Context) {
	var req auth.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "invalid request")
		return
	}

	session, err := c.Accounts.Login(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	response.OK(ctx, session)
}

func (c *Controller) social(ctx *gin.Context) {
	provider := domain.AuthProvider(ctx.Param("provider"))

	session, err := c.Accounts.SocialLogin(ctx.Request.Context(), provider)
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	response.OK(ctx, session)
}

// magicLink письмо не отправляется, запрос только подтверждается
func (c *Controller) magicLink(ctx *gin.Context) {
	var req magicLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "invalid request")
		return
	}

	if err := c.Accounts.RequestMagicLink(ctx.Request.Context(), req.Email); err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	ctx.JSON(http.StatusAccepted, gin.H{"success": true})
}

func (c *Controller) logout(ctx *gin.Context) {
	if err := c.Accounts.Logout(ctx.Request.Context(), middlewares.CurrentClaims(ctx)); err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (c *Controller) me(ctx *gin.Context) {
	response.OK(ctx, middlewares.CurrentUser(ctx))
}
