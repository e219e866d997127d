package astrologyController

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/middlewares"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/response"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	invalidBirthDataMessage = "Invalid birth data. Please provide birthDate (YYYY-MM-DD), birthTime (HH:MM), birthPlace, and name."
	calculationErrorMessage = "Internal server error during astrological calculations"
	methodNotAllowedMessage = "Method not allowed. Use POST to calculate natal charts."
)

// NatalChartService расчёт карт и текущее небо
type NatalChartService interface {
	Calculate(ctx context.Context, in domain.BirthInput, user *domain.User) (*domain.CalculationResult, error)
	CurrentPositions(ctx context.Context) (*domain.CurrentSky, error)
}

type Controller struct {
	Charts NatalChartService
	Auth   middlewares.Authenticator
	Log    *slog.Logger
}

func New(charts NatalChartService, auth middlewares.Authenticator, log *slog.Logger) *Controller {
	return &Controller{
		Charts: charts,
		Auth:   auth,
		Log:    log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/astrology")
	if c.Auth != nil {
		group.Use(middlewares.OptionalAuth(c.Auth, c.Log))
	}

	group.POST("/calculate", c.calculate)
	group.GET("/calculate", c.methodNotAllowed)
	group.GET("/positions", c.positions)
}

type calculateResponse struct {
	Success bool `json:"success"`
	*domain.CalculationResult
}

// calculate любая ошибка расчёта, включая панику, превращается в 500 без подробностей
func (c *Controller) calculate(ctx *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			c.Log.Error("natal chart calculation panicked",
				"panic", r,
				"stack", string(debug.Stack()),
			)
			response.Fail(ctx, http.StatusInternalServerError, calculationErrorMessage)
		}
	}()

	var in domain.BirthInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		c.Log.Debug("failed to bind birth data", "error", err)
		response.Fail(ctx, http.StatusBadRequest, invalidBirthDataMessage)
		return
	}

	result, err := c.Charts.Calculate(ctx.Request.Context(), in, middlewares.CurrentUser(ctx))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidBirthData) {
			response.Fail(ctx, http.StatusBadRequest, invalidBirthDataMessage)
			return
		}
		c.Log.Error("natal chart calculation failed", "error", err)
		response.Fail(ctx, http.StatusInternalServerError, calculationErrorMessage)
		return
	}

	ctx.JSON(http.StatusOK, calculateResponse{
		Success:           true,
		CalculationResult: result,
	})
}

func (c *Controller) methodNotAllowed(ctx *gin.Context) {
	response.Fail(ctx, http.StatusMethodNotAllowed, methodNotAllowedMessage)
}

func (c *Controller) positions(ctx *gin.Context) {
	sky, err := c.Charts.CurrentPositions(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	response.OK(ctx, sky)
}
