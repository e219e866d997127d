package checkoutController

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/middlewares"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/response"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/payment"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CheckoutService оформление и статус платежей
type CheckoutService interface {
	CreateCheckout(ctx context.Context, user *domain.User, req payment.CheckoutRequest) (*payment.CheckoutResult, error)
	GetPayment(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Payment, error)
}

type Controller struct {
	Checkout CheckoutService
	Auth     middlewares.Authenticator
	Log      *slog.Logger
}

func New(checkout CheckoutService, auth middlewares.Authenticator, log *slog.Logger) *Controller {
	return &Controller{
		Checkout: checkout,
		Auth:     auth,
		Log:      log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/pricing", c.pricing)

	group := router.Group("/api/checkout", middlewares.RequireAuth(c.Auth, c.Log))
	group.POST("", c.create)
	group.GET("/:id", c.get)
}

type pricingResponse struct {
	Plans   []domain.PricingPlan       `json:"plans"`
	Methods []domain.PaymentMethodInfo `json:"methods"`
}

func (c *Controller) pricing(ctx *gin.Context) {
	response.OK(ctx, pricingResponse{
		Plans:   payment.Plans(),
		Methods: domain.PaymentMethods,
	})
}

func (c *Controller) create(ctx *gin.Context) {
	var req payment.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := c.Checkout.CreateCheckout(ctx.Request.Context(), middlewares.CurrentUser(ctx), req)
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "data": result})
}

// get фронтенд опрашивает статус, пока платёж pending
func (c *Controller) get(ctx *gin.Context) {
	id, err := response.UUIDParam(ctx, "id")
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}

	p, err := c.Checkout.GetPayment(ctx.Request.Context(), middlewares.CurrentUser(ctx), id)
	if err != nil {
		response.Error(ctx, c.Log, err)
		return
	}
	response.OK(ctx, p)
}
