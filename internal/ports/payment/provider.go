package payment

import (
	"context"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/google/uuid"
)

// IPaymentProvider интерфейс для платёжного провайдера
// Use case зависит только от этого интерфейса, не зная деталей реализации
type IPaymentProvider interface {
	// CreateInvoice регистрирует платёж у провайдера
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*CreateInvoiceResult, error)
	// CheckStatus спрашивает у провайдера текущий статус платежа
	CheckStatus(ctx context.Context, providerID string) (domain.PaymentStatus, error)
}

// CreateInvoiceRequest запрос на создание invoice
type CreateInvoiceRequest struct {
	PaymentID   uuid.UUID
	UserID      uuid.UUID
	Amount      int64
	Currency    string
	Method      domain.PaymentMethod
	Description string
}

// CreateInvoiceResult результат создания invoice
type CreateInvoiceResult struct {
	ProviderID      string // ID платежа в системе провайдера
	ConfirmationURL string // куда отправить пользователя для оплаты (пусто для мока)
}
