package usecase

import (
	"context"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
)

// IPaymentSettler применяет итоговый статус платежа
type IPaymentSettler interface {
	ApplyEvent(ctx context.Context, event domain.PaymentEvent) error
}
