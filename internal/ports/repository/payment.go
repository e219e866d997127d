package repository

import (
	"context"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/google/uuid"
)

// IPaymentRepo интерфейс для работы с платежами
type IPaymentRepo interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	// Settle переводит pending платёж в финальный статус. false, если платёж уже не pending
	Settle(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, at time.Time, errorMessage *string) (bool, error)
	// ListPending pending платежи, созданные не позже before, старые первыми
	ListPending(ctx context.Context, before time.Time, limit int) ([]*domain.Payment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Payment, error)
}
