package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/google/uuid"
)

// PaymentRepo in-memory хранилище платежей
type PaymentRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]domain.Payment
}

func NewPaymentRepo() *PaymentRepo {
	return &PaymentRepo{items: make(map[uuid.UUID]domain.Payment)}
}

func (r *PaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[payment.ID]; ok {
		return fmt.Errorf("payment %s: %w", payment.ID, domain.ErrAlreadyExists)
	}
	r.items[payment.ID] = *payment
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("payment %s: %w", id, domain.ErrNotFound)
	}
	return &payment, nil
}

func (r *PaymentRepo) Settle(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, at time.Time, errorMessage *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.items[id]
	if !ok {
		return false, fmt.Errorf("payment %s: %w", id, domain.ErrNotFound)
	}
	if payment.Status != domain.PaymentStatusPending {
		return false, nil
	}

	payment.Status = status
	switch status {
	case domain.PaymentStatusSucceeded:
		payment.SucceededAt = &at
	default:
		payment.FailedAt = &at
		payment.ErrorMessage = errorMessage
	}
	r.items[id] = payment
	return true, nil
}

func (r *PaymentRepo) ListPending(ctx context.Context, before time.Time, limit int) ([]*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Payment, 0)
	for _, payment := range r.items {
		if payment.Status == domain.PaymentStatusPending && !payment.CreatedAt.After(before) {
			payment := payment
			result = append(result, &payment)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *PaymentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Payment, 0)
	for _, payment := range r.items {
		if payment.UserID == userID {
			payment := payment
			result = append(result, &payment)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
