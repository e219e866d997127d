package repository

import (
	"context"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/google/uuid"
)

// ICalculationRepo интерфейс для сохранённых расчётов (прогнозов в личном кабинете)
type ICalculationRepo interface {
	Create(ctx context.Context, calc *domain.Calculation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Calculation, error)
	// ListByUser новые первыми
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Calculation, error)
	UpdateAccess(ctx context.Context, id uuid.UUID, access domain.AccessType) error
	UpdateReportPath(ctx context.Context, id uuid.UUID, path string) error
}
