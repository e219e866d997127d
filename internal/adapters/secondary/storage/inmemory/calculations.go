package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/google/uuid"
)

// CalculationRepo in-memory хранилище сохранённых расчётов
type CalculationRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]domain.Calculation
}

func NewCalculationRepo() *CalculationRepo {
	return &CalculationRepo{items: make(map[uuid.UUID]domain.Calculation)}
}

func (r *CalculationRepo) Create(ctx context.Context, calc *domain.Calculation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[calc.ID]; ok {
		return fmt.Errorf("calculation %s: %w", calc.ID, domain.ErrAlreadyExists)
	}
	r.items[calc.ID] = *calc
	return nil
}

func (r *CalculationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	calc, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("calculation %s: %w", id, domain.ErrNotFound)
	}
	return &calc, nil
}

func (r *CalculationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Calculation, 0)
	for _, calc := range r.items {
		if calc.UserID == userID {
			calc := calc
			result = append(result, &calc)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *CalculationRepo) UpdateAccess(ctx context.Context, id uuid.UUID, access domain.AccessType) error {
	return r.update(id, func(calc *domain.Calculation) {
		calc.AccessType = access
	})
}

func (r *CalculationRepo) UpdateReportPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.update(id, func(calc *domain.Calculation) {
		calc.ReportPath = &path
	})
}

func (r *CalculationRepo) update(id uuid.UUID, fn func(*domain.Calculation)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	calc, ok := r.items[id]
	if !ok {
		return fmt.Errorf("calculation %s: %w", id, domain.ErrNotFound)
	}
	fn(&calc)
	r.items[id] = calc
	return nil
}
