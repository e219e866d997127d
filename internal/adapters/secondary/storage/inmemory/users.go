package inmemory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/google/uuid"
)

// UserRepo in-memory хранилище пользователей
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]domain.User
	byEmail map[string]uuid.UUID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[uuid.UUID]domain.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, ok := r.byEmail[email]; ok {
		return fmt.Errorf("user %s: %w", user.Email, domain.ErrAlreadyExists)
	}
	r.byID[user.ID] = *user
	r.byEmail[email] = user.ID
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	user := r.byID[id]
	return &user, nil
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	}
	r.byID[user.ID] = *user
	return nil
}
