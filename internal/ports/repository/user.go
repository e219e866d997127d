package repository

import (
	"context"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/google/uuid"
)

// IUserRepo интерфейс для работы с пользователями сайта
type IUserRepo interface {
	// Create возвращает domain.ErrAlreadyExists, если email занят
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
