package repository

import (
	"context"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
)

// IDeckStore источник колоды и раскладов таро
type IDeckStore interface {
	Cards(ctx context.Context) ([]domain.TarotCard, error)
	Layouts(ctx context.Context) ([]domain.SpreadLayout, error)
	// Layout возвращает domain.ErrNotFound для неизвестного расклада
	Layout(ctx context.Context, id string) (domain.SpreadLayout, error)
}
