package cabinet

import (
	"context"
	"fmt"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
)

// UpdateSettings сохраняет настройки приватности и уведомлений
func (s *Service) UpdateSettings(ctx context.Context, user *domain.User, settings domain.UserSettings) (*domain.User, error) {
	updated := *user
	updated.Settings = settings
	updated.UpdatedAt = s.Now().UTC()

	if err := s.UserRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	s.Log.Info("user settings updated", "user_id", user.ID)
	return &updated, nil
}
