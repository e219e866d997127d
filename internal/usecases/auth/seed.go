package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// демо-аккаунты сайта
var (
	DemoPremiumUserID = uuid.MustParse("5f8d2c1e-6b4a-4c2e-9a7d-1e3f5b7c9d01")
	DemoFreeUserID    = uuid.MustParse("5f8d2c1e-6b4a-4c2e-9a7d-1e3f5b7c9d02")
)

// SeedDemoUsers создаёт демо-пользователей, если их ещё нет.
// Подписка премиум-пользователя действует месяц от момента запуска
func (s *Service) SeedDemoUsers(ctx context.Context) ([]*domain.User, error) {
	if s.Cfg.DemoPassword == "" {
		return nil, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.Cfg.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	now := s.Now().UTC()
	premiumUntil := now.AddDate(0, 1, 0)
	registered := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	demo := []*domain.User{
		{
			ID:                    DemoPremiumUserID,
			Name:                  "Александр Новиков",
			Email:                 "alex.novikov@example.com",
			PasswordHash:          string(hashed),
			Provider:              domain.AuthProviderEmail,
			SubscriptionStatus:    domain.SubscriptionPremium,
			SubscriptionExpiresAt: &premiumUntil,
			Settings:              domain.DefaultUserSettings(),
			CreatedAt:             registered,
			UpdatedAt:             now,
		},
		{
			ID:                 DemoFreeUserID,
			Name:               "Анна Звездная",
			Email:              "anna.zvezdnaya@example.com",
			PasswordHash:       string(hashed),
			Provider:           domain.AuthProviderEmail,
			SubscriptionStatus: domain.SubscriptionFree,
			Settings:           domain.DefaultUserSettings(),
			CreatedAt:          registered,
			UpdatedAt:          now,
		},
	}

	created := make([]*domain.User, 0, len(demo))
	for _, user := range demo {
		if err := s.UserRepo.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				continue
			}
			return created, fmt.Errorf("failed to seed user %s: %w", user.Email, err)
		}
		created = append(created, user)
	}

	if len(created) > 0 {
		s.Log.Info("demo users seeded", "count", len(created))
	}
	return created, nil
}
