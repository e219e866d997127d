package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minNameLength     = 2
	minPasswordLength = 6
)

// RegisterRequest данные регистрации по email
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest данные входа по email
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register создаёт пользователя с бесплатным тарифом и сразу выдаёт сессию
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.Session, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.WrapBusinessError(err)
	}
	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) < minNameLength {
		return nil, domain.WrapBusinessError(fmt.Errorf("%w: name must be at least %d characters", domain.ErrInvalidInput, minNameLength))
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return nil, domain.WrapBusinessError(fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now().UTC()
	user := &domain.User{
		ID:                 uuid.New(),
		Name:               name,
		Email:              email,
		PasswordHash:       string(hashed),
		Provider:           domain.AuthProviderEmail,
		SubscriptionStatus: domain.SubscriptionFree,
		Settings:           domain.DefaultUserSettings(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.WrapBusinessError(err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.Log.Info("user registered", "user_id", user.ID)
	return s.issue(user)
}

// Login вход по email и паролю
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.Session, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.WrapBusinessError(err)
	}
	if req.Password == "" {
		return nil, domain.WrapBusinessError(fmt.Errorf("%w: password cannot be empty", domain.ErrInvalidInput))
	}

	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.WrapBusinessError(fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized))
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	// у пользователей соцсетей нет пароля
	if user.PasswordHash == "" {
		return nil, domain.WrapBusinessError(fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.Log.Debug("password mismatch", "user_id", user.ID)
		return nil, domain.WrapBusinessError(fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized))
	}

	s.Log.Info("user logged in", "user_id", user.ID)
	return s.issue(user)
}

// SocialLogin имитирует вход через VK или Google: пользователь провайдера создаётся при первом входе
func (s *Service) SocialLogin(ctx context.Context, provider domain.AuthProvider) (*domain.Session, error) {
	if !provider.IsSocial() {
		return nil, domain.WrapBusinessError(fmt.Errorf("%w: unsupported auth provider %q", domain.ErrInvalidInput, provider))
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	email := fmt.Sprintf("user@%s.com", provider)
	user, err := s.UserRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		user, err = s.createSocialUser(ctx, provider, email)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	s.Log.Info("social login", "user_id", user.ID, "provider", provider)
	return s.issue(user)
}

func (s *Service) createSocialUser(ctx context.Context, provider domain.AuthProvider, email string) (*domain.User, error) {
	name := "Пользователь Google"
	if provider == domain.AuthProviderVK {
		name = "Пользователь VK"
	}

	now := s.Now().UTC()
	user := &domain.User{
		ID:                 uuid.New(),
		Name:               name,
		Email:              email,
		Provider:           provider,
		SubscriptionStatus: domain.SubscriptionFree,
		Settings:           domain.DefaultUserSettings(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		// параллельный первый вход того же провайдера
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.UserRepo.GetByEmail(ctx, email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// RequestMagicLink только подтверждает запрос: письма не отправляются.
// Повторный запрос на тот же адрес в течение magicLinkCooldown не логируется как новый
func (s *Service) RequestMagicLink(ctx context.Context, email string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return domain.WrapBusinessError(err)
	}

	fresh, err := s.Cache.SetNX(ctx, magicLinkKey(normalized), s.Now().UTC().Format(time.RFC3339), magicLinkCooldown)
	if err != nil {
		s.Log.Warn("failed to throttle magic link", "error", err, "email", normalized)
		fresh = true
	}
	if !fresh {
		s.Log.Debug("magic link already requested recently", "email", normalized)
		return nil
	}

	s.Log.Info("magic link requested", "email", normalized)
	return nil
}

func magicLinkKey(email string) string {
	return "auth:magic-link:" + email
}

func (s *Service) wait(ctx context.Context) error {
	if s.Cfg.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.Cfg.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(raw))
	if email == "" {
		return "", fmt.Errorf("%w: email cannot be empty", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	return email, nil
}
