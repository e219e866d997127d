package auth

import (
	"log/slog"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/cache"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/repository"
)

const (
	defaultTokenTTL = 7 * 24 * time.Hour
	defaultIssuer   = "ai-astro-tarot"

	magicLinkCooldown = time.Minute
)

// Config настройки выдачи сессий
type Config struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
	// Delay искусственная задержка каждой операции входа
	Delay time.Duration
	// DemoPassword пароль демо-пользователей
	DemoPassword string
}

// Service регистрация, вход и проверка токенов.
// Отозванные токены хранятся в кэше до истечения срока
type Service struct {
	UserRepo repository.IUserRepo
	Cache    cache.Cache
	Now      func() time.Time
	Cfg      Config
	Log      *slog.Logger
}

func New(userRepo repository.IUserRepo, c cache.Cache, cfg Config, log *slog.Logger) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = defaultIssuer
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}

	return &Service{
		UserRepo: userRepo,
		Cache:    c,
		Now:      time.Now,
		Cfg:      cfg,
		Log:      log,
	}
}
