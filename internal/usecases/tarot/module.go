package tarot

import (
	"log/slog"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/cache"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/repository"
)

const defaultSessionTTL = 24 * time.Hour

// Config настройки симулятора раскладов
type Config struct {
	// ShuffleDelay сколько длится перемешивание, 0 = сразу
	ShuffleDelay time.Duration
	SessionTTL   time.Duration
}

// Service бизнес-логика раскладов таро. Сессии живут в кэше
type Service struct {
	Deck  repository.IDeckStore
	Cache cache.Cache
	RNG   domain.RNG
	Now   func() time.Time
	Cfg   Config
	Log   *slog.Logger
}

func New(deck repository.IDeckStore, c cache.Cache, rng domain.RNG, cfg Config, log *slog.Logger) *Service {
	if cfg.ShuffleDelay < 0 {
		cfg.ShuffleDelay = 0
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	return &Service{
		Deck:  deck,
		Cache: c,
		RNG:   rng,
		Now:   time.Now,
		Cfg:   cfg,
		Log:   log,
	}
}
