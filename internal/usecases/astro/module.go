package astro

import (
	"log/slog"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/cache"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/repository"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/service"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/storage"
)

const (
	defaultEphemerisSource = "Swiss Ephemeris DE431 (NASA JPL)"
	defaultAIModel         = "Astrological Analysis Engine v2.1"
	defaultSnapshotTTL     = 24 * time.Hour
)

// Config настройки расчёта карты
type Config struct {
	AspectMode      AspectMode
	EphemerisSource string
	AIModel         string
	SnapshotTTL     time.Duration
	// PreviewPrice цена открытия полного прогноза для пользователя без подписки
	PreviewPrice int64
}

// Service бизнес-логика натальных карт
type Service struct {
	Ephemeris       service.IEphemeris
	Geocoder        service.IGeocoder
	CalculationRepo repository.ICalculationRepo
	Cache           cache.Cache             // опционально
	Storage         storage.IS3Client       // опционально
	Events          service.IEventPublisher // опционально
	AlerterService  service.IAlerterService // опционально
	RNG             domain.RNG
	Now             func() time.Time
	Cfg             Config
	Log             *slog.Logger
}

// New создаёт сервис натальных карт
func New(
	ephemeris service.IEphemeris,
	geocoder service.IGeocoder,
	calculationRepo repository.ICalculationRepo,
	rng domain.RNG,
	cfg Config,
	log *slog.Logger,
) *Service {
	if cfg.AspectMode == "" {
		cfg.AspectMode = AspectModeEcliptic
	}
	if cfg.EphemerisSource == "" {
		cfg.EphemerisSource = defaultEphemerisSource
	}
	if cfg.AIModel == "" {
		cfg.AIModel = defaultAIModel
	}
	if cfg.SnapshotTTL <= 0 {
		cfg.SnapshotTTL = defaultSnapshotTTL
	}

	return &Service{
		Ephemeris:       ephemeris,
		Geocoder:        geocoder,
		CalculationRepo: calculationRepo,
		RNG:             rng,
		Now:             time.Now,
		Cfg:             cfg,
		Log:             log,
	}
}

// WithCache подключает кэш снимков эфемерид
func (s *Service) WithCache(c cache.Cache) *Service {
	s.Cache = c
	return s
}

// WithStorage подключает хранилище отчётов
func (s *Service) WithStorage(st storage.IS3Client) *Service {
	s.Storage = st
	return s
}

// WithEvents подключает публикацию событий
func (s *Service) WithEvents(events service.IEventPublisher) *Service {
	s.Events = events
	return s
}

// WithAlerter подключает алерты об ошибках расчёта
func (s *Service) WithAlerter(alerter service.IAlerterService) *Service {
	s.AlerterService = alerter
	return s
}
