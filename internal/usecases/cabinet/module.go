package cabinet

import (
	"log/slog"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/repository"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/storage"
)

const defaultReportURLTTL = 15 * time.Minute

// Config настройки личного кабинета
type Config struct {
	// ReportURLTTL срок жизни ссылки на выгрузку отчёта
	ReportURLTTL time.Duration
}

// Service личный кабинет: сохранённые прогнозы, выгрузка и настройки
type Service struct {
	CalculationRepo repository.ICalculationRepo
	UserRepo        repository.IUserRepo
	Storage         storage.IS3Client // опционально
	Now             func() time.Time
	Cfg             Config
	Log             *slog.Logger
}

func New(calculationRepo repository.ICalculationRepo, userRepo repository.IUserRepo, cfg Config, log *slog.Logger) *Service {
	if cfg.ReportURLTTL <= 0 {
		cfg.ReportURLTTL = defaultReportURLTTL
	}

	return &Service{
		CalculationRepo: calculationRepo,
		UserRepo:        userRepo,
		Now:             time.Now,
		Cfg:             cfg,
		Log:             log,
	}
}

// WithStorage подключает хранилище отчётов
func (s *Service) WithStorage(st storage.IS3Client) *Service {
	s.Storage = st
	return s
}
