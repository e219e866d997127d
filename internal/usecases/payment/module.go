package payment

import (
	"log/slog"
	"time"

	paymentPort "github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/payment"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/repository"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/service"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/usecase"
)

const (
	defaultProcessingDelay = 3 * time.Second
	defaultBatchSize       = 100
)

// Config настройки оформления и проведения платежей
type Config struct {
	// ProcessingDelay через сколько после создания pending платёж проверяется у провайдера
	ProcessingDelay time.Duration
	BatchSize       int
}

type Service struct {
	PaymentRepo     repository.IPaymentRepo
	UserRepo        repository.IUserRepo
	CalculationRepo repository.ICalculationRepo
	PaymentProvider paymentPort.IPaymentProvider
	Events          service.IEventPublisher // опционально
	AlerterService  service.IAlerterService // опционально
	Now             func() time.Time
	Cfg             Config
	Log             *slog.Logger
}

var _ usecase.IPaymentSettler = (*Service)(nil)

func New(
	paymentRepo repository.IPaymentRepo,
	userRepo repository.IUserRepo,
	calculationRepo repository.ICalculationRepo,
	paymentProvider paymentPort.IPaymentProvider,
	cfg Config,
	log *slog.Logger,
) *Service {
	if cfg.ProcessingDelay <= 0 {
		cfg.ProcessingDelay = defaultProcessingDelay
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}

	return &Service{
		PaymentRepo:     paymentRepo,
		UserRepo:        userRepo,
		CalculationRepo: calculationRepo,
		PaymentProvider: paymentProvider,
		Now:             time.Now,
		Cfg:             cfg,
		Log:             log,
	}
}

// WithEvents подключает публикацию payment.succeeded
func (s *Service) WithEvents(events service.IEventPublisher) *Service {
	s.Events = events
	return s
}

// WithAlerter подключает алерты о сбоях выдачи продукта
func (s *Service) WithAlerter(alerter service.IAlerterService) *Service {
	s.AlerterService = alerter
	return s
}
