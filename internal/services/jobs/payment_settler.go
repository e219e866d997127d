package jobs

import (
	"context"
	"log/slog"
	"time"
)

const paymentSettlerName = "payment-settler"

// PendingPaymentsService завершение зависших в pending платежей
type PendingPaymentsService interface {
	// SettleDue возвращает количество завершённых платежей
	SettleDue(ctx context.Context) (int, error)
}

// PaymentSettler периодически завершает pending платежи, у которых истекла задержка обработки
type PaymentSettler struct {
	service  PendingPaymentsService
	interval time.Duration
	log      *slog.Logger
}

func NewPaymentSettler(service PendingPaymentsService, interval time.Duration, log *slog.Logger) *PaymentSettler {
	if interval <= 0 {
		interval = time.Second
	}
	return &PaymentSettler{
		service:  service,
		interval: interval,
		log:      log,
	}
}

func (j *PaymentSettler) Name() string {
	return paymentSettlerName
}

// NextRun через interval после предыдущего запуска
func (j *PaymentSettler) NextRun(now time.Time) time.Time {
	return now.Add(j.interval)
}

func (j *PaymentSettler) Run(ctx context.Context) error {
	settled, err := j.service.SettleDue(ctx)
	if err != nil {
		return err
	}
	if settled > 0 {
		j.log.Info("pending payments settled", "count", settled)
	}
	return nil
}
