package mock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	paymentPort "github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/payment"
	"github.com/google/uuid"
)

const providerIDPrefix = "mock_"

type invoice struct {
	amount    int64
	createdAt time.Time
}

// Provider имитирует платёжного провайдера: счёт считается оплаченным через ProcessingDelay.
// Счета с суммой <= 0 отклоняются
type Provider struct {
	mu              sync.Mutex
	invoices        map[string]invoice
	processingDelay time.Duration
	now             func() time.Time
	log             *slog.Logger
}

var _ paymentPort.IPaymentProvider = (*Provider)(nil)

// NewProvider создаёт мок-провайдер
func NewProvider(processingDelay time.Duration, log *slog.Logger) *Provider {
	return &Provider{
		invoices:        make(map[string]invoice),
		processingDelay: processingDelay,
		now:             time.Now,
		log:             log,
	}
}

// CreateInvoice регистрирует счёт
func (p *Provider) CreateInvoice(ctx context.Context, req paymentPort.CreateInvoiceRequest) (*paymentPort.CreateInvoiceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !req.Method.IsValid() {
		return nil, fmt.Errorf("unsupported payment method %q", req.Method)
	}

	providerID := providerIDPrefix + uuid.NewString()

	p.mu.Lock()
	p.invoices[providerID] = invoice{amount: req.Amount, createdAt: p.now()}
	p.mu.Unlock()

	p.log.Debug("mock invoice created",
		"payment_id", req.PaymentID,
		"provider_id", providerID,
		"amount", req.Amount,
		"method", req.Method,
	)

	return &paymentPort.CreateInvoiceResult{
		ProviderID: providerID,
	}, nil
}

// CheckStatus pending до истечения задержки, затем succeeded (или failed для нулевой суммы)
func (p *Provider) CheckStatus(ctx context.Context, providerID string) (domain.PaymentStatus, error) {
	p.mu.Lock()
	inv, ok := p.invoices[providerID]
	p.mu.Unlock()

	if !ok {
		// счёт мог быть создан до рестарта: мок его уже не помнит и просто подтверждает
		return domain.PaymentStatusSucceeded, nil
	}

	if p.now().Sub(inv.createdAt) < p.processingDelay {
		return domain.PaymentStatusPending, nil
	}
	if inv.amount <= 0 {
		return domain.PaymentStatusFailed, nil
	}
	return domain.PaymentStatusSucceeded, nil
}
