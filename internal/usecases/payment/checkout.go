package payment

import (
	"context"
	"fmt"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	paymentPort "github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/payment"
	"github.com/google/uuid"
)

// CheckoutRequest запрос на оплату тарифа
type CheckoutRequest struct {
	PlanID       domain.PlanID        `json:"planId"`
	Method       domain.PaymentMethod `json:"paymentMethod"`
	PredictionID *uuid.UUID           `json:"predictionId,omitempty"`
}

// CheckoutResult созданный платёж и адрес подтверждения у провайдера
type CheckoutResult struct {
	Payment         *domain.Payment `json:"payment"`
	ConfirmationURL string          `json:"confirmationUrl,omitempty"`
}

// CreateCheckout создаёт pending платёж через провайдера.
// Разовая покупка требует прогноз пользователя с закрытым доступом
func (s *Service) CreateCheckout(ctx context.Context, user *domain.User, req CheckoutRequest) (*CheckoutResult, error) {
	plan, ok := FindPlan(req.PlanID)
	if !ok {
		return nil, domain.WrapBusinessError(fmt.Errorf("%w: unknown plan %q", domain.ErrInvalidInput, req.PlanID))
	}
	if !req.Method.IsValid() {
		return nil, domain.WrapBusinessError(fmt.Errorf("%w: unknown payment method %q", domain.ErrInvalidInput, req.Method))
	}

	var predictionID *uuid.UUID
	if plan.ID == domain.PlanSingle {
		if err := s.checkPrediction(ctx, user, req.PredictionID); err != nil {
			return nil, err
		}
		predictionID = req.PredictionID
	}

	paymentID := uuid.New()
	now := s.Now().UTC()

	invoice, err := s.PaymentProvider.CreateInvoice(ctx, paymentPort.CreateInvoiceRequest{
		PaymentID:   paymentID,
		UserID:      user.ID,
		Amount:      plan.Price,
		Currency:    plan.Currency,
		Method:      req.Method,
		Description: plan.Name,
	})
	if err != nil {
		s.Log.Error("failed to create invoice",
			"error", err,
			"payment_id", paymentID,
			"user_id", user.ID,
		)
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	payment := &domain.Payment{
		ID:           paymentID,
		UserID:       user.ID,
		PlanID:       plan.ID,
		PredictionID: predictionID,
		Amount:       plan.Price,
		Currency:     plan.Currency,
		Method:       req.Method,
		ProviderID:   invoice.ProviderID,
		Status:       domain.PaymentStatusPending,
		Metadata: domain.PaymentMetadata{
			"plan_name": plan.Name,
		},
		CreatedAt: now,
	}

	if err := s.PaymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.Log.Info("payment created",
		"payment_id", paymentID,
		"user_id", user.ID,
		"plan_id", plan.ID,
		"amount", plan.Price,
	)

	return &CheckoutResult{
		Payment:         payment,
		ConfirmationURL: invoice.ConfirmationURL,
	}, nil
}

func (s *Service) checkPrediction(ctx context.Context, user *domain.User, predictionID *uuid.UUID) error {
	if predictionID == nil {
		return domain.WrapBusinessError(fmt.Errorf("%w: predictionId is required for a single purchase", domain.ErrInvalidInput))
	}

	calc, err := s.CalculationRepo.GetByID(ctx, *predictionID)
	if err != nil {
		return domain.WrapBusinessError(fmt.Errorf("prediction %s: %w", predictionID, err))
	}
	// чужой прогноз не отличаем от несуществующего
	if calc.UserID != user.ID {
		s.Log.Warn("prediction user mismatch",
			"prediction_id", predictionID,
			"prediction_user_id", calc.UserID,
			"user_id", user.ID,
		)
		return domain.WrapBusinessError(fmt.Errorf("prediction %s: %w", predictionID, domain.ErrNotFound))
	}
	if calc.AccessType == domain.AccessFull {
		return domain.WrapBusinessError(fmt.Errorf("%w: prediction %s is already unlocked", domain.ErrInvalidInput, predictionID))
	}
	return nil
}

// GetPayment возвращает платёж владельцу
func (s *Service) GetPayment(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Payment, error) {
	payment, err := s.PaymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapBusinessError(err)
	}
	if payment.UserID != user.ID {
		return nil, domain.WrapBusinessError(fmt.Errorf("payment %s: %w", id, domain.ErrNotFound))
	}
	return payment, nil
}
