package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/google/uuid"
)

const alertTimeout = 5 * time.Second

// SettleDue проверяет у провайдера pending платежи старше ProcessingDelay.
// Возвращает число проведённых платежей
func (s *Service) SettleDue(ctx context.Context) (int, error) {
	before := s.Now().UTC().Add(-s.Cfg.ProcessingDelay)

	pending, err := s.PaymentRepo.ListPending(ctx, before, s.Cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending payments: %w", err)
	}

	settled := 0
	var errs []error
	for _, payment := range pending {
		status, err := s.PaymentProvider.CheckStatus(ctx, payment.ProviderID)
		if err != nil {
			errs = append(errs, fmt.Errorf("payment %s: %w", payment.ID, err))
			continue
		}
		if !status.IsFinal() {
			continue
		}

		var reason string
		if status == domain.PaymentStatusFailed {
			reason = "declined by provider"
		}

		ok, err := s.apply(ctx, payment, status, reason)
		if err != nil {
			errs = append(errs, fmt.Errorf("payment %s: %w", payment.ID, err))
			continue
		}
		if ok {
			settled++
		}
	}

	if settled > 0 {
		s.Log.Info("pending payments settled", "count", settled, "checked", len(pending))
	}
	return settled, errors.Join(errs...)
}

// ApplyEvent применяет итоговый статус из события провайдера. Повторное событие игнорируется
func (s *Service) ApplyEvent(ctx context.Context, event domain.PaymentEvent) error {
	if !event.Status.IsFinal() {
		return nil
	}

	payment, err := s.PaymentRepo.GetByID(ctx, event.PaymentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.Log.Warn("payment event for unknown payment", "payment_id", event.PaymentID)
			return domain.WrapBusinessError(err)
		}
		return fmt.Errorf("failed to get payment: %w", err)
	}

	_, err = s.apply(ctx, payment, event.Status, event.Reason)
	return err
}

// apply переводит платёж в финальный статус и выдаёт продукт при успехе.
// false, если платёж уже был проведён раньше
func (s *Service) apply(ctx context.Context, payment *domain.Payment, status domain.PaymentStatus, reason string) (bool, error) {
	now := s.Now().UTC()

	var errorMessage *string
	if status != domain.PaymentStatusSucceeded && reason != "" {
		errorMessage = &reason
	}

	settled, err := s.PaymentRepo.Settle(ctx, payment.ID, status, now, errorMessage)
	if err != nil {
		return false, fmt.Errorf("failed to update payment status: %w", err)
	}
	if !settled {
		s.Log.Debug("payment already processed",
			"payment_id", payment.ID,
			"status", payment.Status,
		)
		return false, nil
	}

	payment.Status = status
	if status != domain.PaymentStatusSucceeded {
		payment.FailedAt = &now
		payment.ErrorMessage = errorMessage
		s.Log.Info("payment failed",
			"payment_id", payment.ID,
			"user_id", payment.UserID,
			"status", status,
			"reason", reason,
		)
		return true, nil
	}
	payment.SucceededAt = &now

	// деньги уже списаны, поэтому ошибка выдачи продукта не откатывает платёж
	if err := s.grantProduct(ctx, payment, now); err != nil {
		s.Log.Error("failed to grant product after payment",
			"error", err,
			"payment_id", payment.ID,
			"user_id", payment.UserID,
			"plan_id", payment.PlanID,
		)
		s.alert(ctx, fmt.Sprintf("⚠️ *Payment Success, Product Grant Failed*\n\n*Payment ID:* %s\n*User ID:* %s\n*Plan:* %s\n*Error:* %s",
			payment.ID, payment.UserID, payment.PlanID, err.Error()))
	}

	if s.Events != nil {
		if err := s.Events.PublishPaymentSucceeded(ctx, payment); err != nil {
			s.Log.Warn("failed to publish payment succeeded", "error", err, "payment_id", payment.ID)
		}
	}

	s.Log.Info("payment processed successfully",
		"payment_id", payment.ID,
		"user_id", payment.UserID,
		"plan_id", payment.PlanID,
		"amount", payment.Amount,
	)
	return true, nil
}

// grantProduct premium продлевает подписку, single открывает прогноз
func (s *Service) grantProduct(ctx context.Context, payment *domain.Payment, now time.Time) error {
	switch payment.PlanID {
	case domain.PlanPremium:
		return s.extendPremium(ctx, payment.UserID, now)
	case domain.PlanSingle:
		if payment.PredictionID == nil {
			return fmt.Errorf("single purchase %s has no prediction", payment.ID)
		}
		if err := s.CalculationRepo.UpdateAccess(ctx, *payment.PredictionID, domain.AccessFull); err != nil {
			return fmt.Errorf("failed to unlock prediction: %w", err)
		}
		s.Log.Info("prediction unlocked",
			"user_id", payment.UserID,
			"prediction_id", *payment.PredictionID,
		)
		return nil
	default:
		return fmt.Errorf("unknown plan %q", payment.PlanID)
	}
}

func (s *Service) extendPremium(ctx context.Context, userID uuid.UUID, now time.Time) error {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	user.ExtendPremium(now, premiumMonths)
	if err := s.UserRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to extend subscription: %w", err)
	}

	s.Log.Info("premium subscription extended",
		"user_id", userID,
		"expires_at", user.SubscriptionExpiresAt,
	)
	return nil
}

func (s *Service) alert(ctx context.Context, message string) {
	if s.AlerterService == nil {
		return
	}
	alertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)
	defer cancel()
	if err := s.AlerterService.SendAlert(alertCtx, message); err != nil {
		s.Log.Warn("failed to send alert", "error", err)
	}
}
