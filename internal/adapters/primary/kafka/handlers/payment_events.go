package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	kafkaPorts "github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/kafka"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/usecase"
	"github.com/google/uuid"
)

// PaymentEventsHandler применяет статусы платежей, присланные провайдером
type PaymentEventsHandler struct {
	Settler usecase.IPaymentSettler
	Log     *slog.Logger
}

// NewPaymentEventsHandler создаёт handler топика payment.events
func NewPaymentEventsHandler(settler usecase.IPaymentSettler, log *slog.Logger) kafkaPorts.MessageHandler {
	return &PaymentEventsHandler{
		Settler: settler,
		Log:     log,
	}
}

// HandleMessage разбирает событие и передаёт его в use case.
// Битые сообщения возвращаются как BusinessError: их нет смысла обрабатывать повторно
func (h *PaymentEventsHandler) HandleMessage(ctx context.Context, key string, value []byte) error {
	var message PaymentEventMessage
	if err := json.Unmarshal(value, &message); err != nil {
		h.Log.Warn("malformed payment event", "error", err, "key", key)
		return domain.WrapBusinessError(fmt.Errorf("failed to unmarshal payment event: %w", err))
	}

	paymentID, err := uuid.Parse(message.PaymentID)
	if err != nil {
		h.Log.Warn("payment event without valid payment_id", "key", key, "payment_id", message.PaymentID)
		return domain.WrapBusinessError(fmt.Errorf("invalid payment_id: %w", err))
	}

	status := domain.PaymentStatus(message.Status)
	if !status.IsFinal() {
		h.Log.Debug("skipping non-final payment event", "payment_id", paymentID, "status", status)
		return nil
	}

	h.Log.Debug("processing payment event",
		"payment_id", paymentID,
		"status", status,
	)

	if err := h.Settler.ApplyEvent(ctx, domain.PaymentEvent{
		PaymentID: paymentID,
		Status:    status,
		Reason:    message.Reason,
	}); err != nil {
		return fmt.Errorf("failed to apply payment event: %w", err)
	}

	return nil
}

// PaymentEventMessage событие провайдера
type PaymentEventMessage struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}
