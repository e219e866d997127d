package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/kafka"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/service"
)

// EventPublisher публикует доменные события в Kafka.
// Продюсер может быть nil, тогда событие этого типа пропускается
type EventPublisher struct {
	ChartCalculated  kafka.IKafkaProducer
	PaymentSucceeded kafka.IKafkaProducer
	Log              *slog.Logger
}

var _ service.IEventPublisher = (*EventPublisher)(nil)

func NewEventPublisher(chartCalculated, paymentSucceeded kafka.IKafkaProducer, log *slog.Logger) *EventPublisher {
	return &EventPublisher{
		ChartCalculated:  chartCalculated,
		PaymentSucceeded: paymentSucceeded,
		Log:              log,
	}
}

// PublishChartCalculated ключ сообщения = id расчёта, для анонимных расчётов юлианская дата
func (p *EventPublisher) PublishChartCalculated(ctx context.Context, event domain.ChartCalculatedEvent) error {
	if p.ChartCalculated == nil {
		return nil
	}

	key := fmt.Sprintf("jd:%.6f", event.JulianDay)
	if event.CalculationID != nil {
		key = event.CalculationID.String()
	}

	return p.send(ctx, p.ChartCalculated, key, event)
}

// PublishPaymentSucceeded ключ сообщения = id пользователя, чтобы события одного пользователя шли по порядку
func (p *EventPublisher) PublishPaymentSucceeded(ctx context.Context, payment *domain.Payment) error {
	if p.PaymentSucceeded == nil {
		return nil
	}

	event := paymentSucceededMessage{
		PaymentID: payment.ID.String(),
		UserID:    payment.UserID.String(),
		PlanID:    string(payment.PlanID),
		Amount:    payment.Amount,
		Currency:  payment.Currency,
	}
	if payment.PredictionID != nil {
		id := payment.PredictionID.String()
		event.PredictionID = &id
	}
	if payment.SucceededAt != nil {
		event.SucceededAt = payment.SucceededAt.UTC().Format(time.RFC3339)
	}

	return p.send(ctx, p.PaymentSucceeded, payment.UserID.String(), event)
}

func (p *EventPublisher) send(ctx context.Context, producer kafka.IKafkaProducer, key string, payload interface{}) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := producer.Send(ctx, key, value); err != nil {
		p.Log.Warn("failed to publish event",
			"error", err,
			"key", key,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

type paymentSucceededMessage struct {
	PaymentID    string  `json:"payment_id"`
	UserID       string  `json:"user_id"`
	PlanID       string  `json:"plan_id"`
	PredictionID *string `json:"prediction_id,omitempty"`
	Amount       int64   `json:"amount"`
	Currency     string  `json:"currency"`
	SucceededAt  string  `json:"succeeded_at,omitempty"`
}
