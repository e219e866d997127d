package service

import (
	"context"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
)

// IEphemeris источник положений небесных тел
type IEphemeris interface {
	// Snapshot возвращает долготы и скорости тел, звёздное время места и прямое восхождение Солнца
	Snapshot(ctx context.Context, instant time.Time, coords domain.Coordinates) (*domain.SkySnapshot, error)
}

// IGeocoder переводит название места в координаты
type IGeocoder interface {
	// Lookup никогда не возвращает ошибку: неизвестное место даёт координаты по умолчанию
	Lookup(ctx context.Context, place string) domain.Coordinates
}

// IAlerterService интерфейс для отправки алертов
type IAlerterService interface {
	SendAlert(ctx context.Context, message string) error
}

// IEventPublisher публикует доменные события
type IEventPublisher interface {
	PublishChartCalculated(ctx context.Context, event domain.ChartCalculatedEvent) error
	PublishPaymentSucceeded(ctx context.Context, payment *domain.Payment) error
}
