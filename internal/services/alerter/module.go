package alerter

import (
	"context"
	"log/slog"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/service"
)

// Sender отправитель алертов (Telegram-клиент)
type Sender interface {
	SendAlert(ctx context.Context, message string) error
}

// Service реализует IAlerterService. Без отправителя алерт только пишется в лог
type Service struct {
	sender Sender
	log    *slog.Logger
}

// New создаёт новый сервис для отправки алертов. sender может быть nil
func New(sender Sender, log *slog.Logger) service.IAlerterService {
	return &Service{
		sender: sender,
		log:    log,
	}
}

// SendAlert отправляет алерт
func (s *Service) SendAlert(ctx context.Context, message string) error {
	if s.sender == nil {
		s.log.WarnContext(ctx, "alert (sender is not configured)", "message", message)
		return nil
	}

	return s.sender.SendAlert(ctx, message)
}
