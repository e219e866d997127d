package cabinet

import (
	"context"
	"fmt"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/astro"
	"github.com/google/uuid"
)

const reportContentType = "text/plain; charset=utf-8"

// PredictionDetails прогноз с полным текстом
type PredictionDetails struct {
	*domain.Calculation
	FullContent string `json:"fullContent"`
}

// ExportLink временная ссылка на отчёт
type ExportLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ListPredictions сохранённые прогнозы пользователя, новые первыми. Полный текст не отдаётся
func (s *Service) ListPredictions(ctx context.Context, user *domain.User) ([]*domain.Calculation, error) {
	calcs, err := s.CalculationRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	return calcs, nil
}

// GetPrediction полный прогноз. Для закрытого прогноза без подписки возвращает ErrPaymentRequired
func (s *Service) GetPrediction(ctx context.Context, user *domain.User, id uuid.UUID) (*PredictionDetails, error) {
	calc, err := s.accessible(ctx, user, id)
	if err != nil {
		return nil, err
	}
	return &PredictionDetails{
		Calculation: calc,
		FullContent: calc.FullContent,
	}, nil
}

// ExportPrediction выгружает отчёт в хранилище, если его там ещё нет, и выдаёт presigned ссылку
func (s *Service) ExportPrediction(ctx context.Context, user *domain.User, id uuid.UUID) (*ExportLink, error) {
	if s.Storage == nil {
		return nil, domain.WrapBusinessError(domain.ErrStorageDisabled)
	}

	calc, err := s.accessible(ctx, user, id)
	if err != nil {
		return nil, err
	}

	path := astro.ReportPath(calc.UserID, calc.ID)
	if calc.ReportPath != nil {
		path = *calc.ReportPath
	} else {
		if err := s.Storage.PutFile(ctx, path, []byte(calc.FullContent), reportContentType); err != nil {
			return nil, fmt.Errorf("failed to upload report: %w", err)
		}
		if err := s.CalculationRepo.UpdateReportPath(ctx, calc.ID, path); err != nil {
			// ссылка всё равно рабочая, при следующей выгрузке файл перезапишется
			s.Log.Warn("failed to save report path", "error", err, "calculation_id", calc.ID)
		}
	}

	url, err := s.Storage.GetPresignedURL(ctx, path, s.Cfg.ReportURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign report url: %w", err)
	}

	s.Log.Info("prediction exported", "calculation_id", calc.ID, "user_id", user.ID)
	return &ExportLink{
		URL:       url,
		ExpiresAt: s.Now().UTC().Add(s.Cfg.ReportURLTTL),
	}, nil
}

// accessible прогноз владельца с открытым доступом
func (s *Service) accessible(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Calculation, error) {
	calc, err := s.CalculationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapBusinessError(err)
	}
	// чужой прогноз не отличаем от несуществующего
	if calc.UserID != user.ID {
		return nil, domain.WrapBusinessError(fmt.Errorf("prediction %s: %w", id, domain.ErrNotFound))
	}
	if calc.AccessType != domain.AccessFull && !user.HasActivePremium(s.Now()) {
		return nil, domain.WrapBusinessError(fmt.Errorf("%w: prediction %s costs %d", domain.ErrPaymentRequired, id, calc.Price))
	}
	return calc, nil
}
