package cabinet

import (
	"context"
	"fmt"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/google/uuid"
)

type demoPrediction struct {
	title       string
	date        time.Time
	excerpt     string
	fullContent string
	access      domain.AccessType
	price       int64
}

var demoPredictions = []demoPrediction{
	{
		title:       "Карьерный прорыв в ноябре",
		date:        time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		excerpt:     "Звезды указывают на значительные изменения в профессиональной сфере. Венера в соединении с Юпитером...",
		fullContent: "Звезды указывают на значительные изменения в профессиональной сфере. Венера в соединении с Юпитером создает благоприятные аспекты для карьерного роста. В период с 15 по 25 ноября вас ожидают важные деловые предложения. Рекомендуется проявить инициативу в переговорах и не бояться брать на себя дополнительные обязательства.",
		access:      domain.AccessFull,
		price:       499,
	},
	{
		title:       "Любовный гороскоп на декабрь",
		date:        time.Date(2024, 10, 28, 0, 0, 0, 0, time.UTC),
		excerpt:     "Марс входит в знак Рыб, что обещает романтические встречи и глубокие эмоциональные переживания...",
		fullContent: "Марс входит в знак Рыб, что обещает романтические встречи и глубокие эмоциональные переживания. Для одиноких людей это время знакомств с потенциальными партнерами. Семейным парам рекомендуется больше времени проводить вместе и открыто обсуждать свои чувства.",
		access:      domain.AccessPreview,
		price:       399,
	},
	{
		title:       "Финансовый прогноз 2024",
		date:        time.Date(2024, 10, 20, 0, 0, 0, 0, time.UTC),
		excerpt:     "Сатурн в транзите через ваш дом денег указывает на необходимость пересмотреть финансовую стратегию...",
		fullContent: "Сатурн в транзите через ваш дом денег указывает на необходимость пересмотреть финансовую стратегию. Период благоприятен для долгосрочных инвестиций и накоплений. Избегайте импульсивных трат в первой половине месяца.",
		access:      domain.AccessFull,
		price:       699,
	},
}

// SeedDemoPredictions наполняет кабинет демо-пользователя, если в нём ещё пусто
func (s *Service) SeedDemoPredictions(ctx context.Context, userID uuid.UUID) error {
	existing, err := s.CalculationRepo.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list predictions: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, demo := range demoPredictions {
		calc := &domain.Calculation{
			ID:          uuid.New(),
			UserID:      userID,
			Title:       demo.title,
			Excerpt:     demo.excerpt,
			FullContent: demo.fullContent,
			AccessType:  demo.access,
			Price:       demo.price,
			CreatedAt:   demo.date,
		}
		if err := s.CalculationRepo.Create(ctx, calc); err != nil {
			return fmt.Errorf("failed to seed prediction: %w", err)
		}
	}

	s.Log.Info("demo predictions seeded", "user_id", userID, "count", len(demoPredictions))
	return nil
}
