package payment

import "github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"

const (
	currencyRUB = "RUB"

	singlePrice          int64 = 299
	premiumPrice         int64 = 999
	premiumOriginalPrice int64 = 1299
	premiumMonths              = 1
)

// Plans тарифы на витрине
func Plans() []domain.PricingPlan {
	original := premiumOriginalPrice
	return []domain.PricingPlan{
		{
			ID:       domain.PlanSingle,
			Name:     "Разовый прогноз",
			Price:    singlePrice,
			Currency: currencyRUB,
			Features: []string{
				"Полная натальная карта",
				"Детальный анализ планет",
				"Расчёт всех аспектов",
				"Персональные рекомендации",
				"Научные источники данных",
			},
		},
		{
			ID:            domain.PlanPremium,
			Name:          "Премиум подписка",
			Price:         premiumPrice,
			OriginalPrice: &original,
			Period:        "месяц",
			Currency:      currencyRUB,
			Features: []string{
				"Безлимитные натальные карты",
				"Транзиты и прогрессии",
				"Совместимость партнёров",
				"История всех прогнозов",
				"Персональный AI-астролог",
				"Приоритетная поддержка",
				"Эксклюзивные техники",
				"Экспорт данных",
			},
			Popular: true,
		},
	}
}

// FindPlan ищет тариф по ID
func FindPlan(id domain.PlanID) (domain.PricingPlan, bool) {
	for _, plan := range Plans() {
		if plan.ID == id {
			return plan, true
		}
	}
	return domain.PricingPlan{}, false
}
