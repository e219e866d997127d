package astro

import (
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/astro/texts"
)

// GeneratePrediction текст прогноза и его превью
func GeneratePrediction(name string, chart domain.NatalChart) domain.Prediction {
	full := texts.FormatPrediction(name, chart)
	return domain.Prediction{
		Preview: texts.FormatPreview(full),
		Full:    full,
	}
}
