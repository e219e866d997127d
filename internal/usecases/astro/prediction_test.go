package astro

import (
	"strings"
	"testing"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/astro/texts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePrediction(t *testing.T) {
	chart, err := AssembleChart(testSnapshot(), fixedRNG{house: 3}, AspectModeEcliptic)
	require.NoError(t, err)

	prediction := GeneratePrediction("Анна", chart)

	assert.True(t, strings.HasPrefix(prediction.Full, "Глубокий астрологический анализ для Анна"))
	assert.Contains(t, prediction.Full, "Ваше Солнце в знаке Телец")
	assert.Contains(t, prediction.Full, "Луна в Скорпион")
	assert.Contains(t, prediction.Full, "Асцендент в Рак")
	assert.Contains(t, prediction.Full, "Солнце: Телец 10.00° в 3 доме")
	assert.Contains(t, prediction.Full, "Меркурий: Телец 25.50° в 3 доме (ретроград)")
	assert.Contains(t, prediction.Full, "выявил ")

	require.True(t, strings.HasSuffix(prediction.Preview, texts.PreviewSuffix))
	body := strings.TrimSuffix(prediction.Preview, texts.PreviewSuffix)
	assert.Len(t, strings.Split(body, "\n"), texts.PreviewLines)
	assert.True(t, strings.HasPrefix(prediction.Full, body))
}

func TestGeneratePredictionListsAtMostFiveAspects(t *testing.T) {
	chart, err := AssembleChart(testSnapshot(), fixedRNG{house: 3}, AspectModeEcliptic)
	require.NoError(t, err)
	require.Greater(t, len(chart.Aspects), texts.MaxAspectsInPrediction)

	prediction := GeneratePrediction("Анна", chart)
	assert.Equal(t, texts.MaxAspectsInPrediction, strings.Count(prediction.Full, "(орбис "))
}
