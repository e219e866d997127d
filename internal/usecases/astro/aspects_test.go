package astro

import (
	"testing"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAspectMode(t *testing.T) {
	mode, err := ParseAspectMode("")
	require.NoError(t, err)
	assert.Equal(t, AspectModeEcliptic, mode)

	mode, err = ParseAspectMode("legacy")
	require.NoError(t, err)
	assert.Equal(t, AspectModeLegacy, mode)

	_, err = ParseAspectMode("tropical")
	require.Error(t, err)
}

func TestClassifyAspectsModes(t *testing.T) {
	planets := map[domain.Body]domain.PlanetaryPosition{
		domain.BodySun:  {Sign: domain.SignAries, Degree: 10},
		domain.BodyMoon: {Sign: domain.SignLibra, Degree: 12},
	}

	ecliptic := ClassifyAspects(planets, AspectModeEcliptic)
	require.Len(t, ecliptic, 1)
	assert.Equal(t, domain.AspectOpposition, ecliptic[0].Aspect)
	assert.Equal(t, domain.BodySun, ecliptic[0].Planet1)
	assert.Equal(t, domain.BodyMoon, ecliptic[0].Planet2)
	assert.InDelta(t, 2, ecliptic[0].Orb, 1e-9)
	assert.InDelta(t, 75, ecliptic[0].Strength, 1e-9)

	// Овен +0, Весы +60: 10 и 72, разница 62
	legacy := ClassifyAspects(planets, AspectModeLegacy)
	require.Len(t, legacy, 1)
	assert.Equal(t, domain.AspectSextile, legacy[0].Aspect)
	assert.InDelta(t, 2, legacy[0].Orb, 1e-9)
	assert.InDelta(t, 50, legacy[0].Strength, 1e-9)
}

func TestClassifyAspectsWrapAround(t *testing.T) {
	planets := map[domain.Body]domain.PlanetaryPosition{
		domain.BodyVenus: {Sign: domain.SignPisces, Degree: 28},
		domain.BodyMars:  {Sign: domain.SignAries, Degree: 2},
	}

	aspects := ClassifyAspects(planets, AspectModeEcliptic)
	require.Len(t, aspects, 1)
	assert.Equal(t, domain.AspectConjunction, aspects[0].Aspect)
	assert.InDelta(t, 4, aspects[0].Orb, 1e-9)
	assert.InDelta(t, 50, aspects[0].Strength, 1e-9)
}

func TestClassifyAspectsNoMatch(t *testing.T) {
	planets := map[domain.Body]domain.PlanetaryPosition{
		domain.BodySun:  {Sign: domain.SignAries, Degree: 0},
		domain.BodyMoon: {Sign: domain.SignTaurus, Degree: 15},
	}

	aspects := ClassifyAspects(planets, AspectModeEcliptic)
	assert.NotNil(t, aspects)
	assert.Empty(t, aspects)
}

func TestClassifyAspectsInvariants(t *testing.T) {
	chart, err := AssembleChart(testSnapshot(), fixedRNG{house: 1}, AspectModeEcliptic)
	require.NoError(t, err)
	require.NotEmpty(t, chart.Aspects)

	seen := make(map[[2]domain.Body]bool)
	for _, a := range chart.Aspects {
		pair := [2]domain.Body{a.Planet1, a.Planet2}
		assert.False(t, seen[pair], "pair %v classified twice", pair)
		seen[pair] = true

		assert.NotEqual(t, a.Planet1, a.Planet2)
		maxOrb, ok := MaxOrb(a.Aspect)
		require.True(t, ok)
		assert.LessOrEqual(t, a.Orb, maxOrb)
		assert.GreaterOrEqual(t, a.Strength, 0.0)
		assert.LessOrEqual(t, a.Strength, 100.0)
	}

	// Юпитер 100°, Сатурн 295°: 195°, разница 165° вне всех орбисов
	assert.False(t, seen[[2]domain.Body{domain.BodyJupiter, domain.BodySaturn}])
	// Уран 280°, Нептун 283°: соединение
	assert.True(t, seen[[2]domain.Body{domain.BodyUranus, domain.BodyNeptune}])
}
