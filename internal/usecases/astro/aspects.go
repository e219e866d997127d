package astro

import (
	"fmt"
	"math"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
)

// AspectMode способ восстановления абсолютной долготы из знака и градуса
type AspectMode string

const (
	// AspectModeEcliptic долгота = индекс знака * 30 + градус
	AspectModeEcliptic AspectMode = "ecliptic"
	// AspectModeLegacy смещение 0 для Овна, 30 для Тельца, 60 для остальных знаков.
	// Повторяет поведение первой версии сайта, астрономически неверно
	AspectModeLegacy AspectMode = "legacy"
)

// ParseAspectMode разбирает режим из конфигурации
func ParseAspectMode(value string) (AspectMode, error) {
	switch AspectMode(value) {
	case "", AspectModeEcliptic:
		return AspectModeEcliptic, nil
	case AspectModeLegacy:
		return AspectModeLegacy, nil
	default:
		return "", fmt.Errorf("unknown aspect mode %q", value)
	}
}

type aspectTemplate struct {
	aspect domain.AspectType
	angle  float64
	orb    float64
}

// aspectTemplates в порядке приоритета: для пары берётся первый подошедший
var aspectTemplates = []aspectTemplate{
	{aspect: domain.AspectConjunction, angle: 0, orb: 8},
	{aspect: domain.AspectOpposition, angle: 180, orb: 8},
	{aspect: domain.AspectTrine, angle: 120, orb: 6},
	{aspect: domain.AspectSquare, angle: 90, orb: 6},
	{aspect: domain.AspectSextile, angle: 60, orb: 4},
}

// MaxOrb максимальный орбис для типа аспекта
func MaxOrb(aspect domain.AspectType) (float64, bool) {
	for _, t := range aspectTemplates {
		if t.aspect == aspect {
			return t.orb, true
		}
	}
	return 0, false
}

// ClassifyAspects находит аспекты для всех неупорядоченных пар тел в порядке domain.Bodies
func ClassifyAspects(planets map[domain.Body]domain.PlanetaryPosition, mode AspectMode) []domain.Aspect {
	aspects := make([]domain.Aspect, 0)

	for i := 0; i < len(domain.Bodies); i++ {
		first, ok := planets[domain.Bodies[i]]
		if !ok {
			continue
		}
		for j := i + 1; j < len(domain.Bodies); j++ {
			second, ok := planets[domain.Bodies[j]]
			if !ok {
				continue
			}

			diff := math.Abs(absoluteAngle(first, mode) - absoluteAngle(second, mode))
			actual := math.Min(diff, 360-diff)

			for _, t := range aspectTemplates {
				orb := math.Abs(actual - t.angle)
				if orb > t.orb {
					continue
				}
				aspects = append(aspects, domain.Aspect{
					Planet1:  domain.Bodies[i],
					Planet2:  domain.Bodies[j],
					Aspect:   t.aspect,
					Orb:      orb,
					Strength: math.Max(0, 100*(1-orb/t.orb)),
				})
				break
			}
		}
	}

	return aspects
}

func absoluteAngle(pos domain.PlanetaryPosition, mode AspectMode) float64 {
	if mode == AspectModeLegacy {
		offset := 60.0
		switch pos.Sign {
		case domain.SignAries:
			offset = 0
		case domain.SignTaurus:
			offset = 30
		}
		return math.Mod(pos.Degree+offset, 360)
	}

	idx := pos.Sign.Index()
	if idx < 0 {
		idx = 0
	}
	return math.Mod(float64(idx)*30+pos.Degree, 360)
}
