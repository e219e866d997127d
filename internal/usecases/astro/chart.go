package astro

import (
	"fmt"
	"math"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/pkg/astronomy"
)

const (
	signSpan   = 30.0
	housesNum  = 12
	maxDegree  = 29.99
	degreeStep = 100 // два знака после запятой
)

// SignAt знак и градус в знаке для эклиптической долготы
func SignAt(longitude float64) (domain.Sign, float64) {
	lon := astronomy.NormalizeDegrees(longitude)
	idx := int(math.Floor(lon / signSpan))
	if idx >= len(domain.Signs) {
		idx = len(domain.Signs) - 1
	}

	degree := math.Round(math.Mod(lon, signSpan)*degreeStep) / degreeStep
	// 29.996 округляется до 30.00, что уже следующий знак
	if degree >= signSpan {
		degree = maxDegree
	}

	return domain.Signs[idx], degree
}

// Ascendant упрощённый асцендент: (LST - RA Солнца) mod 360
func Ascendant(localSiderealTime, sunRightAscension float64) float64 {
	return astronomy.NormalizeDegrees(localSiderealTime - sunRightAscension)
}

// EqualHouses куспиды равнодомной системы от асцендента
func EqualHouses(ascendant float64) []float64 {
	houses := make([]float64, housesNum)
	for i := range houses {
		houses[i] = astronomy.NormalizeDegrees(ascendant + float64(i)*signSpan)
	}
	return houses
}

// AssembleChart собирает натальную карту из снимка эфемерид.
// Номера домов случайны и берутся из rng
func AssembleChart(snapshot *domain.SkySnapshot, rng domain.RNG, mode AspectMode) (domain.NatalChart, error) {
	planets := make(map[domain.Body]domain.PlanetaryPosition, len(domain.Bodies))

	for _, body := range domain.Bodies {
		raw, ok := snapshot.Positions[body]
		if !ok {
			return domain.NatalChart{}, fmt.Errorf("no ephemeris position for %s", body)
		}
		if !isFinite(raw.Longitude) || !isFinite(raw.DistanceRate) {
			return domain.NatalChart{}, fmt.Errorf("invalid ephemeris position for %s", body)
		}

		sign, degree := SignAt(raw.Longitude)
		planets[body] = domain.PlanetaryPosition{
			Sign:       sign,
			Degree:     degree,
			House:      rng.Intn(housesNum) + 1,
			Retrograde: raw.DistanceRate < 0,
		}
	}

	if !isFinite(snapshot.LocalSiderealTime) || !isFinite(snapshot.SunRightAscension) {
		return domain.NatalChart{}, fmt.Errorf("invalid sidereal data")
	}

	asc := Ascendant(snapshot.LocalSiderealTime, snapshot.SunRightAscension)
	rising, _ := SignAt(asc)

	return domain.NatalChart{
		SunSign:    planets[domain.BodySun].Sign,
		MoonSign:   planets[domain.BodyMoon].Sign,
		RisingSign: rising,
		Planets:    planets,
		Houses:     EqualHouses(asc),
		Aspects:    ClassifyAspects(planets, mode),
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
