// Package astronomy угловые утилиты для расчёта карты. Сами эфемериды
// считаются в adapters/secondary/ephemeris
package astronomy

import "math"

const degreesInCircle = 360.0

// NormalizeDegrees приводит угол к [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, degreesInCircle)
	if deg < 0 {
		deg += degreesInCircle
	}
	// -1e-15 + 360 даёт ровно 360
	if deg >= degreesInCircle {
		deg = 0
	}
	return deg
}
