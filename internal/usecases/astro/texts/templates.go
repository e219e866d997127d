package texts

import (
	"fmt"
	"strings"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
)

var ruSigns = map[domain.Sign]string{
	domain.SignAries:       "Овен",
	domain.SignTaurus:      "Телец",
	domain.SignGemini:      "Близнецы",
	domain.SignCancer:      "Рак",
	domain.SignLeo:         "Лев",
	domain.SignVirgo:       "Дева",
	domain.SignLibra:       "Весы",
	domain.SignScorpio:     "Скорпион",
	domain.SignSagittarius: "Стрелец",
	domain.SignCapricorn:   "Козерог",
	domain.SignAquarius:    "Водолей",
	domain.SignPisces:      "Рыбы",
}

var ruPlanets = map[domain.Body]string{
	domain.BodySun:     "Солнце",
	domain.BodyMoon:    "Луна",
	domain.BodyMercury: "Меркурий",
	domain.BodyVenus:   "Венера",
	domain.BodyMars:    "Марс",
	domain.BodyJupiter: "Юпитер",
	domain.BodySaturn:  "Сатурн",
	domain.BodyUranus:  "Уран",
	domain.BodyNeptune: "Нептун",
	domain.BodyPluto:   "Плутон",
}

var ruAspects = map[domain.AspectType]string{
	domain.AspectConjunction: "соединение",
	domain.AspectOpposition:  "оппозиция",
	domain.AspectTrine:       "трин",
	domain.AspectSquare:      "квадрат",
	domain.AspectSextile:     "секстиль",
}

// SignRu название знака по-русски, неизвестный знак возвращается как есть
func SignRu(sign domain.Sign) string {
	if ru, ok := ruSigns[sign]; ok {
		return ru
	}
	return string(sign)
}

// PlanetRu название тела по-русски
func PlanetRu(body domain.Body) string {
	if ru, ok := ruPlanets[domain.Body(strings.ToLower(string(body)))]; ok {
		return ru
	}
	return string(body)
}

// AspectRu название аспекта по-русски
func AspectRu(aspect domain.AspectType) string {
	if ru, ok := ruAspects[aspect]; ok {
		return ru
	}
	return string(aspect)
}

// FormatPrediction собирает полный текст прогноза
func FormatPrediction(name string, chart domain.NatalChart) string {
	sunSign := SignRu(chart.SunSign)
	moonSign := SignRu(chart.MoonSign)
	risingSign := SignRu(chart.RisingSign)

	sections := []string{
		fmt.Sprintf(PredictionHeader, name),
		PredictionCosmicMap,
		fmt.Sprintf(PredictionSun, sunSign),
		fmt.Sprintf(PredictionMoon, moonSign),
		fmt.Sprintf(PredictionRising, risingSign),
		PredictionPlanetsHeader + "\n" + formatPlanets(chart.Planets),
		fmt.Sprintf(PredictionAspectsHeader, len(chart.Aspects)) + "\n" + formatAspects(chart.Aspects),
		fmt.Sprintf(PredictionTendencies, sunSign, moonSign),
		PredictionRecommendations,
		PredictionClosing,
	}

	return strings.TrimSpace(strings.Join(sections, "\n\n"))
}

// FormatPreview первые PreviewLines строк полного текста и приглашение купить полную версию
func FormatPreview(full string) string {
	lines := strings.Split(full, "\n")
	if len(lines) > PreviewLines {
		lines = lines[:PreviewLines]
	}
	return strings.Join(lines, "\n") + PreviewSuffix
}

// FormatCalculationTitle заголовок прогноза в кабинете
func FormatCalculationTitle(name string) string {
	return fmt.Sprintf(CalculationTitle, name)
}

func formatPlanets(planets map[domain.Body]domain.PlanetaryPosition) string {
	lines := make([]string, 0, len(planets))
	for _, body := range domain.Bodies {
		pos, ok := planets[body]
		if !ok {
			continue
		}
		retro := ""
		if pos.Retrograde {
			retro = PredictionRetrograde
		}
		lines = append(lines, fmt.Sprintf(PredictionPlanetLine, PlanetRu(body), SignRu(pos.Sign), pos.Degree, pos.House, retro))
	}
	return strings.Join(lines, "\n")
}

func formatAspects(aspects []domain.Aspect) string {
	if len(aspects) > MaxAspectsInPrediction {
		aspects = aspects[:MaxAspectsInPrediction]
	}
	lines := make([]string, 0, len(aspects))
	for _, a := range aspects {
		lines = append(lines, fmt.Sprintf(PredictionAspectLine,
			PlanetRu(a.Planet1), AspectRu(a.Aspect), PlanetRu(a.Planet2), a.Orb, a.Strength))
	}
	return strings.Join(lines, "\n")
}
