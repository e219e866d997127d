package domain

import (
	"time"

	"github.com/google/uuid"
)

// Body небесное тело натальной карты
type Body string

const (
	BodySun     Body = "sun"
	BodyMoon    Body = "moon"
	BodyMercury Body = "mercury"
	BodyVenus   Body = "venus"
	BodyMars    Body = "mars"
	BodyJupiter Body = "jupiter"
	BodySaturn  Body = "saturn"
	BodyUranus  Body = "uranus"
	BodyNeptune Body = "neptune"
	BodyPluto   Body = "pluto"
)

// Bodies порядок перечисления тел. От него зависит порядок пар аспектов
var Bodies = []Body{
	BodySun,
	BodyMoon,
	BodyMercury,
	BodyVenus,
	BodyMars,
	BodyJupiter,
	BodySaturn,
	BodyUranus,
	BodyNeptune,
	BodyPluto,
}

// Sign знак зодиака
type Sign string

const (
	SignAries       Sign = "Aries"
	SignTaurus      Sign = "Taurus"
	SignGemini      Sign = "Gemini"
	SignCancer      Sign = "Cancer"
	SignLeo         Sign = "Leo"
	SignVirgo       Sign = "Virgo"
	SignLibra       Sign = "Libra"
	SignScorpio     Sign = "Scorpio"
	SignSagittarius Sign = "Sagittarius"
	SignCapricorn   Sign = "Capricorn"
	SignAquarius    Sign = "Aquarius"
	SignPisces      Sign = "Pisces"
)

// Signs знаки по порядку, индекс 0 = Овен
var Signs = []Sign{
	SignAries,
	SignTaurus,
	SignGemini,
	SignCancer,
	SignLeo,
	SignVirgo,
	SignLibra,
	SignScorpio,
	SignSagittarius,
	SignCapricorn,
	SignAquarius,
	SignPisces,
}

// Index возвращает индекс знака (0..11) или -1
func (s Sign) Index() int {
	for i, sign := range Signs {
		if sign == s {
			return i
		}
	}
	return -1
}

// AspectType тип аспекта
type AspectType string

const (
	AspectConjunction AspectType = "Conjunction"
	AspectOpposition  AspectType = "Opposition"
	AspectTrine       AspectType = "Trine"
	AspectSquare      AspectType = "Square"
	AspectSextile     AspectType = "Sextile"
)

// BirthInput данные рождения из запроса
type BirthInput struct {
	Name       string `json:"name"`
	BirthDate  string `json:"birthDate"`
	BirthTime  string `json:"birthTime"`
	BirthPlace string `json:"birthPlace"`
}

// Coordinates координаты места рождения
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// PlanetaryPosition положение тела в карте
type PlanetaryPosition struct {
	Sign       Sign    `json:"sign"`
	Degree     float64 `json:"degree"`
	House      int     `json:"house"`
	Retrograde bool    `json:"retrograde"`
}

// Aspect угловое отношение между двумя телами
type Aspect struct {
	Planet1  Body       `json:"planet1"`
	Planet2  Body       `json:"planet2"`
	Aspect   AspectType `json:"aspect"`
	Orb      float64    `json:"orb"`
	Strength float64    `json:"strength"`
}

// NatalChart натальная карта
type NatalChart struct {
	SunSign    Sign                       `json:"sunSign"`
	MoonSign   Sign                       `json:"moonSign"`
	RisingSign Sign                       `json:"risingSign"`
	Planets    map[Body]PlanetaryPosition `json:"planets"`
	Houses     []float64                  `json:"houses"`
	Aspects    []Aspect                   `json:"aspects"`
}

// Prediction текст прогноза: превью и полная версия
type Prediction struct {
	Preview string `json:"preview"`
	Full    string `json:"full"`
}

// CalculationMetadata служебные данные расчёта
type CalculationMetadata struct {
	CoordinatesUsed Coordinates `json:"coordinatesUsed"`
	EphemerisSource string      `json:"ephemerisSource"`
	CalculationTime time.Time   `json:"calculationTime"`
	JulianDay       float64     `json:"julianDay"`
	SiderealTime    float64     `json:"siderealTime"`
	AIModel         string      `json:"aiModel"`
	ConfidenceScore float64     `json:"confidenceScore"`
}

// CalculationResult результат расчёта натальной карты
type CalculationResult struct {
	NatalChart NatalChart          `json:"natalChart"`
	Prediction Prediction          `json:"prediction"`
	Metadata   CalculationMetadata `json:"metadata"`
	// CalculationID заполнен, если расчёт сохранён в кабинет пользователя
	CalculationID *uuid.UUID `json:"calculationId,omitempty"`
}

// SkyPosition положение тела на небе без привязки к домам
type SkyPosition struct {
	Sign       Sign    `json:"sign"`
	Degree     float64 `json:"degree"`
	Longitude  float64 `json:"longitude"`
	Retrograde bool    `json:"retrograde"`
}

// CurrentSky текущие положения тел
type CurrentSky struct {
	CalculatedAt time.Time            `json:"calculatedAt"`
	Positions    map[Body]SkyPosition `json:"positions"`
}

// BodyPosition сырые данные эфемерид для тела
type BodyPosition struct {
	Body Body
	// Longitude эклиптическая долгота, градусы [0,360)
	Longitude float64
	// DistanceRate скорость изменения геоцентрического расстояния, а.е./сутки
	DistanceRate float64
}

// SkySnapshot данные эфемерид на момент рождения
type SkySnapshot struct {
	JulianDay float64
	// LocalSiderealTime местное звёздное время, градусы [0,360)
	LocalSiderealTime float64
	// SunRightAscension прямое восхождение Солнца, градусы [0,360)
	SunRightAscension float64
	Positions         map[Body]BodyPosition
}

// RNG источник случайности. Подменяется в тестах
type RNG interface {
	Intn(n int) int
	Float64() float64
}
