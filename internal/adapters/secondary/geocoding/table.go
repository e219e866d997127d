package geocoding

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/service"
)

type location struct {
	keys   []string
	coords domain.Coordinates
}

// locations порядок важен: выигрывает первое совпадение, первая запись используется по умолчанию
var locations = []location{
	{
		keys:   []string{"moscow", "москва", "москве"},
		coords: domain.Coordinates{Latitude: 55.7558, Longitude: 37.6173, Timezone: "Europe/Moscow"},
	},
	{
		keys:   []string{"petersburg", "петербург"},
		coords: domain.Coordinates{Latitude: 59.9311, Longitude: 30.3609, Timezone: "Europe/Moscow"},
	},
	{
		keys:   []string{"london", "лондон"},
		coords: domain.Coordinates{Latitude: 51.5074, Longitude: -0.1278, Timezone: "Europe/London"},
	},
	{
		keys:   []string{"new york", "нью-йорк", "нью йорк"},
		coords: domain.Coordinates{Latitude: 40.7128, Longitude: -74.0060, Timezone: "America/New_York"},
	},
	{
		keys:   []string{"paris", "париж"},
		coords: domain.Coordinates{Latitude: 48.8566, Longitude: 2.3522, Timezone: "Europe/Paris"},
	},
}

// Table геокодер по фиксированной таблице городов
type Table struct {
	Log *slog.Logger
}

func New(log *slog.Logger) service.IGeocoder {
	return &Table{Log: log}
}

// DefaultCoordinates координаты, если место не распознано (Москва)
func DefaultCoordinates() domain.Coordinates {
	return locations[0].coords
}

// Lookup ищет первый город таблицы, название которого входит в строку места
func (t *Table) Lookup(ctx context.Context, place string) domain.Coordinates {
	normalized := strings.ToLower(place)

	for _, loc := range locations {
		for _, key := range loc.keys {
			if strings.Contains(normalized, key) {
				return loc.coords
			}
		}
	}

	t.Log.DebugContext(ctx, "unknown birth place, using default coordinates", "place", place)
	return DefaultCoordinates()
}
