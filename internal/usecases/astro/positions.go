package astro

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/cache"
)

const (
	currentPositionsKey = "astro:positions:current"
	currentPositionsTTL = 2 * time.Hour
)

// greenwich положение текущего неба не зависит от места, кроме звёздного времени
var greenwich = domain.Coordinates{Latitude: 51.4769, Longitude: 0, Timezone: "UTC"}

// UpdateCachedPositions пересчитывает текущие положения планет и кладёт их в кэш
func (s *Service) UpdateCachedPositions(ctx context.Context, now time.Time) error {
	if s.Cache == nil {
		s.Log.Warn("cache is not configured, skipping positions update")
		return nil
	}

	sky, err := s.currentSky(ctx, now)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(sky)
	if err != nil {
		return fmt.Errorf("failed to marshal positions: %w", err)
	}

	if err := s.Cache.Set(ctx, currentPositionsKey, string(payload), currentPositionsTTL); err != nil {
		return fmt.Errorf("failed to cache positions: %w", err)
	}

	return nil
}

// CurrentPositions текущие положения планет: из кэша, если он свежий, иначе расчёт
func (s *Service) CurrentPositions(ctx context.Context) (*domain.CurrentSky, error) {
	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, currentPositionsKey)
		if err == nil {
			var sky domain.CurrentSky
			if err := json.Unmarshal([]byte(raw), &sky); err == nil {
				return &sky, nil
			}
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.Log.Warn("failed to read current positions from cache", "error", err)
		}
	}

	return s.currentSky(ctx, s.Now().UTC())
}

func (s *Service) currentSky(ctx context.Context, now time.Time) (*domain.CurrentSky, error) {
	snapshot, err := s.Ephemeris.Snapshot(ctx, now, greenwich)
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}

	sky := &domain.CurrentSky{
		CalculatedAt: now,
		Positions:    make(map[domain.Body]domain.SkyPosition, len(snapshot.Positions)),
	}
	for body, raw := range snapshot.Positions {
		sign, degree := SignAt(raw.Longitude)
		sky.Positions[body] = domain.SkyPosition{
			Sign:       sign,
			Degree:     degree,
			Longitude:  raw.Longitude,
			Retrograde: raw.DistanceRate < 0,
		}
	}

	return sky, nil
}
