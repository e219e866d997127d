package astro

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/cache"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/astro/texts"
	"github.com/google/uuid"
)

const (
	confidenceBase   = 80.0
	confidenceSpread = 20.0
	hoursPerDegree   = 1.0 / 15.0
	alertTimeout     = 5 * time.Second
)

// Calculate считает натальную карту и прогноз.
// user может быть nil; для авторизованного пользователя расчёт сохраняется в кабинет
func (s *Service) Calculate(ctx context.Context, in domain.BirthInput, user *domain.User) (*domain.CalculationResult, error) {
	instant, err := ParseBirthInput(in)
	if err != nil {
		s.Log.Debug("birth data rejected", "error", err)
		return nil, domain.WrapBusinessError(err)
	}

	coords := s.Geocoder.Lookup(ctx, in.BirthPlace)

	snapshot, err := s.snapshot(ctx, instant, coords)
	if errors.Is(err, domain.ErrInvalidBirthData) {
		// дата вне диапазона эфемерид
		s.Log.Debug("birth date rejected by ephemeris", "error", err)
		return nil, domain.WrapBusinessError(err)
	}
	if err != nil {
		return nil, s.calculationFailed(ctx, in, err)
	}

	chart, err := AssembleChart(snapshot, s.RNG, s.Cfg.AspectMode)
	if err != nil {
		return nil, s.calculationFailed(ctx, in, err)
	}

	now := s.Now().UTC()
	result := &domain.CalculationResult{
		NatalChart: chart,
		Prediction: GeneratePrediction(in.Name, chart),
		Metadata: domain.CalculationMetadata{
			CoordinatesUsed: coords,
			EphemerisSource: s.Cfg.EphemerisSource,
			CalculationTime: now,
			JulianDay:       snapshot.JulianDay,
			SiderealTime:    snapshot.LocalSiderealTime * hoursPerDegree,
			AIModel:         s.Cfg.AIModel,
			ConfidenceScore: s.RNG.Float64()*confidenceSpread + confidenceBase,
		},
	}

	if user != nil && s.CalculationRepo != nil {
		calc, err := s.saveCalculation(ctx, user, in, result, now)
		if err != nil {
			// карта уже посчитана, пользователь получит её без сохранения
			s.Log.Error("failed to save calculation",
				"error", err,
				"user_id", user.ID,
			)
		} else {
			result.CalculationID = &calc.ID
		}
	}

	s.publishCalculated(ctx, user, result)

	s.Log.Info("natal chart calculated",
		"sun", chart.SunSign,
		"moon", chart.MoonSign,
		"rising", chart.RisingSign,
		"aspects", len(chart.Aspects),
		"timezone", coords.Timezone,
	)

	return result, nil
}

// snapshot эфемериды детерминированы, поэтому кэшируются по моменту и долготе
func (s *Service) snapshot(ctx context.Context, instant time.Time, coords domain.Coordinates) (*domain.SkySnapshot, error) {
	cacheKey := fmt.Sprintf("astro:snapshot:%d:%.4f", instant.Unix(), coords.Longitude)

	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, cacheKey)
		switch {
		case err == nil:
			var cached domain.SkySnapshot
			if err := json.Unmarshal([]byte(raw), &cached); err == nil && len(cached.Positions) == len(domain.Bodies) {
				s.Log.Debug("ephemeris snapshot taken from cache", "cache_key", cacheKey)
				return &cached, nil
			}
			s.Log.Warn("broken ephemeris snapshot in cache, recalculating", "cache_key", cacheKey)
		case !errors.Is(err, cache.ErrCacheMiss):
			s.Log.Warn("failed to read ephemeris snapshot from cache", "error", err, "cache_key", cacheKey)
		}
	}

	snapshot, err := s.Ephemeris.Snapshot(ctx, instant, coords)
	if err != nil {
		return nil, fmt.Errorf("failed to get ephemeris snapshot: %w", err)
	}

	if s.Cache != nil {
		payload, err := json.Marshal(snapshot)
		if err == nil {
			err = s.Cache.Set(ctx, cacheKey, string(payload), s.Cfg.SnapshotTTL)
		}
		if err != nil {
			s.Log.Warn("failed to cache ephemeris snapshot", "error", err, "cache_key", cacheKey)
		}
	}

	return snapshot, nil
}

func (s *Service) saveCalculation(
	ctx context.Context,
	user *domain.User,
	in domain.BirthInput,
	result *domain.CalculationResult,
	now time.Time,
) (*domain.Calculation, error) {
	access := domain.AccessPreview
	if user.HasActivePremium(now) {
		access = domain.AccessFull
	}

	calc := &domain.Calculation{
		ID:          uuid.New(),
		UserID:      user.ID,
		Title:       texts.FormatCalculationTitle(in.Name),
		Name:        in.Name,
		BirthDate:   in.BirthDate,
		BirthTime:   in.BirthTime,
		BirthPlace:  in.BirthPlace,
		Chart:       result.NatalChart,
		Excerpt:     result.Prediction.Preview,
		FullContent: result.Prediction.Full,
		AccessType:  access,
		Price:       s.Cfg.PreviewPrice,
		CreatedAt:   now,
	}

	if s.Storage != nil {
		path := ReportPath(user.ID, calc.ID)
		if err := s.Storage.PutFile(ctx, path, []byte(calc.FullContent), "text/plain; charset=utf-8"); err != nil {
			s.Log.Warn("failed to upload prediction report",
				"error", err,
				"calculation_id", calc.ID,
			)
		} else {
			calc.ReportPath = &path
		}
	}

	if err := s.CalculationRepo.Create(ctx, calc); err != nil {
		return nil, fmt.Errorf("failed to create calculation: %w", err)
	}

	return calc, nil
}

// ReportPath путь полного текста прогноза в хранилище
func ReportPath(userID, calculationID uuid.UUID) string {
	return fmt.Sprintf("reports/%s/%s.txt", userID, calculationID)
}

func (s *Service) publishCalculated(ctx context.Context, user *domain.User, result *domain.CalculationResult) {
	if s.Events == nil {
		return
	}

	event := domain.ChartCalculatedEvent{
		CalculationID: result.CalculationID,
		SunSign:       result.NatalChart.SunSign,
		MoonSign:      result.NatalChart.MoonSign,
		RisingSign:    result.NatalChart.RisingSign,
		AspectsCount:  len(result.NatalChart.Aspects),
		JulianDay:     result.Metadata.JulianDay,
		CalculatedAt:  result.Metadata.CalculationTime,
	}
	if user != nil {
		event.UserID = &user.ID
	}

	if err := s.Events.PublishChartCalculated(ctx, event); err != nil {
		s.Log.Warn("failed to publish chart calculated event (non-critical)", "error", err)
	}
}

// calculationFailed логирует ошибку, алертит и оборачивает её в ErrCalculationFailed
func (s *Service) calculationFailed(ctx context.Context, in domain.BirthInput, cause error) error {
	s.Log.Error("natal chart calculation failed",
		"error", cause,
		"birth_date", in.BirthDate,
		"birth_time", in.BirthTime,
	)

	if s.AlerterService != nil {
		alertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)
		go func() {
			defer cancel()
			message := fmt.Sprintf("❌ Ошибка расчёта натальной карты\n%s %s\n\n%v", in.BirthDate, in.BirthTime, cause)
			if err := s.AlerterService.SendAlert(alertCtx, message); err != nil {
				s.Log.Warn("failed to send alert (non-critical)", "error", err)
			}
		}()
	}

	return fmt.Errorf("%w: %v", domain.ErrCalculationFailed, cause)
}
