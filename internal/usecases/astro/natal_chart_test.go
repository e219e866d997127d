package astro

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/storage/inmemory"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moscow = domain.Coordinates{Latitude: 55.7558, Longitude: 37.6173, Timezone: "Europe/Moscow"}

type testEnv struct {
	service   *Service
	ephemeris *fakeEphemeris
	repo      *inmemory.CalculationRepo
	cache     *inmemory.Cache
	storage   *fakeStorage
	events    *fakeEvents
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		ephemeris: &fakeEphemeris{snapshot: testSnapshot()},
		repo:      inmemory.NewCalculationRepo(),
		cache:     inmemory.NewCache(),
		storage:   newFakeStorage(),
		events:    &fakeEvents{},
	}
	env.service = New(env.ephemeris, fakeGeocoder{coords: moscow}, env.repo, fixedRNG{house: 5, value: 0.5}, Config{PreviewPrice: 299}, testLogger()).
		WithCache(env.cache).
		WithStorage(env.storage).
		WithEvents(env.events)
	env.service.Now = func() time.Time {
		return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	return env
}

func TestCalculateAnonymous(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.service.Calculate(context.Background(), validInput(), nil)
	require.NoError(t, err)

	assert.Len(t, result.NatalChart.Planets, len(domain.Bodies))
	assert.LessOrEqual(t, len(result.NatalChart.Aspects), 45)
	assert.Nil(t, result.CalculationID)

	meta := result.Metadata
	assert.Equal(t, moscow, meta.CoordinatesUsed)
	assert.Equal(t, defaultEphemerisSource, meta.EphemerisSource)
	assert.Equal(t, defaultAIModel, meta.AIModel)
	assert.InDelta(t, 2448027.1041667, meta.JulianDay, 1e-9)
	assert.InDelta(t, 10, meta.SiderealTime, 1e-9)
	assert.InDelta(t, 90, meta.ConfidenceScore, 1e-9)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), meta.CalculationTime)

	require.Len(t, env.events.charts, 1)
	assert.Nil(t, env.events.charts[0].UserID)
	assert.Equal(t, domain.SignTaurus, env.events.charts[0].SunSign)
}

func TestCalculateCachesSnapshot(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.service.Calculate(context.Background(), validInput(), nil)
	require.NoError(t, err)
	second, err := env.service.Calculate(context.Background(), validInput(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, env.ephemeris.Calls())
	assert.Equal(t, first.NatalChart, second.NatalChart)
}

func TestCalculateInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	in := validInput()
	in.BirthDate = "2024-13-01"

	_, err := env.service.Calculate(context.Background(), in, nil)
	require.ErrorIs(t, err, domain.ErrInvalidBirthData)
	assert.True(t, domain.IsBusinessError(err))
	assert.Zero(t, env.ephemeris.Calls())
}

func TestCalculateEphemerisFailure(t *testing.T) {
	env := newTestEnv(t)
	env.ephemeris.err = errors.New("boom")
	alerter := &fakeAlerter{messages: make(chan string, 1)}
	env.service.WithAlerter(alerter)

	_, err := env.service.Calculate(context.Background(), validInput(), nil)
	require.ErrorIs(t, err, domain.ErrCalculationFailed)
	assert.False(t, domain.IsBusinessError(err))

	select {
	case message := <-alerter.messages:
		assert.Contains(t, message, "1990-05-15")
	case <-time.After(time.Second):
		t.Fatal("alert was not sent")
	}
}

func TestCalculateDateOutsideEphemerisRange(t *testing.T) {
	env := newTestEnv(t)
	env.ephemeris.err = fmt.Errorf("%w: year 1 is outside supported range 1800-2099", domain.ErrInvalidBirthData)
	alerter := &fakeAlerter{messages: make(chan string, 1)}
	env.service.WithAlerter(alerter)

	in := validInput()
	in.BirthDate = "0001-01-01"

	_, err := env.service.Calculate(context.Background(), in, nil)
	require.ErrorIs(t, err, domain.ErrInvalidBirthData)
	assert.True(t, domain.IsBusinessError(err))
	assert.NotErrorIs(t, err, domain.ErrCalculationFailed)

	select {
	case message := <-alerter.messages:
		t.Fatalf("unexpected alert: %s", message)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCalculateSavesForUser(t *testing.T) {
	env := newTestEnv(t)
	user := &domain.User{ID: uuid.New(), SubscriptionStatus: domain.SubscriptionFree}

	result, err := env.service.Calculate(context.Background(), validInput(), user)
	require.NoError(t, err)
	require.NotNil(t, result.CalculationID)

	calc, err := env.repo.GetByID(context.Background(), *result.CalculationID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, calc.UserID)
	assert.Equal(t, domain.AccessPreview, calc.AccessType)
	assert.Equal(t, int64(299), calc.Price)
	assert.Equal(t, "Натальная карта: Анна", calc.Title)
	assert.Equal(t, result.Prediction.Preview, calc.Excerpt)
	assert.Equal(t, result.Prediction.Full, calc.FullContent)

	require.NotNil(t, calc.ReportPath)
	assert.Equal(t, ReportPath(user.ID, calc.ID), *calc.ReportPath)
	report, err := env.storage.GetFile(context.Background(), *calc.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, result.Prediction.Full, string(report))

	require.Len(t, env.events.charts, 1)
	require.NotNil(t, env.events.charts[0].UserID)
	assert.Equal(t, user.ID, *env.events.charts[0].UserID)
	assert.Equal(t, result.CalculationID, env.events.charts[0].CalculationID)
}

func TestCalculatePremiumUserGetsFullAccess(t *testing.T) {
	env := newTestEnv(t)
	user := &domain.User{ID: uuid.New(), SubscriptionStatus: domain.SubscriptionPremium}

	result, err := env.service.Calculate(context.Background(), validInput(), user)
	require.NoError(t, err)

	calc, err := env.repo.GetByID(context.Background(), *result.CalculationID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessFull, calc.AccessType)
}

func TestCalculateStorageFailureKeepsCalculation(t *testing.T) {
	env := newTestEnv(t)
	env.storage.err = errors.New("minio is down")
	user := &domain.User{ID: uuid.New()}

	result, err := env.service.Calculate(context.Background(), validInput(), user)
	require.NoError(t, err)
	require.NotNil(t, result.CalculationID)

	calc, err := env.repo.GetByID(context.Background(), *result.CalculationID)
	require.NoError(t, err)
	assert.Nil(t, calc.ReportPath)
}

func TestCurrentPositions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.service.UpdateCachedPositions(ctx, env.service.Now()))
	assert.Equal(t, 1, env.ephemeris.Calls())

	sky, err := env.service.CurrentPositions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, env.ephemeris.Calls())
	assert.Len(t, sky.Positions, len(domain.Bodies))
	assert.Equal(t, domain.SignTaurus, sky.Positions[domain.BodySun].Sign)
	assert.True(t, sky.Positions[domain.BodyMercury].Retrograde)
}

func TestCurrentPositionsWithoutCache(t *testing.T) {
	env := newTestEnv(t)
	env.service.Cache = nil

	sky, err := env.service.CurrentPositions(context.Background())
	require.NoError(t, err)
	assert.Len(t, sky.Positions, len(domain.Bodies))
}
