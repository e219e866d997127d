package astro

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedRNG детерминированный источник: Intn всегда возвращает house-1
type fixedRNG struct {
	house int
	value float64
}

func (r fixedRNG) Intn(n int) int {
	return (r.house - 1) % n
}

func (r fixedRNG) Float64() float64 {
	return r.value
}

type fakeEphemeris struct {
	mu       sync.Mutex
	snapshot *domain.SkySnapshot
	err      error
	calls    int
}

func (f *fakeEphemeris) Snapshot(ctx context.Context, instant time.Time, coords domain.Coordinates) (*domain.SkySnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.snapshot
	return &copied, nil
}

func (f *fakeEphemeris) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeGeocoder struct {
	coords domain.Coordinates
}

func (f fakeGeocoder) Lookup(ctx context.Context, place string) domain.Coordinates {
	return f.coords
}

type fakeStorage struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) PutFile(ctx context.Context, path string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.files[path] = data
	return nil
}

func (f *fakeStorage) GetFile(ctx context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return data, nil
}

func (f *fakeStorage) GetPresignedURL(ctx context.Context, path string, expires time.Duration) (string, error) {
	return "https://storage.local/" + path, nil
}

type fakeEvents struct {
	mu     sync.Mutex
	charts []domain.ChartCalculatedEvent
}

func (f *fakeEvents) PublishChartCalculated(ctx context.Context, event domain.ChartCalculatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.charts = append(f.charts, event)
	return nil
}

func (f *fakeEvents) PublishPaymentSucceeded(ctx context.Context, payment *domain.Payment) error {
	return nil
}

type fakeAlerter struct {
	messages chan string
}

func (f *fakeAlerter) SendAlert(ctx context.Context, message string) error {
	f.messages <- message
	return nil
}

// testSnapshot снимок, в котором Солнце в 10° Тельца, а Луна в 12° Скорпиона
func testSnapshot() *domain.SkySnapshot {
	longitudes := map[domain.Body]float64{
		domain.BodySun:     40,
		domain.BodyMoon:    222,
		domain.BodyMercury: 55.5,
		domain.BodyVenus:   10,
		domain.BodyMars:    310,
		domain.BodyJupiter: 100,
		domain.BodySaturn:  295,
		domain.BodyUranus:  280,
		domain.BodyNeptune: 283,
		domain.BodyPluto:   227,
	}
	rates := map[domain.Body]float64{
		domain.BodyMercury: -0.01,
		domain.BodySaturn:  -0.002,
	}

	snapshot := &domain.SkySnapshot{
		JulianDay:         2448027.1041667,
		LocalSiderealTime: 150,
		SunRightAscension: 40,
		Positions:         make(map[domain.Body]domain.BodyPosition),
	}
	for body, lon := range longitudes {
		rate, ok := rates[body]
		if !ok {
			rate = 0.001
		}
		snapshot.Positions[body] = domain.BodyPosition{Body: body, Longitude: lon, DistanceRate: rate}
	}
	return snapshot
}
