package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type countingJob struct {
	name     string
	interval time.Duration
	runs     atomic.Int32
	failures int32 // сколько первых запусков падает
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) NextRun(now time.Time) time.Time { return now.Add(j.interval) }

func (j *countingJob) Run(ctx context.Context) error {
	n := j.runs.Add(1)
	if n <= j.failures {
		return errors.New("temporary failure")
	}
	return nil
}

type recordingAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (a *recordingAlerter) SendAlert(ctx context.Context, message string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
	return nil
}

func (a *recordingAlerter) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.messages)
}

func TestSchedulerRunsJobsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	job := &countingJob{name: "tick", interval: 5 * time.Millisecond}

	scheduler := NewScheduler(testLogger(), nil)
	scheduler.Register(job)
	require.NoError(t, scheduler.Start(ctx))

	require.Eventually(t, func() bool { return job.runs.Load() >= 3 }, time.Second, time.Millisecond)

	cancel()
	scheduler.Wait()
}

func TestSchedulerRetriesAndRecovers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	job := &countingJob{name: "flaky", interval: time.Hour, failures: 2}
	alerter := &recordingAlerter{}
	scheduler := NewScheduler(testLogger(), alerter).
		WithRetryDelays([]time.Duration{time.Millisecond, time.Millisecond, time.Millisecond})

	attemptErrors, err := scheduler.executeJobWithRetry(ctx, job)
	require.NoError(t, err)
	assert.Nil(t, attemptErrors)
	assert.Equal(t, int32(3), job.runs.Load())
	assert.Zero(t, alerter.count())
}

func TestSchedulerAlertsAfterAllRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	job := &countingJob{name: "broken", interval: time.Millisecond, failures: 1 << 30}
	alerter := &recordingAlerter{}

	scheduler := NewScheduler(testLogger(), alerter).
		WithRetryDelays([]time.Duration{time.Millisecond, time.Millisecond})
	scheduler.Register(job)
	require.NoError(t, scheduler.Start(ctx))

	require.Eventually(t, func() bool { return alerter.count() >= 1 }, time.Second, time.Millisecond)
	cancel()
	scheduler.Wait()

	assert.GreaterOrEqual(t, job.runs.Load(), int32(3))
	alerter.mu.Lock()
	defer alerter.mu.Unlock()
	assert.Contains(t, alerter.messages[0], "Джоба: broken")
	assert.Contains(t, alerter.messages[0], "Попытка 3: temporary failure")
}

func TestSchedulerStopsDuringRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	job := &countingJob{name: "slow-retry", interval: time.Millisecond, failures: 1 << 30}

	scheduler := NewScheduler(testLogger(), nil).WithRetryDelays([]time.Duration{time.Hour})
	scheduler.Register(job)
	require.NoError(t, scheduler.Start(ctx))

	require.Eventually(t, func() bool { return job.runs.Load() >= 1 }, time.Second, time.Millisecond)
	cancel()
	scheduler.Wait()
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestSchedulerWithoutJobs(t *testing.T) {
	scheduler := NewScheduler(testLogger(), nil)
	require.NoError(t, scheduler.Start(context.Background()))
	scheduler.Wait()
}

func TestPositionsUpdaterNextRun(t *testing.T) {
	job := NewPositionsUpdater(nil, testLogger())
	now := time.Date(2025, 1, 1, 10, 25, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC), job.NextRun(now))
	assert.Equal(t, "positions-updater", job.Name())
}

type fakePositions struct {
	calls int
	err   error
}

func (f *fakePositions) UpdateCachedPositions(ctx context.Context, now time.Time) error {
	f.calls++
	return f.err
}

func TestPositionsUpdaterRun(t *testing.T) {
	service := &fakePositions{}
	job := NewPositionsUpdater(service, testLogger())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, service.calls)

	service.err = errors.New("cache down")
	require.Error(t, job.Run(context.Background()))
}

type fakePending struct {
	settled int
	err     error
}

func (f *fakePending) SettleDue(ctx context.Context) (int, error) {
	return f.settled, f.err
}

func TestPaymentSettler(t *testing.T) {
	job := NewPaymentSettler(&fakePending{settled: 2}, 0, testLogger())
	now := time.Now()
	assert.Equal(t, now.Add(time.Second), job.NextRun(now))
	require.NoError(t, job.Run(context.Background()))

	failing := NewPaymentSettler(&fakePending{err: errors.New("db down")}, time.Minute, testLogger())
	require.Error(t, failing.Run(context.Background()))
}
