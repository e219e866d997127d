package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/jobs"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/service"
)

// DefaultRetryDelays паузы перед повторами упавшей джобы: now + 1m + 10m + 30m
var DefaultRetryDelays = []time.Duration{
	1 * time.Minute,
	10 * time.Minute,
	30 * time.Minute,
}

// Scheduler управляет запуском периодических джоб
type Scheduler struct {
	jobs           []jobs.Job
	alerterService service.IAlerterService
	retryDelays    []time.Duration
	now            func() time.Time
	wg             sync.WaitGroup
	log            *slog.Logger
}

// NewScheduler создаёт новый планировщик джоб
func NewScheduler(log *slog.Logger, alerterService service.IAlerterService) *Scheduler {
	return &Scheduler{
		jobs:           make([]jobs.Job, 0),
		alerterService: alerterService,
		retryDelays:    DefaultRetryDelays,
		now:            time.Now,
		log:            log,
	}
}

// WithRetryDelays задаёт паузы между повторами
func (s *Scheduler) WithRetryDelays(delays []time.Duration) *Scheduler {
	s.retryDelays = delays
	return s
}

// Register регистрирует джобу в планировщике
func (s *Scheduler) Register(job jobs.Job) {
	s.jobs = append(s.jobs, job)
	s.log.Debug("job registered", "job_name", job.Name(), "total_jobs", len(s.jobs))
}

// Start запускает все зарегистрированные джобы и сразу возвращается.
// Джобы работают до отмены ctx, дождаться их можно через Wait
func (s *Scheduler) Start(ctx context.Context) error {
	if len(s.jobs) == 0 {
		s.log.Warn("no jobs registered, scheduler not started")
		return nil
	}

	s.log.Info("starting job scheduler", "jobs_count", len(s.jobs))

	for _, job := range s.jobs {
		s.wg.Add(1)
		go func(job jobs.Job) {
			defer s.wg.Done()
			s.runJob(ctx, job)
		}(job)
	}

	return nil
}

// Wait ждёт остановки всех джоб
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// runJob запускает отдельную джобу в цикле
func (s *Scheduler) runJob(ctx context.Context, job jobs.Job) {
	jobName := job.Name()

	for {
		now := s.now()
		timer := time.NewTimer(job.NextRun(now).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("job stopped by context", "job_name", jobName)
			return
		case <-timer.C:
			attemptErrors, err := s.executeJobWithRetry(ctx, job)
			switch {
			case err == nil:
				s.log.Debug("job executed successfully", "job_name", jobName)
			case ctx.Err() != nil:
				s.log.Info("job interrupted by shutdown", "job_name", jobName)
				return
			default:
				s.log.Error("job failed after all retries",
					"job_name", jobName,
					"error", err,
					"attempts", len(attemptErrors),
				)
				s.sendAlert(ctx, jobName, attemptErrors)
			}
		}
	}
}

// jobAttemptError ошибка конкретной попытки выполнения джобы
type jobAttemptError struct {
	attempt int
	err     error
}

// executeJobWithRetry выполняет джобу и повторяет её после каждой паузы из retryDelays.
// Возвращает ошибки всех попыток и финальную ошибку
func (s *Scheduler) executeJobWithRetry(ctx context.Context, job jobs.Job) ([]jobAttemptError, error) {
	jobName := job.Name()
	var attemptErrors []jobAttemptError

	for attempt := 1; ; attempt++ {
		err := job.Run(ctx)
		if err == nil {
			return nil, nil
		}
		attemptErrors = append(attemptErrors, jobAttemptError{attempt: attempt, err: err})

		retriesLeft := len(s.retryDelays) - attempt + 1
		if retriesLeft <= 0 {
			break
		}

		s.log.Warn("job execution failed, will retry",
			"job_name", jobName,
			"attempt", attempt,
			"retries_remaining", retriesLeft,
			"error", err,
		)

		timer := time.NewTimer(s.retryDelays[attempt-1])
		select {
		case <-ctx.Done():
			timer.Stop()
			return attemptErrors, ctx.Err()
		case <-timer.C:
		}
	}

	return attemptErrors, fmt.Errorf("all retry attempts failed (total attempts: %d)", len(attemptErrors))
}

// sendAlert алертит на финальную ошибку после ретраев
func (s *Scheduler) sendAlert(ctx context.Context, jobName string, attemptErrors []jobAttemptError) {
	if s.alerterService == nil {
		return
	}

	errorLines := make([]string, 0, len(attemptErrors))
	for _, attemptErr := range attemptErrors {
		errorLines = append(errorLines, fmt.Sprintf("Попытка %d: %s", attemptErr.attempt, attemptErr.err.Error()))
	}

	var message strings.Builder
	message.WriteString("⚠️ Финальная ошибка планировщика, ретраи исчерпаны\n\n")
	message.WriteString(fmt.Sprintf("Джоба: %s\n\n", jobName))
	message.WriteString("Ошибки попыток:\n")
	message.WriteString(strings.Join(errorLines, "\n"))

	if alertErr := s.alerterService.SendAlert(ctx, message.String()); alertErr != nil {
		s.log.Warn("failed to send job failure alert",
			"job_name", jobName,
			"error", alertErr,
		)
	}
}
