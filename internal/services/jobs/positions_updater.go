package jobs

import (
	"context"
	"log/slog"
	"time"
)

const positionsUpdaterName = "positions-updater"

// PositionsService пересчёт кэша текущих положений планет
type PositionsService interface {
	UpdateCachedPositions(ctx context.Context, now time.Time) error
}

// PositionsUpdater обновляет текущие положения планет в кэше в начале каждого часа
type PositionsUpdater struct {
	service PositionsService
	now     func() time.Time
	log     *slog.Logger
}

// NewPositionsUpdater создаёт новую джобу для обновления позиций планет
func NewPositionsUpdater(service PositionsService, log *slog.Logger) *PositionsUpdater {
	return &PositionsUpdater{
		service: service,
		now:     time.Now,
		log:     log,
	}
}

func (j *PositionsUpdater) Name() string {
	return positionsUpdaterName
}

// NextRun начало следующего часа
func (j *PositionsUpdater) NextRun(now time.Time) time.Time {
	return now.Truncate(time.Hour).Add(time.Hour)
}

// Run выполняет обновление текущих позиций планет в кэше
func (j *PositionsUpdater) Run(ctx context.Context) error {
	now := j.now().UTC()
	if err := j.service.UpdateCachedPositions(ctx, now); err != nil {
		return err
	}
	j.log.Debug("current positions cached", "at", now)
	return nil
}
