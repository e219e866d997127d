package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

func (a *App) runServices(ctx context.Context, deps *Dependencies) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("starting http server",
			"host", a.Cfg.Server.Host,
			"port", a.Cfg.Server.Port)

		err := deps.HTTPServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	// Запускаем все Kafka consumers
	for name, consumer := range deps.KafkaConsumers {
		g.Go(func() error {
			a.Log.Info("starting kafka consumer", "name", name)
			return consumer.Start(gCtx)
		})
	}

	// Запускаем планировщик джоб (запускает горутины внутри, сам не блокирует)
	if deps.JobScheduler != nil {
		a.Log.Info("starting job scheduler")
		if err := deps.JobScheduler.Start(gCtx); err != nil {
			a.Log.Error("failed to start job scheduler", "error", err)
		}
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.Log.Info("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := deps.HTTPServer.Shutdown(shutdownCtx); err != nil {
			a.Log.Error("failed to shutdown http server", "error", err)
		}

		// Ждём завершения текущих джоб
		if deps.JobScheduler != nil {
			deps.JobScheduler.Wait()
		}

		if deps.DB != nil {
			if err := deps.DB.Close(); err != nil {
				a.Log.Error("failed to close database", "error", err)
			}
		}

		// Закрываем кэш
		if deps.Cache != nil {
			if err := deps.Cache.Close(); err != nil {
				a.Log.Error("failed to close cache", "error", err)
			}
		}

		// Закрываем Kafka producers
		for name, producer := range deps.KafkaProducers {
			if err := producer.Close(); err != nil {
				a.Log.Error("failed to close kafka producer", "error", err, "name", name)
			}
		}

		// Закрываем Kafka consumers
		for name, consumer := range deps.KafkaConsumers {
			if err := consumer.Close(); err != nil {
				a.Log.Error("failed to close kafka consumer", "error", err, "name", name)
			}
		}

		a.Log.Info("application shutdown completed")
		return nil
	})

	if err := g.Wait(); err != nil {
		a.Log.Error("application error", "error", err)
		return err
	}

	return nil
}
