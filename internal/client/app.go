package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fanyer/presto-sub061/internal/adapter"
	"github.com/fanyer/presto-sub061/internal/config"
	"github.com/fanyer/presto-sub061/internal/logger"
	"github.com/fanyer/presto-sub061/internal/service"
	"github.com/fanyer/presto-sub061/internal/store"
	"github.com/fanyer/presto-sub061/internal/workers"
	"github.com/fanyer/presto-sub061/models"
)

// shutdownTimeout bounds the final queue write on exit.
const shutdownTimeout = 10 * time.Second

type App struct {
	storages *store.ClientStorages
	services *service.ClientServices
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp opens the local storage and wires the sync services.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	services := service.NewClientServices(cfg, storages, serverAdapter, log)
	services.Coordinator.RegisterUIListener(&syncEventLogger{logger: log})

	app := &App{
		storages: storages,
		services: services,
		logger:   log,
	}
	app.workers = workers.New(
		workers.WorkerFunc(services.SyncJob.Run),
		workers.WorkerFunc(app.flushQueueOnExit),
	)
	return app, nil
}

// Services exposes the sync engine to embedding data domains, which
// register their listeners before Run.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// Run loads the persisted queue and sync state, then runs the workers until
// SIGINT or SIGTERM.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.storages.Close(); err != nil {
			a.logger.Err(err).Msg("close storage")
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.services.Queue.Load(ctx); err != nil {
		return fmt.Errorf("load sync queue: %w", err)
	}
	if err := a.services.Coordinator.Load(ctx); err != nil {
		return fmt.Errorf("load sync state: %w", err)
	}

	a.logger.Info().Msg("sync client started")
	a.services.SyncJob.Kick()

	err := a.workers.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.logger.Info().Msg("sync client stopped")
	return nil
}

// flushQueueOnExit writes the queue once the process is shutting down, so
// changes waiting for the delayed write are not lost.
func (a *App) flushQueueOnExit(ctx context.Context) error {
	<-ctx.Done()

	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := a.services.Queue.Close(flushCtx); err != nil {
		return fmt.Errorf("flush sync queue: %w", err)
	}
	return nil
}

// syncEventLogger reports cycle outcomes in the client log.
type syncEventLogger struct {
	logger *logger.Logger
}

func (l *syncEventLogger) OnSyncStarted(itemsSending bool) {
	l.logger.Debug().Bool("items_sending", itemsSending).Msg("sync cycle started")
}

func (l *syncEventLogger) OnSyncError(event models.ErrorEvent) {
	l.logger.Warn().
		Str("code", event.Code.String()).
		Str("message", event.Message).
		Msg("sync error")
}

func (l *syncEventLogger) OnSyncFinished(state models.SyncState) {
	l.logger.Info().Str("syncstate", state.GlobalCursor()).Msg("sync finished")
}
