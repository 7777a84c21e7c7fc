package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fanyer/presto-sub061/internal/logger"
)

// minJobInterval keeps a misconfigured interval from spinning the job.
const minJobInterval = time.Second

// Syncer is the part of the Coordinator the scheduler drives.
type Syncer interface {
	SyncNow(ctx context.Context) error
	NextInterval() time.Duration
}

// SyncJob schedules SyncNow calls. The delay before each run comes from
// Syncer.NextInterval, so it follows the server-advised intervals and any
// backoff. Kick runs a sync immediately; ItemAdded shortens the pending
// delay to the short interval.
type SyncJob struct {
	syncer        Syncer
	shortInterval func() time.Duration
	logger        *logger.Logger
	minInterval   time.Duration

	kick  chan struct{}
	added chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a job that is idle until Start is called. short
// returns the delay to use after a local change.
func NewSyncJob(syncer Syncer, short func() time.Duration, log *logger.Logger) *SyncJob {
	return &SyncJob{
		syncer:        syncer,
		shortInterval: short,
		logger:        log,
		minInterval:   minJobInterval,
		kick:          make(chan struct{}, 1),
		added:         make(chan struct{}, 1),
	}
}

// Start stops any previously running loop and launches a new one. The loop
// exits when ctx is cancelled or Stop is called.
func (j *SyncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		j.run(jobCtx)
	}()
}

// Run blocks until ctx is cancelled. It is the errgroup-friendly form of
// Start.
func (j *SyncJob) Run(ctx context.Context) error {
	j.run(ctx)
	return nil
}

func (j *SyncJob) run(ctx context.Context) {
	timer := time.NewTimer(j.clamp(j.syncer.NextInterval()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-j.kick:
		case <-j.added:
			resetTimer(timer, j.clamp(j.shortInterval()))
			continue
		case <-timer.C:
		}

		j.syncOnce(ctx)
		resetTimer(timer, j.clamp(j.syncer.NextInterval()))
	}
}

func (j *SyncJob) syncOnce(ctx context.Context) {
	err := j.syncer.SyncNow(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
	case errors.Is(err, ErrSyncInProgress), errors.Is(err, ErrBackoff), errors.Is(err, ErrSyncDisabled):
		j.logger.Debug().Err(err).Msg("scheduled sync skipped")
	default:
		j.logger.Warn().Err(err).Msg("scheduled sync failed")
	}
}

// Kick asks the loop for an immediate sync. Calls while a kick is pending
// are coalesced.
func (j *SyncJob) Kick() {
	select {
	case j.kick <- struct{}{}:
	default:
	}
}

// ItemAdded is wired to the queue's add hook.
func (j *SyncJob) ItemAdded() {
	select {
	case j.added <- struct{}{}:
	default:
	}
}

// Stop cancels the loop and blocks until it has exited. Safe to call when
// the job is not running.
func (j *SyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *SyncJob) clamp(d time.Duration) time.Duration {
	return max(d, j.minInterval)
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
