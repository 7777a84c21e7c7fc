// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanyer/presto-sub061/internal/logger"
)

// spySyncer counts SyncNow calls and returns a fixed interval.
type spySyncer struct {
	calls    atomic.Int64
	interval atomic.Int64
	err      error
}

func newSpySyncer(interval time.Duration) *spySyncer {
	s := &spySyncer{}
	s.interval.Store(int64(interval))
	return s
}

func (s *spySyncer) SyncNow(context.Context) error {
	s.calls.Add(1)
	return s.err
}

func (s *spySyncer) NextInterval() time.Duration {
	return time.Duration(s.interval.Load())
}

func newTestJob(s *spySyncer, short time.Duration) *SyncJob {
	job := NewSyncJob(s, func() time.Duration { return short }, logger.Nop())
	job.minInterval = time.Millisecond
	return job
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestSyncJob_RunsOnInterval(t *testing.T) {
	spy := newSpySyncer(10 * time.Millisecond)
	job := newTestJob(spy, time.Hour)

	job.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "SyncNow called %d times", got)
}

func TestSyncJob_StopEndsLoop(t *testing.T) {
	spy := newSpySyncer(10 * time.Millisecond)
	job := newTestJob(spy, time.Hour)

	job.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no calls after Stop")
}

func TestSyncJob_StopBeforeStart(t *testing.T) {
	job := newTestJob(newSpySyncer(time.Hour), time.Hour)
	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_RestartReplacesLoop(t *testing.T) {
	spy := newSpySyncer(time.Hour)
	job := newTestJob(spy, time.Hour)
	ctx := context.Background()

	job.Start(ctx)
	job.Start(ctx)
	job.Kick()

	require.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	job.Stop()
}

// ── Kick / ItemAdded ─────────────────────────────────────────────────────────

func TestSyncJob_KickRunsImmediately(t *testing.T) {
	spy := newSpySyncer(time.Hour)
	job := newTestJob(spy, time.Hour)

	job.Start(context.Background())
	defer job.Stop()

	job.Kick()
	require.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestSyncJob_ItemAddedShortensDelay(t *testing.T) {
	spy := newSpySyncer(time.Hour)
	job := newTestJob(spy, 10*time.Millisecond)

	job.Start(context.Background())
	defer job.Stop()

	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, spy.calls.Load())

	job.ItemAdded()
	require.Eventually(t, func() bool { return spy.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
}

func TestSyncJob_RunReturnsOnCancel(t *testing.T) {
	job := newTestJob(newSpySyncer(time.Hour), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- job.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSyncJob_ErrorsDoNotStopLoop(t *testing.T) {
	spy := newSpySyncer(5 * time.Millisecond)
	spy.err = ErrSyncInProgress
	job := newTestJob(spy, time.Hour)

	job.Start(context.Background())
	defer job.Stop()

	require.Eventually(t, func() bool { return spy.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}
