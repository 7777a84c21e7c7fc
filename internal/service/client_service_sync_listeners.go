package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fanyer/presto-sub061/internal/logger"
	"github.com/fanyer/presto-sub061/models"
)

// BroadcastDataAvailable hands the received items to the registered
// listeners in registration order. Items a listener accepts are dropped;
// items it defers or fails on are kept and the cursor of their supports
// type is not persisted until a later delivery succeeds. Received items of
// kinds nobody listens to are dropped.
func (c *Coordinator) BroadcastDataAvailable(ctx context.Context) error {
	entries := c.listenerEntries()

	deferred := models.SupportsSet(0)
	delivered := models.SupportsSet(0)
	inconsistent := models.SupportsSet(0)
	var errs []error

	for _, e := range entries {
		s := models.SupportsFromType(e.t)
		delivered = delivered.With(s, true)

		outcome, err := c.deliver(ctx, e)
		switch {
		case err != nil:
			errs = append(errs, err)
			deferred = deferred.With(s, true)
		case outcome == models.DataErrorAsync:
			deferred = deferred.With(s, true)
		case outcome == models.DataErrorInconsistency:
			inconsistent = inconsistent.With(s, true)
		}
	}

	c.mu.Lock()
	for _, s := range delivered.List() {
		c.state.SetPersistent(s, !deferred.Has(s))
	}
	c.mu.Unlock()

	if dropped := c.queue.ConsumeReceived(unlistenedTypes(entries)...); dropped > 0 {
		logger.FromContext(ctx).Debug().Int("items", dropped).Msg("dropped items without a listener")
	}

	if inconsistent != 0 {
		c.flushDirty(ctx, inconsistent.List())
	}
	return errors.Join(errs...)
}

// ContinueSyncData redelivers the items of a supports type that a listener
// deferred. Once every listener of the type accepts them its cursor is
// persisted again.
func (c *Coordinator) ContinueSyncData(ctx context.Context, s models.Supports) error {
	var errs []error
	accepted := true
	inconsistent := false

	for _, e := range c.listenerEntries() {
		if models.SupportsFromType(e.t) != s {
			continue
		}
		outcome, err := c.deliver(ctx, e)
		switch {
		case err != nil:
			errs = append(errs, err)
			accepted = false
		case outcome == models.DataErrorAsync:
			accepted = false
		case outcome == models.DataErrorInconsistency:
			inconsistent = true
		}
	}

	if inconsistent {
		c.flushDirty(ctx, []models.Supports{s})
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	if !accepted {
		return nil
	}

	c.mu.Lock()
	c.state.SetPersistent(s, true)
	state := c.state.Clone()
	c.mu.Unlock()

	if err := c.repo.SaveState(ctx, state); err != nil {
		return fmt.Errorf("store sync state: %w", err)
	}
	return nil
}

// deliver passes the received items of one listener entry. Items are
// consumed unless the listener fails or defers them.
func (c *Coordinator) deliver(ctx context.Context, e listenerEntry) (models.DataError, error) {
	items := c.queue.ReceivedOfTypes(e.t)
	if items.IsEmpty() {
		return models.DataErrorNone, nil
	}

	log := logger.FromContext(ctx).With().Str("type", e.t.String()).Int("items", items.Len()).Logger()

	outcome, err := e.l.DataAvailable(ctx, e.t, items)
	if err != nil {
		log.Warn().Err(err).Msg("listener failed on received items")
		return outcome, fmt.Errorf("deliver %s: %w", e.t, err)
	}
	if outcome == models.DataErrorAsync {
		log.Debug().Msg("listener deferred received items")
		return outcome, nil
	}

	c.queue.ConsumeReceived(e.t)
	log.Debug().Msg("received items delivered")
	return outcome, nil
}

// initialize prepares a supports type for its first sync: every listener
// is initialised and asked for all its local data.
func (c *Coordinator) initialize(ctx context.Context, s models.Supports) {
	log := logger.FromContext(ctx)

	for _, e := range c.listenerEntries() {
		if models.SupportsFromType(e.t) != s {
			continue
		}
		if err := e.l.Initialize(ctx, e.t); err != nil {
			log.Warn().Err(err).Str("type", e.t.String()).Msg("listener initialisation failed")
		}
	}
	c.flush(ctx, s, true, false)

	c.mu.Lock()
	c.initializing = c.initializing.With(s, true)
	c.mu.Unlock()
	log.Info().Str("supports", s.String()).Msg("first sync prepared")
}

// flush asks every listener of s to commit its local data.
func (c *Coordinator) flush(ctx context.Context, s models.Supports, firstSync, isDirty bool) {
	for _, e := range c.listenerEntries() {
		if models.SupportsFromType(e.t) != s {
			continue
		}
		if err := e.l.Flush(ctx, e.t, firstSync, isDirty); err != nil {
			logger.FromContext(ctx).Warn().Err(err).
				Str("type", e.t.String()).
				Bool("dirty", isDirty).
				Msg("listener flush failed")
		}
	}
}

// flushDirty replaces the queued items of each supports type with a dirty
// snapshot from its listeners.
func (c *Coordinator) flushDirty(ctx context.Context, supports []models.Supports) {
	c.mu.Lock()
	enabled := c.prefs.Enabled
	c.mu.Unlock()

	for _, s := range supports {
		if !enabled.Has(s) {
			continue
		}
		if n := c.queue.RemoveQueuedItems(s); n > 0 {
			logger.FromContext(ctx).Debug().Str("supports", s.String()).Int("items", n).Msg("queued items superseded by dirty flush")
		}
		c.flush(ctx, s, false, true)
	}
}

// SetSupports enables or disables a supports type. Disabling it drops its
// queued items. Each distinct listener of the type is told once.
func (c *Coordinator) SetSupports(ctx context.Context, s models.Supports, enabled bool) error {
	c.mu.Lock()
	if c.prefs.Enabled.Has(s) == enabled {
		c.mu.Unlock()
		return nil
	}
	c.prefs.Enabled = c.prefs.Enabled.With(s, enabled)
	prefs := c.prefs
	c.mu.Unlock()

	if err := c.repo.SavePreferences(ctx, prefs); err != nil {
		return fmt.Errorf("store preferences: %w", err)
	}
	if !enabled {
		c.queue.RemoveQueuedItems(s)
	}

	notified := make(map[DataListener]bool)
	for _, e := range c.listenerEntries() {
		if models.SupportsFromType(e.t) != s || notified[e.l] {
			continue
		}
		notified[e.l] = true
		e.l.SupportsChanged(s, enabled)
	}

	logger.FromContext(ctx).Info().Str("supports", s.String()).Bool("enabled", enabled).Msg("supports changed")
	return nil
}

// ResetSupportsState forgets the cursor of s, so its next sync is a first
// sync. models.SupportsMax resets every type.
func (c *Coordinator) ResetSupportsState(ctx context.Context, s models.Supports) error {
	c.mu.Lock()
	c.state.Reset(s)
	state := c.state.Clone()
	c.mu.Unlock()

	if err := c.repo.SaveState(ctx, state); err != nil {
		return fmt.Errorf("store sync state: %w", err)
	}
	return nil
}

func (c *Coordinator) listenerEntries() []listenerEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]listenerEntry(nil), c.listeners...)
}

func unlistenedTypes(entries []listenerEntry) []models.DataItemType {
	var out []models.DataItemType
	for _, t := range models.AllDataItemTypes() {
		listened := false
		for _, e := range entries {
			if e.t == t {
				listened = true
				break
			}
		}
		if !listened {
			out = append(out, t)
		}
	}
	return out
}

// ── UI notifications ────────────────────────────────────────────────────────

func (c *Coordinator) uiListeners() []UIListener {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]UIListener(nil), c.ui...)
}

func (c *Coordinator) notifyStarted(itemsSending bool) {
	for _, l := range c.uiListeners() {
		l.OnSyncStarted(itemsSending)
	}
}

func (c *Coordinator) notifyError(err *CycleError) {
	event := err.Event()
	for _, l := range c.uiListeners() {
		l.OnSyncError(event)
	}
}

func (c *Coordinator) notifyFinished(state models.SyncState) {
	for _, l := range c.uiListeners() {
		l.OnSyncFinished(state)
	}
}
