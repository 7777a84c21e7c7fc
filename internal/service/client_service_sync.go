// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/fanyer/presto-sub061/internal/adapter"
	"github.com/fanyer/presto-sub061/internal/codec"
	"github.com/fanyer/presto-sub061/internal/config"
	"github.com/fanyer/presto-sub061/internal/dataitem"
	"github.com/fanyer/presto-sub061/internal/logger"
	"github.com/fanyer/presto-sub061/internal/queue"
	"github.com/fanyer/presto-sub061/internal/store"
	"github.com/fanyer/presto-sub061/models"
)

// maxCyclesPerSync bounds the back-to-back cycles of one SyncNow call when
// the queue holds more than one batch.
const maxCyclesPerSync = 64

// parseErrorBodyLimit caps the response text kept in a parser error.
const parseErrorBodyLimit = 512

type listenerEntry struct {
	t models.DataItemType
	l DataListener
}

// cycleInfo describes the request of one cycle.
type cycleInfo struct {
	supports []models.Supports
	complete bool
	// drained lists the first-sync types whose local data has been sent
	// completely with this request.
	drained models.SupportsSet
}

// Coordinator drives sync cycles: it builds the request from the queue,
// exchanges it with the server, merges and dispatches the response and
// persists the sync state.
//
// One cycle runs at a time; a SyncNow call during a cycle is rejected.
type Coordinator struct {
	adapter adapter.ServerAdapter
	auth    *authenticator
	repo    store.SyncStateRepository
	queue   *queue.Queue

	info     models.SystemInfo
	hasCreds bool
	defaults models.SyncPreferences

	logger     *logger.Logger
	now        func() time.Time
	newCycleID func() string

	mu            sync.Mutex
	inProgress    bool
	state         models.SyncState
	prefs         models.SyncPreferences
	longInterval  time.Duration
	shortInterval time.Duration
	maxItems      int
	retryAfter    time.Time
	listeners     []listenerEntry
	ui            []UIListener

	keyUsable      bool
	keyPendingSent bool
	// initializing holds the types flushed for their first sync whose
	// merge action has not been sent yet.
	initializing models.SupportsSet
}

// NewCoordinator wires a coordinator. Load must be called before the first
// SyncNow.
func NewCoordinator(cfg *config.ClientConfig, serverAdapter adapter.ServerAdapter, repo store.SyncStateRepository, q *queue.Queue, log *logger.Logger) *Coordinator {
	maxItems := cfg.Sync.MaxItems
	if maxItems <= 0 {
		maxItems = config.DefaultMaxItems
	}

	return &Coordinator{
		adapter:  serverAdapter,
		auth:     newAuthenticator(serverAdapter, cfg.Adapter.Credentials),
		repo:     repo,
		queue:    q,
		info:     cfg.App.Info,
		hasCreds: !cfg.Adapter.Credentials.Empty(),
		defaults: models.SyncPreferences{
			Enabled:      cfg.Sync.Supports,
			CompleteSync: cfg.Sync.Complete,
		},
		logger:        log,
		now:           time.Now,
		newCycleID:    func() string { return ulid.Make().String() },
		state:         models.NewSyncState(),
		longInterval:  cfg.Workers.LongInterval,
		shortInterval: cfg.Workers.ShortInterval,
		maxItems:      maxItems,
		keyUsable:     true,
	}
}

// Load reads the stored sync state and preferences. Missing preferences
// are initialised from the configuration and stored.
func (c *Coordinator) Load(ctx context.Context) error {
	state, err := c.repo.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("load sync state: %w", err)
	}

	prefs, err := c.repo.LoadPreferences(ctx)
	if errors.Is(err, store.ErrPreferencesNotFound) {
		prefs = c.defaults
		if err = c.repo.SavePreferences(ctx, prefs); err != nil {
			return fmt.Errorf("store default preferences: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	c.mu.Lock()
	c.state = state
	c.prefs = prefs
	c.mu.Unlock()

	c.logger.Info().
		Str("global", state.GlobalCursor()).
		Int("enabled", len(prefs.Enabled.List())).
		Bool("complete_sync", prefs.CompleteSync).
		Msg("sync state loaded")
	return nil
}

// RegisterListener adds a data listener for kind t. Listeners are notified
// in registration order.
func (c *Coordinator) RegisterListener(t models.DataItemType, l DataListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listenerEntry{t: t, l: l})
}

// RegisterUIListener adds a listener for cycle outcomes.
func (c *Coordinator) RegisterUIListener(l UIListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ui = append(c.ui, l)
}

// SetEncryptionKeyUsable tells whether password manager records can be
// synchronized. While the key is unusable the type is left out of requests.
func (c *Coordinator) SetEncryptionKeyUsable(usable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keyUsable = usable
	if usable {
		c.keyPendingSent = false
	}
}

// State returns a copy of the in-memory sync state.
func (c *Coordinator) State() models.SyncState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Preferences returns the current preferences.
func (c *Coordinator) Preferences() models.SyncPreferences {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefs
}

// NextInterval returns how long the scheduler should wait before the next
// regular SyncNow.
func (c *Coordinator) NextInterval() time.Duration {
	c.mu.Lock()
	retryAfter, long, short := c.retryAfter, c.longInterval, c.shortInterval
	c.mu.Unlock()

	if wait := retryAfter.Sub(c.now()); wait > 0 {
		return wait
	}
	if c.queue.HasQueuedItems() || c.queue.HasDirtyItems() {
		return short
	}
	return long
}

// SyncNow runs sync cycles until the queue is drained or a cycle fails. A
// failed cycle is reported once to the UI listeners.
func (c *Coordinator) SyncNow(ctx context.Context) error {
	if !c.hasCreds {
		return ErrNoCredentials
	}

	c.mu.Lock()
	switch {
	case c.prefs.Enabled == 0:
		c.mu.Unlock()
		c.notifyError(newCycleError(models.SyncErrorSyncDisabled, "", nil))
		return ErrSyncDisabled
	case c.inProgress:
		c.mu.Unlock()
		c.notifyError(newCycleError(models.SyncErrorSyncInProgress, "", nil))
		return ErrSyncInProgress
	case c.now().Before(c.retryAfter):
		until := c.retryAfter
		c.mu.Unlock()
		return fmt.Errorf("%w: not before %s", ErrBackoff, until.Format(time.RFC3339))
	}
	c.inProgress = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inProgress = false
		c.mu.Unlock()
	}()

	ctx, log := c.logger.WithCycle(ctx, c.newCycleID())
	log.Info().Msg("sync started")

	for n := 0; n < maxCyclesPerSync; n++ {
		more, err := c.cycle(ctx)
		if err != nil {
			var cycleErr *CycleError
			if errors.As(err, &cycleErr) {
				c.notifyError(cycleErr)
			}
			log.Error().Err(err).Int("cycle", n).Msg("sync failed")
			return err
		}
		if !more {
			log.Info().Int("cycles", n+1).Msg("sync finished")
			return nil
		}
		log.Debug().Int("cycle", n).Msg("items still queued, continuing")
	}

	log.Warn().Msg("cycle limit reached with items still queued")
	return nil
}

// cycle runs one exchange, retrying once with a fresh token when the server
// reports an expired one.
func (c *Coordinator) cycle(ctx context.Context) (bool, error) {
	more, err := c.exchange(ctx)

	var cycleErr *CycleError
	if errors.As(err, &cycleErr) && cycleErr.Code == models.SyncErrorOAuthExpired {
		logger.FromContext(ctx).Info().Msg("token expired, re-authenticating")
		c.auth.Invalidate()
		more, err = c.exchange(ctx)
		if errors.As(err, &cycleErr) && cycleErr.Code == models.SyncErrorOAuthExpired {
			c.auth.Invalidate()
		}
	}
	return more, err
}

func (c *Coordinator) exchange(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx)

	if _, err := c.auth.Token(ctx); err != nil {
		return false, newCycleError(mapAuthError(err), "", err)
	}

	req, info := c.prepare(ctx)

	var buf bytes.Buffer
	if err := codec.EncodeRequest(&buf, req); err != nil {
		c.queue.RestoreOutgoing()
		return false, newCycleError(models.SyncErrorGeneric, "", err)
	}

	log.Info().
		Int("items", len(req.Items)).
		Bool("complete", info.complete).
		Str("syncstate", req.SyncState).
		Strs("merge", req.Merge).
		Msg("sending sync request")
	c.notifyStarted(len(req.Items) > 0)

	body, err := c.adapter.Exchange(ctx, buf.Bytes())
	if err != nil {
		c.queue.RestoreOutgoing()
		return false, newCycleError(mapAdapterError(err), "", err)
	}

	resp, err := codec.DecodeResponse(bytes.NewReader(body))
	if err != nil {
		c.queue.RestoreOutgoing()
		return false, newCycleError(models.SyncErrorParser, truncate(string(body), parseErrorBodyLimit), err)
	}
	if resp.Skipped > 0 {
		log.Warn().Int("skipped", resp.Skipped).Msg("response carried unknown record kinds")
	}

	if code := resp.SyncError(); code != models.SyncOK {
		c.queue.RestoreOutgoing()
		return false, c.serverError(ctx, code, resp.ErrorMessage)
	}

	return c.complete(ctx, resp, info)
}

// prepare asks the listeners for first-sync data, fills OUTGOING and builds
// the request.
func (c *Coordinator) prepare(ctx context.Context) (codec.Request, cycleInfo) {
	log := logger.FromContext(ctx)

	c.mu.Lock()
	state := c.state.Clone()
	enabled := c.prefs.Enabled
	complete := c.prefs.CompleteSync
	maxItems := c.maxItems
	notifyPending := false
	if !c.keyUsable && enabled.Has(models.SupportsPasswordManager) {
		enabled = enabled.With(models.SupportsPasswordManager, false)
		notifyPending = !c.keyPendingSent
		c.keyPendingSent = true
	}
	c.mu.Unlock()

	if notifyPending {
		c.notifyError(newCycleError(models.SyncErrorPendingEncryptionKey, "", nil))
	}

	complete = complete || c.queue.HasDirtyItems()

	for _, s := range enabled.List() {
		switch {
		case state.IsDefault(s) && !c.isInitializing(s):
			c.initialize(ctx, s)
		case !state.IsDefault(s) && state.OutOfSync(s) && !complete:
			c.flush(ctx, s, false, false)
		}
	}
	// a first sync flushes dirty data in some domains
	complete = complete || c.queue.HasDirtyItems()

	c.queue.PopulateOutgoing(maxItems)
	items := c.queue.Outgoing()

	info := cycleInfo{supports: enabled.List(), complete: complete}
	var merge []string
	if !c.queue.HasActiveItems() {
		c.mu.Lock()
		info.drained = c.initializing
		c.mu.Unlock()
		for _, s := range info.drained.List() {
			if dt, ok := s.MergeDatatype(); ok && enabled.Has(s) {
				merge = append(merge, dt)
			}
		}
	}

	syncState := state.GlobalCursor()
	if complete {
		syncState = models.DefaultSyncState
	}

	decls := make([]codec.SupportsDecl, 0, len(info.supports))
	for _, s := range info.supports {
		decl := codec.SupportsDecl{Name: s.String()}
		if !complete && !state.IsDefault(s) && state.OutOfSync(s) {
			decl.BacklogSince = state.Cursor(s)
			log.Debug().Str("supports", s.String()).Str("since", decl.BacklogSince).Msg("requesting backlog")
		}
		decls = append(decls, decl)
	}

	return codec.Request{
		SyncState: syncState,
		Dirty:     complete,
		Supports:  decls,
		Info:      c.info,
		Merge:     merge,
		Items:     items,
	}, info
}

// complete handles a successful response.
func (c *Coordinator) complete(ctx context.Context, resp *codec.Response, info cycleInfo) (bool, error) {
	log := logger.FromContext(ctx)

	c.queue.ClearOutgoing()

	if info.complete {
		server := dataitem.NewCollection()
		for _, item := range resp.Items {
			_ = server.AddItem(item)
		}
		missingOnClient, missingOnServer := MergeDirtySyncItems(c.queue.TakeDirty(), server)
		for _, item := range missingOnServer.Items() {
			if _, err := c.queue.AddOrdered(item); err != nil {
				log.Warn().Err(err).Str("item", item.String()).Msg("merged item not queued")
			}
		}
		log.Info().
			Int("missing_on_client", missingOnClient.Len()).
			Int("missing_on_server", missingOnServer.Len()).
			Msg("dirty items merged")
		c.queue.AddReceived(missingOnClient.Items()...)
	} else {
		c.queue.AddReceived(resp.Items...)
	}

	c.mu.Lock()
	before := c.state.Clone()
	c.applyServerInfo(resp.ServerInfo)
	if resp.HasSyncState {
		c.state.Global = resp.SyncState
		for _, s := range info.supports {
			c.state.SetCursor(s, resp.SyncState)
		}
	}
	c.initializing &^= info.drained
	prefsChanged := false
	if info.complete && c.prefs.CompleteSync {
		c.prefs.CompleteSync = false
		prefsChanged = true
	}
	if resp.Dirty {
		c.prefs.CompleteSync = true
		prefsChanged = true
	}
	prefs := c.prefs
	c.mu.Unlock()

	if prefsChanged {
		if err := c.repo.SavePreferences(ctx, prefs); err != nil {
			log.Warn().Err(err).Msg("preferences not stored")
		}
	}

	if resp.Dirty {
		log.Info().Msg("server requested a complete sync")
		c.flushDirty(ctx, info.supports)
		return true, nil
	}
	if c.queue.HasQueuedItems() || c.queue.HasDirtyItems() {
		return true, nil
	}

	if err := c.BroadcastDataAvailable(ctx); err != nil {
		// the server resends from the old cursor; undelivered items stay in RECEIVED
		c.mu.Lock()
		c.state = before
		c.mu.Unlock()
		log.Warn().Err(err).Str("syncstate", before.GlobalCursor()).Msg("listener failed, sync state not advanced")
		return false, newCycleError(models.SyncErrorGeneric, "", err)
	}

	state := c.State()
	if err := c.repo.SaveState(ctx, state); err != nil {
		log.Error().Err(err).Msg("sync state not stored")
	}
	if c.queue.HasDirtyItems() {
		// a listener reported an inconsistency
		return true, nil
	}
	c.notifyFinished(state)
	return false, nil
}

// serverError applies the side effects of a server-reported error.
func (c *Coordinator) serverError(ctx context.Context, code models.SyncError, message string) error {
	log := logger.FromContext(ctx)

	switch code {
	case models.SyncErrorAuthFailure, models.SyncErrorUserBanned:
		log.Warn().Str("code", code.String()).Msg("account rejected, dropping token")
		c.auth.Invalidate()
	case models.SyncErrorUserUnavailable:
		c.mu.Lock()
		c.retryAfter = c.now().Add(c.longInterval)
		c.mu.Unlock()
	case models.SyncErrorMemory:
		c.queue.ClearReceived()
	}
	return newCycleError(code, message, nil)
}

// applyServerInfo must be called with c.mu held.
func (c *Coordinator) applyServerInfo(info models.ServerInfo) {
	if info.LongInterval > 0 {
		c.longInterval = info.LongInterval
	}
	if info.ShortInterval > 0 {
		c.shortInterval = info.ShortInterval
	}
	if info.MaxItems > 0 {
		c.maxItems = max(info.MaxItems, config.DefaultMaxItems)
	}
	if info.Error != "" {
		c.logger.Warn().Str("server_error", info.Error).Msg("server info carries an error")
	}
}

// UpdateItem patches a queued record. It reports whether the record was
// queued; a record that is not queued is left alone.
func (c *Coordinator) UpdateItem(t models.DataItemType, id string, key models.Key, value string) (bool, error) {
	name := key.Name()
	if name == "" {
		return false, fmt.Errorf("%w: %d", ErrUnknownKey, key)
	}
	return c.queue.Update(t, id, func(item *dataitem.Item) {
		setField(item, name, value)
		if item.Status != models.StatusAdded && item.Status != models.StatusDeleted {
			item.Status = models.StatusModified
		}
	}), nil
}

// shortIntervalNow returns the current short interval.
func (c *Coordinator) shortIntervalNow() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shortInterval
}

func (c *Coordinator) isInitializing(s models.Supports) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initializing.Has(s)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
