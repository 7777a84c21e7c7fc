// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fanyer/presto-sub061/internal/logger"
	"github.com/fanyer/presto-sub061/models"
)

// syncStateRepository is the SQLite-backed implementation of
// [SyncStateRepository].
type syncStateRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSyncStateRepository constructs a [SyncStateRepository] backed by db.
func NewSyncStateRepository(db *DB, logger *logger.Logger) SyncStateRepository {
	logger.Debug().Msg("creating sync state repository")
	return &syncStateRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *syncStateRepository) LoadState(ctx context.Context) (models.SyncState, error) {
	log := logger.FromContext(ctx)
	state := models.NewSyncState()

	query, args, err := selectStateQuery()
	if err != nil {
		return state, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*syncStateRepository.LoadState").Msg("failed to query sync state")
		return state, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var row stateRow
		if err := rows.Scan(&row.supports, &row.state); err != nil {
			return state, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if row.supports == globalStateKey {
			state.Global = row.state
			continue
		}
		s, ok := models.ParseSupports(row.supports)
		if !ok {
			log.Warn().Str("supports", row.supports).Msg("unknown supports type in sync state, ignored")
			continue
		}
		state.SetCursor(s, row.state)
	}
	if err := rows.Err(); err != nil {
		return state, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return state, nil
}

func (r *syncStateRepository) SaveState(ctx context.Context, state models.SyncState) error {
	log := logger.FromContext(ctx)

	rows := []stateRow{{supports: globalStateKey, state: state.GlobalCursor()}}
	for _, s := range models.AllSupports() {
		if _, ok := state.Cursors[s]; !ok || !state.IsPersistent(s) {
			continue
		}
		rows = append(rows, stateRow{supports: s.String(), state: state.Cursor(s)})
	}

	query, args, err := upsertStateQuery(rows, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*syncStateRepository.SaveState").
			Str("global", state.GlobalCursor()).
			Msg("failed to store sync state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Debug().Str("global", state.GlobalCursor()).Int("cursors", len(rows)-1).Msg("sync state stored")
	return nil
}

func (r *syncStateRepository) LoadPreferences(ctx context.Context) (models.SyncPreferences, error) {
	log := logger.FromContext(ctx)
	var prefs models.SyncPreferences

	query, args, err := selectPreferencesQuery()
	if err != nil {
		return prefs, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*syncStateRepository.LoadPreferences").Msg("failed to query preferences")
		return prefs, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return prefs, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		found = true
		switch name {
		case prefEnabled:
			prefs.Enabled = decodeSupportsSet(value)
		case prefCompleteSync:
			prefs.CompleteSync = value == "1"
		}
	}
	if err := rows.Err(); err != nil {
		return prefs, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	if !found {
		return prefs, ErrPreferencesNotFound
	}

	return prefs, nil
}

func (r *syncStateRepository) SavePreferences(ctx context.Context, prefs models.SyncPreferences) error {
	log := logger.FromContext(ctx)

	complete := "0"
	if prefs.CompleteSync {
		complete = "1"
	}
	query, args, err := upsertPreferencesQuery(map[string]string{
		prefEnabled:      encodeSupportsSet(prefs.Enabled),
		prefCompleteSync: complete,
	}, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*syncStateRepository.SavePreferences").Msg("failed to store preferences")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func encodeSupportsSet(set models.SupportsSet) string {
	names := make([]string, 0, len(set.List()))
	for _, s := range set.List() {
		names = append(names, s.String())
	}
	return strings.Join(names, ",")
}

func decodeSupportsSet(value string) models.SupportsSet {
	var set models.SupportsSet
	for _, name := range strings.Split(value, ",") {
		if s, ok := models.ParseSupports(strings.TrimSpace(name)); ok {
			set = set.With(s, true)
		}
	}
	return set
}
