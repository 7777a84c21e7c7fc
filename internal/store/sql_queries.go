package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	syncStateTable       = "sync_state"
	syncPreferencesTable = "sync_preferences"

	// globalStateKey is the sync_state row of the global cursor.
	globalStateKey = "global"

	prefEnabled      = "enabled"
	prefCompleteSync = "complete_sync"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type stateRow struct {
	supports string
	state    string
}

func selectStateQuery() (string, []any, error) {
	return builder.Select("supports", "state").
		From(syncStateTable).
		OrderBy("supports").
		ToSql()
}

func upsertStateQuery(rows []stateRow, now time.Time) (string, []any, error) {
	q := builder.Insert(syncStateTable).Columns("supports", "state", "updated_at")
	for _, r := range rows {
		q = q.Values(r.supports, r.state, now)
	}
	return q.Suffix("ON CONFLICT(supports) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at").
		ToSql()
}

func selectPreferencesQuery() (string, []any, error) {
	return builder.Select("name", "value").
		From(syncPreferencesTable).
		Where(sq.Eq{"name": []string{prefEnabled, prefCompleteSync}}).
		ToSql()
}

func upsertPreferencesQuery(values map[string]string, now time.Time) (string, []any, error) {
	q := builder.Insert(syncPreferencesTable).Columns("name", "value", "updated_at")
	for _, name := range []string{prefEnabled, prefCompleteSync} {
		q = q.Values(name, values[name], now)
	}
	return q.Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}
