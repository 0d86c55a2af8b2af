package quota

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/zuern/NLP-DictionaryGenerator/internal/database"
)

// Settings names persisted in the store.
const (
	settingLastAccess = "last_access"
	settingCallsMade  = "calls_made"
	settingDailyLimit = "daily_limit"
)

// Store persists quota state across runs.
type Store interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
}

// SQLStore implements Store on a sqlite settings table.
type SQLStore struct {
	db           *sqlx.DB
	defaultLimit int
}

const settingsSchema = `
CREATE TABLE IF NOT EXISTS settings (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// OpenStore opens the quota database at path and ensures the settings table
// exists. defaultLimit is used when no daily limit was ever persisted.
func OpenStore(path string, defaultLimit int) (*SQLStore, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("database.Open > %w", err)
	}
	if _, err := db.Exec(settingsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create settings table: %w", err)
	}
	return &SQLStore{db: db, defaultLimit: defaultLimit}, nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

type settingRow struct {
	Name  string `db:"name"`
	Value string `db:"value"`
}

// Load reads the persisted quota state. Missing settings fall back to the
// zero state with the configured default daily limit.
func (s *SQLStore) Load(ctx context.Context) (State, error) {
	var rows []settingRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT name, value FROM settings"); err != nil {
		return State{}, fmt.Errorf("load settings: %w", err)
	}

	state := State{DailyLimit: s.defaultLimit}
	for _, row := range rows {
		switch row.Name {
		case settingLastAccess:
			t, err := time.Parse(time.RFC3339, row.Value)
			if err != nil {
				return State{}, fmt.Errorf("parse %s setting %q: %w", settingLastAccess, row.Value, err)
			}
			state.LastAccess = t
		case settingCallsMade:
			n, err := strconv.Atoi(row.Value)
			if err != nil {
				return State{}, fmt.Errorf("parse %s setting %q: %w", settingCallsMade, row.Value, err)
			}
			state.CallsMade = n
		case settingDailyLimit:
			n, err := strconv.Atoi(row.Value)
			if err != nil {
				return State{}, fmt.Errorf("parse %s setting %q: %w", settingDailyLimit, row.Value, err)
			}
			state.DailyLimit = n
		}
	}
	return state, nil
}

// Save writes all three settings in one transaction.
func (s *SQLStore) Save(ctx context.Context, state State) error {
	return database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		settings := map[string]string{
			settingLastAccess: state.LastAccess.Format(time.RFC3339),
			settingCallsMade:  strconv.Itoa(state.CallsMade),
			settingDailyLimit: strconv.Itoa(state.DailyLimit),
		}
		for name, value := range settings {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO settings (name, value) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET value = excluded.value",
				name, value)
			if err != nil {
				return fmt.Errorf("upsert setting %s: %w", name, err)
			}
		}
		return nil
	})
}
