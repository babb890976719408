package prefs

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS prefs (
    key   TEXT PRIMARY KEY,
    kind  INTEGER NOT NULL,
    value TEXT NOT NULL
);
`

// SQLiteBackend stores one row per preference key. Sets are JSON arrays.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create preferences directory: %w", err)
	}

	// Immediate transactions take the write lock at BEGIN, so an Update
	// never reads a snapshot another process has since replaced.
	db, err := sql.Open("sqlite", path+"?_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences database: %w", err)
	}

	// One connection keeps writes serialized inside this process; the busy
	// timeout covers the client writing from another process.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=FULL",
		"PRAGMA busy_timeout=5000",
		sqliteSchema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize preferences database: %w", err)
		}
	}

	return &SQLiteBackend{db: db, path: path}, nil
}

type sqliteQuerier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

func (b *SQLiteBackend) Load() (map[string]Value, error) {
	return loadSQLite(b.db)
}

func loadSQLite(q sqliteQuerier) (map[string]Value, error) {
	rows, err := q.Query("SELECT key, kind, value FROM prefs")
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	values := make(map[string]Value)
	for rows.Next() {
		var (
			key  string
			kind int
			raw  string
		)
		if err := rows.Scan(&key, &kind, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan preference row: %w", err)
		}

		v, err := decodeSQLiteValue(Kind(kind), raw)
		if err != nil {
			return nil, fmt.Errorf("preference %q: %w", key, err)
		}
		values[key] = v
	}

	return values, rows.Err()
}

func (b *SQLiteBackend) Update(fn UpdateFunc) (map[string]Value, error) {
	tx, err := b.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin preferences transaction: %w", err)
	}
	defer tx.Rollback()

	values, err := loadSQLite(tx)
	if err != nil {
		return nil, err
	}

	changes := fn(cloneValues(values))
	for _, c := range changes {
		if c.Delete {
			if _, err := tx.Exec("DELETE FROM prefs WHERE key = ?", c.Key); err != nil {
				return nil, fmt.Errorf("failed to delete preference %q: %w", c.Key, err)
			}
			continue
		}

		raw, err := encodeSQLiteValue(c.Value)
		if err != nil {
			return nil, fmt.Errorf("preference %q: %w", c.Key, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO prefs (key, kind, value) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET kind = excluded.kind, value = excluded.value`,
			c.Key, int(c.Value.Kind), raw,
		); err != nil {
			return nil, fmt.Errorf("failed to write preference %q: %w", c.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit preferences: %w", err)
	}

	applyChanges(values, changes)
	return values, nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func encodeSQLiteValue(v Value) (string, error) {
	switch v.Kind {
	case KindString:
		return v.Str, nil
	case KindBool:
		if v.Bool {
			return "1", nil
		}
		return "0", nil
	case KindStringSet:
		set := v.Set
		if set == nil {
			set = []string{}
		}
		data, err := json.Marshal(set)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported value kind %v", v.Kind)
	}
}

func decodeSQLiteValue(kind Kind, raw string) (Value, error) {
	switch kind {
	case KindString:
		return StringValue(raw), nil
	case KindBool:
		return BoolValue(raw == "1"), nil
	case KindStringSet:
		var members []string
		if err := json.Unmarshal([]byte(raw), &members); err != nil {
			return Value{}, fmt.Errorf("invalid set encoding: %w", err)
		}
		return SetValue(members), nil
	default:
		return Value{}, fmt.Errorf("unsupported value kind %v", kind)
	}
}
