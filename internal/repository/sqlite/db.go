// Package sqlite implements the repository interfaces on top of a single
// SQLite database file via the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Open opens (creating if needed) the SQLite database at dsn and applies the
// pragmas the core relies on: enforced foreign keys, WAL for concurrent
// readers, and a busy timeout so writers on disjoint rows queue instead of
// failing.
// dsn examples: "trainlog.db" or "file:test?mode=memory&cache=shared".
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", p, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	return db, nil
}

// InitSchema creates all tables and indexes if they do not exist yet.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure, the
// signal for duplicate workout names, order_index collisions and the benign
// movement resolve-or-create race.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// timeLayout matches SQLite's CURRENT_TIMESTAMP output so Go-side writes and
// SQL-side defaults sort together lexicographically.
const timeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// nullTime converts a scanned DATETIME column to *time.Time. The driver hands
// DATETIME-declared columns back as time.Time values already.
func nullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func nullInt(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}

func nullIntSmall(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

// schema is the full relational model. Uniqueness among *active* workouts
// (per user) and active exercises (per workout) is expressed with partial
// unique indexes, so archived rows never block re-creation.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT UNIQUE NOT NULL,
    password TEXT NOT NULL,
    name TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'USER',
    manager_id INTEGER,
    FOREIGN KEY (manager_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS mesocycles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    goal TEXT NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'PLANNED',
    user_id INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id),
    CHECK (status IN ('PLANNED', 'ACTIVE', 'COMPLETED'))
);

CREATE TABLE IF NOT EXISTS movements (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    name_normalized TEXT NOT NULL,
    user_id INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id),
    UNIQUE (user_id, name_normalized)
);

CREATE TABLE IF NOT EXISTS workouts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    user_id INTEGER NOT NULL,
    manager_id INTEGER NOT NULL,
    mesocycle_id INTEGER,
    archived_at DATETIME,
    FOREIGN KEY (user_id) REFERENCES users(id),
    FOREIGN KEY (manager_id) REFERENCES users(id),
    FOREIGN KEY (mesocycle_id) REFERENCES mesocycles(id) ON DELETE SET NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_workouts_active_name
    ON workouts (user_id, name) WHERE archived_at IS NULL;

CREATE TABLE IF NOT EXISTS workout_exercises (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    sets INTEGER NOT NULL,
    reps INTEGER NOT NULL,
    rir INTEGER,
    rm_percent INTEGER,
    order_index INTEGER NOT NULL,
    workout_id INTEGER NOT NULL,
    movement_id INTEGER,
    archived_at DATETIME,
    FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE,
    FOREIGN KEY (movement_id) REFERENCES movements(id)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_exercises_active_order
    ON workout_exercises (workout_id, order_index) WHERE archived_at IS NULL;

CREATE TABLE IF NOT EXISTS exercise_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    weight INTEGER NOT NULL,
    reps INTEGER NOT NULL,
    date DATETIME DEFAULT CURRENT_TIMESTAMP,
    user_id INTEGER NOT NULL,
    exercise_id INTEGER NOT NULL,
    movement_id INTEGER,
    FOREIGN KEY (user_id) REFERENCES users(id),
    FOREIGN KEY (exercise_id) REFERENCES workout_exercises(id) ON DELETE CASCADE,
    FOREIGN KEY (movement_id) REFERENCES movements(id)
);

CREATE INDEX IF NOT EXISTS idx_logs_movement_user
    ON exercise_logs (movement_id, user_id);
`
