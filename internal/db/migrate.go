package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent and
// re-run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS schedule_runs (
		id                TEXT PRIMARY KEY,
		plan_date         TEXT NOT NULL,
		mode              TEXT NOT NULL CHECK(mode IN ('work','study')),
		window_start      INTEGER NOT NULL,
		window_end        INTEGER NOT NULL,
		focus_min         INTEGER NOT NULL,
		break_min         INTEGER NOT NULL,
		long_break_min    INTEGER NOT NULL DEFAULT 0,
		long_break_every  INTEGER NOT NULL DEFAULT 0,
		cycles_requested  INTEGER NOT NULL,
		cycles_completed  INTEGER NOT NULL,
		free_minutes      INTEGER NOT NULL,
		lunch_applied     INTEGER NOT NULL DEFAULT 1,
		risk_level        TEXT NOT NULL DEFAULT 'on_track'
		                  CHECK(risk_level IN ('on_track','at_risk','critical')),
		warnings_json     TEXT NOT NULL DEFAULT '[]',
		created_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS schedule_items (
		run_id        TEXT NOT NULL REFERENCES schedule_runs(id) ON DELETE CASCADE,
		seq           INTEGER NOT NULL,
		start_min     INTEGER NOT NULL,
		end_min       INTEGER NOT NULL,
		kind          TEXT NOT NULL
		              CHECK(kind IN ('focus','short_break','long_break','lunch','task')),
		label         TEXT NOT NULL,
		task_title    TEXT NOT NULL DEFAULT '',
		subtask       TEXT NOT NULL DEFAULT '',
		cycle_number  INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, seq),
		CHECK(start_min < end_min)
	)`,

	`CREATE TABLE IF NOT EXISTS schedule_tasks (
		run_id          TEXT NOT NULL REFERENCES schedule_runs(id) ON DELETE CASCADE,
		seq             INTEGER NOT NULL,
		title           TEXT NOT NULL,
		estimated_min   INTEGER NOT NULL,
		weight          INTEGER NOT NULL,
		category        TEXT NOT NULL CHECK(category IN ('deep','normal','light')),
		subtasks_json   TEXT NOT NULL DEFAULT '[]',
		fixed_start     INTEGER,
		fixed_end       INTEGER,
		PRIMARY KEY (run_id, seq)
	)`,

	`CREATE TABLE IF NOT EXISTS schedule_meetings (
		run_id     TEXT NOT NULL REFERENCES schedule_runs(id) ON DELETE CASCADE,
		seq        INTEGER NOT NULL,
		start_min  INTEGER NOT NULL,
		end_min    INTEGER NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`,

	`CREATE TABLE IF NOT EXISTS schedule_exports (
		id              TEXT PRIMARY KEY,
		run_id          TEXT NOT NULL REFERENCES schedule_runs(id) ON DELETE CASCADE,
		kind            TEXT NOT NULL CHECK(kind IN ('ics','google')),
		path            TEXT NOT NULL DEFAULT '',
		event_ids_json  TEXT NOT NULL DEFAULT '[]',
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_runs_date ON schedule_runs(plan_date)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_runs_created ON schedule_runs(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_exports_run ON schedule_exports(run_id)`,

	// Added after the first release; older databases pick it up here.
	`ALTER TABLE schedule_runs ADD COLUMN description TEXT NOT NULL DEFAULT ''`,
}
