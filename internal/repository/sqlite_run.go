package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pilot/internal/db"
	"github.com/alexanderramin/pilot/internal/domain"
)

// SQLiteRunRepo implements RunRepo. Save writes several tables; wrap it in
// a UnitOfWork so a run is stored whole or not at all.
type SQLiteRunRepo struct {
	db db.DBTX
}

func NewSQLiteRunRepo(conn db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: conn}
}

const runColumns = `id, plan_date, mode, window_start, window_end, focus_min, break_min,
	long_break_min, long_break_every, cycles_requested, cycles_completed, free_minutes,
	lunch_applied, risk_level, warnings_json, description, created_at`

func (r *SQLiteRunRepo) Save(ctx context.Context, run *domain.ScheduleRun) error {
	warnings, err := encodeStrings(run.Warnings)
	if err != nil {
		return fmt.Errorf("encoding warnings: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO schedule_runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.DateString(),
		string(run.Mode),
		int(run.Window.Start),
		int(run.Window.End),
		run.Spec.FocusMinutes,
		run.Spec.BreakMinutes,
		run.Spec.LongBreakMinutes,
		run.Spec.LongBreakEveryNCycles,
		run.CyclesRequested,
		run.CyclesCompleted,
		run.FreeMinutes,
		boolToInt(run.LunchApplied),
		string(run.RiskLevel),
		warnings,
		run.Description,
		formatTime(run.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule run: %w", err)
	}

	for i, m := range run.Meetings {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO schedule_meetings (run_id, seq, start_min, end_min) VALUES (?, ?, ?, ?)`,
			run.ID, i, int(m.Start), int(m.End)); err != nil {
			return fmt.Errorf("inserting meeting %d: %w", i, err)
		}
	}

	for i, t := range run.Tasks {
		subtasks, err := encodeStrings(t.Subtasks)
		if err != nil {
			return fmt.Errorf("encoding subtasks of %q: %w", t.Title, err)
		}
		if _, err := r.db.ExecContext(ctx, `INSERT INTO schedule_tasks
			(run_id, seq, title, estimated_min, weight, category, subtasks_json, fixed_start, fixed_end)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, t.Title, t.EstimatedMinutes, t.EffectiveWeight(), storedCategory(t.Category), subtasks,
			nullableClock(t.FixedStart), nullableClock(t.FixedEnd)); err != nil {
			return fmt.Errorf("inserting task %q: %w", t.Title, err)
		}
	}

	for i, it := range run.Items {
		if _, err := r.db.ExecContext(ctx, `INSERT INTO schedule_items
			(run_id, seq, start_min, end_min, kind, label, task_title, subtask, cycle_number)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, int(it.Start), int(it.End), string(it.Kind), it.Label,
			it.BoundTaskTitle, it.BoundSubtask, it.CycleNumber); err != nil {
			return fmt.Errorf("inserting item %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleRun, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM schedule_runs WHERE id = ?`, id)
	return r.load(ctx, row)
}

func (r *SQLiteRunRepo) GetByPrefix(ctx context.Context, prefix string) (*domain.ScheduleRun, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, fmt.Errorf("empty run id: %w", ErrRunNotFound)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM schedule_runs WHERE id LIKE ? || '%' ORDER BY id LIMIT 2`, prefix)
	if err != nil {
		return nil, fmt.Errorf("resolving run id: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning run id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run ids: %w", err)
	}

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("run %q: %w", prefix, ErrRunNotFound)
	case 1:
		return r.GetByID(ctx, ids[0])
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", prefix)
	}
}

func (r *SQLiteRunRepo) Latest(ctx context.Context) (*domain.ScheduleRun, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM schedule_runs ORDER BY created_at DESC, rowid DESC LIMIT 1`)
	return r.load(ctx, row)
}

func (r *SQLiteRunRepo) LatestForDate(ctx context.Context, date string) (*domain.ScheduleRun, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM schedule_runs WHERE plan_date = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`, date)
	return r.load(ctx, row)
}

func (r *SQLiteRunRepo) List(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `SELECT r.id, r.plan_date, r.mode, r.cycles_requested,
			r.cycles_completed, r.free_minutes, r.risk_level, r.created_at,
			(SELECT COUNT(*) FROM schedule_exports e WHERE e.run_id = r.id)
		FROM schedule_runs r
		ORDER BY r.created_at DESC, r.rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing schedule runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		var mode, risk string
		if err := rows.Scan(&s.ID, &s.Date, &mode, &s.CyclesRequested, &s.CyclesCompleted,
			&s.FreeMinutes, &risk, &s.CreatedAt, &s.Exports); err != nil {
			return nil, fmt.Errorf("scanning run summary: %w", err)
		}
		s.Mode = domain.Mode(mode)
		s.RiskLevel = domain.RiskLevel(risk)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run summaries: %w", err)
	}
	return out, nil
}

// load scans the run header and then fetches its child rows.
func (r *SQLiteRunRepo) load(ctx context.Context, row *sql.Row) (*domain.ScheduleRun, error) {
	var run domain.ScheduleRun
	var date, mode, risk, warnings, created string
	var start, end, lunch int

	err := row.Scan(&run.ID, &date, &mode, &start, &end,
		&run.Spec.FocusMinutes, &run.Spec.BreakMinutes,
		&run.Spec.LongBreakMinutes, &run.Spec.LongBreakEveryNCycles,
		&run.CyclesRequested, &run.CyclesCompleted, &run.FreeMinutes,
		&lunch, &risk, &warnings, &run.Description, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("schedule run: %w", ErrRunNotFound)
		}
		return nil, fmt.Errorf("scanning schedule run: %w", err)
	}

	if run.Date, err = time.Parse(domain.DateLayout, date); err != nil {
		return nil, fmt.Errorf("parsing plan_date: %w", err)
	}
	if run.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if run.Warnings, err = decodeStrings(warnings); err != nil {
		return nil, err
	}
	run.Mode = domain.Mode(mode)
	run.RiskLevel = domain.RiskLevel(risk)
	run.Window = domain.Interval{Start: domain.Clock(start), End: domain.Clock(end)}
	run.LunchApplied = intToBool(lunch)
	run.Spec.CycleCount = run.CyclesRequested

	if run.Meetings, err = r.loadMeetings(ctx, run.ID); err != nil {
		return nil, err
	}
	if run.Tasks, err = r.loadTasks(ctx, run.ID); err != nil {
		return nil, err
	}
	if run.Items, err = r.loadItems(ctx, run.ID); err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *SQLiteRunRepo) loadMeetings(ctx context.Context, runID string) ([]domain.Interval, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT start_min, end_min FROM schedule_meetings WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading meetings: %w", err)
	}
	defer rows.Close()

	var out []domain.Interval
	for rows.Next() {
		var s, e int
		if err := rows.Scan(&s, &e); err != nil {
			return nil, fmt.Errorf("scanning meeting: %w", err)
		}
		out = append(out, domain.Interval{Start: domain.Clock(s), End: domain.Clock(e)})
	}
	return out, rows.Err()
}

func (r *SQLiteRunRepo) loadTasks(ctx context.Context, runID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT title, estimated_min, weight, category, subtasks_json,
			fixed_start, fixed_end
		FROM schedule_tasks WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	defer rows.Close()

	var out []domain.Task
	for rows.Next() {
		var t domain.Task
		var category, subtasks string
		var fixedStart, fixedEnd sql.NullInt64
		if err := rows.Scan(&t.Title, &t.EstimatedMinutes, &t.Weight, &category, &subtasks,
			&fixedStart, &fixedEnd); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		t.Category = domain.Category(category)
		if t.Subtasks, err = decodeStrings(subtasks); err != nil {
			return nil, err
		}
		t.FixedStart = clockFromNull(fixedStart)
		t.FixedEnd = clockFromNull(fixedEnd)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRunRepo) loadItems(ctx context.Context, runID string) ([]domain.ScheduleItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT start_min, end_min, kind, label, task_title, subtask, cycle_number
		FROM schedule_items WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	defer rows.Close()

	var out []domain.ScheduleItem
	for rows.Next() {
		var it domain.ScheduleItem
		var s, e int
		var kind string
		if err := rows.Scan(&s, &e, &kind, &it.Label, &it.BoundTaskTitle, &it.BoundSubtask, &it.CycleNumber); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		it.Start, it.End = domain.Clock(s), domain.Clock(e)
		it.Kind = domain.ItemKind(kind)
		out = append(out, it)
	}
	return out, rows.Err()
}
