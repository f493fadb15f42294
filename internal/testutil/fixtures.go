package testutil

import (
	"time"

	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/google/uuid"
)

// TestDay is the fixed calendar day used by fixtures.
var TestDay = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

type TaskOption func(*domain.Task)

func WithWeight(w int) TaskOption {
	return func(t *domain.Task) { t.Weight = w }
}

func WithCategory(c domain.Category) TaskOption {
	return func(t *domain.Task) { t.Category = c }
}

func WithEstimate(min int) TaskOption {
	return func(t *domain.Task) { t.EstimatedMinutes = min }
}

func WithSubtasks(subtasks ...string) TaskOption {
	return func(t *domain.Task) { t.Subtasks = subtasks }
}

// WithFixedTime pins the task to start-end ("HH:MM").
func WithFixedTime(start, end string) TaskOption {
	return func(t *domain.Task) {
		s, e := domain.MustClock(start), domain.MustClock(end)
		t.FixedStart, t.FixedEnd = &s, &e
	}
}

func NewTestTask(title string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		Title:            title,
		EstimatedMinutes: 60,
		Category:         domain.CategoryNormal,
	}
	for _, o := range opts {
		o(&t)
	}
	return t
}

type RunOption func(*domain.ScheduleRun)

func WithRunDate(d time.Time) RunOption {
	return func(r *domain.ScheduleRun) { r.Date = d }
}

func WithRunCreatedAt(ts time.Time) RunOption {
	return func(r *domain.ScheduleRun) { r.CreatedAt = ts }
}

func WithRunItems(items ...domain.ScheduleItem) RunOption {
	return func(r *domain.ScheduleRun) { r.Items = items }
}

func WithRunTasks(tasks ...domain.Task) RunOption {
	return func(r *domain.ScheduleRun) { r.Tasks = tasks }
}

func WithRunWarnings(w ...string) RunOption {
	return func(r *domain.ScheduleRun) { r.Warnings = w }
}

// NewTestRun returns a small stored-shape work-mode run: two focus cycles
// around one short break.
func NewTestRun(opts ...RunOption) *domain.ScheduleRun {
	r := &domain.ScheduleRun{
		ID:           uuid.New().String(),
		Date:         TestDay,
		Mode:         domain.ModeWork,
		Window:       domain.Interval{Start: domain.MustClock("09:30"), End: domain.MustClock("18:30")},
		Spec:         domain.WorkPreset(),
		LunchApplied: true,
		Tasks:        []domain.Task{NewTestTask("Write report", WithWeight(8))},
		Items: []domain.ScheduleItem{
			NewTestItem(domain.KindFocus, "09:30", "10:20", "Focus #1: part 1 of Write report", 1),
			NewTestItem(domain.KindShortBreak, "10:20", "10:30", "Short break", 1),
			NewTestItem(domain.KindFocus, "10:30", "11:20", "Focus #2: part 2 of Write report", 2),
		},
		CyclesRequested: 6,
		CyclesCompleted: 6,
		FreeMinutes:     410,
		RiskLevel:       domain.RiskOnTrack,
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func NewTestItem(kind domain.ItemKind, start, end, label string, cycle int) domain.ScheduleItem {
	it := domain.ScheduleItem{
		Start:       domain.MustClock(start),
		End:         domain.MustClock(end),
		Kind:        kind,
		Label:       label,
		CycleNumber: cycle,
	}
	if kind == domain.KindFocus {
		it.BoundTaskTitle = "Write report"
	}
	return it
}
