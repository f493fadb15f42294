package app

import (
	"time"

	"github.com/alexanderramin/pilot/internal/domain"
)

// DefaultWindow is the work window used when a request names none.
var DefaultWindow = domain.Interval{Start: domain.NewClock(9, 30), End: domain.NewClock(18, 30)}

type ScheduleRequest struct {
	Date     time.Time
	Window   domain.Interval
	Meetings []domain.Interval
	Mode     domain.Mode
	// Spec is the cadence for the run. A zero Spec selects the mode preset
	// with Cycles cycles (0 means the preset default).
	Spec        domain.CycleSpec
	Cycles      int
	ApplyLunch  bool
	Description string
	DryRun      bool
}

func NewScheduleRequest(date time.Time) ScheduleRequest {
	return ScheduleRequest{
		Date:       date,
		Window:     DefaultWindow,
		Mode:       domain.ModeWork,
		ApplyLunch: true,
	}
}

// ResolvedSpec returns the cadence the run will use.
func (r ScheduleRequest) ResolvedSpec() domain.CycleSpec {
	if r.Spec != (domain.CycleSpec{}) {
		return r.Spec
	}
	return domain.PresetFor(r.Mode, r.Cycles)
}

// TaskAllocation is one task as the engine saw it.
type TaskAllocation struct {
	Title        string
	Category     domain.Category
	Weight       int
	AllocatedMin int
	Subtasks     []string
	Fixed        bool
	FixedAt      *domain.Interval
}

type WarningCode string

const (
	WarnCyclesShortfall  WarningCode = "CYCLES_SHORTFALL"
	WarnTaskUnbound      WarningCode = "TASK_UNBOUND"
	WarnTaskPartial      WarningCode = "TASK_PARTIAL"
	WarnSubtasksDropped  WarningCode = "SUBTASKS_DROPPED"
	WarnBudgetExceeded   WarningCode = "BUDGET_EXCEEDED"
	WarnCapacityMismatch WarningCode = "CAPACITY_MISMATCH"
	WarnPlannerRisk      WarningCode = "PLANNER_RISK"
	WarnExportFallback   WarningCode = "EXPORT_FALLBACK"
	WarnFixedTaskMoved   WarningCode = "FIXED_TASK_MOVED"
)

type Warning struct {
	Code    WarningCode
	Message string
}

type ScheduleResponse struct {
	RunID           string
	Date            time.Time
	Mode            domain.Mode
	Spec            domain.CycleSpec
	Window          domain.Interval
	Meetings        []domain.Interval
	LunchApplied    bool
	Items           []domain.ScheduleItem
	Allocations     []TaskAllocation
	Bindings        []domain.Binding // ordered by cycle number
	CyclesRequested int
	CyclesCompleted int
	FreeMinutes     int
	RiskLevel       domain.RiskLevel
	Warnings        []Warning
	Persisted       bool
}

type ScheduleErrorCode string

const (
	ScheduleErrInvalidRequest ScheduleErrorCode = "INVALID_REQUEST"
	ScheduleErrPlanner        ScheduleErrorCode = "PLANNER_FAILED"
	ScheduleErrEngine         ScheduleErrorCode = "ENGINE_FAILED"
	ScheduleErrPersist        ScheduleErrorCode = "PERSIST_FAILED"
)

// ScheduleError classifies where a build failed. Err keeps the cause so
// callers can still match engine codes and sentinels.
type ScheduleError struct {
	Code    ScheduleErrorCode
	Message string
	Err     error
}

func (e *ScheduleError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *ScheduleError) Unwrap() error { return e.Err }
