package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/pilot/internal/contract"
	"github.com/alexanderramin/pilot/internal/db"
	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/alexanderramin/pilot/internal/oracle"
	"github.com/alexanderramin/pilot/internal/repository"
	"github.com/alexanderramin/pilot/internal/scheduler"
)

type scheduleService struct {
	planner  oracle.Oracle
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
	newID    func() string
}

// NewScheduleService builds schedules from planner output. uow may be nil
// when nothing is ever persisted, as in dry runs.
func NewScheduleService(planner oracle.Oracle, uow db.UnitOfWork, observers ...UseCaseObserver) ScheduleService {
	return &scheduleService{
		planner:  planner,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *scheduleService) Build(ctx context.Context, req contract.ScheduleRequest) (resp *contract.ScheduleResponse, err error) {
	fields := map[string]any{"mode": string(req.Mode), "dry_run": req.DryRun}
	defer observe(ctx, s.observer, "schedule.build", fields, time.Now(), &err)

	spec := req.ResolvedSpec()
	if err := validateRequest(req, spec); err != nil {
		return nil, &contract.ScheduleError{Code: contract.ScheduleErrInvalidRequest, Message: "invalid schedule request", Err: err}
	}

	plan, err := s.planner.Plan(ctx, domain.PlanInput{
		Date:        req.Date,
		WorkWindow:  req.Window,
		Meetings:    req.Meetings,
		Mode:        req.Mode,
		Cycles:      spec.CycleCount,
		LunchRule:   req.ApplyLunch,
		Description: req.Description,
	})
	if err != nil {
		return nil, &contract.ScheduleError{Code: contract.ScheduleErrPlanner, Message: "planning the day", Err: err}
	}

	if err := scheduler.ValidateMeetings(plan.Meetings); err != nil {
		return nil, &contract.ScheduleError{Code: contract.ScheduleErrPlanner, Message: "planner returned invalid meetings", Err: err}
	}

	out, err := runEngine(req, spec, plan)
	if err != nil {
		return nil, &contract.ScheduleError{Code: contract.ScheduleErrEngine, Message: "building the schedule", Err: err}
	}
	resp = out.response(req, spec)
	fields["cycles_requested"] = resp.CyclesRequested
	fields["cycles_completed"] = resp.CyclesCompleted
	fields["unbound_tasks"] = len(out.bind.Unbound)
	fields["risk_level"] = string(resp.RiskLevel)

	if req.DryRun {
		return resp, nil
	}
	if s.uow == nil {
		return nil, &contract.ScheduleError{Code: contract.ScheduleErrPersist, Message: "no store configured"}
	}

	run := out.run(req, spec, resp)
	run.ID = s.newID()
	run.CreatedAt = s.now().UTC().Truncate(time.Second)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteRunRepo(tx).Save(ctx, run)
	})
	if err != nil {
		return nil, &contract.ScheduleError{Code: contract.ScheduleErrPersist, Message: "saving run", Err: err}
	}
	resp.RunID = run.ID
	resp.Persisted = true
	fields["run_id"] = run.ID
	return resp, nil
}

func validateRequest(req contract.ScheduleRequest, spec domain.CycleSpec) error {
	if !domain.ValidModes[string(req.Mode)] {
		return fmt.Errorf("unknown mode %q", req.Mode)
	}
	if req.Cycles < 0 {
		return fmt.Errorf("cycles must not be negative, got %d", req.Cycles)
	}
	if err := scheduler.ValidateWindow(req.Window); err != nil {
		return err
	}
	if err := scheduler.ValidateMeetings(req.Meetings); err != nil {
		return err
	}
	return scheduler.ValidateCycleSpec(spec)
}

// engineOutput is everything one pass through the engine produced.
type engineOutput struct {
	plan      *domain.PlanOutput
	meetings  []domain.Interval
	fixed     []domain.Task
	moved     []movedTask
	allocated []domain.Task
	free      []domain.Interval
	cycles    scheduler.CyclePlan
	bind      scheduler.BindResult
	items     []domain.ScheduleItem
	risk      scheduler.RiskResult
}

// movedTask is a fixed task whose slot was taken, scheduled as flexible.
type movedTask struct {
	title   string
	slot    domain.Interval
	blocker string
}

// runEngine is the pure part of a build: meetings and fixed tasks become
// busy time, cycles fill the remaining free time, the flexible tasks share
// the focus minutes actually placed and are bound to cycles in planner order.
func runEngine(req contract.ScheduleRequest, spec domain.CycleSpec, plan *domain.PlanOutput) (*engineOutput, error) {
	out := &engineOutput{plan: plan, meetings: mergeMeetings(req.Meetings, plan.Meetings)}
	lunch := scheduler.LunchItem(req.Window, req.ApplyLunch)

	var flexible []domain.Task
	busy := append([]domain.Interval(nil), out.meetings...)
	for _, t := range plan.Tasks {
		if !t.IsFixed() {
			flexible = append(flexible, t)
			continue
		}
		if blocker, taken := slotTaken(t.FixedInterval(), out.meetings, out.fixed, lunch); taken {
			out.moved = append(out.moved, movedTask{title: t.Title, slot: t.FixedInterval(), blocker: blocker})
			t = t.Clone()
			t.FixedStart, t.FixedEnd = nil, nil
			flexible = append(flexible, t)
			continue
		}
		out.fixed = append(out.fixed, t)
		busy = append(busy, t.FixedInterval())
	}

	free, err := scheduler.ComputeFreeIntervals(req.Window, busy, req.ApplyLunch)
	if err != nil {
		return nil, err
	}
	out.free = free

	out.cycles, err = scheduler.PlanCycles(spec, req.Window.Start, req.Window.End, free)
	if err != nil {
		return nil, err
	}

	focusMin := out.cycles.Completed * spec.FocusMinutes
	out.allocated = scheduler.AllocateTaskDurations(flexible, focusMin)
	out.bind = scheduler.BindTasksToCycles(out.allocated, out.cycles.Completed, spec.FocusMinutes)

	fixedItems := make([]domain.ScheduleItem, 0, len(out.fixed))
	for _, t := range out.fixed {
		iv := t.FixedInterval()
		fixedItems = append(fixedItems, domain.ScheduleItem{
			Start:          iv.Start,
			End:            iv.End,
			Kind:           domain.KindTask,
			Label:          t.Title,
			BoundTaskTitle: t.Title,
		})
	}

	out.items, err = scheduler.AssembleSchedule(out.cycles.Items, out.bind.ByCycle, fixedItems, lunch)
	if err != nil {
		return nil, err
	}

	out.risk = scheduler.ComputeRisk(scheduler.RiskInput{
		Plan:         out.cycles,
		Binding:      out.bind,
		Allocated:    out.allocated,
		AvailableMin: focusMin,
	})
	return out, nil
}

// mergeMeetings appends planner meetings the caller did not already pass.
func mergeMeetings(given, planned []domain.Interval) []domain.Interval {
	out := append([]domain.Interval(nil), given...)
	for _, m := range planned {
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}

// slotTaken reports what, if anything, already occupies a fixed task's slot:
// a meeting, the lunch carve-out or an earlier fixed task.
func slotTaken(slot domain.Interval, meetings []domain.Interval, fixed []domain.Task, lunch *domain.ScheduleItem) (string, bool) {
	for _, m := range meetings {
		if scheduler.Overlaps(slot, m) {
			return "meeting " + m.String(), true
		}
	}
	if lunch != nil && scheduler.Overlaps(slot, lunch.Interval()) {
		return "lunch " + lunch.Interval().String(), true
	}
	for _, f := range fixed {
		if scheduler.Overlaps(slot, f.FixedInterval()) {
			return fmt.Sprintf("%q at %s", f.Title, f.FixedInterval()), true
		}
	}
	return "", false
}

func (o *engineOutput) response(req contract.ScheduleRequest, spec domain.CycleSpec) *contract.ScheduleResponse {
	freeMin := scheduler.TotalMinutes(o.free)
	resp := &contract.ScheduleResponse{
		Date:            req.Date,
		Mode:            req.Mode,
		Spec:            spec,
		Window:          req.Window,
		Meetings:        append([]domain.Interval(nil), o.meetings...),
		LunchApplied:    scheduler.LunchItem(req.Window, req.ApplyLunch) != nil,
		Items:           o.items,
		Allocations:     allocations(o.allocated, o.fixed),
		Bindings:        orderedBindings(o.bind, o.cycles.Completed),
		CyclesRequested: o.cycles.Requested,
		CyclesCompleted: o.cycles.Completed,
		FreeMinutes:     freeMin,
		RiskLevel:       o.risk.Level,
	}

	for _, m := range o.moved {
		resp.Warnings = append(resp.Warnings, contract.Warning{
			Code:    contract.WarnFixedTaskMoved,
			Message: fmt.Sprintf("%q at %s collides with %s, scheduled as a flexible task", m.title, m.slot, m.blocker),
		})
	}
	for _, w := range o.risk.Warnings {
		resp.Warnings = append(resp.Warnings, contract.Warning{Code: contract.WarningCode(w.Code), Message: w.Message})
	}
	if w, ok := capacityMismatch(o.plan.CapacityMinutes, freeMin, spec.FocusMinutes); ok {
		resp.Warnings = append(resp.Warnings, w)
	}
	for _, r := range o.plan.Risks {
		resp.Warnings = append(resp.Warnings, contract.Warning{Code: contract.WarnPlannerRisk, Message: r})
	}
	return resp
}

// capacityMismatch flags a planner that sized the day for noticeably more
// or less time than is free. A difference under one focus block is noise.
func capacityMismatch(plannerMin, freeMin, focusMin int) (contract.Warning, bool) {
	if plannerMin <= 0 {
		return contract.Warning{}, false
	}
	diff := plannerMin - freeMin
	if diff < 0 {
		diff = -diff
	}
	if diff < focusMin {
		return contract.Warning{}, false
	}
	return contract.Warning{
		Code:    contract.WarnCapacityMismatch,
		Message: fmt.Sprintf("planner assumed %d minutes of capacity but %d are free", plannerMin, freeMin),
	}, true
}

func allocations(allocated, fixed []domain.Task) []contract.TaskAllocation {
	out := make([]contract.TaskAllocation, 0, len(allocated)+len(fixed))
	for _, t := range allocated {
		out = append(out, contract.TaskAllocation{
			Title:        t.Title,
			Category:     t.Category,
			Weight:       t.EffectiveWeight(),
			AllocatedMin: t.EstimatedMinutes,
			Subtasks:     t.Subtasks,
		})
	}
	for _, t := range fixed {
		iv := t.FixedInterval()
		out = append(out, contract.TaskAllocation{
			Title:        t.Title,
			Category:     t.Category,
			Weight:       t.EffectiveWeight(),
			AllocatedMin: iv.Minutes(),
			Subtasks:     t.Subtasks,
			Fixed:        true,
			FixedAt:      &iv,
		})
	}
	return out
}

func orderedBindings(res scheduler.BindResult, cycles int) []domain.Binding {
	out := make([]domain.Binding, 0, len(res.ByCycle))
	for c := 1; c <= cycles; c++ {
		if b, ok := res.ByCycle[c]; ok {
			out = append(out, b)
		}
	}
	return out
}

func (o *engineOutput) run(req contract.ScheduleRequest, spec domain.CycleSpec, resp *contract.ScheduleResponse) *domain.ScheduleRun {
	tasks := make([]domain.Task, 0, len(o.allocated)+len(o.fixed))
	for _, t := range o.allocated {
		tasks = append(tasks, t.Clone())
	}
	for _, t := range o.fixed {
		t = t.Clone()
		t.EstimatedMinutes = t.FixedInterval().Minutes()
		tasks = append(tasks, t)
	}

	warnings := make([]string, len(resp.Warnings))
	for i, w := range resp.Warnings {
		warnings[i] = w.Message
	}

	return &domain.ScheduleRun{
		Date:            req.Date,
		Mode:            req.Mode,
		Window:          req.Window,
		Meetings:        resp.Meetings,
		Spec:            spec,
		LunchApplied:    resp.LunchApplied,
		Description:     req.Description,
		Tasks:           tasks,
		Items:           resp.Items,
		CyclesRequested: resp.CyclesRequested,
		CyclesCompleted: resp.CyclesCompleted,
		FreeMinutes:     resp.FreeMinutes,
		RiskLevel:       resp.RiskLevel,
		Warnings:        warnings,
	}
}
