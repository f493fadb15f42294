package scheduler

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pilot/internal/domain"
)

type WarningCode string

const (
	WarnCyclesShortfall WarningCode = "CYCLES_SHORTFALL"
	WarnTaskUnbound     WarningCode = "TASK_UNBOUND"
	WarnTaskPartial     WarningCode = "TASK_PARTIAL"
	WarnSubtasksDropped WarningCode = "SUBTASKS_DROPPED"
	WarnBudgetExceeded  WarningCode = "BUDGET_EXCEEDED"
)

// Warning is a non-fatal finding the caller should surface to the user.
type Warning struct {
	Code    WarningCode
	Message string
}

type RiskInput struct {
	Plan         CyclePlan
	Binding      BindResult
	Allocated    []domain.Task
	AvailableMin int
}

type RiskResult struct {
	Level    domain.RiskLevel
	Warnings []Warning
}

// ComputeRisk turns partial outcomes of a run into warnings and an overall
// level: critical when a task got no cycle at all, at risk for any other
// warning, on track otherwise.
func ComputeRisk(input RiskInput) RiskResult {
	var res RiskResult

	if short := input.Plan.Shortfall(); short > 0 {
		res.Warnings = append(res.Warnings, Warning{
			Code:    WarnCyclesShortfall,
			Message: fmt.Sprintf("could only fit %d of %d requested cycles", input.Plan.Completed, input.Plan.Requested),
		})
	}

	allocated := 0
	for _, t := range input.Allocated {
		allocated += t.EstimatedMinutes
	}
	if budget := EffectiveBudget(input.AvailableMin); len(input.Allocated) > 0 && allocated > budget {
		res.Warnings = append(res.Warnings, Warning{
			Code:    WarnBudgetExceeded,
			Message: fmt.Sprintf("allocated %d minutes against a budget of %d after minimum-duration clamping", allocated, budget),
		})
	}

	for _, p := range input.Binding.Partial {
		res.Warnings = append(res.Warnings, Warning{
			Code:    WarnTaskPartial,
			Message: fmt.Sprintf("%q needs %d cycles but only %d were available", p.TaskTitle, p.NeededCycles, p.BoundCycles),
		})
	}
	for _, d := range input.Binding.Dropped {
		res.Warnings = append(res.Warnings, Warning{
			Code:    WarnSubtasksDropped,
			Message: fmt.Sprintf("%q: no cycle left for subtasks %s", d.TaskTitle, strings.Join(quoteAll(d.Subtasks), ", ")),
		})
	}
	if len(input.Binding.Unbound) > 0 {
		res.Warnings = append(res.Warnings, Warning{
			Code:    WarnTaskUnbound,
			Message: fmt.Sprintf("no focus cycle left for: %s", strings.Join(quoteAll(input.Binding.Unbound), ", ")),
		})
	}

	switch {
	case len(input.Binding.Unbound) > 0:
		res.Level = domain.RiskCritical
	case len(res.Warnings) > 0:
		res.Level = domain.RiskAtRisk
	default:
		res.Level = domain.RiskOnTrack
	}
	return res
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
