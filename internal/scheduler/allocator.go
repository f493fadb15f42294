package scheduler

import "github.com/alexanderramin/pilot/internal/domain"

// Allocation bounds and the reserve kept back for transitions.
const (
	MinTaskMinutes = 25
	MaxTaskMinutes = 150

	reservePctNum = 9
	reservePctDen = 10
)

// EffectiveBudget returns floor(availableMin * 0.9) using integer arithmetic.
func EffectiveBudget(availableMin int) int {
	if availableMin <= 0 {
		return 0
	}
	return availableMin * reservePctNum / reservePctDen
}

// AllocateTaskDurations returns a copy of tasks with EstimatedMinutes set to
// a weight-proportional share of the effective budget, clamped to
// [MinTaskMinutes, MaxTaskMinutes]. The result is not re-normalized after
// clamping, so its sum may differ from the budget.
func AllocateTaskDurations(tasks []domain.Task, availableMin int) []domain.Task {
	out := make([]domain.Task, len(tasks))
	if len(tasks) == 0 {
		return out
	}

	// Summed in task order, integer only.
	weightSum := 0
	for _, t := range tasks {
		weightSum += t.EffectiveWeight()
	}

	budget := EffectiveBudget(availableMin)
	for i, t := range tasks {
		c := t.Clone()
		raw := budget * t.EffectiveWeight() / weightSum
		c.EstimatedMinutes = clamp(raw, MinTaskMinutes, MaxTaskMinutes)
		out[i] = c
	}
	return out
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
