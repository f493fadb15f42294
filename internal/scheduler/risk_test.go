package scheduler

import (
	"testing"

	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(ws []Warning) []WarningCode {
	out := make([]WarningCode, len(ws))
	for i, w := range ws {
		out[i] = w.Code
	}
	return out
}

func TestComputeRisk_OnTrack(t *testing.T) {
	res := ComputeRisk(RiskInput{
		Plan:         CyclePlan{Requested: 6, Completed: 6},
		Binding:      BindResult{},
		Allocated:    []domain.Task{{Title: "A", EstimatedMinutes: 100}},
		AvailableMin: 300,
	})

	assert.Equal(t, domain.RiskOnTrack, res.Level)
	assert.Empty(t, res.Warnings)
}

func TestComputeRisk_ShortfallIsAtRisk(t *testing.T) {
	res := ComputeRisk(RiskInput{Plan: CyclePlan{Requested: 6, Completed: 4}})

	assert.Equal(t, domain.RiskAtRisk, res.Level)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarnCyclesShortfall, res.Warnings[0].Code)
	assert.Contains(t, res.Warnings[0].Message, "4 of 6")
}

func TestComputeRisk_BudgetExceededByClamping(t *testing.T) {
	allocated := AllocateTaskDurations(weighted(5, 5, 5), 60)
	res := ComputeRisk(RiskInput{
		Plan:         CyclePlan{Requested: 1, Completed: 1},
		Allocated:    allocated,
		AvailableMin: 60,
	})

	assert.Equal(t, []WarningCode{WarnBudgetExceeded}, codes(res.Warnings))
	assert.Equal(t, domain.RiskAtRisk, res.Level)
}

func TestComputeRisk_UnboundIsCritical(t *testing.T) {
	res := ComputeRisk(RiskInput{
		Plan: CyclePlan{Requested: 3, Completed: 3},
		Binding: BindResult{
			Unbound: []string{"C"},
			Partial: []PartialTask{{TaskTitle: "B", NeededCycles: 2, BoundCycles: 1}},
			Dropped: []DroppedSubtasks{{TaskTitle: "B", Subtasks: []string{"b2"}}},
		},
	})

	assert.Equal(t, domain.RiskCritical, res.Level)
	assert.Equal(t, []WarningCode{WarnTaskPartial, WarnSubtasksDropped, WarnTaskUnbound}, codes(res.Warnings))
	assert.Contains(t, res.Warnings[1].Message, `"b2"`)
	assert.Contains(t, res.Warnings[2].Message, `"C"`)
}
