package scheduler

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Randomized days run through the whole engine: free time, cycles, binding
// and assembly. Every successful run must produce a sorted, overlap-free
// schedule that keeps out of meetings and lunch.
func TestEngine_RandomDaysProduceValidSchedules(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 300; run++ {
		start := domain.Clock(7*60 + rng.Intn(4)*30)
		end := start + domain.Clock(4*60+rng.Intn(8)*30)
		window := domain.Interval{Start: start, End: end}

		var meetings []domain.Interval
		for m := rng.Intn(4); m > 0; m-- {
			s := start + domain.Clock(rng.Intn(int(end-start)))
			e := s + domain.Clock(15+rng.Intn(90))
			meetings = append(meetings, domain.Interval{Start: s, End: e})
		}
		applyLunch := rng.Intn(2) == 0

		spec := domain.WorkPreset()
		if rng.Intn(2) == 0 {
			spec = domain.StudyPreset(1 + rng.Intn(8))
		}

		free, err := ComputeFreeIntervals(window, meetings, applyLunch)
		require.NoError(t, err)

		plan, err := PlanCycles(spec, window.Start, window.End, free)
		if err != nil {
			assert.True(t, IsCode(err, ErrNoRemainingCapacity) || IsCode(err, ErrFragmentedSlot), "run %d: %v", run, err)
			continue
		}
		assert.LessOrEqual(t, plan.Completed, spec.CycleCount)
		assert.Positive(t, plan.Completed)

		tasks := AllocateTaskDurations(weighted(1+rng.Intn(10), 1+rng.Intn(10)), plan.Completed*spec.FocusMinutes)
		binding := BindTasksToCycles(tasks, plan.Completed, spec.FocusMinutes)
		items, err := AssembleSchedule(plan.Items, binding.ByCycle, nil, LunchItem(window, applyLunch))
		require.NoError(t, err, "run %d", run)

		for i, it := range items {
			assert.True(t, window.Covers(it.Interval()), "run %d: %s outside window", run, it.Interval())
			if i > 0 {
				assert.LessOrEqual(t, items[i-1].Start, it.Start)
			}
			if it.Kind == domain.KindLunch {
				continue
			}
			for _, m := range meetings {
				assert.False(t, Overlaps(m, it.Interval()), "run %d: %s overlaps meeting %s", run, it.Interval(), m)
			}
			if applyLunch {
				assert.False(t, Overlaps(LunchWindow, it.Interval()), "run %d: %s overlaps lunch", run, it.Interval())
				assert.False(t, Overlaps(DeadZone, it.Interval()), "run %d: %s in dead zone", run, it.Interval())
			}
			if it.Kind == domain.KindFocus {
				assert.Equal(t, spec.FocusMinutes, it.Minutes())
			}
		}
	}
}
