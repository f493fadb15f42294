package scheduler

import (
	"fmt"

	"github.com/alexanderramin/pilot/internal/domain"
)

// ReviewTaskTitle names the synthetic task that absorbs leftover cycles.
const ReviewTaskTitle = "Review & buffer"

// DroppedSubtasks records subtasks that had no cycle to land in.
type DroppedSubtasks struct {
	TaskTitle string
	Subtasks  []string
}

// PartialTask records a task that received fewer cycles than it needs.
type PartialTask struct {
	TaskTitle    string
	NeededCycles int
	BoundCycles  int
}

// BindResult maps cycle numbers to bindings and reports what did not fit.
type BindResult struct {
	ByCycle map[int]domain.Binding
	Unbound []string // titles of tasks that received no cycle
	Partial []PartialTask
	Dropped []DroppedSubtasks
}

// NeededCycles returns max(1, round(estimatedMin / focusMin)), rounding half up.
func NeededCycles(estimatedMin, focusMin int) int {
	if focusMin <= 0 || estimatedMin <= 0 {
		return 1
	}
	n := (estimatedMin + focusMin/2) / focusMin
	if n < 1 {
		return 1
	}
	return n
}

// BindTasksToCycles assigns tasks, in the given order, to consecutive focus
// cycles 1..cycles. Task order is never changed. Leftover cycles are bound to
// the review/buffer placeholder; tasks that find no cycle are reported as
// unbound.
func BindTasksToCycles(tasks []domain.Task, cycles, focusMin int) BindResult {
	res := BindResult{ByCycle: make(map[int]domain.Binding, cycles)}
	next := 1

	for _, t := range tasks {
		need := NeededCycles(t.EstimatedMinutes, focusMin)
		if next > cycles {
			res.Unbound = append(res.Unbound, t.Title)
			if len(t.Subtasks) > 0 {
				res.Dropped = append(res.Dropped, DroppedSubtasks{TaskTitle: t.Title, Subtasks: append([]string(nil), t.Subtasks...)})
			}
			continue
		}

		got := need
		if avail := cycles - next + 1; avail < got {
			got = avail
			res.Partial = append(res.Partial, PartialTask{TaskTitle: t.Title, NeededCycles: need, BoundCycles: got})
		}

		for i := 0; i < got; i++ {
			res.ByCycle[next] = bindingFor(t, next, i, need)
			next++
		}

		if len(t.Subtasks) > got {
			res.Dropped = append(res.Dropped, DroppedSubtasks{
				TaskTitle: t.Title,
				Subtasks:  append([]string(nil), t.Subtasks[got:]...),
			})
		}
	}

	for ; next <= cycles; next++ {
		res.ByCycle[next] = domain.Binding{
			CycleNumber:      next,
			TaskTitle:        ReviewTaskTitle,
			SubtaskLabel:     "Review progress and catch up",
			FocusDescription: "Buffer cycle: review finished work, clear small items, prepare the next session",
			Placeholder:      true,
		}
	}
	return res
}

// bindingFor builds the binding of the part-th cycle (0-based) of t.
func bindingFor(t domain.Task, cycle, part, total int) domain.Binding {
	b := domain.Binding{CycleNumber: cycle, TaskTitle: t.Title}
	switch {
	case part < len(t.Subtasks):
		b.SubtaskLabel = t.Subtasks[part]
		b.FocusDescription = fmt.Sprintf("%s: %s", t.Title, t.Subtasks[part])
	case total == 1:
		b.SubtaskLabel = t.Title
		b.FocusDescription = t.Title
	default:
		b.SubtaskLabel = fmt.Sprintf("part %d of %s", part+1, t.Title)
		b.FocusDescription = fmt.Sprintf("%s (part %d of %d)", t.Title, part+1, total)
	}
	return b
}
