package scheduler

import (
	"fmt"

	"github.com/alexanderramin/pilot/internal/domain"
)

// AssembleSchedule annotates focus items with their bindings, merges them
// with fixed task items and the lunch item, sorts the result and verifies
// that no two items overlap.
func AssembleSchedule(
	cycleItems []domain.ScheduleItem,
	bindings map[int]domain.Binding,
	fixedTaskItems []domain.ScheduleItem,
	lunch *domain.ScheduleItem,
) ([]domain.ScheduleItem, error) {
	out := make([]domain.ScheduleItem, 0, len(cycleItems)+len(fixedTaskItems)+1)

	for _, it := range cycleItems {
		if it.Kind == domain.KindFocus {
			if b, ok := bindings[it.CycleNumber]; ok {
				it.BoundTaskTitle = b.TaskTitle
				it.BoundSubtask = b.SubtaskLabel
				it.Label = fmt.Sprintf("Focus #%d: %s", it.CycleNumber, b.SubtaskLabel)
			}
		}
		out = append(out, it)
	}
	for _, it := range fixedTaskItems {
		it.Kind = domain.KindTask
		if it.BoundTaskTitle == "" {
			it.BoundTaskTitle = it.Label
		}
		out = append(out, it)
	}
	if lunch != nil {
		out = append(out, *lunch)
	}

	for _, it := range out {
		if !it.Interval().Valid() {
			return nil, invalidWindow("%s item %q has invalid range %s", it.Kind, it.Label, it.Interval())
		}
	}

	CanonicalSort(out)
	if err := ValidateSchedule(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateSchedule checks a sorted schedule for overlaps and reports the
// first colliding pair. Tracking the furthest end seen so far makes one pass
// equivalent to the pairwise check.
func ValidateSchedule(items []domain.ScheduleItem) error {
	if len(items) < 2 {
		return nil
	}
	reach := 0
	for i := 1; i < len(items); i++ {
		if items[i].Start < items[i-1].Start {
			return &Error{Code: ErrScheduleConflict, Message: fmt.Sprintf("schedule is not sorted at item %d", i)}
		}
		if Overlaps(items[reach].Interval(), items[i].Interval()) {
			return scheduleConflict(items[reach], items[i])
		}
		if items[i].End > items[reach].End {
			reach = i
		}
	}
	return nil
}
