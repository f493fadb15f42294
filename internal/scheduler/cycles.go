package scheduler

import (
	"fmt"

	"github.com/alexanderramin/pilot/internal/domain"
)

// CyclePlan is the output of PlanCycles. Completed may be lower than
// Requested when free time runs out; that is reported, not an error.
type CyclePlan struct {
	Items     []domain.ScheduleItem
	Requested int
	Completed int
}

// Shortfall returns how many requested cycles could not be placed.
func (p CyclePlan) Shortfall() int {
	return p.Requested - p.Completed
}

type plannerState int

const (
	stateFocus plannerState = iota
	stateBreak
	stateDone
)

// ValidateCycleSpec fails with INVALID_CYCLE_SPEC for a malformed cadence.
func ValidateCycleSpec(spec domain.CycleSpec) error {
	if err := spec.Validate(); err != nil {
		return &Error{Code: ErrInvalidCycleSpec, Message: err.Error()}
	}
	return nil
}

// PlanCycles walks forward from start emitting alternating focus and break
// items inside the free intervals, never past end.
//
// A focus block always lies inside a single free interval. When the rest of
// the current interval is too short, the block moves to the next free
// interval that can hold it. A break that does not fit before the next busy
// gap is dropped; the gap itself is the rest.
//
// Errors are reserved for the first cycle: NO_REMAINING_CAPACITY when no free
// time is left before end, FRAGMENTED_SLOT when free time remains but no
// single interval can hold a focus block. Later exhaustion stops the walk and
// is reported through Completed.
func PlanCycles(spec domain.CycleSpec, start, end domain.Clock, free []domain.Interval) (CyclePlan, error) {
	if err := ValidateCycleSpec(spec); err != nil {
		return CyclePlan{}, err
	}
	if start >= end {
		return CyclePlan{}, invalidWindow("cycle window %s-%s must start before it ends", start, end)
	}

	slots := clipFree(free, start, end)
	plan := CyclePlan{Requested: spec.CycleCount}
	current := start
	state := stateFocus
	if spec.CycleCount == 0 {
		state = stateDone
	}

	for state != stateDone {
		switch state {
		case stateFocus:
			slot, ok := fitFocus(slots, current, spec.FocusMinutes)
			if !ok {
				if plan.Completed == 0 {
					return CyclePlan{}, capacityError(slots, current, spec.FocusMinutes)
				}
				state = stateDone
				continue
			}
			plan.Completed++
			plan.Items = append(plan.Items, domain.ScheduleItem{
				Start:       slot.Start,
				End:         slot.End,
				Kind:        domain.KindFocus,
				Label:       fmt.Sprintf("Focus #%d", plan.Completed),
				CycleNumber: plan.Completed,
			})
			current = slot.End
			if plan.Completed == spec.CycleCount || current >= end {
				state = stateDone
			} else {
				state = stateBreak
			}

		case stateBreak:
			kind, minutes := breakFor(spec, plan.Completed)
			if minutes > 0 {
				brk := domain.Interval{Start: current, End: current.Add(minutes)}
				if containedIn(slots, brk) {
					plan.Items = append(plan.Items, domain.ScheduleItem{
						Start:       brk.Start,
						End:         brk.End,
						Kind:        kind,
						Label:       breakLabel(kind),
						CycleNumber: plan.Completed,
					})
					current = brk.End
				}
			}
			state = stateFocus
		}
	}
	return plan, nil
}

// breakFor picks the break after the given completed cycle count.
func breakFor(spec domain.CycleSpec, completed int) (domain.ItemKind, int) {
	if spec.LongBreakEveryNCycles > 0 && spec.LongBreakMinutes > 0 &&
		completed%spec.LongBreakEveryNCycles == 0 {
		return domain.KindLongBreak, spec.LongBreakMinutes
	}
	return domain.KindShortBreak, spec.BreakMinutes
}

func breakLabel(kind domain.ItemKind) string {
	if kind == domain.KindLongBreak {
		return "Long break"
	}
	return "Short break"
}

// fitFocus finds the earliest [s, s+minutes) at or after current that lies
// inside one free slot.
func fitFocus(slots []domain.Interval, current domain.Clock, minutes int) (domain.Interval, bool) {
	for _, s := range slots {
		if s.End <= current {
			continue
		}
		begin := s.Start
		if current > begin {
			begin = current
		}
		if int(s.End-begin) >= minutes {
			return domain.Interval{Start: begin, End: begin.Add(minutes)}, true
		}
	}
	return domain.Interval{}, false
}

func containedIn(slots []domain.Interval, iv domain.Interval) bool {
	for _, s := range slots {
		if s.Covers(iv) {
			return true
		}
	}
	return false
}

// clipFree restricts free intervals to [start, end).
func clipFree(free []domain.Interval, start, end domain.Clock) []domain.Interval {
	var out []domain.Interval
	for _, iv := range Merge(free) {
		if iv.Start < start {
			iv.Start = start
		}
		if iv.End > end {
			iv.End = end
		}
		if iv.Start < iv.End {
			out = append(out, iv)
		}
	}
	return out
}

func capacityError(slots []domain.Interval, current domain.Clock, focusMin int) *Error {
	remaining := 0
	for _, s := range slots {
		if s.End <= current {
			continue
		}
		begin := s.Start
		if current > begin {
			begin = current
		}
		remaining += int(s.End - begin)
	}
	if remaining >= focusMin {
		return &Error{
			Code:    ErrFragmentedSlot,
			Message: fmt.Sprintf("%d free minutes remain but no single free interval fits a %d-minute focus block", remaining, focusMin),
		}
	}
	return &Error{
		Code:    ErrNoRemainingCapacity,
		Message: fmt.Sprintf("only %d free minutes remain after %s; a focus block needs %d", remaining, current, focusMin),
	}
}
