package scheduler

import "github.com/alexanderramin/pilot/internal/domain"

// Lunch rule constants. The carve-out is busy; the dead zone after it is
// never a valid start but is not reported as occupied.
var (
	LunchStart  = domain.NewClock(12, 0)
	LunchEnd    = domain.NewClock(14, 0)
	ResumeAt    = domain.NewClock(14, 10)
	LunchWindow = domain.Interval{Start: LunchStart, End: LunchEnd}
	DeadZone    = domain.Interval{Start: LunchEnd, End: ResumeAt}
)

// ValidateWindow fails with INVALID_WINDOW unless start < end within a
// single day. Cross-midnight windows are rejected.
func ValidateWindow(window domain.Interval) error {
	if window.Start >= window.End {
		return invalidWindow("work window %s must start before it ends (cross-midnight windows are not supported)", window)
	}
	if !window.Valid() {
		return invalidWindow("work window %s is outside a single day", window)
	}
	return nil
}

// ValidateMeetings fails with INVALID_MEETING naming the first malformed entry.
func ValidateMeetings(meetings []domain.Interval) error {
	for i, m := range meetings {
		if !m.Valid() {
			return invalidMeeting(i, m)
		}
	}
	return nil
}

// ComputeFreeIntervals returns the maximal disjoint free intervals of the
// work window after removing meetings and, when applyLunch is set, the
// 12:00-14:00 carve-out. Free intervals never start inside the 14:00-14:10
// dead zone.
func ComputeFreeIntervals(window domain.Interval, meetings []domain.Interval, applyLunch bool) ([]domain.Interval, error) {
	if err := ValidateWindow(window); err != nil {
		return nil, err
	}
	if err := ValidateMeetings(meetings); err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(meetings)+1)
	busy = append(busy, meetings...)
	if applyLunch && Overlaps(window, LunchWindow) {
		busy = append(busy, LunchWindow)
	}

	free := Subtract(window, busy)
	if !applyLunch {
		return free, nil
	}

	out := free[:0]
	for _, iv := range free {
		if DeadZone.Contains(iv.Start) {
			iv.Start = ResumeAt
		}
		if iv.Start < iv.End {
			out = append(out, iv)
		}
	}
	return out, nil
}

// LunchItem returns the lunch ScheduleItem for the window, clipped to it, or
// nil when the lunch rule does not apply.
func LunchItem(window domain.Interval, applyLunch bool) *domain.ScheduleItem {
	if !applyLunch || !Overlaps(window, LunchWindow) {
		return nil
	}
	start, end := LunchStart, LunchEnd
	if window.Start > start {
		start = window.Start
	}
	if window.End < end {
		end = window.End
	}
	return &domain.ScheduleItem{
		Start: start,
		End:   end,
		Kind:  domain.KindLunch,
		Label: "Lunch break",
	}
}
