package domain

import "time"

// PlanInput is what the caller hands to the planning oracle.
type PlanInput struct {
	Date        time.Time
	WorkWindow  Interval
	Meetings    []Interval
	Mode        Mode
	Cycles      int
	LunchRule   bool
	Description string
}

// AvailableMinutes is the window length minus meeting time, the figure the
// planner is told about. Meetings are clipped to the window.
func (in PlanInput) AvailableMinutes() int {
	total := in.WorkWindow.Minutes()
	for _, m := range in.Meetings {
		s, e := m.Start, m.End
		if s < in.WorkWindow.Start {
			s = in.WorkWindow.Start
		}
		if e > in.WorkWindow.End {
			e = in.WorkWindow.End
		}
		if e > s {
			total -= int(e - s)
		}
	}
	if total < 0 {
		return 0
	}
	return total
}

// TimeBlock is a labelled block suggested by the planner.
type TimeBlock struct {
	Interval Interval
	Label    string
}

// PlanOutput is the structured plan returned by the planning oracle.
type PlanOutput struct {
	CapacityMinutes int
	Meetings        []Interval
	Tasks           []Task
	TimeBlocks      []TimeBlock
	Risks           []string
}
