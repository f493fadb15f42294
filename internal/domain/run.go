package domain

import "time"

// ScheduleRun is one produced schedule as stored in history.
type ScheduleRun struct {
	ID              string
	Date            time.Time
	Mode            Mode
	Window          Interval
	Meetings        []Interval
	Spec            CycleSpec
	LunchApplied    bool
	Description     string
	Tasks           []Task // allocated tasks, fixed-time tasks included
	Items           []ScheduleItem
	CyclesRequested int
	CyclesCompleted int
	FreeMinutes     int
	RiskLevel       RiskLevel
	Warnings        []string
	CreatedAt       time.Time
}

// DateString returns the run date as YYYY-MM-DD.
func (r *ScheduleRun) DateString() string {
	return r.Date.Format(DateLayout)
}

// ItemAt returns the index of the item running at clock c, or the index of
// the next item when c falls in a gap. It returns -1 once the day is over.
func (r *ScheduleRun) ItemAt(c Clock) int {
	for i, it := range r.Items {
		if c < it.End {
			return i
		}
	}
	return -1
}

// ExportKind names a calendar exporter.
type ExportKind string

const (
	ExportNone   ExportKind = "none"
	ExportICS    ExportKind = "ics"
	ExportGoogle ExportKind = "google"
)

// ValidExportKinds is the canonical set of accepted exporter names.
var ValidExportKinds = map[string]bool{
	"none": true, "ics": true, "google": true,
}

// ExportRecord is a calendar artifact produced for a run.
type ExportRecord struct {
	ID        string
	RunID     string
	Kind      ExportKind
	Path      string
	EventIDs  []string
	CreatedAt time.Time
}

// DateLayout is the calendar date format used on the command line and in storage.
const DateLayout = "2006-01-02"
