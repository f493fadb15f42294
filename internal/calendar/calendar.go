// Package calendar exports a produced schedule to calendar applications,
// either as an ICS file or as events in a Google calendar.
package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/pilot/internal/domain"
)

// ErrNothingToExport is returned for a run without schedule items.
var ErrNothingToExport = errors.New("run has no schedule items to export")

// Artifact describes what a renderer produced.
type Artifact struct {
	Kind     domain.ExportKind
	Path     string   // ICS file
	EventIDs []string // Google events
}

// Renderer writes a run to one calendar target.
type Renderer interface {
	Kind() domain.ExportKind
	Render(ctx context.Context, run *domain.ScheduleRun) (*Artifact, error)
}

// itemTimes resolves an item to absolute instants on the run date in loc.
func itemTimes(run *domain.ScheduleRun, it domain.ScheduleItem, loc *time.Location) (time.Time, time.Time) {
	y, m, d := run.Date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return it.Start.On(day), it.End.On(day)
}
