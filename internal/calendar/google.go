package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"github.com/alexanderramin/pilot/internal/domain"
)

// RunIDProperty is the private extended property carrying the run ID on
// every created event.
const RunIDProperty = "pilot_run_id"

// EventInserter is the slice of the Calendar API the renderer needs.
type EventInserter interface {
	Insert(ctx context.Context, calendarID string, ev *gcal.Event) (*gcal.Event, error)
}

type serviceInserter struct {
	srv *gcal.Service
}

// NewEventInserter adapts a Calendar API service.
func NewEventInserter(srv *gcal.Service) EventInserter {
	return serviceInserter{srv: srv}
}

func (s serviceInserter) Insert(ctx context.Context, calendarID string, ev *gcal.Event) (*gcal.Event, error) {
	return s.srv.Events.Insert(calendarID, ev).Context(ctx).Do()
}

// GoogleRenderer inserts one event per schedule item.
type GoogleRenderer struct {
	events     EventInserter
	calendarID string
	loc        *time.Location
}

func NewGoogleRenderer(events EventInserter, calendarID string, loc *time.Location) *GoogleRenderer {
	if calendarID == "" {
		calendarID = "primary"
	}
	if loc == nil {
		loc = time.Local
	}
	return &GoogleRenderer{events: events, calendarID: calendarID, loc: loc}
}

func (r *GoogleRenderer) Kind() domain.ExportKind { return domain.ExportGoogle }

// Render stops at the first failed insert. IDs of events created before
// the failure are returned with the error so the caller can report them.
func (r *GoogleRenderer) Render(ctx context.Context, run *domain.ScheduleRun) (*Artifact, error) {
	if len(run.Items) == 0 {
		return nil, ErrNothingToExport
	}
	art := &Artifact{Kind: domain.ExportGoogle}
	for _, it := range run.Items {
		created, err := r.events.Insert(ctx, r.calendarID, r.event(run, it))
		if err != nil {
			return art, fmt.Errorf("inserting %s event at %s: %w", it.Kind, it.Start, err)
		}
		art.EventIDs = append(art.EventIDs, created.Id)
	}
	return art, nil
}

func (r *GoogleRenderer) event(run *domain.ScheduleRun, it domain.ScheduleItem) *gcal.Event {
	start, end := itemTimes(run, it, r.loc)
	tz := r.loc.String()

	ev := &gcal.Event{
		Summary:     Summary(it),
		Description: Description(it),
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: tz},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: tz},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{
				RunIDProperty: run.ID,
				"pilot_type":  string(it.Kind),
			},
		},
	}

	// The API only takes reminders before the start, so break reminders
	// are left to the ICS export.
	reminders := &gcal.EventReminders{ForceSendFields: []string{"UseDefault"}}
	for _, a := range Alarms(it) {
		if a.OffsetMin < 0 {
			reminders.Overrides = append(reminders.Overrides, &gcal.EventReminder{Method: "popup", Minutes: int64(-a.OffsetMin)})
		}
	}
	ev.Reminders = reminders
	return ev
}
