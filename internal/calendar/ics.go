package calendar

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/alexanderramin/pilot/internal/domain"
)

const productID = "-//pilot//schedule 1.0//EN"

// ICSRenderer writes pilot_schedule_YYYYMMDD.ics files into Dir.
type ICSRenderer struct {
	Dir      string
	Location *time.Location
	now      func() time.Time
	newUID   func() string
}

func NewICSRenderer(dir string, loc *time.Location) *ICSRenderer {
	if loc == nil {
		loc = time.Local
	}
	return &ICSRenderer{
		Dir:      dir,
		Location: loc,
		now:      time.Now,
		newUID:   func() string { return uuid.NewString() + "@pilot" },
	}
}

func (r *ICSRenderer) Kind() domain.ExportKind { return domain.ExportICS }

// FileName returns the file name used for a run date.
func FileName(date time.Time) string {
	return fmt.Sprintf("pilot_schedule_%s.ics", date.Format("20060102"))
}

func (r *ICSRenderer) Render(ctx context.Context, run *domain.ScheduleRun) (*Artifact, error) {
	if len(run.Items) == 0 {
		return nil, ErrNothingToExport
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	path := filepath.Join(r.Dir, FileName(run.Date))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating ics file: %w", err)
	}
	if err := r.Build(run).SerializeTo(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing ics file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing ics file: %w", err)
	}
	return &Artifact{Kind: domain.ExportICS, Path: path}, nil
}

// Build returns the calendar for a run without touching the filesystem.
func (r *ICSRenderer) Build(run *domain.ScheduleRun) *ics.Calendar {
	stamp := r.now().UTC()

	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ics.MethodPublish)
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRCalName("pilot " + run.DateString())
	cal.SetXWRTimezone(r.Location.String())
	cal.SetXWRCalDesc(fmt.Sprintf("%s day, %d focus cycles", run.Mode, run.CyclesCompleted))

	for _, it := range run.Items {
		start, end := itemTimes(run, it, r.Location)

		ev := cal.AddEvent(r.newUID())
		ev.SetCreatedTime(stamp)
		ev.SetDtStampTime(stamp)
		ev.SetModifiedAt(stamp)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(Summary(it))
		ev.SetDescription(Description(it))
		ev.AddProperty(ics.ComponentPropertyCategories, "pilot")
		ev.AddProperty(ics.ComponentPropertyCategories, string(it.Kind))
		ev.AddProperty(ics.ComponentProperty("X-PILOT-TYPE"), string(it.Kind))
		if run.ID != "" {
			ev.AddProperty(ics.ComponentProperty("X-PILOT-RUN"), run.ID)
		}

		for _, a := range Alarms(it) {
			alarm := ev.AddAlarm()
			alarm.SetAction(ics.ActionDisplay)
			alarm.SetTrigger(trigger(a.OffsetMin))
			alarm.AddProperty(ics.ComponentPropertyDescription, a.Message)
		}
	}
	return cal
}

// OpenFile asks the operating system to open path with its default
// application, which imports an ICS file into the user's calendar.
func OpenFile(ctx context.Context, path string) error {
	name, args := openCommand(runtime.GOOS, path)
	if name == "" {
		return fmt.Errorf("opening files is not supported on %s", runtime.GOOS)
	}
	if err := exec.CommandContext(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}

func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}
	default:
		return "", nil
	}
}
