package calendar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/alexanderramin/pilot/internal/testutil"
)

var shanghai = time.FixedZone("UTC+8", 8*60*60)

func newTestICS(dir string) *ICSRenderer {
	r := NewICSRenderer(dir, shanghai)
	r.now = func() time.Time { return time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC) }
	n := 0
	r.newUID = func() string {
		n++
		return fmt.Sprintf("uid-%d@pilot", n)
	}
	return r
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "pilot_schedule_20260302.ics", FileName(testutil.TestDay))
}

func TestICSRenderer_Render(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	run := testutil.NewTestRun()

	art, err := newTestICS(dir).Render(context.Background(), run)
	require.NoError(t, err)
	assert.Equal(t, domain.ExportICS, art.Kind)
	assert.Equal(t, filepath.Join(dir, "pilot_schedule_20260302.ics"), art.Path)
	assert.Empty(t, art.EventIDs)

	f, err := os.Open(art.Path)
	require.NoError(t, err)
	defer f.Close()
	cal, err := ics.ParseCalendar(f)
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "uid-1@pilot", events[0].Id())
	assert.Equal(t, "Focus #1", events[0].GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "Short break", events[1].GetProperty(ics.ComponentPropertySummary).Value)

	start, err := events[0].GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2026, 3, 2, 1, 30, 0, 0, time.UTC)), "09:30 in UTC+8, got %s", start)
	end, err := events[0].GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, 50*time.Minute, end.Sub(start))
}

func TestICSRenderer_BuildCarriesCalendarMetadataAndAlarms(t *testing.T) {
	run := testutil.NewTestRun()
	out := newTestICS(t.TempDir()).Build(run).Serialize()

	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "PRODID:"+productID)
	assert.Contains(t, out, "X-WR-TIMEZONE:UTC+8")
	assert.Contains(t, out, "X-PILOT-TYPE:short_break")
	assert.Contains(t, out, "X-PILOT-RUN:"+run.ID)

	// Two reminders per focus block plus one for the break.
	assert.Equal(t, 5, strings.Count(out, "BEGIN:VALARM"))
	assert.Contains(t, out, "TRIGGER:-PT5M")
	assert.Contains(t, out, "TRIGGER:-PT1M")
	assert.Contains(t, out, "TRIGGER:PT9M")
	assert.Contains(t, out, "ACTION:DISPLAY")
}

func TestICSRenderer_OverwritesSameDay(t *testing.T) {
	dir := t.TempDir()
	r := newTestICS(dir)

	_, err := r.Render(context.Background(), testutil.NewTestRun())
	require.NoError(t, err)
	art, err := r.Render(context.Background(), testutil.NewTestRun(testutil.WithRunItems(
		testutil.NewTestItem(domain.KindFocus, "14:10", "15:00", "Focus #1", 1),
	)))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	data, err := os.ReadFile(art.Path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "BEGIN:VEVENT"))
}

func TestICSRenderer_EmptyRun(t *testing.T) {
	dir := t.TempDir()
	_, err := newTestICS(dir).Render(context.Background(), testutil.NewTestRun(testutil.WithRunItems()))
	assert.ErrorIs(t, err, ErrNothingToExport)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenCommand(t *testing.T) {
	name, args := openCommand("darwin", "/tmp/a.ics")
	assert.Equal(t, "open", name)
	assert.Equal(t, []string{"/tmp/a.ics"}, args)

	name, _ = openCommand("linux", "/tmp/a.ics")
	assert.Equal(t, "xdg-open", name)

	name, args = openCommand("windows", `C:\a.ics`)
	assert.Equal(t, "cmd", name)
	assert.Equal(t, []string{"/c", "start", "", `C:\a.ics`}, args)

	name, _ = openCommand("plan9", "/tmp/a.ics")
	assert.Empty(t, name)
}
