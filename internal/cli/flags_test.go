package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagValues(t *testing.T) {
	var (
		window   domain.Interval
		meetings []domain.Interval
		mode     domain.Mode
		date     time.Time
	)
	def := domain.Interval{Start: domain.MustClock("09:30"), End: domain.MustClock("18:30")}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(newIntervalValue(def, &window), "window", "")
	fs.Var(&meetingsValue{list: &meetings}, "meeting", "")
	fs.Var(newEnumValue(domain.ModeWork, &mode, domain.ValidModes, "mode"), "mode", "")
	fs.Var(&dateValue{date: &date}, "date", "")

	assert.Equal(t, def, window)
	assert.Equal(t, domain.ModeWork, mode)
	assert.Equal(t, "09:30-18:30", fs.Lookup("window").DefValue)

	require.NoError(t, fs.Parse([]string{
		"--window", "08:00-17:00",
		"--meeting", "10:00-10:30, 13:00–13:45",
		"--meeting", "15:00-16:00",
		"--mode", " STUDY ",
		"--date", "2026-03-04",
	}))
	assert.Equal(t, "08:00-17:00", window.String())
	require.Len(t, meetings, 3)
	assert.Equal(t, "13:00-13:45", meetings[1].String())
	assert.Equal(t, "[10:00-10:30,13:00-13:45,15:00-16:00]", fs.Lookup("meeting").Value.String())
	assert.Equal(t, domain.ModeStudy, mode)
	assert.Equal(t, time.Wednesday, date.Weekday())
}

func TestFlagValues_Rejects(t *testing.T) {
	var (
		window   domain.Interval
		meetings []domain.Interval
		export   domain.ExportKind
	)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(newIntervalValue(domain.Interval{}, &window), "window", "")
	fs.Var(&meetingsValue{list: &meetings}, "meeting", "")
	fs.Var(newEnumValue(domain.ExportNone, &export, domain.ValidExportKinds, "exporter"), "export", "")

	assert.Error(t, fs.Parse([]string{"--window", "0930-1830"}))
	assert.Error(t, fs.Parse([]string{"--meeting", "10:00-10:30,25:00-26:00"}))

	err := fs.Parse([]string{"--export", "outlook"})
	assert.ErrorContains(t, err, `invalid exporter "outlook" (want google|ics|none)`)
}

func TestMeetingsValue_Replace(t *testing.T) {
	meetings := []domain.Interval{{Start: 1, End: 2}}
	v := &meetingsValue{list: &meetings}
	require.NoError(t, v.Replace([]string{"10:00-11:00"}))
	assert.Equal(t, []string{"10:00-11:00"}, v.GetSlice())
	require.NoError(t, v.Append("12:00-12:30"))
	assert.Len(t, meetings, 2)
}
