package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/alexanderramin/pilot/internal/teatest"
	"github.com/alexanderramin/pilot/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func at(hhmm string) time.Time {
	return domain.MustClock(hhmm).On(testutil.TestDay)
}

func newFocusDriver(t *testing.T, now string) (*teatest.Driver, *focusModel) {
	t.Helper()
	m := newFocusModel(testutil.NewTestRun(), at(now))
	d := teatest.New(t, m, teatest.WithSize(80, 24))
	d.DrainInit()
	return d, m
}

func TestFocusModel_FollowsTheClock(t *testing.T) {
	d, m := newFocusDriver(t, "09:40")
	assert.Equal(t, 0, m.idx)
	view := d.View()
	assert.Contains(t, view, "FOCUS 2026-03-02")
	assert.Contains(t, view, "Focus #1: part 1 of Write report")
	assert.Contains(t, view, "40m left")
	assert.Contains(t, view, "Next: 10:20 Short break")
	assert.Contains(t, view, "n next item • q quit")

	d.Send(focusTickMsg(at("10:25")))
	assert.Equal(t, 1, m.idx)
	assert.Contains(t, d.View(), "5m left")
	assert.False(t, d.Quitting)
}

func TestFocusModel_BeforeFirstItem(t *testing.T) {
	d, m := newFocusDriver(t, "08:45")
	assert.Equal(t, 0, m.idx)
	assert.Contains(t, d.View(), "starts in 45m")
}

func TestFocusModel_SkipPinsTheNextItem(t *testing.T) {
	d, m := newFocusDriver(t, "09:40")

	d.PressKey('n')
	assert.Equal(t, 1, m.idx)
	assert.Contains(t, d.View(), "starts in 40m")

	d.Send(focusTickMsg(at("09:50")))
	assert.Equal(t, 1, m.idx, "a tick does not move back to a skipped item")

	d.Send(focusTickMsg(at("10:35")))
	assert.Equal(t, 2, m.idx)

	d.PressKey('n')
	assert.Equal(t, -1, m.idx)
	assert.True(t, d.Quitting)
	assert.Contains(t, d.View(), "Day complete")
}

func TestFocusModel_DayOverQuits(t *testing.T) {
	d, _ := newFocusDriver(t, "10:00")
	d.Send(focusTickMsg(at("12:00")))
	assert.True(t, d.Quitting)
}

func TestFocusModel_QuitKeys(t *testing.T) {
	d, _ := newFocusDriver(t, "10:00")
	d.PressKey('q')
	assert.True(t, d.Quitting)

	d, _ = newFocusDriver(t, "10:00")
	d.PressCtrlC()
	assert.True(t, d.Quitting)
}
