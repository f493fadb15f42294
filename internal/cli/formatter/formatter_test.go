package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/pilot/internal/contract"
	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/alexanderramin/pilot/internal/testutil"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMinutes(t *testing.T) {
	cases := map[int]string{-5: "0m", 0: "0m", 45: "45m", 60: "1h", 95: "1h 35m", 540: "9h"}
	for in, want := range cases {
		assert.Equal(t, want, FormatMinutes(in), "minutes=%d", in)
	}
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "BB"}, [][]string{{"long cell", "x"}, {"y"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(lines[1]), "separator spans the header")
	assert.Equal(t, strings.Index(lines[0], "BB"), strings.Index(lines[2], "x"))
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderProgress_Clamps(t *testing.T) {
	assert.Contains(t, RenderProgress(1.5, 4), "100%")
	assert.Contains(t, RenderProgress(-1, 4), "  0%")
	assert.Contains(t, RenderProgress(0.5, 4), "██░░")
}

func TestFormatSchedule(t *testing.T) {
	fixedAt := domain.Interval{Start: domain.MustClock("16:00"), End: domain.MustClock("16:30")}
	resp := &contract.ScheduleResponse{
		RunID:     "0f7c2d1e-aaaa-bbbb-cccc-123456789abc",
		Date:      testutil.TestDay,
		Mode:      domain.ModeWork,
		Spec:      domain.WorkPreset(),
		Window:    domain.Interval{Start: domain.MustClock("09:30"), End: domain.MustClock("18:30")},
		RiskLevel: domain.RiskAtRisk,
		Persisted: true,
		Items: []domain.ScheduleItem{
			testutil.NewTestItem(domain.KindFocus, "09:30", "10:20", "Focus #1: outline", 1),
			testutil.NewTestItem(domain.KindShortBreak, "10:20", "10:30", "Short break", 1),
			testutil.NewTestItem(domain.KindTask, "16:00", "16:30", "Standup", 0),
		},
		Allocations: []contract.TaskAllocation{
			{Title: "Write report", Category: domain.CategoryDeep, Weight: 9, AllocatedMin: 127},
			{Title: "Inbox", Category: domain.CategoryLight, Weight: 4, AllocatedMin: 30},
			{Title: "Standup", Category: domain.CategoryNormal, Weight: 6, AllocatedMin: 30, Fixed: true, FixedAt: &fixedAt},
		},
		Bindings:        []domain.Binding{{CycleNumber: 1, TaskTitle: "Write report", SubtaskLabel: "outline"}},
		CyclesRequested: 6,
		CyclesCompleted: 1,
		FreeMinutes:     410,
		Warnings:        []contract.Warning{{Code: contract.WarnTaskUnbound, Message: `task "Inbox" received no focus cycle`}},
	}

	out := FormatSchedule(resp)
	assert.Contains(t, out, "SCHEDULE FOR 2026-03-02 (MONDAY)")
	assert.Contains(t, out, "run 0f7c2d1e-aaaa-bbbb-cccc-123456789abc")
	assert.Contains(t, out, "AT RISK")
	assert.Contains(t, out, "09:30-10:20")
	assert.Contains(t, out, "Focus #1: outline")
	assert.Contains(t, out, "FIXED")
	assert.Contains(t, out, "Cycles 1/6")
	assert.Contains(t, out, "free 6h 50m")
	assert.Contains(t, out, "2h 7m")
	assert.Contains(t, out, "16:00-16:30")
	assert.Contains(t, out, "TASK_UNBOUND")

	resp.Persisted = false
	resp.Warnings = nil
	out = FormatSchedule(resp)
	assert.Contains(t, out, "dry run, not saved")
	assert.NotContains(t, out, "WARNINGS")
}

func TestFormatRun_WithExports(t *testing.T) {
	run := testutil.NewTestRun(testutil.WithRunWarnings("CYCLES_SHORTFALL: planned 5 of 6 focus cycles"))
	exports := []*domain.ExportRecord{
		{Kind: domain.ExportICS, Path: "exports/pilot_schedule_20260302.ics", CreatedAt: run.CreatedAt},
		{Kind: domain.ExportGoogle, EventIDs: []string{"a", "b"}, CreatedAt: run.CreatedAt},
	}

	out := FormatRun(run, exports)
	assert.Contains(t, out, "run "+run.ID)
	assert.Contains(t, out, "Focus #2: part 2 of Write report")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "CYCLES_SHORTFALL")
	assert.Contains(t, out, "to exports/pilot_schedule_20260302.ics")
	assert.Contains(t, out, "2 events to Google Calendar")
}

func TestFormatExport(t *testing.T) {
	out := FormatExport(&contract.ExportResponse{
		Record:   &domain.ExportRecord{Kind: domain.ExportICS, Path: "out.ics"},
		Warnings: []contract.Warning{{Code: contract.WarnExportFallback, Message: "google calendar export failed"}},
	})
	assert.Contains(t, out, "EXPORT_FALLBACK")
	assert.Contains(t, out, "Exported to out.ics")
}

func TestFormatHistory(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	out := FormatHistory([]contract.RunSummary{
		{
			ID: "0f7c2d1e-aaaa", Date: "2026-03-02", Mode: domain.ModeStudy,
			CyclesRequested: 4, CyclesCompleted: 3, FreeMinutes: 300,
			RiskLevel: domain.RiskAtRisk, Exports: 2, CreatedAt: "2026-03-02T10:00:00Z",
		},
	}, now)
	assert.Contains(t, out, "0f7c2d1e")
	assert.NotContains(t, out, "0f7c2d1e-aaaa")
	assert.Contains(t, out, "3/4")
	assert.Contains(t, out, "5h")
	assert.Contains(t, out, "2h ago")

	assert.Contains(t, FormatHistory(nil, now), "No schedules yet")
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "just now", HumanTimestamp(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute), now))
	assert.Equal(t, "Feb 27 12:00", HumanTimestamp(now.AddDate(0, 0, -3), now))
}
