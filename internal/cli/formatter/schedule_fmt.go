package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pilot/internal/contract"
	"github.com/alexanderramin/pilot/internal/domain"
)

// FormatSchedule renders a freshly built schedule.
func FormatSchedule(resp *contract.ScheduleResponse) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Schedule for %s (%s)", resp.Date.Format(domain.DateLayout), resp.Date.Weekday())))
	b.WriteString("\n")
	b.WriteString(summaryLine(resp.Mode, resp.Spec, resp.Window, resp.RiskLevel))
	b.WriteString("\n")
	if resp.Persisted {
		b.WriteString(Dim("run " + resp.RunID))
	} else {
		b.WriteString(Dim("dry run, not saved"))
	}
	b.WriteString("\n\n")

	b.WriteString(itemsTable(resp.Items))
	b.WriteString("\n")
	b.WriteString(cycleLine(resp.CyclesCompleted, resp.CyclesRequested, resp.FreeMinutes))
	b.WriteString("\n")

	if len(resp.Allocations) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Tasks"))
		b.WriteString("\n")
		b.WriteString(allocationTable(resp.Allocations, resp.Bindings))
	}

	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatWarnings(resp.Warnings))
	}
	return b.String()
}

// FormatRun renders a stored run with its exports.
func FormatRun(run *domain.ScheduleRun, exports []*domain.ExportRecord) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Schedule for %s (%s)", run.DateString(), run.Date.Weekday())))
	b.WriteString("\n")
	b.WriteString(summaryLine(run.Mode, run.Spec, run.Window, run.RiskLevel))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("run %s, created %s", run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04"))))
	b.WriteString("\n\n")

	b.WriteString(itemsTable(run.Items))
	b.WriteString("\n")
	b.WriteString(cycleLine(run.CyclesCompleted, run.CyclesRequested, run.FreeMinutes))
	b.WriteString("\n")

	if len(run.Tasks) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Tasks"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(run.Tasks))
		for _, t := range run.Tasks {
			alloc := FormatMinutes(t.EstimatedMinutes)
			if t.IsFixed() {
				alloc = t.FixedInterval().String()
			}
			rows = append(rows, []string{t.Title, string(t.Category), strconv.Itoa(t.EffectiveWeight()), alloc})
		}
		b.WriteString(RenderTable([]string{"TASK", "TYPE", "WEIGHT", "TIME"}, rows))
	}

	if len(run.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Warnings"))
		b.WriteString("\n")
		for _, w := range run.Warnings {
			b.WriteString(StyleYellow.Render("⚠ ") + w + "\n")
		}
	}

	if len(exports) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Exports"))
		b.WriteString("\n")
		for _, e := range exports {
			b.WriteString(fmt.Sprintf("%s  %s  %s\n", StyleBlue.Render(string(e.Kind)), exportTarget(e), Dim(e.CreatedAt.Local().Format("2006-01-02 15:04"))))
		}
	}
	return b.String()
}

// FormatWarnings renders response warnings, one per line.
func FormatWarnings(ws []contract.Warning) string {
	var b strings.Builder
	b.WriteString(Header("Warnings"))
	b.WriteString("\n")
	for _, w := range ws {
		b.WriteString(StyleYellow.Render("⚠ "+string(w.Code)) + " " + w.Message + "\n")
	}
	return b.String()
}

// FormatExport reports where a schedule was exported.
func FormatExport(resp *contract.ExportResponse) string {
	var b strings.Builder
	if len(resp.Warnings) > 0 {
		b.WriteString(FormatWarnings(resp.Warnings))
	}
	b.WriteString(StyleGreen.Render("✔ ") + "Exported " + exportTarget(resp.Record) + "\n")
	return b.String()
}

func exportTarget(rec *domain.ExportRecord) string {
	switch rec.Kind {
	case domain.ExportGoogle:
		return fmt.Sprintf("%d events to Google Calendar", len(rec.EventIDs))
	default:
		return "to " + rec.Path
	}
}

func summaryLine(mode domain.Mode, spec domain.CycleSpec, window domain.Interval, risk domain.RiskLevel) string {
	return fmt.Sprintf("%s  %s  %s", ModeBadge(mode, spec), Dim("window "+window.String()), RiskIndicator(risk))
}

func cycleLine(completed, requested, free int) string {
	pct := 1.0
	if requested > 0 {
		pct = float64(completed) / float64(requested)
	}
	return fmt.Sprintf("Cycles %d/%d %s  free %s", completed, requested, RenderProgress(pct, 12), FormatMinutes(free))
}

func itemsTable(items []domain.ScheduleItem) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Interval().String(),
			KindBadge(it.Kind),
			KindStyle(it.Kind).Render(it.Label),
			strconv.Itoa(it.Minutes()),
		})
	}
	return RenderTable([]string{"TIME", "KIND", "ACTIVITY", "MIN"}, rows)
}

func allocationTable(allocs []contract.TaskAllocation, bindings []domain.Binding) string {
	cycles := make(map[string]int)
	for _, b := range bindings {
		if !b.Placeholder {
			cycles[b.TaskTitle]++
		}
	}
	rows := make([][]string, 0, len(allocs))
	for _, a := range allocs {
		budget := FormatMinutes(a.AllocatedMin)
		bound := strconv.Itoa(cycles[a.Title])
		if a.Fixed && a.FixedAt != nil {
			budget = a.FixedAt.String()
			bound = Dim("fixed")
		} else if cycles[a.Title] == 0 {
			bound = StyleRed.Render("0")
		}
		rows = append(rows, []string{a.Title, string(a.Category), strconv.Itoa(a.Weight), budget, bound})
	}
	return RenderTable([]string{"TASK", "TYPE", "WEIGHT", "BUDGET", "CYCLES"}, rows)
}
