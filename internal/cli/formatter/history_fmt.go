package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/pilot/internal/contract"
)

// FormatHistory renders stored runs, newest first.
func FormatHistory(runs []contract.RunSummary, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No schedules yet. Run `pilot plan` to build one.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		created := r.CreatedAt
		if ts, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
			created = HumanTimestamp(ts, now)
		}
		exports := Dim("-")
		if r.Exports > 0 {
			exports = fmt.Sprint(r.Exports)
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			r.Date,
			string(r.Mode),
			fmt.Sprintf("%d/%d", r.CyclesCompleted, r.CyclesRequested),
			FormatMinutes(r.FreeMinutes),
			RiskIndicator(r.RiskLevel),
			exports,
			Dim(created),
		})
	}
	return RenderTable([]string{"ID", "DATE", "MODE", "CYCLES", "FREE", "RISK", "EXPORTS", "CREATED"}, rows)
}
