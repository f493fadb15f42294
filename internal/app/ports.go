package app

import (
	"context"

	"github.com/alexanderramin/pilot/internal/domain"
)

type ScheduleUseCase interface {
	Build(ctx context.Context, req ScheduleRequest) (*ScheduleResponse, error)
}

type ExportUseCase interface {
	Export(ctx context.Context, req ExportRequest) (*ExportResponse, error)
}

// RunSummary is a history row.
type RunSummary struct {
	ID              string
	Date            string
	Mode            domain.Mode
	CyclesRequested int
	CyclesCompleted int
	FreeMinutes     int
	RiskLevel       domain.RiskLevel
	Exports         int
	CreatedAt       string
}

type HistoryUseCase interface {
	List(ctx context.Context, limit int) ([]RunSummary, error)
	// Get resolves a full ID or an unambiguous prefix.
	Get(ctx context.Context, id string) (*domain.ScheduleRun, error)
	// Current returns the latest run for the date, or the latest run at all
	// when date is empty.
	Current(ctx context.Context, date string) (*domain.ScheduleRun, error)
	Exports(ctx context.Context, runID string) ([]*domain.ExportRecord, error)
}
