package repository

import (
	"context"

	"github.com/alexanderramin/pilot/internal/domain"
)

// RunSummary is a history row without items or tasks.
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

type RunRepo interface {
	Save(ctx context.Context, run *domain.ScheduleRun) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleRun, error)
	// GetByPrefix resolves an unambiguous ID prefix, as typed on the CLI.
	GetByPrefix(ctx context.Context, prefix string) (*domain.ScheduleRun, error)
	Latest(ctx context.Context) (*domain.ScheduleRun, error)
	LatestForDate(ctx context.Context, date string) (*domain.ScheduleRun, error)
	List(ctx context.Context, limit int) ([]RunSummary, error)
}

type ExportRepo interface {
	Create(ctx context.Context, rec *domain.ExportRecord) error
	ListByRun(ctx context.Context, runID string) ([]*domain.ExportRecord, error)
}
