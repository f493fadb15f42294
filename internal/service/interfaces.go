package service

import (
	"context"

	"github.com/alexanderramin/pilot/internal/contract"
	"github.com/alexanderramin/pilot/internal/domain"
)

type ScheduleService interface {
	Build(ctx context.Context, req contract.ScheduleRequest) (*contract.ScheduleResponse, error)
}

type ExportService interface {
	Export(ctx context.Context, req contract.ExportRequest) (*contract.ExportResponse, error)
}

type HistoryService interface {
	List(ctx context.Context, limit int) ([]contract.RunSummary, error)
	Get(ctx context.Context, id string) (*domain.ScheduleRun, error)
	Current(ctx context.Context, date string) (*domain.ScheduleRun, error)
	Exports(ctx context.Context, runID string) ([]*domain.ExportRecord, error)
}
