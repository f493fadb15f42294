package service

import (
	"context"
	"time"

	"github.com/alexanderramin/pilot/internal/contract"
	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/alexanderramin/pilot/internal/repository"
)

type historyService struct {
	runs     repository.RunRepo
	exports  repository.ExportRepo
	observer UseCaseObserver
}

func NewHistoryService(runs repository.RunRepo, exports repository.ExportRepo, observers ...UseCaseObserver) HistoryService {
	return &historyService{runs: runs, exports: exports, observer: useCaseObserverOrNoop(observers)}
}

func (s *historyService) List(ctx context.Context, limit int) (out []contract.RunSummary, err error) {
	fields := map[string]any{"limit": limit}
	defer observe(ctx, s.observer, "history.list", fields, time.Now(), &err)

	rows, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out = make([]contract.RunSummary, len(rows))
	for i, r := range rows {
		out[i] = contract.RunSummary{
			ID:              r.ID,
			Date:            r.Date,
			Mode:            r.Mode,
			CyclesRequested: r.CyclesRequested,
			CyclesCompleted: r.CyclesCompleted,
			FreeMinutes:     r.FreeMinutes,
			RiskLevel:       r.RiskLevel,
			Exports:         r.Exports,
			CreatedAt:       r.CreatedAt,
		}
	}
	fields["runs"] = len(out)
	return out, nil
}

func (s *historyService) Get(ctx context.Context, id string) (*domain.ScheduleRun, error) {
	return s.runs.GetByPrefix(ctx, id)
}

func (s *historyService) Current(ctx context.Context, date string) (*domain.ScheduleRun, error) {
	if date == "" {
		return s.runs.Latest(ctx)
	}
	return s.runs.LatestForDate(ctx, date)
}

func (s *historyService) Exports(ctx context.Context, runID string) ([]*domain.ExportRecord, error) {
	return s.exports.ListByRun(ctx, runID)
}
