package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/pilot/internal/calendar"
	"github.com/alexanderramin/pilot/internal/contract"
	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/alexanderramin/pilot/internal/repository"
)

type exportService struct {
	runs      repository.RunRepo
	exports   repository.ExportRepo
	renderers map[domain.ExportKind]calendar.Renderer
	observer  UseCaseObserver
	now       func() time.Time
	newID     func() string
}

// NewExportService exports stored runs with the given renderers. When the
// Google renderer is missing or fails and an ICS renderer is present, the
// run is written to an ICS file instead and a warning says so.
func NewExportService(
	runs repository.RunRepo,
	exports repository.ExportRepo,
	renderers []calendar.Renderer,
	observers ...UseCaseObserver,
) ExportService {
	byKind := make(map[domain.ExportKind]calendar.Renderer, len(renderers))
	for _, r := range renderers {
		if r != nil {
			byKind[r.Kind()] = r
		}
	}
	return &exportService{
		runs:      runs,
		exports:   exports,
		renderers: byKind,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *exportService) Export(ctx context.Context, req contract.ExportRequest) (resp *contract.ExportResponse, err error) {
	fields := map[string]any{"kind": string(req.Kind)}
	defer observe(ctx, s.observer, "schedule.export", fields, time.Now(), &err)

	if req.Kind == domain.ExportNone || !domain.ValidExportKinds[string(req.Kind)] {
		return nil, fmt.Errorf("cannot export with exporter %q", req.Kind)
	}
	run, err := s.runs.GetByPrefix(ctx, req.RunID)
	if err != nil {
		return nil, err
	}
	fields["run_id"] = run.ID

	resp = &contract.ExportResponse{}
	art, err := s.render(ctx, req.Kind, run)
	if err != nil && req.Kind == domain.ExportGoogle && s.renderers[domain.ExportICS] != nil {
		msg := fmt.Sprintf("google calendar export failed (%v); wrote an ics file instead", err)
		if art != nil && len(art.EventIDs) > 0 {
			msg += fmt.Sprintf(" after %d events had already been created", len(art.EventIDs))
		}
		resp.Warnings = append(resp.Warnings, contract.Warning{Code: contract.WarnExportFallback, Message: msg})
		fields["fallback"] = true
		art, err = s.render(ctx, domain.ExportICS, run)
	}
	if err != nil {
		return nil, err
	}

	rec := &domain.ExportRecord{
		ID:        s.newID(),
		RunID:     run.ID,
		Kind:      art.Kind,
		Path:      art.Path,
		EventIDs:  art.EventIDs,
		CreatedAt: s.now().UTC().Truncate(time.Second),
	}
	if err := s.exports.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("recording export: %w", err)
	}
	resp.Record = rec
	return resp, nil
}

func (s *exportService) render(ctx context.Context, kind domain.ExportKind, run *domain.ScheduleRun) (*calendar.Artifact, error) {
	r, ok := s.renderers[kind]
	if !ok {
		return nil, fmt.Errorf("%s exporter is not configured", kind)
	}
	art, err := r.Render(ctx, run)
	if err != nil {
		return art, fmt.Errorf("%s export: %w", kind, err)
	}
	return art, nil
}
