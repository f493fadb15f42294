package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/pilot/internal/calendar"
	"github.com/alexanderramin/pilot/internal/contract"
	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/alexanderramin/pilot/internal/repository"
	"github.com/alexanderramin/pilot/internal/testutil"
)

type fakeRenderer struct {
	kind  domain.ExportKind
	art   *calendar.Artifact
	err   error
	calls int
}

func (f *fakeRenderer) Kind() domain.ExportKind { return f.kind }

func (f *fakeRenderer) Render(context.Context, *domain.ScheduleRun) (*calendar.Artifact, error) {
	f.calls++
	return f.art, f.err
}

func icsOK() *fakeRenderer {
	return &fakeRenderer{kind: domain.ExportICS, art: &calendar.Artifact{Kind: domain.ExportICS, Path: "exports/pilot_schedule_20260302.ics"}}
}

func savedRun(t *testing.T, st store) *domain.ScheduleRun {
	t.Helper()
	run := testutil.NewTestRun()
	require.NoError(t, st.runs.Save(context.Background(), run))
	return run
}

func newExportSvc(st store, renderers ...calendar.Renderer) *exportService {
	svc := NewExportService(st.runs, st.exports, renderers).(*exportService)
	svc.now = fixedNow
	return svc
}

func TestExport_ICS(t *testing.T) {
	st := setupStore(t)
	run := savedRun(t, st)
	ics := icsOK()

	resp, err := newExportSvc(st, ics).Export(context.Background(), contract.ExportRequest{RunID: run.ID[:8], Kind: domain.ExportICS})
	require.NoError(t, err)
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, domain.ExportICS, resp.Record.Kind)
	assert.Equal(t, run.ID, resp.Record.RunID)
	assert.Equal(t, fixedNow(), resp.Record.CreatedAt)

	recs, err := st.exports.ListByRun(context.Background(), run.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "exports/pilot_schedule_20260302.ics", recs[0].Path)
}

func TestExport_Google(t *testing.T) {
	st := setupStore(t)
	run := savedRun(t, st)
	google := &fakeRenderer{kind: domain.ExportGoogle, art: &calendar.Artifact{Kind: domain.ExportGoogle, EventIDs: []string{"a", "b", "c"}}}
	ics := icsOK()

	resp, err := newExportSvc(st, google, ics).Export(context.Background(), contract.ExportRequest{RunID: run.ID, Kind: domain.ExportGoogle})
	require.NoError(t, err)
	assert.Equal(t, domain.ExportGoogle, resp.Record.Kind)
	assert.Equal(t, []string{"a", "b", "c"}, resp.Record.EventIDs)
	assert.Zero(t, ics.calls)
}

func TestExport_GoogleFailureFallsBackToICS(t *testing.T) {
	st := setupStore(t)
	run := savedRun(t, st)
	google := &fakeRenderer{
		kind: domain.ExportGoogle,
		art:  &calendar.Artifact{Kind: domain.ExportGoogle, EventIDs: []string{"a"}},
		err:  errors.New("quota exceeded"),
	}
	ics := icsOK()

	resp, err := newExportSvc(st, google, ics).Export(context.Background(), contract.ExportRequest{RunID: run.ID, Kind: domain.ExportGoogle})
	require.NoError(t, err)
	assert.Equal(t, domain.ExportICS, resp.Record.Kind)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, contract.WarnExportFallback, resp.Warnings[0].Code)
	assert.Contains(t, resp.Warnings[0].Message, "quota exceeded")
	assert.Contains(t, resp.Warnings[0].Message, "after 1 events")
	assert.Equal(t, 1, ics.calls)
}

func TestExport_MissingGoogleRendererFallsBackToICS(t *testing.T) {
	st := setupStore(t)
	run := savedRun(t, st)

	resp, err := newExportSvc(st, icsOK(), nil).Export(context.Background(), contract.ExportRequest{RunID: run.ID, Kind: domain.ExportGoogle})
	require.NoError(t, err)
	assert.Equal(t, domain.ExportICS, resp.Record.Kind)
	assert.Contains(t, resp.Warnings[0].Message, "google exporter is not configured")
}

func TestExport_ICSFailureIsAnError(t *testing.T) {
	st := setupStore(t)
	run := savedRun(t, st)
	ics := &fakeRenderer{kind: domain.ExportICS, err: errors.New("disk full")}

	_, err := newExportSvc(st, ics).Export(context.Background(), contract.ExportRequest{RunID: run.ID, Kind: domain.ExportICS})
	assert.ErrorContains(t, err, "disk full")

	recs, err := st.exports.ListByRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestExport_Rejections(t *testing.T) {
	st := setupStore(t)
	svc := newExportSvc(st, icsOK())

	_, err := svc.Export(context.Background(), contract.ExportRequest{RunID: "x", Kind: domain.ExportNone})
	assert.ErrorContains(t, err, `exporter "none"`)

	_, err = svc.Export(context.Background(), contract.ExportRequest{RunID: "x", Kind: "outlook"})
	assert.Error(t, err)

	_, err = svc.Export(context.Background(), contract.ExportRequest{RunID: "does-not-exist", Kind: domain.ExportICS})
	assert.ErrorIs(t, err, repository.ErrRunNotFound)
}
