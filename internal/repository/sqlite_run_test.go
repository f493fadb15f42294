package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/pilot/internal/db"
	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/alexanderramin/pilot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRepo_SaveAndGetByID(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRunRepo(database)
	ctx := context.Background()

	run := testutil.NewTestRun(
		testutil.WithRunTasks(
			testutil.NewTestTask("Write report", testutil.WithWeight(8), testutil.WithSubtasks("outline", "draft")),
			testutil.NewTestTask("Standup", testutil.WithFixedTime("10:00", "10:15"), testutil.WithCategory("")),
		),
		testutil.WithRunWarnings("could only fit 4 of 6 requested cycles"),
	)
	run.Meetings = []domain.Interval{{Start: domain.MustClock("13:30"), End: domain.MustClock("14:00")}}
	run.Description = "report day"
	require.NoError(t, repo.Save(ctx, run))

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "2026-03-02", got.DateString())
	assert.Equal(t, domain.ModeWork, got.Mode)
	assert.Equal(t, run.Window, got.Window)
	assert.Equal(t, run.Meetings, got.Meetings)
	assert.Equal(t, run.Spec, got.Spec)
	assert.True(t, got.LunchApplied)
	assert.Equal(t, "report day", got.Description)
	assert.Equal(t, run.Items, got.Items)
	assert.Equal(t, []string{"could only fit 4 of 6 requested cycles"}, got.Warnings)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))

	require.Len(t, got.Tasks, 2)
	assert.Equal(t, []string{"outline", "draft"}, got.Tasks[0].Subtasks)
	assert.Equal(t, 8, got.Tasks[0].Weight)
	assert.Nil(t, got.Tasks[0].FixedStart)
	require.True(t, got.Tasks[1].IsFixed())
	assert.Equal(t, "10:00", got.Tasks[1].FixedStart.String())
	assert.Equal(t, domain.CategoryNormal, got.Tasks[1].Category)
}

func TestRunRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestRunRepo_GetByPrefix(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestRun()
	a.ID = "abc123"
	b := testutil.NewTestRun()
	b.ID = "abd456"
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	got, err := repo.GetByPrefix(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.ID)

	_, err = repo.GetByPrefix(ctx, "ab")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = repo.GetByPrefix(ctx, "zzz")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestRunRepo_LatestAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRunRepo(database)
	exports := NewSQLiteExportRepo(database)
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	older := testutil.NewTestRun(testutil.WithRunCreatedAt(base))
	newer := testutil.NewTestRun(
		testutil.WithRunCreatedAt(base.Add(time.Hour)),
		testutil.WithRunDate(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)),
	)
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))
	require.NoError(t, exports.Create(ctx, &domain.ExportRecord{
		ID: "e1", RunID: older.ID, Kind: domain.ExportICS, Path: "/tmp/x.ics", CreatedAt: base,
	}))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)

	forDay, err := repo.LatestForDate(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, older.ID, forDay.ID)

	_, err = repo.LatestForDate(ctx, "2026-01-01")
	assert.ErrorIs(t, err, ErrRunNotFound)

	list, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
	assert.Equal(t, 1, list[1].Exports)
	assert.Equal(t, "2026-03-02", list[1].Date)

	limited, err := repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRunRepo_Latest_Empty(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))

	_, err := repo.Latest(context.Background())
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestRunRepo_SaveInsideUnitOfWorkRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	boom := errors.New("disk full")
	// 1 run row + 1 task row, then the first item insert fails.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: boom}
	run := testutil.NewTestRun()

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteRunRepo(tx).Save(ctx, run)
	})
	require.ErrorIs(t, err, boom)

	_, err = NewSQLiteRunRepo(database).GetByID(context.Background(), run.ID)
	assert.ErrorIs(t, err, ErrRunNotFound)
}
