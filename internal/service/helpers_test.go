package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/pilot/internal/contract"
	"github.com/alexanderramin/pilot/internal/db"
	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/alexanderramin/pilot/internal/oracle"
	"github.com/alexanderramin/pilot/internal/repository"
	"github.com/alexanderramin/pilot/internal/testutil"
)

type store struct {
	uow     db.UnitOfWork
	runs    repository.RunRepo
	exports repository.ExportRepo
}

func setupStore(t *testing.T) store {
	t.Helper()
	database := testutil.NewTestDB(t)
	return store{
		uow:     testutil.NewTestUoW(database),
		runs:    repository.NewSQLiteRunRepo(database),
		exports: repository.NewSQLiteExportRepo(database),
	}
}

// countingOracle records the inputs it was asked to plan.
type countingOracle struct {
	oracle.Oracle
	inputs []domain.PlanInput
}

func (c *countingOracle) Plan(ctx context.Context, in domain.PlanInput) (*domain.PlanOutput, error) {
	c.inputs = append(c.inputs, in)
	return c.Oracle.Plan(ctx, in)
}

func staticPlanner(tasks ...domain.Task) *countingOracle {
	return &countingOracle{Oracle: oracle.Static{Output: domain.PlanOutput{Tasks: tasks}}}
}

func threeTasks() []domain.Task {
	return []domain.Task{
		testutil.NewTestTask("Report", testutil.WithCategory(domain.CategoryDeep), testutil.WithWeight(9),
			testutil.WithEstimate(150), testutil.WithSubtasks("outline", "draft", "polish")),
		testutil.NewTestTask("Email", testutil.WithCategory(domain.CategoryLight), testutil.WithWeight(4), testutil.WithEstimate(30)),
		testutil.NewTestTask("Review", testutil.WithWeight(6)),
	}
}

func workDay() contract.ScheduleRequest {
	return contract.NewScheduleRequest(testutil.TestDay)
}

func codes(ws []contract.Warning) []contract.WarningCode {
	out := make([]contract.WarningCode, len(ws))
	for i, w := range ws {
		out[i] = w.Code
	}
	return out
}

// recordingObserver keeps every event.
type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func fixedNow() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) }
