package contract

import (
	"time"

	"github.com/alexanderramin/pilot/internal/app"
)

type ScheduleRequest = app.ScheduleRequest

func NewScheduleRequest(date time.Time) ScheduleRequest {
	return app.NewScheduleRequest(date)
}

type ScheduleResponse = app.ScheduleResponse

type TaskAllocation = app.TaskAllocation

type WarningCode = app.WarningCode

const (
	WarnCyclesShortfall  WarningCode = app.WarnCyclesShortfall
	WarnTaskUnbound      WarningCode = app.WarnTaskUnbound
	WarnTaskPartial      WarningCode = app.WarnTaskPartial
	WarnSubtasksDropped  WarningCode = app.WarnSubtasksDropped
	WarnBudgetExceeded   WarningCode = app.WarnBudgetExceeded
	WarnCapacityMismatch WarningCode = app.WarnCapacityMismatch
	WarnPlannerRisk      WarningCode = app.WarnPlannerRisk
	WarnExportFallback   WarningCode = app.WarnExportFallback
	WarnFixedTaskMoved   WarningCode = app.WarnFixedTaskMoved
)

type Warning = app.Warning

type ScheduleErrorCode = app.ScheduleErrorCode

const (
	ScheduleErrInvalidRequest ScheduleErrorCode = app.ScheduleErrInvalidRequest
	ScheduleErrPlanner        ScheduleErrorCode = app.ScheduleErrPlanner
	ScheduleErrEngine         ScheduleErrorCode = app.ScheduleErrEngine
	ScheduleErrPersist        ScheduleErrorCode = app.ScheduleErrPersist
)

type ScheduleError = app.ScheduleError
