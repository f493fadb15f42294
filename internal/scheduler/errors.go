package scheduler

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/pilot/internal/domain"
)

type ErrorCode string

const (
	ErrInvalidWindow       ErrorCode = "INVALID_WINDOW"
	ErrInvalidMeeting      ErrorCode = "INVALID_MEETING"
	ErrInvalidCycleSpec    ErrorCode = "INVALID_CYCLE_SPEC"
	ErrNoRemainingCapacity ErrorCode = "NO_REMAINING_CAPACITY"
	ErrFragmentedSlot      ErrorCode = "FRAGMENTED_SLOT"
	ErrScheduleConflict    ErrorCode = "SCHEDULE_CONFLICT"
)

// Error is the typed failure returned by every engine entry point.
// Index is set for INVALID_MEETING; ItemA/ItemB for SCHEDULE_CONFLICT.
type Error struct {
	Code    ErrorCode
	Message string
	Index   int
	ItemA   *domain.ScheduleItem
	ItemB   *domain.ScheduleItem
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// IsCode reports whether err is an engine *Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func invalidWindow(format string, args ...any) *Error {
	return &Error{Code: ErrInvalidWindow, Message: fmt.Sprintf(format, args...)}
}

func invalidMeeting(index int, iv domain.Interval) *Error {
	return &Error{
		Code:    ErrInvalidMeeting,
		Message: fmt.Sprintf("meeting %d (%s) must start before it ends", index, iv),
		Index:   index,
	}
}

func scheduleConflict(a, b domain.ScheduleItem) *Error {
	return &Error{
		Code: ErrScheduleConflict,
		Message: fmt.Sprintf("%s %s %q overlaps %s %s %q",
			a.Kind, a.Interval(), a.Label, b.Kind, b.Interval(), b.Label),
		ItemA: &a,
		ItemB: &b,
	}
}
