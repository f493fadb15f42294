package calendar

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pilot/internal/domain"
)

// Summary is the event title for an item.
func Summary(it domain.ScheduleItem) string {
	switch it.Kind {
	case domain.KindFocus:
		if it.BoundSubtask != "" {
			return fmt.Sprintf("Focus #%d: %s", it.CycleNumber, it.BoundSubtask)
		}
		return fmt.Sprintf("Focus #%d", it.CycleNumber)
	case domain.KindShortBreak:
		return "Short break"
	case domain.KindLongBreak:
		return "Long break"
	case domain.KindLunch:
		return "Lunch"
	case domain.KindTask:
		return "Task: " + it.Label
	default:
		return it.Label
	}
}

// Description is the event body for an item.
func Description(it domain.ScheduleItem) string {
	var lines []string
	switch it.Kind {
	case domain.KindFocus:
		lines = append(lines, fmt.Sprintf("Focus block, %d minutes.", it.Minutes()))
		if it.BoundTaskTitle != "" {
			lines = append(lines, "Task: "+it.BoundTaskTitle)
			if it.BoundSubtask != "" && it.BoundSubtask != it.BoundTaskTitle {
				lines = append(lines, "Now: "+it.BoundSubtask)
			}
		}
		lines = append(lines, "", "Silence notifications and stay on this one thing.")
	case domain.KindShortBreak:
		lines = append(lines, fmt.Sprintf("Short break, %d minutes.", it.Minutes()),
			"", "Stand up and drink some water. Stay away from screens.")
	case domain.KindLongBreak:
		lines = append(lines, fmt.Sprintf("Long break, %d minutes.", it.Minutes()),
			"", "Take a walk or have a snack.")
	case domain.KindLunch:
		lines = append(lines, "Lunch break.", "Work resumes at 14:10.")
	case domain.KindTask:
		lines = append(lines, "Task: "+it.Label, fmt.Sprintf("Scheduled for %d minutes.", it.Minutes()))
	}
	lines = append(lines, "", "Planned by pilot.")
	return strings.Join(lines, "\n")
}

// Alarm is a display reminder relative to the item start.
type Alarm struct {
	OffsetMin int
	Message   string
}

// Alarms returns the reminders for an item. Break reminders fire shortly
// before the break ends.
func Alarms(it domain.ScheduleItem) []Alarm {
	switch it.Kind {
	case domain.KindFocus:
		return []Alarm{
			{OffsetMin: -5, Message: "Focus block starts in 5 minutes"},
			{OffsetMin: -1, Message: "Focus block starts in 1 minute"},
		}
	case domain.KindShortBreak:
		return []Alarm{{OffsetMin: max(it.Minutes()-1, 0), Message: "Break ends in 1 minute"}}
	case domain.KindLongBreak:
		return []Alarm{{OffsetMin: max(it.Minutes()-5, 0), Message: "Long break ends in 5 minutes"}}
	case domain.KindTask:
		return []Alarm{{OffsetMin: -10, Message: "Starting in 10 minutes: " + it.Label}}
	case domain.KindLunch:
		return []Alarm{{OffsetMin: 0, Message: "Lunch time. Work resumes at 14:10"}}
	default:
		return nil
	}
}

// trigger renders an offset as an RFC 5545 duration relative to start.
func trigger(offsetMin int) string {
	if offsetMin < 0 {
		return fmt.Sprintf("-PT%dM", -offsetMin)
	}
	return fmt.Sprintf("PT%dM", offsetMin)
}
