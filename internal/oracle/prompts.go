package oracle

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pilot/internal/domain"
)

const planSystemPrompt = `You are the daily planner of pilot, a pomodoro time-block scheduler.
Turn the user's description of the day into a prioritised task list. A separate
scheduler places the tasks into focus cycles, so do not build a timetable.

Rules:
- Keep the plan realistic for the available minutes and the meetings given.
- Return 3 to 6 tasks in the order they should be worked on. Order matters:
  tasks are bound to focus cycles in exactly this order.
- type is "deep" for demanding work, "normal" for routine work, "light" for
  small admin. weight is 1-10; deep work usually 8-10, normal 5-7, light 3-5.
- est_min is your estimate in minutes. Split long tasks into subtasks; each
  subtask should fit one focus cycle.
- Only when the user names an appointment at a fixed time, set "fixed": true
  with scheduled_start and scheduled_end. Otherwise leave them out.
- 12:00-14:00 is lunch and work resumes at 14:10 when the lunch rule is on.
- risks lists short warnings about overload or missing information.

Reply with one JSON object and nothing else:
{
  "capacity_min": <available minutes>,
  "meetings": [{"start": "HH:MM", "end": "HH:MM"}],
  "top_tasks": [
    {
      "title": "<task>",
      "est_min": <minutes>,
      "energy": "high|medium|low",
      "type": "deep|normal|light",
      "weight": <1-10>,
      "subtasks": ["<subtask>"],
      "fixed": false,
      "scheduled_start": "HH:MM",
      "scheduled_end": "HH:MM"
    }
  ],
  "time_blocks": [{"start": "HH:MM", "end": "HH:MM", "label": "<label>"}],
  "risks": ["<risk>"]
}`

// buildPlanPrompt renders the user prompt for one day.
func buildPlanPrompt(in domain.PlanInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s (%s)\n", in.Date.Format(domain.DateLayout), in.Date.Weekday())
	fmt.Fprintf(&b, "Work window: %s\n", in.WorkWindow)
	if len(in.Meetings) > 0 {
		ms := make([]string, len(in.Meetings))
		for i, m := range in.Meetings {
			ms[i] = m.String()
		}
		fmt.Fprintf(&b, "Meetings: %s\n", strings.Join(ms, ", "))
	}
	fmt.Fprintf(&b, "Available minutes: %d\n", in.AvailableMinutes())

	mode := "work"
	if in.Mode == domain.ModeStudy {
		mode = "study"
	}
	fmt.Fprintf(&b, "Mode: %s", mode)
	if in.Cycles > 0 {
		fmt.Fprintf(&b, ", %d focus cycles", in.Cycles)
	}
	b.WriteString("\n")

	if in.LunchRule {
		b.WriteString("Lunch rule: on (12:00-14:00 reserved, resume at 14:10)\n")
	} else {
		b.WriteString("Lunch rule: off\n")
	}

	if d := strings.TrimSpace(in.Description); d != "" {
		fmt.Fprintf(&b, "\nToday's tasks:\n%s\n", d)
	} else {
		b.WriteString("\nNo task list given; propose a sensible plan for the mode.\n")
	}
	return b.String()
}
