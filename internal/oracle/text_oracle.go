package oracle

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pilot/internal/domain"
)

// Text plans from an inline task list, one task per line or per ";":
//
//	Write report #deep w=9 ~120: outline, draft, polish
//	10:00-10:30 Standup
//	Inbox #light
//
// "#deep", "#normal" and "#light" set the category, "w=N" the weight and
// "~N" the estimate in minutes. Subtasks follow the first ":" separated by
// commas. A leading HH:MM-HH:MM range makes the task fixed.
type Text struct{}

func (Text) Plan(_ context.Context, in domain.PlanInput) (*domain.PlanOutput, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	tasks, err := ParseTaskList(in.Description)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	return &domain.PlanOutput{
		CapacityMinutes: in.AvailableMinutes(),
		Tasks:           tasks,
	}, nil
}

// ParseTaskList parses the inline task syntax described on Text.
func ParseTaskList(s string) ([]domain.Task, error) {
	var tasks []domain.Task
	for _, line := range strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == ';' }) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		t, err := parseTaskLine(line)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", line, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func parseTaskLine(line string) (domain.Task, error) {
	t := domain.Task{Category: domain.CategoryNormal}

	head, subs, hasSubs := strings.Cut(line, ": ")
	if !hasSubs {
		head, subs, hasSubs = strings.Cut(line, "：")
	}
	if hasSubs {
		for _, s := range strings.Split(subs, ",") {
			if s = strings.TrimSpace(s); s != "" {
				t.Subtasks = append(t.Subtasks, s)
			}
		}
	}

	fields := strings.Fields(head)
	if len(fields) > 0 {
		if iv, err := domain.ParseInterval(fields[0]); err == nil {
			if !iv.Valid() {
				return t, fmt.Errorf("fixed time %s must start before it ends", iv)
			}
			t.FixedStart, t.FixedEnd = &iv.Start, &iv.End
			t.EstimatedMinutes = iv.Minutes()
			fields = fields[1:]
		}
	}

	var title []string
	for _, f := range fields {
		switch {
		case strings.HasPrefix(f, "#") && domain.ValidCategories[strings.ToLower(f[1:])]:
			t.Category = domain.Category(strings.ToLower(f[1:]))
		case strings.HasPrefix(f, "w="):
			w, err := strconv.Atoi(f[2:])
			if err != nil || w < 0 || w > domain.MaxWeight {
				return t, fmt.Errorf("weight %q must be 0..%d", f[2:], domain.MaxWeight)
			}
			t.Weight = w
		case strings.HasPrefix(f, "~") && len(f) > 1:
			m, err := strconv.Atoi(strings.TrimSuffix(f[1:], "m"))
			if err != nil || m < 0 {
				return t, fmt.Errorf("estimate %q is not a number of minutes", f[1:])
			}
			t.EstimatedMinutes = m
		default:
			title = append(title, f)
		}
	}
	t.Title = strings.Join(title, " ")
	if t.Title == "" {
		return t, fmt.Errorf("title is required")
	}
	return t, nil
}
