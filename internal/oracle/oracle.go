// Package oracle turns a day description into the structured task list the
// scheduling engine consumes. Implementations differ only in where the
// plan comes from: a local LLM, a plan file, or inline text.
package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/pilot/internal/domain"
)

// ErrNoTasks is returned when a plan source yields no tasks at all.
var ErrNoTasks = errors.New("planner returned no tasks")

// Oracle produces a PlanOutput for a day.
type Oracle interface {
	Plan(ctx context.Context, in domain.PlanInput) (*domain.PlanOutput, error)
}

// ValidateInput rejects an empty or reversed work window and malformed
// meetings before any planner is asked.
func ValidateInput(in domain.PlanInput) error {
	if !in.WorkWindow.Valid() {
		return fmt.Errorf("work window %s is invalid", in.WorkWindow)
	}
	for i, m := range in.Meetings {
		if !m.Valid() {
			return fmt.Errorf("meeting %d (%s) is invalid", i+1, m)
		}
	}
	return nil
}

// Static returns a fixed plan. Useful when tasks were built elsewhere.
type Static struct {
	Output domain.PlanOutput
}

func (s Static) Plan(_ context.Context, in domain.PlanInput) (*domain.PlanOutput, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	out := s.Output
	out.Tasks = make([]domain.Task, len(s.Output.Tasks))
	for i, t := range s.Output.Tasks {
		out.Tasks[i] = t.Clone()
	}
	out.Meetings = append([]domain.Interval(nil), s.Output.Meetings...)
	out.Risks = append([]string(nil), s.Output.Risks...)
	if len(out.Tasks) == 0 {
		return nil, ErrNoTasks
	}
	return &out, nil
}

// Fallback asks Primary first and Secondary when Primary fails. OnFallback,
// when set, sees the primary error. ErrNoTasks from Primary is returned
// as is.
type Fallback struct {
	Primary    Oracle
	Secondary  Oracle
	OnFallback func(err error)
}

func (f Fallback) Plan(ctx context.Context, in domain.PlanInput) (*domain.PlanOutput, error) {
	out, err := f.Primary.Plan(ctx, in)
	if err == nil || errors.Is(err, ErrNoTasks) || f.Secondary == nil {
		return out, err
	}
	if f.OnFallback != nil {
		f.OnFallback(err)
	}
	out, err2 := f.Secondary.Plan(ctx, in)
	if err2 != nil {
		return nil, fmt.Errorf("%w (after primary planner failed: %v)", err2, err)
	}
	out.Risks = append(out.Risks, fmt.Sprintf("primary planner unavailable: %v", err))
	return out, nil
}
