package oracle

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/pilot/internal/domain"
)

// planDoc is the wire shape shared by the LLM reply and plan files.
type planDoc struct {
	CapacityMin int        `json:"capacity_min" yaml:"capacity_min"`
	Meetings    []slotDoc  `json:"meetings" yaml:"meetings"`
	TopTasks    []taskDoc  `json:"top_tasks" yaml:"top_tasks"`
	TimeBlocks  []blockDoc `json:"time_blocks" yaml:"time_blocks"`
	Risks       []string   `json:"risks" yaml:"risks"`
}

type slotDoc struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

type blockDoc struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Label string `json:"label" yaml:"label"`
}

type taskDoc struct {
	Title          string   `json:"title" yaml:"title"`
	EstMin         int      `json:"est_min" yaml:"est_min"`
	Energy         string   `json:"energy" yaml:"energy"`
	Type           string   `json:"type" yaml:"type"`
	Weight         float64  `json:"weight" yaml:"weight"`
	Subtasks       []string `json:"subtasks" yaml:"subtasks"`
	Fixed          bool     `json:"fixed" yaml:"fixed"`
	ScheduledStart string   `json:"scheduled_start" yaml:"scheduled_start"`
	ScheduledEnd   string   `json:"scheduled_end" yaml:"scheduled_end"`
}

// validatePlan checks a decoded plan and reports every problem at once.
func validatePlan(p planDoc) error {
	var errs []error
	for i, t := range p.TopTasks {
		where := fmt.Sprintf("top_tasks[%d]", i)
		if strings.TrimSpace(t.Title) == "" {
			errs = append(errs, fmt.Errorf("%s: title is required", where))
		}
		if t.EstMin < 0 {
			errs = append(errs, fmt.Errorf("%s: est_min must not be negative", where))
		}
		if t.Weight < 0 || t.Weight > domain.MaxWeight {
			errs = append(errs, fmt.Errorf("%s: weight %.1f outside 0..%d", where, t.Weight, domain.MaxWeight))
		}
		if t.Type != "" && !domain.ValidCategories[strings.ToLower(t.Type)] {
			errs = append(errs, fmt.Errorf("%s: type %q is not deep, normal or light", where, t.Type))
		}
		if t.Fixed {
			if _, err := parseSlot(t.ScheduledStart, t.ScheduledEnd); err != nil {
				errs = append(errs, fmt.Errorf("%s: fixed task: %w", where, err))
			}
		}
	}
	for i, m := range p.Meetings {
		if _, err := parseSlot(m.Start, m.End); err != nil {
			errs = append(errs, fmt.Errorf("meetings[%d]: %w", i, err))
		}
	}
	for i, b := range p.TimeBlocks {
		if _, err := parseSlot(b.Start, b.End); err != nil {
			errs = append(errs, fmt.Errorf("time_blocks[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func parseSlot(start, end string) (domain.Interval, error) {
	s, err := domain.ParseClock(start)
	if err != nil {
		return domain.Interval{}, err
	}
	e, err := domain.ParseClock(end)
	if err != nil {
		return domain.Interval{}, err
	}
	iv := domain.Interval{Start: s, End: e}
	if !iv.Valid() {
		return domain.Interval{}, fmt.Errorf("%s must start before it ends", iv)
	}
	return iv, nil
}

// toOutput converts a validated document. Suggested times on tasks that
// are not marked fixed are advisory and dropped.
func toOutput(p planDoc) (*domain.PlanOutput, error) {
	out := &domain.PlanOutput{
		CapacityMinutes: p.CapacityMin,
		Risks:           append([]string(nil), p.Risks...),
	}
	for _, m := range p.Meetings {
		iv, err := parseSlot(m.Start, m.End)
		if err != nil {
			return nil, err
		}
		out.Meetings = append(out.Meetings, iv)
	}
	for _, b := range p.TimeBlocks {
		iv, err := parseSlot(b.Start, b.End)
		if err != nil {
			return nil, err
		}
		out.TimeBlocks = append(out.TimeBlocks, domain.TimeBlock{Interval: iv, Label: b.Label})
	}
	for _, td := range p.TopTasks {
		t := domain.Task{
			Title:            strings.TrimSpace(td.Title),
			EstimatedMinutes: td.EstMin,
			Weight:           int(math.Round(td.Weight)),
			Category:         normalizeCategory(td.Type),
			Energy:           normalizeEnergy(td.Energy),
		}
		for _, s := range td.Subtasks {
			if s = strings.TrimSpace(s); s != "" {
				t.Subtasks = append(t.Subtasks, s)
			}
		}
		if td.Fixed {
			iv, err := parseSlot(td.ScheduledStart, td.ScheduledEnd)
			if err != nil {
				return nil, err
			}
			t.FixedStart, t.FixedEnd = &iv.Start, &iv.End
		}
		out.Tasks = append(out.Tasks, t)
	}
	if len(out.Tasks) == 0 {
		return nil, ErrNoTasks
	}
	return out, nil
}

func normalizeCategory(s string) domain.Category {
	switch c := domain.Category(strings.ToLower(strings.TrimSpace(s))); c {
	case domain.CategoryDeep, domain.CategoryLight:
		return c
	default:
		return domain.CategoryNormal
	}
}

// normalizeEnergy accepts English names in any case and the single-character
// high/medium/low labels some models answer with.
func normalizeEnergy(s string) domain.Energy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "高":
		return domain.EnergyHigh
	case "low", "低":
		return domain.EnergyLow
	case "":
		return ""
	default:
		return domain.EnergyMedium
	}
}
