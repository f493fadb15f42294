package domain

// Default weights by category, used when a task carries no explicit weight.
const (
	DefaultWeightDeep   = 8
	DefaultWeightNormal = 6
	DefaultWeightLight  = 4

	MinWeight = 1
	MaxWeight = 10
)

// Task is a unit of planned work as returned by the planning oracle.
// EstimatedMinutes is overwritten by the allocator; everything else is
// read-only once the task enters the engine.
type Task struct {
	Title            string
	EstimatedMinutes int
	Weight           int // 0 means unset
	Category         Category
	Energy           Energy
	Subtasks         []string

	// FixedStart/FixedEnd mark a task pre-scheduled at a fixed time.
	FixedStart *Clock
	FixedEnd   *Clock
}

// DefaultWeight returns the category default weight. Unknown categories
// are treated as normal.
func DefaultWeight(c Category) int {
	switch c {
	case CategoryDeep:
		return DefaultWeightDeep
	case CategoryLight:
		return DefaultWeightLight
	default:
		return DefaultWeightNormal
	}
}

// EffectiveWeight resolves the weight used for allocation: missing or
// non-positive weights fall back to the category default, values above the
// scale are capped.
func (t Task) EffectiveWeight() int {
	switch {
	case t.Weight <= 0:
		return DefaultWeight(t.Category)
	case t.Weight > MaxWeight:
		return MaxWeight
	default:
		return t.Weight
	}
}

// IsFixed reports whether the task has a complete fixed time slot.
func (t Task) IsFixed() bool {
	return t.FixedStart != nil && t.FixedEnd != nil
}

// FixedInterval returns the fixed slot. Only meaningful when IsFixed.
func (t Task) FixedInterval() Interval {
	if !t.IsFixed() {
		return Interval{}
	}
	return Interval{Start: *t.FixedStart, End: *t.FixedEnd}
}

// Clone returns a deep copy so callers can mutate durations safely.
func (t Task) Clone() Task {
	c := t
	if t.Subtasks != nil {
		c.Subtasks = append([]string(nil), t.Subtasks...)
	}
	if t.FixedStart != nil {
		s := *t.FixedStart
		c.FixedStart = &s
	}
	if t.FixedEnd != nil {
		e := *t.FixedEnd
		c.FixedEnd = &e
	}
	return c
}
