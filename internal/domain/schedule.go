package domain

// ScheduleItem is one block of the produced day plan.
type ScheduleItem struct {
	Start          Clock
	End            Clock
	Kind           ItemKind
	Label          string
	BoundTaskTitle string
	BoundSubtask   string
	CycleNumber    int // focus and break items only, 1-based
}

// Interval returns the item's time range.
func (it ScheduleItem) Interval() Interval {
	return Interval{Start: it.Start, End: it.End}
}

// Minutes returns the item duration.
func (it ScheduleItem) Minutes() int {
	return int(it.End - it.Start)
}

// IsBreak reports whether the item is a short or long break.
func (it ScheduleItem) IsBreak() bool {
	return it.Kind == KindShortBreak || it.Kind == KindLongBreak
}

// Binding associates a focus cycle with the task and subtask it advances.
type Binding struct {
	CycleNumber      int
	TaskTitle        string
	SubtaskLabel     string
	FocusDescription string
	Placeholder      bool // bound to the synthetic review/buffer task
}
