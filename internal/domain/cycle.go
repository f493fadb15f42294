package domain

import "fmt"

// CycleSpec is the immutable pomodoro cadence for one scheduling run.
type CycleSpec struct {
	FocusMinutes          int
	BreakMinutes          int
	LongBreakMinutes      int
	LongBreakEveryNCycles int // 0 disables long breaks
	CycleCount            int
}

// Preset defaults.
const (
	WorkFocusMin  = 50
	WorkBreakMin  = 10
	WorkCycles    = 6
	StudyFocusMin = 45
	StudyBreakMin = 15
	StudyCycles   = 4

	LongBreakMin   = 15
	LongBreakEvery = 4
)

// WorkPreset returns the 50/10 x 6 cadence.
func WorkPreset() CycleSpec {
	return CycleSpec{
		FocusMinutes:          WorkFocusMin,
		BreakMinutes:          WorkBreakMin,
		LongBreakMinutes:      LongBreakMin,
		LongBreakEveryNCycles: LongBreakEvery,
		CycleCount:            WorkCycles,
	}
}

// StudyPreset returns the 45/15 x n cadence. n <= 0 uses the default count.
func StudyPreset(n int) CycleSpec {
	if n <= 0 {
		n = StudyCycles
	}
	return CycleSpec{
		FocusMinutes:          StudyFocusMin,
		BreakMinutes:          StudyBreakMin,
		LongBreakMinutes:      LongBreakMin,
		LongBreakEveryNCycles: LongBreakEvery,
		CycleCount:            n,
	}
}

// PresetFor returns the preset of the given mode. cycles overrides the cycle
// count when positive.
func PresetFor(mode Mode, cycles int) CycleSpec {
	if mode == ModeStudy {
		return StudyPreset(cycles)
	}
	spec := WorkPreset()
	if cycles > 0 {
		spec.CycleCount = cycles
	}
	return spec
}

// Validate rejects malformed cadences.
func (s CycleSpec) Validate() error {
	if s.FocusMinutes <= 0 {
		return fmt.Errorf("focus minutes must be positive, got %d", s.FocusMinutes)
	}
	if s.BreakMinutes < 0 || s.LongBreakMinutes < 0 {
		return fmt.Errorf("break minutes must not be negative")
	}
	if s.LongBreakEveryNCycles < 0 {
		return fmt.Errorf("long break interval must not be negative, got %d", s.LongBreakEveryNCycles)
	}
	if s.CycleCount < 0 {
		return fmt.Errorf("cycle count must not be negative, got %d", s.CycleCount)
	}
	return nil
}

func (s CycleSpec) String() string {
	return fmt.Sprintf("%d/%d x %d", s.FocusMinutes, s.BreakMinutes, s.CycleCount)
}
