package domain

type Category string

const (
	CategoryDeep   Category = "deep"
	CategoryNormal Category = "normal"
	CategoryLight  Category = "light"
)

// ValidCategories is the canonical set of accepted task category strings.
var ValidCategories = map[string]bool{
	"deep": true, "normal": true, "light": true,
}

type Mode string

const (
	ModeWork  Mode = "work"
	ModeStudy Mode = "study"
)

// ValidModes is the canonical set of accepted mode strings.
var ValidModes = map[string]bool{
	"work": true, "study": true,
}

type ItemKind string

const (
	KindFocus      ItemKind = "focus"
	KindShortBreak ItemKind = "short_break"
	KindLongBreak  ItemKind = "long_break"
	KindLunch      ItemKind = "lunch"
	KindTask       ItemKind = "task"
)

type Energy string

const (
	EnergyHigh   Energy = "high"
	EnergyMedium Energy = "medium"
	EnergyLow    Energy = "low"
)

type RiskLevel string

const (
	RiskOnTrack  RiskLevel = "on_track"
	RiskAtRisk   RiskLevel = "at_risk"
	RiskCritical RiskLevel = "critical"
)
