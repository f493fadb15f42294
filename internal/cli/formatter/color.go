package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RiskColor returns the style for a schedule risk level.
func RiskColor(risk domain.RiskLevel) lipgloss.Style {
	switch risk {
	case domain.RiskCritical:
		return StyleRed
	case domain.RiskAtRisk:
		return StyleYellow
	case domain.RiskOnTrack:
		return StyleGreen
	default:
		return StyleDim
	}
}

// RiskIndicator returns a colored risk marker such as "● AT RISK".
func RiskIndicator(risk domain.RiskLevel) string {
	switch risk {
	case domain.RiskCritical:
		return StyleRed.Render("● CRITICAL")
	case domain.RiskAtRisk:
		return StyleYellow.Render("● AT RISK")
	case domain.RiskOnTrack:
		return StyleGreen.Render("● ON TRACK")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// KindStyle colors schedule items by kind.
func KindStyle(kind domain.ItemKind) lipgloss.Style {
	switch kind {
	case domain.KindFocus:
		return StyleBold
	case domain.KindShortBreak:
		return StyleAqua
	case domain.KindLongBreak:
		return StyleBlue
	case domain.KindLunch:
		return StyleYellow
	case domain.KindTask:
		return StylePurple
	default:
		return StyleFg
	}
}

// KindBadge returns a short fixed-width label for an item kind.
func KindBadge(kind domain.ItemKind) string {
	var label string
	switch kind {
	case domain.KindFocus:
		label = "FOCUS"
	case domain.KindShortBreak:
		label = "BREAK"
	case domain.KindLongBreak:
		label = "LONG BREAK"
	case domain.KindLunch:
		label = "LUNCH"
	case domain.KindTask:
		label = "FIXED"
	default:
		label = strings.ToUpper(string(kind))
	}
	return KindStyle(kind).Render(label)
}

// ModeBadge returns the mode name with its cadence.
func ModeBadge(mode domain.Mode, spec domain.CycleSpec) string {
	style := StyleGreen
	if mode == domain.ModeStudy {
		style = StyleBlue
	}
	return style.Render("● "+strings.ToUpper(string(mode))) +
		Dim(fmt.Sprintf(" %d/%d x %d", spec.FocusMinutes, spec.BreakMinutes, spec.CycleCount))
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
