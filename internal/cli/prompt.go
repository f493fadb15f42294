package cli

import (
	"errors"

	"github.com/alexanderramin/pilot/internal/cli/formatter"
	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pilotHuhTheme returns a huh theme matching the formatter palette.
func pilotHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func (a *App) promptExport() (domain.ExportKind, error) {
	if a.PromptExport != nil {
		return a.PromptExport()
	}
	return promptExportForm()
}

// promptExportForm asks whether to export and with which exporter.
// Aborting the form means no export.
func promptExportForm() (domain.ExportKind, error) {
	var want bool
	kind := domain.ExportICS

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Export this schedule to a calendar?").
				Value(&want),
		),
		huh.NewGroup(
			huh.NewSelect[domain.ExportKind]().
				Title("Exporter").
				Options(
					huh.NewOption("ICS file", domain.ExportICS),
					huh.NewOption("Google Calendar", domain.ExportGoogle),
				).
				Value(&kind),
		).WithHideFunc(func() bool { return !want }),
	).WithTheme(pilotHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return domain.ExportNone, nil
		}
		return domain.ExportNone, err
	}
	if !want {
		return domain.ExportNone, nil
	}
	return kind, nil
}
