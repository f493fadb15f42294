package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pilot/internal/cli/formatter"
	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newFocusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "focus [run-id]",
		Short: "Follow a saved schedule with a live timer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := resolveRun(cmd, app, args)
			if err != nil {
				return err
			}
			if len(run.Items) == 0 {
				return fmt.Errorf("run %s has no items", run.ID)
			}
			m := newFocusModel(run, app.now().In(app.Config.Location()))
			_, err = tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}
}

type focusKeyMap struct {
	Next key.Binding
	Quit key.Binding
}

func defaultFocusKeys() focusKeyMap {
	return focusKeyMap{
		Next: key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next item")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type focusTickMsg time.Time

func focusTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return focusTickMsg(t) })
}

// focusModel follows a run by wall-clock time of day. Skipping pins the
// current item so later ticks never move back to a skipped one.
type focusModel struct {
	run   *domain.ScheduleRun
	now   time.Time
	floor int // lowest item index the timer may show
	idx   int // -1 once the day is over
	bar   progress.Model
	keys  focusKeyMap
}

func newFocusModel(run *domain.ScheduleRun, now time.Time) *focusModel {
	m := &focusModel{
		run:  run,
		bar:  progress.New(progress.WithSolidFill(string(formatter.ColorHeader)), progress.WithoutPercentage()),
		keys: defaultFocusKeys(),
	}
	m.bar.Width = 40
	m.advance(now)
	return m
}

func (m *focusModel) Init() tea.Cmd {
	return focusTick()
}

func (m *focusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			if m.idx >= 0 {
				m.floor = m.idx + 1
				m.advance(m.now)
			}
			if m.idx < 0 {
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(60, msg.Width-8))
	case focusTickMsg:
		m.advance(time.Time(msg))
		if m.idx < 0 {
			return m, tea.Quit
		}
		return m, focusTick()
	}
	return m, nil
}

func (m *focusModel) advance(now time.Time) {
	m.now = now
	if m.floor >= len(m.run.Items) {
		m.idx = -1
		return
	}
	idx := m.run.ItemAt(domain.ClockOf(now))
	if idx >= 0 && idx < m.floor {
		idx = m.floor
	}
	m.idx = idx
}

// current returns the item being shown and whether it has started.
func (m *focusModel) current() (domain.ScheduleItem, bool) {
	it := m.run.Items[m.idx]
	return it, domain.ClockOf(m.now) >= it.Start
}

func (m *focusModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Focus " + m.run.DateString()))
	b.WriteString("\n\n")

	if m.idx < 0 {
		b.WriteString(formatter.StyleGreen.Render("✔ Day complete"))
		b.WriteString("\n")
		return b.String()
	}

	it, started := m.current()
	b.WriteString(formatter.KindBadge(it.Kind) + "  " + formatter.Bold(it.Label) + "  " + formatter.Dim(it.Interval().String()))
	b.WriteString("\n\n")

	nowMin := int(domain.ClockOf(m.now))
	if started {
		left := int(it.End) - nowMin
		done := float64(nowMin-int(it.Start)) / float64(max(1, it.Minutes()))
		b.WriteString(m.bar.ViewAs(done))
		b.WriteString("  " + formatter.FormatMinutes(left) + " left")
	} else {
		b.WriteString(formatter.Dim("starts in " + formatter.FormatMinutes(int(it.Start)-nowMin)))
	}
	b.WriteString("\n")

	if m.idx+1 < len(m.run.Items) {
		next := m.run.Items[m.idx+1]
		b.WriteString("\n" + formatter.Dim("Next: "+next.Start.String()+" "+next.Label))
		b.WriteString("\n")
	}

	b.WriteString("\n" + formatter.Dim(helpLine(m.keys.Next, m.keys.Quit)))
	return b.String()
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
