package watch

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/fasttrack/pkg/store"
	"tableflip.dev/fasttrack/pkg/tracker"
)

// Watch runs the live terminal view. The countdown refreshes once a
// second and the view reloads when another process writes the store.
type Watch struct {
	Persistence store.Persistence
}

func (n *Watch) Do(ctx context.Context) error {
	t, err := tracker.New(ctx, n.Persistence)
	if err != nil {
		return err
	}

	changes, err := n.Persistence.Watch(ctx)
	if err != nil {
		return err
	}

	m := model{
		ctx:     ctx,
		p:       n.Persistence,
		engine:  t,
		changes: changes,
	}

	prog := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = prog.Run()
	return err
}

type tickMsg time.Time
type changedMsg struct{}

type model struct {
	ctx     context.Context
	p       store.Persistence
	engine  *tracker.Engine
	changes <-chan store.Event
	err     error
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.changes; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tick(), m.waitForChange())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "f":
			if m.engine.IsFasting() {
				m.err = m.engine.StopFasting()
			} else {
				m.err = m.engine.StartFasting()
			}
		case "1", "2", "3":
			i := int(msg.String()[0] - '1')
			m.err = m.engine.AddWater(tracker.QuickAddSizes[i])
		case "r":
			m.err = m.engine.ResetDailyWater()
		}
		return m, nil

	case tickMsg:
		return m, tick()

	case changedMsg:
		// Another process wrote the store. Rebuild from disk.
		if t, err := tracker.New(m.ctx, m.p); err == nil {
			m.engine = t
		}
		return m, m.waitForChange()
	}
	return m, nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	fastStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	waterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	filledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

const barWidth = 30

func (m model) View() string {
	s := titleStyle.Render("fasttrack") + "\n\n"

	if m.engine.IsFasting() {
		fh, eh := m.engine.FastingWindow()
		s += fastStyle.Render(fmt.Sprintf("Fasting (%d:%d)", fh, eh)) + "\n"
		s += "  elapsed   " + m.engine.FormattedElapsed() + "\n"
		s += "  remaining " + m.engine.FormattedRemaining() + "\n"
		s += "  " + bar(m.engine.Progress(), fastStyle) + "\n"
	} else {
		s += faintStyle.Render("Not fasting") + "\n"
	}

	s += "\n"
	s += waterStyle.Render("Water") + "\n"
	s += fmt.Sprintf("  %.2f / %.2f L\n", m.engine.CurrentDayWaterTotal(), m.engine.DailyTarget())
	s += "  " + bar(m.engine.WaterProgress(), filledStyle) + "\n"

	if m.err != nil {
		s += "\n" + faintStyle.Render(m.err.Error()) + "\n"
	}

	s += "\n" + faintStyle.Render("f start/stop fast  1/2/3 add water  r reset  q quit") + "\n"
	return s
}

func bar(progress float64, style lipgloss.Style) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * barWidth)
	out := ""
	for i := 0; i < barWidth; i++ {
		if i < filled {
			out += style.Render("█")
		} else {
			out += faintStyle.Render("░")
		}
	}
	return out
}
