package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/experiment"
	"github.com/san-kum/numlab/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type state int

const (
	stateMenu state = iota
	stateRunning
	stateResult
)

type model struct {
	state    state
	cursor   int
	presets  []string
	registry *experiment.Registry

	selected string
	result   *experiment.Result
	sweep    *experiment.Result
	err      error

	width  int
	height int
}

// resultMsg carries a finished run, plus a convergence sweep when the
// preset's family supports one.
type resultMsg struct {
	preset string
	result *experiment.Result
	sweep  *experiment.Result
	err    error
}

func newModel(registry *experiment.Registry) model {
	return model{
		state:    stateMenu,
		presets:  config.ListPresets(""),
		registry: registry,
		width:    80,
		height:   24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case resultMsg:
		if msg.preset != m.selected {
			return m, nil
		}
		m.state = stateResult
		m.result, m.sweep, m.err = msg.result, msg.sweep, msg.err
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateResult:
		return m.resultKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.presets) == 0 {
			return m, nil
		}
		m.selected = m.presets[m.cursor]
		m.state = stateRunning
		return m, runPreset(m.registry, m.selected)
	}
	return m, nil
}

func (m model) resultKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "b":
		m.state = stateMenu
		m.result, m.sweep, m.err = nil, nil, nil
	case "r":
		m.state = stateRunning
		return m, runPreset(m.registry, m.selected)
	}
	return m, nil
}

func runPreset(registry *experiment.Registry, name string) tea.Cmd {
	return func() tea.Msg {
		cfg := config.GetPreset(name)
		if cfg == nil {
			return resultMsg{preset: name, err: fmt.Errorf("unknown preset: %s", name)}
		}
		ctx := context.Background()
		msg := resultMsg{preset: name}
		msg.result, msg.err = experiment.New(cfg, registry).Run(ctx)
		if msg.err == nil && cfg.Family != config.FamilyRoot && len(cfg.Sweep.Ns) > 1 {
			msg.sweep, msg.err = experiment.New(cfg, registry).Sweep(ctx)
		}
		return msg
	}
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateRunning:
		return "\n      " + dim.Render("running "+m.selected+"...") + "\n"
	case stateResult:
		return m.viewResult()
	}
	return ""
}

func describe(name string) string {
	cfg := config.GetPreset(name)
	if cfg == nil {
		return ""
	}
	return fmt.Sprintf("%s %s on %s", cfg.Family, cfg.Method, cfg.Problem)
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("n u m l a b") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		desc := describe(name)
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-18s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-18s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter run   q quit") + "\n")

	return b.String()
}

func (m model) viewResult() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.selected) + "  " + dim.Render(describe(m.selected)) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 40)) + "\n\n")

	if m.err != nil {
		b.WriteString("      " + viz.Error.Render("error: "+m.err.Error()) + "\n\n")
		b.WriteString(dim.Render("      esc back   r retry   q quit") + "\n")
		return b.String()
	}

	res := m.result
	lines := []string{
		viz.Fieldf("value", "%.10g", res.Value),
	}
	if res.HasExact {
		lines = append(lines,
			viz.Fieldf("exact", "%.10g", res.Exact),
			viz.Fieldf("abs err", "%.3e", res.AbsErr),
		)
	}
	lines = append(lines,
		viz.Field("evals", res.Evals),
		viz.Field("iterations", res.Iterations),
		viz.Field("elapsed", res.Elapsed),
	)
	if m.sweep != nil {
		lines = append(lines, viz.Fieldf("order", "%.3f", m.sweep.Order))
	}
	for _, l := range lines {
		b.WriteString("      " + l + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.sweep != nil:
		errs := make([]float64, len(m.sweep.Samples))
		for i, s := range m.sweep.Samples {
			errs[i] = s.AbsErr
		}
		b.WriteString("      " + magenta.Render("error trend ") + viz.Sparkline(errs, 20) + "\n\n")
		b.WriteString(viz.PlotLogError(m.sweep.Samples, "log10 |error| vs sweep step") + "\n\n")
	case len(res.Trajectory) > 0:
		ys := make([]float64, len(res.Trajectory))
		for i, p := range res.Trajectory {
			ys[i] = p.Y
		}
		b.WriteString(viz.Plot(ys, "y(x)") + "\n\n")
	}

	b.WriteString(dim.Render("      esc back   r rerun   q quit") + "\n")
	return b.String()
}

// Run starts the explorer on the alternate screen and blocks until it quits.
func Run(registry *experiment.Registry) error {
	p := tea.NewProgram(newModel(registry), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
