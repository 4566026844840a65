// Package ui provides the live terminal view using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-altaz/internal/astro"
	"github.com/litescript/ls-altaz/internal/format"
	"github.com/litescript/ls-altaz/internal/logging"
	"github.com/litescript/ls-altaz/internal/report"
	"github.com/litescript/ls-altaz/internal/version"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	siteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// TickMsg triggers a recomputation with a fresh sidereal time.
type TickMsg time.Time

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	conv    astro.Converter
	now     func() time.Time
	logger  *logging.Logger
	refresh time.Duration

	// Target
	custom     astro.Equatorial
	customName string
	stars      []astro.Star
	starIdx    int // -1 while the custom target is shown

	// UI state
	width     int
	height    int
	frozen    bool
	frozenLST float64

	// Latest evaluation
	result report.Result
	err    error
}

// New creates a model showing target, refreshed every refresh interval.
func New(conv astro.Converter, name string, target astro.Equatorial, refresh time.Duration) Model {
	if refresh <= 0 {
		refresh = time.Second
	}
	m := Model{
		conv:       conv,
		now:        time.Now,
		logger:     logging.Discard(),
		refresh:    refresh,
		custom:     target,
		customName: name,
		stars:      astro.Stars(),
		starIdx:    -1,
	}
	return m.recompute()
}

// WithClock returns a copy of m that reads time from now.
func (m Model) WithClock(now func() time.Time) Model {
	m.now = now
	return m.recompute()
}

// WithLogger returns a copy of m that logs to logger.
func (m Model) WithLogger(logger *logging.Logger) Model {
	m.logger = logger.Named("ui")
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "p":
			next := astro.RAPolicyUniform
			if m.conv.Policy() == astro.RAPolicyUniform {
				next = astro.RAPolicyLegacy
			}
			m.conv = m.conv.WithPolicy(next)
			m.logger.Debug("ra policy set to %s", next)

		case "n":
			m.starIdx = (m.starIdx + 1) % len(m.stars)

		case "N":
			if m.starIdx <= 0 {
				m.starIdx = len(m.stars) - 1
			} else {
				m.starIdx--
			}

		case "c":
			m.starIdx = -1

		case "f":
			switch {
			case m.frozen:
				m.frozen = false
			case m.err == nil:
				m.frozen = true
				m.frozenLST = m.result.LST
			default:
				m.logger.Warn("cannot freeze LST: %v", m.err)
			}
		}
		return m.recompute(), nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		return m.recompute(), m.tickCmd()
	}

	return m, nil
}

// Target returns the name and position currently shown.
func (m Model) Target() (string, astro.Equatorial) {
	if m.starIdx >= 0 && m.starIdx < len(m.stars) {
		s := m.stars[m.starIdx]
		return s.Name, s.Equatorial()
	}
	return m.customName, m.custom
}

// Result returns the latest evaluation.
func (m Model) Result() report.Result {
	return m.result
}

// Frozen reports whether the sidereal time is held fixed.
func (m Model) Frozen() bool {
	return m.frozen
}

func (m Model) recompute() Model {
	var (
		frame astro.Frame
		err   error
	)
	if m.frozen {
		frame = m.conv.WithLST(m.frozenLST)
	} else {
		frame, err = m.conv.At(m.now())
	}

	m.err = err
	if err != nil {
		m.logger.Error("sidereal time: %v", err)
		return m
	}

	name, target := m.Target()
	m.result = report.RoundTrip(frame, name, target)
	return m
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ls-altaz v" + version.Version))
	b.WriteString("\n")

	obs := m.conv.Observer()
	site := fmt.Sprintf("lat %s  lon %s", format.Decimal(obs.LatDeg), format.Decimal(obs.LonDeg))
	if obs.Name != "" {
		site = obs.Name + "  " + site
	}
	b.WriteString(siteStyle.Render(site))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(m.renderHelp())
		return b.String()
	}

	name, target := m.Target()
	if name == "" {
		name = "custom"
	}
	b.WriteString(fmt.Sprintf("Target %s: RA %sh  Dec %s°\n\n", name, format.Decimal(target.RAHours), format.Decimal(target.DecDeg)))

	var body strings.Builder
	if err := report.WriteText(&body, m.result, report.Options{Color: true, Sexagesimal: true}); err != nil {
		body.Reset()
		body.WriteString(errorStyle.Render("Error: " + err.Error()))
	}
	b.WriteString(boxStyle.Render(strings.TrimRight(body.String(), "\n")))
	b.WriteString("\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderStatus() string {
	clock := "live"
	if m.frozen {
		clock = "frozen"
	}
	return statusStyle.Render(fmt.Sprintf("LST %s  |  RA policy %s", clock, m.conv.Policy()))
}

func (m Model) renderHelp() string {
	return helpStyle.Render("n/N: next/prev star  c: custom target  p: toggle RA policy  f: freeze LST  q: quit")
}
