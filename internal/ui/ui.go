// Package ui provides the terminal user interface for the observing session
// using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-sunpos/internal/astro"
	"github.com/litescript/ls-sunpos/internal/geo"
	"github.com/litescript/ls-sunpos/internal/session"
	"github.com/litescript/ls-sunpos/internal/version"
)

// maxHistory is how many past observations the view lists.
const maxHistory = 6

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4A261")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E9C46A")).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
)

// Model is the root Bubble Tea model wrapping a session.
type Model struct {
	session *session.Session

	input   []rune
	lastErr error
	latest  *session.Result
	trace   *astro.DayTrace

	width  int
	height int
}

// New creates a UI model driving s.
func New(s *session.Session) Model {
	return Model{session: s}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}

	case tea.KeySpace:
		m.input = append(m.input, ' ')

	case tea.KeyRunes:
		// q quits from an empty line; no valid entry starts with it
		if len(m.input) == 0 && string(msg.Runes) == "q" {
			return m, tea.Quit
		}
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := string(m.input)
	m.input = nil

	reply := m.session.Submit(line)
	m.lastErr = reply.Err

	if reply.Result != nil {
		res := *reply.Result
		m.latest = &res
		m.trace = dayTraceFor(res, m.session.Offset())
	}

	if m.session.Done() {
		return m, tea.Quit
	}
	return m, nil
}

// dayTraceFor samples the civil day containing the observation.
func dayTraceFor(res session.Result, utcOffsetSeconds int) *astro.DayTrace {
	civil := res.Instant.Civil(utcOffsetSeconds)
	y, mo, d := civil.Date()
	start := time.Date(y, mo, d, 0, 0, 0, 0, civil.Location())
	return astro.ComputeDayTrace(astro.ObserverAt(res.Observer), start, 24*time.Hour, astro.DefaultTraceInterval)
}

// Input returns the text typed on the current line.
func (m Model) Input() string {
	return string(m.input)
}

// Err returns the error from the last submitted line, if any.
func (m Model) Err() error {
	return m.lastErr
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("  ☀ ls-sunpos"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  v%s · civil time %s", version.Version, geo.FormatOffset(m.session.Offset()))))
	b.WriteString("\n\n")

	if obs, ok := m.session.Observer(); ok {
		b.WriteString(labelStyle.Render("  Observer  "))
		b.WriteString(obs.String())
		b.WriteString("\n\n")
	}

	if m.latest != nil {
		b.WriteString(m.renderLatest())
		b.WriteString("\n")
	}

	b.WriteString(m.renderHistory())

	if !m.session.Done() {
		b.WriteString("  ")
		b.WriteString(promptStyle.Render(m.session.Prompt()))
		b.WriteString(string(m.input))
		b.WriteString("█\n")
	}

	if m.lastErr != nil {
		b.WriteString("  ")
		b.WriteString(errorStyle.Render("Invalid input: " + m.lastErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("  enter: submit | backspace: edit | q (empty line), esc, ctrl+c: quit"))
	return b.String()
}

func (m Model) renderLatest() string {
	res := m.latest
	var b strings.Builder

	b.WriteString(labelStyle.Render("  Time      "))
	b.WriteString(res.Civil)
	b.WriteString(mutedStyle.Render("  (" + res.Instant.String() + ")"))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("  Altitude  "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f°", res.Position.AltitudeDeg)))
	b.WriteString(mutedStyle.Render("  " + astro.GetAltitudeTier(res.Position.AltitudeDeg).String()))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("  Azimuth   "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f°", res.Position.AzimuthDeg)))
	b.WriteString(mutedStyle.Render("  " + compassPoint(res.Position.AzimuthDeg)))
	b.WriteString("\n")

	if m.trace != nil {
		b.WriteString("  ")
		b.WriteString(renderTraceSparkline(m.trace, res.Instant.UT(), sparklineWidth(m.width)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHistory() string {
	history := m.session.History()
	if len(history) < 2 {
		return ""
	}

	// Latest is shown above; list the ones before it, newest first
	history = history[:len(history)-1]
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("  Earlier"))
	b.WriteString("\n")
	for i := len(history) - 1; i >= 0; i-- {
		h := history[i]
		b.WriteString(mutedStyle.Render(fmt.Sprintf("    %s  alt %6.2f°  az %6.2f°",
			h.Civil, h.Position.AltitudeDeg, h.Position.AzimuthDeg)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

var compassPoints = []string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}

// compassPoint names the 16-wind direction nearest to an azimuth.
func compassPoint(azDeg float64) string {
	idx := int((azDeg+11.25)/22.5) % len(compassPoints)
	if idx < 0 {
		idx += len(compassPoints)
	}
	return compassPoints[idx]
}
