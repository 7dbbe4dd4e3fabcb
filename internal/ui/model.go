// ABOUTME: Bubbletea model for the feedwire TUI
// ABOUTME: Polls engine state on a tick and renders ports, queue, and progress
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Feedwire-Audio/feedwire-go/internal/engine"
	"github.com/Feedwire-Audio/feedwire-go/internal/transport"
)

// pollInterval is the redraw cadence; the model reads a fresh state
// snapshot on every tick rather than receiving push updates.
const pollInterval = 100 * time.Millisecond

// gainStep is the volume change per keypress, over the 0..2 range.
const gainStep = 0.05

// Model is the TUI state. All playback data comes from the engine
// snapshot taken on the last tick.
type Model struct {
	state *engine.State
	eng   *engine.Engine

	ports   []string
	portIdx int

	snap   engine.Snapshot
	cursor int
	status string

	width  int
	height int

	// openPort is swapped for a stub in tests.
	openPort func(name string) (transport.Port, error)
}

// NewModel creates the TUI model over an engine and the ports visible
// at startup.
func NewModel(eng *engine.Engine, ports []string) Model {
	return Model{
		state:    eng.State(),
		eng:      eng,
		ports:    ports,
		snap:     eng.State().Snapshot(),
		openPort: transport.Open,
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the polling loop.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.snap = m.state.Snapshot()
		if m.cursor >= len(m.snap.Queue) {
			m.cursor = len(m.snap.Queue) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// handleKey handles keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.state.RequestStop()
		return m, tea.Quit

	case "left":
		if len(m.ports) > 0 {
			m.portIdx = (m.portIdx + len(m.ports) - 1) % len(m.ports)
		}
	case "right", "tab":
		if len(m.ports) > 0 {
			m.portIdx = (m.portIdx + 1) % len(m.ports)
		}

	case "c":
		m.connect()

	case "p", "enter":
		if _, ok := m.eng.Play(); ok {
			m.status = "playing"
		} else {
			m.status = "cannot play: need a connected port, an idle player, and a queued track"
		}

	case "s":
		m.state.RequestStop()
		m.status = "stop requested"

	case "+", "=", "up":
		m.adjustGain(gainStep)
	case "-", "down":
		m.adjustGain(-gainStep)

	case "j":
		if m.cursor < len(m.snap.Queue)-1 {
			m.cursor++
		}
	case "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "x", "delete":
		if m.cursor < len(m.snap.Queue) {
			t := m.snap.Queue[m.cursor]
			m.state.Remove(t.ID)
			m.status = fmt.Sprintf("removed %s", t.Name)
		}
	}

	m.snap = m.state.Snapshot()
	return m, nil
}

// connect opens the selected port and hands it to the state.
func (m *Model) connect() {
	if len(m.ports) == 0 {
		m.status = "no serial ports found"
		return
	}

	name := m.ports[m.portIdx]
	p, err := m.openPort(name)
	if err != nil {
		m.status = fmt.Sprintf("connect failed: %v", err)
		return
	}

	m.state.Connect(name, p)
	m.status = fmt.Sprintf("connected to %s", name)
}

// adjustGain steps the volume, clamped to the 0..2 slider range.
func (m *Model) adjustGain(delta float64) {
	g := m.snap.Gain + delta
	if g < 0 {
		g = 0
	}
	if g > 2 {
		g = 2
	}
	m.state.SetGain(g)
}

// View renders the TUI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString("┌─ feedwire ───────────────────────────────────────────┐\n")
	b.WriteString(fmt.Sprintf("│ Port:   %-45s│\n", m.renderPort()))
	b.WriteString(fmt.Sprintf("│ Link:   %-45s│\n", m.renderLink()))
	b.WriteString("├──────────────────────────────────────────────────────┤\n")
	b.WriteString(m.renderPlayback())
	b.WriteString("├──────────────────────────────────────────────────────┤\n")
	b.WriteString(m.renderQueue())
	b.WriteString("├──────────────────────────────────────────────────────┤\n")
	b.WriteString(fmt.Sprintf("│ %-53s│\n", truncate(m.status, 53)))
	b.WriteString("│ ←/→:Port  c:Connect  p:Play  s:Stop  ±:Volume  q:Quit│\n")
	b.WriteString("└──────────────────────────────────────────────────────┘\n")

	return b.String()
}

func (m Model) renderPort() string {
	if len(m.ports) == 0 {
		return "(none found)"
	}
	return fmt.Sprintf("%s  [%d/%d]", m.ports[m.portIdx], m.portIdx+1, len(m.ports))
}

func (m Model) renderLink() string {
	if m.snap.Connected {
		return fmt.Sprintf("connected (%s)", m.snap.PortName)
	}
	return "not connected"
}

func (m Model) renderPlayback() string {
	gainBar := renderBar(m.snap.Gain/2, 10)
	volume := fmt.Sprintf("│ Volume: [%s] %.2fx%-32s│\n", gainBar, m.snap.Gain, "")

	if !m.snap.Playing {
		return "│ Idle                                                 │\n" + volume
	}

	name := m.snap.Current
	if name == "" {
		name = "(loading)"
	}

	s := fmt.Sprintf("│ Now playing: %-40s│\n", truncate(name, 40))
	s += fmt.Sprintf("│ [%s] %s / %s%-20s│\n",
		renderBar(m.snap.Progress, 10),
		FormatDuration(m.snap.Elapsed),
		FormatDuration(m.snap.Total), "")
	return s + volume
}

func (m Model) renderQueue() string {
	if len(m.snap.Queue) == 0 {
		return "│ Queue empty                                          │\n"
	}

	var b strings.Builder
	for i, t := range m.snap.Queue {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("│ %s%2d. %-47s│\n", marker, i+1, truncate(t.Name, 47)))
	}
	return b.String()
}

// FormatDuration renders seconds as MM:SS, or HH:MM:SS once the hour
// mark is passed.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// renderBar draws a fill bar of the given width for a 0..1 fraction.
func renderBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
