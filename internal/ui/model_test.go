// ABOUTME: Tests for the TUI model
// ABOUTME: Tests duration formatting, key handling, and snapshot polling
package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Feedwire-Audio/feedwire-go/internal/engine"
	"github.com/Feedwire-Audio/feedwire-go/internal/transport"
)

type nullPort struct{}

func (nullPort) WriteAll(p []byte) error { return nil }
func (nullPort) Close() error            { return nil }

func testModel(ports []string) Model {
	state := engine.NewState()
	eng := engine.New(state, func(path string) ([]byte, error) { return nil, nil })
	m := NewModel(eng, ports)
	m.openPort = func(name string) (transport.Port, error) {
		return nullPort{}, nil
	}
	return m
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{61, "01:01"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3723.9, "01:02:03"},
	}

	for _, c := range cases {
		if got := FormatDuration(c.seconds); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestPortCycling(t *testing.T) {
	m := testModel([]string{"/dev/ttyUSB0", "/dev/ttyUSB1", "/dev/ttyACM0"})

	m2, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	m = m2.(Model)
	if m.portIdx != 1 {
		t.Errorf("expected port index 1 after right, got %d", m.portIdx)
	}

	m2, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyLeft})
	m = m2.(Model)
	if m.portIdx != 0 {
		t.Errorf("expected port index 0 after left, got %d", m.portIdx)
	}

	// Wraps around backwards.
	m2, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyLeft})
	m = m2.(Model)
	if m.portIdx != 2 {
		t.Errorf("expected wrap to last port, got %d", m.portIdx)
	}
}

func TestConnectKey(t *testing.T) {
	m := testModel([]string{"/dev/ttyUSB0"})

	m2, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	m = m2.(Model)

	if !m.snap.Connected {
		t.Error("expected state to be connected after c")
	}
	if m.snap.PortName != "/dev/ttyUSB0" {
		t.Errorf("expected port name recorded, got %q", m.snap.PortName)
	}
}

func TestVolumeKeysClamp(t *testing.T) {
	m := testModel(nil)

	// Hammer volume-up far past the top of the range.
	for i := 0; i < 100; i++ {
		m2, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
		m = m2.(Model)
	}
	if m.snap.Gain != 2.0 {
		t.Errorf("expected gain clamped to 2.0, got %v", m.snap.Gain)
	}

	for i := 0; i < 100; i++ {
		m2, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
		m = m2.(Model)
	}
	if m.snap.Gain != 0 {
		t.Errorf("expected gain clamped to 0, got %v", m.snap.Gain)
	}
}

func TestRemoveSelectedTrack(t *testing.T) {
	m := testModel(nil)
	a := engine.NewTrack("/music/a.mp3")
	b := engine.NewTrack("/music/b.mp3")
	m.state.Enqueue(a)
	m.state.Enqueue(b)
	m.snap = m.state.Snapshot()

	m2, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = m2.(Model)

	if len(m.snap.Queue) != 1 || m.snap.Queue[0].ID != b.ID {
		t.Error("expected the selected (first) track to be removed")
	}
}

func TestViewShowsQueue(t *testing.T) {
	m := testModel(nil)
	m.state.Enqueue(engine.NewTrack("/music/song-one.mp3"))
	m.snap = m.state.Snapshot()

	view := m.View()
	if !strings.Contains(view, "song-one.mp3") {
		t.Error("expected queued track name in the view")
	}
	if !strings.Contains(view, "not connected") {
		t.Error("expected link status in the view")
	}
}

func TestTickPollsSnapshot(t *testing.T) {
	m := testModel(nil)
	m.state.Enqueue(engine.NewTrack("/music/a.mp3"))

	m2, cmd := m.Update(tickMsg(time.Time{}))
	m = m2.(Model)

	if len(m.snap.Queue) != 1 {
		t.Error("expected tick to refresh the snapshot")
	}
	if cmd == nil {
		t.Error("expected tick to reschedule itself")
	}
}
