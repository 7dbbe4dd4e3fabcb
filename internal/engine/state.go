// ABOUTME: Shared playback state guarded by a single mutex
// ABOUTME: Owns the queue, serial port, gain, and progress fields
package engine

import (
	"path/filepath"
	"sync"

	"github.com/Feedwire-Audio/feedwire-go/internal/transport"
	"github.com/google/uuid"
)

// Track is one queued audio file.
type Track struct {
	ID   uuid.UUID
	Path string
	Name string
}

// NewTrack creates a track for a file path, using the base name for
// display.
func NewTrack(path string) Track {
	return Track{
		ID:   uuid.New(),
		Path: path,
		Name: filepath.Base(path),
	}
}

// Snapshot is a point-in-time copy of the playback state, taken under
// the lock for the UI's polling cycle.
type Snapshot struct {
	Connected bool
	PortName  string
	Playing   bool
	Current   string // display name of the playing track, empty when idle
	Gain      float64
	Progress  float64
	Elapsed   float64
	Total     float64
	Queue     []Track
}

// State holds everything shared between the control layer and the
// playback worker: the open port, the pending queue, the playing flag,
// gain, and progress. All access goes through its methods, and the
// mutex is never held across a sleep or a serial write.
type State struct {
	mu       sync.Mutex
	port     transport.Port
	portName string
	queue    []Track
	current  *Track
	playing  bool
	gain     float64
	elapsed  float64
	total    float64
	progress float64
}

// NewState creates playback state with unity gain and no port.
func NewState() *State {
	return &State{gain: 1.0}
}

// Enqueue appends a track to the tail of the queue.
func (s *State) Enqueue(t Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, t)
}

// Remove drops the track with the given ID from the queue. When the
// track is already gone (played, or removed concurrently) this is a
// silent no-op.
func (s *State) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.queue {
		if t.ID == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// Connect stores a freshly opened port, closing any previous one.
func (s *State) Connect(name string, p transport.Port) {
	s.mu.Lock()
	old := s.port
	s.port = p
	s.portName = name
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}
}

// Connected reports whether a port is attached.
func (s *State) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port != nil
}

// Port returns the attached port, nil when disconnected. Only the
// playback worker writes to it; there is at most one worker at a time,
// so writes stay serialized without holding the state lock.
func (s *State) Port() transport.Port {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// TryBeginPlayback atomically checks that nothing is playing, the
// queue has a head, and a port is connected; if all hold, it pops the
// head, marks it playing, and returns it. A single check-and-pop under
// the lock prevents two concurrent play actions from both starting.
func (s *State) TryBeginPlayback() (Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playing || len(s.queue) == 0 || s.port == nil {
		return Track{}, false
	}

	head := s.queue[0]
	s.queue = s.queue[1:]
	s.current = &head
	s.playing = true
	s.elapsed = 0
	s.total = 0
	s.progress = 0
	return head, true
}

// RequestStop clears the playing flag. The playback worker observes it
// at the next chunk boundary; calling it repeatedly, or while idle, is
// harmless.
func (s *State) RequestStop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
}

// Playing reports whether a track is being streamed. The control layer
// polls this to detect completion; there is no separate done event.
func (s *State) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// SetGain stores the volume multiplier consumed by the next chunk.
func (s *State) SetGain(g float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gain = g
}

// Gain returns the current volume multiplier.
func (s *State) Gain() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gain
}

// Progress records elapsed and total stream time after a chunk write.
func (s *State) Progress(elapsed, total float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elapsed = elapsed
	s.total = total
	if total > 0 {
		s.progress = elapsed / total
	} else {
		s.progress = 0
	}
}

// setDuration stores the total stream time once a decode finishes.
func (s *State) setDuration(total float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = total
}

// finish resets all playback fields to idle. This is the terminal
// transition for finished, cancelled, and failed streams alike.
func (s *State) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
	s.current = nil
	s.elapsed = 0
	s.total = 0
	s.progress = 0
}

// Snapshot copies the visible state for one UI redraw.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Connected: s.port != nil,
		PortName:  s.portName,
		Playing:   s.playing,
		Gain:      s.gain,
		Progress:  s.progress,
		Elapsed:   s.elapsed,
		Total:     s.total,
		Queue:     make([]Track, len(s.queue)),
	}
	copy(snap.Queue, s.queue)
	if s.current != nil {
		snap.Current = s.current.Name
	}
	return snap
}

// Close releases the attached port, if any.
func (s *State) Close() error {
	s.mu.Lock()
	p := s.port
	s.port = nil
	s.portName = ""
	s.mu.Unlock()

	if p != nil {
		return p.Close()
	}
	return nil
}
