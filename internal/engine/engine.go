// ABOUTME: Playback engine tying decode, gain, and pacing together
// ABOUTME: Spawns one playback worker per play action
package engine

import (
	"log"

	"github.com/Feedwire-Audio/feedwire-go/internal/audio"
)

// DecodeFunc produces device-rate PCM for a file path.
type DecodeFunc func(path string) ([]byte, error)

// Task tracks one playback worker. The worker closes Done when it
// exits, whether the stream finished, failed, or was cancelled.
type Task struct {
	Track Track
	done  chan struct{}
}

// Done is closed when the playback worker has exited and the state has
// returned to idle.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Engine runs the decode -> gain -> pacing pipeline for queued tracks.
type Engine struct {
	state    *State
	decode   DecodeFunc
	streamer Streamer
}

// New creates an engine over the given state. decode defaults to nil
// guarded at Play time; callers wire in decode.File or a test stub.
func New(state *State, decode DecodeFunc) *Engine {
	return &Engine{state: state, decode: decode}
}

// State returns the shared playback state.
func (e *Engine) State() *State {
	return e.state
}

// Play atomically dequeues the head track and starts a playback worker
// for it. It returns false, without spawning anything, when a track is
// already playing, the queue is empty, or no port is connected.
func (e *Engine) Play() (*Task, bool) {
	track, ok := e.state.TryBeginPlayback()
	if !ok {
		return nil, false
	}

	task := &Task{Track: track, done: make(chan struct{})}
	go func() {
		defer close(task.done)
		e.run(track)
	}()
	return task, true
}

// run executes one track's pipeline. Any exit path resets the state to
// idle; errors are logged, not surfaced, so the queue stays usable.
func (e *Engine) run(track Track) {
	defer e.state.finish()

	data, err := e.decode(track.Path)
	if err != nil {
		log.Printf("decode %s: %v", track.Name, err)
		return
	}

	e.state.setDuration(audio.Duration(len(data)))

	if err := e.streamer.Stream(data, e.state.Port(), e.state); err != nil {
		log.Printf("playback %s: %v", track.Name, err)
	}
}
