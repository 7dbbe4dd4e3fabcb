// ABOUTME: Drift-free pacing loop writing PCM chunks to the serial link
// ABOUTME: Sleeps to each chunk's ideal offset and never speeds up to catch up
package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Feedwire-Audio/feedwire-go/internal/audio"
	"github.com/Feedwire-Audio/feedwire-go/internal/transport"
)

// ErrNotConnected is returned when streaming is attempted with no port.
var ErrNotConnected = errors.New("no serial port connected")

// Control supplies live gain and cancellation to the pacing loop and
// receives progress updates after each chunk. *State implements it for
// the interactive pipeline; FixedControl serves the offline one.
type Control interface {
	Gain() float64
	Playing() bool
	Progress(elapsed, total float64)
}

// FixedControl runs a stream to completion at a constant gain.
type FixedControl struct {
	G float64
}

func (c FixedControl) Gain() float64                   { return c.G }
func (c FixedControl) Playing() bool                   { return true }
func (c FixedControl) Progress(elapsed, total float64) {}

// Streamer paces one PCM buffer out over the transport at the device
// consumption rate. The zero value streams full-size chunks silently.
type Streamer struct {
	// ChunkSize overrides audio.ChunkSize when positive.
	ChunkSize int

	// Trace receives one diagnostic timing line per chunk when set.
	Trace io.Writer
}

// IdealOffset returns the stream time, in seconds, at which the chunk
// starting at byte offset n must be written. It is derived from the
// integer byte count rather than an accumulated float sum, so rounding
// error cannot grow with the chunk index.
func IdealOffset(n int) float64 {
	return float64(n/audio.BytesPerFrame) / float64(audio.DeviceRate)
}

// Stream writes data to the port in chunks, each at its ideal offset
// from stream start. When the wall clock runs behind the ideal time it
// sleeps for the deficit; when it runs ahead (a slow write, an
// oversleep) it continues at the ideal pace without speeding up — the
// device has no flow control, and overrunning it corrupts audibly
// while a brief underrun only gaps.
//
// Cancellation via ctl.Playing is observed at each chunk boundary.
// Gain is read fresh from ctl for every chunk and applied in place
// before the write.
func (st *Streamer) Stream(data []byte, port transport.Port, ctl Control) error {
	if port == nil {
		return ErrNotConnected
	}

	chunkSize := st.ChunkSize
	if chunkSize <= 0 {
		chunkSize = audio.ChunkSize
	}

	total := audio.Duration(len(data))
	start := time.Now()

	for sent := 0; sent < len(data); {
		if !ctl.Playing() {
			return nil
		}

		end := sent + chunkSize
		if end > len(data) {
			end = len(data)
		}
		chunk := data[sent:end]

		ideal := IdealOffset(sent)
		elapsed := time.Since(start).Seconds()
		if elapsed < ideal {
			time.Sleep(time.Duration((ideal - elapsed) * float64(time.Second)))
		}

		audio.ApplyGain(chunk, ctl.Gain())

		writeStart := time.Now()
		if err := port.WriteAll(chunk); err != nil {
			return fmt.Errorf("stream chunk at %d: %w", sent, err)
		}

		if st.Trace != nil {
			fmt.Fprintf(st.Trace, "chunk %6d  ideal %9.4fs  clock %9.4fs  write %6.2fms\n",
				sent/chunkSize, ideal, elapsed, time.Since(writeStart).Seconds()*1000)
		}

		sent = end
		ctl.Progress(IdealOffset(sent), total)
	}

	return nil
}
