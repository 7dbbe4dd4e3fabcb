// ABOUTME: ffmpeg subprocess adapter producing device-rate PCM
// ABOUTME: Captures stdout to completion and checks the exit status
package decode

import (
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/Feedwire-Audio/feedwire-go/internal/audio"
)

const ffmpegBin = "ffmpeg"

// FFmpeg decodes any audio file by spawning ffmpeg configured to emit
// s16le stereo PCM at the device rate on stdout.
type FFmpeg struct {
	// Bin is the binary to spawn, ffmpeg unless overridden.
	Bin string
}

// NewFFmpeg creates an adapter using the ffmpeg found on PATH.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{Bin: ffmpegBin}
}

// Decode runs the decoder process and reads its stdout to EOF before
// checking the exit status. A spawn failure, a short read, or a
// non-zero exit all fail the decode.
func (f *FFmpeg) Decode(path string) ([]byte, error) {
	cmd := exec.Command(f.Bin,
		"-i", path,
		"-ar", strconv.Itoa(audio.DeviceRate),
		"-ac", strconv.Itoa(audio.Channels),
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-hide_banner",
		"-loglevel", "error",
		"pipe:1")

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	data, readErr := io.ReadAll(stdout)
	waitErr := cmd.Wait()

	if readErr != nil {
		return nil, fmt.Errorf("decode %s: read output: %w", path, readErr)
	}
	if waitErr != nil {
		return nil, fmt.Errorf("decode %s: %w", path, waitErr)
	}

	return data, nil
}
