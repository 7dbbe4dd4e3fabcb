// ABOUTME: Tests for the ffmpeg subprocess adapter
// ABOUTME: Exercises spawn failure and exit-status handling with stub binaries
package decode

import (
	"testing"
)

func TestFFmpegSpawnFailure(t *testing.T) {
	f := &FFmpeg{Bin: "feedwire-no-such-binary"}

	if _, err := f.Decode("input.mp3"); err == nil {
		t.Error("expected error when the decoder binary cannot be spawned")
	}
}

func TestFFmpegNonZeroExit(t *testing.T) {
	// "false" ignores its arguments and exits 1, standing in for a
	// decoder that fails after producing no output.
	f := &FFmpeg{Bin: "false"}

	if _, err := f.Decode("input.mp3"); err == nil {
		t.Error("expected error on non-zero decoder exit")
	}
}

func TestFFmpegEmptyOutputSuccess(t *testing.T) {
	// "true" exits 0 with no output; an empty PCM buffer is a valid
	// (zero-length) decode result.
	f := &FFmpeg{Bin: "true"}

	data, err := f.Decode("input.mp3")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty output, got %d bytes", len(data))
	}
}

func TestFFmpegCapturesStdout(t *testing.T) {
	// "echo" writes its arguments to stdout, so the captured buffer
	// must contain the device-rate argument list.
	f := &FFmpeg{Bin: "echo"}

	data, err := f.Decode("input.mp3")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected stdout to be captured")
	}
}
