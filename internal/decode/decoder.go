// ABOUTME: Decoder selection for queued tracks
// ABOUTME: Prefers the ffmpeg adapter, falls back to native MP3/FLAC decoding
package decode

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Decoder produces device-rate PCM from an audio file: interleaved
// 16-bit little-endian stereo samples at audio.DeviceRate.
type Decoder interface {
	Decode(path string) ([]byte, error)
}

// ForFile picks a decoder for the given file. ffmpeg handles any
// container when it is installed; otherwise a native decoder is chosen
// by extension.
func ForFile(path string) (Decoder, error) {
	if _, err := exec.LookPath(ffmpegBin); err == nil {
		return NewFFmpeg(), nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return &MP3Decoder{}, nil
	case ".flac":
		return &FLACDecoder{}, nil
	}

	return nil, fmt.Errorf("no decoder for %s (install ffmpeg for full format support)", filepath.Base(path))
}

// File decodes path with an automatically selected decoder.
func File(path string) ([]byte, error) {
	dec, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	return dec.Decode(path)
}
