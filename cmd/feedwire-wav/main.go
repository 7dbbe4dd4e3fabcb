// ABOUTME: Offline WAV-to-serial feeder
// ABOUTME: Resamples a 48 kHz WAV to the device rate and streams it paced
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-audio/wav"

	"github.com/Feedwire-Audio/feedwire-go/internal/audio"
	"github.com/Feedwire-Audio/feedwire-go/internal/engine"
	"github.com/Feedwire-Audio/feedwire-go/internal/resample"
	"github.com/Feedwire-Audio/feedwire-go/internal/transport"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <serial-port> <file.wav> <volume>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  serial-port  device to stream to (e.g. /dev/ttyUSB0)\n")
	fmt.Fprintf(os.Stderr, "  file.wav     48000 Hz, stereo, 16-bit PCM WAV\n")
	fmt.Fprintf(os.Stderr, "  volume       multiplier, 1.0 = unchanged\n")
	os.Exit(2)
}

func main() {
	if len(os.Args) != 4 {
		usage()
	}

	portName := os.Args[1]
	wavPath := os.Args[2]
	volume, err := strconv.ParseFloat(os.Args[3], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid volume %q: %v\n", os.Args[3], err)
		usage()
	}

	samples, err := loadWAV(wavPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", wavPath, err)
		os.Exit(1)
	}

	fmt.Printf("Resampling %d frames: %d Hz -> %d Hz\n",
		len(samples)/audio.Channels, audio.SourceRate, audio.DeviceRate)
	resampled := resample.Resample(samples, audio.Channels, audio.SourceRate, audio.DeviceRate)
	data := audio.SamplesToBytes(resampled)

	port, err := transport.Open(portName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	fmt.Printf("Streaming %.1fs to %s\n", audio.Duration(len(data)), portName)

	streamer := &engine.Streamer{Trace: os.Stdout}
	if err := streamer.Stream(data, port, engine.FixedControl{G: volume}); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done")
}

// loadWAV reads a WAV file and returns its interleaved samples after
// validating the fixed expected format. The check runs before any
// serial write, so a mismatched file has no side effects.
func loadWAV(path string) ([]int16, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file")
	}

	if dec.SampleRate != audio.SourceRate ||
		int(dec.NumChans) != audio.Channels ||
		dec.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported format %d Hz %d ch %d-bit (need %d Hz, %d ch, 16-bit)",
			dec.SampleRate, dec.NumChans, dec.BitDepth,
			audio.SourceRate, audio.Channels)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read PCM: %w", err)
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}
	return samples, nil
}
