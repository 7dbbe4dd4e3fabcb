// ABOUTME: Native MP3 and FLAC decoders used when ffmpeg is absent
// ABOUTME: Decodes at the file's rate and sinc-resamples to the device rate
package decode

import (
	"fmt"
	"io"
	"os"

	"github.com/Feedwire-Audio/feedwire-go/internal/audio"
	"github.com/Feedwire-Audio/feedwire-go/internal/resample"
	"github.com/hajimehoshi/go-mp3"
	"github.com/mewkiz/flac"
)

// MP3Decoder decodes MP3 files in process.
type MP3Decoder struct{}

func (MP3Decoder) Decode(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	// go-mp3 always emits interleaved stereo 16-bit little-endian.
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decode %s: read samples: %w", path, err)
	}

	samples := audio.BytesToSamples(raw)
	out := resample.Resample(samples, audio.Channels, dec.SampleRate(), audio.DeviceRate)
	return audio.SamplesToBytes(out), nil
}

// FLACDecoder decodes FLAC files in process.
type FLACDecoder struct{}

func (FLACDecoder) Decode(path string) ([]byte, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	bitDepth := int(info.BitsPerSample)
	if channels < 1 {
		return nil, fmt.Errorf("decode %s: no audio channels", path)
	}

	var samples []int16
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}

		blockSize := len(frame.Subframes[0].Samples)
		for i := 0; i < blockSize; i++ {
			left := to16Bit(frame.Subframes[0].Samples[i], bitDepth)
			right := left
			if channels >= 2 {
				right = to16Bit(frame.Subframes[1].Samples[i], bitDepth)
			}
			samples = append(samples, left, right)
		}
	}

	out := resample.Resample(samples, audio.Channels, int(info.SampleRate), audio.DeviceRate)
	return audio.SamplesToBytes(out), nil
}

// to16Bit shifts a FLAC sample of the given bit depth into 16-bit range.
func to16Bit(s int32, bitDepth int) int16 {
	switch {
	case bitDepth > 16:
		return int16(s >> (bitDepth - 16))
	case bitDepth < 16:
		return int16(s << (16 - bitDepth))
	default:
		return int16(s)
	}
}
