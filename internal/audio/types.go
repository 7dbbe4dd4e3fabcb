// ABOUTME: Wire-format constants and PCM conversion helpers
// ABOUTME: Defines the fixed 46875 Hz stereo 16-bit format the device consumes
package audio

import "encoding/binary"

const (
	// DeviceRate is the sample clock of the receiving hardware. It is
	// fixed by the device's timer configuration and deliberately not a
	// common file rate: source material gets resampled to it.
	DeviceRate = 46875

	// SourceRate is the only input rate the offline WAV pipeline accepts.
	SourceRate = 48000

	Channels       = 2
	BytesPerSample = 2
	BytesPerFrame  = Channels * BytesPerSample

	// ChunkSize is the number of bytes sent per serial write.
	ChunkSize = 4096

	// ChunkFrames is the number of stereo frames in a full chunk.
	ChunkFrames = ChunkSize / BytesPerFrame
)

// Duration returns the playback time in seconds of a raw PCM buffer of
// n bytes at the device rate.
func Duration(n int) float64 {
	return float64(n/BytesPerFrame) / float64(DeviceRate)
}

// BytesToSamples converts little-endian 16-bit PCM bytes to samples.
// A trailing odd byte is ignored.
func BytesToSamples(b []byte) []int16 {
	samples := make([]int16, len(b)/BytesPerSample)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(b[i*BytesPerSample:]))
	}
	return samples
}

// SamplesToBytes converts samples to little-endian 16-bit PCM bytes.
func SamplesToBytes(samples []int16) []byte {
	b := make([]byte, len(samples)*BytesPerSample)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(b[i*BytesPerSample:], uint16(s))
	}
	return b
}
