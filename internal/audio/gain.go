// ABOUTME: In-place volume scaling for 16-bit PCM chunks
// ABOUTME: Applies a gain factor with a truncating cast, no saturation
package audio

import "encoding/binary"

// ApplyGain multiplies every 16-bit sample in buf by gain, in place.
// The product is truncated back to int16 without clamping, so gains
// above 1.0 can wrap loud samples. Each sample is decoded and
// re-encoded through an explicit little-endian conversion; buf is
// never aliased as a different type.
func ApplyGain(buf []byte, gain float64) {
	for i := 0; i+BytesPerSample <= len(buf); i += BytesPerSample {
		s := int16(binary.LittleEndian.Uint16(buf[i:]))
		scaled := int16(int32(float64(s) * gain))
		binary.LittleEndian.PutUint16(buf[i:], uint16(scaled))
	}
}
