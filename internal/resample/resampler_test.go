// ABOUTME: Tests for the windowed-sinc resampler
// ABOUTME: Checks output length, DC preservation, and identity conversion
package resample

import (
	"math"
	"testing"
)

func TestNewResampler(t *testing.T) {
	r := New(48000, 46875, 2)
	if r == nil {
		t.Fatal("expected resampler to be created")
	}
	if len(r.table) == 0 {
		t.Fatal("expected kernel table to be built")
	}
}

func TestResampleOutputLength(t *testing.T) {
	r := New(48000, 46875, 2)

	// One second of stereo input should give one second of stereo
	// output at the new rate.
	in := make([]int16, 48000*2)
	out := r.Resample(in)

	if len(out) != 46875*2 {
		t.Errorf("expected %d output samples, got %d", 46875*2, len(out))
	}
}

func TestResamplePreservesDC(t *testing.T) {
	r := New(48000, 46875, 1)

	in := make([]int16, 4800)
	for i := range in {
		in[i] = 10000
	}

	out := r.Resample(in)
	if len(out) == 0 {
		t.Fatal("resampler produced no output")
	}

	// A constant signal must come through at the same level. Edge
	// frames are included since the kernel normalizes its weight sum.
	for i, s := range out {
		if s < 9990 || s > 10010 {
			t.Fatalf("DC level not preserved at frame %d: got %d", i, s)
		}
	}
}

func TestResampleSineBounded(t *testing.T) {
	r := New(48000, 46875, 1)

	// A 440 Hz tone sits far below the cutoff and must survive
	// without gross amplitude change.
	in := make([]int16, 9600)
	for i := range in {
		in[i] = int16(20000 * math.Sin(2*math.Pi*440*float64(i)/48000))
	}

	out := r.Resample(in)

	var peak int16
	for _, s := range out[1000 : len(out)-1000] {
		if s > peak {
			peak = s
		}
	}
	if peak < 19000 || peak > 21000 {
		t.Errorf("expected peak near 20000, got %d", peak)
	}
}

func TestResampleSameRateCopies(t *testing.T) {
	in := []int16{1, 2, 3, 4}
	out := Resample(in, 2, 48000, 48000)

	if len(out) != len(in) {
		t.Fatalf("expected %d samples, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("sample %d: got %d, want %d", i, out[i], in[i])
		}
	}

	// Must be a copy, not the same backing array.
	out[0] = 99
	if in[0] == 99 {
		t.Error("same-rate conversion aliased the input")
	}
}

func TestResampleEmptyInput(t *testing.T) {
	r := New(48000, 46875, 2)
	if out := r.Resample(nil); len(out) != 0 {
		t.Errorf("expected no output for empty input, got %d samples", len(out))
	}
}
