// ABOUTME: Windowed-sinc sample rate conversion for interleaved PCM
// ABOUTME: 256-tap Blackman-Harris kernel with a 256x oversampled table
package resample

import "math"

const (
	// taps is the kernel width in input samples.
	taps = 256

	// phases is the oversampling factor of the coefficient table;
	// fractional positions interpolate linearly between entries.
	phases = 256

	// cutoff places the filter edge at 0.95 of the Nyquist frequency
	// of the lower rate.
	cutoff = 0.95
)

// Resampler converts interleaved 16-bit PCM between two fixed sample
// rates. The kernel table is built once per rate pair.
type Resampler struct {
	srcRate  int
	dstRate  int
	channels int
	ratio    float64 // source frames consumed per output frame
	table    []float64
}

// New creates a resampler for the given rate pair.
func New(srcRate, dstRate, channels int) *Resampler {
	r := &Resampler{
		srcRate:  srcRate,
		dstRate:  dstRate,
		channels: channels,
		ratio:    float64(srcRate) / float64(dstRate),
	}
	r.buildTable()
	return r
}

// buildTable precomputes one side of the symmetric windowed sinc at
// phases points per input sample.
func (r *Resampler) buildTable() {
	fc := cutoff
	if r.ratio > 1 {
		// Downsampling: the transition band must stay below the
		// output Nyquist or the folded spectrum aliases.
		fc = cutoff / r.ratio
	}

	half := taps / 2
	r.table = make([]float64, half*phases+1)
	for i := range r.table {
		t := float64(i) / phases // distance from kernel center, input samples
		r.table[i] = fc * sinc(fc*t) * blackmanHarris(0.5+t/taps)
	}
}

// coeff returns the kernel value at distance d (in input samples) from
// the output point, linearly interpolating between table entries.
func (r *Resampler) coeff(d float64) float64 {
	p := d * phases
	i := int(p)
	if i+1 >= len(r.table) {
		return 0
	}
	frac := p - float64(i)
	return r.table[i]*(1-frac) + r.table[i+1]*frac
}

// Resample converts interleaved input samples and returns the converted
// stream. Output length is inputFrames * dstRate / srcRate frames.
func (r *Resampler) Resample(in []int16) []int16 {
	inFrames := len(in) / r.channels
	if inFrames == 0 {
		return nil
	}
	outFrames := int(int64(inFrames) * int64(r.dstRate) / int64(r.srcRate))
	out := make([]int16, outFrames*r.channels)
	half := taps / 2

	for j := 0; j < outFrames; j++ {
		pos := float64(j) * r.ratio
		center := int(pos)
		frac := pos - float64(center)

		for c := 0; c < r.channels; c++ {
			var acc, norm float64
			for k := -half + 1; k <= half; k++ {
				idx := center + k
				if idx < 0 || idx >= inFrames {
					continue
				}
				w := r.coeff(math.Abs(float64(k) - frac))
				acc += w * float64(in[idx*r.channels+c])
				norm += w
			}
			// Normalizing by the coefficient sum keeps DC gain at
			// unity even at the buffer edges where taps fall off.
			if norm != 0 {
				acc /= norm
			}
			out[j*r.channels+c] = clamp16(acc)
		}
	}

	return out
}

// Resample converts interleaved samples from srcRate to dstRate in one
// call, for callers that do not reuse the kernel table.
func Resample(in []int16, channels, srcRate, dstRate int) []int16 {
	if srcRate == dstRate {
		out := make([]int16, len(in))
		copy(out, in)
		return out
	}
	return New(srcRate, dstRate, channels).Resample(in)
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// blackmanHarris evaluates the 4-term Blackman-Harris window at
// x in [0, 1], with the peak at x = 0.5.
func blackmanHarris(x float64) float64 {
	const (
		a0 = 0.35875
		a1 = 0.48829
		a2 = 0.14128
		a3 = 0.01168
	)
	if x < 0 || x > 1 {
		return 0
	}
	return a0 -
		a1*math.Cos(2*math.Pi*x) +
		a2*math.Cos(4*math.Pi*x) -
		a3*math.Cos(6*math.Pi*x)
}

func clamp16(v float64) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}
