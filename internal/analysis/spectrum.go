package analysis

import (
	"math/cmplx"
	"sort"

	"evidencelens/domain/evidence"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// MinSpectrumPoints is the fewest values a frequency-domain step runs on.
	MinSpectrumPoints = 64
	dominantBins      = 5
)

// Spectrum runs a discrete Fourier transform over series and reports the
// positive-frequency bins among the five strongest, weakest first so the
// strongest peak is last. Frequencies are in cycles per sample.
func Spectrum(series []float64) *evidence.SpectrumSummary {
	n := len(series)
	scale, scaled := normalize(series)
	half := fourier.NewFFT(n).Coefficients(nil, scaled)

	// Mirror the one-sided result into the full n-bin magnitude spectrum.
	magnitude := make([]float64, n)
	for k := 0; k < n; k++ {
		if k < len(half) {
			magnitude[k] = scale * cmplx.Abs(half[k])
		} else {
			magnitude[k] = scale * cmplx.Abs(half[n-k])
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return magnitude[order[a]] > magnitude[order[b]]
	})

	summary := &evidence.SpectrumSummary{
		DominantFrequencies: []evidence.FrequencyPeak{},
		PeakMagnitude:       magnitude[order[0]],
		Performed:           true,
	}
	top := dominantBins
	if n < top {
		top = n
	}
	for i := top - 1; i >= 0; i-- {
		k := order[i]
		if freq := binFrequency(k, n); freq > 0 {
			summary.DominantFrequencies = append(summary.DominantFrequencies, evidence.FrequencyPeak{
				Frequency: freq,
				Magnitude: magnitude[k],
			})
		}
	}
	return summary
}

// binFrequency maps a bin index onto [-0.5, 0.5) cycles per sample.
func binFrequency(k, n int) float64 {
	if k <= (n-1)/2 {
		return float64(k) / float64(n)
	}
	return float64(k-n) / float64(n)
}
