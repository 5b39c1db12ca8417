package features

import (
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

// LengthStats summarizes the raw (pre-truncation) subtoken length
// distribution of a built batch.
type LengthStats struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	P75    float64
	P99    float64
}

// ComputeLengthStats derives the distribution summary from raw lengths.
// Returns the zero value for an empty batch.
func ComputeLengthStats(rawLengths []int) LengthStats {
	if len(rawLengths) == 0 {
		return LengthStats{}
	}

	xs := make([]float64, len(rawLengths))
	for i, n := range rawLengths {
		xs[i] = float64(n)
	}
	sort.Float64s(xs)

	return LengthStats{
		Min:    xs[0],
		Max:    xs[len(xs)-1],
		Mean:   stat.Mean(xs, nil),
		Median: stat.Quantile(0.5, stat.Empirical, xs, nil),
		P75:    stat.Quantile(0.75, stat.Empirical, xs, nil),
		P99:    stat.Quantile(0.99, stat.Empirical, xs, nil),
	}
}

// LogStats is the post-construction observer: it reports the effective
// sequence length, the raw length distribution, and how many examples were
// truncated. Purely observational; it never touches the feature arrays.
func (f *Features) LogStats(logger zerolog.Logger) {
	if f.Len() == 0 {
		logger.Info().Msg("empty batch, no length statistics")
		return
	}

	s := ComputeLengthStats(f.RawLengths)
	logger.Info().Int("max_length", f.EffectiveLen).Msg("effective sequence length")
	logger.Info().
		Float64("min", s.Min).
		Float64("max", s.Max).
		Float64("mean", s.Mean).
		Float64("median", s.Median).
		Float64("p75", s.P75).
		Float64("p99", s.P99).
		Msg("raw subtoken length distribution")
	logger.Info().
		Int("count", f.Truncated).
		Int("max_length", f.EffectiveLen).
		Msg("examples longer than effective length")
}
