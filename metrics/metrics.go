// Package metrics computes temporal statistics, rhythm, density, entropy,
// and sequence complexity over a simulated event sequence, following the
// map-based aggregate-summary shape of the event log Summary type this
// repository is descended from.
package metrics

import (
	"math"
	"sort"

	"github.com/zenithlang/zenith/simulate"
)

// TemporalStatistics summarizes event durations.
type TemporalStatistics struct {
	Count           int
	TotalDuration   int64
	Mean            float64
	Median          float64
	Std             float64
	Min             int64
	Max             int64
	CoherenceTotal  int64
	DispersalTotal  int64
	CoherenceRatio  float64
}

// TemporalStats computes duration statistics over an event sequence. All
// outputs are 0 on empty input.
func TemporalStats(events []simulate.Event) TemporalStatistics {
	if len(events) == 0 {
		return TemporalStatistics{}
	}

	durations := make([]float64, len(events))
	var total, coherence, dispersal int64
	min, max := events[0].DurationMinutes, events[0].DurationMinutes
	for i, e := range events {
		durations[i] = float64(e.DurationMinutes)
		total += e.DurationMinutes
		coherence += e.CoherenceMin
		dispersal += e.DispersalMin
		if e.DurationMinutes < min {
			min = e.DurationMinutes
		}
		if e.DurationMinutes > max {
			max = e.DurationMinutes
		}
	}

	sorted := append([]float64{}, durations...)
	sort.Float64s(sorted)
	median := medianOf(sorted)

	var variance float64
	for _, d := range durations {
		diff := d - float64(total)/float64(len(events))
		variance += diff * diff
	}
	variance /= float64(len(events))
	std := math.Sqrt(variance)

	ratio := 0.0
	if total > 0 {
		ratio = float64(coherence) / float64(total)
	}

	return TemporalStatistics{
		Count:          len(events),
		TotalDuration:  total,
		Mean:           float64(total) / float64(len(events)),
		Median:         median,
		Std:            std,
		Min:            min,
		Max:            max,
		CoherenceTotal: coherence,
		DispersalTotal: dispersal,
		CoherenceRatio: ratio,
	}
}

func medianOf(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// RhythmMetrics summarizes the gaps between consecutive event starts.
type RhythmMetrics struct {
	MeanGap    float64
	StdGap     float64
	Regularity float64 // 1 / (1 + std/mean), on [0, 1]
}

func Rhythm(events []simulate.Event) RhythmMetrics {
	if len(events) < 2 {
		return RhythmMetrics{}
	}
	gaps := make([]float64, 0, len(events)-1)
	for i := 1; i < len(events); i++ {
		gaps = append(gaps, float64(events[i].Start.Sub(events[i-1].Start).Minutes()))
	}
	mean := meanOf(gaps)
	std := stdOf(gaps, mean)
	regularity := 0.0
	if mean > 0 {
		regularity = 1 / (1 + std/mean)
	}
	return RhythmMetrics{MeanGap: mean, StdGap: std, Regularity: regularity}
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stdOf(xs []float64, mean float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var variance float64
	for _, x := range xs {
		diff := x - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(xs)))
}

// Density is events_per_hour over the span from first start to last end.
func Density(events []simulate.Event) float64 {
	if len(events) == 0 {
		return 0
	}
	span := events[len(events)-1].End.Sub(events[0].Start).Minutes()
	if span <= 0 {
		return 0
	}
	return float64(len(events)) / (span / 60)
}

// Frequency maps each distinct event name to its occurrence count.
func Frequency(events []simulate.Event) map[string]int {
	freq := map[string]int{}
	for _, e := range events {
		freq[e.EventName]++
	}
	return freq
}

// Entropy returns the base-2 Shannon entropy of the event-name
// distribution.
func Entropy(events []simulate.Event) float64 {
	if len(events) == 0 {
		return 0
	}
	freq := Frequency(events)
	total := float64(len(events))
	var h float64
	for _, count := range freq {
		p := float64(count) / total
		h -= p * math.Log2(p)
	}
	return h
}

// Complexity is the combined sequence-complexity score on [0, 100]:
// 0.4*transition_variety + 0.3*unique_ratio + 0.3*entropy_normalized.
type Complexity struct {
	Score             float64
	TransitionVariety float64
	UniqueRatio       float64
	EntropyNormalized float64
}

func SequenceComplexity(events []simulate.Event) Complexity {
	n := len(events)
	if n < 2 {
		return Complexity{}
	}

	names := simulate.Names(events)
	distinct := map[string]bool{}
	for _, name := range names {
		distinct[name] = true
	}
	uniqueRatio := float64(len(distinct)) / float64(n)

	transitions := map[string]bool{}
	for i := 0; i < n-1; i++ {
		transitions[names[i]+"->"+names[i+1]] = true
	}
	transitionVariety := 0.0
	if n > 1 {
		transitionVariety = float64(len(transitions)) / float64(n-1)
	}

	entropyNorm := 0.0
	if len(distinct) > 1 {
		entropyNorm = Entropy(events) / math.Log2(float64(len(distinct)))
	}

	score := (0.4*transitionVariety + 0.3*uniqueRatio + 0.3*entropyNorm) * 100

	return Complexity{
		Score:             score,
		TransitionVariety: transitionVariety,
		UniqueRatio:       uniqueRatio,
		EntropyNormalized: entropyNorm,
	}
}
