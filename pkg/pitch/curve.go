package pitch

import (
	"encoding/json"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Curve is a time-ordered sequence of fundamental-frequency estimates.
// Times and Pitches are always the same length, Times is non-decreasing,
// and unvoiced frames carry NaN in Pitches.
type Curve struct {
	Times   []float64 `json:"times" yaml:"times"`
	Pitches []float64 `json:"pitches" yaml:"pitches"`
}

// Len returns the number of points in the curve.
func (c Curve) Len() int {
	return len(c.Times)
}

// Range returns the contiguous sub-curve whose timestamps fall in
// [start, end]: the slice from the first index with time >= start up to
// the first index with time > end. The result shares backing storage with
// the curve; it is empty, never an error, when no timestamps qualify.
func (c Curve) Range(start, end float64) Curve {
	lo := sort.SearchFloat64s(c.Times, start)
	hi := sort.Search(len(c.Times), func(i int) bool { return c.Times[i] > end })
	if lo >= hi {
		return Curve{}
	}
	return Curve{Times: c.Times[lo:hi], Pitches: c.Pitches[lo:hi]}
}

// marshalableCurve mirrors Curve with unvoiced frames as explicit nulls,
// since neither JSON nor YAML can encode NaN.
type marshalableCurve struct {
	Times   []float64  `json:"times" yaml:"times"`
	Pitches []*float64 `json:"pitches" yaml:"pitches"`
}

func (c Curve) marshalable() marshalableCurve {
	pitches := make([]*float64, len(c.Pitches))
	for i := range c.Pitches {
		if !math.IsNaN(c.Pitches[i]) {
			v := c.Pitches[i]
			pitches[i] = &v
		}
	}
	return marshalableCurve{Times: c.Times, Pitches: pitches}
}

// MarshalJSON encodes unvoiced frames as null.
func (c Curve) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.marshalable())
}

// MarshalYAML encodes unvoiced frames as null.
func (c Curve) MarshalYAML() (any, error) {
	return c.marshalable(), nil
}

// Stats summarizes the voiced portion of a curve.
type Stats struct {
	Points      int     `json:"points" yaml:"points"`
	Voiced      int     `json:"voiced" yaml:"voiced"`
	VoicedRatio float64 `json:"voiced_ratio" yaml:"voiced_ratio"`
	MinPitch    float64 `json:"min_pitch" yaml:"min_pitch"`
	MaxPitch    float64 `json:"max_pitch" yaml:"max_pitch"`
	MeanPitch   float64 `json:"mean_pitch" yaml:"mean_pitch"`
}

// Stats computes summary statistics over the voiced frames. Min, max and
// mean are zero when the curve has no voiced frames.
func (c Curve) Stats() Stats {
	voiced := make([]float64, 0, len(c.Pitches))
	for _, p := range c.Pitches {
		if !math.IsNaN(p) {
			voiced = append(voiced, p)
		}
	}

	stats := Stats{Points: c.Len(), Voiced: len(voiced)}
	if c.Len() > 0 {
		stats.VoicedRatio = float64(len(voiced)) / float64(c.Len())
	}
	if len(voiced) > 0 {
		stats.MinPitch = floats.Min(voiced)
		stats.MaxPitch = floats.Max(voiced)
		stats.MeanPitch = floats.Sum(voiced) / float64(len(voiced))
	}
	return stats
}
