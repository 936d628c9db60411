// Package scoring turns a layout's raw ergonomics metrics into one
// comparable number. Scores are anchored to a reference layout and to fixed
// best points, never to the extremes of the candidate set, so a layout's
// score does not move when unrelated layouts are added to or removed from
// the comparison. A min-max fallback exists for candidate sets that lack the
// reference layout; its scores are only comparable within the exact set that
// produced them.
package scoring

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ReferenceLayout is the name of the layout all anchored scores are measured
// against. The comparison is case-insensitive.
const ReferenceLayout = "qwerty"

// Basis identifies which normalization produced a batch of scores.
type Basis string

const (
	// BasisAnchored scores are reference-anchored and stable across
	// candidate sets.
	BasisAnchored Basis = "anchored"
	// BasisMinMax scores were rescaled against the candidate set's own
	// extremes and must not be compared across sets.
	BasisMinMax Basis = "minmax"
)

// Metric names, in the fixed weighting order.
const (
	MetricSFB      = "sfb"
	MetricSFS      = "sfs"
	MetricLSB      = "lsb"
	MetricScissors = "scissors"
	MetricRolls    = "rolls"
	MetricRedirect = "redirect"
	MetricPinky    = "pinky"
)

// MetricNames lists the seven weighted metrics in canonical order.
var MetricNames = []string{
	MetricSFB, MetricSFS, MetricLSB, MetricScissors,
	MetricRolls, MetricRedirect, MetricPinky,
}

// lowerIsBetter marks the metrics where a smaller raw value is preferable.
// Rolls is the one higher-is-better metric.
var lowerIsBetter = map[string]bool{
	MetricSFB:      true,
	MetricSFS:      true,
	MetricLSB:      true,
	MetricScissors: true,
	MetricRedirect: true,
	MetricPinky:    true,
}

// Features holds the extracted numeric value for each weighted metric.
// Missing or unparseable inputs extract to 0.
type Features struct {
	SFB      float64
	SFS      float64
	LSB      float64
	Scissors float64
	Rolls    float64
	Redirect float64
	Pinky    float64
}

// LowerIsBetter reports whether smaller raw values of the metric are
// preferable.
func LowerIsBetter(metric string) bool {
	return lowerIsBetter[metric]
}

// Value returns the feature for a metric name, 0 for unknown names.
func (f Features) Value(metric string) float64 {
	switch metric {
	case MetricSFB:
		return f.SFB
	case MetricSFS:
		return f.SFS
	case MetricLSB:
		return f.LSB
	case MetricScissors:
		return f.Scissors
	case MetricRolls:
		return f.Rolls
	case MetricRedirect:
		return f.Redirect
	case MetricPinky:
		return f.Pinky
	}
	return 0
}

// Weights is the 7-entry weight vector, each in [0,100].
type Weights struct {
	SFB      int `json:"sfb"`
	SFS      int `json:"sfs"`
	LSB      int `json:"lsb"`
	Scissors int `json:"scissors"`
	Rolls    int `json:"rolls"`
	Redirect int `json:"redirect"`
	Pinky    int `json:"pinky"`
}

// DefaultWeights weighs all seven metrics equally.
func DefaultWeights() Weights {
	return Weights{SFB: 50, SFS: 50, LSB: 50, Scissors: 50, Rolls: 50, Redirect: 50, Pinky: 50}
}

func (w Weights) value(metric string) int {
	switch metric {
	case MetricSFB:
		return w.SFB
	case MetricSFS:
		return w.SFS
	case MetricLSB:
		return w.LSB
	case MetricScissors:
		return w.Scissors
	case MetricRolls:
		return w.Rolls
	case MetricRedirect:
		return w.Redirect
	case MetricPinky:
		return w.Pinky
	}
	return 0
}

// Merge returns a copy of w with the named overrides applied. Unknown
// metric names are ignored.
func (w Weights) Merge(overrides map[string]int) Weights {
	for m, v := range overrides {
		switch m {
		case MetricSFB:
			w.SFB = v
		case MetricSFS:
			w.SFS = v
		case MetricLSB:
			w.LSB = v
		case MetricScissors:
			w.Scissors = v
		case MetricRolls:
			w.Rolls = v
		case MetricRedirect:
			w.Redirect = v
		case MetricPinky:
			w.Pinky = v
		}
	}
	return w
}

// Sum returns the total weight across all metrics.
func (w Weights) Sum() int {
	total := 0
	for _, m := range MetricNames {
		total += w.value(m)
	}
	return total
}

// Candidate pairs a layout name with its extracted features for one
// language.
type Candidate struct {
	Name     string
	Features Features
}

// Result carries the scores for a candidate set and the normalization that
// produced them.
type Result struct {
	Basis  Basis
	Scores map[string]float64
}

// Score computes one score per candidate. When the reference layout is
// present the anchored normalization is used and each score depends only on
// that candidate, the weights, and the reference. Otherwise the min-max
// fallback rescales against the set's own extremes; the returned Basis
// distinguishes the two so callers never mix the scales silently.
func Score(candidates []Candidate, w Weights) Result {
	if ref, ok := findReference(candidates); ok {
		return Result{Basis: BasisAnchored, Scores: scoreAnchored(candidates, ref.Features, w)}
	}
	return Result{Basis: BasisMinMax, Scores: scoreMinMax(candidates, w)}
}

func findReference(candidates []Candidate) (Candidate, bool) {
	for _, c := range candidates {
		if strings.EqualFold(c.Name, ReferenceLayout) {
			return c, true
		}
	}
	return Candidate{}, false
}

// scoreAnchored normalizes every metric against the reference value and a
// fixed best point: 0 for lower-is-better metrics, 100 for rolls. A
// candidate equal to the reference normalizes to 0 on every metric; a
// candidate at the fixed best normalizes to 1. Values worse than the
// reference go negative and values beyond the fixed best exceed 1.
func scoreAnchored(candidates []Candidate, ref Features, w Weights) map[string]float64 {
	scores := make(map[string]float64, len(candidates))
	weightSum := float64(w.Sum())

	for _, c := range candidates {
		raw := 0.0
		for _, m := range MetricNames {
			raw += float64(w.value(m)) * normalizeAnchored(m, c.Features.Value(m), ref.Value(m))
		}
		score := 0.0
		if weightSum > 0 {
			score = 100 * raw / weightSum
		}
		scores[c.Name] = round1(score)
	}
	return scores
}

func normalizeAnchored(metric string, v, ref float64) float64 {
	if lowerIsBetter[metric] {
		if ref == 0 {
			// Reference already at the fixed best; only an equally
			// perfect value earns full credit.
			if v == 0 {
				return 1
			}
			return 0
		}
		return (ref - v) / ref
	}
	// Higher is better, fixed best 100.
	if ref == 100 {
		return 0
	}
	return (v - ref) / (100 - ref)
}

// scoreMinMax is the fallback for candidate sets without the reference
// layout. Metrics normalize against the set's own min and max (0.5 when the
// set is degenerate on a metric) and the weighted composite is then rescaled
// so the set's worst scores 0 and its best 100 (50 when all tie).
func scoreMinMax(candidates []Candidate, w Weights) map[string]float64 {
	scores := make(map[string]float64, len(candidates))
	if len(candidates) == 0 {
		return scores
	}

	mins := make(map[string]float64, len(MetricNames))
	maxs := make(map[string]float64, len(MetricNames))
	vals := make([]float64, len(candidates))
	for _, m := range MetricNames {
		for i, c := range candidates {
			vals[i] = c.Features.Value(m)
		}
		mins[m] = floats.Min(vals)
		maxs[m] = floats.Max(vals)
	}

	raws := make([]float64, len(candidates))
	for i, c := range candidates {
		raw := 0.0
		for _, m := range MetricNames {
			n := 0.5
			if span := maxs[m] - mins[m]; span != 0 {
				n = (c.Features.Value(m) - mins[m]) / span
			}
			if lowerIsBetter[m] {
				n = 1 - n
			}
			raw += float64(w.value(m)) * n
		}
		raws[i] = raw
	}

	rawMin := floats.Min(raws)
	rawMax := floats.Max(raws)
	for i, c := range candidates {
		score := 50.0
		if rawMax != rawMin {
			score = 100 * (raws[i] - rawMin) / (rawMax - rawMin)
		}
		scores[c.Name] = round1(score)
	}
	return scores
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
