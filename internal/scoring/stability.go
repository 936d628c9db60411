package scoring

import (
	"fmt"
	"math/rand"
	"strings"
)

// StabilitySeries is the outcome of repeatedly growing a candidate set and
// re-scoring two layouts under one normalization basis. Each track holds one
// score per set size, starting at Start candidates.
type StabilitySeries struct {
	Basis Basis
	Start int
	// A[sim][step] and B[sim][step] are the two layouts' scores after the
	// step-th random layout was added in simulation sim.
	A [][]float64
	B [][]float64
	// Crossovers counts the steps, summed over all simulations, where the
	// two layouts swapped order.
	Crossovers int
}

// Points returns the number of set sizes each simulation was scored at.
func (s StabilitySeries) Points() int {
	if len(s.A) == 0 {
		return 0
	}
	return len(s.A[0])
}

// Averages returns the per-step mean score of each layout across all
// simulations.
func (s StabilitySeries) Averages() (a, b []float64) {
	n := s.Points()
	if n == 0 || len(s.A) == 0 {
		return nil, nil
	}
	a = make([]float64, n)
	b = make([]float64, n)
	for _, track := range s.A {
		for i, v := range track {
			a[i] += v
		}
	}
	for _, track := range s.B {
		for i, v := range track {
			b[i] += v
		}
	}
	sims := float64(len(s.A))
	for i := range a {
		a[i] /= sims
		b[i] /= sims
	}
	return a, b
}

// StabilityReport compares how stable the ranking of two layouts is under
// the anchored and min-max normalizations as unrelated layouts join the set.
type StabilityReport struct {
	LayoutA string
	LayoutB string

	Anchored StabilitySeries
	MinMax   StabilitySeries
}

// SimulateStability grows a candidate set from just the two named layouts
// (plus the reference, for the anchored runs) to the full set, one random
// layout at a time, scoring at every size. Both bases see the same insertion
// orders so their crossover counts are directly comparable. The anchored
// series should report zero crossovers on any real dataset; the min-max
// series is where the rankings flip.
func SimulateStability(candidates []Candidate, w Weights, nameA, nameB string, sims int, seed int64) (StabilityReport, error) {
	a, ok := findByName(candidates, nameA)
	if !ok {
		return StabilityReport{}, fmt.Errorf("layout %q not in candidate set", nameA)
	}
	b, ok := findByName(candidates, nameB)
	if !ok {
		return StabilityReport{}, fmt.Errorf("layout %q not in candidate set", nameB)
	}
	ref, ok := findReference(candidates)
	if !ok {
		return StabilityReport{}, fmt.Errorf("reference layout %q not in candidate set", ReferenceLayout)
	}
	if sims < 1 {
		return StabilityReport{}, fmt.Errorf("need at least 1 simulation, got %d", sims)
	}

	var others []Candidate
	for _, c := range candidates {
		switch {
		case strings.EqualFold(c.Name, a.Name),
			strings.EqualFold(c.Name, b.Name),
			strings.EqualFold(c.Name, ref.Name):
		default:
			others = append(others, c)
		}
	}

	report := StabilityReport{
		LayoutA:  a.Name,
		LayoutB:  b.Name,
		Anchored: runSimulations(BasisAnchored, []Candidate{a, b, ref}, others, a.Name, b.Name, ref.Features, w, sims, seed),
		MinMax:   runSimulations(BasisMinMax, []Candidate{a, b}, others, a.Name, b.Name, ref.Features, w, sims, seed),
	}
	return report, nil
}

// runSimulations reuses the seed so every basis sees identical insertion
// orders.
func runSimulations(basis Basis, base, others []Candidate, nameA, nameB string, ref Features, w Weights, sims int, seed int64) StabilitySeries {
	rng := rand.New(rand.NewSource(seed))
	series := StabilitySeries{
		Basis: basis,
		Start: len(base),
		A:     make([][]float64, sims),
		B:     make([][]float64, sims),
	}

	for sim := 0; sim < sims; sim++ {
		shuffled := make([]Candidate, len(others))
		copy(shuffled, others)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		set := make([]Candidate, len(base), len(base)+len(shuffled))
		copy(set, base)

		trackA := make([]float64, 0, len(shuffled)+1)
		trackB := make([]float64, 0, len(shuffled)+1)
		for i := 0; i <= len(shuffled); i++ {
			var scores map[string]float64
			if basis == BasisAnchored {
				scores = scoreAnchored(set, ref, w)
			} else {
				scores = scoreMinMax(set, w)
			}
			trackA = append(trackA, scores[nameA])
			trackB = append(trackB, scores[nameB])

			if i < len(shuffled) {
				set = append(set, shuffled[i])
			}
		}

		series.Crossovers += countCrossovers(trackA, trackB)
		series.A[sim] = trackA
		series.B[sim] = trackB
	}
	return series
}

func countCrossovers(a, b []float64) int {
	n := 0
	for i := 1; i < len(a); i++ {
		if (a[i-1] > b[i-1] && a[i] < b[i]) || (a[i-1] < b[i-1] && a[i] > b[i]) {
			n++
		}
	}
	return n
}

func findByName(candidates []Candidate, name string) (Candidate, bool) {
	for _, c := range candidates {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Candidate{}, false
}
