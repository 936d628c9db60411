package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stabilityFixture() []Candidate {
	return []Candidate{
		{Name: "qwerty", Features: qwertyFeatures},
		{Name: "graphite", Features: Features{SFB: 0.68, SFS: 4.73, LSB: 0.8, Scissors: 0.2, Rolls: 45, Redirect: 3.2, Pinky: 2.1}},
		{Name: "octa8", Features: Features{SFB: 1.2, SFS: 5.1, LSB: 0.5, Scissors: 0.1, Rolls: 49, Redirect: 4.0, Pinky: 3.3}},
		{Name: "colemak", Features: Features{SFB: 1.4, SFS: 6.2, LSB: 1.7, Scissors: 0.4, Rolls: 44, Redirect: 6.1, Pinky: 4.2}},
		{Name: "dvorak", Features: Features{SFB: 2.7, SFS: 7.3, LSB: 1.1, Scissors: 0.6, Rolls: 38, Redirect: 4.4, Pinky: 6.5}},
		{Name: "extreme", Features: Features{SFB: 12.0, SFS: 14.0, LSB: 6.0, Scissors: 3.0, Rolls: 8, Redirect: 11.0, Pinky: 12.0}},
	}
}

func TestSimulateStabilityShape(t *testing.T) {
	const sims = 4
	report, err := SimulateStability(stabilityFixture(), DefaultWeights(), "graphite", "octa8", sims, 42)
	require.NoError(t, err)

	assert.Equal(t, "graphite", report.LayoutA)
	assert.Equal(t, "octa8", report.LayoutB)
	assert.Equal(t, BasisAnchored, report.Anchored.Basis)
	assert.Equal(t, BasisMinMax, report.MinMax.Basis)

	// Anchored runs start with a, b, and the reference; min-max with just
	// a and b. Both grow by the 3 remaining layouts, scoring at each size.
	assert.Equal(t, 3, report.Anchored.Start)
	assert.Equal(t, 2, report.MinMax.Start)
	require.Len(t, report.Anchored.A, sims)
	require.Len(t, report.MinMax.B, sims)
	assert.Equal(t, 4, report.Anchored.Points())
	assert.Equal(t, 4, report.MinMax.Points())
}

func TestSimulateStabilityAnchoredIsFlat(t *testing.T) {
	report, err := SimulateStability(stabilityFixture(), DefaultWeights(), "graphite", "octa8", 5, 7)
	require.NoError(t, err)

	// Anchored scores depend only on the candidate itself and the
	// reference, so every track must be constant and crossover-free.
	for sim, track := range report.Anchored.A {
		for _, v := range track {
			assert.Equal(t, track[0], v, "sim %d track A moved", sim)
		}
	}
	for sim, track := range report.Anchored.B {
		for _, v := range track {
			assert.Equal(t, track[0], v, "sim %d track B moved", sim)
		}
	}
	assert.Zero(t, report.Anchored.Crossovers)
}

func TestSimulateStabilityDeterministic(t *testing.T) {
	first, err := SimulateStability(stabilityFixture(), DefaultWeights(), "graphite", "octa8", 3, 99)
	require.NoError(t, err)
	second, err := SimulateStability(stabilityFixture(), DefaultWeights(), "graphite", "octa8", 3, 99)
	require.NoError(t, err)

	assert.Equal(t, first.MinMax.A, second.MinMax.A)
	assert.Equal(t, first.MinMax.Crossovers, second.MinMax.Crossovers)
}

func TestSimulateStabilityErrors(t *testing.T) {
	candidates := stabilityFixture()

	_, err := SimulateStability(candidates, DefaultWeights(), "nope", "octa8", 2, 1)
	assert.Error(t, err)

	_, err = SimulateStability(candidates, DefaultWeights(), "graphite", "nope", 2, 1)
	assert.Error(t, err)

	_, err = SimulateStability(candidates, DefaultWeights(), "graphite", "octa8", 0, 1)
	assert.Error(t, err)

	// Without the reference layout the anchored runs cannot be scored.
	_, err = SimulateStability(candidates[1:], DefaultWeights(), "graphite", "octa8", 2, 1)
	assert.Error(t, err)
}

func TestStabilitySeriesAverages(t *testing.T) {
	series := StabilitySeries{
		Start: 2,
		A:     [][]float64{{10, 20}, {30, 40}},
		B:     [][]float64{{0, 100}, {100, 0}},
	}
	avgA, avgB := series.Averages()
	assert.Equal(t, []float64{20, 30}, avgA)
	assert.Equal(t, []float64{50, 50}, avgB)

	empty := StabilitySeries{}
	avgA, avgB = empty.Averages()
	assert.Nil(t, avgA)
	assert.Nil(t, avgB)
}

func TestCountCrossovers(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want int
	}{
		{"no crossover", []float64{3, 3, 3}, []float64{1, 1, 1}, 0},
		{"one crossover", []float64{3, 1}, []float64{1, 3}, 1},
		{"crossover both directions", []float64{3, 1, 3}, []float64{1, 3, 1}, 2},
		{"touch without swap", []float64{3, 2, 3}, []float64{1, 2, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countCrossovers(tt.a, tt.b))
		})
	}
}
