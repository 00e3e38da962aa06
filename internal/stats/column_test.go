package stats_test

import (
	"math"
	"testing"

	"github.com/paveg/mindhunter/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestComputeSurveyAges(t *testing.T) {
	cs := stats.Compute([]float64{25, 30, 25}, []bool{false, false, false})

	assert.Equal(t, 3, cs.Count)
	assert.Equal(t, 0, cs.MissingCount)
	assert.InDelta(t, 0.0, cs.MissingFraction, tolerance)
	assert.InDelta(t, 80.0/3.0, cs.Mean, tolerance)
	assert.InDelta(t, 25.0, cs.Median, tolerance)
	assert.InDelta(t, 25.0, cs.Mode, tolerance)
	assert.InDelta(t, 25.0, cs.Min, tolerance)
	assert.InDelta(t, 30.0, cs.Max, tolerance)
	assert.InDelta(t, 5.0, cs.Range, tolerance)
	assert.InDelta(t, 25.0, cs.Q1, tolerance)
	assert.InDelta(t, 27.5, cs.Q3, tolerance)
	assert.InDelta(t, 2.5, cs.IQR, tolerance)
	assert.InDelta(t, 25.0/3.0, cs.Variance, tolerance)
	assert.InDelta(t, math.Sqrt(25.0/3.0), cs.StdDev, tolerance)
	assert.InDelta(t, cs.StdDev/cs.Mean, cs.CV, tolerance)
	assert.InDelta(t, cs.StdDev/math.Sqrt(3), cs.SEM, tolerance)
	assert.InDelta(t, 0.0, cs.MAD, tolerance)
	assert.InDelta(t, math.Sqrt(3), cs.Skewness, 1e-6)
	assert.True(t, math.IsNaN(cs.Kurtosis), "kurtosis needs four observations")
}

func TestComputeKnownMoments(t *testing.T) {
	// 1..10: skew 0, excess kurtosis -1.2
	values := []float64{3, 1, 4, 10, 5, 9, 2, 6, 8, 7}
	cs := stats.Compute(values, make([]bool, len(values)))

	assert.InDelta(t, 5.5, cs.Mean, tolerance)
	assert.InDelta(t, 5.5, cs.Median, tolerance)
	assert.InDelta(t, 3.25, cs.Q1, tolerance)
	assert.InDelta(t, 7.75, cs.Q3, tolerance)
	assert.InDelta(t, 1.0, cs.Mode, tolerance, "all values tie; smallest wins")
	assert.InDelta(t, 2.5, cs.MAD, tolerance)
	assert.InDelta(t, 0.0, cs.Skewness, tolerance)
	assert.InDelta(t, -1.2, cs.Kurtosis, tolerance)
}

func TestComputeMissing(t *testing.T) {
	values := []float64{1, 0, math.NaN(), 3}
	missing := []bool{false, true, false, false}

	cs := stats.Compute(values, missing)

	assert.Equal(t, 2, cs.Count)
	assert.Equal(t, 2, cs.MissingCount)
	assert.InDelta(t, 0.5, cs.MissingFraction, tolerance)
	assert.InDelta(t, 2.0, cs.Mean, tolerance)
}

func TestComputeConstantColumn(t *testing.T) {
	cs := stats.Compute([]float64{5, 5, 5, 5}, make([]bool, 4))

	assert.InDelta(t, 5.0, cs.Mean, tolerance)
	assert.InDelta(t, 0.0, cs.StdDev, tolerance)
	assert.InDelta(t, 0.0, cs.IQR, tolerance)
	assert.InDelta(t, 0.0, cs.Range, tolerance)
	assert.InDelta(t, 0.0, cs.Skewness, tolerance)
	assert.InDelta(t, 0.0, cs.Kurtosis, tolerance)
	assert.InDelta(t, 0.0, cs.CV, tolerance)
}

func TestComputeDegenerate(t *testing.T) {
	t.Run("all missing", func(t *testing.T) {
		cs := stats.Compute([]float64{0, 0}, []bool{true, true})

		assert.Equal(t, 0, cs.Count)
		assert.InDelta(t, 1.0, cs.MissingFraction, tolerance)
		for name, v := range map[string]float64{
			"mean": cs.Mean, "median": cs.Median, "mode": cs.Mode, "std": cs.StdDev,
			"min": cs.Min, "max": cs.Max, "q1": cs.Q1, "q3": cs.Q3, "sem": cs.SEM, "cv": cs.CV,
		} {
			assert.True(t, math.IsNaN(v), name)
		}
	})

	t.Run("empty", func(t *testing.T) {
		cs := stats.Compute(nil, nil)
		assert.Equal(t, 0, cs.Count)
		assert.InDelta(t, 0.0, cs.MissingFraction, tolerance)
	})

	t.Run("single value", func(t *testing.T) {
		cs := stats.Compute([]float64{4}, []bool{false})
		assert.InDelta(t, 4.0, cs.Mean, tolerance)
		assert.InDelta(t, 4.0, cs.Q1, tolerance)
		assert.True(t, math.IsNaN(cs.StdDev))
		assert.True(t, math.IsNaN(cs.Skewness))
	})

	t.Run("zero mean", func(t *testing.T) {
		cs := stats.Compute([]float64{-1, 1}, []bool{false, false})
		assert.True(t, math.IsInf(cs.CV, 1))
	})
}

func TestComputeOrdering(t *testing.T) {
	inputs := [][]float64{
		{1, 2, 3, 4, 100},
		{-5, -1, 0, 0, 2, 7},
		{0.1, 0.2, 0.2, 0.9},
		{42},
	}

	for _, values := range inputs {
		cs := stats.Compute(values, make([]bool, len(values)))
		require.Equal(t, len(values), cs.Count)

		assert.LessOrEqual(t, cs.Min, cs.Q1)
		assert.LessOrEqual(t, cs.Q1, cs.Median)
		assert.LessOrEqual(t, cs.Median, cs.Q3)
		assert.LessOrEqual(t, cs.Q3, cs.Max)
		assert.InDelta(t, cs.Max-cs.Min, cs.Range, tolerance)
		assert.InDelta(t, cs.Q3-cs.Q1, cs.IQR, tolerance)
		assert.GreaterOrEqual(t, cs.IQR, 0.0)
		assert.GreaterOrEqual(t, cs.MAD, 0.0)
	}
}

func TestCoefficientOf(t *testing.T) {
	assert.InDelta(t, 0.5, stats.CoefficientOf(1, 2), tolerance)
	assert.True(t, math.IsInf(stats.CoefficientOf(1, 0), 1))
	assert.True(t, math.IsInf(stats.CoefficientOf(0, 0), 1))
}
