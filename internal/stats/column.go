// Package stats computes and caches descriptive statistics for the numeric
// columns of a DataFrame.
//
// Degenerate results are reported with sentinels instead of errors: a zero
// mean gives a coefficient of variation of +Inf, and measures that need more
// observations than are available are NaN.
package stats

import (
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

const (
	minSkewObservations     = 3
	minKurtosisObservations = 4
)

// ColumnStatistics is the fixed battery of measures computed for one numeric column.
// StdDev and Variance are sample estimators (n-1 denominator). Skewness and Kurtosis
// are the sample-size adjusted Fisher-Pearson coefficients; Kurtosis is excess kurtosis.
type ColumnStatistics struct {
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Mode     float64 `json:"mode"`
	StdDev   float64 `json:"std"`
	Variance float64 `json:"variance"`
	Range    float64 `json:"range"`
	IQR      float64 `json:"iqr"`
	MAD      float64 `json:"mad"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`

	Count           int     `json:"count"`
	MissingCount    int     `json:"missing_count"`
	MissingFraction float64 `json:"missing_fraction"`

	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Q1  float64 `json:"q1"`
	Q3  float64 `json:"q3"`

	CV  float64 `json:"coefficient_of_variation"`
	SEM float64 `json:"sem"`
}

// Compute builds the statistics for one column from its values and missing mask.
// Missing entries, and NaNs, are dropped from this column only.
func Compute(values []float64, missing []bool) ColumnStatistics {
	clean := dropMissing(values, missing)
	return summarize(clean, len(values)-len(clean))
}

func summarize(clean []float64, missingCount int) ColumnStatistics {
	n := len(clean)
	cs := ColumnStatistics{
		Count:        n,
		MissingCount: missingCount,
	}
	if total := n + missingCount; total > 0 {
		cs.MissingFraction = float64(missingCount) / float64(total)
	}

	if n == 0 {
		nan := math.NaN()
		cs.Mean, cs.Median, cs.Mode = nan, nan, nan
		cs.StdDev, cs.Variance, cs.Range, cs.IQR, cs.MAD = nan, nan, nan, nan, nan
		cs.Skewness, cs.Kurtosis = nan, nan
		cs.Min, cs.Max, cs.Q1, cs.Q3 = nan, nan, nan, nan
		cs.CV = CoefficientOf(cs.StdDev, cs.Mean)
		cs.SEM = nan
		return cs
	}

	sorted := append([]float64(nil), clean...)
	sort.Float64s(sorted)

	cs.Min = sorted[0]
	cs.Max = sorted[n-1]
	cs.Range = cs.Max - cs.Min
	cs.Q1 = quantileSorted(sorted, 0.25)
	cs.Median = quantileSorted(sorted, 0.5)
	cs.Q3 = quantileSorted(sorted, 0.75)
	cs.IQR = cs.Q3 - cs.Q1
	cs.Mode = modeSorted(sorted)

	cs.Mean, cs.Variance = stat.MeanVariance(sorted, nil)
	cs.StdDev = math.Sqrt(cs.Variance)
	cs.CV = CoefficientOf(cs.StdDev, cs.Mean)
	cs.SEM = cs.StdDev / math.Sqrt(float64(n))

	if mad, err := mstats.MedianAbsoluteDeviation(sorted); err == nil {
		cs.MAD = mad
	} else {
		cs.MAD = math.NaN()
	}

	cs.Skewness = skewness(sorted, cs.StdDev)
	cs.Kurtosis = kurtosis(sorted, cs.StdDev)

	return cs
}

// CoefficientOf returns std/mean, or +Inf when the mean is zero.
func CoefficientOf(std, mean float64) float64 {
	if mean == 0 {
		return math.Inf(1)
	}
	return std / mean
}

func skewness(x []float64, std float64) float64 {
	switch {
	case len(x) < minSkewObservations:
		return math.NaN()
	case std == 0:
		return 0
	default:
		return stat.Skew(x, nil)
	}
}

func kurtosis(x []float64, std float64) float64 {
	switch {
	case len(x) < minKurtosisObservations:
		return math.NaN()
	case std == 0:
		return 0
	default:
		return stat.ExKurtosis(x, nil)
	}
}

// quantileSorted returns the p-quantile of ascending data, interpolating linearly
// between the order statistics around h = (n-1)p.
func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// modeSorted returns the most frequent value of ascending data. Ties go to the
// smallest value.
func modeSorted(sorted []float64) float64 {
	best, bestCount := sorted[0], 0
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		if j-i > bestCount {
			best, bestCount = sorted[i], j-i
		}
		i = j
	}
	return best
}
