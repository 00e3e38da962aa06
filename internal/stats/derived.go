package stats

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow/memory"
	mstats "github.com/montanaflynn/stats"
	"github.com/paveg/mindhunter/internal/dataframe"
	"github.com/paveg/mindhunter/internal/errors"
	"github.com/paveg/mindhunter/internal/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultGridSize is the number of points of a density curve.
const DefaultGridSize = 50

// Closeness bound for the mean-versus-median check, as a fraction of the std.
const normalityTolerance = 0.1

// CoefficientOfVariation computes std/mean for the requested numeric columns,
// or for every numeric column when none are given. Nothing is cached.
func CoefficientOfVariation(df *dataframe.DataFrame, columns ...string) (map[string]float64, error) {
	if len(columns) == 0 {
		columns = df.NumericColumns()
	}

	result := make(map[string]float64, len(columns))
	for _, name := range columns {
		clean, err := cleanValues(df, "CoefficientOfVariation", name)
		if err != nil {
			return nil, err
		}
		mean, std := stat.MeanStdDev(clean, nil)
		result[name] = CoefficientOf(std, mean)
	}
	return result, nil
}

// ZScore standardizes every numeric column as (v - mean) / std, producing one
// float64 column per numeric input column. Missing inputs stay missing; a column
// with zero standard deviation is NaN throughout.
func ZScore(df *dataframe.DataFrame, mem memory.Allocator) *dataframe.DataFrame {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	numeric := df.NumericColumns()
	columns := make([]dataframe.ISeries, 0, len(numeric))

	for _, name := range numeric {
		values, missing, _ := df.Float64Values(name)
		clean := dropMissing(values, missing)
		mean, std := stat.MeanStdDev(clean, nil)

		scores := make([]float64, len(values))
		valid := make([]bool, len(values))
		for i, v := range values {
			if missing[i] {
				continue
			}
			valid[i] = true
			if std == 0 || math.IsNaN(std) {
				scores[i] = math.NaN()
				continue
			}
			scores[i] = stat.StdScore(v, mean, std)
		}
		columns = append(columns, series.NewNullable(name, scores, valid, mem))
	}

	return dataframe.New(columns...)
}

// DensityCurve fits a Gaussian to values and evaluates its density on gridSize
// evenly spaced points between the minimum and maximum. It describes the data and
// does not test goodness of fit. A zero or undefined std yields NaN densities.
func DensityCurve(values []float64, gridSize int) (xs, ys []float64, err error) {
	if gridSize < 2 {
		return nil, nil, errors.NewInvalidInputError("DensityCurve",
			fmt.Sprintf("grid size must be at least 2, got %d", gridSize))
	}
	clean := dropMissing(values, nil)
	if len(clean) == 0 {
		return nil, nil, errors.NewInvalidInputError("DensityCurve", "no observations")
	}

	mean, std := stat.MeanStdDev(clean, nil)
	xs = floats.Span(make([]float64, gridSize), floats.Min(clean), floats.Max(clean))
	ys = make([]float64, gridSize)

	if std == 0 || math.IsNaN(std) {
		for i := range ys {
			ys[i] = math.NaN()
		}
		return xs, ys, nil
	}

	dist := distuv.Normal{Mu: mean, Sigma: std}
	for i, x := range xs {
		ys[i] = dist.Prob(x)
	}
	return xs, ys, nil
}

// NormalityReport is a rough, descriptive look at how bell-shaped a sample is.
type NormalityReport struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std"`
	// MeanNearMedian is true when |mean - median| < 0.1 * std.
	MeanNearMedian bool `json:"mean_near_median"`
	// WithinOneStd is the fraction of values within one std of the mean (about 0.68 for normal data).
	WithinOneStd float64 `json:"within_one_std"`
}

// CheckNormality summarizes values for a quick normality eyeball. The std here is
// the population std.
func CheckNormality(values []float64) (NormalityReport, error) {
	clean := dropMissing(values, nil)
	if len(clean) == 0 {
		return NormalityReport{}, errors.NewInvalidInputError("CheckNormality", "no observations")
	}

	mean, _ := mstats.Mean(clean)
	median, _ := mstats.Median(clean)
	std, _ := mstats.StandardDeviationPopulation(clean)

	within := 0
	for _, v := range clean {
		if math.Abs(v-mean) <= std {
			within++
		}
	}

	return NormalityReport{
		Mean:           mean,
		Median:         median,
		StdDev:         std,
		MeanNearMedian: math.Abs(mean-median) < normalityTolerance*std,
		WithinOneStd:   float64(within) / float64(len(clean)),
	}, nil
}

// DescribeLabelColumn names the leading column of Describe, which holds the row labels.
const DescribeLabelColumn = "statistic"

// describeRows are the row labels of Describe, in order.
var describeRows = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Describe renders cached statistics as a summary table: a leading "statistic"
// column followed by one float64 column per requested column.
func Describe(c *Cache, mem memory.Allocator, columns ...string) (*dataframe.DataFrame, error) {
	if len(columns) == 0 {
		columns = c.Columns()
	}
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	out := []dataframe.ISeries{series.New(DescribeLabelColumn, describeRows, mem)}
	for _, name := range columns {
		cs, err := c.StatsFor(name)
		if err != nil {
			for _, s := range out {
				s.Release()
			}
			return nil, err
		}
		values := []float64{
			float64(cs.Count), cs.Mean, cs.StdDev, cs.Min, cs.Q1, cs.Median, cs.Q3, cs.Max,
		}
		out = append(out, series.New(name, values, mem))
	}
	return dataframe.New(out...), nil
}

// cleanValues returns the non-missing values of a numeric column.
func cleanValues(df *dataframe.DataFrame, op, column string) ([]float64, error) {
	values, missing, ok := df.Float64Values(column)
	if !ok {
		if df.HasColumn(column) {
			return nil, errors.NewNotFoundError(op, column).WithHint("column is not numeric")
		}
		return nil, errors.NewColumnNotFoundError(op, column)
	}
	return dropMissing(values, missing), nil
}

func dropMissing(values []float64, missing []bool) []float64 {
	clean := make([]float64, 0, len(values))
	for i, v := range values {
		if (missing != nil && missing[i]) || math.IsNaN(v) {
			continue
		}
		clean = append(clean, v)
	}
	return clean
}
