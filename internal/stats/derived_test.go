package stats_test

import (
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/paveg/mindhunter/internal/dataframe"
	"github.com/paveg/mindhunter/internal/errors"
	"github.com/paveg/mindhunter/internal/series"
	"github.com/paveg/mindhunter/internal/stats"
	"github.com/paveg/mindhunter/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestCoefficientOfVariation(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	df := dataframe.New(
		series.New("x", []float64{2, 4, 6}, mem),
		series.New("zero_mean", []float64{-1, 0, 1}, mem),
		series.New("label", []string{"a", "b", "c"}, mem),
	)
	defer df.Release()

	t.Run("all numeric columns", func(t *testing.T) {
		cv, err := stats.CoefficientOfVariation(df)
		require.NoError(t, err)
		require.Len(t, cv, 2)
		assert.InDelta(t, 2.0/4.0, cv["x"], tolerance)
		assert.True(t, math.IsInf(cv["zero_mean"], 1))
	})

	t.Run("selected column", func(t *testing.T) {
		cv, err := stats.CoefficientOfVariation(df, "x")
		require.NoError(t, err)
		assert.Len(t, cv, 1)
	})

	t.Run("non numeric", func(t *testing.T) {
		_, err := stats.CoefficientOfVariation(df, "label")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := stats.CoefficientOfVariation(df, "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "column does not exist")
	})
}

func TestZScore(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	df := dataframe.New(
		series.NewNullable("x", []float64{1, 2, 3, 4, 0}, []bool{true, true, true, true, false}, mem),
		series.New("constant", []int64{5, 5, 5, 5, 5}, mem),
		series.New("label", []string{"a", "b", "c", "d", "e"}, mem),
	)
	defer df.Release()

	z := stats.ZScore(df, mem)
	defer z.Release()

	assert.Equal(t, []string{"x", "constant"}, z.Columns())
	assert.Equal(t, df.Len(), z.Len())

	values, missing, ok := z.Float64Values("x")
	require.True(t, ok)
	assert.True(t, missing[4], "missing input stays missing")

	kept := values[:4]
	mean, std := stat.MeanStdDev(kept, nil)
	assert.InDelta(t, 0.0, mean, 1e-12)
	assert.InDelta(t, 1.0, std, 1e-12)

	constant, _ := z.Column("constant")
	arr := constant.Array()
	defer arr.Release()
	scores, ok := arr.(*array.Float64)
	require.True(t, ok)
	for i := range scores.Len() {
		assert.False(t, scores.IsNull(i))
		assert.True(t, math.IsNaN(scores.Value(i)), "row %d", i)
	}
}

func TestDensityCurve(t *testing.T) {
	t.Run("gaussian fit", func(t *testing.T) {
		values := []float64{1, 2, 3, 4, 5, math.NaN()}
		xs, ys, err := stats.DensityCurve(values, stats.DefaultGridSize)
		require.NoError(t, err)

		require.Len(t, xs, stats.DefaultGridSize)
		require.Len(t, ys, stats.DefaultGridSize)
		assert.InDelta(t, 1.0, xs[0], tolerance)
		assert.InDelta(t, 5.0, xs[len(xs)-1], tolerance)

		// symmetric sample: density peaks mid-grid and mirrors
		assert.InDelta(t, ys[0], ys[len(ys)-1], 1e-12)
		for _, y := range ys {
			assert.Positive(t, y)
		}
		sigma := math.Sqrt(2.5)
		assert.InDelta(t, 1/(sigma*math.Sqrt(2*math.Pi))*math.Exp(-4/(2*2.5)), ys[0], 1e-12)
	})

	t.Run("zero std", func(t *testing.T) {
		xs, ys, err := stats.DensityCurve([]float64{3, 3, 3}, 5)
		require.NoError(t, err)
		testutil.AssertFloatsEqual(t, []float64{3, 3, 3, 3, 3}, xs)
		for _, y := range ys {
			assert.True(t, math.IsNaN(y))
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		_, _, err := stats.DensityCurve([]float64{1, 2}, 1)
		require.Error(t, err)

		_, _, err = stats.DensityCurve([]float64{math.NaN()}, 10)
		require.Error(t, err)
	})
}

func TestCheckNormality(t *testing.T) {
	report, err := stats.CheckNormality([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)

	assert.InDelta(t, 5.0, report.Mean, tolerance)
	assert.InDelta(t, 4.5, report.Median, tolerance)
	assert.InDelta(t, 2.0, report.StdDev, tolerance)
	assert.False(t, report.MeanNearMedian)
	assert.InDelta(t, 0.75, report.WithinOneStd, tolerance)

	_, err = stats.CheckNormality(nil)
	require.Error(t, err)
}

func TestDescribe(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	df := testutil.CreateSurveyDataFrame(mem)
	defer df.Release()

	cache := stats.Build(df)

	summary, err := stats.Describe(cache, mem)
	require.NoError(t, err)
	defer summary.Release()

	assert.Equal(t, []string{"statistic", "Age (yrs)", "Score%"}, summary.Columns())
	assert.Equal(t, 8, summary.Len())

	labels, _ := summary.Column("statistic")
	labelArr := labels.Array()
	defer labelArr.Release()
	assert.Equal(t, "25%", labelArr.ValueStr(4))

	age, _, ok := summary.Float64Values("Age (yrs)")
	require.True(t, ok)
	cs, _ := cache.StatsFor("Age (yrs)")
	testutil.AssertFloatsEqual(t,
		[]float64{3, cs.Mean, cs.StdDev, 25, 25, 25, 27.5, 30}, age)

	_, err = stats.Describe(cache, mem, "Name")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
