// Package testutil holds the fixtures shared by the package tests: an
// allocator, a small survey dataset with missing values and duplicates, and
// DataFrame assertions.
package testutil

import (
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/mindhunter/internal/dataframe"
	"github.com/paveg/mindhunter/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tolerance for float comparisons of computed statistics.
const Tolerance = 1e-9

// SetupMemoryTest returns the allocator used by a test.
func SetupMemoryTest(tb testing.TB) memory.Allocator {
	tb.Helper()
	return memory.NewGoAllocator()
}

// SurveyOption configures CreateSurveyDataFrame.
type SurveyOption func(*surveyConfig)

type surveyConfig struct {
	withMissing    bool
	withDuplicates bool
}

// WithMissing adds a row whose score is missing.
func WithMissing() SurveyOption {
	return func(cfg *surveyConfig) {
		cfg.withMissing = true
	}
}

// WithDuplicates repeats the first row at the end of the data.
func WithDuplicates() SurveyOption {
	return func(cfg *surveyConfig) {
		cfg.withDuplicates = true
	}
}

// CreateSurveyDataFrame builds a dataset with raw, unnormalized headers:
//
//	Name (string), "Age (yrs)" (int64), "Score%" (float64)
//	Alice 25 88.5
//	Bob   30 92.0
//	Cara  25 79.5
func CreateSurveyDataFrame(mem memory.Allocator, opts ...SurveyOption) *dataframe.DataFrame {
	cfg := &surveyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	names := []string{"Alice", "Bob", "Cara"}
	ages := []int64{25, 30, 25}
	scores := []float64{88.5, 92.0, 79.5}
	valid := []bool{true, true, true}

	if cfg.withMissing {
		names = append(names, "Dan")
		ages = append(ages, 41)
		scores = append(scores, 0)
		valid = append(valid, false)
	}
	if cfg.withDuplicates {
		names = append(names, names[0])
		ages = append(ages, ages[0])
		scores = append(scores, scores[0])
		valid = append(valid, true)
	}

	return dataframe.New(
		series.New("Name", names, mem),
		series.New("Age (yrs)", ages, mem),
		series.NewNullable("Score%", scores, valid, mem),
	)
}

// AssertDataFrameEqual compares shape, column order and every cell.
func AssertDataFrameEqual(t *testing.T, expected, actual *dataframe.DataFrame) {
	t.Helper()

	require.NotNil(t, expected, "expected DataFrame should not be nil")
	require.NotNil(t, actual, "actual DataFrame should not be nil")

	require.Equal(t, expected.Columns(), actual.Columns(), "DataFrame columns should match")
	require.Equal(t, expected.Len(), actual.Len(), "DataFrame lengths should match")

	for _, name := range expected.Columns() {
		wantCol, _ := expected.Column(name)
		gotCol, _ := actual.Column(name)
		assert.Equal(t, wantCol.DataType().ID(), gotCol.DataType().ID(), "column %s type should match", name)

		want, got := wantCol.Array(), gotCol.Array()
		for i := range expected.Len() {
			assert.Equal(t, want.IsNull(i), got.IsNull(i), "column %s row %d null", name, i)
			if !want.IsNull(i) {
				assert.Equal(t, want.ValueStr(i), got.ValueStr(i), "column %s row %d", name, i)
			}
		}
		want.Release()
		got.Release()
	}
}

// AssertFloatsEqual compares float slices treating NaN as equal to NaN.
func AssertFloatsEqual(t *testing.T, expected, actual []float64) {
	t.Helper()

	require.Len(t, actual, len(expected))
	for i := range expected {
		if math.IsNaN(expected[i]) {
			assert.True(t, math.IsNaN(actual[i]), "index %d: expected NaN, got %v", i, actual[i])
			continue
		}
		assert.InDelta(t, expected[i], actual[i], Tolerance, "index %d", i)
	}
}
