package validation_test

import (
	"testing"

	"github.com/paveg/mindhunter/internal/errors"
	"github.com/paveg/mindhunter/internal/testutil"
	"github.com/paveg/mindhunter/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	df := testutil.CreateSurveyDataFrame(mem)
	defer df.Release()

	tests := []struct {
		name    string
		request []string
		valid   []string
		invalid []string
	}{
		{"all known", []string{"Name", "Score%"}, []string{"Name", "Score%"}, []string{}},
		{"mixed", []string{"Age (yrs)", "unknown_col"}, []string{"Age (yrs)"}, []string{"unknown_col"}},
		{"repeats dropped", []string{"x", "Name", "x", "Name"}, []string{"Name"}, []string{"x"}},
		{"empty", nil, []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := validation.Partition(df, tt.request...)
			assert.Equal(t, tt.valid, sel.Valid)
			assert.Equal(t, tt.invalid, sel.Invalid)
		})
	}
}

func TestValidateColumns(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	df := testutil.CreateSurveyDataFrame(mem)
	defer df.Release()

	require.NoError(t, validation.ValidateColumns(df, "DensityCurve", "Score%"))

	err := validation.ValidateColumns(df, "DensityCurve", "Score%", "nope")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "'nope'")
}

func TestValidateLength(t *testing.T) {
	require.NoError(t, validation.ValidateLength(3, 3, "ReadCSV", "row 1"))

	err := validation.ValidateLength(2, 3, "ReadCSV", "row 4")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, err.Error(), "row 4: expected length 2, got 3")
}
