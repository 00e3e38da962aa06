package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/paveg/mindhunter/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataFrameErrorMessage(t *testing.T) {
	cause := stderrors.New("disk full")

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "not found",
			err:      errors.NewNotFoundError("StatsFor", "age"),
			expected: "StatsFor operation failed on column 'age': no statistics for column",
		},
		{
			name:     "with hint",
			err:      errors.NewNotFoundError("StatsFor", "name").WithHint("column is not numeric"),
			expected: "StatsFor operation failed on column 'name': no statistics for column. Hint: column is not numeric",
		},
		{
			name:     "invalid input",
			err:      errors.NewInvalidInputError("DensityCurve", "no observations"),
			expected: "DensityCurve operation failed: no observations",
		},
		{
			name:     "unsupported type",
			err:      errors.NewUnsupportedTypeError("LoadFile", ".txt"),
			expected: "LoadFile operation failed: unsupported type: .txt",
		},
		{
			name:     "internal with cause",
			err:      errors.NewInternalError("ReadCSV", cause),
			expected: "ReadCSV operation failed: internal error occurred: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestKindPredicates(t *testing.T) {
	notFound := errors.NewNotFoundError("StatsFor", "x")
	missingColumn := errors.NewColumnNotFoundError("DensityCurve", "x")
	validation := errors.NewValidationError("Clean", "a_b", "collision")

	assert.True(t, errors.IsNotFound(notFound))
	assert.True(t, errors.IsNotFound(missingColumn))
	assert.False(t, errors.IsNotFound(validation))
	assert.True(t, errors.IsValidation(validation))
	assert.False(t, errors.IsValidation(nil))

	wrapped := fmt.Errorf("loading: %w", notFound)
	assert.True(t, errors.IsNotFound(wrapped))
}

func TestIsAndUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := errors.NewInternalError("LoadFile", cause)

	require.ErrorIs(t, err, cause)
	require.ErrorIs(t, err, errors.NewInternalError("LoadFile", nil))
	assert.NotErrorIs(t, err, errors.NewInternalError("ReadCSV", nil))

	hinted := errors.NewNotFoundError("StatsFor", "x").WithHint("h")
	assert.ErrorIs(t, hinted, errors.NewNotFoundError("StatsFor", "x"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not found", errors.KindNotFound.String())
	assert.Equal(t, "validation", errors.KindValidation.String())
	assert.Equal(t, "unknown", errors.Kind(99).String())
}
