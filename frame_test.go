package mindhunter_test

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/mindhunter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataFrameAccessors(t *testing.T) {
	df := surveyFrame(memory.NewGoAllocator())
	defer df.Release()

	assert.Equal(t, 5, df.Len())
	assert.Equal(t, 3, df.Width())
	assert.True(t, df.HasColumn("Score%"))

	col, ok := df.Column("Score%")
	require.True(t, ok)
	assert.True(t, col.IsNull(4))

	_, _, ok = df.Float64Values("Name")
	assert.False(t, ok)
	assert.Contains(t, df.String(), "Score%")
}

func TestDataFrameWriteCSV(t *testing.T) {
	mem := memory.NewGoAllocator()
	df := mindhunter.NewDataFrame(
		mindhunter.NewSeries("a", []int64{1, 2}, mem),
		mindhunter.NewNullableSeries("b", []string{"x", ""}, []bool{true, false}, mem),
	)
	defer df.Release()

	var buf bytes.Buffer
	require.NoError(t, df.WriteCSV(&buf, '\t'))
	assert.Equal(t, "a\tb\n1\tx\n2\t\n", buf.String())
}
