package mindhunter_test

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/mindhunter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlottableDelegates(t *testing.T) {
	a, _ := newAnalyzer(t)
	p := mindhunter.NewPlottable(a)

	assert.Same(t, a, p.Analyzer())

	want, err := a.StatsFor("Age (yrs)")
	require.NoError(t, err)
	got, err := p.Stats("Age (yrs)")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = p.Stats("Name")
	assert.True(t, mindhunter.IsNotFound(err))

	xs, ys, err := p.DensityCurve("Score%")
	require.NoError(t, err)
	assert.Len(t, xs, len(ys))

	view := p.DataFrame()
	defer view.Release()
	assert.Equal(t, a.Columns(), view.Columns())
}

func TestPlottableSeesRebuilds(t *testing.T) {
	a, _ := newAnalyzer(t)
	p := mindhunter.NewPlottable(a)

	require.NoError(t, a.Clean())
	a.Rebuild()

	cs, err := p.Stats("age__yrs_")
	require.NoError(t, err)
	assert.Equal(t, 3, cs.Count)
}

func TestPlottableUpdate(t *testing.T) {
	a, _ := newAnalyzer(t)
	p := mindhunter.NewPlottable(a)

	mem := memory.NewGoAllocator()
	df := mindhunter.NewDataFrame(mindhunter.NewSeries("w", []int64{1, 2, 3}, mem))
	defer df.Release()
	b, err := mindhunter.New(df)
	require.NoError(t, err)
	defer b.Release()

	p.Update(b)
	assert.Same(t, b, p.Analyzer())

	cs, err := p.Stats("w")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, cs.Mean, tolerance)

	// the old analyzer is untouched
	_, err = a.StatsFor("Age (yrs)")
	require.NoError(t, err)
}
