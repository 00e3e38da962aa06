// Package dataframe provides the Arrow-backed table that the analyzer wraps.
//
// A DataFrame is not safe for concurrent use. Operations that change rows
// (DropMissing, DropDuplicates, Take, Clone) return a new DataFrame and leave
// the receiver untouched; the caller owns the result and must Release it.
package dataframe

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	dferrors "github.com/paveg/mindhunter/internal/errors"
	"github.com/paveg/mindhunter/internal/series"
)

// DataFrame represents a table of data with typed columns
type DataFrame struct {
	columns map[string]ISeries
	order   []string // Maintains column order
}

// New creates a new DataFrame from a slice of ISeries.
// The DataFrame takes ownership of the series. A repeated column name is
// disambiguated as UniqueNames does, so no series is lost.
func New(series ...ISeries) *DataFrame {
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name()
	}
	unique := UniqueNames(names)

	columns := make(map[string]ISeries, len(series))
	order := make([]string, 0, len(series))

	for i, s := range series {
		if unique[i] != names[i] {
			renamed := share(unique[i], s)
			s.Release()
			s = renamed
		}
		columns[unique[i]] = s
		order = append(order, unique[i])
	}

	return &DataFrame{
		columns: columns,
		order:   order,
	}
}

// UniqueNames returns names with repeats suffixed ".1", ".2" and so on in order
// of appearance. A suffixed name that is already taken is skipped.
func UniqueNames(names []string) []string {
	out := make([]string, len(names))
	taken := make(map[string]struct{}, len(names))
	for _, name := range names {
		taken[name] = struct{}{}
	}

	seen := make(map[string]struct{}, len(names))
	next := make(map[string]int)
	for i, name := range names {
		candidate := name
		if _, dup := seen[name]; dup {
			for {
				next[name]++
				candidate = fmt.Sprintf("%s.%d", name, next[name])
				_, used := seen[candidate]
				_, reserved := taken[candidate]
				if !used && !reserved {
					break
				}
			}
		}
		seen[candidate] = struct{}{}
		out[i] = candidate
	}
	return out
}

// Columns returns the names of all columns in order
func (df *DataFrame) Columns() []string {
	if len(df.order) == 0 {
		return []string{}
	}
	return append([]string(nil), df.order...)
}

// Len returns the number of rows (assumes all columns have same length)
func (df *DataFrame) Len() int {
	if len(df.order) == 0 {
		return 0
	}
	return df.columns[df.order[0]].Len()
}

// Width returns the number of columns
func (df *DataFrame) Width() int {
	return len(df.order)
}

// Column returns the series for the given column name
func (df *DataFrame) Column(name string) (ISeries, bool) {
	series, exists := df.columns[name]
	return series, exists
}

// HasColumn checks if a column exists
func (df *DataFrame) HasColumn(name string) bool {
	_, exists := df.columns[name]
	return exists
}

// Select returns a new DataFrame with only the specified columns, in the order given.
// Unknown names are skipped. The result shares the immutable Arrow buffers with df
// but holds its own references, so it must be released independently.
func (df *DataFrame) Select(names ...string) *DataFrame {
	selected := make([]ISeries, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if seen[name] {
			continue
		}
		if s, exists := df.columns[name]; exists {
			selected = append(selected, share(name, s))
			seen[name] = true
		}
	}

	return New(selected...)
}

// Rename returns a new DataFrame whose columns carry the given names, position by position.
// Two columns may not end up with the same name.
func (df *DataFrame) Rename(names []string) (*DataFrame, error) {
	if len(names) != len(df.order) {
		return nil, dferrors.NewInvalidInputError("Rename",
			fmt.Sprintf("expected %d column names, got %d", len(df.order), len(names)))
	}

	firstSource := make(map[string]string, len(names))
	for i, name := range names {
		if prev, dup := firstSource[name]; dup {
			return nil, dferrors.NewValidationError("Rename", name,
				fmt.Sprintf("columns %q and %q both map to this name", prev, df.order[i]))
		}
		firstSource[name] = df.order[i]
	}

	renamed := make([]ISeries, len(names))
	for i, old := range df.order {
		renamed[i] = share(names[i], df.columns[old])
	}
	return New(renamed...), nil
}

// Clone returns a deep copy of the DataFrame backed by freshly allocated buffers.
func (df *DataFrame) Clone(mem memory.Allocator) *DataFrame {
	indices := make([]int, df.Len())
	for i := range indices {
		indices[i] = i
	}
	return df.Take(indices, mem)
}

// Take returns a new DataFrame holding the given rows, in the given order.
func (df *DataFrame) Take(indices []int, mem memory.Allocator) *DataFrame {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	taken := make([]ISeries, 0, len(df.order))
	for _, name := range df.order {
		taken = append(taken, takeSeries(df.columns[name], indices, mem))
	}
	return New(taken...)
}

// DropMissing returns a new DataFrame without the rows that hold a missing value in any column.
func (df *DataFrame) DropMissing(mem memory.Allocator) *DataFrame {
	arrays := df.arrays()
	defer releaseAll(arrays)

	keep := make([]int, 0, df.Len())
	for row := 0; row < df.Len(); row++ {
		if !rowHasMissing(arrays, row) {
			keep = append(keep, row)
		}
	}
	return df.Take(keep, mem)
}

// NumericColumns returns the names of the numeric columns, in order.
func (df *DataFrame) NumericColumns() []string {
	names := make([]string, 0, len(df.order))
	for _, name := range df.order {
		if series.IsNumeric(df.columns[name].DataType()) {
			names = append(names, name)
		}
	}
	return names
}

// Float64Values returns a numeric column converted to float64 together with its
// missing mask. ok is false if the column is absent or not numeric.
func (df *DataFrame) Float64Values(name string) (values []float64, missing []bool, ok bool) {
	s, exists := df.columns[name]
	if !exists || !series.IsNumeric(s.DataType()) {
		return nil, nil, false
	}

	arr := s.Array()
	defer arr.Release()

	values = make([]float64, arr.Len())
	missing = make([]bool, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		if series.IsMissing(arr, i) {
			missing[i] = true
			continue
		}
		values[i], _ = series.Float64At(arr, i)
	}
	return values, missing, true
}

// String returns a string representation of the DataFrame
func (df *DataFrame) String() string {
	if len(df.columns) == 0 {
		return "DataFrame[empty]"
	}

	parts := []string{fmt.Sprintf("DataFrame[%dx%d]", df.Len(), df.Width())}

	for _, name := range df.order {
		series := df.columns[name]
		parts = append(parts, fmt.Sprintf("  %s: %s", name, series.DataType().String()))
	}

	return strings.Join(parts, "\n")
}

// Release releases all underlying Arrow memory
func (df *DataFrame) Release() {
	for _, series := range df.columns {
		series.Release()
	}
}

// arrays returns retained arrays for every column in order.
func (df *DataFrame) arrays() []arrow.Array {
	arrays := make([]arrow.Array, len(df.order))
	for i, name := range df.order {
		arrays[i] = df.columns[name].Array()
	}
	return arrays
}

func releaseAll(arrays []arrow.Array) {
	for _, arr := range arrays {
		arr.Release()
	}
}

func rowHasMissing(arrays []arrow.Array, row int) bool {
	for _, arr := range arrays {
		if series.IsMissing(arr, row) {
			return true
		}
	}
	return false
}

// share wraps the Arrow array behind s in a new series called name.
func share(name string, s ISeries) ISeries {
	arr := s.Array()
	defer arr.Release()
	return Wrap(name, arr)
}

// Wrap builds a series over an existing Arrow array. The series retains its own
// reference. Unsupported array types fall back to their string rendering.
func Wrap(name string, arr arrow.Array) ISeries {
	switch arr.(type) {
	case *array.String:
		return series.FromArray[string](name, arr)
	case *array.Int64:
		return series.FromArray[int64](name, arr)
	case *array.Int32:
		return series.FromArray[int32](name, arr)
	case *array.Float64:
		return series.FromArray[float64](name, arr)
	case *array.Float32:
		return series.FromArray[float32](name, arr)
	case *array.Boolean:
		return series.FromArray[bool](name, arr)
	default:
		values := make([]string, arr.Len())
		valid := make([]bool, arr.Len())
		for i := range values {
			if arr.IsValid(i) {
				values[i] = arr.ValueStr(i)
				valid[i] = true
			}
		}
		return series.NewNullable(name, values, valid, memory.NewGoAllocator())
	}
}

// takeSeries copies the given rows of s into a new series, keeping nulls.
func takeSeries(s ISeries, indices []int, mem memory.Allocator) ISeries {
	arr := s.Array()
	defer arr.Release()

	switch typedArr := arr.(type) {
	case *array.String:
		return takeTyped(s.Name(), typedArr, indices, mem, typedArr.Value)
	case *array.Int64:
		return takeTyped(s.Name(), typedArr, indices, mem, typedArr.Value)
	case *array.Int32:
		return takeTyped(s.Name(), typedArr, indices, mem, typedArr.Value)
	case *array.Float64:
		return takeTyped(s.Name(), typedArr, indices, mem, typedArr.Value)
	case *array.Float32:
		return takeTyped(s.Name(), typedArr, indices, mem, typedArr.Value)
	case *array.Boolean:
		return takeTyped(s.Name(), typedArr, indices, mem, typedArr.Value)
	default:
		converted := Wrap(s.Name(), arr)
		defer converted.Release()
		return takeSeries(converted, indices, mem)
	}
}

// takeTyped is a generic helper for copying selected rows of a typed array
func takeTyped[T any](
	name string, arr arrow.Array, indices []int, mem memory.Allocator, getValue func(int) T,
) ISeries {
	values := make([]T, len(indices))
	valid := make([]bool, len(indices))
	for i, src := range indices {
		if arr.IsValid(src) {
			values[i] = getValue(src)
			valid[i] = true
		}
	}
	return series.NewNullable(name, values, valid, mem)
}
