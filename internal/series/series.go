// Package series provides data structures for column operations
package series

import (
	"fmt"
	"math"
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Series represents a typed data column with Apache Arrow backend.
// Missing values are stored as Arrow nulls.
type Series[T any] struct {
	name  string
	array arrow.Array
}

// New creates a new Series from a slice of values with no missing entries.
func New[T any](name string, values []T, mem memory.Allocator) *Series[T] {
	return NewNullable(name, values, nil, mem)
}

// NewNullable creates a new Series from a slice of values and a validity mask.
// valid[i] == false marks values[i] as missing. A nil mask means every value is valid.
func NewNullable[T any](name string, values []T, valid []bool, mem memory.Allocator) *Series[T] {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	if valid != nil && len(valid) != len(values) {
		panic(fmt.Sprintf("validity mask length %d does not match %d values", len(valid), len(values)))
	}

	var arr arrow.Array

	// Use type switching to create appropriate Arrow array
	switch v := any(values).(type) {
	case []string:
		builder := array.NewStringBuilder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	case []int64:
		builder := array.NewInt64Builder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	case []int32:
		builder := array.NewInt32Builder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	case []float64:
		builder := array.NewFloat64Builder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	case []float32:
		builder := array.NewFloat32Builder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	case []bool:
		builder := array.NewBooleanBuilder(mem)
		defer builder.Release()
		builder.AppendValues(v, valid)
		arr = builder.NewArray()
	default:
		panic(fmt.Sprintf("unsupported type: %T", values))
	}

	return &Series[T]{
		name:  name,
		array: arr,
	}
}

// FromArray wraps an existing Arrow array. The series retains its own reference,
// so the caller keeps ownership of arr and must still release it.
func FromArray[T any](name string, arr arrow.Array) *Series[T] {
	arr.Retain()
	return &Series[T]{
		name:  name,
		array: arr,
	}
}

// Name returns the column name
func (s *Series[T]) Name() string {
	return s.name
}

// Len returns the length of the series
func (s *Series[T]) Len() int {
	return s.array.Len()
}

// NullN returns the number of null entries.
func (s *Series[T]) NullN() int {
	return s.array.NullN()
}

// Values returns the data as a Go slice. Null entries hold the zero value.
func (s *Series[T]) Values() []T {
	result := make([]T, s.array.Len())
	for i := range result {
		result[i] = s.Value(i)
	}
	return result
}

// Value returns the value at the given index, or the zero value for nulls and
// out-of-range indexes.
func (s *Series[T]) Value(index int) T {
	var result T
	if index < 0 || index >= s.array.Len() || s.array.IsNull(index) {
		return result
	}

	switch arr := s.array.(type) {
	case *array.String:
		if v, ok := any(&result).(*string); ok {
			*v = arr.Value(index)
		}
	case *array.Int64:
		if v, ok := any(&result).(*int64); ok {
			*v = arr.Value(index)
		}
	case *array.Int32:
		if v, ok := any(&result).(*int32); ok {
			*v = arr.Value(index)
		}
	case *array.Float64:
		if v, ok := any(&result).(*float64); ok {
			*v = arr.Value(index)
		}
	case *array.Float32:
		if v, ok := any(&result).(*float32); ok {
			*v = arr.Value(index)
		}
	case *array.Boolean:
		if v, ok := any(&result).(*bool); ok {
			*v = arr.Value(index)
		}
	}

	return result
}

// DataType returns the Arrow data type
func (s *Series[T]) DataType() arrow.DataType {
	return s.array.DataType()
}

// IsNull checks if the value at index is null
func (s *Series[T]) IsNull(index int) bool {
	return s.array.IsNull(index)
}

// IsMissing reports whether the value at index is null, or NaN in a floating column.
func (s *Series[T]) IsMissing(index int) bool {
	return IsMissing(s.array, index)
}

// String returns a string representation of the series
func (s *Series[T]) String() string {
	return fmt.Sprintf("Series[%s]: %s (len=%d)",
		reflect.TypeOf(new(T)).Elem().Name(),
		s.name,
		s.Len())
}

// Array returns the underlying Arrow array (retains a reference)
func (s *Series[T]) Array() arrow.Array {
	if s.array != nil {
		s.array.Retain()
		return s.array
	}
	return nil
}

// Release releases the underlying Arrow memory
func (s *Series[T]) Release() {
	if s.array != nil {
		s.array.Release()
	}
}

// IsMissing reports whether arr[index] is null, or NaN in a floating array.
func IsMissing(arr arrow.Array, index int) bool {
	if arr.IsNull(index) {
		return true
	}
	switch a := arr.(type) {
	case *array.Float64:
		return math.IsNaN(a.Value(index))
	case *array.Float32:
		return math.IsNaN(float64(a.Value(index)))
	}
	return false
}

// IsNumeric reports whether values of the given type take part in numeric statistics.
// Booleans are treated as categorical.
func IsNumeric(dt arrow.DataType) bool {
	switch dt.ID() {
	case arrow.INT64, arrow.INT32, arrow.FLOAT64, arrow.FLOAT32:
		return true
	default:
		return false
	}
}

// Float64At converts a numeric array value to float64. ok is false for nulls and
// non-numeric arrays.
func Float64At(arr arrow.Array, index int) (float64, bool) {
	if arr.IsNull(index) {
		return 0, false
	}
	switch a := arr.(type) {
	case *array.Int64:
		return float64(a.Value(index)), true
	case *array.Int32:
		return float64(a.Value(index)), true
	case *array.Float64:
		return a.Value(index), true
	case *array.Float32:
		return float64(a.Value(index)), true
	default:
		return 0, false
	}
}
