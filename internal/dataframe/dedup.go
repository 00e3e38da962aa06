package dataframe

import (
	"encoding/binary"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/cespare/xxhash/v2"
)

// DropDuplicates returns a new DataFrame in which every row appears once.
// The first occurrence of a duplicated row is kept and row order is preserved.
func (df *DataFrame) DropDuplicates(mem memory.Allocator) *DataFrame {
	arrays := df.arrays()
	defer releaseAll(arrays)

	rows := df.Len()
	buckets := make(map[uint64][]int, rows)
	keep := make([]int, 0, rows)

	digest := xxhash.New()
	var scratch [8]byte

	for row := 0; row < rows; row++ {
		digest.Reset()
		for _, arr := range arrays {
			hashCell(digest, arr, row, scratch[:])
		}
		key := digest.Sum64()

		duplicate := false
		for _, prev := range buckets[key] {
			if rowsEqual(arrays, prev, row) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		buckets[key] = append(buckets[key], row)
		keep = append(keep, row)
	}

	return df.Take(keep, mem)
}

// hashCell feeds one cell into the digest. Nulls and values are tagged so that
// a null never hashes like a zero value.
func hashCell(digest *xxhash.Digest, arr arrow.Array, row int, scratch []byte) {
	if arr.IsNull(row) {
		_, _ = digest.Write([]byte{0})
		return
	}
	_, _ = digest.Write([]byte{1})

	switch a := arr.(type) {
	case *array.Int64:
		binary.LittleEndian.PutUint64(scratch, uint64(a.Value(row)))
		_, _ = digest.Write(scratch)
	case *array.Int32:
		binary.LittleEndian.PutUint64(scratch, uint64(a.Value(row)))
		_, _ = digest.Write(scratch)
	case *array.Float64:
		binary.LittleEndian.PutUint64(scratch, math.Float64bits(canonicalFloat(a.Value(row))))
		_, _ = digest.Write(scratch)
	case *array.Float32:
		binary.LittleEndian.PutUint64(scratch, math.Float64bits(canonicalFloat(float64(a.Value(row)))))
		_, _ = digest.Write(scratch)
	case *array.Boolean:
		if a.Value(row) {
			_, _ = digest.Write([]byte{1})
		} else {
			_, _ = digest.Write([]byte{0})
		}
	case *array.String:
		value := a.Value(row)
		binary.LittleEndian.PutUint64(scratch, uint64(len(value)))
		_, _ = digest.Write(scratch)
		_, _ = digest.WriteString(value)
	default:
		_, _ = digest.WriteString(arr.ValueStr(row))
	}
}

// rowsEqual compares two rows cell by cell; it settles hash collisions.
func rowsEqual(arrays []arrow.Array, a, b int) bool {
	for _, arr := range arrays {
		if arr.IsNull(a) || arr.IsNull(b) {
			if arr.IsNull(a) != arr.IsNull(b) {
				return false
			}
			continue
		}
		switch f := arr.(type) {
		case *array.Float64:
			if !floatsEqual(f.Value(a), f.Value(b)) {
				return false
			}
		case *array.Float32:
			if !floatsEqual(float64(f.Value(a)), float64(f.Value(b))) {
				return false
			}
		default:
			if arr.ValueStr(a) != arr.ValueStr(b) {
				return false
			}
		}
	}
	return true
}

// canonicalFloat folds -0 into 0 and every NaN payload into one NaN.
func canonicalFloat(v float64) float64 {
	switch {
	case v == 0:
		return 0
	case math.IsNaN(v):
		return math.NaN()
	}
	return v
}

func floatsEqual(x, y float64) bool {
	return x == y || (math.IsNaN(x) && math.IsNaN(y))
}
