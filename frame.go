// Package mindhunter wraps a tabular dataset, normalizes and cleans its columns,
// and keeps an eagerly built cache of descriptive statistics for every numeric
// column. This package is the sole public API for the library.
package mindhunter

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/mindhunter/internal/dataframe"
	mhio "github.com/paveg/mindhunter/internal/io"
	"github.com/paveg/mindhunter/internal/series"
)

// ISeries provides a type-erased interface for Series of any type
type ISeries interface {
	Name() string
	Len() int
	DataType() arrow.DataType
	IsNull(index int) bool
	String() string
	Array() arrow.Array
	Release()
}

// DataFrame is the public type for a DataFrame.
// It wraps the internal dataframe.DataFrame to hide implementation details.
type DataFrame struct {
	df *dataframe.DataFrame
}

// NewDataFrame creates a new DataFrame from ISeries. The DataFrame takes
// ownership of the series.
func NewDataFrame(series ...ISeries) *DataFrame {
	internalSeries := make([]dataframe.ISeries, len(series))
	for i, s := range series {
		internalSeries[i] = s
	}
	return &DataFrame{df: dataframe.New(internalSeries...)}
}

// NewSeries creates a new typed Series from values.
func NewSeries[T any](name string, values []T, mem memory.Allocator) ISeries {
	return series.New(name, values, mem)
}

// NewNullableSeries creates a new typed Series in which valid[i] == false marks
// values[i] as missing.
func NewNullableSeries[T any](name string, values []T, valid []bool, mem memory.Allocator) ISeries {
	return series.NewNullable(name, values, valid, mem)
}

// DataFrame methods

// Columns returns the column names in order.
func (d *DataFrame) Columns() []string {
	return d.df.Columns()
}

// Len returns the number of rows.
func (d *DataFrame) Len() int {
	return d.df.Len()
}

// Width returns the number of columns.
func (d *DataFrame) Width() int {
	return d.df.Width()
}

// Column returns the column with the given name.
func (d *DataFrame) Column(name string) (ISeries, bool) {
	return d.df.Column(name)
}

// HasColumn returns true if the DataFrame has the given column.
func (d *DataFrame) HasColumn(name string) bool {
	return d.df.HasColumn(name)
}

// Float64Values returns a numeric column as float64 values plus a missing mask.
func (d *DataFrame) Float64Values(name string) ([]float64, []bool, bool) {
	return d.df.Float64Values(name)
}

// String returns a string representation of the DataFrame.
func (d *DataFrame) String() string {
	return d.df.String()
}

// WriteCSV writes the DataFrame, with a header row, as delimited text.
// Missing values become empty cells.
func (d *DataFrame) WriteCSV(w io.Writer, delimiter rune) error {
	options := mhio.DefaultCSVOptions()
	options.Delimiter = delimiter
	return mhio.NewCSVWriter(w, options).Write(d.df)
}

// WriteParquet writes the DataFrame as a snappy-compressed Parquet file.
func (d *DataFrame) WriteParquet(w io.Writer) error {
	return mhio.NewParquetWriter(w, mhio.DefaultParquetOptions()).Write(d.df)
}

// Release frees the memory used by the DataFrame.
func (d *DataFrame) Release() {
	d.df.Release()
}
