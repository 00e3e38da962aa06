// Package io provides the ingestion layer that turns files into DataFrames.
//
// Key components:
//   - DataReader/DataWriter interfaces for pluggable I/O backends
//   - CSVReader/CSVWriter for delimited text
//   - ExcelReader for .xlsx workbooks
//   - ParquetReader/ParquetWriter for Parquet files
//   - Type inference shared by the text-based readers, with configurable
//     missing-value tokens that become Arrow nulls
//
// Memory management: All I/O operations integrate with Apache Arrow's
// memory management system and require proper cleanup with defer patterns.
package io

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/mindhunter/internal/dataframe"
)

// DataReader defines the interface for reading data from various sources
type DataReader interface {
	// Read reads data from the source and returns a DataFrame
	Read() (*dataframe.DataFrame, error)
}

// DataWriter defines the interface for writing data to various destinations
type DataWriter interface {
	// Write writes the DataFrame to the destination
	Write(df *dataframe.DataFrame) error
}

// DefaultMissingValues are the cell contents read as missing by default.
var DefaultMissingValues = []string{"", "NA", "N/A", "NaN", "null"}

// CSVOptions contains configuration options for CSV operations
type CSVOptions struct {
	// Delimiter is the field delimiter (default: comma)
	Delimiter rune
	// Comment is the comment character (default: 0 = disabled)
	Comment rune
	// Header indicates whether the first row contains headers
	Header bool
	// SkipInitialSpace indicates whether to skip initial whitespace
	SkipInitialSpace bool
	// MissingValues lists cell contents read as missing
	MissingValues []string
}

// DefaultCSVOptions returns default CSV options
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:        ',',
		Comment:          0,
		Header:           true,
		SkipInitialSpace: false,
		MissingValues:    DefaultMissingValues,
	}
}

// CSVReader reads CSV data and converts it to DataFrames
type CSVReader struct {
	reader  io.Reader
	options CSVOptions
	mem     memory.Allocator
}

// NewCSVReader creates a new CSV reader with the specified options
func NewCSVReader(reader io.Reader, options CSVOptions, mem memory.Allocator) *CSVReader {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &CSVReader{
		reader:  reader,
		options: options,
		mem:     mem,
	}
}

// CSVWriter writes DataFrames to CSV format
type CSVWriter struct {
	writer  io.Writer
	options CSVOptions
}

// NewCSVWriter creates a new CSV writer with the specified options
func NewCSVWriter(writer io.Writer, options CSVOptions) *CSVWriter {
	return &CSVWriter{
		writer:  writer,
		options: options,
	}
}

// ExcelOptions contains configuration options for workbook reading
type ExcelOptions struct {
	// Sheet is the sheet to read (empty = first sheet)
	Sheet string
	// Header indicates whether the first row contains headers
	Header bool
	// MissingValues lists cell contents read as missing
	MissingValues []string
}

// DefaultExcelOptions returns default workbook options
func DefaultExcelOptions() ExcelOptions {
	return ExcelOptions{
		Header:        true,
		MissingValues: DefaultMissingValues,
	}
}

// ExcelReader reads .xlsx workbooks and converts a sheet to a DataFrame
type ExcelReader struct {
	reader  io.Reader
	options ExcelOptions
	mem     memory.Allocator
}

// NewExcelReader creates a new workbook reader with the specified options
func NewExcelReader(reader io.Reader, options ExcelOptions, mem memory.Allocator) *ExcelReader {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &ExcelReader{
		reader:  reader,
		options: options,
		mem:     mem,
	}
}

// ParquetReader reads Parquet data and converts it to DataFrames
type ParquetReader struct {
	reader io.Reader
	mem    memory.Allocator
}

// NewParquetReader creates a new Parquet reader
func NewParquetReader(reader io.Reader, mem memory.Allocator) *ParquetReader {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &ParquetReader{
		reader: reader,
		mem:    mem,
	}
}

// ParquetOptions contains configuration options for Parquet writing
type ParquetOptions struct {
	// Compression is one of snappy, gzip, zstd or uncompressed (default: snappy)
	Compression string
}

// DefaultParquetOptions returns default Parquet options
func DefaultParquetOptions() ParquetOptions {
	return ParquetOptions{Compression: "snappy"}
}

// ParquetWriter writes DataFrames to Parquet format
type ParquetWriter struct {
	writer  io.Writer
	options ParquetOptions
}

// NewParquetWriter creates a new Parquet writer with the specified options
func NewParquetWriter(writer io.Writer, options ParquetOptions) *ParquetWriter {
	return &ParquetWriter{
		writer:  writer,
		options: options,
	}
}
