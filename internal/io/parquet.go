package io

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/paveg/mindhunter/internal/dataframe"
)

// Read reads Parquet data and returns a DataFrame. Nulls are preserved.
func (r *ParquetReader) Read() (*dataframe.DataFrame, error) {
	// Read all data into memory for Parquet reading
	data, err := io.ReadAll(r.reader)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}

	pqReader, err := file.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating parquet file reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, r.mem)
	if err != nil {
		return nil, fmt.Errorf("creating arrow file reader: %w", err)
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	defer table.Release()

	return r.tableToDataFrame(table)
}

// tableToDataFrame converts an Arrow table to a DataFrame, one series per column.
func (r *ParquetReader) tableToDataFrame(table arrow.Table) (*dataframe.DataFrame, error) {
	schema := table.Schema()
	seriesList := make([]dataframe.ISeries, 0, table.NumCols())

	for i := 0; i < int(table.NumCols()); i++ {
		field := schema.Field(i)
		arr, err := r.concatChunks(table.Column(i))
		if err != nil {
			for _, s := range seriesList {
				s.Release()
			}
			return nil, fmt.Errorf("converting column %s: %w", field.Name, err)
		}
		seriesList = append(seriesList, dataframe.Wrap(field.Name, arr))
		arr.Release()
	}

	return dataframe.New(seriesList...), nil
}

// concatChunks flattens a chunked column into a single array.
func (r *ParquetReader) concatChunks(column *arrow.Column) (arrow.Array, error) {
	chunks := column.Data().Chunks()
	if len(chunks) == 1 {
		chunks[0].Retain()
		return chunks[0], nil
	}
	if len(chunks) == 0 {
		return array.MakeArrayOfNull(r.mem, column.DataType(), 0), nil
	}
	return array.Concatenate(chunks, r.mem)
}

// Write writes the DataFrame as a single-row-group Parquet file.
func (w *ParquetWriter) Write(df *dataframe.DataFrame) error {
	if df.Width() == 0 {
		return fmt.Errorf("writing parquet: DataFrame has no columns")
	}

	record := recordFromDataFrame(df)
	defer record.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(w.compression()))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(record.Schema(), w.writer, props, arrowProps)
	if err != nil {
		return fmt.Errorf("creating file writer: %w", err)
	}

	if err := writer.Write(record); err != nil {
		_ = writer.Close()
		return fmt.Errorf("writing record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing file writer: %w", err)
	}
	return nil
}

func (w *ParquetWriter) compression() compress.Compression {
	switch w.options.Compression {
	case "gzip":
		return compress.Codecs.Gzip
	case "zstd":
		return compress.Codecs.Zstd
	case "uncompressed":
		return compress.Codecs.Uncompressed
	default:
		return compress.Codecs.Snappy
	}
}

// recordFromDataFrame assembles the columns of df into one nullable record.
func recordFromDataFrame(df *dataframe.DataFrame) arrow.Record {
	fields := make([]arrow.Field, 0, df.Width())
	arrays := make([]arrow.Array, 0, df.Width())
	for _, name := range df.Columns() {
		column, _ := df.Column(name)
		arr := column.Array()
		fields = append(fields, arrow.Field{Name: name, Type: arr.DataType(), Nullable: true})
		arrays = append(arrays, arr)
	}

	record := array.NewRecord(arrow.NewSchema(fields, nil), arrays, int64(df.Len()))
	for _, arr := range arrays {
		arr.Release()
	}
	return record
}
