package io

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/paveg/mindhunter/internal/dataframe"
)

// Read reads CSV data and returns a DataFrame
func (r *CSVReader) Read() (*dataframe.DataFrame, error) {
	csvReader := csv.NewReader(r.reader)
	csvReader.Comma = r.options.Delimiter
	csvReader.Comment = r.options.Comment
	csvReader.TrimLeadingSpace = r.options.SkipInitialSpace
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	// Handle empty CSV
	if len(records) == 0 {
		return dataframe.New(), nil
	}

	var headers []string
	var dataRows [][]string

	if r.options.Header {
		headers = records[0]
		dataRows = records[1:]
	} else {
		headers = defaultHeaders(len(records[0]))
		dataRows = records
	}

	return newTableBuilder(r.options.MissingValues, r.mem).build("ReadCSV", headers, dataRows)
}

// Write writes the DataFrame to CSV format. Missing values are written as empty cells.
func (w *CSVWriter) Write(df *dataframe.DataFrame) error {
	csvWriter := csv.NewWriter(w.writer)
	if w.options.Delimiter != 0 {
		csvWriter.Comma = w.options.Delimiter
	}

	if w.options.Header {
		if err := csvWriter.Write(df.Columns()); err != nil {
			return fmt.Errorf("writing headers: %w", err)
		}
	}

	arrays := make([]arrow.Array, 0, df.Width())
	for _, name := range df.Columns() {
		column, _ := df.Column(name)
		arrays = append(arrays, column.Array())
	}
	defer func() {
		for _, arr := range arrays {
			arr.Release()
		}
	}()

	row := make([]string, len(arrays))
	for i := 0; i < df.Len(); i++ {
		for j, arr := range arrays {
			row[j] = formatCell(arr, i)
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// formatCell renders one value of an Arrow array as CSV text
func formatCell(arr arrow.Array, index int) string {
	if arr.IsNull(index) {
		return ""
	}

	switch typedArr := arr.(type) {
	case *array.String:
		return typedArr.Value(index)
	case *array.Int64:
		return strconv.FormatInt(typedArr.Value(index), 10)
	case *array.Int32:
		return strconv.FormatInt(int64(typedArr.Value(index)), 10)
	case *array.Float64:
		return strconv.FormatFloat(typedArr.Value(index), 'g', -1, 64)
	case *array.Float32:
		return strconv.FormatFloat(float64(typedArr.Value(index)), 'g', -1, 32)
	case *array.Boolean:
		if typedArr.Value(index) {
			return trueStr
		}
		return falseStr
	default:
		return arr.ValueStr(index)
	}
}
