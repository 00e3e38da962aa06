package io

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/mindhunter/internal/dataframe"
	"github.com/paveg/mindhunter/internal/series"
	"github.com/paveg/mindhunter/internal/validation"
)

const (
	// Boolean string constants
	trueStr  = "true"
	falseStr = "false"

	boolType   = "bool"
	intType    = "int"
	floatType  = "float"
	stringType = "string"
)

// tableBuilder turns rows of text cells into typed, nullable columns.
type tableBuilder struct {
	missing map[string]bool
	mem     memory.Allocator
}

func newTableBuilder(missingValues []string, mem memory.Allocator) *tableBuilder {
	missing := make(map[string]bool, len(missingValues))
	for _, token := range missingValues {
		missing[token] = true
	}
	return &tableBuilder{missing: missing, mem: mem}
}

// build creates a DataFrame from headers and data rows. Short rows are padded
// with missing cells; rows longer than the header are rejected. Repeated
// headers become "x", "x.1" and so on.
func (b *tableBuilder) build(op string, headers []string, rows [][]string) (*dataframe.DataFrame, error) {
	numCols := len(headers)
	for i, row := range rows {
		if len(row) > numCols {
			if err := validation.ValidateLength(numCols, len(row), op, fmt.Sprintf("row %d", i+1)); err != nil {
				return nil, err
			}
		}
	}

	// Transpose data to work with columns
	columns := make([][]string, numCols)
	for i := 0; i < numCols; i++ {
		columns[i] = make([]string, len(rows))
		for j, row := range rows {
			if i < len(row) {
				columns[i][j] = row[i]
			}
		}
	}

	seriesList := make([]dataframe.ISeries, 0, numCols)
	for i, header := range dataframe.UniqueNames(headers) {
		seriesList = append(seriesList, b.column(header, columns[i]))
	}

	return dataframe.New(seriesList...), nil
}

// column creates a series from string data, inferring the appropriate type
func (b *tableBuilder) column(name string, data []string) dataframe.ISeries {
	valid := make([]bool, len(data))
	for i, value := range data {
		valid[i] = !b.missing[value]
	}

	switch b.inferDataType(data, valid) {
	case boolType:
		values := make([]bool, len(data))
		for i, value := range data {
			values[i] = valid[i] && strings.EqualFold(value, trueStr)
		}
		return series.NewNullable(name, values, valid, b.mem)
	case intType:
		values := make([]int64, len(data))
		for i, value := range data {
			if valid[i] {
				values[i], _ = strconv.ParseInt(value, 10, 64)
			}
		}
		return series.NewNullable(name, values, valid, b.mem)
	case floatType:
		values := make([]float64, len(data))
		for i, value := range data {
			if valid[i] {
				values[i], _ = strconv.ParseFloat(value, 64)
			}
		}
		return series.NewNullable(name, values, valid, b.mem)
	default:
		values := make([]string, len(data))
		for i, value := range data {
			if valid[i] {
				values[i] = value
			}
		}
		return series.NewNullable(name, values, valid, b.mem)
	}
}

// inferDataType determines the most appropriate data type for the non-missing cells
func (b *tableBuilder) inferDataType(data []string, valid []bool) string {
	canBeInt := true
	canBeFloat := true
	canBeBool := true
	hasValue := false

	for i, value := range data {
		if !valid[i] {
			continue
		}
		hasValue = true

		if canBeBool {
			lower := strings.ToLower(value)
			if lower != trueStr && lower != falseStr {
				canBeBool = false
			}
		}

		if canBeInt {
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				canBeInt = false
			}
		}

		if canBeFloat {
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				canBeFloat = false
			}
		}
	}

	// If all values are missing, default to string
	switch {
	case !hasValue:
		return stringType
	case canBeBool:
		return boolType
	case canBeInt:
		return intType
	case canBeFloat:
		return floatType
	default:
		return stringType
	}
}

// defaultHeaders names columns column_0, column_1, ...
func defaultHeaders(n int) []string {
	headers := make([]string, n)
	for i := range headers {
		headers[i] = fmt.Sprintf("column_%d", i)
	}
	return headers
}
