package io

import (
	"fmt"

	"github.com/paveg/mindhunter/internal/dataframe"
	"github.com/xuri/excelize/v2"
)

// Read reads one sheet of the workbook and returns a DataFrame
func (r *ExcelReader) Read() (*dataframe.DataFrame, error) {
	f, err := excelize.OpenReader(r.reader)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := r.options.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.New(), nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}

	if len(rows) == 0 {
		return dataframe.New(), nil
	}

	var headers []string
	var dataRows [][]string

	if r.options.Header {
		headers = rows[0]
		dataRows = rows[1:]
	} else {
		width := 0
		for _, row := range rows {
			width = max(width, len(row))
		}
		headers = defaultHeaders(width)
		dataRows = rows
	}

	return newTableBuilder(r.options.MissingValues, r.mem).build("ReadExcel", headers, dataRows)
}
