// pkg/parser/parser.go
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retailops/warehouse-ingress/pkg/model"
)

// FileKind identifies a supported upload format.
type FileKind int

const (
	KindCSV FileKind = iota
	KindSpreadsheet
)

// FormatError reports an upload whose format is not recognized. It is
// raised before any parsing is attempted.
type FormatError struct {
	Filename string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q: please upload CSV or Excel files", e.Filename)
}

// DetectKind derives the file kind from the upload's filename extension.
func DetectKind(filename string) (FileKind, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return KindCSV, nil
	case ".xlsx", ".xls":
		return KindSpreadsheet, nil
	default:
		return 0, &FormatError{Filename: filename}
	}
}

// Parse reads an uploaded file into raw records. The first row supplies the
// column names; remaining rows become one RawRecord each, with short rows
// padded with nulls and long rows truncated to the header width.
func Parse(filename string, contents []byte) ([]string, []model.RawRecord, error) {
	kind, err := DetectKind(filename)
	if err != nil {
		return nil, nil, err
	}

	var grid [][]string
	switch kind {
	case KindCSV:
		grid, err = parseCSV(contents)
	case KindSpreadsheet:
		if strings.HasSuffix(strings.ToLower(filename), ".xls") {
			grid, err = parseXLS(contents)
		} else {
			grid, err = parseXLSX(contents)
		}
	}
	if err != nil {
		return nil, nil, err
	}

	return gridToRecords(grid)
}

func gridToRecords(grid [][]string) ([]string, []model.RawRecord, error) {
	if len(grid) == 0 {
		return []string{}, []model.RawRecord{}, nil
	}

	columns := grid[0]
	rows := make([]model.RawRecord, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		row := make(model.RawRecord, len(columns))
		for i, col := range columns {
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = nil
			}
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}
