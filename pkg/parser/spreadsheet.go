// pkg/parser/spreadsheet.go
package parser

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"gitlab.com/osaki-lab/iowrapper"
)

var errNoSheet = errors.New("no sheet found in workbook")

// parseXLSX reads the first sheet of a modern Excel workbook into a cell grid.
func parseXLSX(contents []byte) ([][]string, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(contents))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheet
	}

	grid, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return grid, nil
}

// biffRow is the subset of the xls row API the grid walk reads. Narrowing
// it to an interface lets the walk be tested without a binary workbook.
type biffRow interface {
	FirstCol() int
	LastCol() int
	Col(int) string
}

var _ biffRow = (*xls.Row)(nil)

// parseXLS reads the first sheet of a legacy BIFF workbook into a cell grid.
func parseXLS(contents []byte) ([][]string, error) {
	wb, err := xls.OpenReader(iowrapper.NewSeeker(bytes.NewReader(contents)), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open xls file: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errNoSheet
	}

	return biffGrid(int(sheet.MaxRow), func(i int) biffRow {
		if row := sheet.Row(i); row != nil {
			return row
		}
		return nil
	}), nil
}

// biffGrid walks sheet rows into a cell grid. maxRow is inclusive, matching
// the BIFF sheet header; column bounds are FirstCol inclusive and LastCol
// exclusive. Absent rows are skipped.
func biffGrid(maxRow int, rowAt func(int) biffRow) [][]string {
	grid := make([][]string, 0, maxRow+1)
	for i := 0; i <= maxRow; i++ {
		row := rowAt(i)
		if row == nil {
			continue
		}

		record := make([]string, 0, row.LastCol()-row.FirstCol())
		for colNum := row.FirstCol(); colNum < row.LastCol(); colNum++ {
			record = append(record, row.Col(colNum))
		}
		grid = append(grid, record)
	}

	return grid
}
