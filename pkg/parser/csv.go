// pkg/parser/csv.go
package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// parseCSV reads the whole CSV into a cell grid. A UTF-8 BOM, common in
// spreadsheet exports, is stripped before the bytes reach encoding/csv.
func parseCSV(contents []byte) ([][]string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(bytes.NewReader(contents), decoder))
	reader.FieldsPerRecord = -1

	grid, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return grid, nil
}
