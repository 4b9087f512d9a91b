// Package excel reads word lists from xlsx and csv uploads.
package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/wordquiz/internal/apperr"
	"github.com/example/wordquiz/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	EnglishColumn string // Column with the English word
	ChineseColumn string // Column with the Chinese meaning
	ExampleColumn string // Column with the example sentence, optional
	SheetName     string // Sheet to read; empty means the first sheet
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		EnglishColumn: "A",
		ChineseColumn: "B",
		ExampleColumn: "C",
	}
}

// headerNames are first-column values that mark a header row.
var headerNames = map[string]bool{"english": true, "word": true, "英文": true, "单词": true}

// ParseWords reads word rows from an upload. The format is chosen by the file
// extension: ".csv" is read as CSV, anything else as an Excel workbook. A
// header row is skipped when its first cell names the column. Blank rows are
// ignored; rows with missing fields are kept so the batch can report them.
func ParseWords(filename string, r io.Reader, cfg ImportConfig) ([]models.WordInput, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		rows, err = readCSV(r)
	} else {
		rows, err = readExcel(r, cfg.SheetName)
	}
	if err != nil {
		return nil, err
	}

	cols, err := cfg.columns()
	if err != nil {
		return nil, err
	}

	words := make([]models.WordInput, 0, len(rows))
	for i, row := range rows {
		english, chinese, example := cell(row, cols[0]), cell(row, cols[1]), cell(row, cols[2])
		if english == "" && chinese == "" && example == "" {
			continue
		}
		if i == 0 && headerNames[strings.ToLower(english)] {
			continue
		}
		in := models.WordInput{English: english, Chinese: chinese}
		if example != "" {
			in.Example = &example
		}
		words = append(words, in)
	}
	if len(words) == 0 {
		return nil, apperr.Validation("file %q contains no words", filename)
	}
	return words, nil
}

func readExcel(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Validation("failed to open Excel file: %v", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperr.Validation("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperr.Validation("failed to get rows of sheet %q: %v", sheet, err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperr.Validation("error reading CSV: %v", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columns converts the configured column letters to zero-based indexes.
// A missing example column maps to -1.
func (c ImportConfig) columns() ([3]int, error) {
	var out [3]int
	for i, name := range []string{c.EnglishColumn, c.ChineseColumn, c.ExampleColumn} {
		if name == "" && i == 2 {
			out[i] = -1
			continue
		}
		n, err := excelize.ColumnNameToNumber(name)
		if err != nil {
			return out, fmt.Errorf("invalid column %q: %w", name, err)
		}
		out[i] = n - 1
	}
	return out, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
