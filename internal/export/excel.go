package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Excel caps sheet names at 31 characters.
const maxSheetNameLen = 31

// ExcelizeWriter produces report workbooks through excelize. Writes go to
// the most recently added sheet; the row cursor resets per sheet.
type ExcelizeWriter struct {
	file  *excelize.File
	sheet string
	row   int
}

// NewExcelizeWriter opens a fresh workbook.
func NewExcelizeWriter() ExcelWriter {
	return &ExcelizeWriter{file: excelize.NewFile()}
}

// AddSheet starts a new sheet and resets the row cursor. Over-long names are
// truncated to the workbook limit.
func (w *ExcelizeWriter) AddSheet(name string) error {
	if len(name) > maxSheetNameLen {
		name = name[:maxSheetNameLen]
	}

	if w.sheet == "" {
		// A fresh workbook already holds Sheet1; take it over.
		w.file.SetSheetName("Sheet1", name)
	} else if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	w.sheet = name
	w.row = 1
	return nil
}

// WriteHeader writes a bold column header row to the current sheet.
func (w *ExcelizeWriter) WriteHeader(columns []string) error {
	if w.sheet == "" {
		return fmt.Errorf("no active sheet")
	}
	for i, col := range columns {
		if err := w.setCell(i, col); err != nil {
			return err
		}
	}

	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		first, _ := excelize.CoordinatesToCellName(1, w.row)
		last, _ := excelize.CoordinatesToCellName(len(columns), w.row)
		_ = w.file.SetCellStyle(w.sheet, first, last, style)
	}

	w.row++
	return nil
}

// WriteRow appends one data row to the current sheet.
func (w *ExcelizeWriter) WriteRow(row []interface{}) error {
	if w.sheet == "" {
		return fmt.Errorf("no active sheet")
	}
	for i, val := range row {
		if err := w.setCell(i, val); err != nil {
			return err
		}
	}
	w.row++
	return nil
}

// Save streams the workbook to wr.
func (w *ExcelizeWriter) Save(wr io.Writer) error {
	return w.file.Write(wr)
}

// Close releases the underlying workbook.
func (w *ExcelizeWriter) Close() error {
	return w.file.Close()
}

func (w *ExcelizeWriter) setCell(col int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col+1, w.row)
	if err != nil {
		return err
	}
	return w.file.SetCellValue(w.sheet, cell, value)
}
