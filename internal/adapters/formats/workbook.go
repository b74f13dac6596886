package formats

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mkovacs/financ/internal/domain/external"
)

// Workbook is an opened XLSX bank export.
type Workbook struct {
	file *excelize.File
}

// OpenWorkbook opens the XLSX file at the given path.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("formats: cannot open workbook %s: %w", path, err)
	}
	return &Workbook{file: f}, nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Rows returns the raw rows of the named sheet. An empty name selects
// the first sheet of the workbook.
func (w *Workbook) Rows(sheetName string) ([][]string, error) {
	if sheetName == "" {
		sheetName = w.file.GetSheetName(0)
	}
	rows, err := w.file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("formats: cannot read sheet %q: %w", sheetName, err)
	}
	return rows, nil
}

// Load reads and normalizes one sheet under the given format and
// matching mode, computing the date bounds for the correlator.
func (w *Workbook) Load(sheetName string, format Format, mode external.MatchMode) (external.List, error) {
	rows, err := w.Rows(sheetName)
	if err != nil {
		return external.List{}, err
	}
	return external.NewList(format.ParseRows(rows), mode), nil
}
