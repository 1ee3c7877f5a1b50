package workbook

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Document holds one sheet of a workbook in memory: the header row and
// all data rows in their original order, plus the resolved source and
// target column indexes.
type Document struct {
	Path    string
	Sheet   string
	Headers []string
	Rows    [][]string

	sourceIdx     int
	targetIdx     int
	targetCreated bool
	resolved      bool
}

// Load opens the workbook at path and reads the named sheet. A missing
// file, an unreadable workbook or an unknown sheet is a ConfigError.
func Load(path, sheet string) (*Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	found := false
	for _, s := range sheets {
		if s == sheet {
			found = true
			break
		}
	}
	if !found {
		return nil, &ConfigError{
			Path:  path,
			Sheet: sheet,
			Err:   fmt.Errorf("sheet not found, available sheets: [%s]", strings.Join(sheets, ", ")),
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ConfigError{Path: path, Sheet: sheet, Err: err}
	}

	doc := &Document{Path: path, Sheet: sheet}
	if len(rows) > 0 {
		doc.Headers = rows[0]
		doc.Rows = rows[1:]
	}
	return doc, nil
}

// ResolveColumns resolves the source column (which must exist) and the
// target column (created as a new appended column when absent). It must
// succeed before any row is processed.
func (d *Document) ResolveColumns(source, target ColumnLocator) error {
	idx, err := source.Resolve(d.Headers)
	if err != nil {
		return err
	}
	d.sourceIdx = idx

	if tidx, err := target.Resolve(d.Headers); err == nil {
		d.targetIdx = tidx
	} else {
		var notFound *ColumnNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		// Append a new column, headed by the configured locator string.
		d.targetIdx = len(d.Headers)
		d.Headers = append(d.Headers, target.Name)
		d.targetCreated = true
	}
	d.resolved = true
	return nil
}

// SourceIndex returns the resolved 0-based source column index.
func (d *Document) SourceIndex() int { return d.sourceIdx }

// TargetIndex returns the resolved 0-based target column index.
func (d *Document) TargetIndex() int { return d.targetIdx }

// TargetCreated reports whether the target column was newly appended.
func (d *Document) TargetCreated() bool { return d.targetCreated }

// SourceText returns the trimmed-as-is source cell of row i. Rows
// shorter than the source column read as empty.
func (d *Document) SourceText(i int) string {
	row := d.Rows[i]
	if d.sourceIdx >= len(row) {
		return ""
	}
	return row[d.sourceIdx]
}

// SetTarget writes value into the target cell of row i, padding the row
// when it is shorter than the target column.
func (d *Document) SetTarget(i int, value string) {
	row := d.Rows[i]
	for len(row) <= d.targetIdx {
		row = append(row, "")
	}
	row[d.targetIdx] = value
	d.Rows[i] = row
}

// OutputPath derives the output filename next to the input file:
// <stem>_translated.xlsx.
func (d *Document) OutputPath() string {
	dir := filepath.Dir(d.Path)
	base := filepath.Base(d.Path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+"_translated.xlsx")
}

// Write saves the augmented sheet as a new workbook at path,
// overwriting any existing file. Re-running a finished translation
// replaces the previous output rather than merging into it.
func (d *Document) Write(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if d.Sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", d.Sheet); err != nil {
			return fmt.Errorf("failed to name sheet %q: %w", d.Sheet, err)
		}
	}

	if err := d.writeRow(f, 1, d.Headers); err != nil {
		return err
	}
	for i, row := range d.Rows {
		if err := d.writeRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func (d *Document) writeRow(f *excelize.File, rowNum int, cells []string) error {
	if len(cells) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(d.Sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
