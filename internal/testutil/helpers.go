// Package testutil provides shared helpers for building test
// workbooks.
package testutil

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// CreateTestWorkbook writes an xlsx file at path with the given sheet
// and rows (first row is the header row).
func CreateTestWorkbook(t *testing.T, path, sheet string, rows [][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("Failed to name sheet: %v", err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("Failed to build cell name: %v", err)
		}
		values := make([]interface{}, len(row))
		for j, c := range row {
			values[j] = c
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("Failed to write row %d: %v", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test workbook: %v", err)
	}
}

// ReadSheet reads back all rows of a sheet for assertions.
func ReadSheet(t *testing.T, path, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open workbook %s: %v", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("Failed to read sheet %s: %v", sheet, err)
	}
	return rows
}
