package workbook

import (
	"fmt"
	"strings"
)

// ConfigError indicates an invalid input file or sheet. It is fatal and
// reported before any translation call is made.
type ConfigError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("workbook %s: sheet %q: %v", e.Path, e.Sheet, e.Err)
	}
	return fmt.Sprintf("workbook %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ColumnNotFoundError indicates that a column locator did not match any
// header. It lists the available headers so the operator can fix the
// configuration without opening the file.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found, available columns: [%s]",
		e.Column, strings.Join(e.Available, ", "))
}
