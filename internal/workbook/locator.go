package workbook

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

// LocatorKind selects how a ColumnLocator addresses a column.
type LocatorKind int

const (
	// ByName matches a header cell exactly (case-sensitive).
	ByName LocatorKind = iota
	// ByLetter addresses a column by its Excel letter ("A", "H", "AB").
	ByLetter
	// ByIndex addresses a column by its 1-based position.
	ByIndex
)

// ColumnLocator identifies a column by header name, Excel letter or
// 1-based index. It is parsed once from configuration and resolved to a
// concrete index before any row is processed.
type ColumnLocator struct {
	Kind  LocatorKind
	Name  string // original configuration string
	Index int    // 1-based, valid for ByLetter and ByIndex
}

// NameLocator returns a locator that only matches a header name.
func NameLocator(name string) ColumnLocator {
	return ColumnLocator{Kind: ByName, Name: name}
}

// ParseLocator interprets a configuration string as a column locator.
// Digits become a 1-based index, a plain Excel column letter becomes a
// letter locator, anything else is a header name.
func ParseLocator(s string) ColumnLocator {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return ColumnLocator{Kind: ByIndex, Name: s, Index: n}
	}
	if isColumnLetter(s) {
		n, err := excelize.ColumnNameToNumber(s)
		if err == nil {
			return ColumnLocator{Kind: ByLetter, Name: s, Index: n}
		}
	}
	return ColumnLocator{Kind: ByName, Name: s}
}

// isColumnLetter reports whether s looks like an Excel column letter
// (up to three uppercase ASCII letters). Longer or mixed-case strings
// are treated as header names.
func isColumnLetter(s string) bool {
	if len(s) == 0 || len(s) > 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Resolve returns the 0-based index of the column within headers, or a
// ColumnNotFoundError when a name locator matches no header or a
// positional locator points outside the header row.
func (l ColumnLocator) Resolve(headers []string) (int, error) {
	switch l.Kind {
	case ByLetter, ByIndex:
		idx := l.Index - 1
		if idx >= len(headers) {
			return 0, &ColumnNotFoundError{Column: l.Name, Available: headers}
		}
		return idx, nil
	default:
		for i, h := range headers {
			if h == l.Name {
				return i, nil
			}
		}
		return 0, &ColumnNotFoundError{Column: l.Name, Available: headers}
	}
}
