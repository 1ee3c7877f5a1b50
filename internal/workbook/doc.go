// Package workbook reads and writes the Excel workbooks processed by
// xltranslate. It resolves source and target columns against the header
// row and produces the augmented output workbook.
package workbook
