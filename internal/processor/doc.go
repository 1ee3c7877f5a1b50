// Package processor contains the core pipeline: it loads the workbook,
// walks the rows in order, drives the translation engine with retry,
// pacing and progress reporting, and writes the output workbook.
package processor
