// Package models lists the text-generation models available to the
// configured provider. It helps diagnose "model not available" aborts:
// a model that is missing from the list has not been enabled for the
// account or region.
package models
