// Package report defines the bulletin record extracted from the Carta de
// Conjuntura page and the status produced by a delivery run.
//
// Every Report field starts out holding a "not found" sentinel, so a record
// that matched nothing is still a complete value. Dates are compared using a
// normalized Brazilian Portuguese rendering ("16 de outubro de 2026").
package report
