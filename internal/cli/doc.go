// Package cli implements the command-line interface for carta-conjuntura.
//
// The cli package provides the Cobra-based CLI. The default command runs one
// delivery: it loads the configuration, wires the scraper, extractor and
// notifier into a pipeline, and prints the resulting status as text or JSON.
// The extract command prints the report found on the page without sending
// anything.
package cli
