package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/carta-conjuntura/internal/report"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
}

// WriteStatus writes the final status of a run
func WriteStatus(w io.Writer, status report.DeliveryStatus, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, status)
	case FormatText:
		_, err := fmt.Fprintf(w, "--- STATUS FINAL DO PROCESSO ---\nstatus: %s\nmensagem: %s\n--------------------------\n",
			status.Status, status.Message)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteReport writes an extracted report
func WriteReport(w io.Writer, r report.Report, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatText:
		if !r.Found() {
			_, err := fmt.Fprintf(w, "Nenhum relatório encontrado.\n")
			return err
		}
		if _, err := fmt.Fprintf(w, "Título: %s\nData: %s\nLink: %s\n", r.Title, r.Date, r.Link); err != nil {
			return err
		}
		if r.HasPDF() {
			if _, err := fmt.Fprintf(w, "PDF: %s\n", r.PDFLink); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "\nResumo:\n%s\n", r.Summary)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
