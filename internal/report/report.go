package report

import "fmt"

// Sentinels used in place of missing fields.
const (
	NotFound     = "Não encontrado"
	DateNotFound = "Não encontrada"
)

// Report is the bulletin entry published on the target date.
type Report struct {
	Title   string `json:"titulo"`
	Date    string `json:"data"`
	Summary string `json:"resumo"`
	Link    string `json:"link"`
	PDFLink string `json:"linkPdf"`
}

// Default returns a Report with every field set to its sentinel.
func Default() Report {
	return Report{
		Title:   NotFound,
		Date:    DateNotFound,
		Summary: NotFound,
		Link:    NotFound,
		PDFLink: NotFound,
	}
}

// Found reports whether a title was extracted. Downstream a missing title
// means "no report", whatever the other fields hold.
func (r Report) Found() bool {
	return r.Title != NotFound && r.Title != ""
}

// HasPDF reports whether a PDF link was extracted.
func (r Report) HasPDF() bool {
	return r.PDFLink != NotFound && r.PDFLink != ""
}

// Status is the outcome of a delivery run.
type Status string

const (
	StatusSuccess Status = "Sucesso"
	StatusIgnored Status = "Ignorado"
	StatusError   Status = "Erro"
)

// DeliveryStatus is produced once per run and never persisted.
type DeliveryStatus struct {
	Status  Status `json:"status"`
	Message string `json:"mensagem"`
}

// Success builds a Sucesso status.
func Success(format string, args ...any) DeliveryStatus {
	return DeliveryStatus{Status: StatusSuccess, Message: fmt.Sprintf(format, args...)}
}

// Ignored builds an Ignorado status.
func Ignored(format string, args ...any) DeliveryStatus {
	return DeliveryStatus{Status: StatusIgnored, Message: fmt.Sprintf(format, args...)}
}

// Failure builds an Erro status.
func Failure(format string, args ...any) DeliveryStatus {
	return DeliveryStatus{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// String renders the status the way the final log line shows it.
func (s DeliveryStatus) String() string {
	return fmt.Sprintf("{status=%s, mensagem=%s}", s.Status, s.Message)
}
