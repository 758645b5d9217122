package notifier

import (
	"fmt"
	htmltemplate "html/template"
	"strings"

	"github.com/pfrederiksen/carta-conjuntura/internal/report"
)

var htmlBody = htmltemplate.Must(htmltemplate.New("body").Parse(`<h1>Relatório Carta de Conjuntura IPEA</h1>

<h2>{{.Title}}</h2>
<p><strong>Data de Publicação:</strong> {{.Date}}</p>

<h3>Resumo:</h3>
<pre style="white-space: pre-wrap; font-family: sans-serif;">{{.Summary}}</pre>

<p>
  <strong>Link PDF:</strong> <a href="{{.PDFLink}}">{{.PDFLink}}</a>
</p>
<p>
  <em>Este e-mail foi gerado automaticamente.</em>
</p>
`))

// Subject returns the e-mail subject for r.
func Subject(r report.Report) string {
	return fmt.Sprintf("Relatório IPEA: %s (%s)", r.Title, r.Date)
}

// PlainText returns the plain-text body for r.
func PlainText(r report.Report) string {
	return fmt.Sprintf("Relatório IPEA: %s\n\nData: %s\n\nResumo:\n%s\n\nLink: %s",
		r.Title, r.Date, r.Summary, r.Link)
}

// HTML returns the HTML body for r. Report fields are escaped.
func HTML(r report.Report) (string, error) {
	var b strings.Builder
	if err := htmlBody.Execute(&b, r); err != nil {
		return "", fmt.Errorf("rendering html body: %w", err)
	}
	return b.String(), nil
}

// Compose builds the message for r without a recipient.
func Compose(r report.Report) (*Message, error) {
	body, err := HTML(r)
	if err != nil {
		return nil, err
	}
	return &Message{
		Subject: Subject(r),
		Text:    PlainText(r),
		HTML:    body,
	}, nil
}
