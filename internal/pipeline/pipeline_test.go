package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/carta-conjuntura/internal/notifier"
	"github.com/pfrederiksen/carta-conjuntura/internal/observe"
	"github.com/pfrederiksen/carta-conjuntura/internal/report"
	"github.com/pfrederiksen/carta-conjuntura/internal/scraper"
)

type fakeFetcher struct {
	markup string
	err    error
}

func (f *fakeFetcher) Fetch(context.Context) (string, error) {
	return f.markup, f.err
}

type fakeSender struct {
	calls     int
	report    report.Report
	recipient string
	status    report.DeliveryStatus
}

func (f *fakeSender) Notify(_ context.Context, r report.Report, recipient string) report.DeliveryStatus {
	f.calls++
	f.report = r
	f.recipient = recipient
	return f.status
}

type fakeMailer struct {
	sent []*notifier.Message
}

func (f *fakeMailer) Send(_ context.Context, msg *notifier.Message) error {
	f.sent = append(f.sent, msg)
	return nil
}

var fixedNow = time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)

const todayNormalized = "16 de outubro de 2026"

func clock() time.Time { return fixedNow }

func articleFor(date, title string) string {
	return `<article>
<h1 class="entry-title"><a href="https://example.com/` + title + `">` + title + `</a></h1>
<time class="entry-date">` + date + `</time>
<div class="entry-content"><p>Intro text</p><p>Acesse o texto completo aqui</p><a href="relatorio.pdf">PDF</a></div>
</article>`
}

func TestRun(t *testing.T) {
	tests := []struct {
		name        string
		fetcher     *fakeFetcher
		sendStatus  report.DeliveryStatus
		wantStatus  report.Status
		wantMessage string
		wantCalls   int
	}{
		{
			name:        "report found and sent",
			fetcher:     &fakeFetcher{markup: articleFor(todayNormalized, "X")},
			sendStatus:  report.Success("E-mail enviado para leitor@example.com."),
			wantStatus:  report.StatusSuccess,
			wantMessage: "E-mail enviado para leitor@example.com.",
			wantCalls:   1,
		},
		{
			name:        "no report today",
			fetcher:     &fakeFetcher{markup: articleFor("9 de outubro de 2026", "Old")},
			wantStatus:  report.StatusIgnored,
			wantMessage: "Nenhum relatório do IPEA encontrado para a data: 16 de outubro de 2026. O processo foi encerrado.",
		},
		{
			name:       "no blocks at all",
			fetcher:    &fakeFetcher{markup: "<html><body></body></html>"},
			wantStatus: report.StatusIgnored,
		},
		{
			name:        "fetch failure",
			fetcher:     &fakeFetcher{err: &scraper.FetchError{Err: errors.New("dial tcp: connection refused")}},
			wantStatus:  report.StatusError,
			wantMessage: "ERRO: Falha na requisição. Detalhes: dial tcp: connection refused",
		},
		{
			name:        "plain fetch error still carries the sentinel",
			fetcher:     &fakeFetcher{err: errors.New("network unreachable")},
			wantStatus:  report.StatusError,
			wantMessage: "ERRO: Falha na requisição. Detalhes: network unreachable",
		},
		{
			name:        "wrapped fetch error",
			fetcher:     &fakeFetcher{err: fmt.Errorf("fetching bulletin: %w", &scraper.FetchError{Err: errors.New("EOF")})},
			wantStatus:  report.StatusError,
			wantMessage: "ERRO: Falha na requisição. Detalhes: EOF",
		},
		{
			name:        "send failure",
			fetcher:     &fakeFetcher{markup: articleFor(todayNormalized, "X")},
			sendStatus:  report.Failure("Falha ao enviar e-mail: timeout"),
			wantStatus:  report.StatusError,
			wantMessage: "Falha ao enviar e-mail: timeout",
			wantCalls:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{status: tt.sendStatus}
			rec := &observe.Recorder{}
			p := New(tt.fetcher, sender, WithClock(clock), WithLocation(time.UTC), WithObserver(rec))

			status := p.Run(context.Background(), "leitor@example.com")

			if status.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", status.Status, tt.wantStatus)
			}
			if tt.wantMessage != "" && status.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", status.Message, tt.wantMessage)
			}
			if sender.calls != tt.wantCalls {
				t.Errorf("Notify called %d times, want %d", sender.calls, tt.wantCalls)
			}

			if rec.Count(observe.RunFinished) != 1 {
				t.Errorf("run-finished emitted %d times, want 1", rec.Count(observe.RunFinished))
			}
			events := rec.Events()
			if last := events[len(events)-1]; last.Kind != observe.RunFinished || last.Status != status {
				t.Errorf("last event = %+v, want run-finished with returned status", last)
			}
		})
	}
}

func TestRun_PassesReportAndRecipient(t *testing.T) {
	sender := &fakeSender{status: report.Success("ok")}
	p := New(&fakeFetcher{markup: articleFor(todayNormalized, "X")}, sender, WithClock(clock), WithLocation(time.UTC))

	p.Run(context.Background(), "leitor@example.com")

	want := report.Report{
		Title:   "X",
		Date:    todayNormalized,
		Summary: "Intro text",
		Link:    "https://example.com/X",
		PDFLink: "relatorio.pdf",
	}
	if sender.report != want {
		t.Errorf("report = %+v, want %+v", sender.report, want)
	}
	if sender.recipient != "leitor@example.com" {
		t.Errorf("recipient = %q", sender.recipient)
	}
}

func TestTargetDate(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	lateUTC := time.Date(2026, time.October, 17, 1, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"utc", []Option{WithClock(func() time.Time { return lateUTC }), WithLocation(time.UTC)}, "17 de outubro de 2026"},
		{"local day differs", []Option{WithClock(func() time.Time { return lateUTC }), WithLocation(saoPaulo)}, "16 de outubro de 2026"},
		{"override", []Option{WithClock(clock), WithTargetDate("2026-03-05")}, "5 de março de 2026"},
		{"nil location ignored", []Option{WithClock(func() time.Time { return lateUTC }), WithLocation(time.UTC), WithLocation(nil)}, "17 de outubro de 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(&fakeFetcher{}, &fakeSender{}, tt.opts...)
			if got := p.TargetDate(); got != tt.want {
				t.Errorf("TargetDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRun_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>" + //nolint:errcheck
			articleFor(todayNormalized, "X") +
			articleFor(todayNormalized, "Y") +
			"</body></html>"))
	}))
	defer server.Close()

	rec := &observe.Recorder{}
	mailer := &fakeMailer{}
	p := New(
		scraper.New(scraper.Options{URL: server.URL, Observer: rec}),
		notifier.New(mailer, rec),
		WithClock(clock),
		WithLocation(time.UTC),
		WithObserver(rec),
	)

	status := p.Run(context.Background(), "leitor@example.com")

	if status.Status != report.StatusSuccess {
		t.Fatalf("Status = %q (%s), want Sucesso", status.Status, status.Message)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d e-mails, want exactly 1", len(mailer.sent))
	}

	msg := mailer.sent[0]
	if msg.Subject != "Relatório IPEA: X (16 de outubro de 2026)" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, `href="relatorio.pdf"`) {
		t.Errorf("HTML missing PDF link:\n%s", msg.HTML)
	}

	want := []observe.Kind{
		observe.FetchStart,
		observe.FetchResult,
		observe.SearchStart,
		observe.MatchFound,
		observe.SendResult,
		observe.RunFinished,
	}
	got := rec.Kinds()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRun_EndToEndFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	mailer := &fakeMailer{}
	p := New(scraper.New(scraper.Options{URL: url}), notifier.New(mailer, nil), WithClock(clock))

	status := p.Run(context.Background(), "leitor@example.com")

	if status.Status != report.StatusError {
		t.Errorf("Status = %q, want Erro", status.Status)
	}
	if !strings.HasPrefix(status.Message, scraper.ErrorPrefix) || !strings.Contains(status.Message, "connect") {
		t.Errorf("Message = %q, want ERRO: prefix with the transport detail", status.Message)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("sent %d e-mails after a fetch failure, want 0", len(mailer.sent))
	}
}
