package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/carta-conjuntura/internal/config"
	"github.com/pfrederiksen/carta-conjuntura/internal/report"
)

const page = `<html><body>
<article>
<h1 class="entry-title"><a href="https://example.com/visao-geral">Visão geral</a></h1>
<time class="entry-date">16 de outubro de 2026</time>
<div class="entry-content"><p>Intro text</p><p>Acesse o texto completo aqui</p><a href="relatorio.pdf">PDF</a></div>
</article>
</body></html>`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page)) //nolint:errcheck
	}))
	t.Cleanup(server.Close)
	return server
}

func writeConfig(t *testing.T, url, smtp string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "url: " + url + "\ntime_zone: UTC\n" + smtp
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func execute(args ...string) (string, string, error) {
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRun_DryRun(t *testing.T) {
	server := newServer(t)
	cfg := writeConfig(t, server.URL, "smtp:\n  from: bot@example.com\n")

	stdout, _, err := execute("--config", cfg, "--date", "2026-10-16", "--dry-run")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	for _, want := range []string{
		"Para: bot@example.com",
		"Assunto: Relatório IPEA: Visão geral (16 de outubro de 2026)",
		"status: Sucesso",
		"mensagem: E-mail enviado para bot@example.com.",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_Subcommand(t *testing.T) {
	server := newServer(t)
	cfg := writeConfig(t, server.URL, "")

	stdout, _, err := execute("run", "--config", cfg, "--date", "2026-10-16", "--dry-run", "--recipient", "leitor@example.com", "--format", "json")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	var status report.DeliveryStatus
	if err := json.Unmarshal([]byte(stdout), &status); err != nil {
		t.Fatalf("stdout is not a JSON status: %v\n%s", err, stdout)
	}
	if status.Status != report.StatusSuccess || status.Message != "E-mail enviado para leitor@example.com." {
		t.Errorf("status = %+v", status)
	}
}

func TestRun_Ignored(t *testing.T) {
	server := newServer(t)
	cfg := writeConfig(t, server.URL, "smtp:\n  from: bot@example.com\n")

	stdout, _, err := execute("--config", cfg, "--date", "2026-10-17", "--dry-run", "--format", "json")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	var status report.DeliveryStatus
	if err := json.Unmarshal([]byte(stdout), &status); err != nil {
		t.Fatalf("stdout is not a JSON status: %v\n%s", err, stdout)
	}
	if status.Status != report.StatusIgnored {
		t.Errorf("Status = %q, want Ignorado", status.Status)
	}
	if !strings.Contains(status.Message, "17 de outubro de 2026") {
		t.Errorf("Message = %q, want target date", status.Message)
	}
}

func TestRun_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()
	cfg := writeConfig(t, url, "smtp:\n  from: bot@example.com\n")

	stdout, _, err := execute("--config", cfg, "--dry-run", "--format", "json")
	if !errors.Is(err, ErrRunFailed) {
		t.Fatalf("execute() error = %v, want ErrRunFailed", err)
	}

	var status report.DeliveryStatus
	if err := json.Unmarshal([]byte(stdout), &status); err != nil {
		t.Fatalf("stdout is not a JSON status: %v\n%s", err, stdout)
	}
	if status.Status != report.StatusError || !strings.HasPrefix(status.Message, "ERRO:") {
		t.Errorf("status = %+v, want Erro with ERRO: message", status)
	}
}

func TestRun_ConfigErrors(t *testing.T) {
	server := newServer(t)

	tests := []struct {
		name    string
		smtp    string
		args    []string
		wantErr error
	}{
		{
			name:    "no smtp host without dry-run",
			smtp:    "smtp:\n  from: bot@example.com\n",
			wantErr: config.ErrNoSMTPHost,
		},
		{
			name:    "no recipient at all",
			smtp:    "",
			args:    []string{"--dry-run"},
			wantErr: config.ErrNoRecipient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeConfig(t, server.URL, tt.smtp)
			args := append([]string{"--config", cfg}, tt.args...)

			_, _, err := execute(args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("execute() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRun_InvalidFormat(t *testing.T) {
	_, _, err := execute("--format", "xml", "--dry-run")
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("execute() error = %v, want invalid format", err)
	}
}

func TestExtract_File(t *testing.T) {
	dir := t.TempDir()
	markup := filepath.Join(dir, "page.html")
	if err := os.WriteFile(markup, []byte(page), 0o600); err != nil {
		t.Fatalf("writing markup: %v", err)
	}
	cfg := writeConfig(t, "http://127.0.0.1:1/", "")

	stdout, _, err := execute("extract", "--config", cfg, "--file", markup, "--date", "16 de Outubro de 2026", "--format", "json")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	var r report.Report
	if err := json.Unmarshal([]byte(stdout), &r); err != nil {
		t.Fatalf("stdout is not a JSON report: %v\n%s", err, stdout)
	}
	want := report.Report{
		Title:   "Visão geral",
		Date:    "16 de outubro de 2026",
		Summary: "Intro text",
		Link:    "https://example.com/visao-geral",
		PDFLink: "relatorio.pdf",
	}
	if r != want {
		t.Errorf("report = %+v, want %+v", r, want)
	}
}

func TestExtract_Fetch(t *testing.T) {
	server := newServer(t)
	cfg := writeConfig(t, server.URL, "")

	stdout, _, err := execute("extract", "--config", cfg, "--date", "2026-10-15")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.Contains(stdout, "Nenhum relatório encontrado") {
		t.Errorf("output = %q, want not-found message", stdout)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute("version")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if strings.TrimSpace(stdout) != Version {
		t.Errorf("version output = %q, want %q", stdout, Version)
	}
}
