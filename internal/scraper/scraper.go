package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/pfrederiksen/carta-conjuntura/internal/observe"
)

const (
	BulletinURL = "https://www.ipea.gov.br/cartadeconjuntura/"

	// ErrorPrefix starts the message of every fetch failure.
	ErrorPrefix = "ERRO:"
)

// FetchError wraps any transport or HTTP-layer failure.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return ErrorPrefix + " Falha na requisição. Detalhes: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// Options configures a Scraper. Zero values keep default client behavior:
// no custom headers and no timeout.
type Options struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
	Client    *http.Client
	Observer  observe.Observer
}

// Scraper fetches the bulletin page
type Scraper struct {
	client    *http.Client
	url       string
	userAgent string
	observer  observe.Observer
}

// New creates a new Scraper instance
func New(opts Options) *Scraper {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	url := opts.URL
	if url == "" {
		url = BulletinURL
	}
	return &Scraper{
		client:    client,
		url:       url,
		userAgent: opts.UserAgent,
		observer:  observe.OrNop(opts.Observer),
	}
}

// URL returns the page the scraper fetches.
func (s *Scraper) URL() string {
	return s.url
}

// Fetch performs the GET and returns the decoded body.
func (s *Scraper) Fetch(ctx context.Context) (string, error) {
	s.observer.Observe(observe.Event{Kind: observe.FetchStart, URL: s.url})
	start := time.Now()

	body, err := s.fetch(ctx)
	ev := observe.Event{Kind: observe.FetchResult, URL: s.url, Duration: time.Since(start)}
	if err != nil {
		fe := &FetchError{URL: s.url, Err: err}
		ev.Err = fe
		s.observer.Observe(ev)
		return "", fe
	}

	ev.Bytes = len(body)
	s.observer.Observe(ev)
	return body, nil
}

func (s *Scraper) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding body: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}

	return string(data), nil
}
