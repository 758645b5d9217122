package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pfrederiksen/carta-conjuntura/internal/extract"
	"github.com/pfrederiksen/carta-conjuntura/internal/observe"
	"github.com/pfrederiksen/carta-conjuntura/internal/report"
	"github.com/pfrederiksen/carta-conjuntura/internal/scraper"
)

// Fetcher returns the bulletin page markup.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Sender e-mails a report and reports the outcome.
type Sender interface {
	Notify(ctx context.Context, r report.Report, recipient string) report.DeliveryStatus
}

// Pipeline wires the stages of a run.
type Pipeline struct {
	fetcher   Fetcher
	sender    Sender
	extractor *extract.Extractor
	observer  observe.Observer
	now       func() time.Time
	location  *time.Location
	target    string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver sets where run events go. The same observer is handed to
// the extractor.
func WithObserver(o observe.Observer) Option {
	return func(p *Pipeline) {
		p.observer = observe.OrNop(o)
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// WithLocation sets the time zone used to decide which day is today.
// A nil location is ignored.
func WithLocation(loc *time.Location) Option {
	return func(p *Pipeline) {
		if loc != nil {
			p.location = loc
		}
	}
}

// WithTargetDate forces the target date instead of today. The value is
// normalized with report.ParseDate.
func WithTargetDate(date string) Option {
	return func(p *Pipeline) {
		p.target = report.ParseDate(date)
	}
}

// New creates a Pipeline.
func New(f Fetcher, s Sender, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:  f,
		sender:   s,
		observer: observe.Nop,
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.extractor = extract.New(p.observer)
	return p
}

// TargetDate returns the normalized date the run looks for.
func (p *Pipeline) TargetDate() string {
	if p.target != "" {
		return p.target
	}
	return report.FormatDate(p.now().In(p.location))
}

// Run executes one delivery for recipient.
func (p *Pipeline) Run(ctx context.Context, recipient string) (status report.DeliveryStatus) {
	defer func() {
		p.observer.Observe(observe.Event{Kind: observe.RunFinished, Recipient: recipient, Status: status})
	}()

	target := p.TargetDate()

	markup, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return report.Failure("%s", fetchMessage(err))
	}

	r := p.extractor.Extract(markup, target)
	if !r.Found() {
		return report.Ignored("Nenhum relatório do IPEA encontrado para a data: %s. O processo foi encerrado.", target)
	}

	return p.sender.Notify(ctx, r, recipient)
}

// fetchMessage keeps the ERRO: sentinel on every fetch failure message.
func fetchMessage(err error) string {
	var fe *scraper.FetchError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	msg := err.Error()
	if strings.HasPrefix(msg, scraper.ErrorPrefix) {
		return msg
	}
	return (&scraper.FetchError{Err: err}).Error()
}
