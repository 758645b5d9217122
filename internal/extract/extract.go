package extract

import (
	"github.com/pfrederiksen/carta-conjuntura/internal/observe"
	"github.com/pfrederiksen/carta-conjuntura/internal/report"
)

// Extractor finds the report published on a target date.
type Extractor struct {
	observer observe.Observer
}

// New creates an Extractor emitting events to obs. A nil obs discards them.
func New(obs observe.Observer) *Extractor {
	return &Extractor{observer: observe.OrNop(obs)}
}

// Extract is New(nil).Extract.
func Extract(markup, target string) report.Report {
	return New(nil).Extract(markup, target)
}

// Extract scans markup for the first <article> dated target (normalized,
// see report.NormalizeDate) and returns its fields. Fields the matched block
// lacks keep their sentinel. When no block matches, the all-defaults record
// is returned.
func (e *Extractor) Extract(markup, target string) report.Report {
	if markup == "" {
		e.observer.Observe(observe.Event{Kind: observe.InvalidInput})
		return report.Default()
	}

	target = report.NormalizeDate(target)
	seen := 0

	for fragment := range Blocks(markup) {
		if seen == 0 {
			e.observer.Observe(observe.Event{Kind: observe.SearchStart, Target: target})
		}
		seen++

		b, err := parseBlock(fragment)
		if err != nil {
			continue
		}

		date, ok := b.date()
		if !ok {
			continue
		}
		if date != target {
			e.observer.Observe(observe.Event{Kind: observe.DateMismatchSkip, Date: date, Target: target})
			continue
		}

		r := b.report(date)
		e.observer.Observe(observe.Event{Kind: observe.MatchFound, Date: r.Date, Title: r.Title})
		return r
	}

	if seen == 0 {
		e.observer.Observe(observe.Event{Kind: observe.NoBlockFound})
	} else {
		e.observer.Observe(observe.Event{Kind: observe.NoReportForDate, Target: target, Blocks: seen})
	}
	return report.Default()
}

func (b *block) report(date string) report.Report {
	r := report.Default()
	r.Date = date

	if title, link, ok := b.titleAndLink(); ok {
		r.Title = title
		r.Link = link
	}

	content := b.content()
	if content.Length() == 0 {
		return r
	}

	r.Summary = summary(content)
	if link, ok := pdfLink(content); ok {
		r.PDFLink = link
	}
	return r
}
