package observe

import (
	"sync"
	"time"

	"github.com/pfrederiksen/carta-conjuntura/internal/report"
)

// Kind identifies a state transition.
type Kind string

const (
	FetchStart       Kind = "fetch-start"
	FetchResult      Kind = "fetch-result"
	InvalidInput     Kind = "invalid-input"
	NoBlockFound     Kind = "no-block-found"
	SearchStart      Kind = "search-start"
	DateMismatchSkip Kind = "date-mismatch-skip"
	MatchFound       Kind = "match-found"
	NoReportForDate  Kind = "no-report-for-date"
	SendResult       Kind = "send-result"
	RunFinished      Kind = "run-finished"
)

// Event carries the data of one transition. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind      Kind
	URL       string
	Bytes     int
	Blocks    int
	Target    string
	Date      string
	Title     string
	Recipient string
	Status    report.DeliveryStatus
	Duration  time.Duration
	Err       error
}

// Observer receives events.
type Observer interface {
	Observe(Event)
}

// Func adapts a function to Observer.
type Func func(Event)

// Observe calls f(e).
func (f Func) Observe(e Event) { f(e) }

// Nop discards every event.
var Nop Observer = Func(func(Event) {})

// OrNop returns o, or Nop when o is nil.
func OrNop(o Observer) Observer {
	if o == nil {
		return Nop
	}
	return o
}

// Recorder stores events in order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Observe appends e.
func (r *Recorder) Observe(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Kinds returns the recorded kinds in order.
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]Kind, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}

// Count returns how many events of kind k were recorded.
func (r *Recorder) Count(k Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
