package observe

import (
	"github.com/pfrederiksen/carta-conjuntura/internal/logger"
	"github.com/pfrederiksen/carta-conjuntura/internal/report"
)

// LogObserver writes each event as a structured log line and updates
// counters and timings.
type LogObserver struct {
	Logger  *logger.Logger
	Metrics *logger.Metrics
}

// NewLogObserver uses the package-level logger and metrics.
func NewLogObserver() *LogObserver {
	return &LogObserver{Logger: logger.Default(), Metrics: logger.DefaultMetrics()}
}

// Observe logs e.
func (o *LogObserver) Observe(e Event) {
	log := o.Logger
	if log == nil {
		log = logger.Default()
	}
	if o.Metrics != nil {
		o.Metrics.IncrCounter("event." + string(e.Kind))
		if e.Duration > 0 {
			o.Metrics.RecordTiming(string(e.Kind), e.Duration)
		}
	}

	switch e.Kind {
	case FetchStart:
		log.Info("Starting GET request", logger.Fields{"url": e.URL})
	case FetchResult:
		if e.Err != nil {
			log.Error("Fetching HTML failed", logger.Fields{"url": e.URL, "duration": e.Duration.String()}, e.Err)
			return
		}
		log.Info("Request completed", logger.Fields{"url": e.URL, "bytes": e.Bytes, "duration": e.Duration.String()})
	case InvalidInput:
		log.Error("Markup given to the extractor is empty", nil, nil)
	case NoBlockFound:
		log.Warn("No <article> block found in the markup", nil)
	case SearchStart:
		log.Info("Looking for report published on date", logger.Fields{"target": e.Target})
	case DateMismatchSkip:
		log.Debug("Skipping block with another date", logger.Fields{"date": e.Date, "target": e.Target})
	case MatchFound:
		log.Info("Report found", logger.Fields{"title": e.Title, "date": e.Date})
	case NoReportForDate:
		log.Warn("No report found for date", logger.Fields{"target": e.Target, "blocks": e.Blocks})
	case SendResult:
		if e.Err != nil {
			log.Error("Sending e-mail failed", logger.Fields{"recipient": e.Recipient}, e.Err)
			return
		}
		log.Info("E-mail sent", logger.Fields{"recipient": e.Recipient})
	case RunFinished:
		fields := logger.Fields{"status": string(e.Status.Status), "mensagem": e.Status.Message}
		if e.Status.Status == report.StatusError {
			log.Error("Process finished", fields, nil)
		} else {
			log.Info("Process finished", fields)
		}
		if o.Metrics != nil {
			log.Debug("Run metrics", logger.Fields{"metrics": o.Metrics.GetSnapshot()})
		}
	default:
		log.Debug("Unknown event", logger.Fields{"kind": string(e.Kind)})
	}
}
