// Package progress provides the injectable, purely observational progress
// stream used by the long-running pipeline stages.
//
// Nothing a Reporter does may affect computation: stages call it and move on.
// Library code never logs on its own; it reports to whatever Reporter the
// caller passed in (Nop by default).
//
//	r := progress.NewLogReporter(log.Default())
//	adj, err := components.Connect(points, adj, components.WithReporter(r))
package progress

import (
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// DefaultStep is the fraction of items between two Progress events.
const DefaultStep = 0.05

// Reporter receives coarse progress events.
type Reporter interface {
	// Stage announces that a named pipeline stage starts.
	Stage(name string)
	// Progress reports done out of total items for stage.
	Progress(stage string, done, total int)
}

// Nop discards every event.
type Nop struct{}

// Stage does nothing.
func (Nop) Stage(string) {}

// Progress does nothing.
func (Nop) Progress(string, int, int) {}

// Func adapts a plain progress callback; stage announcements are dropped.
type Func func(stage string, done, total int)

// Stage does nothing.
func (Func) Stage(string) {}

// Progress calls f.
func (f Func) Progress(stage string, done, total int) { f(stage, done, total) }

// OrNop returns r, or Nop when r is nil.
func OrNop(r Reporter) Reporter {
	if r == nil {
		return Nop{}
	}

	return r
}

// LogReporter writes events to a charmbracelet logger: stages at info
// level, progress at debug level.
type LogReporter struct {
	logger *log.Logger
}

// NewLogReporter wraps l; a nil l uses log.Default().
func NewLogReporter(l *log.Logger) *LogReporter {
	if l == nil {
		l = log.Default()
	}

	return &LogReporter{logger: l}
}

// Stage logs the stage name.
func (r *LogReporter) Stage(name string) {
	r.logger.Info(name)
}

// Progress logs the processed fraction.
func (r *LogReporter) Progress(stage string, done, total int) {
	pct := 100.0
	if total > 0 {
		pct = 100 * float64(done) / float64(total)
	}
	r.logger.Debug(stage,
		"done", humanize.Comma(int64(done)),
		"total", humanize.Comma(int64(total)),
		"pct", humanize.FtoaWithDigits(pct, 2),
	)
}

// Ticker throttles Progress events to one per Step fraction of Total.
// It is not safe for concurrent use; parallel stages serialize Tick calls.
type Ticker struct {
	r     Reporter
	stage string
	total int
	step  float64
	last  int // last bucket reported
	ended bool
}

// NewTicker returns a Ticker reporting to r (nil means Nop) every DefaultStep.
func NewTicker(r Reporter, stage string, total int) *Ticker {
	return &Ticker{r: OrNop(r), stage: stage, total: total, step: DefaultStep}
}

// WithStep overrides the reporting step (fraction in (0,1]); invalid values are ignored.
func (t *Ticker) WithStep(step float64) *Ticker {
	if step > 0 && step <= 1 {
		t.step = step
	}

	return t
}

// Tick records that done items are processed and emits an event when at
// least one step has elapsed since the last one, or when done reaches total.
func (t *Ticker) Tick(done int) {
	if t.total <= 0 || t.ended {
		return
	}
	// the epsilon absorbs rounding in done/total/step so 15% lands in bucket 3
	bucket := int(float64(done)/float64(t.total)/t.step + 1e-9)
	final := done >= t.total
	if bucket > t.last || final {
		t.last = bucket
		t.ended = final
		t.r.Progress(t.stage, done, t.total)
	}
}
