// Package telemetry records workflow outcome events.
//
// Each workflow run produces exactly one outcome event carrying the package
// type, result, reason code, runtime identifier, and tool version. Events are
// delivered to a pluggable Sink and mirrored into Prometheus counters.
package telemetry

import (
	"sync"

	"github.com/ss22219/aws-toolkit-vscode/logutil"
)

// Result is the terminal outcome of a workflow run.
type Result string

const (
	ResultSucceeded Result = "Succeeded"
	ResultFailed    Result = "Failed"
	ResultCancelled Result = "Cancelled"
)

// Reason is the machine-readable cause attached to an outcome event.
// Reasons are mutually exclusive; the last value set before the event is
// recorded wins.
type Reason string

const (
	ReasonUnknown       Reason = "unknown"
	ReasonUserCancelled Reason = "userCancelled"
	ReasonFileNotFound  Reason = "fileNotFound"
	ReasonComplete      Reason = "complete"
	ReasonError         Reason = "error"
)

// CreateEvent is the outcome event for a project creation run.
type CreateEvent struct {
	PackageType string `json:"packageType"`
	Result      Result `json:"result"`
	Reason      Reason `json:"reason"`
	Runtime     string `json:"runtime,omitempty"`
	SamVersion  string `json:"samVersion,omitempty"`
}

// Sink receives outcome events.
type Sink interface {
	Record(event CreateEvent)
}

// LogSink writes events to the structured log. It is the default sink when
// no external telemetry backend is wired in.
type LogSink struct{}

// Record logs the event at info level.
func (LogSink) Record(event CreateEvent) {
	logutil.Info("telemetry event",
		"metric", "sam_init",
		"packageType", event.PackageType,
		"result", string(event.Result),
		"reason", string(event.Reason),
		"runtime", event.Runtime,
		"samVersion", event.SamVersion,
	)
}

// NoopSink discards events. Used when telemetry is disabled in settings.
type NoopSink struct{}

// Record discards the event.
func (NoopSink) Record(CreateEvent) {}

// Recorder delivers outcome events to a sink and mirrors them into
// Prometheus counters. A Recorder delivers at most one event; extra calls
// are ignored so workflow error paths cannot double-report.
type Recorder struct {
	mu       sync.Mutex
	sink     Sink
	recorded bool
}

// NewRecorder creates a Recorder delivering to sink. A nil sink falls back
// to LogSink.
func NewRecorder(sink Sink) *Recorder {
	if sink == nil {
		sink = LogSink{}
	}
	return &Recorder{sink: sink}
}

// Record delivers the event exactly once. Later calls on the same Recorder
// are dropped.
func (r *Recorder) Record(event CreateEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recorded {
		logutil.Debug("duplicate telemetry event dropped", "result", string(event.Result))
		return
	}
	r.recorded = true

	recordCreateMetrics(event)
	r.sink.Record(event)
}

// Recorded reports whether an event has been delivered.
func (r *Recorder) Recorded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recorded
}
