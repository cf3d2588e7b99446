// Package events implements the two-layer diagnostics bus (spec §4.M):
// pipeline lifecycle events consumed by an optional handler, and
// structured diagnostic events for operation/cache/network telemetry.
package events

import (
	"net/url"
	"time"

	"github.com/hostlistc/hostlistc/internal/idgen"
	"github.com/hostlistc/hostlistc/internal/logging"
)

// Phase identifies which part of a compilation a Progress event reports on.
type Phase string

const (
	PhaseSources         Phase = "sources"
	PhaseTransformations Phase = "transformations"
)

// Event is a single pipeline lifecycle occurrence. Kind selects which
// fields are meaningful; unused fields are left at their zero value.
type Event struct {
	Kind    string
	Source  string
	Name    string
	Phase   Phase
	Current int
	Total   int
	Message string
	Err     error
}

const (
	KindSourceStart          = "SourceStart"
	KindSourceComplete       = "SourceComplete"
	KindSourceError          = "SourceError"
	KindTransformationStart  = "TransformationStart"
	KindTransformationComplete = "TransformationComplete"
	KindTransformationError = "TransformationError"
	KindProgress             = "Progress"
	KindCompilationComplete  = "CompilationComplete"
)

// Handler receives pipeline events. It must not panic; Bus isolates
// handler failures regardless, but a well-behaved handler should not rely
// on that as its only safety net.
type Handler func(Event)

// Bus dispatches pipeline events to an optional handler, isolating any
// panic or logged failure so a misbehaving handler never aborts
// compilation (spec §4.M: "Handler exceptions are caught and logged; they
// never abort compilation").
type Bus struct {
	handler Handler
	logger  logging.Logger
}

// NewBus builds a Bus. A nil handler makes every Emit call a no-op.
func NewBus(handler Handler, logger logging.Logger) *Bus {
	return &Bus{handler: handler, logger: logging.OrNop(logger)}
}

// Emit delivers ev to the configured handler, if any, recovering from and
// logging any panic the handler raises.
func (b *Bus) Emit(ev Event) {
	if b.handler == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked", map[string]any{"kind": ev.Kind, "recovered": r})
		}
	}()
	b.handler(ev)
}

// Severity classifies a DiagnosticEvent.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Category groups diagnostic events by subsystem.
type Category string

const (
	CategoryOperation Category = "operation"
	CategoryCache     Category = "cache"
	CategoryNetwork   Category = "network"
	CategoryPerformance Category = "performance"
)

// DiagnosticEvent is a structured, correlatable telemetry record (spec
// §4.M layer 2).
type DiagnosticEvent struct {
	EventID       string
	Timestamp     time.Time
	Category      Category
	Severity      Severity
	Message       string
	CorrelationID string
	Fields        map[string]any
}

// DiagnosticSink receives diagnostic events, mirroring Handler's
// "optional, isolated" contract.
type DiagnosticSink func(DiagnosticEvent)

// DiagnosticBus builds DiagnosticEvents with a shared correlation ID and
// dispatches them to an optional sink.
type DiagnosticBus struct {
	sink          DiagnosticSink
	correlationID string
	logger        logging.Logger
}

// NewDiagnosticBus builds a DiagnosticBus. correlationID defaults to a
// freshly generated id when empty, so every event in one run can be
// grouped together.
func NewDiagnosticBus(sink DiagnosticSink, correlationID string, logger logging.Logger) *DiagnosticBus {
	if correlationID == "" {
		correlationID = idgen.New()
	}
	return &DiagnosticBus{sink: sink, correlationID: correlationID, logger: logging.OrNop(logger)}
}

// CorrelationID reports the id shared by every event this bus emits.
func (b *DiagnosticBus) CorrelationID() string { return b.correlationID }

// Emit builds and dispatches a DiagnosticEvent, isolating sink panics the
// same way Bus.Emit does.
func (b *DiagnosticBus) Emit(category Category, severity Severity, message string, fields map[string]any) {
	if b.sink == nil {
		return
	}
	ev := DiagnosticEvent{
		EventID:       idgen.New(),
		Timestamp:     time.Now().UTC(),
		Category:      category,
		Severity:      severity,
		Message:       message,
		CorrelationID: b.correlationID,
		Fields:        fields,
	}
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("diagnostic sink panicked", map[string]any{"eventId": ev.EventID, "recovered": r})
		}
	}()
	b.sink(ev)
}

// SanitizeURL replaces a URL's query string with the literal "[QUERY]" so
// diagnostic events never leak query parameters (spec §4.M).
func SanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.RawQuery == "" {
		return raw
	}
	u.RawQuery = "[QUERY]"
	return u.String()
}
