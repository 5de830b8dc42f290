package metrics

import "time"

// OutcomeLabel enumerates document processing outcomes for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for the traversal engine. Implementations
// may forward to Prometheus, OpenTelemetry, etc. The NoopRecorder allows optional
// injection: components default to it when no recorder is configured.
type Recorder interface {
	IncPlanCacheHit()
	IncPlanCacheMiss()
	IncRenders()
	ObserveRenderDuration(d time.Duration)
	IncPlaceholderSubstitutions()
	IncDocumentOutcome(outcome OutcomeLabel)
	ObserveDocumentDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncPlanCacheHit()                      {}
func (NoopRecorder) IncPlanCacheMiss()                     {}
func (NoopRecorder) IncRenders()                           {}
func (NoopRecorder) ObserveRenderDuration(time.Duration)   {}
func (NoopRecorder) IncPlaceholderSubstitutions()          {}
func (NoopRecorder) IncDocumentOutcome(OutcomeLabel)       {}
func (NoopRecorder) ObserveDocumentDuration(time.Duration) {}
