package metrics

import "time"

// PageAction enumerates what happened to a generated reference page.
type PageAction string

const (
	PageWritten   PageAction = "written"
	PageUnchanged PageAction = "unchanged"
	PagePruned    PageAction = "pruned"
)

// Recorder defines observability hooks for deploy and generation runs.
type Recorder interface {
	// ObserveCommand records one external tool invocation and its exit status.
	ObserveCommand(step string, d time.Duration, exitCode int)
	ObserveGeneration(d time.Duration)
	IncPage(action PageAction)
	IncSkipped(reason string)
	SetModules(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveCommand(string, time.Duration, int) {}
func (NoopRecorder) ObserveGeneration(time.Duration)           {}
func (NoopRecorder) IncPage(PageAction)                        {}
func (NoopRecorder) IncSkipped(string)                         {}
func (NoopRecorder) SetModules(int)                            {}
