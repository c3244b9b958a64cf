// Package metrics records assistant and LLM metrics.
package metrics

import "time"

// Recorder receives metrics events from the agent.
type Recorder interface {
	// ObserveClassification records one classifier run; fallback is true when the
	// classifier recovered from a failure.
	ObserveClassification(category string, fallback bool)
	// ObserveAnswer records one specialist run.
	ObserveAnswer(specialist string, fallback bool)
	// ObserveLLMCall records one call to the language model.
	ObserveLLMCall(operation, model string, success bool, duration time.Duration)
	// ObserveRequest records one assistant request end to end.
	ObserveRequest(category string, cached bool, duration time.Duration)
}

// Noop discards all events.
type Noop struct{}

func (Noop) ObserveClassification(string, bool) {}
func (Noop) ObserveAnswer(string, bool) {}
func (Noop) ObserveLLMCall(string, string, bool, time.Duration) {}
func (Noop) ObserveRequest(string, bool, time.Duration) {}

var _ Recorder = Noop{}

func outcome(fallback bool) string {
	if fallback {
		return "fallback"
	}
	return "ok"
}
