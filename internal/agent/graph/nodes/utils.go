package nodes

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/trip-assistant-poc/server/internal/agent/metrics"
)

const (
	// DefaultLLMTimeout bounds one LLM call when no timeout is configured.
	DefaultLLMTimeout = 20 * time.Second
	// questionPreviewLen limits how much of a question goes into a log line.
	questionPreviewLen = 50
)

// Option configures a Classifier or Specialists.
type Option func(*options)

type options struct {
	timeout  time.Duration
	recorder metrics.Recorder
}

// WithTimeout bounds every LLM call made by the node.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		timeout:  DefaultLLMTimeout,
		recorder: metrics.Noop{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeout <= 0 {
		o.timeout = DefaultLLMTimeout
	}
	return o
}

func (o options) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.timeout)
}

// preview truncates s to questionPreviewLen runes for logging.
func preview(s string) string {
	if utf8.RuneCountInString(s) <= questionPreviewLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:questionPreviewLen]) + "..."
}
