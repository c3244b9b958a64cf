package model

import "context"

// LLM is the language model capability the agent consumes. Both calls may fail with any
// provider error (timeout, rate limit, malformed output); callers treat all failures alike.
type LLM interface {
	// Classify asks for a structured TopicClassification.
	Classify(ctx context.Context, prompt string) (*TopicClassification, error)
	// Generate asks for a free-text answer.
	Generate(ctx context.Context, prompt string) (string, error)
}
