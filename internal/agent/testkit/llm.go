// Package testkit provides a deterministic LLM for agent tests.
package testkit

import (
	"context"
	"errors"
	"sync"

	"github.com/trip-assistant-poc/server/internal/agent/model"
)

// ErrProvider simulates a provider failure.
var ErrProvider = errors.New("provider unavailable")

// FakeLLM implements model.LLM with canned results and records every prompt it receives.
type FakeLLM struct {
	Classification *model.TopicClassification
	ClassifyErr    error
	Answer         string
	GenerateErr    error
	// Block makes every call wait for ctx to be done and return its error.
	Block bool

	mu              sync.Mutex
	classifyPrompts []string
	generatePrompts []string
}

// Classify returns the canned classification.
func (f *FakeLLM) Classify(ctx context.Context, prompt string) (*model.TopicClassification, error) {
	f.mu.Lock()
	f.classifyPrompts = append(f.classifyPrompts, prompt)
	f.mu.Unlock()

	if f.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.ClassifyErr != nil {
		return nil, f.ClassifyErr
	}
	if f.Classification == nil {
		return nil, errors.New("no classification configured")
	}
	c := *f.Classification
	return &c, nil
}

// Generate returns the canned answer.
func (f *FakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.generatePrompts = append(f.generatePrompts, prompt)
	f.mu.Unlock()

	if f.Block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.GenerateErr != nil {
		return "", f.GenerateErr
	}
	return f.Answer, nil
}

// ClassifyPrompts returns the prompts passed to Classify.
func (f *FakeLLM) ClassifyPrompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.classifyPrompts...)
}

// GeneratePrompts returns the prompts passed to Generate.
func (f *FakeLLM) GeneratePrompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.generatePrompts...)
}

var _ model.LLM = (*FakeLLM)(nil)
