package model

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
)

func TestUsageOf(t *testing.T) {
	tu := &schema.TokenUsage{PromptTokens: 1_000_000, CompletionTokens: 500_000, TotalTokens: 1_500_000}

	u := UsageOf("gemini-2.5-flash", tu)
	assert.Equal(t, "gemini-2.5-flash", u.Model)
	assert.Equal(t, 1_500_000, u.TotalTokens)
	assert.InDelta(t, 0.30, u.InputCost, 1e-9)
	assert.InDelta(t, 1.25, u.OutputCost, 1e-9)
	assert.InDelta(t, 1.55, u.TotalCost(), 1e-9)
}

func TestUsageOfUnknownModelIsFree(t *testing.T) {
	u := UsageOf("unknown-model", &schema.TokenUsage{PromptTokens: 10, CompletionTokens: 10})
	assert.Equal(t, 10, u.PromptTokens)
	assert.Zero(t, u.TotalCost())
}

func TestUsageOfNil(t *testing.T) {
	u := UsageOf("gemini-2.5-flash", nil)
	assert.Equal(t, Usage{Model: "gemini-2.5-flash"}, u)
}
