package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestState(t *testing.T) {
	docs := map[string]string{"flight": "LH 1234"}
	s := NewRequestState("What time is our flight?", docs)

	assert.Equal(t, "What time is our flight?", s.Question)
	assert.Equal(t, CategoryGeneral, s.Category)
	assert.Zero(t, s.Confidence)
	assert.Empty(t, s.Answer)
	assert.Nil(t, s.Source)
	assert.Equal(t, docs, s.Documents)
}

func TestMergeReturnsNewValue(t *testing.T) {
	initial := NewRequestState("q", nil)

	classified := initial.WithClassification(ClassifierOutput{
		Category:       CategoryFlight,
		Confidence:     0.95,
		CurrentContext: "LH 1234",
	})
	assert.Equal(t, CategoryGeneral, initial.Category)
	assert.Empty(t, initial.CurrentContext)
	assert.Equal(t, CategoryFlight, classified.Category)
	assert.Equal(t, 0.95, classified.Confidence)

	answered := classified.WithAnswer(SpecialistOutput{Answer: "At 09:00", Source: StringPtr("flight")})
	assert.Empty(t, classified.Answer)
	assert.Nil(t, classified.Source)

	resp := answered.Response()
	assert.Equal(t, "At 09:00", resp.Answer)
	assert.Equal(t, "flight", resp.Category)
	assert.Equal(t, 0.95, resp.Confidence)
	if assert.NotNil(t, resp.Source) {
		assert.Equal(t, "flight", *resp.Source)
	}
}

func TestFallbackFlagIsNotSerialized(t *testing.T) {
	state := NewRequestState("q", nil).WithAnswer(SpecialistOutput{Answer: "Sorry", Fallback: true})
	resp := state.Response()
	assert.True(t, resp.Fallback)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer":"Sorry","category":"general","confidence":0,"source":null}`, string(b))
}
