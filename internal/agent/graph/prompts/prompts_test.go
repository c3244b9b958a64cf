package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderClassifier(t *testing.T) {
	out, err := RenderClassifier(context.Background(), "What time is our flight?")
	require.NoError(t, err)

	assert.Contains(t, out, "Question: What time is our flight?")
	for _, c := range []string{"flight", "car_rental", "routes", "aosta", "chamonix", "annecy_geneva", "general"} {
		assert.Contains(t, out, "- "+c+":")
	}
}

func TestRenderSpecialist(t *testing.T) {
	out, err := RenderSpecialist(context.Background(), "car rental", "Sixt pickup at Geneva airport, 09:00.", "Where do we pick up the car?")
	require.NoError(t, err)

	assert.Contains(t, out, "question about car rental using only the provided context")
	assert.Contains(t, out, "Sixt pickup at Geneva airport, 09:00.")
	assert.Contains(t, out, "Question: Where do we pick up the car?")
}

func TestRenderKeepsBracesInValues(t *testing.T) {
	out, err := RenderGeneral(context.Background(), "=== flight ===\n{gate} B12", "Which gate?")
	require.NoError(t, err)

	assert.Contains(t, out, "{gate} B12")
	assert.Contains(t, out, "Question: Which gate?")
}
