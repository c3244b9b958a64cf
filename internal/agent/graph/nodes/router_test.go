package nodes

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/compose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trip-assistant-poc/server/internal/agent/model"
)

func TestRouteCoversEveryCategory(t *testing.T) {
	want := map[model.Category]string{
		model.CategoryFlight:       NodeFlight,
		model.CategoryCarRental:    NodeCarRental,
		model.CategoryRoutes:       NodeRoutes,
		model.CategoryAosta:        NodeAosta,
		model.CategoryChamonix:     NodeChamonix,
		model.CategoryAnnecyGeneva: NodeAnnecyGeneva,
		model.CategoryGeneral:      NodeGeneral,
	}
	for _, c := range model.Categories() {
		assert.Equal(t, want[c], Route(c), "category %s", c)
	}
}

func TestRouteUnknownGoesToGeneral(t *testing.T) {
	for _, c := range []model.Category{"", "weather", "FLIGHT"} {
		assert.NotPanics(t, func() {
			assert.Equal(t, NodeGeneral, Route(c), "category %q", c)
		})
	}
}

func TestRouteIsIdempotent(t *testing.T) {
	for _, c := range append(model.Categories(), "unknown") {
		assert.Equal(t, Route(c), Route(c))
	}
}

func TestEndNodesMatchesTopics(t *testing.T) {
	ends := EndNodes()
	assert.Len(t, ends, len(model.Categories()))
	for _, c := range model.Categories() {
		assert.True(t, ends[Route(c)], "missing end node for %s", c)
	}
}

func TestDocumentKey(t *testing.T) {
	assert.Equal(t, "routes_to_aosta", DocumentKey(model.CategoryRoutes))
	assert.Equal(t, "aosta_valley", DocumentKey(model.CategoryAosta))
	assert.Equal(t, "flight", DocumentKey(model.CategoryFlight))
	assert.Empty(t, DocumentKey(model.CategoryGeneral))
	assert.Empty(t, DocumentKey("weather"))
}

func TestRouteCondition(t *testing.T) {
	cond := NewRouteCondition()
	tests := []struct {
		name     string
		category model.Category
		want     string
	}{
		{name: "flight", category: model.CategoryFlight, want: NodeFlight},
		{name: "chamonix", category: model.CategoryChamonix, want: NodeChamonix},
		{name: "general", category: model.CategoryGeneral, want: NodeGeneral},
		{name: "empty", category: "", want: NodeGeneral},
		{name: "unknown", category: "weather", want: NodeGeneral},
		{name: "wrong case", category: "FLIGHT", want: NodeGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := model.NewRequestState("q", nil)
			state.Category = tt.category

			node, err := cond(context.Background(), state)
			require.NoError(t, err)
			assert.Equal(t, tt.want, node)
			assert.True(t, EndNodes()[node])
		})
	}
}

func TestNodeNamesAreNotReserved(t *testing.T) {
	names := []string{NodeInit, NodeClassifier}
	for node := range EndNodes() {
		names = append(names, node)
	}
	for _, n := range names {
		assert.NotEqual(t, compose.START, n)
		assert.NotEqual(t, compose.END, n)
	}
}
