package nodes

import (
	"github.com/trip-assistant-poc/server/internal/agent/model"
)

// Route maps a category to the name of its specialist node. It is total: an empty or
// unknown category routes to the general specialist.
func Route(category model.Category) string {
	t, _ := TopicFor(category)
	return t.Node
}
