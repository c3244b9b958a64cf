package nodes

import (
	"github.com/trip-assistant-poc/server/internal/agent/documents"
	"github.com/trip-assistant-poc/server/internal/agent/model"
)

// Graph node names.
const (
	NodeInit       = "init_state"
	NodeClassifier = "classifier"

	NodeFlight       = "flight_specialist"
	NodeCarRental    = "car_rental_specialist"
	NodeRoutes       = "routes_specialist"
	NodeAosta        = "aosta_specialist"
	NodeChamonix     = "chamonix_specialist"
	NodeAnnecyGeneva = "annecy_geneva_specialist"
	NodeGeneral      = "general_specialist"
)

// Topic describes one specialist: the category it serves, its graph node, the document
// it answers from and the label used in its prompt and fallback message.
type Topic struct {
	Category    model.Category
	Node        string
	DocumentKey string
	Label       string
}

// IsGeneral reports whether t is the general fallback specialist.
func (t Topic) IsGeneral() bool {
	return t.Category == model.CategoryGeneral
}

// The general specialist is last and has no single document.
var topics = []Topic{
	{Category: model.CategoryFlight, Node: NodeFlight, DocumentKey: documents.KeyFlight, Label: "a flight"},
	{Category: model.CategoryCarRental, Node: NodeCarRental, DocumentKey: documents.KeyCarRental, Label: "car rental"},
	{Category: model.CategoryRoutes, Node: NodeRoutes, DocumentKey: documents.KeyRoutesToAosta, Label: "driving routes"},
	{Category: model.CategoryAosta, Node: NodeAosta, DocumentKey: documents.KeyAostaValley, Label: "the Aosta Valley itinerary"},
	{Category: model.CategoryChamonix, Node: NodeChamonix, DocumentKey: documents.KeyChamonix, Label: "the Chamonix itinerary"},
	{Category: model.CategoryAnnecyGeneva, Node: NodeAnnecyGeneva, DocumentKey: documents.KeyAnnecyGeneva, Label: "the Annecy and Geneva itinerary"},
	{Category: model.CategoryGeneral, Node: NodeGeneral, Label: "general trip"},
}

// Topics returns every specialist topic, the general one last.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// TopicFor returns the topic of category c. Unknown categories yield the general topic and false.
func TopicFor(c model.Category) (Topic, bool) {
	for _, t := range topics {
		if t.Category == c {
			return t, true
		}
	}
	return generalTopic(), false
}

// DocumentKey returns the document a category answers from; empty for general and unknown.
func DocumentKey(c model.Category) string {
	t, _ := TopicFor(c)
	return t.DocumentKey
}

func generalTopic() Topic {
	return topics[len(topics)-1]
}
