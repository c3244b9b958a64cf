package nodes

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/trip-assistant-poc/server/internal/agent/model"
	logx "github.com/trip-assistant-poc/server/pkg/logger"
)

// NewInitNode creates the entry node that turns the query into a fresh RequestState.
func NewInitNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.QueryInput) (model.RequestState, error) {
		return model.NewRequestState(in.Question, in.Documents), nil
	})
}

// NewClassifierNode creates the node that classifies the question and merges the result.
func NewClassifierNode(c *Classifier) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state model.RequestState) (model.RequestState, error) {
		out := c.Classify(ctx, state.Question, state.Documents)
		return state.WithClassification(out), nil
	})
}

// NewRouteCondition creates the branch condition that picks the specialist node.
// A missing or unknown category is routed to the general specialist.
func NewRouteCondition() func(context.Context, model.RequestState) (string, error) {
	return func(ctx context.Context, state model.RequestState) (string, error) {
		if !state.Category.Valid() {
			logx.Warn().
				Str("category", string(state.Category)).
				Msg("No valid category set by classifier, routing to general")
			return NodeGeneral, nil
		}
		node := Route(state.Category)
		logx.Debug().
			Str("category", string(state.Category)).
			Float64("confidence", state.Confidence).
			Str("specialist", node).
			Msg("Routing question")
		return node, nil
	}
}

// NewSpecialistNode creates the answering node of topic.
func NewSpecialistNode(s *Specialists, topic Topic) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state model.RequestState) (model.RequestState, error) {
		docContext := s.Context(state, topic)
		next := state.WithContext(docContext)
		out := s.Answer(ctx, next.Question, docContext, topic)
		return next.WithAnswer(out), nil
	})
}

// EndNodes lists every node a route can lead to, for the graph branch.
func EndNodes() map[string]bool {
	m := make(map[string]bool, len(topics))
	for _, t := range topics {
		m[t.Node] = true
	}
	return m
}
