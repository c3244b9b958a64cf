package nodes

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/trip-assistant-poc/server/internal/agent/graph/prompts"
	"github.com/trip-assistant-poc/server/internal/agent/model"
	logx "github.com/trip-assistant-poc/server/pkg/logger"
)

const generalFallback = "Sorry, I couldn't process your question right now. " +
	"Please try rephrasing or asking something more specific."

// Specialists answers questions for every Topic with one shared prompt and error contract.
type Specialists struct {
	llm model.LLM
	options
}

// NewSpecialists creates the specialist set backed by llm.
func NewSpecialists(llm model.LLM, opts ...Option) *Specialists {
	return &Specialists{llm: llm, options: newOptions(opts)}
}

// Context returns the document text topic answers from. Topic specialists use the
// classifier's context, or look the document up when the state was built without it;
// when no document exists a short notice replaces it so the model is never asked with an
// empty context. The general specialist uses every document.
func (s *Specialists) Context(state model.RequestState, topic Topic) string {
	if topic.IsGeneral() {
		return joinDocuments(state.Documents)
	}
	if strings.TrimSpace(state.CurrentContext) != "" {
		return state.CurrentContext
	}
	if doc := state.Documents[topic.DocumentKey]; strings.TrimSpace(doc) != "" {
		return doc
	}
	logx.Warn().
		Str("specialist", topic.Node).
		Str("document", topic.DocumentKey).
		Msg("No document for topic; answering without context")
	return fmt.Sprintf("No document is available for %s.", topic.Label)
}

// Answer asks the model to answer question from docContext. A failed or empty model
// response yields the topic's fallback message and a nil source; it never returns an error.
func (s *Specialists) Answer(ctx context.Context, question, docContext string, topic Topic) model.SpecialistOutput {
	answer, err := s.generate(ctx, question, docContext, topic)
	if err != nil {
		logx.Error().
			Err(err).
			Str("specialist", topic.Node).
			Str("question_preview", preview(question)).
			Msg("Specialist failed; returning fallback answer")
		s.recorder.ObserveAnswer(topic.Node, true)
		return model.SpecialistOutput{Answer: FallbackAnswer(topic), Fallback: true}
	}

	s.recorder.ObserveAnswer(topic.Node, false)

	out := model.SpecialistOutput{Answer: answer}
	if !topic.IsGeneral() {
		out.Source = model.StringPtr(topic.DocumentKey)
	}
	return out
}

// FallbackAnswer is the user-safe message returned when topic cannot be answered.
func FallbackAnswer(topic Topic) string {
	if topic.IsGeneral() {
		return generalFallback
	}
	return fmt.Sprintf("Sorry, I couldn't retrieve %s information right now. Please try again.", topic.Label)
}

func (s *Specialists) generate(ctx context.Context, question, docContext string, topic Topic) (string, error) {
	if s.llm == nil {
		return "", fmt.Errorf("specialist llm is nil")
	}

	var (
		prompt string
		err    error
	)
	if topic.IsGeneral() {
		prompt, err = prompts.RenderGeneral(ctx, docContext, question)
	} else {
		prompt, err = prompts.RenderSpecialist(ctx, topic.Label, docContext, question)
	}
	if err != nil {
		return "", err
	}

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	answer, err := s.llm.Generate(callCtx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("generate: empty answer")
	}
	return answer, nil
}

// joinDocuments concatenates all documents in key order.
func joinDocuments(docs map[string]string) string {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, "=== "+name+" ===\n"+docs[name])
	}
	return strings.Join(parts, "\n\n")
}
