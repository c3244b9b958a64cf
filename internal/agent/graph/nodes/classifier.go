package nodes

import (
	"context"
	"fmt"

	"github.com/trip-assistant-poc/server/internal/agent/graph/parsers"
	"github.com/trip-assistant-poc/server/internal/agent/graph/prompts"
	"github.com/trip-assistant-poc/server/internal/agent/model"
	logx "github.com/trip-assistant-poc/server/pkg/logger"
)

// Classifier assigns a question to one of the fixed categories.
type Classifier struct {
	llm model.LLM
	options
}

// NewClassifier creates a Classifier backed by llm.
func NewClassifier(llm model.LLM, opts ...Option) *Classifier {
	return &Classifier{llm: llm, options: newOptions(opts)}
}

// Classify returns the category, confidence and document context for question.
// Any failure of the LLM call falls back to the general category with zero confidence
// and empty context; the error is logged and never returned.
func (c *Classifier) Classify(ctx context.Context, question string, docs map[string]string) model.ClassifierOutput {
	result, err := c.classify(ctx, question)
	if err != nil {
		logx.Error().
			Err(err).
			Str("component", NodeClassifier).
			Str("question_preview", preview(question)).
			Msg("Classifier failed; falling back to general")
		c.recorder.ObserveClassification(string(model.CategoryGeneral), true)
		return model.ClassifierOutput{
			Category:       model.CategoryGeneral,
			Confidence:     0,
			CurrentContext: "",
		}
	}

	docContext := ""
	if key := DocumentKey(result.Category); key != "" {
		docContext = docs[key]
	}

	logx.Debug().
		Str("component", NodeClassifier).
		Str("category", string(result.Category)).
		Float64("confidence", result.Confidence).
		Int("context_len", len(docContext)).
		Msg("Question classified")
	c.recorder.ObserveClassification(string(result.Category), false)

	return model.ClassifierOutput{
		Category:       result.Category,
		Confidence:     result.Confidence,
		CurrentContext: docContext,
	}
}

func (c *Classifier) classify(ctx context.Context, question string) (*model.TopicClassification, error) {
	if c.llm == nil {
		return nil, fmt.Errorf("classifier llm is nil")
	}

	prompt, err := prompts.RenderClassifier(ctx, question)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	result, err := c.llm.Classify(callCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	if err := parsers.Validate(result); err != nil {
		return nil, fmt.Errorf("invalid classification: %w", err)
	}
	return result, nil
}
