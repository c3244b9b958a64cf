package graph

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/trip-assistant-poc/server/internal/agent/graph/nodes"
	"github.com/trip-assistant-poc/server/internal/agent/graph/observers"
	"github.com/trip-assistant-poc/server/internal/agent/metrics"
	"github.com/trip-assistant-poc/server/internal/agent/model"
	errx "github.com/trip-assistant-poc/server/internal/core/error"
	logx "github.com/trip-assistant-poc/server/pkg/logger"
)

const graphName = "trip_assistant"

// Runner is a thin wrapper to execute the compiled graph with the public QueryInput.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (model.Response, error)
}

// Config holds everything needed to compose the full response graph end-to-end.
// This is a convenience layer over GraphConfig that also constructs the Gemini LLM.
type Config struct {
	APIKey          string
	BaseURL         string
	ClassifierModel model.ClassifierModelConfig
	AnswerModel     model.AnswerModelConfig
	LLMTimeout      time.Duration
	Recorder        metrics.Recorder
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	Classifier  *nodes.Classifier
	Specialists *nodes.Specialists
}

// GraphBuilder handles the construction of the classify -> route -> answer graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.QueryInput, model.RequestState]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, model.RequestState]
}

// Invoke runs one question through the graph. Expected failures (provider errors, bad
// classification, missing documents) are absorbed into a fallback answer; an error is
// returned only for an empty question, a cancelled context or a broken graph.
func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (model.Response, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return model.Response{}, errx.Validation("question must not be empty")
	}

	out, err := r.runnable.Invoke(ctx, model.QueryInput{
		Question:  question,
		Documents: in.Documents,
	}, compose.WithCallbacks(observers.NewAllCallbacks()...))
	if err != nil {
		return model.Response{}, fmt.Errorf("invoke graph: %w", err)
	}

	if !out.Category.Valid() {
		out = out.WithClassification(model.ClassifierOutput{
			Category:       model.CategoryGeneral,
			CurrentContext: out.CurrentContext,
		})
	}
	return out.Response(), nil
}

// BuildResponseGraph creates the Gemini LLM, builds the graph, and returns a Runner.
func BuildResponseGraph(ctx context.Context, cfg Config) (Runner, error) {
	llm, err := nodes.NewGeminiLLM(ctx, nodes.ChatModelConfig{
		APIKey:           cfg.APIKey,
		BaseURL:          cfg.BaseURL,
		ClassifierConfig: &cfg.ClassifierModel,
		AnswerConfig:     &cfg.AnswerModel,
		Recorder:         cfg.Recorder,
	})
	if err != nil {
		return nil, err
	}

	return NewRunner(ctx, llm, nodes.WithTimeout(cfg.LLMTimeout), nodes.WithRecorder(cfg.Recorder))
}

// NewRunner builds the graph around any model.LLM implementation.
func NewRunner(ctx context.Context, llm model.LLM, opts ...nodes.Option) (Runner, error) {
	if llm == nil {
		return nil, fmt.Errorf("llm is nil")
	}

	runnable, err := BuildGraph(ctx, &GraphConfig{
		Classifier:  nodes.NewClassifier(llm, opts...),
		Specialists: nodes.NewSpecialists(llm, opts...),
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Response graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled agent graph:
//
//	START -> init_state -> classifier -> (route) -> <topic>_specialist -> END
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, model.RequestState], error) {
	// Basic config validation
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.Classifier == nil || config.Specialists == nil {
		return nil, fmt.Errorf("classifier and specialists must be set")
	}

	builder := &GraphBuilder{
		config: config,
		graph:  compose.NewGraph[model.QueryInput, model.RequestState](),
	}

	if err := builder.addNodes(); err != nil {
		return nil, err
	}
	if err := builder.addEdges(); err != nil {
		return nil, err
	}
	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// addNodes adds the entry, classifier and one node per specialist topic
func (b *GraphBuilder) addNodes() error {
	if err := b.graph.AddLambdaNode(nodes.NodeInit, nodes.NewInitNode()); err != nil {
		return fmt.Errorf("add %s node: %w", nodes.NodeInit, err)
	}
	if err := b.graph.AddLambdaNode(nodes.NodeClassifier, nodes.NewClassifierNode(b.config.Classifier)); err != nil {
		return fmt.Errorf("add %s node: %w", nodes.NodeClassifier, err)
	}
	for _, topic := range nodes.Topics() {
		if err := b.graph.AddLambdaNode(topic.Node, nodes.NewSpecialistNode(b.config.Specialists, topic)); err != nil {
			return fmt.Errorf("add %s node: %w", topic.Node, err)
		}
	}
	return nil
}

// addEdges creates the fixed forward connections; every specialist ends the run
func (b *GraphBuilder) addEdges() error {
	edges := [][2]string{
		{compose.START, nodes.NodeInit},
		{nodes.NodeInit, nodes.NodeClassifier},
	}
	for _, topic := range nodes.Topics() {
		edges = append(edges, [2]string{topic.Node, compose.END})
	}

	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			return fmt.Errorf("add edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

// addBranches routes the classified state to exactly one specialist
func (b *GraphBuilder) addBranches() error {
	routeBranch := compose.NewGraphBranch(nodes.NewRouteCondition(), nodes.EndNodes())
	if err := b.graph.AddBranch(nodes.NodeClassifier, routeBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding route branch")
		return fmt.Errorf("error adding route branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, model.RequestState], error) {
	// One forward pass: start, classifier, specialist, plus headroom.
	const maxSteps = 10

	runnable, err := b.graph.Compile(ctx,
		compose.WithGraphName(graphName),
		compose.WithMaxRunSteps(maxSteps),
	)
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
