package nodes

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/trip-assistant-poc/server/internal/agent/graph/parsers"
	"github.com/trip-assistant-poc/server/internal/agent/metrics"
	"github.com/trip-assistant-poc/server/internal/agent/model"
	errx "github.com/trip-assistant-poc/server/internal/core/error"
	logx "github.com/trip-assistant-poc/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey           string
	BaseURL          string
	ClassifierConfig *model.ClassifierModelConfig
	AnswerConfig     *model.AnswerModelConfig
	Recorder         metrics.Recorder
}

// GeminiLLM implements model.LLM on Gemini. Classification uses the genai client with a
// response schema; answers go through the Eino Gemini chat model.
type GeminiLLM struct {
	client     *genai.Client
	answer     *gemini.ChatModel
	classifier model.ClassifierModelConfig
	answerName string
	recorder   metrics.Recorder
}

// NewGeminiLLM creates the Gemini client and answer chat model with the given configuration
func NewGeminiLLM(ctx context.Context, config ChatModelConfig) (*GeminiLLM, error) {
	if config.ClassifierConfig == nil || config.AnswerConfig == nil {
		return nil, fmt.Errorf("chat model config is incomplete")
	}
	if config.Recorder == nil {
		config.Recorder = metrics.Noop{}
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	answerCfg := config.AnswerConfig
	chatModelAnswer, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       answerCfg.Model,
		Temperature: &answerCfg.Temperature,
		MaxTokens:   &answerCfg.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(answerCfg.ThinkingBudget),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating answer model")
		return nil, fmt.Errorf("error creating answer model: %w", err)
	}

	return &GeminiLLM{
		client:     client,
		answer:     chatModelAnswer,
		classifier: *config.ClassifierConfig,
		answerName: answerCfg.Model,
		recorder:   config.Recorder,
	}, nil
}

// Classify requests a TopicClassification constrained by a JSON response schema.
func (g *GeminiLLM) Classify(ctx context.Context, prompt string) (*model.TopicClassification, error) {
	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx,
		g.classifier.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(g.classifier.Temperature),
			MaxOutputTokens:  int32(g.classifier.MaxTokens),
			ResponseMIMEType: "application/json",
			ResponseSchema:   classificationSchema(),
		},
	)
	g.recorder.ObserveLLMCall("classify", g.classifier.Model, err == nil, time.Since(start))
	if err != nil {
		return nil, errx.WrapProvider(fmt.Errorf("classify: %w", err))
	}

	result, err := parsers.ParseClassification(resp.Text())
	if err != nil {
		return nil, errx.WrapProvider(err)
	}
	return result, nil
}

// Generate requests a free-text answer for prompt.
func (g *GeminiLLM) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := g.answer.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	g.recorder.ObserveLLMCall("generate", g.answerName, err == nil, time.Since(start))
	if err != nil {
		return "", errx.WrapProvider(fmt.Errorf("generate: %w", err))
	}
	if out == nil {
		return "", errx.WrapProvider(fmt.Errorf("generate: nil message"))
	}
	logUsage(g.answerName, out)
	return out.Content, nil
}

// classificationSchema constrains the classifier output to the category enum and a bounded confidence.
func classificationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category": {
				Type:        genai.TypeString,
				Description: "The topic category of the question",
				Enum:        model.CategoryNames(),
			},
			"confidence": {
				Type:        genai.TypeNumber,
				Description: "Confidence score between 0.0 and 1.0",
				Minimum:     genai.Ptr(0.0),
				Maximum:     genai.Ptr(1.0),
			},
		},
		Required: []string{"category", "confidence"},
	}
}

// logUsage logs the token usage and cost of an answer call.
func logUsage(modelName string, out *schema.Message) {
	if out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	u := model.UsageOf(modelName, out.ResponseMeta.Usage)
	logx.Debug().
		Str("model", u.Model).
		Int("prompt_tokens", u.PromptTokens).
		Int("completion_tokens", u.CompletionTokens).
		Int("total_tokens", u.TotalTokens).
		Float64("input_cost_usd", u.InputCost).
		Float64("output_cost_usd", u.OutputCost).
		Float64("total_cost_usd", u.TotalCost()).
		Msg("LLM usage")
}

var _ model.LLM = (*GeminiLLM)(nil)
