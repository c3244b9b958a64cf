package model

import "time"

// ================ Config ================
type ClassifierModelConfig struct {
	Model       string  `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"CLASSIFIER_MAX_TOKENS" default:"256"`
	Temperature float32 `envconfig:"CLASSIFIER_TEMPERATURE" default:"0"`
}

type AnswerModelConfig struct {
	Model       string  `envconfig:"ANSWER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"ANSWER_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"ANSWER_TEMPERATURE" default:"0"`
	// ThinkingBudget caps Gemini thinking tokens; 0 disables thinking.
	ThinkingBudget int32 `envconfig:"ANSWER_THINKING_BUDGET" default:"0"`
}

type AgentConfig struct {
	// Timeout bounds every single LLM call; a timeout is handled like any provider failure.
	LLMTimeout   time.Duration `envconfig:"LLM_TIMEOUT" default:"20s"`
	DocumentsDir string        `envconfig:"DOCUMENTS_DIR" default:"data"`
	// AnswerCacheTTL keeps answers per normalized question; 0 disables the cache.
	AnswerCacheTTL time.Duration `envconfig:"ANSWER_CACHE_TTL" default:"0"`
}
