package model

import "github.com/cloudwego/eino/schema"

// Pricing is the USD price per one million tokens.
type Pricing struct {
	InputPerM  float64
	OutputPerM float64
}

// Gemini standard tier, text only.
var geminiPricing = map[string]Pricing{
	"gemini-2.5-pro":        {InputPerM: 1.25, OutputPerM: 10.00},
	"gemini-2.5-flash":      {InputPerM: 0.30, OutputPerM: 2.50},
	"gemini-2.5-flash-lite": {InputPerM: 0.10, OutputPerM: 0.40},
}

// Usage is the token usage and USD cost of one model call.
type Usage struct {
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	InputCost        float64
	OutputCost       float64
}

// TotalCost is InputCost plus OutputCost.
func (u Usage) TotalCost() float64 {
	return u.InputCost + u.OutputCost
}

// PricingFor returns the price of modelName; unknown models are free.
func PricingFor(modelName string) Pricing {
	return geminiPricing[modelName]
}

// UsageOf prices the token usage reported for a call to modelName. A nil usage yields a
// zero Usage for the model.
func UsageOf(modelName string, tu *schema.TokenUsage) Usage {
	u := Usage{Model: modelName}
	if tu == nil {
		return u
	}
	p := PricingFor(modelName)
	u.PromptTokens = tu.PromptTokens
	u.CompletionTokens = tu.CompletionTokens
	u.TotalTokens = tu.TotalTokens
	u.InputCost = p.InputPerM * float64(tu.PromptTokens) / 1e6
	u.OutputCost = p.OutputPerM * float64(tu.CompletionTokens) / 1e6
	return u
}
