package parsers

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/trip-assistant-poc/server/internal/agent/model"
)

// basic safety limits to avoid pathological inputs
const (
	maxContentLen = 16 * 1024 // classification output is a tiny JSON object
	maxErrSnippet = 200       // limit error snippet size
)

type rawClassification struct {
	Category   string          `json:"category"`
	Confidence json.RawMessage `json:"confidence"`
}

// ParseClassification decodes the classifier model output into a TopicClassification.
// The output must be a JSON object (optionally wrapped in a markdown code fence) whose
// category is a member of the fixed set and whose confidence lies in [0, 1].
func ParseClassification(content string) (out *model.TopicClassification, err error) {
	// panic safety
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("classification parser panic: %v", r)
		}
	}()

	if len(content) > maxContentLen {
		return nil, fmt.Errorf("classification output too large: %d bytes", len(content))
	}
	if !utf8.ValidString(content) {
		return nil, fmt.Errorf("classification output invalid utf8")
	}

	body, err := extractObject(content)
	if err != nil {
		return nil, err
	}

	var raw rawClassification
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("decode classification: %w (raw: %s)", err, snippet(body))
	}

	category, ok := model.ParseCategory(strings.ToLower(strings.TrimSpace(raw.Category)))
	if !ok {
		return nil, fmt.Errorf("category %q is not a known category", snippet(raw.Category))
	}

	confidence, err := parseConfidence(raw.Confidence)
	if err != nil {
		return nil, err
	}

	return &model.TopicClassification{Category: category, Confidence: confidence}, nil
}

// Validate checks a classification that was decoded elsewhere (e.g. by a provider SDK).
func Validate(c *model.TopicClassification) error {
	if c == nil {
		return fmt.Errorf("classification is nil")
	}
	if !c.Category.Valid() {
		return fmt.Errorf("category %q is not a known category", snippet(string(c.Category)))
	}
	return checkRange(c.Confidence)
}

func extractObject(content string) (string, error) {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("classification output is not a json object (raw: %s)", snippet(content))
	}
	return s[start : end+1], nil
}

// parseConfidence accepts a JSON number or a numeric string.
func parseConfidence(raw json.RawMessage) (float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, fmt.Errorf("confidence missing")
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("confidence parse: %w", err)
	}
	if err := checkRange(v); err != nil {
		return 0, err
	}
	return v, nil
}

func checkRange(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("confidence invalid number")
	}
	if v < 0 || v > 1 {
		return fmt.Errorf("confidence %v out of range [0, 1]", v)
	}
	return nil
}

func snippet(s string) string {
	if len(s) <= maxErrSnippet {
		return s
	}
	cut := maxErrSnippet
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
