package model

// RequestState is the record threaded through one classify -> route -> answer pass.
// Stages never mutate it in place: each stage returns an output that is merged into
// a new value with WithClassification or WithAnswer.
//
// Documents is shared read-only across concurrent requests.
type RequestState struct {
	Question       string
	Category       Category
	Confidence     float64
	Documents      map[string]string
	CurrentContext string
	Answer         string
	Source         *string
	Fallback       bool
}

// NewRequestState builds the initial state for a question. Category starts as general
// with zero confidence until the classifier has run.
func NewRequestState(question string, documents map[string]string) RequestState {
	return RequestState{
		Question:   question,
		Category:   CategoryGeneral,
		Confidence: 0,
		Documents:  documents,
	}
}

// TopicClassification is the structured result requested from the LLM.
type TopicClassification struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
}

// ClassifierOutput is the partial state update produced by the classifier.
type ClassifierOutput struct {
	Category       Category
	Confidence     float64
	CurrentContext string
}

// SpecialistOutput is the partial state update produced by a specialist.
// Fallback is set when Answer is the apology returned after a failed LLM call.
type SpecialistOutput struct {
	Answer   string
	Source   *string
	Fallback bool
}

// WithClassification returns a copy of s with the classifier output merged in.
func (s RequestState) WithClassification(out ClassifierOutput) RequestState {
	s.Category = out.Category
	s.Confidence = out.Confidence
	s.CurrentContext = out.CurrentContext
	return s
}

// WithContext returns a copy of s with CurrentContext replaced.
func (s RequestState) WithContext(context string) RequestState {
	s.CurrentContext = context
	return s
}

// WithAnswer returns a copy of s with the specialist output merged in.
func (s RequestState) WithAnswer(out SpecialistOutput) RequestState {
	s.Answer = out.Answer
	s.Source = out.Source
	s.Fallback = out.Fallback
	return s
}

// Response flattens the fields a caller receives.
func (s RequestState) Response() Response {
	return Response{
		Answer:     s.Answer,
		Category:   string(s.Category),
		Confidence: s.Confidence,
		Source:     s.Source,
		Fallback:   s.Fallback,
	}
}

// QueryInput is the orchestrator input.
type QueryInput struct {
	Question  string            `json:"question"`
	Documents map[string]string `json:"-"`
}

// Response is the flat record returned for every question. Fallback is internal and
// never serialized.
type Response struct {
	Answer     string  `json:"answer"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Source     *string `json:"source"`
	Fallback   bool    `json:"-"`
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}
