package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trip-assistant-poc/server/internal/agent/assistant"
	"github.com/trip-assistant-poc/server/internal/agent/metrics"
	"github.com/trip-assistant-poc/server/internal/agent/model"
	errx "github.com/trip-assistant-poc/server/internal/core/error"
)

type fakeAssistant struct {
	answer      *assistant.Answer
	askErr      error
	feedbackErr error
	questions   []string
	feedback    []FeedbackRequest
}

func (f *fakeAssistant) Ask(_ context.Context, question string) (*assistant.Answer, error) {
	f.questions = append(f.questions, question)
	if f.askErr != nil {
		return nil, f.askErr
	}
	return f.answer, nil
}

func (f *fakeAssistant) SubmitFeedback(_ context.Context, messageID, rating, comment string) (*model.Feedback, error) {
	f.feedback = append(f.feedback, FeedbackRequest{MessageID: messageID, Rating: rating, Comment: comment})
	if f.feedbackErr != nil {
		return nil, f.feedbackErr
	}
	return &model.Feedback{ID: "fb-1", MessageID: messageID, Rating: rating}, nil
}

func carRentalAnswer() *assistant.Answer {
	return &assistant.Answer{
		MessageID: "msg-1",
		Response: model.Response{
			Answer:     "Sixt desk at Geneva airport.",
			Category:   "car_rental",
			Confidence: 0.92,
			Source:     model.StringPtr("car_rental"),
		},
	}
}

func do(t *testing.T, s *Server, method, path, body string, header map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var out map[string]any
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	s := New(Config{}, &fakeAssistant{})

	resp, body := do(t, s, http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"status": "healthy", "service": "trip-assistant-api", "version": "0.1.0"}, body)
}

func TestCreateMessage(t *testing.T) {
	a := &fakeAssistant{answer: carRentalAnswer()}
	s := New(Config{}, a)

	resp, body := do(t, s, http.MethodPost, "/api/messages", `{"question":"  Where is the car?  "}`, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "msg-1", body["message_id"])
	assert.Equal(t, "car_rental", body["category"])
	assert.Equal(t, 0.92, body["confidence"])
	assert.Equal(t, "car_rental", body["source"])
	assert.Equal(t, []string{"Where is the car?"}, a.questions)
}

func TestCreateMessageNullSource(t *testing.T) {
	answer := carRentalAnswer()
	answer.Category = "general"
	answer.Source = nil
	s := New(Config{}, &fakeAssistant{answer: answer})

	_, body := do(t, s, http.MethodPost, "/api/messages", `{"question":"Tell me about the trip"}`, nil)

	v, ok := body["source"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestCreateMessageRejectsBlankQuestion(t *testing.T) {
	a := &fakeAssistant{answer: carRentalAnswer()}
	s := New(Config{}, a)

	for _, payload := range []string{`{"question":""}`, `{"question":"   "}`, `{}`, `not json`} {
		resp, body := do(t, s, http.MethodPost, "/api/messages", payload, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, payload)
		assert.NotEmpty(t, body["detail"], payload)
	}
	assert.Empty(t, a.questions)
}

func TestCreateMessageAssistantFailure(t *testing.T) {
	s := New(Config{}, &fakeAssistant{askErr: errors.New("graph compile: boom")})

	resp, body := do(t, s, http.MethodPost, "/api/messages", `{"question":"When do we leave?"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Processing failed", body["detail"])
}

func TestCreateMessageValidationFromAssistant(t *testing.T) {
	s := New(Config{}, &fakeAssistant{askErr: errx.Validation("question must not be empty")})

	resp, _ := do(t, s, http.MethodPost, "/api/messages", `{"question":"x"}`, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCreateFeedback(t *testing.T) {
	a := &fakeAssistant{}
	s := New(Config{}, a)

	resp, body := do(t, s, http.MethodPost, "/api/feedback", `{"message_id":"msg-1","rating":"down","comment":"wrong desk"}`, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "received", body["status"])
	assert.Equal(t, "msg-1", body["message_id"])
	assert.Equal(t, "fb-1", body["id"])
	require.Len(t, a.feedback, 1)
	assert.Equal(t, "wrong desk", a.feedback[0].Comment)
}

func TestCreateFeedbackValidation(t *testing.T) {
	a := &fakeAssistant{}
	s := New(Config{}, a)

	cases := []string{
		`{"message_id":"msg-1","rating":"meh"}`,
		`{"message_id":"","rating":"up"}`,
		`{"message_id":"msg-1"}`,
		`[]`,
	}
	for _, payload := range cases {
		resp, body := do(t, s, http.MethodPost, "/api/feedback", payload, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, payload)
		assert.NotEmpty(t, body["detail"], payload)
	}
	assert.Empty(t, a.feedback)
}

func TestCreateFeedbackStorageFailure(t *testing.T) {
	s := New(Config{}, &fakeAssistant{feedbackErr: errors.New("redis down")})

	resp, body := do(t, s, http.MethodPost, "/api/feedback", `{"message_id":"msg-1","rating":"up"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to store feedback", body["detail"])
}

func TestRequestIDHeader(t *testing.T) {
	s := New(Config{}, &fakeAssistant{})

	resp, _ := do(t, s, http.MethodGet, "/api/health", "", nil)
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36)

	resp, _ = do(t, s, http.MethodGet, "/api/health", "", map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	s := New(Config{AllowedOrigins: "https://trip.example.com, http://localhost:5173"}, &fakeAssistant{})

	resp, _ := do(t, s, http.MethodGet, "/api/health", "", map[string]string{"Origin": "https://trip.example.com"})
	assert.Equal(t, "https://trip.example.com", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, _ = do(t, s, http.MethodGet, "/api/health", "", map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	rec.ObserveClassification("flight", false)
	s := New(Config{Gatherer: reg}, &fakeAssistant{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "assistant_classifications_total")
}

func TestMetricsEndpointDisabled(t *testing.T) {
	s := New(Config{}, &fakeAssistant{})

	resp, _ := do(t, s, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNormalizeOrigins(t *testing.T) {
	assert.Equal(t, "*", normalizeOrigins(""))
	assert.Equal(t, "a,b", normalizeOrigins(" a , b ,"))
}

func TestMessageRateLimit(t *testing.T) {
	s := New(Config{RateLimitRPS: 0.001, RateLimitBurst: 2}, &fakeAssistant{answer: carRentalAnswer()})

	for i := 0; i < 2; i++ {
		resp, _ := do(t, s, http.MethodPost, "/api/messages", `{"question":"Where is the car?"}`, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, body := do(t, s, http.MethodPost, "/api/messages", `{"question":"Where is the car?"}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Rate limit exceeded", body["detail"])

	resp, _ = do(t, s, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
