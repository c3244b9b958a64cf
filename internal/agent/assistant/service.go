// Package assistant serves trip questions and feedback on top of the response graph.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/trip-assistant-poc/server/internal/agent/graph"
	"github.com/trip-assistant-poc/server/internal/agent/metrics"
	"github.com/trip-assistant-poc/server/internal/agent/model"
	errx "github.com/trip-assistant-poc/server/internal/core/error"
	logx "github.com/trip-assistant-poc/server/pkg/logger"
)

const (
	// PingSentinel is answered with "pong" without running the graph.
	PingSentinel = "__ping__"
	// CategoryPing is the category of a ping answer.
	CategoryPing = "ping"

	messagePreviewLen = 200
	logPreviewLen     = 50
)

// Notifier delivers feedback notifications.
type Notifier interface {
	NotifyFeedback(fb *model.Feedback) error
}

// Answer is the response to one question together with the id it was stored under.
type Answer struct {
	MessageID string
	model.Response
}

// Service answers questions and records feedback.
type Service struct {
	runner    graph.Runner
	documents map[string]string
	messages  model.MessageRepository
	feedback  model.FeedbackRepository
	notifier  Notifier
	recorder  metrics.Recorder
	cache     *cache.Cache
	now       func() time.Time
	newID     func() string
	// notifications, when set, receives one value after each background notification.
	notifications chan struct{}
}

type Option func(*Service)

func WithMessageRepository(r model.MessageRepository) Option {
	return func(s *Service) { s.messages = r }
}

func WithFeedbackRepository(r model.FeedbackRepository) Option {
	return func(s *Service) { s.feedback = r }
}

// WithNotifier sets the notifier used for negative feedback with a comment.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithAnswerCache keeps answers per normalized question for ttl. A ttl of zero or less
// disables caching.
func WithAnswerCache(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cache = cache.New(ttl, 2*ttl)
		} else {
			s.cache = nil
		}
	}
}

// New creates a Service. documents is loaded once by the caller and shared read-only
// across requests.
func New(runner graph.Runner, documents map[string]string, opts ...Option) (*Service, error) {
	if runner == nil {
		return nil, fmt.Errorf("runner is nil")
	}
	s := &Service{
		runner:    runner,
		documents: documents,
		recorder:  metrics.Noop{},
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Ask answers question. The only errors are a blank question (400) and a failure of the
// graph itself; model failures already yield a fallback answer.
func (s *Service) Ask(ctx context.Context, question string) (*Answer, error) {
	start := s.now()
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errx.Validation("Question cannot be empty or whitespace only")
	}

	logx.Info().Str("question_preview", truncate(question, logPreviewLen)).Msg("Processing message request")

	if question == PingSentinel {
		return &Answer{
			MessageID: s.newID(),
			Response:  model.Response{Answer: "pong", Category: CategoryPing, Confidence: 1.0},
		}, nil
	}

	resp, cached, err := s.answer(ctx, question)
	if err != nil {
		logx.Error().
			Err(err).
			Str("question_preview", truncate(question, logPreviewLen)).
			Msg("Agent invocation failed")
		return nil, err
	}
	s.recorder.ObserveRequest(resp.Category, cached, time.Since(start))

	out := &Answer{MessageID: s.newID(), Response: resp}
	s.storeMessage(ctx, out, question)
	return out, nil
}

func (s *Service) answer(ctx context.Context, question string) (model.Response, bool, error) {
	key := cacheKey(question)
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			logx.Debug().Str("question_preview", truncate(question, logPreviewLen)).Msg("Answer served from cache")
			return v.(model.Response), true, nil
		}
	}

	resp, err := s.runner.Invoke(ctx, model.QueryInput{Question: question, Documents: s.documents})
	if err != nil {
		return model.Response{}, false, err
	}
	// Failed classifications and specialist apologies are retried on the next ask.
	if s.cache != nil && resp.Confidence > 0 && !resp.Fallback {
		s.cache.SetDefault(key, resp)
	}
	return resp, false, nil
}

// storeMessage persists the exchange. A storage failure is logged, the answer is still returned.
func (s *Service) storeMessage(ctx context.Context, a *Answer, question string) {
	if s.messages == nil {
		return
	}
	err := s.messages.StoreMessage(ctx, &model.Message{
		ID:         a.MessageID,
		CreatedAt:  s.now().UTC(),
		Question:   question,
		Answer:     a.Answer,
		Category:   a.Category,
		Confidence: a.Confidence,
		Source:     a.Source,
	})
	if err != nil {
		logx.Warn().Err(err).Str("message_id", a.MessageID).Msg("Failed to store message")
	}
}

// SubmitFeedback stores a rating of a previously answered message. The stored record carries
// a preview of the rated answer, empty when the message is unknown. Negative feedback with a
// comment is mailed in the background.
func (s *Service) SubmitFeedback(ctx context.Context, messageID, rating, comment string) (*model.Feedback, error) {
	if s.feedback == nil {
		return nil, fmt.Errorf("feedback repository not configured")
	}

	fb := &model.Feedback{
		ID:        s.newID(),
		CreatedAt: s.now().UTC(),
		MessageID: messageID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}
	fb.MessagePreview = s.messagePreview(ctx, messageID)

	logx.Info().Str("feedback_id", fb.ID).Str("rating", rating).Msg("Processing feedback")

	if err := s.feedback.StoreFeedback(ctx, fb); err != nil {
		logx.Error().Err(err).Str("feedback_id", fb.ID).Msg("Failed to store feedback")
		return nil, fmt.Errorf("store feedback: %w", err)
	}

	if s.notifier != nil && fb.Rating == model.RatingDown && fb.Comment != "" {
		s.notifyAsync(fb)
	}
	return fb, nil
}

func (s *Service) messagePreview(ctx context.Context, messageID string) string {
	if s.messages == nil {
		return ""
	}
	msg, err := s.messages.GetMessage(ctx, messageID)
	if err != nil {
		logx.Warn().Err(err).Str("message_id", messageID).Msg("Failed to load rated message")
		return ""
	}
	if msg == nil {
		return ""
	}
	return truncate(msg.Answer, messagePreviewLen)
}

func (s *Service) notifyAsync(fb *model.Feedback) {
	go func() {
		defer func() {
			if s.notifications != nil {
				s.notifications <- struct{}{}
			}
		}()
		if err := s.notifier.NotifyFeedback(fb); err != nil {
			logx.Error().Err(err).Str("feedback_id", fb.ID).Msg("Failed to send feedback email")
			return
		}
		logx.Info().Str("feedback_id", fb.ID).Msg("Feedback email sent")
	}()
}

func cacheKey(question string) string {
	return strings.Join(strings.Fields(strings.ToLower(question)), " ")
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
