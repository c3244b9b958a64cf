package model

import (
	"context"
	"time"
)

// Feedback ratings.
const (
	RatingUp   = "up"
	RatingDown = "down"
)

// Message is one stored question/answer exchange.
type Message struct {
	ID         string
	CreatedAt  time.Time
	Question   string
	Answer     string
	Category   string
	Confidence float64
	Source     *string
}

// Feedback is a user rating of a stored message.
type Feedback struct {
	ID             string
	CreatedAt      time.Time
	MessageID      string
	MessagePreview string
	Rating         string
	Comment        string
}

// MessageRepository persists answered messages.
type MessageRepository interface {
	StoreMessage(ctx context.Context, msg *Message) error
	// GetMessage returns nil and no error when the message does not exist.
	GetMessage(ctx context.Context, id string) (*Message, error)
}

// FeedbackRepository persists feedback records.
type FeedbackRepository interface {
	StoreFeedback(ctx context.Context, fb *Feedback) error
}
