package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/trip-assistant-poc/server/internal/agent/model"
)

// Sender delivers one prepared message.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// FeedbackNotifier mails feedback records to a single self-notify address.
type FeedbackNotifier struct {
	sender Sender
	email  string
}

func NewFeedbackNotifier(host string, port int, username, password, email string) *FeedbackNotifier {
	return NewFeedbackNotifierWithSender(gomail.NewDialer(host, port, username, password), email)
}

func NewFeedbackNotifierWithSender(sender Sender, email string) *FeedbackNotifier {
	return &FeedbackNotifier{sender: sender, email: email}
}

// NotifyFeedback sends fb to the configured address. The same address is sender and recipient.
func (n *FeedbackNotifier) NotifyFeedback(fb *model.Feedback) error {
	if fb == nil {
		return fmt.Errorf("feedback is nil")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.email)
	m.SetHeader("To", n.email)
	m.SetHeader("Subject", Subject(fb))
	m.SetBody("text/plain", Body(fb))

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send feedback email %s: %w", fb.ID, err)
	}
	return nil
}

func Subject(fb *model.Feedback) string {
	return fmt.Sprintf("Trip Assistant Feedback: %s", fb.Rating)
}

func Body(fb *model.Feedback) string {
	return fmt.Sprintf("Rating: %s\nMessage ID: %s\nMessage Preview: %s\nComment: %s\nFeedback ID: %s\nTime: %s",
		fb.Rating,
		fb.MessageID,
		fb.MessagePreview,
		fb.Comment,
		fb.ID,
		fb.CreatedAt.UTC().Format(time.RFC3339),
	)
}
