package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type MessageRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

type MessageResponse struct {
	MessageID  string  `json:"message_id"`
	Answer     string  `json:"answer"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Source     *string `json:"source"`
}

type FeedbackRequest struct {
	MessageID string `json:"message_id" validate:"required,max=128"`
	Rating    string `json:"rating" validate:"required,oneof=up down"`
	Comment   string `json:"comment" validate:"max=2000"`
}

type FeedbackResponse struct {
	Status    string `json:"status"`
	MessageID string `json:"message_id"`
	ID        string `json:"id"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validationDetail turns validator errors into one readable sentence.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}
