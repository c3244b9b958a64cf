package api

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/trip-assistant-poc/server/internal/agent/assistant"
	"github.com/trip-assistant-poc/server/internal/agent/model"
	errx "github.com/trip-assistant-poc/server/internal/core/error"
	logx "github.com/trip-assistant-poc/server/pkg/logger"
)

const (
	ServiceName    = "trip-assistant-api"
	ServiceVersion = "0.1.0"
)

// Assistant is the service behind the message and feedback endpoints.
type Assistant interface {
	Ask(ctx context.Context, question string) (*assistant.Answer, error)
	SubmitFeedback(ctx context.Context, messageID, rating, comment string) (*model.Feedback, error)
}

type handler struct {
	assistant Assistant
	limit     fiber.Handler
}

func (h *handler) RegisterRoutes(r fiber.Router) {
	r.Get("/health", h.Health)
	if h.limit != nil {
		r.Post("/messages", h.limit, h.CreateMessage)
	} else {
		r.Post("/messages", h.CreateMessage)
	}
	r.Post("/feedback", h.CreateFeedback)
}

func (h *handler) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(HealthResponse{Status: "healthy", Service: ServiceName, Version: ServiceVersion})
}

func (h *handler) CreateMessage(ctx *fiber.Ctx) error {
	var req MessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return unprocessable(ctx, "invalid request body")
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return unprocessable(ctx, "Question cannot be empty or whitespace only")
	}
	if err := validate.Struct(&req); err != nil {
		return unprocessable(ctx, validationDetail(err))
	}

	out, err := h.assistant.Ask(ctx.UserContext(), req.Question)
	if err != nil {
		if errx.StatusOf(err) == fiber.StatusBadRequest {
			return unprocessable(ctx, err.Error())
		}
		logx.Error().Err(err).Str("request_id", requestID(ctx)).Msg("Message request failed")
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Detail: "Processing failed"})
	}

	return ctx.JSON(MessageResponse{
		MessageID:  out.MessageID,
		Answer:     out.Answer,
		Category:   out.Category,
		Confidence: out.Confidence,
		Source:     out.Source,
	})
}

func (h *handler) CreateFeedback(ctx *fiber.Ctx) error {
	var req FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return unprocessable(ctx, "invalid request body")
	}
	req.MessageID = strings.TrimSpace(req.MessageID)
	if err := validate.Struct(&req); err != nil {
		return unprocessable(ctx, validationDetail(err))
	}

	fb, err := h.assistant.SubmitFeedback(ctx.UserContext(), req.MessageID, req.Rating, req.Comment)
	if err != nil {
		logx.Error().Err(err).Str("request_id", requestID(ctx)).Msg("Feedback request failed")
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Detail: "Failed to store feedback"})
	}

	return ctx.JSON(FeedbackResponse{Status: "received", MessageID: fb.MessageID, ID: fb.ID})
}

func unprocessable(ctx *fiber.Ctx, detail string) error {
	return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Detail: detail})
}
