package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spacesedan/captionflow/internal/generation"
	"github.com/spacesedan/captionflow/internal/models"
	"github.com/spacesedan/captionflow/internal/service"
)

// CaptionGenerator is what the handler needs from the caption service.
type CaptionGenerator interface {
	Generate(ctx context.Context, req models.GenerationRequest) ([]models.AnnotatedPost, error)
}

type CaptionHandler struct {
	s CaptionGenerator
}

func NewCaptionHandler(s CaptionGenerator) *CaptionHandler {
	return &CaptionHandler{s: s}
}

type GenerateResponse struct {
	RequestID string                 `json:"request_id"`
	Posts     []models.AnnotatedPost `json:"posts"`
}

// GenerateCaptions accepts the generation form and runs the pipeline.
// Fields: keywords, post_type, count, platforms (repeated), image (file).
func (h *CaptionHandler) GenerateCaptions(c *fiber.Ctx) error {
	requestID := uuid.NewString()

	req := models.GenerationRequest{
		Keywords: c.FormValue("keywords"),
		PostType: c.FormValue("post_type"),
		Count:    1,
	}

	if countStr := c.FormValue("count"); countStr != "" {
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "count must be a number between 1 and 5",
			})
		}
		req.Count = count
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}
	req.Platforms = form.Value["platforms"]

	if files := form.File["image"]; len(files) > 0 {
		image, err := readImage(files[0])
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		req.Image = image
	}

	slog.Info("[CaptionHandler] Generation request received",
		slog.String("request_id", requestID),
		slog.String("post_type", req.PostType),
		slog.Int("count", req.Count),
		slog.Bool("has_image", req.HasImage()))

	annotated, err := h.s.Generate(c.Context(), req)
	if err != nil {
		return writeGenerationError(c, requestID, err)
	}

	return c.Status(fiber.StatusOK).JSON(GenerateResponse{
		RequestID: requestID,
		Posts:     annotated,
	})
}

func (h *CaptionHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// writeGenerationError converts pipeline errors into user-visible messages.
// The three error kinds stay distinguishable for the presentation layer.
func writeGenerationError(c *fiber.Ctx, requestID string, err error) error {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationErr.Reason,
		})
	}

	var transportErr *generation.TransportError
	if errors.As(err, &transportErr) {
		slog.Error("[CaptionHandler] Generation transport failure",
			slog.String("request_id", requestID),
			slog.String("error", transportErr.Error()))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Network or API error: " + transportErr.Error() + ". Please check your connection or API key.",
		})
	}

	var malformedErr *generation.MalformedResponseError
	if errors.As(err, &malformedErr) {
		slog.Error("[CaptionHandler] Generation response malformed",
			slog.String("request_id", requestID),
			slog.String("error", malformedErr.Error()))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "The model returned an unexpected response. Please try again.",
		})
	}

	slog.Error("[CaptionHandler] Generation failed",
		slog.String("request_id", requestID),
		slog.String("error", err.Error()))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred.",
	})
}
