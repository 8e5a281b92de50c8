package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/spacesedan/captionflow/internal/generation"
	"github.com/spacesedan/captionflow/internal/models"
	"github.com/spacesedan/captionflow/internal/posts"
	"github.com/spacesedan/captionflow/internal/sentiment"
)

// ValidationError is a caller-side input problem, caught before any network
// call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// CaptionService runs the full generation pipeline: validate, prompt, call
// the provider, normalize, annotate. No partial results: any provider error
// aborts the request.
type CaptionService struct {
	client    generation.Client
	annotator sentiment.Annotator
	validate  *validator.Validate
}

func NewCaptionService(client generation.Client, annotator sentiment.Annotator) *CaptionService {
	return &CaptionService{
		client:    client,
		annotator: annotator,
		validate:  validator.New(),
	}
}

func (s *CaptionService) Generate(ctx context.Context, req models.GenerationRequest) ([]models.AnnotatedPost, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	raw, err := s.client.GeneratePosts(ctx, req)
	if err != nil {
		return nil, err
	}

	// The provider is asked for exactly req.Count posts but the count is
	// not enforced; fewer results are passed through as-is.
	if len(raw) != req.Count {
		slog.Warn("[CaptionService] Provider returned unexpected post count",
			slog.Int("requested", req.Count),
			slog.Int("returned", len(raw)))
	}

	records := posts.Normalize(raw)

	annotated := make([]models.AnnotatedPost, 0, len(records))
	for _, record := range records {
		result, err := s.annotator.Annotate(record.Caption)
		if err != nil {
			return nil, fmt.Errorf("failed to annotate caption: %w", err)
		}
		annotated = append(annotated, models.AnnotatedPost{
			PostRecord: record,
			Sentiment:  result,
		})
	}

	return annotated, nil
}

func (s *CaptionService) validateRequest(req models.GenerationRequest) error {
	if req.Keywords == "" && !req.HasImage() {
		return &ValidationError{Reason: "enter some keywords or upload an image to generate content"}
	}

	if err := s.validate.Struct(req); err != nil {
		if len(req.Platforms) == 0 {
			return &ValidationError{Reason: "select at least one social media platform"}
		}
		return &ValidationError{Reason: fmt.Sprintf("invalid request: %v", err)}
	}

	if !models.IsValidPostTone(req.PostType) {
		return &ValidationError{Reason: fmt.Sprintf("unknown post type %q", req.PostType)}
	}

	for _, platform := range req.Platforms {
		if !models.IsValidPlatform(platform) {
			return &ValidationError{Reason: fmt.Sprintf("unknown platform %q", platform)}
		}
	}

	return nil
}
