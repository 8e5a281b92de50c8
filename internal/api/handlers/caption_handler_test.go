package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/captionflow/internal/generation"
	"github.com/spacesedan/captionflow/internal/models"
	"github.com/spacesedan/captionflow/internal/service"
)

type fakeCaptionService struct {
	posts   []models.AnnotatedPost
	err     error
	lastReq models.GenerationRequest
}

func (f *fakeCaptionService) Generate(ctx context.Context, req models.GenerationRequest) ([]models.AnnotatedPost, error) {
	f.lastReq = req
	return f.posts, f.err
}

func newTestApp(svc CaptionGenerator) *fiber.App {
	app := fiber.New()
	h := NewCaptionHandler(svc)
	app.Post("/api/captions/generate", h.GenerateCaptions)
	app.Get("/healthz", h.Health)
	return app
}

type formField struct{ key, value string }

func newGenerateRequest(t *testing.T, fields []formField, imageBytes []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, f := range fields {
		require.NoError(t, writer.WriteField(f.key, f.value))
	}
	if imageBytes != nil {
		part, err := writer.CreateFormFile("image", "upload.png")
		require.NoError(t, err)
		_, err = part.Write(imageBytes)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/captions/generate", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func defaultFields() []formField {
	return []formField{
		{"keywords", "new smartphone launch"},
		{"post_type", "Promotional"},
		{"count", "2"},
		{"platforms", "Instagram"},
		{"platforms", "Twitter"},
	}
}

// Minimal valid PNG header so the sniffer accepts the upload.
var pngHeader = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d}

func TestGenerateCaptions_Success(t *testing.T) {
	svc := &fakeCaptionService{posts: []models.AnnotatedPost{
		{
			PostRecord: models.PostRecord{
				Caption:  "Say hello to the future.",
				Hashtags: []string{"#launch"},
				Emojis:   "📱",
			},
			Sentiment: models.SentimentResult{Label: models.SentimentPositive, Score: 0.97},
		},
	}}

	app := newTestApp(svc)
	resp, err := app.Test(newGenerateRequest(t, defaultFields(), nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed GenerateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	assert.NotEmpty(t, parsed.RequestID)
	require.Len(t, parsed.Posts, 1)
	assert.Equal(t, "Say hello to the future.", parsed.Posts[0].Caption)
	assert.Equal(t, models.SentimentPositive, parsed.Posts[0].Sentiment.Label)

	assert.Equal(t, "new smartphone launch", svc.lastReq.Keywords)
	assert.Equal(t, "Promotional", svc.lastReq.PostType)
	assert.Equal(t, 2, svc.lastReq.Count)
	assert.Equal(t, []string{"Instagram", "Twitter"}, svc.lastReq.Platforms)
	assert.False(t, svc.lastReq.HasImage())
}

func TestGenerateCaptions_ImageUpload(t *testing.T) {
	svc := &fakeCaptionService{posts: []models.AnnotatedPost{}}

	app := newTestApp(svc)
	resp, err := app.Test(newGenerateRequest(t, defaultFields(), pngHeader))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, svc.lastReq.HasImage())
	assert.Equal(t, "image/png", svc.lastReq.Image.MimeType)
}

func TestGenerateCaptions_RejectsNonImageUpload(t *testing.T) {
	svc := &fakeCaptionService{}

	app := newTestApp(svc)
	resp, err := app.Test(newGenerateRequest(t, defaultFields(), []byte("plain text, not an image")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateCaptions_ValidationError(t *testing.T) {
	svc := &fakeCaptionService{err: &service.ValidationError{Reason: "select at least one social media platform"}}

	app := newTestApp(svc)
	resp, err := app.Test(newGenerateRequest(t, defaultFields(), nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "select at least one social media platform")
}

func TestGenerateCaptions_TransportError(t *testing.T) {
	svc := &fakeCaptionService{err: &generation.TransportError{Provider: "gemini", StatusCode: 500}}

	app := newTestApp(svc)
	resp, err := app.Test(newGenerateRequest(t, defaultFields(), nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Network or API error")
}

func TestGenerateCaptions_MalformedResponseErrorIsDistinct(t *testing.T) {
	svc := &fakeCaptionService{err: &generation.MalformedResponseError{Provider: "gemini", Reason: "missing candidates or content parts"}}

	app := newTestApp(svc)
	resp, err := app.Test(newGenerateRequest(t, defaultFields(), nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "unexpected response")
	assert.NotContains(t, string(body), "Network or API error")
}

func TestGenerateCaptions_BadCount(t *testing.T) {
	fields := []formField{
		{"keywords", "anything"},
		{"post_type", "General"},
		{"count", "lots"},
		{"platforms", "Instagram"},
	}

	app := newTestApp(&fakeCaptionService{})
	resp, err := app.Test(newGenerateRequest(t, fields, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newTestApp(&fakeCaptionService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
