package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/spacesedan/captionflow/internal/models"
	"github.com/spacesedan/captionflow/internal/prompt"
)

const (
	geminiProviderName   = "gemini"
	GEMINI_API_BASE      = "https://generativelanguage.googleapis.com/v1beta/models"
	GEMINI_DEFAULT_MODEL = "gemini-2.0-flash"
)

type GeminiClient struct {
	client  *http.Client
	baseURL string
	model   string
	apiKey  string
}

// NewGeminiClient builds the default generation client. The API key is
// appended as a query parameter on each request, per the endpoint's auth
// scheme. No retries: a failed request surfaces to the user, who may retry.
func NewGeminiClient(apiKey, model string, timeout time.Duration) *GeminiClient {
	if model == "" {
		model = GEMINI_DEFAULT_MODEL
	}
	slog.Info("[GeminiClient] Initializing client",
		slog.String("model", model),
		slog.Duration("timeout", timeout))
	return &GeminiClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: GEMINI_API_BASE,
		model:   model,
		apiKey:  apiKey,
	}
}

// WithBaseURL overrides the endpoint base, used by tests.
func (g *GeminiClient) WithBaseURL(base string) *GeminiClient {
	g.baseURL = base
	return g
}

func (g *GeminiClient) endpoint() string {
	return fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, url.QueryEscape(g.apiKey))
}

func (g *GeminiClient) GeneratePosts(ctx context.Context, req models.GenerationRequest) ([]models.RawPost, error) {
	payload := models.GeminiGenerateRequest{
		Contents: []models.GeminiContent{
			{Role: "user", Parts: prompt.BuildParts(req)},
		},
		GenerationConfig: &models.GeminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   models.PostArraySchema(),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		slog.Error("[GeminiClient] Request failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return nil, &TransportError{Provider: geminiProviderName, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Provider: geminiProviderName, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Error("[GeminiClient] Non-2xx response",
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return nil, &TransportError{Provider: geminiProviderName, StatusCode: resp.StatusCode}
	}

	var parsed models.GeminiGenerateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		slog.Error("[GeminiClient] Failed to unmarshal response",
			slog.String("error", err.Error()),
			getPreview(respBody))
		return nil, &MalformedResponseError{
			Provider: geminiProviderName,
			Reason:   "response body is not valid JSON",
			Err:      err,
		}
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		slog.Error("[GeminiClient] Response missing candidates or parts", getPreview(respBody))
		return nil, &MalformedResponseError{
			Provider: geminiProviderName,
			Reason:   "missing candidates or content parts",
		}
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	var posts []models.RawPost
	if err := json.Unmarshal([]byte(text), &posts); err != nil {
		slog.Error("[GeminiClient] Embedded payload failed to parse",
			slog.String("error", err.Error()),
			getPreview([]byte(text)))
		return nil, &MalformedResponseError{
			Provider: geminiProviderName,
			Reason:   "embedded post payload is not valid JSON",
			Err:      err,
		}
	}

	slog.Info("[GeminiClient] Generation request successful",
		slog.Int("posts", len(posts)),
		slog.Duration("elapsed", time.Since(start)))

	return posts, nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
