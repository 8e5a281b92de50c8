package generation

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/spacesedan/captionflow/internal/models"
	"github.com/spacesedan/captionflow/internal/prompt"
)

const (
	openAIProviderName = "openai"
	openAIModel        = openai.GPT4oMini
)

type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient builds the alternate generation provider. OpenAI chat
// completions have no inline-image part in this flow, so image requests
// fall back to the text prompt alone.
func NewOpenAIClient(apiKey string, timeout time.Duration) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = &http.Client{Timeout: timeout}

	slog.Info("[OpenAIClient] Initializing client",
		slog.String("model", openAIModel),
		slog.Duration("timeout", timeout))

	return &OpenAIClient{client: openai.NewClientWithConfig(config)}
}

func (o *OpenAIClient) GeneratePosts(ctx context.Context, req models.GenerationRequest) ([]models.RawPost, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openAIModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Respond only with a valid JSON array. Do not include any additional text or commentary.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt.BuildInstructions(req),
			},
		},
	})
	if err != nil {
		slog.Error("[OpenAIClient] Completion request failed",
			slog.String("error", err.Error()))
		return nil, &TransportError{Provider: openAIProviderName, Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &MalformedResponseError{
			Provider: openAIProviderName,
			Reason:   "completion contained no choices",
		}
	}

	cleaned := cleanModelResponse(resp.Choices[0].Message.Content)

	var posts []models.RawPost
	if err := json.Unmarshal([]byte(cleaned), &posts); err != nil {
		slog.Error("[OpenAIClient] Failed to unmarshal completion",
			slog.String("error", err.Error()),
			getPreview([]byte(cleaned)))
		return nil, &MalformedResponseError{
			Provider: openAIProviderName,
			Reason:   "completion payload is not a valid JSON array",
			Err:      err,
		}
	}

	return posts, nil
}

// cleanModelResponse strips Markdown code fences and any prose surrounding
// the JSON array. Chat models fence their JSON output often enough that
// unmarshalling the raw content directly is unreliable.
func cleanModelResponse(content string) string {
	cleaned := strings.TrimSpace(content)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start >= 0 && end > start {
		cleaned = cleaned[start : end+1]
	}

	return cleaned
}
