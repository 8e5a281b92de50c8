package models

// Wire types for the Gemini generateContent REST endpoint. The response
// schema constrains the model to emit a JSON array of post objects, which
// comes back JSON-encoded inside candidates[0].content.parts[0].text.

type GeminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type GeminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inlineData,omitempty"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiSchema struct {
	Type             string                  `json:"type"`
	Items            *GeminiSchema           `json:"items,omitempty"`
	Properties       map[string]GeminiSchema `json:"properties,omitempty"`
	PropertyOrdering []string                `json:"propertyOrdering,omitempty"`
}

type GeminiGenerationConfig struct {
	ResponseMimeType string        `json:"responseMimeType"`
	ResponseSchema   *GeminiSchema `json:"responseSchema,omitempty"`
}

type GeminiGenerateRequest struct {
	Contents         []GeminiContent         `json:"contents"`
	GenerationConfig *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiCandidate struct {
	Content GeminiContent `json:"content"`
}

type GeminiGenerateResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

// PostArraySchema is the response schema sent with every generation request:
// an array of objects with caption, hashtags, and emojis fields.
func PostArraySchema() *GeminiSchema {
	return &GeminiSchema{
		Type: "ARRAY",
		Items: &GeminiSchema{
			Type: "OBJECT",
			Properties: map[string]GeminiSchema{
				"caption": {Type: "STRING"},
				"hashtags": {
					Type:  "ARRAY",
					Items: &GeminiSchema{Type: "STRING"},
				},
				"emojis": {Type: "STRING"},
			},
			PropertyOrdering: []string{"caption", "hashtags", "emojis"},
		},
	}
}
