package prompt

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spacesedan/captionflow/internal/models"
)

const MaxHashtagsPerPost = 10

// BuildParts assembles the user message for the generation API: one text
// part carrying the instructions and form input, plus an inline-data part
// when an image is attached. Keywords pass through verbatim.
func BuildParts(req models.GenerationRequest) []models.GeminiPart {
	parts := []models.GeminiPart{{Text: BuildInstructions(req)}}

	if req.HasImage() {
		parts = append(parts, models.GeminiPart{
			InlineData: &models.GeminiInlineData{
				MimeType: req.Image.MimeType,
				Data:     base64.StdEncoding.EncodeToString(req.Image.Data),
			},
		})
	}

	return parts
}

// BuildInstructions renders the natural-language instruction text. It asks
// for exactly req.Count distinct posts and spells out the expected JSON
// shape so providers without schema-constrained output still comply.
func BuildInstructions(req models.GenerationRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are a social media content generator. Based on the provided 'keywords', 'post_type', and 'platforms',
generate %d distinct social media posts. Each post should include:
- a social media caption
- a list of relevant hashtags (up to %d, without '#' prefix)
- appropriate emojis.
`, req.Count, MaxHashtagsPerPost)

	if req.HasImage() {
		b.WriteString("\nAn image is also provided. Please consider its content when generating the posts.\n")
	}

	fmt.Fprintf(&b, `
The output should be a JSON array of objects, where each object has the following structure:
{
  "caption": "Your generated caption here.",
  "hashtags": ["hashtag1", "hashtag2", ...],
  "emojis": "✨🚀"
}

Keywords: %s
Post Type: %s
Platforms: %s

Ensure each caption is engaging and suitable for the selected platforms.
`, req.Keywords, req.PostType, strings.Join(req.Platforms, ", "))

	return b.String()
}
