package sentiment

import (
	"github.com/spacesedan/captionflow/internal/models"
)

// Classifier inputs are capped at this many runes. The underlying models
// tolerate long inputs poorly (transformer token limits), so captions are
// truncated before scoring.
const MAX_ANALYZED_RUNES = 512

// Annotator scores a single caption. Implementations are constructed once
// at startup and are safe for reuse across requests.
type Annotator interface {
	Annotate(text string) (models.SentimentResult, error)
}

func truncateForAnalysis(text string) string {
	runes := []rune(text)
	if len(runes) <= MAX_ANALYZED_RUNES {
		return text
	}
	return string(runes[:MAX_ANALYZED_RUNES])
}
