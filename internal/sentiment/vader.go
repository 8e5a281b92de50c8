package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/captionflow/internal/models"
)

// Compound scores beyond this magnitude count as polarized.
const vaderThreshold = 0.20

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// VaderAnnotator scores captions with the VADER lexicon. It needs no model
// files and is the default backend.
type VaderAnnotator struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderAnnotator() *VaderAnnotator {
	return &VaderAnnotator{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderAnnotator) Annotate(text string) (models.SentimentResult, error) {
	plain := convertMarkdownToText(truncateForAnalysis(text))

	compound := v.analyzer.PolarityScores(plain).Compound

	var label string
	var score float64
	switch {
	case compound >= vaderThreshold:
		label = models.SentimentPositive
		score = compound
	case compound <= -vaderThreshold:
		label = models.SentimentNegative
		score = -compound
	default:
		label = models.SentimentNeutral
		score = 1 - absFloat(compound)
	}

	return models.SentimentResult{Label: label, Score: score}, nil
}

func removeLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// convertMarkdownToText flattens markdown so formatting characters do not
// skew the lexicon scoring.
func convertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := strings.Join(strings.Fields(string(output)), " ")

	return removeLinks(plainText)
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
