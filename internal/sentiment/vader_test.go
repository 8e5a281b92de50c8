package sentiment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/captionflow/internal/models"
)

func TestVaderAnnotator_Positive(t *testing.T) {
	annotator := NewVaderAnnotator()

	result, err := annotator.Annotate("I love this!")

	require.NoError(t, err)
	assert.Equal(t, models.SentimentPositive, result.Label)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 1.0)
}

func TestVaderAnnotator_Negative(t *testing.T) {
	annotator := NewVaderAnnotator()

	result, err := annotator.Annotate("I hate this")

	require.NoError(t, err)
	assert.Equal(t, models.SentimentNegative, result.Label)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 1.0)
}

func TestVaderAnnotator_Neutral(t *testing.T) {
	annotator := NewVaderAnnotator()

	result, err := annotator.Annotate("The meeting is at noon.")

	require.NoError(t, err)
	assert.Equal(t, models.SentimentNeutral, result.Label)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 1.0)
}

func TestVaderAnnotator_EmptyInput(t *testing.T) {
	annotator := NewVaderAnnotator()

	result, err := annotator.Annotate("")

	require.NoError(t, err)
	assert.Equal(t, models.SentimentNeutral, result.Label)
}

func TestVaderAnnotator_LongInputTruncated(t *testing.T) {
	annotator := NewVaderAnnotator()

	// A long input must not error; only the leading runes are scored.
	long := strings.Repeat("I love this! ", 500)
	result, err := annotator.Annotate(long)

	require.NoError(t, err)
	assert.Equal(t, models.SentimentPositive, result.Label)
}

func TestConvertMarkdownToText(t *testing.T) {
	plain := convertMarkdownToText("**Great** day at the beach! https://example.com/more")

	assert.NotContains(t, plain, "**")
	assert.NotContains(t, plain, "https://")
	assert.Contains(t, plain, "the beach")
}

func TestTruncateForAnalysis(t *testing.T) {
	short := "short caption"
	assert.Equal(t, short, truncateForAnalysis(short))

	long := strings.Repeat("a", MAX_ANALYZED_RUNES+100)
	assert.Len(t, []rune(truncateForAnalysis(long)), MAX_ANALYZED_RUNES)
}
