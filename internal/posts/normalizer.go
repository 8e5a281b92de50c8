package posts

import (
	"strings"
	"unicode"

	"github.com/spacesedan/captionflow/internal/models"
)

const (
	// FallbackCaption fills in when the provider omits a caption.
	FallbackCaption = "Could not generate caption."
	// FallbackEmojis fills in when the provider omits emojis.
	FallbackEmojis = "✨"
)

// Normalize turns raw provider posts into uniform records, one per input in
// the same order. Missing or malformed fields are defaulted, never rejected.
func Normalize(raw []models.RawPost) []models.PostRecord {
	records := make([]models.PostRecord, 0, len(raw))

	for _, item := range raw {
		record := models.PostRecord{
			Caption:  FallbackCaption,
			Hashtags: NormalizeHashtags(item.Hashtags),
			Emojis:   FallbackEmojis,
		}
		if item.Caption != nil {
			record.Caption = *item.Caption
		}
		if item.Emojis != nil {
			record.Emojis = *item.Emojis
		}
		records = append(records, record)
	}

	return records
}

// NormalizeHashtags strips whitespace and "#" characters from each tag,
// drops entries that become empty, and prefixes the survivors with a single
// "#". The operation is idempotent.
func NormalizeHashtags(tags []string) []string {
	normalized := make([]string, 0, len(tags))

	for _, tag := range tags {
		cleaned := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) || r == '#' {
				return -1
			}
			return r
		}, tag)

		if cleaned == "" {
			continue
		}
		normalized = append(normalized, "#"+cleaned)
	}

	return normalized
}
