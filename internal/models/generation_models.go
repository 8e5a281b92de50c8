package models

// PostTones are the supported stylistic categories for a generated post.
var PostTones = []string{
	"Inspirational",
	"Informative",
	"Promotional",
	"Announcement",
	"General",
	"Question/Engagement",
	"Behind-the-Scenes",
	"Tutorial/How-To",
	"Success Story",
}

// Platforms are the social networks a post can target.
var Platforms = []string{
	"Instagram",
	"LinkedIn",
	"Twitter",
	"Facebook",
	"TikTok",
	"Pinterest",
	"YouTube Community",
}

// ImageInput carries an uploaded image destined for the generation prompt.
type ImageInput struct {
	Data     []byte
	MimeType string
}

// GenerationRequest is a single caption generation request. Keywords may be
// empty when an image is attached; that cross-field rule is checked by the
// service, not by struct tags.
type GenerationRequest struct {
	Keywords  string      `json:"keywords"`
	PostType  string      `json:"post_type" validate:"required"`
	Platforms []string    `json:"platforms" validate:"required,min=1,dive,required"`
	Count     int         `json:"count" validate:"min=1,max=5"`
	Image     *ImageInput `json:"-"`
}

// HasImage reports whether an image was attached to the request.
func (r GenerationRequest) HasImage() bool {
	return r.Image != nil && len(r.Image.Data) > 0
}

// RawPost is the pre-normalization shape of one generated post as decoded
// from the provider response. Pointer fields distinguish absent from empty.
type RawPost struct {
	Caption  *string  `json:"caption"`
	Hashtags []string `json:"hashtags"`
	Emojis   *string  `json:"emojis"`
}

// PostRecord is one normalized generated post. Hashtags are "#"-prefixed and
// non-empty. Records are not mutated after normalization.
type PostRecord struct {
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
	Emojis   string   `json:"emojis"`
}

// AnnotatedPost pairs a normalized post with its sentiment annotation.
type AnnotatedPost struct {
	PostRecord
	Sentiment SentimentResult `json:"sentiment"`
}

// IsValidPostTone reports whether tone is one of the supported post tones.
func IsValidPostTone(tone string) bool {
	for _, t := range PostTones {
		if t == tone {
			return true
		}
	}
	return false
}

// IsValidPlatform reports whether platform is one of the supported targets.
func IsValidPlatform(platform string) bool {
	for _, p := range Platforms {
		if p == platform {
			return true
		}
	}
	return false
}
