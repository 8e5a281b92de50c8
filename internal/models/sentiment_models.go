package models

const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// SentimentResult is the classifier verdict for one caption. Score is the
// classifier's confidence in the label, always within [0,1].
type SentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
