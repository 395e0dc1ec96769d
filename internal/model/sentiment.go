package model

// SentimentLabel is the aggregate direction of recent coverage.
type SentimentLabel string

const (
	SentimentBullish SentimentLabel = "BULLISH"
	SentimentBearish SentimentLabel = "BEARISH"
	SentimentNeutral SentimentLabel = "NEUTRAL"
)

// SentimentSignal is the sentiment aggregator's output. SampleSize 0 always
// pairs with a neutral label at zero confidence.
type SentimentSignal struct {
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
	SampleSize int            `json:"sample_size"`
}
