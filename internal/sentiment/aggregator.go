// Package sentiment scores news headlines against fixed keyword lexicons and
// folds externally supplied labels into the same signal shape.
package sentiment

import (
	"math"

	"StockAgent/internal/model"
)

// Score counts bullish and bearish keyword hits across all headlines. The
// label follows the sign of the net count and confidence scales with how
// one-sided the coverage is relative to the number of headlines. No headlines
// is a valid input and yields a neutral zero-confidence signal.
func Score(headlines []string) model.SentimentSignal {
	samples := len(headlines)
	if samples == 0 {
		return model.SentimentSignal{Label: model.SentimentNeutral}
	}

	var bull, bear int
	for _, h := range headlines {
		bull += len(bullishRe.FindAllStringIndex(h, -1))
		bear += len(bearishRe.FindAllStringIndex(h, -1))
	}

	net := bull - bear
	label := model.SentimentNeutral
	switch {
	case net > 0:
		label = model.SentimentBullish
	case net < 0:
		label = model.SentimentBearish
	}

	return model.SentimentSignal{
		Label:      label,
		Confidence: math.Min(1, math.Abs(float64(net))/float64(samples)),
		SampleSize: samples,
	}
}

// Override passes an externally supplied label through unchanged, clamping
// confidence into [0,1]. SampleSize is floored at 1 so the signal is not
// mistaken for the no-headline case.
func Override(label model.SentimentLabel, confidence float64, headlines int) model.SentimentSignal {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	if headlines < 1 {
		headlines = 1
	}
	return model.SentimentSignal{
		Label:      label,
		Confidence: confidence,
		SampleSize: headlines,
	}
}
