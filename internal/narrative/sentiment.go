package narrative

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"StockAgent/internal/model"
	"StockAgent/internal/news"
	"StockAgent/internal/sentiment"
)

// QuickResult is a lightweight sentiment classification for one ticker.
type QuickResult struct {
	Ticker     string               `json:"ticker"`
	Label      model.SentimentLabel `json:"label"`
	Confidence float64              `json:"confidence"`
	Source     string               `json:"source"`
}

// QuickSentiment classifies recent headlines without producing a full
// report. The generator is asked first; any failure or unparseable reply
// falls back to lexical scoring, so the call always yields a usable result.
func QuickSentiment(ctx context.Context, gen Generator, ticker string, headlines []news.Headline) QuickResult {
	if gen != nil && len(headlines) > 0 {
		raw, err := gen.Generate(ctx, BuildQuickSentimentPrompt(ticker, headlines))
		if err == nil {
			if label, conf, ok := parseSentimentJSON(raw); ok {
				return QuickResult{Ticker: ticker, Label: label, Confidence: conf, Source: gen.Name()}
			}
			log.Printf("[WARN] unparseable quick sentiment reply for %s", ticker)
		} else {
			log.Printf("[WARN] quick sentiment generation failed for %s: %v", ticker, err)
		}
	}

	sig := sentiment.Score(news.Titles(headlines))
	return QuickResult{Ticker: ticker, Label: sig.Label, Confidence: sig.Confidence, Source: "lexicon"}
}

// parseSentimentJSON pulls the first {...} block out of a model reply and
// maps the coarse labels onto the signal scale.
func parseSentimentJSON(raw string) (model.SentimentLabel, float64, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", 0, false
	}

	var reply struct {
		Sentiment  string `json:"sentiment"`
		Confidence string `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &reply); err != nil {
		return "", 0, false
	}

	var label model.SentimentLabel
	switch strings.ToLower(reply.Sentiment) {
	case "positive":
		label = model.SentimentBullish
	case "negative":
		label = model.SentimentBearish
	case "neutral":
		label = model.SentimentNeutral
	default:
		return "", 0, false
	}

	var conf float64
	switch strings.ToLower(reply.Confidence) {
	case "high":
		conf = 0.9
	case "medium":
		conf = 0.6
	case "low":
		conf = 0.3
	default:
		return "", 0, false
	}

	return label, conf, true
}
