package verdict

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"StockAgent/internal/model"
	"StockAgent/internal/screener"
)

// Factor names as they appear in the rationale.
const (
	FactorRSI          = "rsi14"
	FactorCross        = "sma_cross"
	FactorTrend        = "sma_trend"
	FactorFundamentals = "fundamentals"
	FactorSentiment    = "sentiment"
)

// Fixed weights. They sum to 1.0 so the coverage ratio reads directly as the
// share of signal that was available.
const (
	WeightRSI          = 0.25
	WeightCross        = 0.25
	WeightTrend        = 0.20
	WeightFundamentals = 0.15
	WeightSentiment    = 0.15
)

// CrossRecencyBars is how far back a cross still counts as a signal. Older
// events are reported in the fact sheet but score zero.
const CrossRecencyBars = 90

const (
	directionBullish = "bullish"
	directionBearish = "bearish"
	directionNeutral = "neutral"
	directionAbsent  = "absent"
)

// absent zeroes a factor so it cannot tilt the total or the coverage.
func absent(f model.FactorScore) model.FactorScore {
	f.Score = 0
	f.Weight = 0
	f.Weighted = 0
	f.Absent = true
	f.Detail = "unavailable"
	return f
}

// scoreRSI reads the oscillator as momentum around the 50 midline.
func scoreRSI(rsi model.Series) model.FactorScore {
	f := model.FactorScore{Factor: FactorRSI, Weight: WeightRSI}
	last, ok := rsi.Last()
	if !ok {
		return absent(f)
	}
	s := (last - 50) / 50
	if s > 1 {
		s = 1
	}
	if s < -1 {
		s = -1
	}
	f.Score = s
	f.Weighted = s * f.Weight
	f.Detail = fmt.Sprintf("rsi %.1f", last)
	return f
}

// scoreCross votes on the most recent cross if it is fresh enough. The factor
// is only absent when the SMA pair itself could not be computed; a series
// with no cross on record is a real, neutral observation.
func scoreCross(crosses []model.CrossEvent, short, long model.Series) model.FactorScore {
	f := model.FactorScore{Factor: FactorCross, Weight: WeightCross}
	if !short.Defined() || !long.Defined() {
		return absent(f)
	}
	if len(crosses) == 0 {
		f.Detail = "no cross on record"
		return f
	}
	latest := crosses[len(crosses)-1]
	if latest.LookbackWindow > CrossRecencyBars {
		f.Detail = fmt.Sprintf("%s cross %d bars ago, stale", latest.Kind, latest.LookbackWindow)
		return f
	}
	s := 1.0
	if latest.Kind == model.CrossDeath {
		s = -1.0
	}
	f.Score = s
	f.Weighted = s * f.Weight
	f.Detail = fmt.Sprintf("%s cross %d bars ago", latest.Kind, latest.LookbackWindow)
	return f
}

// scoreTrend compares the latest close against the moving averages. Full
// alignment in either direction is a whole vote, close-vs-SMA50 alone is a
// half vote.
func scoreTrend(close float64, sma50, sma200 model.Series) model.FactorScore {
	f := model.FactorScore{Factor: FactorTrend, Weight: WeightTrend}
	s50, ok := sma50.Last()
	if !ok {
		return absent(f)
	}

	if s200, ok := sma200.Last(); ok {
		switch {
		case close > s50 && s50 > s200:
			f.Score = 1
			f.Detail = "close above sma50 above sma200"
		case close < s50 && s50 < s200:
			f.Score = -1
			f.Detail = "close below sma50 below sma200"
		default:
			f.Score = halfVote(close, s50)
			f.Detail = "mixed alignment"
		}
	} else {
		f.Score = halfVote(close, s50)
		f.Detail = "sma200 unavailable, close vs sma50 only"
	}

	f.Weighted = f.Score * f.Weight
	return f
}

func halfVote(close, sma float64) float64 {
	switch {
	case close > sma:
		return 0.5
	case close < sma:
		return -0.5
	}
	return 0
}

// Per-band sub-scores. The factor score is the mean over present bands.
func peScore(band string) float64 {
	switch band {
	case screener.PEValue:
		return 1
	case screener.PEGrowth, screener.PENegative:
		return -0.5
	}
	return 0
}

func capScore(band string) float64 {
	switch band {
	case screener.CapMega, screener.CapLarge:
		return 0.25
	case screener.CapSmall:
		return -0.25
	case screener.CapMicro:
		return -0.5
	}
	return 0
}

func marginScore(band string) float64 {
	switch band {
	case screener.MarginHealthy:
		return 1
	case screener.MarginUnprofitable:
		return -1
	}
	return 0
}

func scoreFundamentals(b model.BandSummary) model.FactorScore {
	f := model.FactorScore{Factor: FactorFundamentals, Weight: WeightFundamentals}

	var subs stats.Float64Data
	if b.PEBand != "" {
		subs = append(subs, peScore(b.PEBand))
	}
	if b.CapBand != "" {
		subs = append(subs, capScore(b.CapBand))
	}
	if b.MarginBand != "" {
		subs = append(subs, marginScore(b.MarginBand))
	}
	if len(subs) == 0 {
		return absent(f)
	}

	mean, err := stats.Mean(subs)
	if err != nil {
		return absent(f)
	}
	f.Score = mean
	f.Weighted = mean * f.Weight
	f.Detail = fmt.Sprintf("pe=%s cap=%s margin=%s", orDash(b.PEBand), orDash(b.CapBand), orDash(b.MarginBand))
	return f
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// scoreSentiment turns the label into a signed vote scaled by confidence.
// SampleSize zero means nothing was observed, which is absence rather than
// neutrality.
func scoreSentiment(sig model.SentimentSignal) model.FactorScore {
	f := model.FactorScore{Factor: FactorSentiment, Weight: WeightSentiment}
	if sig.SampleSize == 0 {
		return absent(f)
	}
	switch sig.Label {
	case model.SentimentBullish:
		f.Score = sig.Confidence
	case model.SentimentBearish:
		f.Score = -sig.Confidence
	}
	f.Weighted = f.Score * f.Weight
	f.Detail = fmt.Sprintf("%s %.2f over %d headlines", sig.Label, sig.Confidence, sig.SampleSize)
	return f
}
