// Package engine runs a full analysis request through the pipeline:
// normalization, indicators, cross detection, fundamental banding, sentiment
// and the final verdict, ending in a fixed-schema fact sheet. The engine
// holds no state between requests; concurrent calls never interfere.
package engine

import (
	"fmt"

	"StockAgent/internal/calculator"
	"StockAgent/internal/model"
	"StockAgent/internal/screener"
	"StockAgent/internal/sentiment"
	"StockAgent/internal/series"
	"StockAgent/internal/verdict"
)

// SentimentOverride is an externally supplied sentiment label that replaces
// lexical headline scoring for one request.
type SentimentOverride struct {
	Label      model.SentimentLabel
	Confidence float64
}

// Request is one self-contained analysis invocation. Candles may arrive
// unsorted and dirty; everything else is optional and degrades gracefully.
type Request struct {
	Ticker            string
	Candles           []model.PricePoint
	Fundamentals      model.FundamentalProfile
	Headlines         []string
	SentimentOverride *SentimentOverride
	IncludeSeries     bool
}

// Report carries the intermediate pipeline outputs alongside the fact sheet
// for callers that render narratives, notifications or history rows.
type Report struct {
	Ticker   string
	Points   int
	Dropped  int
	Degraded []string
	Series   model.PriceSeries
	Summary  calculator.PriceSummary
	Verdict  verdict.Result
}

// Analyze runs the pipeline once. Only an unusable price series fails the
// call; every other missing input is excluded from the verdict at zero
// weight and listed in the report's Degraded slice.
func Analyze(req Request) (*model.FactSheet, *Report, error) {
	points, dropped, err := series.Normalize(req.Candles)
	if err != nil {
		return nil, nil, fmt.Errorf("analyze %s: %w", req.Ticker, err)
	}

	prices := model.PriceSeries{Ticker: req.Ticker, Points: points}
	closes := prices.Closes()

	indicators, err := computeIndicators(closes)
	if err != nil {
		return nil, nil, fmt.Errorf("analyze %s: %w", req.Ticker, err)
	}
	crosses := calculator.DetectCrosses(points, indicators.SMA50, indicators.SMA200)
	bands := screener.Screen(req.Fundamentals)

	var sig model.SentimentSignal
	if req.SentimentOverride != nil {
		sig = sentiment.Override(req.SentimentOverride.Label, req.SentimentOverride.Confidence, len(req.Headlines))
	} else {
		sig = sentiment.Score(req.Headlines)
	}

	result := verdict.Synthesize(verdict.Inputs{
		LatestClose: closes[len(closes)-1],
		Indicators:  indicators,
		Crosses:     crosses,
		Bands:       bands,
		Sentiment:   sig,
	})

	summary, err := calculator.Summarize(points)
	if err != nil {
		return nil, nil, fmt.Errorf("analyze %s: %w", req.Ticker, err)
	}

	report := &Report{
		Ticker:   req.Ticker,
		Points:   len(points),
		Dropped:  dropped,
		Degraded: degradedFactors(result.Factors),
		Series:   prices,
		Summary:  summary,
		Verdict:  result,
	}

	sheet := buildFactSheet(indicators, crosses, bands, sig, result.Verdict, req.IncludeSeries)
	return sheet, report, nil
}

func computeIndicators(closes []float64) (model.IndicatorSet, error) {
	rsi, err := calculator.RSISeries(closes, calculator.RSIPeriod)
	if err != nil {
		return model.IndicatorSet{}, err
	}
	sma50, err := calculator.SMASeries(closes, calculator.SMAShortWindow)
	if err != nil {
		return model.IndicatorSet{}, err
	}
	sma200, err := calculator.SMASeries(closes, calculator.SMALongWindow)
	if err != nil {
		return model.IndicatorSet{}, err
	}
	return model.IndicatorSet{RSI14: rsi, SMA50: sma50, SMA200: sma200}, nil
}

// degradedFactors lists the factors excluded from the verdict, in scoring
// order.
func degradedFactors(factors []model.FactorScore) []string {
	out := []string{}
	for _, f := range factors {
		if f.Absent {
			out = append(out, f.Factor)
		}
	}
	return out
}
