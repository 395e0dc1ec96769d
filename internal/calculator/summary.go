package calculator

import (
	"errors"

	"github.com/montanaflynn/stats"

	"StockAgent/internal/model"
)

// PriceSummary condenses an analyzed window for report context. It feeds the
// narrative prompt and notifications, not the fact sheet.
type PriceSummary struct {
	LatestClose  float64
	PeriodChange float64 // percent over the whole window
	AverageClose float64
	WindowHigh   float64
	WindowLow    float64
	Days         int
}

// Summarize computes headline statistics over the full window.
func Summarize(points []model.PricePoint) (PriceSummary, error) {
	if len(points) == 0 {
		return PriceSummary{}, errors.New("no points to summarize")
	}

	closes := make(stats.Float64Data, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}

	mean, err := stats.Mean(closes)
	if err != nil {
		return PriceSummary{}, err
	}
	high, err := stats.Max(closes)
	if err != nil {
		return PriceSummary{}, err
	}
	low, err := stats.Min(closes)
	if err != nil {
		return PriceSummary{}, err
	}

	first := closes[0]
	latest := closes[len(closes)-1]
	change := 0.0
	if first != 0 {
		change = (latest - first) / first * 100
	}

	return PriceSummary{
		LatestClose:  latest,
		PeriodChange: change,
		AverageClose: mean,
		WindowHigh:   high,
		WindowLow:    low,
		Days:         len(points),
	}, nil
}
