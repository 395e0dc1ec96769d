// Package verdict turns the computed analysis pieces into a weighted-vote
// trading call. Scoring is fully deterministic: identical inputs always
// produce the identical verdict, down to rationale ordering.
package verdict

import (
	"math"
	"sort"

	"StockAgent/internal/model"
)

// Thresholds on the weighted total.
const (
	buyThreshold  = 0.2
	sellThreshold = -0.2
)

// InsufficientSignal is the rationale entry emitted when no factor had any
// input to vote with.
const InsufficientSignal = "insufficient_signal"

// Inputs carries everything the synthesizer votes on. Absent pieces keep
// their zero values; each scorer decides absence from the value itself.
type Inputs struct {
	LatestClose float64
	Indicators  model.IndicatorSet
	Crosses     []model.CrossEvent
	Bands       model.BandSummary
	Sentiment   model.SentimentSignal
}

// Result bundles the verdict with the per-factor breakdown for callers that
// render explanations.
type Result struct {
	Verdict  model.Verdict
	Factors  []model.FactorScore
	Total    float64
	Coverage float64
}

// Synthesize runs every factor scorer and combines the votes. Factors are
// listed in tie-break priority order; the rationale is sorted by absolute
// weighted contribution with that order deciding ties. Confidence is the
// absolute total damped by coverage, so a sparse analysis can never report
// more confidence than a fully covered one with the same lean.
func Synthesize(in Inputs) Result {
	factors := []model.FactorScore{
		scoreRSI(in.Indicators.RSI14),
		scoreCross(in.Crosses, in.Indicators.SMA50, in.Indicators.SMA200),
		scoreTrend(in.LatestClose, in.Indicators.SMA50, in.Indicators.SMA200),
		scoreFundamentals(in.Bands),
		scoreSentiment(in.Sentiment),
	}

	allWeight := WeightRSI + WeightCross + WeightTrend + WeightFundamentals + WeightSentiment
	var sumWeighted, sumWeight float64
	for _, f := range factors {
		sumWeighted += f.Weighted
		sumWeight += f.Weight
	}

	if sumWeight == 0 {
		return Result{
			Verdict: model.Verdict{
				Call:       model.CallHold,
				Confidence: 0,
				Rationale: []model.RationaleEntry{
					{Factor: InsufficientSignal, Weight: 0, Direction: directionNeutral},
				},
			},
			Factors: factors,
		}
	}

	total := sumWeighted / sumWeight
	coverage := sumWeight / allWeight

	call := model.CallHold
	switch {
	case total >= buyThreshold:
		call = model.CallBuy
	case total <= sellThreshold:
		call = model.CallSell
	}

	ordered := make([]model.FactorScore, len(factors))
	copy(ordered, factors)
	sort.SliceStable(ordered, func(i, j int) bool {
		return math.Abs(ordered[i].Weighted) > math.Abs(ordered[j].Weighted)
	})

	rationale := make([]model.RationaleEntry, 0, len(ordered))
	for _, f := range ordered {
		rationale = append(rationale, model.RationaleEntry{
			Factor:    f.Factor,
			Weight:    f.Weight,
			Direction: direction(f),
		})
	}

	return Result{
		Verdict: model.Verdict{
			Call:       call,
			Confidence: math.Abs(total) * coverage,
			Rationale:  rationale,
		},
		Factors:  factors,
		Total:    total,
		Coverage: coverage,
	}
}

func direction(f model.FactorScore) string {
	switch {
	case f.Absent:
		return directionAbsent
	case f.Score > 0:
		return directionBullish
	case f.Score < 0:
		return directionBearish
	}
	return directionNeutral
}
