// Package screener maps fundamental scalars into qualitative bands using
// fixed threshold tables. Absent inputs produce no band, never a default.
package screener

import "StockAgent/internal/model"

// Band labels reported in the fact sheet and scored by the verdict.
const (
	PENegative = "negative"
	PEValue    = "value"
	PEFair     = "fair"
	PEGrowth   = "growth"

	CapMicro = "micro"
	CapSmall = "small"
	CapMid   = "mid"
	CapLarge = "large"
	CapMega  = "mega"

	MarginUnprofitable = "unprofitable"
	MarginThin         = "thin"
	MarginHealthy      = "healthy"
)

// Threshold tables. Market cap cutoffs are USD, margins are fractions.
const (
	peValueLimit = 15.0
	peFairLimit  = 30.0

	capMicroLimit = 300_000_000.0
	capSmallLimit = 2_000_000_000.0
	capMidLimit   = 10_000_000_000.0
	capLargeLimit = 200_000_000_000.0

	marginThinLimit = 0.10
)

// Screen bands every scalar present on the profile. Fields left nil on the
// profile stay empty in the summary so downstream scoring can skip them.
func Screen(p model.FundamentalProfile) model.BandSummary {
	var out model.BandSummary
	if p.PERatio != nil {
		out.PEBand = peBand(*p.PERatio)
	}
	if p.MarketCap != nil {
		out.CapBand = capBand(*p.MarketCap)
	}
	if p.ProfitMargin != nil {
		out.MarginBand = marginBand(*p.ProfitMargin)
	}
	return out
}

// peBand treats non-positive ratios as their own band: negative earnings make
// the value/growth scale meaningless.
func peBand(v float64) string {
	switch {
	case v <= 0:
		return PENegative
	case v < peValueLimit:
		return PEValue
	case v <= peFairLimit:
		return PEFair
	}
	return PEGrowth
}

func capBand(v float64) string {
	switch {
	case v < capMicroLimit:
		return CapMicro
	case v < capSmallLimit:
		return CapSmall
	case v < capMidLimit:
		return CapMid
	case v < capLargeLimit:
		return CapLarge
	}
	return CapMega
}

func marginBand(v float64) string {
	switch {
	case v < 0:
		return MarginUnprofitable
	case v <= marginThinLimit:
		return MarginThin
	}
	return MarginHealthy
}
