package model

// FundamentalProfile carries the raw fundamental metrics of one ticker.
// A nil field means the metric was unavailable at the source; zero is a
// legitimate value and is never used to signal absence.
type FundamentalProfile struct {
	PERatio      *float64
	MarketCap    *float64
	ProfitMargin *float64 // fraction, e.g. 0.12 for 12%
}
