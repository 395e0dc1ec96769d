package model

// IndicatorSummary is the indicators section of the fact sheet. Nil scalars
// mean the indicator could not be computed; the series fields are populated
// only when the caller asked for full series.
type IndicatorSummary struct {
	RSI14        *float64 `json:"rsi14,omitempty"`
	SMA50        *float64 `json:"sma50,omitempty"`
	SMA200       *float64 `json:"sma200,omitempty"`
	RSI14Series  *Series  `json:"rsi14_series,omitempty"`
	SMA50Series  *Series  `json:"sma50_series,omitempty"`
	SMA200Series *Series  `json:"sma200_series,omitempty"`
}

// CrossRecord is a serialized cross event.
type CrossRecord struct {
	Kind           CrossKind `json:"kind"`
	OccurredAt     string    `json:"occurred_at"` // YYYY-MM-DD
	LookbackWindow int       `json:"lookback_window"`
}

// BandSummary is the fundamental_bands section; absent metrics keep empty
// bands and are omitted from the serialized form.
type BandSummary struct {
	PEBand     string `json:"pe_band,omitempty"`
	CapBand    string `json:"cap_band,omitempty"`
	MarginBand string `json:"margin_band,omitempty"`
}

// FactSheet is the fixed-schema analysis record. Field order is part of the
// contract: serializing the same sheet twice yields identical bytes.
type FactSheet struct {
	Indicators       IndicatorSummary `json:"indicators"`
	Crosses          []CrossRecord    `json:"crosses"`
	FundamentalBands BandSummary      `json:"fundamental_bands"`
	Sentiment        SentimentSignal  `json:"sentiment"`
	Verdict          Verdict          `json:"verdict"`
}
