package recorder

import "time"

// AnalysisSnapshot holds one persisted analysis run for a ticker.
type AnalysisSnapshot struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Ticker      string    `json:"ticker"`
	Verdict     string    `json:"verdict"`
	Confidence  float64   `json:"confidence"`
	LatestClose float64   `json:"latest_close"`
	Points      int       `json:"points"`
	RSI14       *float64  `json:"rsi_14,omitempty"`
	SMA50       *float64  `json:"sma_50,omitempty"`
	SMA200      *float64  `json:"sma_200,omitempty"`
	Narrative   string    `json:"narrative,omitempty"`
	FactSheet   string    `json:"fact_sheet,omitempty"` // serialized fact-sheet JSON
}

// Recorder persists analysis history.
type Recorder interface {
	RecordAnalysis(snap *AnalysisSnapshot) error
	History(ticker string, limit int) ([]AnalysisSnapshot, error)
	Close() error
}
