package model

// Call is the synthesized trading stance.
type Call string

const (
	CallBuy  Call = "BUY"
	CallSell Call = "SELL"
	CallHold Call = "HOLD"
)

// FactorScore represents a single factor's scoring result. An absent factor
// keeps zero score and zero weight so it cannot tilt the total.
type FactorScore struct {
	Factor   string
	Score    float64 // [-1, +1]
	Weight   float64
	Weighted float64
	Absent   bool
	Detail   string
}

// RationaleEntry is one line of the verdict's explanation.
type RationaleEntry struct {
	Factor    string  `json:"factor"`
	Weight    float64 `json:"weight"`
	Direction string  `json:"direction"`
}

// Verdict is the final output of the synthesizer.
type Verdict struct {
	Call       Call             `json:"call"`
	Confidence float64          `json:"confidence"`
	Rationale  []RationaleEntry `json:"rationale"`
}
