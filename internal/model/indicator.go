package model

// Series is an indicator sequence aligned to a price series. Values[k]
// belongs to price index Offset+k; indices before Offset are undefined.
// An indicator that could not be computed at all has no values.
type Series struct {
	Offset int       `json:"offset"`
	Values []float64 `json:"values"`
}

// Defined reports whether the indicator produced any values.
func (s Series) Defined() bool { return len(s.Values) > 0 }

// At returns the value aligned to price index i.
func (s Series) At(i int) (float64, bool) {
	k := i - s.Offset
	if k < 0 || k >= len(s.Values) {
		return 0, false
	}
	return s.Values[k], true
}

// Last returns the value at the final price index.
func (s Series) Last() (float64, bool) {
	if len(s.Values) == 0 {
		return 0, false
	}
	return s.Values[len(s.Values)-1], true
}

// IndicatorSet holds every indicator computed over one price series.
// Each member may be empty when the series was too short for it.
type IndicatorSet struct {
	RSI14  Series
	SMA50  Series
	SMA200 Series
}
