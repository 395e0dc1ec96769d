package calculator

import (
	"errors"

	"StockAgent/internal/model"
)

// Moving-average windows used by the engine.
const (
	SMAShortWindow = 50
	SMALongWindow  = 200
)

// SMASeries computes the simple moving average over the given window for
// every index with window closes available, using a rolling sum so the whole
// series costs O(n). Inputs shorter than the window yield an empty series.
func SMASeries(closes []float64, window int) (model.Series, error) {
	if window <= 0 {
		return model.Series{}, errors.New("window must be positive")
	}
	if len(closes) < window {
		return model.Series{}, nil
	}

	values := make([]float64, 0, len(closes)-window+1)
	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			values = append(values, sum/float64(window))
		}
	}

	return model.Series{Offset: window - 1, Values: values}, nil
}
