package calculator

import (
	"errors"

	"StockAgent/internal/model"
)

// RSIPeriod is the lookback used throughout the engine.
const RSIPeriod = 14

// RSISeries computes the Wilder-smoothed RSI over the given period for every
// index where it is defined. The seed value at index `period` is the simple
// average of the first `period` gains and losses; later values smooth with
// avg = (avg*(period-1) + current) / period. When the average loss is zero
// the RSI is exactly 100. Fewer than period+1 closes yield an empty series,
// never a default value.
func RSISeries(closes []float64, period int) (model.Series, error) {
	if period <= 0 {
		return model.Series{}, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return model.Series{}, nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	values := make([]float64, 0, len(closes)-period)
	values = append(values, rsiFrom(avgGain, avgLoss))

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		values = append(values, rsiFrom(avgGain, avgLoss))
	}

	return model.Series{Offset: period, Values: values}, nil
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
