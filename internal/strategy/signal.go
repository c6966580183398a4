package strategy

import "CryptoAnalyzer/internal/model"

// RSI thresholds. Both inequalities are strict, so the boundary values 30
// and 70 themselves classify as HOLD.
const (
	Oversold   = 30.0
	Overbought = 70.0
)

// Classify maps one RSI value to a trading signal. It is total over the
// input domain: anything that is neither below Oversold nor above
// Overbought, including NaN placeholders, is HOLD.
func Classify(rsi float64) model.Signal {
	switch {
	case rsi < Oversold:
		return model.SignalBuy
	case rsi > Overbought:
		return model.SignalSell
	default:
		return model.SignalHold
	}
}

// Evaluate maps a full RSI series to indicator points, aligned by index.
func Evaluate(rsi []float64) []model.IndicatorPoint {
	points := make([]model.IndicatorPoint, len(rsi))
	for i, v := range rsi {
		points[i] = model.IndicatorPoint{RSI: v, Signal: Classify(v)}
	}
	return points
}
