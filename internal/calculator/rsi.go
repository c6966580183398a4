package calculator

import (
	"errors"
	"fmt"
)

// RSIVariant selects the smoothing method for the RSI engine. The variants
// agree on the first computed value but diverge afterwards, so a deployment
// must pick one and keep it fixed.
type RSIVariant string

const (
	// VariantWilder seeds the average gain/loss from the first period
	// deltas, then applies avg = (avg*(period-1) + new) / period.
	VariantWilder RSIVariant = "wilder"
	// VariantRolling uses a trailing simple mean of the last period deltas.
	VariantRolling RSIVariant = "rolling"
)

// NeutralRSI is the documented default for points inside the warm-up
// window (and for whole series shorter than period+1 prices). 50 is the
// midpoint of the oscillator and maps to a HOLD signal.
const NeutralRSI = 50.0

// ParseRSIVariant validates a configured variant name. An empty string
// selects the Wilder variant.
func ParseRSIVariant(s string) (RSIVariant, error) {
	switch RSIVariant(s) {
	case "":
		return VariantWilder, nil
	case VariantWilder, VariantRolling:
		return RSIVariant(s), nil
	default:
		return "", fmt.Errorf("unknown rsi variant %q", s)
	}
}

// RSISeries computes the Relative Strength Index for every price, aligned
// by index with the input. Outputs are in [0, 100]; indices below period
// hold NeutralRSI. A zero average loss yields 100, never a division fault.
func RSISeries(prices []float64, period int, variant RSIVariant) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}

	out := make([]float64, len(prices))
	for i := range out {
		out[i] = NeutralRSI
	}
	if len(prices) < period+1 {
		return out, nil
	}

	// Per-step gains and losses; gains[i] and losses[i] belong to the
	// move from prices[i] to prices[i+1].
	gains := make([]float64, len(prices)-1)
	losses := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gains[i-1] = delta
		} else {
			losses[i-1] = -delta
		}
	}

	switch variant {
	case VariantWilder, "":
		wilderRSI(out, gains, losses, period)
	case VariantRolling:
		rollingRSI(out, gains, losses, period)
	default:
		return nil, fmt.Errorf("unknown rsi variant %q", variant)
	}
	return out, nil
}

func wilderRSI(out, gains, losses []float64, period int) {
	var avgGain, avgLoss float64
	for i := 0; i < period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(out); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i-1]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i-1]) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
}

func rollingRSI(out, gains, losses []float64, period int) {
	var sumGain, sumLoss float64
	for i := 0; i < period; i++ {
		sumGain += gains[i]
		sumLoss += losses[i]
	}
	out[period] = rsiValue(sumGain/float64(period), sumLoss/float64(period))

	for i := period + 1; i < len(out); i++ {
		sumGain += gains[i-1] - gains[i-1-period]
		sumLoss += losses[i-1] - losses[i-1-period]
		out[i] = rsiValue(sumGain/float64(period), sumLoss/float64(period))
	}
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
