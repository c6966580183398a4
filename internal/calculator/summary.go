package calculator

import (
	"errors"
	"math"

	"CryptoAnalyzer/internal/model"
)

// ErrZeroBaseline is returned when a percentage change is requested
// against a zero baseline.
var ErrZeroBaseline = errors.New("zero baseline for percent change")

// PercentChange returns the percentage change from first to last.
func PercentChange(first, last float64) (float64, error) {
	if first == 0 {
		return 0, ErrZeroBaseline
	}
	return (last - first) / first * 100, nil
}

// Summarize computes the per-series scalar statistics.
//
// PercentChange covers market cap between the first and last samples that
// carry one; it is NaN when no such pair exists, never ±Inf. VolumeRatio
// is volume/marketCap*100 of the latest sample, NaN when the cap is
// absent. InflowProxy is the sum of volume[i] * price percent change at i,
// a heuristic carried over from the source system verbatim.
func Summarize(samples []model.Sample) (model.Summary, error) {
	if len(samples) == 0 {
		return model.Summary{}, ErrEmptySeries
	}

	sum := model.Summary{
		PercentChange: math.NaN(),
		VolumeRatio:   math.NaN(),
	}

	firstCap, lastCap := 0.0, 0.0
	for _, s := range samples {
		if s.MarketCap > 0 {
			if firstCap == 0 {
				firstCap = s.MarketCap
			}
			lastCap = s.MarketCap
		}
	}
	if firstCap > 0 {
		pc, err := PercentChange(firstCap, lastCap)
		if err == nil {
			sum.PercentChange = pc
		}
	}

	last := samples[len(samples)-1]
	if last.MarketCap > 0 {
		sum.VolumeRatio = last.Volume / last.MarketCap * 100
	}

	for i := 1; i < len(samples); i++ {
		prev := samples[i-1].Price
		if prev == 0 {
			continue
		}
		pct := (samples[i].Price - prev) / prev * 100
		sum.InflowProxy += samples[i].Volume * pct
	}

	return sum, nil
}
