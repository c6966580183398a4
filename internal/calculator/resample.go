package calculator

import (
	"errors"
	"sort"
	"time"

	"CryptoAnalyzer/internal/model"
)

// ErrEmptySeries is returned when a computation is asked to run over an
// empty price sequence.
var ErrEmptySeries = errors.New("empty price series")

// Normalize joins the provider's three parallel arrays into a single
// aligned sample sequence, keyed by exact millisecond timestamp. The price
// array is the spine: a price point without a matching volume point is
// dropped, while a missing market-cap point leaves Sample.MarketCap at 0
// since price and volume alone suffice for RSI and the volume ratio.
// Output is ascending by time with unique timestamps.
func Normalize(raw model.RawHistory) ([]model.Sample, error) {
	if len(raw.Prices) == 0 {
		return nil, ErrEmptySeries
	}

	volumes := make(map[int64]float64, len(raw.Volumes))
	for _, p := range raw.Volumes {
		volumes[p.TimestampMs] = p.Value
	}
	caps := make(map[int64]float64, len(raw.MarketCaps))
	for _, p := range raw.MarketCaps {
		caps[p.TimestampMs] = p.Value
	}

	samples := make([]model.Sample, 0, len(raw.Prices))
	seen := make(map[int64]bool, len(raw.Prices))
	for _, p := range raw.Prices {
		if seen[p.TimestampMs] {
			continue
		}
		vol, ok := volumes[p.TimestampMs]
		if !ok {
			continue
		}
		seen[p.TimestampMs] = true
		samples = append(samples, model.Sample{
			Time:      time.UnixMilli(p.TimestampMs).UTC(),
			Price:     p.Value,
			Volume:    vol,
			MarketCap: caps[p.TimestampMs],
		})
	}
	if len(samples) == 0 {
		return nil, ErrEmptySeries
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i].Time.Before(samples[j].Time) })
	return samples, nil
}

// Downsample reduces a series to at most budget points and reports which
// policy fired. A series already within budget is returned unchanged, so
// the reduction is idempotent. Spans longer than shortRange aggregate by
// calendar day (mean price and market cap, summed volume); shorter spans
// keep every Nth point with N = ceil(len/budget).
func Downsample(samples []model.Sample, budget int, shortRange time.Duration) ([]model.Sample, model.ResamplePolicy) {
	if budget <= 0 || len(samples) <= budget {
		return samples, model.ResampleNone
	}

	span := samples[len(samples)-1].Time.Sub(samples[0].Time)
	if span > shortRange {
		return aggregateDaily(samples), model.ResampleDaily
	}

	n := (len(samples) + budget - 1) / budget
	out := make([]model.Sample, 0, budget)
	for i := 0; i < len(samples); i += n {
		out = append(out, samples[i])
	}
	return out, model.ResampleStride
}

// aggregateDaily buckets samples by UTC calendar day. Price and market cap
// are averaged (market cap only over samples that carry one), volume is
// summed, and the bucket is stamped at the day start.
func aggregateDaily(samples []model.Sample) []model.Sample {
	type bucket struct {
		priceSum float64
		capSum   float64
		capN     int
		volume   float64
		n        int
	}
	buckets := make(map[int64]*bucket)
	for _, s := range samples {
		day := s.Time.Truncate(24 * time.Hour).Unix()
		b := buckets[day]
		if b == nil {
			b = &bucket{}
			buckets[day] = b
		}
		b.priceSum += s.Price
		b.volume += s.Volume
		b.n++
		if s.MarketCap > 0 {
			b.capSum += s.MarketCap
			b.capN++
		}
	}

	days := make([]int64, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	out := make([]model.Sample, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		s := model.Sample{
			Time:   time.Unix(day, 0).UTC(),
			Price:  b.priceSum / float64(b.n),
			Volume: b.volume,
		}
		if b.capN > 0 {
			s.MarketCap = b.capSum / float64(b.capN)
		}
		out = append(out, s)
	}
	return out
}
