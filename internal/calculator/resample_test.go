package calculator

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"CryptoAnalyzer/internal/model"
)

func rawAt(ms int64, v float64) model.RawPoint {
	return model.RawPoint{TimestampMs: ms, Value: v}
}

func TestNormalize_EmptyPrices(t *testing.T) {
	_, err := Normalize(model.RawHistory{
		Volumes: []model.RawPoint{rawAt(1000, 5)},
	})
	if !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
}

func TestNormalize_JoinByExactTimestamp(t *testing.T) {
	raw := model.RawHistory{
		Prices: []model.RawPoint{
			rawAt(1000, 100), rawAt(2000, 101), rawAt(3000, 102),
		},
		// no volume point at ts 2000: that sample is dropped
		Volumes: []model.RawPoint{
			rawAt(1000, 10), rawAt(3000, 30),
		},
		// market cap only at ts 1000: optional, others stay 0
		MarketCaps: []model.RawPoint{
			rawAt(1000, 1_000_000),
		},
	}

	samples, err := Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 joined samples, got %d", len(samples))
	}
	if samples[0].Price != 100 || samples[0].Volume != 10 || samples[0].MarketCap != 1_000_000 {
		t.Errorf("sample 0 mismatch: %+v", samples[0])
	}
	if samples[1].Price != 102 || samples[1].Volume != 30 || samples[1].MarketCap != 0 {
		t.Errorf("sample 1 mismatch: %+v", samples[1])
	}
}

func TestNormalize_SortsAndDedupes(t *testing.T) {
	raw := model.RawHistory{
		Prices: []model.RawPoint{
			rawAt(3000, 102), rawAt(1000, 100), rawAt(3000, 999), rawAt(2000, 101),
		},
		Volumes: []model.RawPoint{
			rawAt(1000, 10), rawAt(2000, 20), rawAt(3000, 30),
		},
	}

	samples, err := Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 3 {
		t.Fatalf("expected 3 unique samples, got %d", len(samples))
	}
	for i := 1; i < len(samples); i++ {
		if !samples[i-1].Time.Before(samples[i].Time) {
			t.Errorf("samples not strictly ascending at index %d", i)
		}
	}
	// first occurrence wins for duplicate timestamps
	if samples[2].Price != 102 {
		t.Errorf("expected first occurrence to win for ts 3000, got price %.0f", samples[2].Price)
	}
}

func hourlySamples(start time.Time, n int) []model.Sample {
	samples := make([]model.Sample, n)
	for i := range samples {
		samples[i] = model.Sample{
			Time:      start.Add(time.Duration(i) * time.Hour),
			Price:     100 + float64(i),
			Volume:    10,
			MarketCap: 1_000_000,
		}
	}
	return samples
}

func TestDownsample_WithinBudgetUnchanged(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	samples := hourlySamples(start, 10)

	out, policy := Downsample(samples, 1000, 7*24*time.Hour)
	if policy != model.ResampleNone {
		t.Fatalf("expected policy none, got %s", policy)
	}
	if !reflect.DeepEqual(out, samples) {
		t.Error("series within budget must be returned unchanged")
	}

	// idempotent: a second pass changes nothing
	again, policy := Downsample(out, 1000, 7*24*time.Hour)
	if policy != model.ResampleNone || !reflect.DeepEqual(again, out) {
		t.Error("downsampling an already-short series must be a no-op")
	}
}

func TestDownsample_StrideShortRange(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	samples := hourlySamples(start, 10) // spans 9h, well under the cutoff

	out, policy := Downsample(samples, 4, 7*24*time.Hour)
	if policy != model.ResampleStride {
		t.Fatalf("expected policy stride, got %s", policy)
	}
	// N = ceil(10/4) = 3: indices 0, 3, 6, 9
	wantPrices := []float64{100, 103, 106, 109}
	if len(out) != len(wantPrices) {
		t.Fatalf("expected %d points, got %d", len(wantPrices), len(out))
	}
	for i, want := range wantPrices {
		if out[i].Price != want {
			t.Errorf("point %d: expected price %.0f, got %.0f", i, want, out[i].Price)
		}
	}

	// deterministic: same input and budget give an identical sequence
	again, _ := Downsample(samples, 4, 7*24*time.Hour)
	if !reflect.DeepEqual(again, out) {
		t.Error("stride downsampling must be deterministic")
	}
}

func TestDownsample_DailyAggregateLongRange(t *testing.T) {
	day0 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	samples := []model.Sample{
		{Time: day0.Add(1 * time.Hour), Price: 100, Volume: 10, MarketCap: 1_000_000},
		{Time: day0.Add(13 * time.Hour), Price: 200, Volume: 20, MarketCap: 3_000_000},
		{Time: day0.Add(25 * time.Hour), Price: 300, Volume: 30},
		{Time: day0.Add(49 * time.Hour), Price: 400, Volume: 5, MarketCap: 2_000_000},
		{Time: day0.Add(61 * time.Hour), Price: 500, Volume: 45, MarketCap: 0},
	}

	// budget forces a reduction; the 2.5-day span exceeds the 24h cutoff
	out, policy := Downsample(samples, 4, 24*time.Hour)
	if policy != model.ResampleDaily {
		t.Fatalf("expected policy daily, got %s", policy)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 daily buckets, got %d", len(out))
	}

	// day 0: mean price, summed volume, cap averaged over present values
	if out[0].Price != 150 || out[0].Volume != 30 || out[0].MarketCap != 2_000_000 {
		t.Errorf("day 0 bucket mismatch: %+v", out[0])
	}
	if !out[0].Time.Equal(day0) {
		t.Errorf("day 0 bucket should be stamped at day start, got %v", out[0].Time)
	}
	// day 1: single sample without market cap
	if out[1].Price != 300 || out[1].Volume != 30 || out[1].MarketCap != 0 {
		t.Errorf("day 1 bucket mismatch: %+v", out[1])
	}
	// day 2: cap mean ignores the absent value
	if out[2].Price != 450 || out[2].Volume != 50 || out[2].MarketCap != 2_000_000 {
		t.Errorf("day 2 bucket mismatch: %+v", out[2])
	}
}
