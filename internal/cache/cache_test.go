package cache

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"CryptoAnalyzer/internal/model"
)

func testReport(asset string) *model.Report {
	return &model.Report{
		Snapshot: model.CoinSnapshot{ID: asset, Price: 100},
		Series:   model.Series{Asset: asset, Currency: "usd"},
	}
}

func TestCache_PutGet(t *testing.T) {
	c := New(time.Minute, "", "", 0)
	key := Key{Asset: "bitcoin", Days: 90, Currency: "usd"}

	if got := c.Get(context.Background(), key); got != nil {
		t.Fatal("expected miss on empty cache")
	}

	c.Put(context.Background(), key, testReport("bitcoin"))
	got := c.Get(context.Background(), key)
	if got == nil {
		t.Fatal("expected hit after put")
	}
	if got.Series.Asset != "bitcoin" {
		t.Errorf("wrong report returned: %+v", got.Series)
	}

	// a different window misses
	other := Key{Asset: "bitcoin", Days: 7, Currency: "usd"}
	if c.Get(context.Background(), other) != nil {
		t.Error("different window must be a different key")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New(20*time.Millisecond, "", "", 0)
	key := Key{Asset: "ethereum", Days: 30, Currency: "usd"}

	c.Put(context.Background(), key, testReport("ethereum"))
	if c.Get(context.Background(), key) == nil {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(30 * time.Millisecond)
	if c.Get(context.Background(), key) != nil {
		t.Error("expected miss after TTL elapsed")
	}
	if c.Len() != 0 {
		t.Errorf("expired entries must not count as live, got %d", c.Len())
	}
}

func TestCache_IsolationBetweenKeys(t *testing.T) {
	c := New(time.Minute, "", "", 0)
	a := Key{Asset: "bitcoin", Days: 90, Currency: "usd"}
	b := Key{Asset: "solana", Days: 90, Currency: "usd"}

	c.Put(context.Background(), a, testReport("bitcoin"))
	c.Put(context.Background(), b, testReport("solana"))

	if got := c.Get(context.Background(), a); got == nil || got.Series.Asset != "bitcoin" {
		t.Error("key a corrupted")
	}
	if got := c.Get(context.Background(), b); got == nil || got.Series.Asset != "solana" {
		t.Error("key b corrupted")
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 live entries, got %d", c.Len())
	}
}

// The Redis tier stores reports as JSON. Summary stats are NaN for
// assets without market cap data, so the codec must not choke on them.
func TestCache_ReportJSONRoundTrip(t *testing.T) {
	report := testReport("dogwifhat")
	report.Summary = model.Summary{
		PercentChange: math.NaN(),
		VolumeRatio:   math.NaN(),
		InflowProxy:   42.5,
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal report with undefined stats: %v", err)
	}

	var back model.Report
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if !math.IsNaN(back.Summary.PercentChange) {
		t.Errorf("percent change: want NaN, got %v", back.Summary.PercentChange)
	}
	if !math.IsNaN(back.Summary.VolumeRatio) {
		t.Errorf("volume ratio: want NaN, got %v", back.Summary.VolumeRatio)
	}
	if back.Summary.InflowProxy != 42.5 {
		t.Errorf("inflow proxy: want 42.5, got %v", back.Summary.InflowProxy)
	}
}

func TestKey_String(t *testing.T) {
	key := Key{Asset: "bitcoin", Days: 90, Currency: "usd"}
	if key.String() != "analysis:bitcoin:90:usd" {
		t.Errorf("unexpected key encoding: %s", key.String())
	}
}
