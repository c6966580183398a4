package strategy

import (
	"math"
	"testing"

	"CryptoAnalyzer/internal/model"
)

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		rsi  float64
		want model.Signal
	}{
		{0, model.SignalBuy},
		{15.5, model.SignalBuy},
		{29.999, model.SignalBuy},
		{30.0, model.SignalHold}, // boundary is strict
		{50, model.SignalHold},
		{70.0, model.SignalHold}, // boundary is strict
		{70.001, model.SignalSell},
		{88, model.SignalSell},
		{100, model.SignalSell},
	}
	for _, tt := range tests {
		if got := Classify(tt.rsi); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.rsi, got, tt.want)
		}
	}
}

func TestClassify_UndefinedRSI(t *testing.T) {
	if got := Classify(math.NaN()); got != model.SignalHold {
		t.Errorf("undefined RSI must classify as HOLD, got %s", got)
	}
}

func TestEvaluate_AlignedByIndex(t *testing.T) {
	rsi := []float64{50, 50, 25, 75, 30, 70}
	points := Evaluate(rsi)
	if len(points) != len(rsi) {
		t.Fatalf("expected %d points, got %d", len(rsi), len(points))
	}

	want := []model.Signal{
		model.SignalHold, model.SignalHold, model.SignalBuy,
		model.SignalSell, model.SignalHold, model.SignalHold,
	}
	for i, p := range points {
		if p.RSI != rsi[i] {
			t.Errorf("point %d: RSI %v not carried through", i, p.RSI)
		}
		if p.Signal != want[i] {
			t.Errorf("point %d: expected %s, got %s", i, want[i], p.Signal)
		}
	}
}
