package model

import (
	"encoding/json"
	"math"
)

// IndicatorPoint is the per-sample derived output, aligned by index with
// the series samples.
type IndicatorPoint struct {
	RSI    float64 `json:"rsi"`
	Signal Signal  `json:"signal"`
}

// Summary holds the scalar statistics derived once per series.
// VolumeRatio is NaN when the latest sample has no market cap.
// InflowProxy is a heuristic stand-in for net capital flow, not a rigorous
// metric; the formula is preserved from the source system as-is.
type Summary struct {
	PercentChange float64
	VolumeRatio   float64
	InflowProxy   float64
}

// summaryWire is the JSON form of Summary. encoding/json rejects NaN, so
// undefined statistics travel as null.
type summaryWire struct {
	PercentChange *float64 `json:"percent_change"`
	VolumeRatio   *float64 `json:"volume_ratio"`
	InflowProxy   *float64 `json:"inflow_proxy"`
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(summaryWire{
		PercentChange: finiteOrNil(s.PercentChange),
		VolumeRatio:   finiteOrNil(s.VolumeRatio),
		InflowProxy:   finiteOrNil(s.InflowProxy),
	})
}

func (s *Summary) UnmarshalJSON(data []byte) error {
	var w summaryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.PercentChange = valueOrNaN(w.PercentChange)
	s.VolumeRatio = valueOrNaN(w.VolumeRatio)
	s.InflowProxy = valueOrNaN(w.InflowProxy)
	return nil
}

func finiteOrNil(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

func valueOrNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

// Report is the full analytics result handed to the display sink.
type Report struct {
	Snapshot CoinSnapshot     `json:"snapshot"`
	Series   Series           `json:"series"`
	Points   []IndicatorPoint `json:"points"`
	Summary  Summary          `json:"summary"`
	Cached   bool             `json:"-"`
}
