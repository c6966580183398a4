package model

import "time"

// RawPoint is one (epoch-millisecond, value) pair as returned by the provider.
type RawPoint struct {
	TimestampMs int64
	Value       float64
}

// RawHistory holds the three parallel arrays of a historical market query.
// The arrays are not guaranteed to be equal length or perfectly aligned.
type RawHistory struct {
	Prices     []RawPoint
	Volumes    []RawPoint
	MarketCaps []RawPoint
}

// Sample is one aligned observation of an asset. MarketCap is 0 when the
// provider had no market-cap point for the timestamp; consumers guard on
// MarketCap > 0.
type Sample struct {
	Time      time.Time `json:"time"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	MarketCap float64   `json:"market_cap"`
}

// ResamplePolicy names the downsampling policy applied to a series.
type ResamplePolicy string

const (
	ResampleNone   ResamplePolicy = "none"   // series already within budget
	ResampleStride ResamplePolicy = "stride" // every Nth point
	ResampleDaily  ResamplePolicy = "daily"  // calendar-day aggregation
)

// Series holds aligned samples for one asset, ascending by time with
// unique timestamps.
type Series struct {
	Asset     string         `json:"asset"`
	Currency  string         `json:"currency"`
	Samples   []Sample       `json:"samples"`
	Resample  ResamplePolicy `json:"resample"`
	FetchedAt time.Time      `json:"fetched_at"`
}
