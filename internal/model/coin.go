package model

// Coin is one catalog record from the provider's asset listing.
type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// CoinSnapshot is the current market state of one asset.
type CoinSnapshot struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	Price        float64 `json:"price"`
	MarketCap    float64 `json:"market_cap"`
	Volume24h    float64 `json:"volume_24h"`
	CapChange30d float64 `json:"cap_change_30d"` // percent
	HasCapChange bool    `json:"has_cap_change"`
}
