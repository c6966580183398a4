package collector

import (
	"fmt"

	"CryptoAnalyzer/internal/model"
)

// Fetcher defines the interface for the market-data provider.
type Fetcher interface {
	// FetchSnapshot returns the current market state of one asset.
	FetchSnapshot(coinID string) (*model.CoinSnapshot, error)
	// FetchHistory returns the three time-aligned arrays (price, volume,
	// market cap) over the lookback window in days.
	FetchHistory(coinID string, days int) (*model.RawHistory, error)
	// FetchCoinPage returns one page of the provider's full asset listing.
	FetchCoinPage(page, perPage int) ([]model.Coin, error)
	Name() string
}

// FetchError is returned for any provider failure: network error, timeout,
// non-2xx status, or malformed payload. Status is 0 when the request never
// completed.
type FetchError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
