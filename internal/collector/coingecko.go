package collector

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"CryptoAnalyzer/internal/model"
)

// CoinGeckoFetcher implements Fetcher against the CoinGecko v3 REST API
// (or any server speaking the same protocol).
type CoinGeckoFetcher struct {
	BaseURL  string
	APIKey   string
	Currency string
	Client   *http.Client
}

// NewCoinGeckoFetcher creates a new fetcher with optional proxy support.
func NewCoinGeckoFetcher(baseURL, apiKey, currency, proxyURL string) *CoinGeckoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinGeckoFetcher{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		APIKey:   apiKey,
		Currency: currency,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// coinDetail is the subset of the /coins/{id} response we consume.
type coinDetail struct {
	ID         string `json:"id"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	MarketData struct {
		CurrentPrice map[string]float64 `json:"current_price"`
		MarketCap    map[string]float64 `json:"market_cap"`
		TotalVolume  map[string]float64 `json:"total_volume"`
		CapChange30d *float64           `json:"market_cap_change_percentage_30d"`
	} `json:"market_data"`
}

func (f *CoinGeckoFetcher) FetchSnapshot(coinID string) (*model.CoinSnapshot, error) {
	endpoint := fmt.Sprintf("%s/coins/%s?localization=false&tickers=false&community_data=false&developer_data=false&sparkline=false",
		f.BaseURL, url.PathEscape(coinID))

	var detail coinDetail
	if err := f.getJSON(endpoint, &detail); err != nil {
		return nil, err
	}

	snap := &model.CoinSnapshot{
		ID:        coinID,
		Name:      detail.Name,
		Symbol:    strings.ToUpper(detail.Symbol),
		Price:     detail.MarketData.CurrentPrice[f.Currency],
		MarketCap: detail.MarketData.MarketCap[f.Currency],
		Volume24h: detail.MarketData.TotalVolume[f.Currency],
	}
	if detail.MarketData.CapChange30d != nil {
		snap.CapChange30d = *detail.MarketData.CapChange30d
		snap.HasCapChange = true
	}
	return snap, nil
}

// marketChart is the /coins/{id}/market_chart response: arrays of
// [epoch_ms, value] pairs.
type marketChart struct {
	Prices       [][2]float64 `json:"prices"`
	MarketCaps   [][2]float64 `json:"market_caps"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

func (f *CoinGeckoFetcher) FetchHistory(coinID string, days int) (*model.RawHistory, error) {
	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=%s&days=%d",
		f.BaseURL, url.PathEscape(coinID), url.QueryEscape(f.Currency), days)

	var chart marketChart
	if err := f.getJSON(endpoint, &chart); err != nil {
		return nil, err
	}

	return &model.RawHistory{
		Prices:     toRawPoints(chart.Prices),
		Volumes:    toRawPoints(chart.TotalVolumes),
		MarketCaps: toRawPoints(chart.MarketCaps),
	}, nil
}

func (f *CoinGeckoFetcher) FetchCoinPage(page, perPage int) ([]model.Coin, error) {
	endpoint := fmt.Sprintf("%s/coins/markets?vs_currency=%s&order=market_cap_desc&per_page=%d&page=%d&sparkline=false",
		f.BaseURL, url.QueryEscape(f.Currency), perPage, page)

	var coins []model.Coin
	if err := f.getJSON(endpoint, &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

func toRawPoints(pairs [][2]float64) []model.RawPoint {
	points := make([]model.RawPoint, len(pairs))
	for i, p := range pairs {
		points[i] = model.RawPoint{TimestampMs: int64(p[0]), Value: p[1]}
	}
	return points
}

// getJSON performs a GET and decodes the body, converting every failure
// mode into a FetchError so callers never see a raw parse fault.
func (f *CoinGeckoFetcher) getJSON(endpoint string, out interface{}) error {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Err: err}
	}
	if f.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return &FetchError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Err:      errors.New(strings.TrimSpace(string(body))),
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &FetchError{Endpoint: endpoint, Status: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
