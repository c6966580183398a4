package collector

import (
	"math"
	"time"

	"CryptoAnalyzer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Snapshot *model.CoinSnapshot
	History  *model.RawHistory
	Coins    []model.Coin
	Err      error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSnapshot(coinID string) (*model.CoinSnapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Snapshot != nil {
		return m.Snapshot, nil
	}
	return &model.CoinSnapshot{
		ID:        coinID,
		Name:      coinID,
		Symbol:    "MCK",
		Price:     100,
		MarketCap: 1_000_000,
		Volume24h: 50_000,
	}, nil
}

func (m *MockFetcher) FetchHistory(coinID string, days int) (*model.RawHistory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.History != nil {
		return m.History, nil
	}
	return generateMockHistory(100, days*24), nil
}

func (m *MockFetcher) FetchCoinPage(page, perPage int) ([]model.Coin, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Coins == nil {
		return nil, nil
	}
	start := (page - 1) * perPage
	if start >= len(m.Coins) {
		return []model.Coin{}, nil
	}
	end := start + perPage
	if end > len(m.Coins) {
		end = len(m.Coins)
	}
	return m.Coins[start:end], nil
}

// generateMockHistory produces hourly points on a gentle sine wave.
func generateMockHistory(basePrice float64, points int) *model.RawHistory {
	raw := &model.RawHistory{}
	start := time.Now().Add(-time.Duration(points) * time.Hour)
	for i := 0; i < points; i++ {
		ms := start.Add(time.Duration(i) * time.Hour).UnixMilli()
		price := basePrice * (1 + 0.02*math.Sin(float64(i)/10))
		raw.Prices = append(raw.Prices, model.RawPoint{TimestampMs: ms, Value: price})
		raw.Volumes = append(raw.Volumes, model.RawPoint{TimestampMs: ms, Value: 10_000})
		raw.MarketCaps = append(raw.MarketCaps, model.RawPoint{TimestampMs: ms, Value: price * 10_000})
	}
	return raw
}
