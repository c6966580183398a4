package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"CryptoAnalyzer/internal/collector"
	"CryptoAnalyzer/internal/model"
)

// PerPage is the provider's page size for the full asset listing.
const PerPage = 250

// Build paginates the provider's asset listing and truncates the result
// to total records. A short page ends the walk early (listing exhausted).
func Build(fetcher collector.Fetcher, total int) ([]model.Coin, error) {
	if total <= 0 {
		return nil, errors.New("total must be positive")
	}

	pages := (total + PerPage - 1) / PerPage
	coins := make([]model.Coin, 0, total)
	for page := 1; page <= pages; page++ {
		batch, err := fetcher.FetchCoinPage(page, PerPage)
		if err != nil {
			return nil, fmt.Errorf("fetch catalog page %d: %w", page, err)
		}
		coins = append(coins, batch...)
		log.Printf("[INFO] catalog page %d: %d coins", page, len(batch))
		if len(batch) < PerPage {
			break
		}
	}

	if len(coins) > total {
		coins = coins[:total]
	}
	return coins, nil
}

// Store persists the catalog as a flat JSON list and serves id -> display
// name lookups.
type Store struct {
	mu    sync.RWMutex
	path  string
	coins []model.Coin
	byID  map[string]model.Coin
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path, byID: make(map[string]model.Coin)}
}

// Load reads the catalog from disk. A missing file leaves the store empty.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read catalog: %w", err)
	}
	var coins []model.Coin
	if err := json.Unmarshal(data, &coins); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}
	s.replace(coins)
	return nil
}

// Save writes the catalog to disk and replaces the in-memory lookup.
func (s *Store) Save(coins []model.Coin) error {
	data, err := json.MarshalIndent(coins, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create catalog dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	s.replace(coins)
	return nil
}

func (s *Store) replace(coins []model.Coin) {
	byID := make(map[string]model.Coin, len(coins))
	for _, c := range coins {
		byID[c.ID] = c
	}

	s.mu.Lock()
	s.coins = coins
	s.byID = byID
	s.mu.Unlock()
}

// DisplayName returns the catalog name for an id, falling back to the id
// itself for unknown assets.
func (s *Store) DisplayName(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.byID[id]; ok {
		return c.Name
	}
	return id
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Len returns the number of catalog records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.coins)
}
