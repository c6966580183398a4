// Command coins snapshots the provider's coin catalog to a local JSON
// file: id, symbol, and name for the top assets by market cap.
package main

import (
	"flag"
	"log"
	"os"

	"CryptoAnalyzer/internal/catalog"
	"CryptoAnalyzer/internal/collector"
)

func main() {
	log.SetFlags(log.LstdFlags)

	var (
		total    = flag.Int("total", 500, "number of coins to fetch")
		currency = flag.String("currency", "usd", "quote currency for the market listing")
		out      = flag.String("out", "data/coins.json", "output file path")
		baseURL  = flag.String("base-url", "https://api.coingecko.com/api/v3", "provider base URL")
	)
	flag.Parse()

	apiKey := os.Getenv("COINGECKO_API_KEY")
	proxy := os.Getenv("HTTPS_PROXY")
	fetcher := collector.NewCoinGeckoFetcher(*baseURL, apiKey, *currency, proxy)

	log.Printf("[INFO] fetching top %d coins from %s", *total, *baseURL)
	coins, err := catalog.Build(fetcher, *total)
	if err != nil {
		log.Fatalf("[FATAL] build catalog: %v", err)
	}

	store := catalog.NewStore(*out)
	if err := store.Save(coins); err != nil {
		log.Fatalf("[FATAL] save catalog: %v", err)
	}
	log.Printf("[INFO] saved %d coins to %s", len(coins), *out)
}
