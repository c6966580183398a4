package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CryptoAnalyzer/internal/cache"
	"CryptoAnalyzer/internal/calculator"
	"CryptoAnalyzer/internal/catalog"
	"CryptoAnalyzer/internal/collector"
	"CryptoAnalyzer/internal/config"
	"CryptoAnalyzer/internal/notifier"
	"CryptoAnalyzer/internal/recorder"
	"CryptoAnalyzer/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CryptoAnalyzer starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	fetcher := collector.NewCoinGeckoFetcher(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.Currency, cfg.Proxy)
	log.Printf("[INFO] data source: %s (%s)", fetcher.Name(), cfg.Provider.BaseURL)

	// Init analysis cache
	variant, _ := calculator.ParseRSIVariant(cfg.Analytics.RSIVariant)
	analysisCache := cache.New(
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB,
	)

	// Init collector
	col := collector.NewCollector(fetcher, analysisCache, collector.Options{
		Currency:     cfg.Provider.Currency,
		LookbackDays: cfg.Watch.LookbackDays,
		RSIPeriod:    cfg.Analytics.RSIPeriod,
		RSIVariant:   variant,
		PointBudget:  cfg.Analytics.PointBudget,
		ShortRange:   time.Duration(cfg.Analytics.ShortRangeDays) * 24 * time.Hour,
	})

	// Init coin catalog
	store := catalog.NewStore(cfg.Catalog.Path)
	if err := store.Load(); err != nil {
		log.Printf("[WARN] load catalog: %v", err)
	} else if store.Len() > 0 {
		log.Printf("[INFO] coin catalog loaded: %d coins", store.Len())
	}

	// Init notifier (Telegram when configured, console otherwise)
	var sink notifier.Interface
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sink = tn
	} else {
		log.Println("[INFO] Telegram not configured, reports go to console")
		sink = notifier.NewConsoleNotifier()
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, store, cfg.Catalog.Total, sink, rec, cfg.Watch.Coins, cfg.Watch.TableRows)
	if err := sched.RegisterAll(cfg.Schedule.AnalysisCron, cfg.Schedule.CatalogCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling for commands
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing analysis sweep now")
		go sched.RunAnalysisNow()
	}

	log.Println("[INFO] CryptoAnalyzer is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] CryptoAnalyzer stopped")
}
