package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"CryptoAnalyzer/internal/calculator"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Provider struct {
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"api_key"`
		Currency string `yaml:"currency"`
	} `yaml:"provider"`
	Watch struct {
		Coins        []string `yaml:"coins"`
		LookbackDays int      `yaml:"lookback_days"`
		TableRows    int      `yaml:"table_rows"`
	} `yaml:"watch"`
	Analytics struct {
		RSIPeriod      int    `yaml:"rsi_period"`
		RSIVariant     string `yaml:"rsi_variant"`
		PointBudget    int    `yaml:"point_budget"`
		ShortRangeDays int    `yaml:"short_range_days"`
	} `yaml:"analytics"`
	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds"`
		Redis      struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Schedule struct {
		AnalysisCron string `yaml:"analysis_cron"`
		CatalogCron  string `yaml:"catalog_cron"`
	} `yaml:"schedule"`
	Catalog struct {
		Path  string `yaml:"path"`
		Total int    `yaml:"total"`
	} `yaml:"catalog"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.Provider.Currency == "" {
		cfg.Provider.Currency = "usd"
	}
	if len(cfg.Watch.Coins) == 0 {
		cfg.Watch.Coins = []string{"bitcoin", "ethereum", "binancecoin", "solana", "ripple"}
	}
	if cfg.Watch.LookbackDays == 0 {
		cfg.Watch.LookbackDays = 90
	}
	if cfg.Watch.TableRows == 0 {
		cfg.Watch.TableRows = 10
	}
	if cfg.Analytics.RSIPeriod == 0 {
		cfg.Analytics.RSIPeriod = 14
	}
	if cfg.Analytics.RSIVariant == "" {
		cfg.Analytics.RSIVariant = string(calculator.VariantWilder)
	}
	if cfg.Analytics.PointBudget == 0 {
		cfg.Analytics.PointBudget = 1000
	}
	if cfg.Analytics.ShortRangeDays == 0 {
		cfg.Analytics.ShortRangeDays = 7
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 120
	}
	if cfg.Schedule.AnalysisCron == "" {
		cfg.Schedule.AnalysisCron = "0 0 * * * *"
	}
	if cfg.Schedule.CatalogCron == "" {
		cfg.Schedule.CatalogCron = "0 0 6 * * 1"
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "data/coins.json"
	}
	if cfg.Catalog.Total == 0 {
		cfg.Catalog.Total = 500
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/crypto_analyzer.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if len(c.Watch.Coins) == 0 {
		return fmt.Errorf("watch.coins must not be empty")
	}
	if c.Watch.LookbackDays <= 0 {
		return fmt.Errorf("watch.lookback_days must be positive")
	}
	if c.Analytics.RSIPeriod <= 0 {
		return fmt.Errorf("analytics.rsi_period must be positive")
	}
	if _, err := calculator.ParseRSIVariant(c.Analytics.RSIVariant); err != nil {
		return fmt.Errorf("analytics.rsi_variant: %w", err)
	}
	if c.Analytics.PointBudget <= 0 {
		return fmt.Errorf("analytics.point_budget must be positive")
	}
	if c.Analytics.ShortRangeDays <= 0 {
		return fmt.Errorf("analytics.short_range_days must be positive")
	}
	if c.Catalog.Total <= 0 {
		return fmt.Errorf("catalog.total must be positive")
	}
	return nil
}
