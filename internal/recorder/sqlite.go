package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			asset          TEXT NOT NULL,
			currency       TEXT,
			lookback_days  INTEGER,
			price          REAL,
			market_cap     REAL,
			volume         REAL,
			rsi            REAL,
			signal         TEXT,
			percent_change REAL,
			volume_ratio   REAL,
			inflow_proxy   REAL,
			points         INTEGER,
			policy         TEXT,
			cached         INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON analysis_runs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_asset ON analysis_runs(asset, timestamp)`,

		`CREATE TABLE IF NOT EXISTS catalog_refreshes (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			coins     INTEGER,
			path      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_catalog_ts ON catalog_refreshes(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable maps NaN to NULL so undefined statistics stay undefined in the
// database instead of poisoning aggregates.
func nullable(f float64) interface{} {
	if math.IsNaN(f) {
		return nil
	}
	return f
}

func (r *SQLiteRecorder) RecordAnalysis(rec *AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cached := 0
	if rec.Cached {
		cached = 1
	}
	_, err := r.db.Exec(`INSERT INTO analysis_runs
		(timestamp, asset, currency, lookback_days, price, market_cap, volume,
		 rsi, signal, percent_change, volume_ratio, inflow_proxy,
		 points, policy, cached)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Asset, rec.Currency, rec.LookbackDays,
		rec.Price, rec.MarketCap, rec.Volume,
		nullable(rec.RSI), rec.Signal, nullable(rec.PercentChange), nullable(rec.VolumeRatio), rec.InflowProxy,
		rec.Points, rec.Policy, cached,
	)
	return err
}

func (r *SQLiteRecorder) RecordCatalog(rec *CatalogRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO catalog_refreshes (timestamp, coins, path) VALUES (?,?,?)`,
		time.Now().Unix(), rec.Coins, rec.Path,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
