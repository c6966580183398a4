package scheduler

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"CryptoAnalyzer/internal/catalog"
	"CryptoAnalyzer/internal/collector"
	"CryptoAnalyzer/internal/notifier"
	"CryptoAnalyzer/internal/recorder"
)

// Scheduler owns all cron tasks: the periodic analysis sweep over the
// watched coins and the catalog refresh. Runs are serialized; a cron fire
// or user command waits for the previous run to finish.
type Scheduler struct {
	Cron         *cron.Cron
	Collector    *collector.Collector
	Catalog      *catalog.Store
	CatalogTotal int
	Notifier     notifier.Interface
	Recorder     recorder.Recorder
	Coins        []string
	TableRows    int
	Ctx          context.Context

	runMu sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, store *catalog.Store, catalogTotal int,
	n notifier.Interface, rec recorder.Recorder, coins []string, tableRows int) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Collector:    col,
		Catalog:      store,
		CatalogTotal: catalogTotal,
		Notifier:     n,
		Recorder:     rec,
		Coins:        coins,
		TableRows:    tableRows,
		Ctx:          ctx,
	}
}

// RegisterAll registers the analysis and catalog refresh tasks.
func (s *Scheduler) RegisterAll(analysisCron, catalogCron string) error {
	if _, err := s.Cron.AddFunc(analysisCron, s.analysisTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	if _, err := s.Cron.AddFunc(catalogCron, s.catalogTask); err != nil {
		return fmt.Errorf("register catalog task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunAnalysisNow executes the analysis sweep immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunAnalysisNow() {
	s.analysisTask()
}

func (s *Scheduler) analysisTask() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	log.Println("[INFO] running analysis sweep")
	for _, coin := range s.Coins {
		s.analyzeOne(coin)
	}
}

// analyzeOne runs the pipeline for one coin, delivers the report, and
// records the run. A failure is reported and leaves no partial state.
func (s *Scheduler) analyzeOne(coinID string) {
	report, err := s.Collector.Analyze(s.Ctx, coinID)
	if err != nil {
		log.Printf("[ERROR] analyze %s: %v", coinID, err)
		s.trySend(notifier.FormatFailure(coinID, err))
		return
	}

	msg := notifier.FormatReport(s.Catalog.DisplayName(coinID), report, s.TableRows)
	s.trySend(msg)

	rec := &recorder.AnalysisRecord{
		Asset:         coinID,
		Currency:      report.Series.Currency,
		LookbackDays:  s.Collector.Opts.LookbackDays,
		Price:         report.Snapshot.Price,
		MarketCap:     report.Snapshot.MarketCap,
		Volume:        report.Snapshot.Volume24h,
		RSI:           math.NaN(),
		PercentChange: report.Summary.PercentChange,
		VolumeRatio:   report.Summary.VolumeRatio,
		InflowProxy:   report.Summary.InflowProxy,
		Points:        len(report.Series.Samples),
		Policy:        string(report.Series.Resample),
		Cached:        report.Cached,
	}
	if n := len(report.Points); n > 0 {
		rec.RSI = report.Points[n-1].RSI
		rec.Signal = string(report.Points[n-1].Signal)
	}
	if err := s.Recorder.RecordAnalysis(rec); err != nil {
		log.Printf("[ERROR] record analysis %s: %v", coinID, err)
	}
}

func (s *Scheduler) catalogTask() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	log.Println("[INFO] refreshing coin catalog")
	coins, err := catalog.Build(s.Collector.Fetcher, s.CatalogTotal)
	if err != nil {
		log.Printf("[ERROR] build catalog: %v", err)
		s.trySend(fmt.Sprintf("❌ catalog refresh failed: %v", err))
		return
	}
	if err := s.Catalog.Save(coins); err != nil {
		log.Printf("[ERROR] save catalog: %v", err)
		return
	}

	s.trySend(fmt.Sprintf("🗂 catalog refreshed: %d coins", len(coins)))
	if err := s.Recorder.RecordCatalog(&recorder.CatalogRecord{Coins: len(coins), Path: s.Catalog.Path()}); err != nil {
		log.Printf("[ERROR] record catalog refresh: %v", err)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "/analyze":
		coin := ""
		if len(fields) > 1 {
			coin = strings.ToLower(fields[1])
		}
		if coin == "" {
			return "usage: /analyze <coin-id>"
		}
		s.runMu.Lock()
		defer s.runMu.Unlock()
		s.analyzeOne(coin)
		return ""
	case "/run":
		s.analysisTask()
		return ""
	case "/coins":
		var b strings.Builder
		b.WriteString("Watched coins:\n")
		for _, c := range s.Coins {
			b.WriteString(fmt.Sprintf("  • %s (%s)\n", s.Catalog.DisplayName(c), c))
		}
		b.WriteString(fmt.Sprintf("\nCatalog: %d coins known", s.Catalog.Len()))
		return b.String()
	case "/catalog":
		s.catalogTask()
		return ""
	default:
		return "Commands:\n• /analyze <coin-id>\n• /run\n• /coins\n• /catalog"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
