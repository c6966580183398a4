package recorder

// AnalysisRecord holds the per-run scalars persisted for one analysis.
// RSI, PercentChange, and VolumeRatio may be NaN (undefined); they are
// stored as NULL.
type AnalysisRecord struct {
	Asset         string
	Currency      string
	LookbackDays  int
	Price         float64
	MarketCap     float64
	Volume        float64
	RSI           float64
	Signal        string
	PercentChange float64
	VolumeRatio   float64
	InflowProxy   float64
	Points        int
	Policy        string
	Cached        bool
}

// CatalogRecord documents one catalog refresh.
type CatalogRecord struct {
	Coins int
	Path  string
}

// Recorder persists historical data for later analysis.
type Recorder interface {
	RecordAnalysis(rec *AnalysisRecord) error
	RecordCatalog(rec *CatalogRecord) error
	Close() error
}
