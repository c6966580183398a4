package notifier

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"CryptoAnalyzer/internal/model"
)

func signalEmoji(s model.Signal) string {
	switch s {
	case model.SignalBuy:
		return "📈"
	case model.SignalSell:
		return "📉"
	default:
		return "⏸️"
	}
}

func policyLabel(p model.ResamplePolicy) string {
	switch p {
	case model.ResampleDaily:
		return "daily aggregated"
	case model.ResampleStride:
		return "stride sampled"
	default:
		return "full resolution"
	}
}

// FormatReport renders a full analysis report as a Telegram HTML message.
// tableRows caps the newest-first signal table at the bottom.
func FormatReport(displayName string, report *model.Report, tableRows int) string {
	var b strings.Builder
	snap := report.Snapshot
	cur := strings.ToUpper(report.Series.Currency)

	b.WriteString(fmt.Sprintf("📊 <b>%s (%s)</b> | %s", displayName, snap.Symbol, time.Now().Format("2006-01-02")))
	if report.Cached {
		b.WriteString(" (cached)")
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("💰 Price: %s %s\n", humanize.CommafWithDigits(snap.Price, 2), cur))
	b.WriteString(fmt.Sprintf("🏦 Market Cap: %s %s\n", humanize.CommafWithDigits(snap.MarketCap, 0), cur))
	b.WriteString(fmt.Sprintf("📦 Volume (24h): %s %s\n", humanize.CommafWithDigits(snap.Volume24h, 0), cur))
	if snap.HasCapChange {
		b.WriteString(fmt.Sprintf("Market Cap Change (30d): %+.2f%%\n", snap.CapChange30d))
	}
	b.WriteString("\n")

	// Latest indicator state
	if n := len(report.Points); n > 0 {
		last := report.Points[n-1]
		b.WriteString(fmt.Sprintf("RSI: <b>%.2f</b>\n", last.RSI))
		b.WriteString(fmt.Sprintf("Signal: %s <b>%s</b>\n\n", signalEmoji(last.Signal), last.Signal))
	}

	// Window statistics
	samples := report.Series.Samples
	b.WriteString(fmt.Sprintf("📈 Window: %d points, %s\n", len(samples), policyLabel(report.Series.Resample)))
	if !math.IsNaN(report.Summary.PercentChange) {
		b.WriteString(fmt.Sprintf("Market Cap Change (window): %+.2f%%\n", report.Summary.PercentChange))
	}
	if !math.IsNaN(report.Summary.VolumeRatio) {
		b.WriteString(fmt.Sprintf("Volume / Market Cap: %.2f%%\n", report.Summary.VolumeRatio))
	}
	b.WriteString(fmt.Sprintf("Inflow proxy: %s\n", humanize.CommafWithDigits(report.Summary.InflowProxy, 0)))

	if tableRows > 0 {
		b.WriteString("\n")
		b.WriteString(FormatSignalTable(report, tableRows))
	}

	return b.String()
}

// FormatSignalTable renders the most recent rows newest-first, one line
// per sample: time, price, RSI, signal.
func FormatSignalTable(report *model.Report, rows int) string {
	var b strings.Builder
	b.WriteString("📌 <b>Recent signals:</b>\n")

	samples := report.Series.Samples
	points := report.Points
	n := len(samples)
	if len(points) < n {
		n = len(points)
	}
	for i := n - 1; i >= 0 && n-1-i < rows; i-- {
		b.WriteString(fmt.Sprintf("  %s  %s  RSI %.1f  %s %s\n",
			samples[i].Time.Format("01-02 15:04"),
			humanize.CommafWithDigits(samples[i].Price, 2),
			points[i].RSI,
			signalEmoji(points[i].Signal), points[i].Signal))
	}
	return b.String()
}

// FormatFailure renders a user-visible fetch/analysis failure line.
func FormatFailure(coinID string, err error) string {
	return fmt.Sprintf("❌ <b>%s</b> analysis failed: %v", coinID, err)
}
