package describe

import (
	"fmt"
	"math"
	"strings"

	"github.com/markcheno/go-talib"

	"earnsim/internal/models"
	"earnsim/internal/sim"
)

// FormatAmount renders a dollar magnitude the way the narrative prompts do.
func FormatAmount(v float64) string {
	switch {
	case math.Abs(v) > 1e9:
		return fmt.Sprintf("%.3fB", v/1e9)
	case math.Abs(v) > 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case math.Abs(v) > 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%g", v)
	}
}

// CompareEstimate classifies actual against the consensus estimate with a
// one percent band.
func CompareEstimate(actual, estimate float64) string {
	if actual >= 1.01*estimate { // both may be negative
		return "beat"
	}
	if actual <= 0.99*estimate {
		return "missed"
	}
	return "met"
}

// Earnings renders the report summary sentence pair.
func Earnings(rec *models.EarningsRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A public-traded company (symbol: %s) reported their %s quarterly earnings on %s, after the market closing bell.",
		rec.Symbol, rec.Quarter, rec.Date.Format("Monday, January 2 2006"))
	fmt.Fprintf(&b, " The company reported earnings of $%.2f per share which %s the analyst consensus estimate of $%g%s",
		rec.EPSActual, CompareEstimate(rec.EPSActual, rec.EPSEstimate), rec.EPSEstimate,
		byRatio(rec.EPSActual, rec.EPSEstimate))
	fmt.Fprintf(&b, " The company reported quarterly sales of $%s which %s the analyst consensus estimate of $%s%s",
		FormatAmount(rec.RevenueActual), CompareEstimate(rec.RevenueActual, rec.RevenueEstimate),
		FormatAmount(rec.RevenueEstimate), byRatio(rec.RevenueActual, rec.RevenueEstimate))
	return b.String()
}

func byRatio(actual, estimate float64) string {
	if actual < 0 || estimate < 0 {
		return "."
	}
	ratio := 100 * (actual/estimate - 1)
	if ratio > 1 {
		return fmt.Sprintf(" by %.2f percent.", ratio)
	}
	if ratio < -1 {
		return fmt.Sprintf(" by %.2f percent.", -ratio)
	}
	return "."
}

// Trend labels a daily price trajectory by the slope of its log10 linear
// regression, falling back to choppiness labels when the slope is flat.
func Trend(marks []float64) string {
	if len(marks) < 2 {
		return "moving sideways"
	}
	lg := make([]float64, len(marks))
	for i, v := range marks {
		lg[i] = math.Log10(v)
	}
	slopes := talib.LinearRegSlope(lg, len(lg))
	slope := slopes[len(slopes)-1]
	spread := maxSlice(marks)/minSlice(marks) - 1

	switch {
	case slope > math.Log10(1.05):
		return "surging"
	case slope > math.Log10(1.01):
		return "trending bullish"
	case slope > math.Log10(1.005):
		return "trending slightly bullish"
	case slope < -math.Log10(1.05):
		return "plunging"
	case slope < -math.Log10(1.01):
		return "trending bearish"
	case slope < -math.Log10(1.005):
		return "trending slightly bearish"
	case spread > 0.11:
		return "highly volatile and choppy"
	case spread > 0.08:
		return "moderately choppy"
	case spread > 0.05:
		return "slightly choppy"
	default:
		return "moving sideways"
	}
}

// Past renders the pre-earnings trajectory sentence.
func Past(rec *models.EarningsRecord) string {
	if len(rec.PastMarks) < 2 {
		return ""
	}
	first := rec.PastMarks[0]
	last := rec.PastMarks[len(rec.PastMarks)-1]
	s := fmt.Sprintf("In the last %d trading days, this company's stock (symbol: %s) has been %s",
		len(rec.PastMarks), rec.Symbol, Trend(rec.PastMarks))
	rate := 100 * (last/first - 1)
	if rate > 0.1 {
		s += fmt.Sprintf(", up by %.3f%%.", rate)
	} else if rate < -0.1 {
		s += fmt.Sprintf(", down by %.3f%%.", -rate)
	} else {
		s += "."
	}
	return s
}

// RiskBound annotates a hypothetical exit: when an exit at limit first
// became available, and the most adverse price tolerated until then, i.e.
// the loosest stop that would still have realized it.
func RiskBound(rec *models.EarningsRecord, limit float64, long bool) string {
	if len(rec.Books) == 0 {
		return ""
	}
	price, tod := sim.MaxRisk(rec.Books, limit, long)
	return fmt.Sprintf("an exit at %.2f was first available at %s; the loosest stop still realizing it is %.2f",
		limit, Clock(tod), price)
}

// Clock formats a minute-of-day as HH:MM.
func Clock(timeOfDay float64) string {
	m := int(timeOfDay)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func maxSlice(xs []float64) float64 {
	m := xs[0]
	for _, v := range xs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minSlice(xs []float64) float64 {
	m := xs[0]
	for _, v := range xs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
