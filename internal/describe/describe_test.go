package describe

import (
	"strings"
	"testing"
	"time"

	"earnsim/internal/models"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{2.5e9, "2.500B"},
		{1.5e6, "1.5M"},
		{2300, "2.3k"},
		{950, "950"},
		{-3.2e6, "-3.2M"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCompareEstimate(t *testing.T) {
	cases := []struct {
		actual, estimate float64
		want             string
	}{
		{1.05, 1.00, "beat"},
		{0.90, 1.00, "missed"},
		{1.00, 1.00, "met"},
		{1.005, 1.00, "met"},
		{-0.50, -1.00, "beat"}, // smaller loss than feared
	}
	for _, tc := range cases {
		if got := CompareEstimate(tc.actual, tc.estimate); got != tc.want {
			t.Errorf("CompareEstimate(%v, %v) = %q, want %q", tc.actual, tc.estimate, got, tc.want)
		}
	}
}

func TestEarnings(t *testing.T) {
	rec := &models.EarningsRecord{
		Symbol:          "TICK",
		Quarter:         "Q4 2024",
		Date:            time.Date(2025, 2, 11, 0, 0, 0, 0, time.UTC),
		EPSActual:       1.10,
		EPSEstimate:     1.00,
		RevenueActual:   2.5e9,
		RevenueEstimate: 2.4e9,
	}
	got := Earnings(rec)
	for _, want := range []string{
		"symbol: TICK",
		"Q4 2024",
		"Tuesday, February 11 2025",
		"earnings of $1.10 per share which beat",
		"sales of $2.500B which beat",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Earnings() missing %q in %q", want, got)
		}
	}
}

func geometric(start, ratio float64, n int) []float64 {
	out := make([]float64, n)
	v := start
	for i := range out {
		out[i] = v
		v *= ratio
	}
	return out
}

func TestTrend(t *testing.T) {
	cases := []struct {
		name  string
		marks []float64
		want  string
	}{
		{"strong up", geometric(100, 1.10, 10), "surging"},
		{"strong down", geometric(100, 0.90, 10), "plunging"},
		{"mild up", geometric(100, 1.02, 10), "trending bullish"},
		{"flat", []float64{100, 100, 100, 100, 100}, "moving sideways"},
		{"choppy flat", []float64{100, 109, 100, 109, 100, 109, 100}, "moderately choppy"},
		{"too short", []float64{100}, "moving sideways"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Trend(tc.marks); got != tc.want {
				t.Fatalf("Trend = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPast(t *testing.T) {
	rec := &models.EarningsRecord{Symbol: "TICK", PastMarks: geometric(100, 1.10, 5)}
	got := Past(rec)
	if !strings.Contains(got, "last 5 trading days") {
		t.Errorf("Past() = %q", got)
	}
	if !strings.Contains(got, "surging") || !strings.Contains(got, "up by") {
		t.Errorf("Past() = %q", got)
	}

	if got := Past(&models.EarningsRecord{Symbol: "TICK"}); got != "" {
		t.Errorf("Past() without marks = %q", got)
	}
}

func TestRiskBound(t *testing.T) {
	rec := &models.EarningsRecord{
		Books: []models.BookTick{
			{TimeOfDay: 965, BidHigh: 26.95, AskLow: 27.00},
			{TimeOfDay: 975, BidHigh: 30.00, AskLow: 26.80},
		},
	}
	got := RiskBound(rec, 30, true)
	if !strings.Contains(got, "first available at 16:15") || !strings.Contains(got, "26.80") {
		t.Errorf("RiskBound() = %q", got)
	}

	if got := RiskBound(&models.EarningsRecord{}, 30, true); got != "" {
		t.Errorf("RiskBound() without books = %q", got)
	}
}

func TestClock(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{570, "09:30"},
		{960, "16:00"},
		{965, "16:05"},
		{0, "00:00"},
	}
	for _, tc := range cases {
		if got := Clock(tc.in); got != tc.want {
			t.Errorf("Clock(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
