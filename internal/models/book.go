package models

import "time"

// BookTick is one snapshot of the running best bid / best ask over the
// session, keyed by minute of day (ET). The sequence is strictly
// time-ordered; BidHigh is non-decreasing and AskLow non-increasing by
// construction.
type BookTick struct {
	TimeOfDay float64 `json:"etTimeOfDay"`
	BidHigh   float64 `json:"bidH"`
	AskLow    float64 `json:"askL"`
}

// Quote is a plain best bid/ask pair.
type Quote struct {
	Bid float64 `json:"bid"`
	Ask float64 `json:"ask"`
}

// RecordKey identifies one evaluation record: a symbol/quarter pair answered
// by one model.
type RecordKey struct {
	Symbol  string
	Quarter string
	Model   string
}

// EarningsRecord is everything the simulation needs about one symbol/quarter:
// the next-session book snapshots (Books[0] is the entry tick), the
// market-on-close quote, and the report numbers used for narrative text.
type EarningsRecord struct {
	Symbol  string
	Quarter string
	Date    time.Time // earnings date; books are for the following session

	Books   []BookTick
	MOC     Quote
	Optimal OptimalOrder

	EPSActual       float64
	EPSEstimate     float64
	RevenueActual   float64
	RevenueEstimate float64

	PastMarks []float64 // daily mark prices leading into the report
}

// OptimalOrder is the hindsight-best order for the record, used only for
// reporting next to the model's decision.
type OptimalOrder struct {
	Order string
	Side  Side
}

// LLMOutput is one model answer awaiting evaluation. Text holds the full
// response when available; Order a single pre-extracted line.
type LLMOutput struct {
	Key   RecordKey
	Order string
	Text  string
}
