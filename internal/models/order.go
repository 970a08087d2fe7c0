package models

// Side of a trade decision. NEITHER is an explicit "do not trade".
type Side string

const (
	SideBuy     Side = "BUY"
	SideSell    Side = "SELL"
	SideNeither Side = "NEITHER"
)

// SideOfOrder classifies a raw order line by its leading keyword.
func SideOfOrder(order string) Side {
	switch {
	case len(order) >= 3 && order[:3] == "BUY":
		return SideBuy
	case len(order) >= 4 && order[:4] == "SELL":
		return SideSell
	default:
		return SideNeither
	}
}

// PriceSpec is a limit/stop price exactly as written in the order text:
// either an absolute price ("@90.00", "$90") or a percent move relative to
// the entry price ("-1%"). The raw token is kept so the validator owns the
// numeric conversion.
type PriceSpec struct {
	Raw      string
	Relative bool
}

// ParsedOrder is the structured intent extracted from one order line.
// A NEITHER order carries no notional and no price specs.
type ParsedOrder struct {
	Side     Side
	Symbol   string
	Notional string // raw signed dollar token, e.g. "+$27,400"
	Limit    PriceSpec
	Stop     PriceSpec
	Text     string // the full matched line, retained for audit
}

// ValidatedPosition is a sign-consistent position ready for simulation.
// Shares carries the direction: positive long, negative short, zero for
// NEITHER.
type ValidatedPosition struct {
	Side     Side    `json:"side"`
	Shares   int64   `json:"shares"`
	Entry    float64 `json:"price"`
	Notional float64 `json:"position"` // shares * entry after rounding
	Limit    float64 `json:"limit"`
	Stop     float64 `json:"stop"`
}
