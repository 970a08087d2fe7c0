package order

import "errors"

// Rejection kinds, one per validation rule. Messages are recorded verbatim
// in the result row, so they stay stable.
var (
	ErrNoValidOrder    = errors.New("no valid order detected")
	ErrNoOrder         = errors.New("no order detected")
	ErrOrderSyntax     = errors.New("order syntax error")
	ErrSymbolMismatch  = errors.New("symbol not matching")
	ErrUnitError       = errors.New("position not specified in dollar amount")
	ErrInvalidPosition = errors.New("invalid position")
	ErrSignMismatch    = errors.New("position sign error")
	ErrBuySubShare     = errors.New("buying less than 1 share")
	ErrSellSubShare    = errors.New("selling less than 1 share")
	ErrSyntax          = errors.New("syntax error")
	ErrLimitTooLow     = errors.New("sell limit too low")
	ErrLimitTooHigh    = errors.New("buy-to-cover limit too high")
	ErrStopTooHigh     = errors.New("sell stop too high")
	ErrStopTooLow      = errors.New("buy-to-cover stop too low")
)
