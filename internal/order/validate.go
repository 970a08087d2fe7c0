package order

import (
	"math"
	"strconv"
	"strings"

	"earnsim/internal/models"
)

// Validate converts a parsed order into a sign-consistent position against
// the entry reference tick (the first book snapshot of the session). The
// first failing rule wins; the returned error is one of the kinds in
// errors.go. Pure: no lookups, no side effects.
func Validate(po models.ParsedOrder, symbol string, open models.BookTick) (models.ValidatedPosition, error) {
	if po.Symbol != symbol {
		return models.ValidatedPosition{}, ErrSymbolMismatch
	}
	if po.Side == models.SideNeither {
		return models.ValidatedPosition{Side: models.SideNeither}, nil
	}

	// A bare dollar literal has no sign to validate against the side.
	if strings.HasPrefix(po.Notional, "$") {
		return models.ValidatedPosition{}, ErrUnitError
	}
	notional, err := strconv.ParseFloat(stripMoney(po.Notional), 64)
	if err != nil || notional == 0 {
		return models.ValidatedPosition{}, ErrInvalidPosition
	}
	if po.Side == models.SideBuy && notional <= 0 ||
		po.Side == models.SideSell && notional >= 0 {
		return models.ValidatedPosition{}, ErrSignMismatch
	}

	// Longs lift the running best ask, shorts hit the running best bid.
	entry := open.AskLow
	if po.Side == models.SideSell {
		entry = open.BidHigh
	}

	shares := int64(math.Floor(math.Abs(notional) / entry))
	if shares == 0 {
		if po.Side == models.SideBuy {
			return models.ValidatedPosition{}, ErrBuySubShare
		}
		return models.ValidatedPosition{}, ErrSellSubShare
	}
	if po.Side == models.SideSell {
		shares = -shares
	}

	limit, err := resolveSpec(po.Limit, entry)
	if err != nil {
		return models.ValidatedPosition{}, err
	}
	if shares > 0 && limit < entry {
		return models.ValidatedPosition{}, ErrLimitTooLow
	}
	if shares < 0 && limit > entry {
		return models.ValidatedPosition{}, ErrLimitTooHigh
	}

	stop, err := resolveSpec(po.Stop, entry)
	if err != nil {
		return models.ValidatedPosition{}, err
	}
	if shares > 0 && stop > entry {
		return models.ValidatedPosition{}, ErrStopTooHigh
	}
	if shares < 0 && stop < entry {
		return models.ValidatedPosition{}, ErrStopTooLow
	}

	return models.ValidatedPosition{
		Side:     po.Side,
		Shares:   shares,
		Entry:    entry,
		Notional: float64(shares) * entry,
		Limit:    limit,
		Stop:     stop,
	}, nil
}

// resolveSpec turns a price spec into an absolute price. Relative specs are
// applied to the entry as entry*(1+pct/100) for either side: a percent
// signed against the position lands on the wrong side of entry and is
// caught by the ordering checks above.
func resolveSpec(ps models.PriceSpec, entry float64) (float64, error) {
	v, err := strconv.ParseFloat(stripMoney(ps.Raw), 64)
	if err != nil {
		return 0, ErrSyntax
	}
	if ps.Relative {
		return entry * (1 + v/100), nil
	}
	return v, nil
}

func stripMoney(s string) string {
	return strings.NewReplacer("$", "", ",", "").Replace(s)
}
