package sim

import (
	"context"
	"errors"
	"time"

	"earnsim/internal/models"
)

// ErrMissingBookData means the fine-grained quote needed to price a stop
// fill does not exist. Fatal for the record, never retried.
var ErrMissingBookData = errors.New("cannot find book info")

// mocTime is the fixed market-on-close reference, 16:00 ET.
const mocTime = 16 * 60

// QuoteSource resolves the traded market at a finer grain than the running
// book. Only stop fills need it: the stop price is a trigger, the fill
// happens at whatever the market shows at or after that minute.
type QuoteSource interface {
	BBOAt(ctx context.Context, symbol string, day time.Time, timeOfDay float64) (models.Quote, error)
}

type Simulator struct {
	quotes QuoteSource
}

func New(quotes QuoteSource) *Simulator {
	return &Simulator{quotes: quotes}
}

// Run walks the book snapshots strictly after the entry tick and returns
// the first qualifying exit. At each tick the limit is evaluated before the
// stop; when neither ever fires the position closes at the 16:00
// market-on-close quote.
func (s *Simulator) Run(ctx context.Context, rec *models.EarningsRecord, pos models.ValidatedPosition) (models.ExitEvent, error) {
	long := pos.Shares > 0

	for _, v := range rec.Books[1:] {
		if long && v.BidHigh >= pos.Limit {
			return models.ExitEvent{TimeOfDay: v.TimeOfDay, Price: v.BidHigh, Kind: models.ExitSoldLimit}, nil
		}
		if !long && v.AskLow <= pos.Limit {
			return models.ExitEvent{TimeOfDay: v.TimeOfDay, Price: v.AskLow, Kind: models.ExitBoughtLimit}, nil
		}
		if long && v.AskLow < pos.Stop || !long && v.BidHigh > pos.Stop {
			// Books cover the session after the earnings date.
			q, err := s.quotes.BBOAt(ctx, rec.Symbol, rec.Date.Add(24*time.Hour), v.TimeOfDay)
			if err != nil {
				return models.ExitEvent{}, ErrMissingBookData
			}
			if long {
				return models.ExitEvent{TimeOfDay: v.TimeOfDay, Price: q.Bid, Kind: models.ExitSoldStop}, nil
			}
			return models.ExitEvent{TimeOfDay: v.TimeOfDay, Price: q.Ask, Kind: models.ExitBoughtStop}, nil
		}
	}

	if long {
		return models.ExitEvent{TimeOfDay: mocTime, Price: rec.MOC.Bid, Kind: models.ExitSoldMOC}, nil
	}
	return models.ExitEvent{TimeOfDay: mocTime, Price: rec.MOC.Ask, Kind: models.ExitBoughtMOC}, nil
}

// Score computes profit and the return from the trader's perspective. The
// sign of Shares already encodes direction, so profit is correct for both
// legs; return is flipped for shorts so a gain is always positive.
func Score(pos models.ValidatedPosition, exit models.ExitEvent) (profit, ret float64) {
	profit = float64(pos.Shares) * (exit.Price - pos.Entry)
	if pos.Shares > 0 {
		ret = exit.Price/pos.Entry - 1
	} else {
		ret = 1 - exit.Price/pos.Entry
	}
	return profit, ret
}
