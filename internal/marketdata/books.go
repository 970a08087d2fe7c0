package marketdata

import (
	"earnsim/internal/models"
)

// RawTick is one uncompressed 1-minute BBO row.
type RawTick struct {
	TimeOfDay float64
	Bid       float64
	Ask       float64
}

// CompactBooks folds raw minute quotes into the running best-bid/best-ask
// snapshot sequence: the bid column is the maximum seen so far, the ask the
// minimum, and only the first tick of each distinct (bidHigh, askLow) pair
// is kept. The result is strictly time-ordered with a monotone bid column
// and a monotone ask column.
func CompactBooks(raw []RawTick) []models.BookTick {
	var out []models.BookTick
	var bidH, askL float64
	for i, t := range raw {
		if i == 0 {
			bidH, askL = t.Bid, t.Ask
		} else {
			if t.Bid > bidH {
				bidH = t.Bid
			}
			if t.Ask < askL {
				askL = t.Ask
			}
		}
		if n := len(out); n > 0 && out[n-1].BidHigh == bidH && out[n-1].AskLow == askL {
			continue
		}
		out = append(out, models.BookTick{TimeOfDay: t.TimeOfDay, BidHigh: bidH, AskLow: askL})
	}
	return out
}
