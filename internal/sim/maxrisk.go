package sim

import (
	"sort"

	"earnsim/internal/models"
)

// MaxRisk finds the earliest snapshot at which an exit at limit becomes
// available for the given direction and reports the opposing side of the
// spread at that tick: the worst price the position had to tolerate before
// the favorable exit existed. When no snapshot ever satisfies the exit, the
// final snapshot is reported.
//
// The running best bid is non-decreasing and the running best ask
// non-increasing by construction of the feed, which makes the predicate
// monotone and a boundary search valid. Raw out-of-order data would break
// that, so the column is verified first and a linear scan used instead when
// it does not hold.
func MaxRisk(books []models.BookTick, limit float64, long bool) (price, timeOfDay float64) {
	if len(books) == 0 {
		return 0, 0
	}

	hit := func(v models.BookTick) bool {
		if long {
			return v.BidHigh >= limit
		}
		return v.AskLow <= limit
	}

	var i int
	if monotone(books, long) {
		i = sort.Search(len(books), func(j int) bool { return hit(books[j]) })
	} else {
		i = len(books)
		for j, v := range books {
			if hit(v) {
				i = j
				break
			}
		}
	}
	if i == len(books) {
		i = len(books) - 1
	}

	v := books[i]
	if long {
		return v.AskLow, v.TimeOfDay
	}
	return v.BidHigh, v.TimeOfDay
}

func monotone(books []models.BookTick, long bool) bool {
	for j := 1; j < len(books); j++ {
		if long && books[j].BidHigh < books[j-1].BidHigh {
			return false
		}
		if !long && books[j].AskLow > books[j-1].AskLow {
			return false
		}
	}
	return true
}
