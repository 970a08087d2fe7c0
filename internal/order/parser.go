package order

import (
	"earnsim/internal/models"
)

// The order grammar, as the models are instructed to emit it:
//
//	(BUY|SELL) <signed-dollar-amount> [of] <SYMBOL>; [BUY|SELL] LMT <spec> STP <spec>
//	DO NOT TRADE <SYMBOL>
//
// where <spec> is @?<decimal> (absolute) or [+-]<decimal>% (relative).
// Parsing never fails with an exception; callers get every match or none.

// Extract scans a full model response for order lines. Responses often
// contain working text followed by a revised final decision, so every match
// is returned in document order and the last one is authoritative. Returns
// ErrNoValidOrder when nothing matches.
func Extract(text string) ([]models.ParsedOrder, error) {
	var out []models.ParsedOrder
	for i := 0; i < len(text); {
		c := text[i]
		if (c != 'B' && c != 'S' && c != 'D') || !boundary(text, i) {
			i++
			continue
		}
		po, end, ok := tryOrder(text, i)
		if !ok {
			i++
			continue
		}
		out = append(out, po)
		i = end
	}
	if len(out) == 0 {
		return nil, ErrNoValidOrder
	}
	return out, nil
}

// ParseLine applies the grammar to one already-extracted line. Returns
// ErrOrderSyntax when the line does not parse as a whole prefix.
func ParseLine(line string) (models.ParsedOrder, error) {
	po, _, ok := tryOrder(line, 0)
	if !ok {
		return models.ParsedOrder{}, ErrOrderSyntax
	}
	return po, nil
}

// boundary reports whether position i does not continue a capitalized word,
// so BUY inside REBUY is not a candidate.
func boundary(s string, i int) bool {
	return i == 0 || s[i-1] < 'A' || s[i-1] > 'Z'
}

type scanner struct {
	s string
	i int
}

func tryOrder(text string, start int) (models.ParsedOrder, int, bool) {
	sc := &scanner{s: text, i: start}

	if sc.lit("DO NOT TRADE") {
		if !sc.space() {
			return models.ParsedOrder{}, 0, false
		}
		sym, ok := sc.symbol()
		if !ok {
			return models.ParsedOrder{}, 0, false
		}
		return models.ParsedOrder{
			Side:   models.SideNeither,
			Symbol: sym,
			Text:   text[start:sc.i],
		}, sc.i, true
	}

	side, ok := sc.side()
	if !ok || !sc.space() {
		return models.ParsedOrder{}, 0, false
	}
	notional, ok := sc.amount()
	if !ok || !sc.space() {
		return models.ParsedOrder{}, 0, false
	}
	if sc.lit("of") {
		if !sc.space() {
			return models.ParsedOrder{}, 0, false
		}
	}
	sym, ok := sc.symbol()
	if !ok {
		return models.ParsedOrder{}, 0, false
	}
	if !sc.lit(";") {
		return models.ParsedOrder{}, 0, false
	}
	sc.space()
	if _, closing := sc.side(); closing {
		if !sc.space() {
			return models.ParsedOrder{}, 0, false
		}
	}
	if !sc.lit("LMT") || !sc.space() {
		return models.ParsedOrder{}, 0, false
	}
	limit, ok := sc.priceSpec()
	if !ok || !sc.space() {
		return models.ParsedOrder{}, 0, false
	}
	if !sc.lit("STP") || !sc.space() {
		return models.ParsedOrder{}, 0, false
	}
	stop, ok := sc.priceSpec()
	if !ok {
		return models.ParsedOrder{}, 0, false
	}

	return models.ParsedOrder{
		Side:     side,
		Symbol:   sym,
		Notional: notional,
		Limit:    limit,
		Stop:     stop,
		Text:     text[start:sc.i],
	}, sc.i, true
}

func (sc *scanner) lit(s string) bool {
	if len(sc.s)-sc.i < len(s) || sc.s[sc.i:sc.i+len(s)] != s {
		return false
	}
	sc.i += len(s)
	return true
}

// space consumes one or more blanks. Orders never span lines.
func (sc *scanner) space() bool {
	n := sc.i
	for n < len(sc.s) && (sc.s[n] == ' ' || sc.s[n] == '\t') {
		n++
	}
	if n == sc.i {
		return false
	}
	sc.i = n
	return true
}

func (sc *scanner) side() (models.Side, bool) {
	if sc.lit("BUY") {
		return models.SideBuy, true
	}
	if sc.lit("SELL") {
		return models.SideSell, true
	}
	return "", false
}

func (sc *scanner) symbol() (string, bool) {
	n := sc.i
	for n < len(sc.s) && sc.s[n] >= 'A' && sc.s[n] <= 'Z' {
		n++
	}
	if n == sc.i {
		return "", false
	}
	sym := sc.s[sc.i:n]
	sc.i = n
	return sym, true
}

// number consumes digits with optional thousands separators and an optional
// fractional part; at least one digit is required.
func (sc *scanner) number(commas bool) bool {
	n := sc.i
	digits := 0
	for n < len(sc.s) {
		c := sc.s[n]
		if c >= '0' && c <= '9' {
			digits++
		} else if !(commas && c == ',') {
			break
		}
		n++
	}
	if digits == 0 {
		return false
	}
	if n < len(sc.s) && sc.s[n] == '.' {
		n++
		for n < len(sc.s) && sc.s[n] >= '0' && sc.s[n] <= '9' {
			n++
		}
	}
	sc.i = n
	return true
}

// amount is either a signed dollar token ("+$27,400", "-10000.50") or a bare
// dollar literal ("$27,400"). The bare form parses so the validator can
// reject it with a unit error instead of reporting no match.
func (sc *scanner) amount() (string, bool) {
	start := sc.i
	signed := false
	if sc.i < len(sc.s) && (sc.s[sc.i] == '+' || sc.s[sc.i] == '-') {
		signed = true
		sc.i++
	}
	if sc.i < len(sc.s) && sc.s[sc.i] == '$' {
		sc.i++
	} else if !signed {
		sc.i = start
		return "", false
	}
	if !sc.number(true) {
		sc.i = start
		return "", false
	}
	return sc.s[start:sc.i], true
}

// priceSpec is @?$?<decimal> (absolute) or [+-]<decimal>% (relative).
func (sc *scanner) priceSpec() (models.PriceSpec, bool) {
	start := sc.i
	if sc.i < len(sc.s) && sc.s[sc.i] == '@' {
		sc.i++
	}
	if sc.i < len(sc.s) && (sc.s[sc.i] == '+' || sc.s[sc.i] == '-') {
		from := sc.i
		sc.i++
		if !sc.number(false) || sc.i >= len(sc.s) || sc.s[sc.i] != '%' {
			sc.i = start
			return models.PriceSpec{}, false
		}
		raw := sc.s[from:sc.i]
		sc.i++ // '%'
		return models.PriceSpec{Raw: raw, Relative: true}, true
	}
	from := sc.i
	if sc.i < len(sc.s) && sc.s[sc.i] == '$' {
		sc.i++
	}
	if !sc.number(false) {
		sc.i = start
		return models.PriceSpec{}, false
	}
	return models.PriceSpec{Raw: sc.s[from:sc.i]}, true
}
