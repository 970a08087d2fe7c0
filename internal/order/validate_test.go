package order

import (
	"errors"
	"math"
	"testing"

	"earnsim/internal/models"
)

// The entry reference tick used throughout: first snapshot of the session.
var openTick = models.BookTick{TimeOfDay: 965, BidHigh: 26.95, AskLow: 27.00}

func mustParse(t *testing.T, line string) models.ParsedOrder {
	t.Helper()
	po, err := ParseLine(line)
	if err != nil {
		t.Fatalf("ParseLine(%q): %v", line, err)
	}
	return po
}

func TestValidateLong(t *testing.T) {
	po := mustParse(t, "BUY +$27,400 of TICK; BUY LMT @90.00 STP -1.0%")
	pos, err := Validate(po, "TICK", openTick)
	if err != nil {
		t.Fatal(err)
	}
	if pos.Side != models.SideBuy {
		t.Errorf("side = %s", pos.Side)
	}
	if pos.Entry != 27.00 {
		t.Errorf("entry = %v, want ask 27.00", pos.Entry)
	}
	if pos.Shares != 1014 { // floor(27400 / 27.00)
		t.Errorf("shares = %d, want 1014", pos.Shares)
	}
	if pos.Notional != 1014*27.00 {
		t.Errorf("notional = %v, want %v", pos.Notional, 1014*27.00)
	}
	if pos.Limit != 90.00 {
		t.Errorf("limit = %v, want 90.00", pos.Limit)
	}
	if math.Abs(pos.Stop-26.73) > 1e-9 { // 27.00 * (1 - 0.01)
		t.Errorf("stop = %v, want 26.73", pos.Stop)
	}
}

func TestValidateShort(t *testing.T) {
	po := mustParse(t, "SELL -$10000 TICK; LMT 25.00 STP 32.00")
	pos, err := Validate(po, "TICK", openTick)
	if err != nil {
		t.Fatal(err)
	}
	if pos.Entry != 26.95 {
		t.Errorf("entry = %v, want bid 26.95", pos.Entry)
	}
	if pos.Shares != -371 { // -floor(10000 / 26.95)
		t.Errorf("shares = %d, want -371", pos.Shares)
	}
	if math.Abs(pos.Notional-(-371*26.95)) > 1e-9 {
		t.Errorf("notional = %v", pos.Notional)
	}
}

func TestValidateNeither(t *testing.T) {
	po := mustParse(t, "DO NOT TRADE TICK")
	pos, err := Validate(po, "TICK", openTick)
	if err != nil {
		t.Fatal(err)
	}
	if pos.Side != models.SideNeither || pos.Shares != 0 {
		t.Fatalf("pos = %+v, want flat NEITHER", pos)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name string
		line string
		want error
	}{
		{"symbol mismatch", "BUY +$27,400 of QQQ; LMT 90 STP 26", ErrSymbolMismatch},
		{"bare dollar literal", "BUY $27,400 of TICK; LMT 90 STP 26", ErrUnitError},
		{"zero notional", "BUY +0 of TICK; LMT 90 STP 26", ErrInvalidPosition},
		{"buy with negative amount", "BUY -$27,400 of TICK; LMT 90 STP 26", ErrSignMismatch},
		{"sell with positive amount", "SELL +$10000 of TICK; LMT 25 STP 32", ErrSignMismatch},
		{"buy below one share", "BUY +$10 of TICK; LMT 90 STP 26", ErrBuySubShare},
		{"sell below one share", "SELL -$10 of TICK; LMT 25 STP 32", ErrSellSubShare},
		{"sell limit under entry", "BUY +$27,400 of TICK; LMT @25.00 STP 26", ErrLimitTooLow},
		{"cover limit over entry", "SELL -$10000 of TICK; LMT 30.00 STP 32", ErrLimitTooHigh},
		{"sell stop over entry", "BUY +$27,400 of TICK; LMT 90 STP 28", ErrStopTooHigh},
		{"cover stop under entry", "SELL -$10000 of TICK; LMT 25 STP 20", ErrStopTooLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			po := mustParse(t, tc.line)
			if _, err := Validate(po, "TICK", openTick); !errors.Is(err, tc.want) {
				t.Fatalf("Validate err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidateRelativeSpecs(t *testing.T) {
	// Percent moves resolve against entry regardless of side; one signed the
	// wrong way lands across entry and trips the ordering check.
	po := mustParse(t, "SELL -$10000 of TICK; LMT -7.5% STP +2%")
	pos, err := Validate(po, "TICK", openTick)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(pos.Limit-26.95*0.925) > 1e-9 {
		t.Errorf("limit = %v, want %v", pos.Limit, 26.95*0.925)
	}
	if math.Abs(pos.Stop-26.95*1.02) > 1e-9 {
		t.Errorf("stop = %v, want %v", pos.Stop, 26.95*1.02)
	}

	po = mustParse(t, "SELL -$10000 of TICK; LMT +7.5% STP +2%")
	if _, err := Validate(po, "TICK", openTick); !errors.Is(err, ErrLimitTooHigh) {
		t.Fatalf("wrong-way percent limit err = %v, want ErrLimitTooHigh", err)
	}
}

func TestValidateSpecSyntax(t *testing.T) {
	po := models.ParsedOrder{
		Side:     models.SideBuy,
		Symbol:   "TICK",
		Notional: "+$27,400",
		Limit:    models.PriceSpec{Raw: "ninety"},
		Stop:     models.PriceSpec{Raw: "26"},
	}
	if _, err := Validate(po, "TICK", openTick); !errors.Is(err, ErrSyntax) {
		t.Fatalf("err = %v, want ErrSyntax", err)
	}
}
