package order

import (
	"errors"
	"testing"

	"earnsim/internal/models"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		name string
		line string
		want models.ParsedOrder
	}{
		{
			name: "long with closing side and at-prices",
			line: "BUY +$27,400 of TICK; BUY LMT @90.00 STP -1.0%",
			want: models.ParsedOrder{
				Side:     models.SideBuy,
				Symbol:   "TICK",
				Notional: "+$27,400",
				Limit:    models.PriceSpec{Raw: "90.00"},
				Stop:     models.PriceSpec{Raw: "-1.0", Relative: true},
			},
		},
		{
			name: "short without of",
			line: "SELL -$10000 QQQ; LMT 25.00 STP 32.00",
			want: models.ParsedOrder{
				Side:     models.SideSell,
				Symbol:   "QQQ",
				Notional: "-$10000",
				Limit:    models.PriceSpec{Raw: "25.00"},
				Stop:     models.PriceSpec{Raw: "32.00"},
			},
		},
		{
			name: "percent specs on both legs",
			line: "SELL -$5,000 of XYZ; SELL LMT -7.5% STP +2%",
			want: models.ParsedOrder{
				Side:     models.SideSell,
				Symbol:   "XYZ",
				Notional: "-$5,000",
				Limit:    models.PriceSpec{Raw: "-7.5", Relative: true},
				Stop:     models.PriceSpec{Raw: "+2", Relative: true},
			},
		},
		{
			name: "dollar sign in price spec",
			line: "BUY +1000 of AA; LMT $31 STP $28.50",
			want: models.ParsedOrder{
				Side:     models.SideBuy,
				Symbol:   "AA",
				Notional: "+1000",
				Limit:    models.PriceSpec{Raw: "$31"},
				Stop:     models.PriceSpec{Raw: "$28.50"},
			},
		},
		{
			name: "bare dollar notional kept for the validator",
			line: "BUY $27,400 of TICK; LMT 90 STP 26",
			want: models.ParsedOrder{
				Side:     models.SideBuy,
				Symbol:   "TICK",
				Notional: "$27,400",
				Limit:    models.PriceSpec{Raw: "90"},
				Stop:     models.PriceSpec{Raw: "26"},
			},
		},
		{
			name: "do not trade",
			line: "DO NOT TRADE QQQ",
			want: models.ParsedOrder{Side: models.SideNeither, Symbol: "QQQ"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLine(tc.line)
			if err != nil {
				t.Fatalf("ParseLine(%q): %v", tc.line, err)
			}
			tc.want.Text = tc.line
			if got != tc.want {
				t.Fatalf("ParseLine(%q) = %+v, want %+v", tc.line, got, tc.want)
			}
		})
	}
}

func TestParseLineSyntaxError(t *testing.T) {
	lines := []string{
		"",
		"HOLD TICK",
		"BUY TICK",
		"BUY +$100 of TICK",
		"BUY +$100 of TICK; LMT STP 1",
		"BUY +$100 of TICK; LMT 90 STP",
		"BUY +$100 of TICK; LMT 1% STP 1", // relative spec needs a sign
		"DO NOT TRADE",
	}
	for _, line := range lines {
		if _, err := ParseLine(line); !errors.Is(err, ErrOrderSyntax) {
			t.Errorf("ParseLine(%q) err = %v, want ErrOrderSyntax", line, err)
		}
	}
}

func TestExtractLastMatchWins(t *testing.T) {
	text := "Given the weak guidance I would normally short.\n" +
		"SELL -$10000 of TICK; LMT 25.00 STP 32.00\n" +
		"On reflection the buyback changes the picture. Final answer:\n" +
		"BUY +$27,400 of TICK; BUY LMT @90.00 STP -1.0%\n"

	got, err := Extract(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}
	if got[0].Side != models.SideSell || got[1].Side != models.SideBuy {
		t.Fatalf("match order wrong: %+v", got)
	}
	last := got[len(got)-1]
	if last.Notional != "+$27,400" || last.Symbol != "TICK" {
		t.Fatalf("authoritative match = %+v", last)
	}
}

func TestExtractNoValidOrder(t *testing.T) {
	for _, text := range []string{
		"",
		"The earnings look strong but I cannot commit to a trade.",
		"REBUY is not an order keyword, and neither is DO NOT.",
	} {
		if _, err := Extract(text); !errors.Is(err, ErrNoValidOrder) {
			t.Errorf("Extract(%q) err = %v, want ErrNoValidOrder", text, err)
		}
	}
}

func TestExtractWordBoundary(t *testing.T) {
	// BUY inside REBUY must not start a match; the standalone order must.
	text := "REBUY +$100 of AA; LMT 9 STP 1 and then BUY +$100 of AA; LMT 9 STP 1"
	got, err := Extract(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1: %+v", len(got), got)
	}
	if got[0].Text != "BUY +$100 of AA; LMT 9 STP 1" {
		t.Fatalf("matched text %q", got[0].Text)
	}
}

func TestExtractKeepsAuditText(t *testing.T) {
	text := "thoughts... DO NOT TRADE MSFT rest of the line"
	got, err := Extract(text)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Text != "DO NOT TRADE MSFT" {
		t.Fatalf("audit text %q", got[0].Text)
	}
}
