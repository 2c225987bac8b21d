package broker

import (
	"math"
	"testing"
)

const sym = "SOL-USD"

func TestBuyThenSellRoundTrip(t *testing.T) {
	b := New(1000)

	if !b.Buy(sym, 2.0, 100) {
		t.Fatalf("buy declined")
	}
	if got := b.Cash(); got != 800.0 {
		t.Fatalf("cash after buy = %v, want 800", got)
	}
	if !b.HasPosition(sym) {
		t.Fatalf("expected open position")
	}
	if got := b.PositionSize(sym); got != 2.0 {
		t.Fatalf("position size = %v, want 2", got)
	}
	if got := b.PositionEntry(sym); got != 100.0 {
		t.Fatalf("entry = %v, want 100", got)
	}

	if !b.Sell(sym, 110) {
		t.Fatalf("sell declined")
	}
	if got := b.Cash(); got != 1020.0 {
		t.Fatalf("cash after sell = %v, want 1020", got)
	}
	if b.HasPosition(sym) {
		t.Fatalf("position should be cleared")
	}
}

func TestSecondBuyIsDeclined(t *testing.T) {
	b := New(1000)
	if !b.Buy(sym, 1, 100) {
		t.Fatalf("first buy declined")
	}
	cash := b.Cash()
	if b.Buy(sym, 1, 50) {
		t.Fatalf("second buy must be declined while a position is open")
	}
	if b.Buy("OTHER", 1, 50) {
		t.Fatalf("buy of another symbol must be declined, single slot")
	}
	if b.Cash() != cash || b.PositionSize(sym) != 1 {
		t.Fatalf("declined buy mutated state")
	}
}

func TestBuyExceedingCashIsDeclined(t *testing.T) {
	b := New(100)
	if b.Buy(sym, 2, 100) {
		t.Fatalf("buy costing 200 with cash 100 must be declined")
	}
	if b.Cash() != 100 || b.HasPosition(sym) {
		t.Fatalf("declined buy mutated state")
	}
	// exactly affordable is allowed
	if !b.Buy(sym, 1, 100) {
		t.Fatalf("buy costing exactly cash should succeed")
	}
	if b.Cash() != 0 {
		t.Fatalf("cash = %v, want 0", b.Cash())
	}
}

func TestInvalidOrdersDeclined(t *testing.T) {
	b := New(1000)
	if b.Buy(sym, 0, 100) || b.Buy(sym, -1, 100) || b.Buy(sym, 1, 0) || b.Buy(sym, 1, -5) || b.Buy("", 1, 100) {
		t.Fatalf("invalid buy accepted")
	}
	if b.Sell(sym, 100) {
		t.Fatalf("sell with no position accepted")
	}
	b.Buy(sym, 1, 100)
	if b.Sell(sym, 0) || b.Sell(sym, -1) || b.Sell("OTHER", 100) {
		t.Fatalf("invalid sell accepted")
	}
}

func TestSellClosesFullPosition(t *testing.T) {
	b := New(1000)
	b.Buy(sym, 4, 50)
	cashBefore := b.Cash()
	if !b.Sell(sym, 60) {
		t.Fatalf("sell declined")
	}
	if got := b.PositionSize(sym); got != 0 {
		t.Fatalf("position size after sell = %v, want 0", got)
	}
	want := cashBefore + 4*60
	if math.Abs(b.Cash()-want) > 1e-9 {
		t.Fatalf("cash = %v, want %v", b.Cash(), want)
	}
}

func TestEquity(t *testing.T) {
	b := New(1000)
	if got := b.Equity(100); got != 1000 {
		t.Fatalf("flat equity = %v, want 1000", got)
	}
	b.Buy(sym, 2, 100)
	if got := b.Equity(110); got != 800+220 {
		t.Fatalf("equity = %v, want 1020", got)
	}
	// invalid mark price values the position at zero
	if got := b.Equity(0); got != 800 {
		t.Fatalf("equity with invalid price = %v, want 800", got)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	b := New(500)
	b.Buy(sym, 1, 100)
	b.Sell(sym, 200)
	b.Buy(sym, 1, 50)

	b.Reset()
	if b.Cash() != 500 || b.HasPosition(sym) {
		t.Fatalf("reset did not restore initial state: cash=%v", b.Cash())
	}
	b.Reset()
	if b.Cash() != 500 || b.HasPosition(sym) {
		t.Fatalf("second reset changed state: cash=%v", b.Cash())
	}
}

func TestNonPositiveInitialCashFallsBack(t *testing.T) {
	b := New(0)
	if b.Cash() != DefaultBalance {
		t.Fatalf("cash = %v, want default %v", b.Cash(), DefaultBalance)
	}
	b = New(-10)
	if b.Cash() != DefaultBalance {
		t.Fatalf("cash = %v, want default %v", b.Cash(), DefaultBalance)
	}
}
