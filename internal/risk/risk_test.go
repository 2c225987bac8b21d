package risk

import (
	"math"
	"testing"

	"github.com/enragedparrot54/crypto/internal/model"
)

func params() Params {
	return Params{
		RiskPerTradePct: 1.0,
		StopLossPct:     -2.0,
		TakeProfitPct:   4.0,
		CooldownCandles: 6,
		TrendEMAPeriod:  200,
	}
}

func TestPositionSizeRiskCapped(t *testing.T) {
	// risk 1% of 1000 = 10; stop distance 2% of 100 = 2; size = 5
	got := PositionSize(1000, 100, params())
	if math.Abs(got-5.0) > 1e-9 {
		t.Fatalf("size = %v, want 5", got)
	}
}

func TestPositionSizeCashCapped(t *testing.T) {
	p := params()
	p.RiskPerTradePct = 100 // risk amount 1000, stop distance 2 -> 500 units
	got := PositionSize(1000, 100, p)
	// cash can only afford 10 units at 100
	if math.Abs(got-10.0) > 1e-9 {
		t.Fatalf("size = %v, want cash cap 10", got)
	}
}

func TestPositionSizeGuards(t *testing.T) {
	p := params()
	if PositionSize(0, 100, p) != 0 {
		t.Fatalf("zero cash should size 0")
	}
	if PositionSize(1000, 0, p) != 0 {
		t.Fatalf("zero price should size 0")
	}
	p.StopLossPct = 0
	if PositionSize(1000, 100, p) != 0 {
		t.Fatalf("zero stop distance should size 0")
	}
}

func TestCheckExitStopLoss(t *testing.T) {
	// entry 100, price 97 -> -3% <= -2% -> stop loss
	trig, ok := CheckExit(100, 97, params())
	if !ok || trig != model.TriggerStopLoss {
		t.Fatalf("got (%v,%v), want STOP_LOSS", trig, ok)
	}
}

func TestCheckExitTakeProfit(t *testing.T) {
	trig, ok := CheckExit(100, 104, params())
	if !ok || trig != model.TriggerTakeProfit {
		t.Fatalf("got (%v,%v), want TAKE_PROFIT", trig, ok)
	}
}

func TestCheckExitNone(t *testing.T) {
	if _, ok := CheckExit(100, 99, params()); ok {
		t.Fatalf("-1%% should not exit")
	}
	if _, ok := CheckExit(100, 103, params()); ok {
		t.Fatalf("+3%% should not exit")
	}
	if _, ok := CheckExit(0, 100, params()); ok {
		t.Fatalf("no position (entry 0) should not exit")
	}
}

func TestCooldownInactiveUntilFirstSell(t *testing.T) {
	c := NewCooldown(6)
	if c.Blocked() {
		t.Fatalf("cooldown must be inactive before the first sell")
	}
	for i := 0; i < 10; i++ {
		c.Tick()
	}
	if c.Blocked() {
		t.Fatalf("ticks before activation must not block")
	}
}

func TestCooldownBlocksAfterSell(t *testing.T) {
	c := NewCooldown(3)
	c.RecordSell()
	for i := 0; i < 3; i++ {
		if !c.Blocked() {
			t.Fatalf("tick %d: expected blocked", i)
		}
		c.Tick()
	}
	if c.Blocked() {
		t.Fatalf("cooldown should have elapsed after 3 ticks")
	}
}

func TestCooldownZeroLengthNeverBlocks(t *testing.T) {
	c := NewCooldown(0)
	c.RecordSell()
	if c.Blocked() {
		t.Fatalf("zero-length cooldown must never block")
	}
}

func TestCooldownResellRestartsCount(t *testing.T) {
	c := NewCooldown(2)
	c.RecordSell()
	c.Tick()
	c.Tick()
	if c.Blocked() {
		t.Fatalf("should have elapsed")
	}
	c.RecordSell()
	if !c.Blocked() {
		t.Fatalf("second sell must restart the count")
	}
}

func TestTrendFilterFailClosed(t *testing.T) {
	f := NewTrendFilter(3)
	if f.Allows(1000) {
		t.Fatalf("unseeded filter must block all buys")
	}
}

func TestTrendFilterSeedAndUpdate(t *testing.T) {
	f := NewTrendFilter(3) // k = 0.5
	f.Update(100)
	if v, ok := f.Value(); !ok || v != 100 {
		t.Fatalf("seed: got (%v,%v), want (100,true)", v, ok)
	}
	f.Update(110)
	if v, _ := f.Value(); math.Abs(v-105) > 1e-9 {
		t.Fatalf("ema = %v, want 105", v)
	}
	if !f.Allows(106) {
		t.Fatalf("price above ema should pass")
	}
	if f.Allows(105) {
		t.Fatalf("price equal to ema must not pass, gate is strict")
	}
	if f.Allows(104) {
		t.Fatalf("price below ema must not pass")
	}
}

func TestTrendFilterIgnoresInvalidClose(t *testing.T) {
	f := NewTrendFilter(3)
	f.Update(0)
	f.Update(-5)
	if _, ok := f.Value(); ok {
		t.Fatalf("invalid closes must not seed the filter")
	}
}
