package risk

import (
	"math"

	"github.com/enragedparrot54/crypto/internal/model"
)

// Params are the risk knobs consumed every step of a run.
type Params struct {
	// RiskPerTradePct caps the loss-at-stop to this fraction of current cash.
	RiskPerTradePct float64
	// StopLossPct is a negative percentage threshold on unrealized PnL.
	StopLossPct float64
	// TakeProfitPct is a positive percentage threshold on unrealized PnL.
	TakeProfitPct float64
	// CooldownCandles is the minimum number of candles between a sell and
	// the next buy.
	CooldownCandles int
	// TrendEMAPeriod is the period of the entry trend filter EMA.
	TrendEMAPeriod int
}

// PositionSize returns the size to buy at price so that a stop-loss exit
// loses at most RiskPerTradePct of cash, capped at what cash can afford.
// Returns 0 when price, cash, or the stop distance is non-positive.
func PositionSize(cash, price float64, p Params) float64 {
	if price <= 0 || cash <= 0 {
		return 0
	}
	stopPct := math.Abs(p.StopLossPct)
	stopDistance := price * stopPct / 100
	if stopDistance <= 0 {
		return 0
	}
	riskAmount := cash * p.RiskPerTradePct / 100
	size := riskAmount / stopDistance
	maxAffordable := cash / price
	return math.Min(size, maxAffordable)
}

// CheckExit evaluates the stop-loss / take-profit thresholds against the
// unrealized PnL of a position entered at entry and marked at price. The
// second return is false when no exit applies or when there is no position
// (entry <= 0).
func CheckExit(entry, price float64, p Params) (model.Trigger, bool) {
	if entry <= 0 {
		return "", false
	}
	pnlPct := (price - entry) / entry * 100
	if pnlPct <= p.StopLossPct {
		return model.TriggerStopLoss, true
	}
	if pnlPct >= p.TakeProfitPct {
		return model.TriggerTakeProfit, true
	}
	return "", false
}

// Cooldown counts candles since the last sell. It is inactive until the
// first sell of a run; while active it blocks buys for the configured
// number of candles.
type Cooldown struct {
	length int
	count  int
	active bool
}

func NewCooldown(length int) *Cooldown {
	if length < 0 {
		length = 0
	}
	return &Cooldown{length: length}
}

// Tick advances the counter by one candle. No-op while inactive.
func (c *Cooldown) Tick() {
	if c.active {
		c.count++
	}
}

// RecordSell activates the cooldown and restarts the count.
func (c *Cooldown) RecordSell() {
	c.active = true
	c.count = 0
}

// Blocked reports whether a buy must be declined this candle.
func (c *Cooldown) Blocked() bool {
	return c.active && c.count < c.length
}

func (c *Cooldown) Reset() {
	c.active = false
	c.count = 0
}

// TrendFilter gates entries on price being strictly above an EMA of closing
// prices. The EMA is seeded by the first close it observes; until seeded the
// filter blocks all buys. The engine feeds it the previous candle's close so
// the gate never sees the close it is gating.
type TrendFilter struct {
	k      float64
	ema    float64
	seeded bool
}

func NewTrendFilter(period int) *TrendFilter {
	if period <= 0 {
		period = 200
	}
	return &TrendFilter{k: 2.0 / float64(period+1)}
}

// Update folds one closing price into the EMA. Non-positive closes are ignored.
func (f *TrendFilter) Update(close float64) {
	if close <= 0 {
		return
	}
	if !f.seeded {
		f.ema = close
		f.seeded = true
		return
	}
	f.ema = close*f.k + f.ema*(1-f.k)
}

// Allows reports whether an entry at price passes the filter.
func (f *TrendFilter) Allows(price float64) bool {
	return f.seeded && price > f.ema
}

// Value returns the current EMA and whether it has been seeded.
func (f *TrendFilter) Value() (float64, bool) {
	return f.ema, f.seeded
}

func (f *TrendFilter) Reset() {
	f.ema = 0
	f.seeded = false
}
