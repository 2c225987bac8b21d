package model

import "strings"

// Side is the direction of an executed order.
// Keep these values stable; they are intended for CSV output.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Trigger records what caused an order. Buys are always strategy-driven;
// sells may come from the strategy or from a risk exit.
type Trigger string

const (
	TriggerStrategy   Trigger = "STRATEGY"
	TriggerStopLoss   Trigger = "STOP_LOSS"
	TriggerTakeProfit Trigger = "TAKE_PROFIT"
)

// Signal is a strategy decision for one candle.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

// NormalizeSignal maps arbitrary strategy output onto the three valid
// signals. Anything unrecognized, including the empty string, is HOLD.
func NormalizeSignal(s Signal) Signal {
	switch Signal(strings.ToUpper(strings.TrimSpace(string(s)))) {
	case SignalBuy:
		return SignalBuy
	case SignalSell:
		return SignalSell
	default:
		return SignalHold
	}
}

// Trade is one executed order. Trades are append-only; they form the
// complete audit trail of a run.
type Trade struct {
	Timestamp int64   `json:"timestamp"`
	Action    Side    `json:"action"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Size      float64 `json:"size"`
	PnL       float64 `json:"pnl"`
	Balance   float64 `json:"balance"`
	Trigger   Trigger `json:"trigger"`
}

// EquityPoint is one mark-to-market sample, recorded once per processed
// candle whether or not a trade occurred.
type EquityPoint struct {
	Timestamp int64   `json:"timestamp"`
	Equity    float64 `json:"equity"`
}
