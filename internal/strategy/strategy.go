package strategy

import (
	"fmt"
	"sort"

	"github.com/enragedparrot54/crypto/internal/model"
)

// Ledger is the read-only broker view exposed to strategies.
type Ledger interface {
	HasPosition(symbol string) bool
	PositionSize(symbol string) float64
	PositionEntry(symbol string) float64
	Cash() float64
}

// Context carries everything a strategy may consult for one candle.
// History is the visible window, oldest first; its last element is the
// candle being evaluated. Strategies must never assume anything beyond it.
type Context struct {
	History []model.Candle
	Ledger  Ledger
	Symbol  string
}

// Price returns the close of the current candle, 0 on empty history.
func (c Context) Price() float64 {
	if len(c.History) == 0 {
		return 0
	}
	return c.History[len(c.History)-1].Close
}

type Strategy interface {
	Name() string
	OnCandle(ctx Context) (model.Signal, error)
}

// Resettable is implemented by strategies that carry per-run indicator
// state, such as previous moving-average values used for cross detection.
type Resettable interface {
	Reset()
}

// Reset clears a strategy's internal state between runs, if it has any.
func Reset(s Strategy) {
	if r, ok := s.(Resettable); ok {
		r.Reset()
	}
}

// ParamInfo describes one tunable strategy parameter.
type ParamInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Default     float64 `json:"default"`
}

// Info describes a registered strategy.
type Info struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []ParamInfo `json:"parameters"`
}

type builder func(params map[string]float64) Strategy

var registry = map[string]struct {
	info  Info
	build builder
}{
	"sma_cross": {
		info: Info{
			Name:        "sma_cross",
			Description: "Long when the fast SMA crosses above the slow SMA, flat on the cross back down",
			Params: []ParamInfo{
				{Name: "fast", Description: "fast SMA period", Default: 10},
				{Name: "slow", Description: "slow SMA period", Default: 30},
			},
		},
		build: func(p map[string]float64) Strategy {
			return NewSMACross(int(param(p, "fast", 10)), int(param(p, "slow", 30)))
		},
	},
	"ema_cross": {
		info: Info{
			Name:        "ema_cross",
			Description: "EMA crossover entry with an ATR volatility floor",
			Params: []ParamInfo{
				{Name: "fast", Description: "fast EMA period", Default: 20},
				{Name: "slow", Description: "slow EMA period", Default: 50},
				{Name: "atr", Description: "ATR period", Default: 14},
				{Name: "atr_threshold", Description: "minimum ATR as a percent of price", Default: 0.3},
			},
		},
		build: func(p map[string]float64) Strategy {
			return NewEMACross(int(param(p, "fast", 20)), int(param(p, "slow", 50)),
				int(param(p, "atr", 14)), param(p, "atr_threshold", 0.3))
		},
	},
	"breakout": {
		info: Info{
			Name:        "breakout",
			Description: "Long on a close above the recent high while above a moving average, flat below the average",
			Params: []ParamInfo{
				{Name: "lookback", Description: "breakout lookback candles", Default: 20},
				{Name: "ma", Description: "moving-average period", Default: 50},
			},
		},
		build: func(p map[string]float64) Strategy {
			return NewBreakout(int(param(p, "lookback", 20)), int(param(p, "ma", 50)))
		},
	},
}

// New builds a registered strategy by name. Missing params fall back to
// their defaults.
func New(name string, params map[string]float64) (Strategy, error) {
	entry, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
	return entry.build(params), nil
}

// List returns the registered strategies sorted by name.
func List() []Info {
	out := make([]Info, 0, len(registry))
	for _, e := range registry {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func param(params map[string]float64, key string, def float64) float64 {
	if v, ok := params[key]; ok && v > 0 {
		return v
	}
	return def
}

// closes extracts the closing-price series from a history window.
func closes(history []model.Candle) []float64 {
	out := make([]float64, len(history))
	for i, c := range history {
		out[i] = c.Close
	}
	return out
}

func highsLows(history []model.Candle) (highs, lows []float64) {
	highs = make([]float64, len(history))
	lows = make([]float64, len(history))
	for i, c := range history {
		highs[i] = c.High
		lows[i] = c.Low
	}
	return highs, lows
}
