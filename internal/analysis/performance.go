package analysis

import (
	"github.com/enragedparrot54/crypto/internal/backtest"
	"github.com/enragedparrot54/crypto/internal/model"
)

// Summary aggregates one run's trade log and equity curve.
type Summary struct {
	InitialBalance float64
	EndingBalance  float64
	PnL            float64
	ReturnPct      float64
	Trades         int // buys and sells counted separately
	Sells          int
	WinRate        float64 // fraction of sells with positive realized PnL
	MaxDrawdownPct float64 // peak-to-trough decline, positive percentage
}

// Evaluate derives aggregate statistics from a finished run. Pure and
// read-only; it never touches broker or engine state.
func Evaluate(res *backtest.Result) Summary {
	s := Summary{InitialBalance: res.InitialBalance}

	s.EndingBalance = res.InitialBalance
	if n := len(res.EquityCurve); n > 0 {
		s.EndingBalance = res.EquityCurve[n-1].Equity
	}
	s.PnL = s.EndingBalance - res.InitialBalance
	if res.InitialBalance > 0 {
		s.ReturnPct = s.PnL / res.InitialBalance * 100
	}

	s.Trades = len(res.Trades)
	wins := 0
	for _, t := range res.Trades {
		if t.Action != model.SideSell {
			continue
		}
		s.Sells++
		if t.PnL > 0 {
			wins++
		}
	}
	if s.Sells > 0 {
		s.WinRate = float64(wins) / float64(s.Sells)
	}

	s.MaxDrawdownPct = MaxDrawdown(res.EquityCurve)
	return s
}

// MaxDrawdown walks the equity curve once, left to right, tracking the
// running peak, and returns the largest percentage decline from it.
func MaxDrawdown(curve []model.EquityPoint) float64 {
	if len(curve) == 0 {
		return 0
	}
	peak := curve[0].Equity
	maxDD := 0.0
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		if peak <= 0 {
			continue
		}
		dd := (peak - p.Equity) / peak * 100
		if dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}
