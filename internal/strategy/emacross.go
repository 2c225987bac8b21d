package strategy

import (
	"github.com/markcheno/go-talib"

	"github.com/enragedparrot54/crypto/internal/model"
)

// EMACross is an EMA crossover entry with an ATR volatility floor: a
// bullish cross only buys when the market is moving enough for the trade
// to clear its stop distance.
type EMACross struct {
	fast         int
	slow         int
	atrPeriod    int
	atrThreshold float64 // minimum ATR as a percent of price

	prevFast float64
	prevSlow float64
	primed   bool
}

func NewEMACross(fast, slow, atrPeriod int, atrThreshold float64) *EMACross {
	if fast <= 0 {
		fast = 20
	}
	if slow <= fast {
		slow = fast * 2
	}
	if atrPeriod <= 0 {
		atrPeriod = 14
	}
	if atrThreshold <= 0 {
		atrThreshold = 0.3
	}
	return &EMACross{fast: fast, slow: slow, atrPeriod: atrPeriod, atrThreshold: atrThreshold}
}

func (s *EMACross) Name() string { return "ema_cross" }

func (s *EMACross) OnCandle(ctx Context) (model.Signal, error) {
	minLen := s.slow
	if s.atrPeriod > minLen {
		minLen = s.atrPeriod
	}
	if len(ctx.History) < minLen+10 {
		return model.SignalHold, nil
	}

	cl := closes(ctx.History)
	price := cl[len(cl)-1]
	fast := last(talib.Ema(cl, s.fast))
	slow := last(talib.Ema(cl, s.slow))

	highs, lows := highsLows(ctx.History)
	atr := last(talib.Atr(highs, lows, cl, s.atrPeriod))

	cross := crossNone
	if s.primed {
		cross = detectCross(s.prevFast, s.prevSlow, fast, slow)
	}
	s.prevFast = fast
	s.prevSlow = slow
	s.primed = true

	hasPos := ctx.Ledger.HasPosition(ctx.Symbol)
	if hasPos && cross == crossBearish {
		return model.SignalSell, nil
	}
	if !hasPos && cross == crossBullish {
		if atr > 0 && price > 0 && (atr/price)*100 >= s.atrThreshold {
			return model.SignalBuy, nil
		}
	}
	return model.SignalHold, nil
}

func (s *EMACross) Reset() {
	s.prevFast = 0
	s.prevSlow = 0
	s.primed = false
}
