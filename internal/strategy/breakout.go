package strategy

import (
	"github.com/markcheno/go-talib"

	"github.com/enragedparrot54/crypto/internal/model"
)

// Breakout goes long on a close above the highest high of the lookback
// window while price holds above a moving average, and closes the long when
// price falls back below the average. Stateless across candles.
type Breakout struct {
	lookback int
	maPeriod int
}

func NewBreakout(lookback, maPeriod int) *Breakout {
	if lookback <= 0 {
		lookback = 20
	}
	if maPeriod <= 0 {
		maPeriod = 50
	}
	return &Breakout{lookback: lookback, maPeriod: maPeriod}
}

func (s *Breakout) Name() string { return "breakout" }

func (s *Breakout) OnCandle(ctx Context) (model.Signal, error) {
	minLen := s.lookback
	if s.maPeriod > minLen {
		minLen = s.maPeriod
	}
	if len(ctx.History) < minLen+5 {
		return model.SignalHold, nil
	}

	cl := closes(ctx.History)
	price := cl[len(cl)-1]
	ma := last(talib.Sma(cl, s.maPeriod))

	// Highest high of the lookback window, excluding the current candle.
	highest := 0.0
	for _, c := range ctx.History[len(ctx.History)-1-s.lookback : len(ctx.History)-1] {
		if c.High > highest {
			highest = c.High
		}
	}

	hasPos := ctx.Ledger.HasPosition(ctx.Symbol)
	if hasPos && price < ma {
		return model.SignalSell, nil
	}
	if !hasPos && price > highest && price > ma {
		return model.SignalBuy, nil
	}
	return model.SignalHold, nil
}
