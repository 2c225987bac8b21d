package strategy

import (
	"github.com/markcheno/go-talib"

	"github.com/enragedparrot54/crypto/internal/model"
)

// SMACross goes long when the fast SMA crosses above the slow SMA and
// closes the long on the cross back down. Cross detection compares the
// current pair of averages with the pair from the previous candle.
type SMACross struct {
	fast int
	slow int

	prevFast float64
	prevSlow float64
	primed   bool
}

func NewSMACross(fast, slow int) *SMACross {
	if fast <= 0 {
		fast = 10
	}
	if slow <= fast {
		slow = fast * 3
	}
	return &SMACross{fast: fast, slow: slow}
}

func (s *SMACross) Name() string { return "sma_cross" }

func (s *SMACross) OnCandle(ctx Context) (model.Signal, error) {
	if len(ctx.History) < s.slow+5 {
		return model.SignalHold, nil
	}

	cl := closes(ctx.History)
	fast := last(talib.Sma(cl, s.fast))
	slow := last(talib.Sma(cl, s.slow))

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
		return model.SignalBuy, nil
	}
	return model.SignalHold, nil
}

func (s *SMACross) Reset() {
	s.prevFast = 0
	s.prevSlow = 0
	s.primed = false
}

type crossKind int

const (
	crossNone crossKind = iota
	crossBullish
	crossBearish
)

func detectCross(prevFast, prevSlow, fast, slow float64) crossKind {
	switch {
	case prevFast <= prevSlow && fast > slow:
		return crossBullish
	case prevFast >= prevSlow && fast < slow:
		return crossBearish
	default:
		return crossNone
	}
}

func last(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}
