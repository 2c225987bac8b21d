package backtest

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/enragedparrot54/crypto/internal/broker"
	"github.com/enragedparrot54/crypto/internal/model"
	"github.com/enragedparrot54/crypto/internal/risk"
	"github.com/enragedparrot54/crypto/internal/strategy"
)

// Recorder receives trade and equity records as the run progresses. A
// Recorder is best-effort: it must never return an error to the engine and
// a failing sink must not affect the run.
type Recorder interface {
	RecordTrade(model.Trade)
	RecordEquity(model.EquityPoint)
}

// Options configure one engine instance.
type Options struct {
	Risk risk.Params
	// MinCandles is the warm-up candle count before any trading logic runs.
	MinCandles int
	// Recorder is an optional side-channel sink for trades and equity samples.
	Recorder Recorder
	// Log is optional; a nop logger is used when nil.
	Log *zap.Logger
}

// Engine replays a candle series through a strategy against a paper broker.
//
// Execution price policy: all fills and equity marks use the candle close.
// The loop is strictly sequential and single-threaded; every per-candle step
// is applied in full before the next candle is observed.
type Engine struct {
	opts Options
	log  *zap.Logger
}

func New(opts Options) *Engine {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.MinCandles < 0 {
		opts.MinCandles = 0
	}
	return &Engine{opts: opts, log: opts.Log}
}

// runState is the per-run mutable state outside the broker.
type runState struct {
	cooldown  *risk.Cooldown
	trend     *risk.TrendFilter
	lastEntry float64 // entry price of the open position, 0 when flat
}

// Run executes the backtest over candles. The series must be valid and
// chronologically ordered; a malformed series rejects the run before the
// first step. Strategy faults and declined broker calls never abort a run.
func (e *Engine) Run(candles []model.Candle, b *broker.PaperBroker, strat strategy.Strategy, symbol string) (*Result, error) {
	if b == nil {
		return nil, errors.New("broker is nil")
	}
	if strat == nil {
		return nil, errors.New("strategy is nil")
	}
	if symbol == "" {
		return nil, errors.New("symbol is empty")
	}
	if err := model.ValidateSeries(candles); err != nil {
		return nil, fmt.Errorf("candle series invalid: %w", err)
	}

	strategy.Reset(strat)
	st := &runState{
		cooldown: risk.NewCooldown(e.opts.Risk.CooldownCandles),
		trend:    risk.NewTrendFilter(e.opts.Risk.TrendEMAPeriod),
	}
	res := &Result{
		Symbol:         symbol,
		InitialBalance: b.Cash(),
		Candles:        len(candles),
		Trades:         make([]model.Trade, 0, 64),
		EquityCurve:    make([]model.EquityPoint, 0, len(candles)),
	}

	e.log.Info("backtest start",
		zap.String("symbol", symbol),
		zap.String("strategy", strat.Name()),
		zap.Int("candles", len(candles)),
		zap.Float64("balance", b.Cash()))

	history := make([]model.Candle, 0, len(candles))
	for i, c := range candles {
		history = append(history, c)

		price := c.Close
		if price <= 0 {
			// Anomalous step: no equity sample, no trading.
			continue
		}

		// The trend EMA lags one candle so the gate never sees the close
		// it is gating.
		if i > 0 {
			st.trend.Update(candles[i-1].Close)
		}

		point := model.EquityPoint{Timestamp: c.Timestamp, Equity: b.Equity(price)}
		res.EquityCurve = append(res.EquityCurve, point)
		e.record(func(r Recorder) { r.RecordEquity(point) })

		st.cooldown.Tick()

		if i < e.opts.MinCandles {
			continue
		}

		// Risk exits pre-empt the strategy for this candle.
		if trig, ok := risk.CheckExit(b.PositionEntry(symbol), price, e.opts.Risk); ok {
			e.executeSell(res, b, st, symbol, price, c.Timestamp, trig)
			continue
		}

		switch e.signal(strat, history, b, symbol) {
		case model.SignalBuy:
			e.executeBuy(res, b, st, symbol, price, c.Timestamp)
		case model.SignalSell:
			e.executeSell(res, b, st, symbol, price, c.Timestamp, model.TriggerStrategy)
		}
	}

	e.log.Info("backtest done",
		zap.String("symbol", symbol),
		zap.Int("trades", len(res.Trades)))
	return res, nil
}

// signal queries the strategy and normalizes the outcome. An error or a
// panic from the strategy is a HOLD for this candle, never a run failure.
func (e *Engine) signal(strat strategy.Strategy, history []model.Candle, b *broker.PaperBroker, symbol string) (sig model.Signal) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("strategy panic, holding", zap.Any("panic", r))
			sig = model.SignalHold
		}
	}()
	s, err := strat.OnCandle(strategy.Context{History: history, Ledger: b, Symbol: symbol})
	if err != nil {
		e.log.Debug("strategy error, holding", zap.Error(err))
		return model.SignalHold
	}
	return model.NormalizeSignal(s)
}

func (e *Engine) executeBuy(res *Result, b *broker.PaperBroker, st *runState, symbol string, price float64, ts int64) bool {
	if b.HasPosition(symbol) {
		return false
	}
	if st.cooldown.Blocked() {
		return false
	}
	if !st.trend.Allows(price) {
		return false
	}
	size := risk.PositionSize(b.Cash(), price, e.opts.Risk)
	if size <= 0 {
		return false
	}
	if !b.Buy(symbol, size, price) {
		return false
	}
	st.lastEntry = price

	tr := model.Trade{
		Timestamp: ts,
		Action:    model.SideBuy,
		Symbol:    symbol,
		Price:     price,
		Size:      size,
		Balance:   b.Equity(price),
		Trigger:   model.TriggerStrategy,
	}
	res.Trades = append(res.Trades, tr)
	e.record(func(r Recorder) { r.RecordTrade(tr) })
	e.log.Info("BUY",
		zap.String("symbol", symbol),
		zap.Float64("price", price),
		zap.Float64("size", size))
	return true
}

func (e *Engine) executeSell(res *Result, b *broker.PaperBroker, st *runState, symbol string, price float64, ts int64, trigger model.Trigger) bool {
	if !b.HasPosition(symbol) {
		return false
	}
	size := b.PositionSize(symbol)
	pnl := 0.0
	if st.lastEntry > 0 {
		pnl = (price - st.lastEntry) * size
	}
	if !b.Sell(symbol, price) {
		return false
	}
	st.lastEntry = 0
	st.cooldown.RecordSell()

	tr := model.Trade{
		Timestamp: ts,
		Action:    model.SideSell,
		Symbol:    symbol,
		Price:     price,
		Size:      size,
		PnL:       pnl,
		Balance:   b.Equity(price),
		Trigger:   trigger,
	}
	res.Trades = append(res.Trades, tr)
	e.record(func(r Recorder) { r.RecordTrade(tr) })
	e.log.Info("SELL",
		zap.String("symbol", symbol),
		zap.String("trigger", string(trigger)),
		zap.Float64("price", price),
		zap.Float64("pnl", pnl),
		zap.Float64("balance", tr.Balance))
	return true
}

func (e *Engine) record(fn func(Recorder)) {
	if e.opts.Recorder == nil {
		return
	}
	// Sinks are best-effort; a panicking recorder must not abort the run.
	defer func() { _ = recover() }()
	fn(e.opts.Recorder)
}
