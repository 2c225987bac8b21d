package models

import "github.com/enragedparrot54/crypto/internal/model"

// BacktestRequest represents the request body for running a backtest.
// Candles may be supplied inline or, for server-local datasets, as a CSV
// path readable by the server. Exactly one of the two must be set.
type BacktestRequest struct {
	Symbol   string          `json:"symbol" binding:"required"`
	Candles  []model.Candle  `json:"candles,omitempty"`
	DataFile string          `json:"data_file,omitempty"`
	Config   BacktestConfig  `json:"config"`
	Options  BacktestOptions `json:"options,omitempty"`
}

// BacktestConfig mirrors the YAML risk/account parameters. Zero values fall
// back to the server defaults.
type BacktestConfig struct {
	InitialBalance          float64        `json:"initial_balance,omitempty"`
	RiskPerTradePct         float64        `json:"risk_per_trade_pct,omitempty"`
	StopLossPct             float64        `json:"stop_loss_pct,omitempty"`
	TakeProfitPct           float64        `json:"take_profit_pct,omitempty"`
	CooldownCandles         *int           `json:"cooldown_candles,omitempty"`
	TrendEMAPeriod          int            `json:"trend_ema_period,omitempty"`
	MinCandlesBeforeTrading *int           `json:"min_candles_before_trading,omitempty"`
	Strategy                StrategyConfig `json:"strategy"`
}

// StrategyConfig selects a registered strategy and its parameters.
type StrategyConfig struct {
	Name   string             `json:"name"`
	Params map[string]float64 `json:"params,omitempty"`
}

// BacktestOptions contains optional response-shaping parameters.
type BacktestOptions struct {
	IncludeTrades bool `json:"include_trades,omitempty"`
	IncludeEquity bool `json:"include_equity,omitempty"`
}

// RankRequest represents a request to rank strategies over one dataset.
type RankRequest struct {
	Symbol     string         `json:"symbol" binding:"required"`
	Candles    []model.Candle `json:"candles,omitempty"`
	DataFile   string         `json:"data_file,omitempty"`
	Config     BacktestConfig `json:"config"`
	Strategies []string       `json:"strategies,omitempty"` // empty = all registered
}
