package models

import "github.com/enragedparrot54/crypto/internal/model"

// BacktestResponse represents the response from a backtest run.
type BacktestResponse struct {
	ID      string              `json:"id"`
	Status  string              `json:"status"`
	Symbol  string              `json:"symbol"`
	Summary BacktestSummary     `json:"summary"`
	Trades  []model.Trade       `json:"trades,omitempty"`
	Equity  []model.EquityPoint `json:"equity,omitempty"`
}

// BacktestSummary contains aggregated backtest results.
type BacktestSummary struct {
	InitialBalance float64 `json:"initial_balance"`
	EndingBalance  float64 `json:"ending_balance"`
	PnL            float64 `json:"pnl"`
	ReturnPct      float64 `json:"return_pct"`
	Trades         int     `json:"trades"`
	Sells          int     `json:"sells"`
	WinRate        float64 `json:"win_rate"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`
}

// RankResponse represents the response from ranking strategies.
type RankResponse struct {
	ID       string    `json:"id"`
	Symbol   string    `json:"symbol"`
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked strategy.
type Ranking struct {
	Rank     int             `json:"rank"`
	Strategy string          `json:"strategy"`
	Summary  BacktestSummary `json:"summary"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
