package backtest

import "github.com/enragedparrot54/crypto/internal/model"

// Result is the authoritative in-memory output of one run. The CSV logs are
// side-channel artifacts derived from the same records.
type Result struct {
	Symbol         string
	InitialBalance float64
	Candles        int
	Trades         []model.Trade
	EquityCurve    []model.EquityPoint
}
