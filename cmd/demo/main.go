package main

import (
	"flag"
	"fmt"
	"math"

	"github.com/enragedparrot54/crypto/internal/analysis"
	"github.com/enragedparrot54/crypto/internal/backtest"
	"github.com/enragedparrot54/crypto/internal/broker"
	"github.com/enragedparrot54/crypto/internal/config"
	"github.com/enragedparrot54/crypto/internal/model"
	"github.com/enragedparrot54/crypto/internal/strategy"
	"github.com/enragedparrot54/crypto/pkg/logger"
)

// Demo:
// - Generate a synthetic trending candle series
// - Run the sma_cross strategy with the default risk configuration
// - Print the trades and the performance summary
func main() {
	n := flag.Int("n", 600, "Number of synthetic candles")
	flag.Parse()

	candles := synthetic(*n)
	cfg := config.Default()
	cfg.Risk.TrendEMAPeriod = 50 // short series, shorten the filter

	strat, err := strategy.New("sma_cross", nil)
	if err != nil {
		panic(err)
	}

	log := logger.New("warn")
	defer log.Sync()

	eng := backtest.New(backtest.Options{
		Risk:       cfg.RiskParams(),
		MinCandles: cfg.MinCandles(),
		Log:        log,
	})
	res, err := eng.Run(candles, broker.New(cfg.Account.InitialBalance), strat, "DEMO-USD")
	if err != nil {
		panic(err)
	}

	for _, t := range res.Trades {
		fmt.Printf("%-4s %-12s price=%8.2f size=%.6f pnl=%+8.2f trigger=%s\n",
			t.Action, "DEMO-USD", t.Price, t.Size, t.PnL, t.Trigger)
	}

	sum := analysis.Evaluate(res)
	fmt.Printf("\nStarting: $%.2f  Ending: $%.2f  Return: %+.2f%%  Trades: %d  MaxDD: %.2f%%\n",
		sum.InitialBalance, sum.EndingBalance, sum.ReturnPct, sum.Trades, sum.MaxDrawdownPct)
}

// synthetic builds a gently rising series with a sine swing so crossovers
// actually happen.
func synthetic(n int) []model.Candle {
	out := make([]model.Candle, n)
	ts := int64(1_700_000_000_000)
	for i := 0; i < n; i++ {
		p := 100 + 0.05*float64(i) + 8*math.Sin(float64(i)/25)
		out[i] = model.Candle{
			Timestamp: ts + int64(i)*300_000,
			Open:      p * 0.999,
			High:      p * 1.002,
			Low:       p * 0.997,
			Close:     p,
			Volume:    1000,
		}
	}
	return out
}
