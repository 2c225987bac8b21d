package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/enragedparrot54/crypto/internal/analysis"
	"github.com/enragedparrot54/crypto/internal/backtest"
	"github.com/enragedparrot54/crypto/internal/broker"
	"github.com/enragedparrot54/crypto/internal/config"
	"github.com/enragedparrot54/crypto/internal/data"
	"github.com/enragedparrot54/crypto/internal/strategy"
	"github.com/enragedparrot54/crypto/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backtest":
		cmdBacktest(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	case "download":
		cmdDownload(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli backtest --data data/candles.csv --config config.yaml")
	fmt.Println("  cli rank --data data/candles.csv --config config.yaml")
	fmt.Println("  cli download --symbol SOLUSDT --interval 5m --days 90 --out data/candles.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - backtest writes trade and equity CSV logs and prints a summary")
	fmt.Println("  - rank runs every registered strategy over one dataset, sorted by PnL")
	fmt.Println("  - download fetches Binance spot klines into the loader's CSV schema")
}

func cmdBacktest(args []string) {
	fs := flag.NewFlagSet("backtest", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to candle CSV (default: data_file from config)")
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	n := fs.Int("n", 0, "Optional: limit to first N candles (0=all)")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *dataPath == "" {
		*dataPath = cfg.DataFile
	}

	candles, err := data.LoadCandles(*dataPath)
	if err != nil {
		fatal(err)
	}
	if *n > 0 && *n < len(candles) {
		candles = candles[:*n]
	}

	strat, err := strategy.New(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		fatal(err)
	}

	rec, err := backtest.NewCSVRecorder(cfg.Output.TradesFile, cfg.Output.EquityFile)
	if err != nil {
		// Log artifacts are best-effort; the run proceeds without them.
		fmt.Printf("warning: cannot open log files: %v\n", err)
		rec = nil
	}

	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	eng := backtest.New(backtest.Options{
		Risk:       cfg.RiskParams(),
		MinCandles: cfg.MinCandles(),
		Recorder:   recorderOrNil(rec),
		Log:        log,
	})
	res, err := eng.Run(candles, broker.New(cfg.Account.InitialBalance), strat, cfg.Symbol)
	if rec != nil {
		rec.Close()
	}
	if err != nil {
		fatal(err)
	}

	sum := analysis.Evaluate(res)
	fmt.Printf("\nBACKTEST - %s - LONG ONLY\n", cfg.Symbol)
	fmt.Printf("Candles:   %d\n", res.Candles)
	fmt.Printf("Starting:  $%.2f\n", sum.InitialBalance)
	fmt.Printf("Ending:    $%.2f\n", sum.EndingBalance)
	fmt.Printf("PnL:       $%+.2f\n", sum.PnL)
	fmt.Printf("Return:    %+.2f%%\n", sum.ReturnPct)
	fmt.Printf("Trades:    %d\n", sum.Trades)
	fmt.Printf("Win Rate:  %.1f%%\n", sum.WinRate*100)
	fmt.Printf("Max DD:    %.2f%%\n", sum.MaxDrawdownPct)
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to candle CSV (default: data_file from config)")
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *dataPath == "" {
		*dataPath = cfg.DataFile
	}

	candles, err := data.LoadCandles(*dataPath)
	if err != nil {
		fatal(err)
	}

	log := logger.New("warn")
	defer log.Sync()

	opts := backtest.Options{Risk: cfg.RiskParams(), MinCandles: cfg.MinCandles(), Log: log}
	ranks, err := analysis.RankStrategies(candles, cfg.Symbol, cfg.Account.InitialBalance, opts, nil)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("\nRANK - %s - %d candles\n", cfg.Symbol, len(candles))
	fmt.Printf("%-4s %-12s %12s %10s %8s %8s\n", "#", "strategy", "pnl", "return", "trades", "winrate")
	for _, r := range ranks {
		fmt.Printf("%-4d %-12s %12.2f %9.2f%% %8d %7.1f%%\n",
			r.Rank, r.Strategy, r.Summary.PnL, r.Summary.ReturnPct, r.Summary.Trades, r.Summary.WinRate*100)
	}
}

func cmdDownload(args []string) {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	symbol := fs.String("symbol", "SOLUSDT", "Binance spot symbol")
	interval := fs.String("interval", "5m", "Kline interval (1m, 5m, 15m, 1h, ...)")
	days := fs.Int("days", 90, "Days of history to fetch")
	out := fs.String("out", "data/candles.csv", "Output CSV path")
	_ = fs.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	src := data.NewBinanceSource()
	candles, err := src.Download(ctx, *symbol, *interval, *days)
	if err != nil {
		fatal(err)
	}
	if err := data.WriteCandlesCSV(*out, candles); err != nil {
		fatal(err)
	}
	fmt.Printf("Wrote %d candles to %s\n", len(candles), *out)
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fatal(err)
	}
	return cfg
}

// recorderOrNil converts a typed nil into an untyped nil interface.
func recorderOrNil(rec *backtest.CSVRecorder) backtest.Recorder {
	if rec == nil {
		return nil
	}
	return rec
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
