package backtest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/enragedparrot54/crypto/internal/model"
)

func sampleTrade() model.Trade {
	return model.Trade{
		Timestamp: 1_600_000_000_000, // 2020-09-13 12:26 UTC
		Action:    model.SideBuy,
		Symbol:    "SOL-USD",
		Price:     100.5,
		Size:      2.5,
		PnL:       0,
		Balance:   1000,
		Trigger:   model.TriggerStrategy,
	}
}

func TestCSVRecorderWritesRows(t *testing.T) {
	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	rec, err := NewCSVRecorder(tradesPath, equityPath)
	if err != nil {
		t.Fatalf("recorder: %v", err)
	}
	rec.RecordTrade(sampleTrade())
	rec.RecordEquity(model.EquityPoint{Timestamp: 1_600_000_000_000, Equity: 1000})
	if err := rec.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	trades, err := os.ReadFile(tradesPath)
	if err != nil {
		t.Fatal(err)
	}
	got := string(trades)
	if !strings.HasPrefix(got, "timestamp,action,symbol,price,size,pnl,balance\n") {
		t.Fatalf("missing trade header: %q", got)
	}
	// human timestamp, 2-decimal currency, 6-decimal size
	if !strings.Contains(got, "2020-09-13 12:26,BUY,SOL-USD,100.50,2.500000,0.00,1000.00") {
		t.Fatalf("trade row formatting wrong: %q", got)
	}

	equity, err := os.ReadFile(equityPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(equity), "2020-09-13 12:26,1000.00") {
		t.Fatalf("equity row formatting wrong: %q", string(equity))
	}
}

func TestWriteTradesCSVWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	tr := sampleTrade()
	sell := tr
	sell.Action = model.SideSell
	sell.Trigger = model.TriggerStopLoss
	sell.Timestamp += 60_000
	sell.PnL = -12.345

	if err := WriteTradesCSV(path, []model.Trade{tr, sell}); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows", len(lines))
	}
	if !strings.Contains(lines[2], "SELL") || !strings.Contains(lines[2], "-12.35") {
		t.Fatalf("sell row = %q", lines[2])
	}
}

func TestWriteEquityCSVWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equity.csv")
	curve := []model.EquityPoint{
		{Timestamp: 1_600_000_000_000, Equity: 1000},
		{Timestamp: 1_600_000_060_000, Equity: 1010.555},
	}
	if err := WriteEquityCSV(path, curve); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "1010.56") {
		t.Fatalf("equity rounding wrong: %q", string(raw))
	}
}
