package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validCSV = `timestamp,open,high,low,close,volume
1600000000000,100,101,99,100.5,1000
1600000060000,100.5,102,100,101.5,1100
1600000120000,101.5,103,101,102.5,900
`

func TestReadCandlesValid(t *testing.T) {
	candles, err := ReadCandles(strings.NewReader(validCSV))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(candles) != 3 {
		t.Fatalf("candles = %d, want 3", len(candles))
	}
	c := candles[0]
	if c.Timestamp != 1600000000000 || c.Open != 100 || c.High != 101 || c.Low != 99 || c.Close != 100.5 || c.Volume != 1000 {
		t.Fatalf("first candle = %+v", c)
	}
}

func TestReadCandlesColumnOrderIrrelevant(t *testing.T) {
	csv := `close,volume,timestamp,low,high,open
100.5,1000,1600000000000,99,101,100
`
	candles, err := ReadCandles(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if candles[0].High != 101 || candles[0].Close != 100.5 {
		t.Fatalf("candle = %+v", candles[0])
	}
}

func TestReadCandlesMissingColumn(t *testing.T) {
	csv := "timestamp,open,high,low,close\n1600000000000,100,101,99,100.5\n"
	_, err := ReadCandles(strings.NewReader(csv))
	if err == nil || !strings.Contains(err.Error(), "volume") {
		t.Fatalf("expected missing-column error naming volume, got %v", err)
	}
}

func TestReadCandlesBadNumberNamesRow(t *testing.T) {
	csv := "timestamp,open,high,low,close,volume\n" +
		"1600000000000,100,101,99,100.5,1000\n" +
		"1600000060000,abc,102,100,101.5,1100\n"
	_, err := ReadCandles(strings.NewReader(csv))
	if err == nil || !strings.Contains(err.Error(), "row 3") {
		t.Fatalf("expected row 3 diagnostic, got %v", err)
	}
}

func TestReadCandlesOHLCInconsistencyRejected(t *testing.T) {
	csv := "timestamp,open,high,low,close,volume\n" +
		"1600000000000,100,99,101,100,1000\n" // high < low
	_, err := ReadCandles(strings.NewReader(csv))
	if err == nil {
		t.Fatalf("expected OHLC validation error")
	}
}

func TestReadCandlesOutOfOrderRejected(t *testing.T) {
	csv := "timestamp,open,high,low,close,volume\n" +
		"1600000060000,100,101,99,100.5,1000\n" +
		"1600000000000,100,101,99,100.5,1000\n"
	_, err := ReadCandles(strings.NewReader(csv))
	if err == nil {
		t.Fatalf("expected ordering error")
	}
}

func TestReadCandlesEmptyFile(t *testing.T) {
	_, err := ReadCandles(strings.NewReader(""))
	if err == nil {
		t.Fatalf("expected error on empty input")
	}
}

func TestLoadCandlesMissingFile(t *testing.T) {
	_, err := LoadCandles(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatalf("expected error on missing file")
	}
}

func TestWriteThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candles.csv")
	if err := os.WriteFile(path, []byte(validCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	candles, err := LoadCandles(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	out := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCandlesCSV(out, candles); err != nil {
		t.Fatalf("write: %v", err)
	}
	again, err := LoadCandles(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(again) != len(candles) {
		t.Fatalf("round trip lost candles: %d vs %d", len(again), len(candles))
	}
	for i := range again {
		if again[i] != candles[i] {
			t.Fatalf("candle %d differs: %+v vs %+v", i, again[i], candles[i])
		}
	}
}
