package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/enragedparrot54/crypto/internal/model"
)

var requiredColumns = []string{"timestamp", "open", "high", "low", "close", "volume"}

// LoadCandles reads an OHLCV CSV file into a validated, chronologically
// ordered candle series. Any malformed row rejects the whole file: a row
// silently skipped mid-series would leave a gap that corrupts every
// look-back indicator downstream.
func LoadCandles(path string) ([]model.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCandles(f)
}

// ReadCandles parses candle CSV from r. The first record must be a header
// containing at least the required columns, in any order.
func ReadCandles(r io.Reader) ([]model.Candle, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file, expected header %v", requiredColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing required column %q, found %v", name, header)
		}
	}

	var candles []model.Candle
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		c, err := parseCandle(rec, col)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		candles = append(candles, c)
	}

	if err := model.ValidateSeries(candles); err != nil {
		return nil, err
	}
	return candles, nil
}

func parseCandle(rec []string, col map[string]int) (model.Candle, error) {
	field := func(name string) (float64, error) {
		i := col[name]
		if i >= len(rec) {
			return 0, fmt.Errorf("missing field %q", name)
		}
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %q", name, rec[i])
		}
		return v, nil
	}

	var c model.Candle
	ts, err := field("timestamp")
	if err != nil {
		return c, err
	}
	c.Timestamp = int64(ts)
	if c.Open, err = field("open"); err != nil {
		return c, err
	}
	if c.High, err = field("high"); err != nil {
		return c, err
	}
	if c.Low, err = field("low"); err != nil {
		return c, err
	}
	if c.Close, err = field("close"); err != nil {
		return c, err
	}
	if c.Volume, err = field("volume"); err != nil {
		return c, err
	}
	return c, nil
}

// WriteCandlesCSV writes a candle series in the loader's schema, timestamps
// as epoch milliseconds.
func WriteCandlesCSV(path string, candles []model.Candle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(requiredColumns); err != nil {
		return err
	}
	for _, c := range candles {
		row := []string{
			strconv.FormatInt(c.Timestamp, 10),
			strconv.FormatFloat(c.Open, 'f', -1, 64),
			strconv.FormatFloat(c.High, 'f', -1, 64),
			strconv.FormatFloat(c.Low, 'f', -1, 64),
			strconv.FormatFloat(c.Close, 'f', -1, 64),
			strconv.FormatFloat(c.Volume, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
