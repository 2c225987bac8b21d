package model

import (
	"errors"
	"fmt"
)

// Candle is one OHLCV sample for a fixed time interval.
// Timestamp is epoch milliseconds of the interval open.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (c Candle) Validate() error {
	if c.Timestamp <= 0 {
		return errors.New("timestamp must be positive")
	}
	if c.Open <= 0 {
		return fmt.Errorf("open must be positive: %v", c.Open)
	}
	if c.High <= 0 {
		return fmt.Errorf("high must be positive: %v", c.High)
	}
	if c.Low <= 0 {
		return fmt.Errorf("low must be positive: %v", c.Low)
	}
	if c.Close <= 0 {
		return fmt.Errorf("close must be positive: %v", c.Close)
	}
	if c.Volume < 0 {
		return fmt.Errorf("volume cannot be negative: %v", c.Volume)
	}
	if c.High < c.Low {
		return fmt.Errorf("high (%v) < low (%v)", c.High, c.Low)
	}
	if c.High < c.Open || c.High < c.Close {
		return fmt.Errorf("high (%v) is not the highest price", c.High)
	}
	if c.Low > c.Open || c.Low > c.Close {
		return fmt.Errorf("low (%v) is not the lowest price", c.Low)
	}
	return nil
}

// ValidateSeries checks every candle and the chronological ordering of the
// sequence. Indicator look-back requires a contiguous, ordered series, so a
// bad candle rejects the whole run rather than being skipped.
func ValidateSeries(candles []Candle) error {
	if len(candles) == 0 {
		return errors.New("empty candle series")
	}
	for i, c := range candles {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("candle %d: %w", i, err)
		}
		if i > 0 && c.Timestamp <= candles[i-1].Timestamp {
			return fmt.Errorf("candle %d: timestamp %d not after previous %d", i, c.Timestamp, candles[i-1].Timestamp)
		}
	}
	return nil
}
