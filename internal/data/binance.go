package data

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"

	"github.com/enragedparrot54/crypto/internal/model"
)

// klinesPerRequest is the Binance API page limit.
const klinesPerRequest = 1000

// BinanceSource downloads historical spot klines. Public market data only;
// no API key is required.
type BinanceSource struct {
	client *binance.Client
}

func NewBinanceSource() *BinanceSource {
	return &BinanceSource{client: binance.NewClient("", "")}
}

// Download fetches interval candles for symbol covering the last days days,
// paging through the API in chronological order.
func (s *BinanceSource) Download(ctx context.Context, symbol, interval string, days int) ([]model.Candle, error) {
	if days <= 0 {
		days = 1
	}
	now := time.Now()
	since := now.Add(-time.Duration(days) * 24 * time.Hour).UnixMilli()

	var out []model.Candle
	for since < now.UnixMilli() {
		klines, err := s.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			StartTime(since).
			Limit(klinesPerRequest).
			Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch klines %s %s: %w", symbol, interval, err)
		}
		if len(klines) == 0 {
			break
		}
		for _, k := range klines {
			c, err := candleFromKline(k)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		since = klines[len(klines)-1].OpenTime + 1
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no klines returned for %s %s", symbol, interval)
	}
	return out, nil
}

func candleFromKline(k *binance.Kline) (model.Candle, error) {
	c := model.Candle{Timestamp: k.OpenTime}
	var err error
	if c.Open, err = strconv.ParseFloat(k.Open, 64); err != nil {
		return c, fmt.Errorf("kline open %q: %w", k.Open, err)
	}
	if c.High, err = strconv.ParseFloat(k.High, 64); err != nil {
		return c, fmt.Errorf("kline high %q: %w", k.High, err)
	}
	if c.Low, err = strconv.ParseFloat(k.Low, 64); err != nil {
		return c, fmt.Errorf("kline low %q: %w", k.Low, err)
	}
	if c.Close, err = strconv.ParseFloat(k.Close, 64); err != nil {
		return c, fmt.Errorf("kline close %q: %w", k.Close, err)
	}
	if c.Volume, err = strconv.ParseFloat(k.Volume, 64); err != nil {
		return c, fmt.Errorf("kline volume %q: %w", k.Volume, err)
	}
	return c, nil
}
