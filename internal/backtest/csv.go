package backtest

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/enragedparrot54/crypto/internal/model"
)

var tradeHeader = []string{"timestamp", "action", "symbol", "price", "size", "pnl", "balance"}
var equityHeader = []string{"timestamp", "equity"}

// CSVRecorder appends trade and equity rows as the run progresses. Writes
// are best-effort: any failure is swallowed, the in-memory Result stays
// authoritative.
type CSVRecorder struct {
	tradesFile *os.File
	equityFile *os.File
	trades     *csv.Writer
	equity     *csv.Writer
}

// NewCSVRecorder creates (truncating) the two log files and writes headers.
func NewCSVRecorder(tradesPath, equityPath string) (*CSVRecorder, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}
	r := &CSVRecorder{
		tradesFile: tf,
		equityFile: ef,
		trades:     csv.NewWriter(tf),
		equity:     csv.NewWriter(ef),
	}
	_ = r.trades.Write(tradeHeader)
	_ = r.equity.Write(equityHeader)
	return r, nil
}

func (r *CSVRecorder) RecordTrade(t model.Trade) {
	if r == nil || r.trades == nil {
		return
	}
	_ = r.trades.Write(tradeRow(t))
	r.trades.Flush()
}

func (r *CSVRecorder) RecordEquity(p model.EquityPoint) {
	if r == nil || r.equity == nil {
		return
	}
	_ = r.equity.Write([]string{fmtTimestamp(p.Timestamp), fmtMoney(p.Equity)})
	r.equity.Flush()
}

func (r *CSVRecorder) Close() error {
	if r == nil {
		return nil
	}
	r.trades.Flush()
	r.equity.Flush()
	err1 := r.tradesFile.Close()
	err2 := r.equityFile.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// WriteTradesCSV writes a complete trade log in one pass.
func WriteTradesCSV(path string, trades []model.Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(tradeHeader); err != nil {
		return err
	}
	for _, t := range trades {
		if err := w.Write(tradeRow(t)); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteEquityCSV writes a complete equity curve in one pass.
func WriteEquityCSV(path string, curve []model.EquityPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(equityHeader); err != nil {
		return err
	}
	for _, p := range curve {
		if err := w.Write([]string{fmtTimestamp(p.Timestamp), fmtMoney(p.Equity)}); err != nil {
			return err
		}
	}
	return w.Error()
}

func tradeRow(t model.Trade) []string {
	return []string{
		fmtTimestamp(t.Timestamp),
		string(t.Action),
		t.Symbol,
		fmtMoney(t.Price),
		fmtSize(t.Size),
		fmtMoney(t.PnL),
		fmtMoney(t.Balance),
	}
}

func fmtTimestamp(ms int64) string {
	if ms <= 0 {
		return strconv.FormatInt(ms, 10)
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
}

// currency: 2 decimals, size: 6 decimals
func fmtMoney(x float64) string { return strconv.FormatFloat(x, 'f', 2, 64) }
func fmtSize(x float64) string  { return strconv.FormatFloat(x, 'f', 6, 64) }
