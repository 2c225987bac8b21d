package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/enragedparrot54/crypto/internal/analysis"
	"github.com/enragedparrot54/crypto/internal/api/models"
	"github.com/enragedparrot54/crypto/internal/backtest"
	"github.com/enragedparrot54/crypto/internal/broker"
	"github.com/enragedparrot54/crypto/internal/config"
	"github.com/enragedparrot54/crypto/internal/data"
	"github.com/enragedparrot54/crypto/internal/model"
	"github.com/enragedparrot54/crypto/internal/strategy"
)

// BacktestHandler handles backtest-related requests.
type BacktestHandler struct {
	log *zap.Logger
}

func NewBacktestHandler(log *zap.Logger) *BacktestHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BacktestHandler{log: log}
}

// RunBacktest handles POST /api/v1/backtest.
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	candles, err := resolveCandles(req.Candles, req.DataFile)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_DATA", err)
		return
	}

	cfg, err := mergeConfig(req.Config)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err)
		return
	}

	strat, err := strategy.New(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		writeError(c, http.StatusBadRequest, "UNKNOWN_STRATEGY", err)
		return
	}

	eng := backtest.New(backtest.Options{
		Risk:       cfg.RiskParams(),
		MinCandles: cfg.MinCandles(),
		Log:        h.log,
	})
	res, err := eng.Run(candles, broker.New(cfg.Account.InitialBalance), strat, req.Symbol)
	if err != nil {
		writeError(c, http.StatusBadRequest, "RUN_FAILED", err)
		return
	}

	resp := models.BacktestResponse{
		ID:      uuid.New().String(),
		Status:  "completed",
		Symbol:  req.Symbol,
		Summary: toSummary(analysis.Evaluate(res)),
	}
	if req.Options.IncludeTrades {
		resp.Trades = res.Trades
	}
	if req.Options.IncludeEquity {
		resp.Equity = res.EquityCurve
	}
	c.JSON(http.StatusOK, resp)
}

// resolveCandles picks the inline series or loads the server-side CSV.
func resolveCandles(inline []model.Candle, dataFile string) ([]model.Candle, error) {
	switch {
	case len(inline) > 0 && dataFile != "":
		return nil, errors.New("supply either candles or data_file, not both")
	case len(inline) > 0:
		return inline, nil
	case dataFile != "":
		return data.LoadCandles(dataFile)
	default:
		return nil, errors.New("either candles or data_file is required")
	}
}

// mergeConfig overlays request values onto the server defaults and
// revalidates the result.
func mergeConfig(in models.BacktestConfig) (*config.Config, error) {
	cfg := config.Default()
	if in.InitialBalance != 0 {
		cfg.Account.InitialBalance = in.InitialBalance
	}
	if in.RiskPerTradePct != 0 {
		cfg.Risk.RiskPerTradePct = in.RiskPerTradePct
	}
	if in.StopLossPct != 0 {
		cfg.Risk.StopLossPct = in.StopLossPct
	}
	if in.TakeProfitPct != 0 {
		cfg.Risk.TakeProfitPct = in.TakeProfitPct
	}
	if in.CooldownCandles != nil {
		cfg.Risk.CooldownCandles = in.CooldownCandles
	}
	if in.TrendEMAPeriod != 0 {
		cfg.Risk.TrendEMAPeriod = in.TrendEMAPeriod
	}
	if in.MinCandlesBeforeTrading != nil {
		cfg.Risk.MinCandlesBeforeTrading = in.MinCandlesBeforeTrading
	}
	if in.Strategy.Name != "" {
		cfg.Strategy.Name = in.Strategy.Name
		cfg.Strategy.Params = in.Strategy.Params
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func toSummary(s analysis.Summary) models.BacktestSummary {
	return models.BacktestSummary{
		InitialBalance: s.InitialBalance,
		EndingBalance:  s.EndingBalance,
		PnL:            s.PnL,
		ReturnPct:      s.ReturnPct,
		Trades:         s.Trades,
		Sells:          s.Sells,
		WinRate:        s.WinRate,
		MaxDrawdownPct: s.MaxDrawdownPct,
	}
}

func writeError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: err.Error()},
	})
}
