package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/enragedparrot54/crypto/internal/analysis"
	"github.com/enragedparrot54/crypto/internal/api/models"
	"github.com/enragedparrot54/crypto/internal/backtest"
)

// RankHandler compares every registered strategy over one dataset.
type RankHandler struct {
	log *zap.Logger
}

func NewRankHandler(log *zap.Logger) *RankHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &RankHandler{log: log}
}

// RankStrategies handles POST /api/v1/rank.
func (h *RankHandler) RankStrategies(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	candles, err := resolveCandles(req.Candles, req.DataFile)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_DATA", err)
		return
	}

	// Strategy selection happens per ranked run; the name in req.Config is
	// not consulted here.
	cfg := req.Config
	cfg.Strategy = models.StrategyConfig{Name: "ema_cross"}
	merged, err := mergeConfig(cfg)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err)
		return
	}

	opts := backtest.Options{
		Risk:       merged.RiskParams(),
		MinCandles: merged.MinCandles(),
		Log:        h.log,
	}
	ranks, err := analysis.RankStrategies(candles, req.Symbol, merged.Account.InitialBalance, opts, req.Strategies)
	if err != nil {
		writeError(c, http.StatusBadRequest, "RANK_FAILED", err)
		return
	}

	resp := models.RankResponse{ID: uuid.New().String(), Symbol: req.Symbol}
	for _, r := range ranks {
		resp.Rankings = append(resp.Rankings, models.Ranking{
			Rank:     r.Rank,
			Strategy: r.Strategy,
			Summary:  toSummary(r.Summary),
		})
	}
	c.JSON(http.StatusOK, resp)
}
