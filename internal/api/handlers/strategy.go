package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enragedparrot54/crypto/internal/strategy"
)

// StrategyHandler serves strategy discovery requests.
type StrategyHandler struct{}

func NewStrategyHandler() *StrategyHandler { return &StrategyHandler{} }

// ListStrategies handles GET /api/v1/strategies.
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": strategy.List()})
}
