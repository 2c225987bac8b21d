package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/enragedparrot54/crypto/internal/api/handlers"
	"github.com/enragedparrot54/crypto/internal/api/middleware"
	"github.com/enragedparrot54/crypto/pkg/logger"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	log := logger.New(os.Getenv("LOG_LEVEL"))
	defer log.Sync()

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())

	backtestHandler := handlers.NewBacktestHandler(log)
	strategyHandler := handlers.NewStrategyHandler()
	rankHandler := handlers.NewRankHandler(log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/backtest", backtestHandler.RunBacktest)
		v1.POST("/rank", rankHandler.RankStrategies)
		v1.GET("/strategies", strategyHandler.ListStrategies)
	}

	log.Info("api listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
