package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/enragedparrot54/crypto/internal/risk"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Symbol   string         `yaml:"symbol"`
	DataFile string         `yaml:"data_file"`
	Account  AccountConfig  `yaml:"account"`
	Risk     RiskConfig     `yaml:"risk"`
	Strategy StrategyConfig `yaml:"strategy"`
	Output   OutputConfig   `yaml:"output"`
	LogLevel string         `yaml:"log_level"`
}

type AccountConfig struct {
	InitialBalance float64 `yaml:"initial_balance"`
}

type RiskConfig struct {
	RiskPerTradePct         float64 `yaml:"risk_per_trade_pct"`
	StopLossPct             float64 `yaml:"stop_loss_pct"`
	TakeProfitPct           float64 `yaml:"take_profit_pct"`
	CooldownCandles         *int    `yaml:"cooldown_candles"`
	TrendEMAPeriod          int     `yaml:"trend_ema_period"`
	MinCandlesBeforeTrading *int    `yaml:"min_candles_before_trading"`
}

type StrategyConfig struct {
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params"`
}

type OutputConfig struct {
	TradesFile string `yaml:"trades_file"`
	EquityFile string `yaml:"equity_file"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads, defaults, and validates a YAML config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s invalid: %w", path, err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Symbol == "" {
		c.Symbol = "SOL-USD"
	}
	if c.DataFile == "" {
		c.DataFile = "data/candles.csv"
	}
	if c.Account.InitialBalance == 0 {
		c.Account.InitialBalance = 1000
	}
	if c.Risk.RiskPerTradePct == 0 {
		c.Risk.RiskPerTradePct = 1.0
	}
	if c.Risk.StopLossPct == 0 {
		c.Risk.StopLossPct = -2.0
	}
	if c.Risk.TakeProfitPct == 0 {
		c.Risk.TakeProfitPct = 4.0
	}
	if c.Risk.CooldownCandles == nil {
		v := 6
		c.Risk.CooldownCandles = &v
	}
	if c.Risk.TrendEMAPeriod == 0 {
		c.Risk.TrendEMAPeriod = 200
	}
	if c.Risk.MinCandlesBeforeTrading == nil {
		v := 60
		c.Risk.MinCandlesBeforeTrading = &v
	}
	if c.Strategy.Name == "" {
		c.Strategy.Name = "ema_cross"
	}
	if c.Output.TradesFile == "" {
		c.Output.TradesFile = "trades.csv"
	}
	if c.Output.EquityFile == "" {
		c.Output.EquityFile = "equity.csv"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Symbol == "" {
		return errors.New("symbol is required")
	}
	if c.Account.InitialBalance <= 0 {
		return fmt.Errorf("account.initial_balance must be > 0, got %v", c.Account.InitialBalance)
	}
	if c.Risk.RiskPerTradePct <= 0 {
		return fmt.Errorf("risk.risk_per_trade_pct must be > 0, got %v", c.Risk.RiskPerTradePct)
	}
	if c.Risk.StopLossPct >= 0 {
		return fmt.Errorf("risk.stop_loss_pct must be negative, got %v", c.Risk.StopLossPct)
	}
	if c.Risk.TakeProfitPct <= 0 {
		return fmt.Errorf("risk.take_profit_pct must be positive, got %v", c.Risk.TakeProfitPct)
	}
	if c.Risk.CooldownCandles != nil && *c.Risk.CooldownCandles < 0 {
		return fmt.Errorf("risk.cooldown_candles must be >= 0, got %d", *c.Risk.CooldownCandles)
	}
	if c.Risk.TrendEMAPeriod <= 0 {
		return fmt.Errorf("risk.trend_ema_period must be > 0, got %d", c.Risk.TrendEMAPeriod)
	}
	if c.Risk.MinCandlesBeforeTrading != nil && *c.Risk.MinCandlesBeforeTrading < 0 {
		return fmt.Errorf("risk.min_candles_before_trading must be >= 0, got %d", *c.Risk.MinCandlesBeforeTrading)
	}
	if c.Strategy.Name == "" {
		return errors.New("strategy.name is required")
	}
	return nil
}

// RiskParams maps the config onto the risk policy's parameter struct.
func (c *Config) RiskParams() risk.Params {
	return risk.Params{
		RiskPerTradePct: c.Risk.RiskPerTradePct,
		StopLossPct:     c.Risk.StopLossPct,
		TakeProfitPct:   c.Risk.TakeProfitPct,
		CooldownCandles: *c.Risk.CooldownCandles,
		TrendEMAPeriod:  c.Risk.TrendEMAPeriod,
	}
}

// MinCandles returns the warm-up candle count before trading may start.
func (c *Config) MinCandles() int {
	return *c.Risk.MinCandlesBeforeTrading
}
