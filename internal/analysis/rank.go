package analysis

import (
	"fmt"
	"sort"

	"github.com/enragedparrot54/crypto/internal/backtest"
	"github.com/enragedparrot54/crypto/internal/broker"
	"github.com/enragedparrot54/crypto/internal/model"
	"github.com/enragedparrot54/crypto/internal/strategy"
)

// StrategyRank holds one strategy's results over a shared dataset.
type StrategyRank struct {
	Rank     int
	Strategy string
	Summary  Summary
}

// RankStrategies runs each named strategy (default params) over the same
// candle series with a fresh broker and identical engine options, then sorts
// descending by PnL. Empty names means every registered strategy.
func RankStrategies(candles []model.Candle, symbol string, initialBalance float64, opts backtest.Options, names []string) ([]StrategyRank, error) {
	if len(names) == 0 {
		for _, info := range strategy.List() {
			names = append(names, info.Name)
		}
	}

	out := make([]StrategyRank, 0, len(names))
	for _, name := range names {
		strat, err := strategy.New(name, nil)
		if err != nil {
			return nil, err
		}
		eng := backtest.New(opts)
		res, err := eng.Run(candles, broker.New(initialBalance), strat, symbol)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", name, err)
		}
		out = append(out, StrategyRank{Strategy: name, Summary: Evaluate(res)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Summary.PnL > out[j].Summary.PnL })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}
