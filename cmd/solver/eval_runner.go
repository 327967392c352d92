package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/lox/cfrsolver/sdk/solver"
)

// runEvalReport loads a blueprint and logs its headline numbers along
// with the five public info sets whose action 0 (fold in push/fold and
// pre-flop, bet or call in Kuhn) has the highest frequency averaged
// over all hands, a quick signal for whether the strategy looks sane.
func runEvalReport(_ context.Context, logger zerolog.Logger, path string) error {
	bp, err := solver.LoadBlueprint(path)
	if err != nil {
		return fmt.Errorf("load blueprint: %w", err)
	}

	logger.Info().
		Str("generated", bp.GeneratedAt.Format("2006-01-02T15:04:05Z")).
		Str("game", string(bp.Game)).
		Int("iterations", bp.Iterations).
		Float64("eff_stack", bp.EffStack).
		Int("infosets", len(bp.Strategies)).
		Float64("ev_player_zero", bp.EVPlayerZero).
		Float64("exploitability", bp.Exploitability).
		Msg("blueprint loaded")

	type foldRate struct {
		infoSet string
		rate    float64
	}
	rates := make([]foldRate, 0, len(bp.Strategies))
	for key, sigma := range bp.Strategies {
		if len(sigma) == 0 {
			continue
		}
		sum, n := 0.0, 0
		for _, p := range sigma[0] {
			sum += p
			n++
		}
		if n == 0 {
			continue
		}
		rates = append(rates, foldRate{infoSet: key, rate: sum / float64(n)})
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].rate > rates[j].rate })

	top := rates
	if len(top) > 5 {
		top = top[:5]
	}
	for _, r := range top {
		logger.Info().Str("info_set", r.infoSet).Float64("avg_action0_freq", r.rate).Msg("top info set")
	}
	return nil
}
