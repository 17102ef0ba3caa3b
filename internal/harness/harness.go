// Package harness runs batches of combat simulations and aggregates the
// results, for balancing content and sanity-checking encounter difficulty.
package harness

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deadroad/internal/game/chance"
	"github.com/cory-johannsen/deadroad/internal/game/combat"
	"github.com/cory-johannsen/deadroad/internal/game/dice"
	"github.com/cory-johannsen/deadroad/internal/game/horde"
	"github.com/cory-johannsen/deadroad/internal/game/survivor"
)

// Metrics aggregates a batch of simulated combats.
type Metrics struct {
	Runs              int
	Victories         int
	Defeats           int
	Stalemates        int
	WinRate           float64
	AvgRounds         float64
	AvgSurvivorDeaths float64
}

// Config describes one simulation batch. The factories must return fresh
// rosters per run; combat mutates its participants.
type Config struct {
	Runs       int
	Party      func() []*survivor.Survivor
	Pack       func() []*horde.Instance
	Conditions chance.Conditions
	Danger     int
}

// RunCombatSimulations executes cfg.Runs independent combats and aggregates
// their outcomes. All randomness flows through src, so a seeded source makes
// the whole batch reproducible.
//
// Precondition: cfg.Runs >= 1; cfg.Party and cfg.Pack must be non-nil.
func RunCombatSimulations(cfg Config, src dice.Source, logger *zap.Logger) (Metrics, error) {
	if cfg.Runs < 1 {
		return Metrics{}, fmt.Errorf("simulation runs must be >= 1, got %d", cfg.Runs)
	}
	if cfg.Party == nil || cfg.Pack == nil {
		return Metrics{}, fmt.Errorf("simulation requires party and pack factories")
	}

	m := Metrics{Runs: cfg.Runs}
	totalRounds := 0
	totalDeaths := 0
	for i := 0; i < cfg.Runs; i++ {
		party := cfg.Party()
		pack := cfg.Pack()
		initial := len(party)

		summary := combat.ResolveCombat(party, pack, cfg.Conditions, cfg.Danger, src, logger)

		switch {
		case summary.Victory:
			m.Victories++
		case summary.Defeat:
			m.Defeats++
		case summary.Stalemate:
			m.Stalemates++
		}
		totalRounds += summary.TotalRounds
		if deaths := initial - summary.SurvivorsRemaining; deaths > 0 {
			totalDeaths += deaths
		}
	}

	m.WinRate = float64(m.Victories) / float64(cfg.Runs)
	m.AvgRounds = float64(totalRounds) / float64(cfg.Runs)
	m.AvgSurvivorDeaths = float64(totalDeaths) / float64(cfg.Runs)

	logger.Info("simulation batch complete",
		zap.Int("runs", m.Runs),
		zap.Float64("win_rate", m.WinRate),
		zap.Float64("avg_rounds", m.AvgRounds),
		zap.Float64("avg_survivor_deaths", m.AvgSurvivorDeaths),
	)
	return m, nil
}
