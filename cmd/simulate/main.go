// Package main provides the batch combat simulator binary used to balance
// zombie templates and party compositions before they ship in content.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deadroad/internal/config"
	"github.com/cory-johannsen/deadroad/internal/game/chance"
	"github.com/cory-johannsen/deadroad/internal/game/dice"
	"github.com/cory-johannsen/deadroad/internal/game/horde"
	"github.com/cory-johannsen/deadroad/internal/game/survivor"
	"github.com/cory-johannsen/deadroad/internal/harness"
	"github.com/cory-johannsen/deadroad/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	zombieID := flag.String("zombie", "shambler", "zombie template ID to simulate against")
	packSize := flag.Int("pack-size", 4, "number of zombies per combat")
	partySize := flag.Int("party-size", 3, "number of survivors per combat")
	fog := flag.Bool("fog", false, "apply the Fog condition to every combat")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()
	logger = observability.Component(logger, "simulate")

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := dice.NewSeededSource(seed)

	zombieDir := filepath.Join(cfg.Content.Root, "zombies")
	templates, err := horde.LoadTemplates(zombieDir)
	if err != nil {
		logger.Fatal("loading zombie templates", zap.Error(err))
	}
	registry := horde.NewRegistry()
	for _, tmpl := range templates {
		registry.Register(tmpl)
	}
	logger.Info("zombie templates loaded",
		zap.Int("count", len(templates)),
		zap.String("dir", zombieDir),
	)

	if _, ok := registry.Template(*zombieID); !ok {
		logger.Fatal("unknown zombie template", zap.String("id", *zombieID))
	}

	conditions := chance.Conditions{}
	if *fog {
		conditions[chance.Fog] = true
	}

	simCfg := harness.Config{
		Runs: cfg.Simulation.Runs,
		Party: func() []*survivor.Survivor {
			return defaultParty(*partySize)
		},
		Pack: func() []*horde.Instance {
			pack, err := registry.SpawnByID(*zombieID, *packSize)
			if err != nil {
				logger.Fatal("spawning zombie pack", zap.Error(err))
			}
			return pack
		},
		Conditions: conditions,
		Danger:     cfg.Simulation.Danger,
	}

	metrics, err := harness.RunCombatSimulations(simCfg, src, logger)
	if err != nil {
		logger.Fatal("running simulations", zap.Error(err))
	}

	fmt.Fprintf(os.Stdout, "runs=%d seed=%d zombie=%s pack=%d party=%d danger=%d\n",
		metrics.Runs, seed, *zombieID, *packSize, *partySize, cfg.Simulation.Danger)
	fmt.Fprintf(os.Stdout, "victories=%d defeats=%d stalemates=%d\n",
		metrics.Victories, metrics.Defeats, metrics.Stalemates)
	fmt.Fprintf(os.Stdout, "win_rate=%.2f avg_rounds=%.1f avg_survivor_deaths=%.2f [%s]\n",
		metrics.WinRate, metrics.AvgRounds, metrics.AvgSurvivorDeaths, time.Since(start))
}

// defaultParty builds a fixed scavenging crew. The roster repeats its three
// archetypes when a larger party is requested.
func defaultParty(size int) []*survivor.Survivor {
	archetypes := []func(name string) *survivor.Survivor{
		func(name string) *survivor.Survivor {
			s := survivor.New(name, survivor.Attributes{
				Strength: 5, Agility: 7, Intellect: 4,
				Perception: 6, Charisma: 3, Constitution: 5, Sanity: 5,
			})
			s.LearnSkill("Small Arms", 3)
			return s
		},
		func(name string) *survivor.Survivor {
			s := survivor.New(name, survivor.Attributes{
				Strength: 8, Agility: 4, Intellect: 3,
				Perception: 4, Charisma: 4, Constitution: 7, Sanity: 5,
			})
			s.LearnSkill("Melee Weaponry", 3)
			return s
		},
		func(name string) *survivor.Survivor {
			s := survivor.New(name, survivor.Attributes{
				Strength: 4, Agility: 5, Intellect: 7,
				Perception: 7, Charisma: 5, Constitution: 4, Sanity: 6,
			})
			s.LearnSkill("Scouting", 2)
			s.LearnSkill("Mechanics", 2)
			return s
		},
	}

	party := make([]*survivor.Survivor, size)
	for i := range party {
		build := archetypes[i%len(archetypes)]
		party[i] = build(fmt.Sprintf("Survivor-%d", i+1))
	}
	return party
}
