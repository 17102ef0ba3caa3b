// Package combat simulates an automatic engagement between a survivor party
// and a pack of zombies. Rounds alternate between the two sides until one
// roster is empty or the round cap is reached.
package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/deadroad/internal/game/chance"
	"github.com/cory-johannsen/deadroad/internal/game/dice"
	"github.com/cory-johannsen/deadroad/internal/game/horde"
	"github.com/cory-johannsen/deadroad/internal/game/survivor"
)

// Combat tuning constants.
const (
	// MaxRounds caps the loop so degenerate hit-chance matchups cannot spin
	// forever; hitting the cap with both sides standing is a stalemate.
	MaxRounds = 100

	baseWeaponDamage     = 10
	weaponDamagePerSTR   = 2
	survivorCritChance   = 10
	zombieCritChance     = 5
	zombieHPPerDanger    = 10
	stressPerDamageDealt = 2 // divisor: stress gained is half the damage dealt
)

// Combatant is the shared capability of anything that can stand in a fight.
// Both survivors and zombie instances satisfy it.
type Combatant interface {
	DisplayName() string
	IsAlive() bool
	Health() int
	ApplyDamage(amount int)
}

var (
	_ Combatant = (*survivor.Survivor)(nil)
	_ Combatant = (*horde.Instance)(nil)
)

// Summary reports how an engagement ended. Exactly one of Victory, Defeat,
// and Stalemate is true.
type Summary struct {
	SurvivorsRemaining int
	ZombiesRemaining   int
	TotalRounds        int
	Victory            bool
	Defeat             bool
	Stalemate          bool
}

// WeaponDamage returns the placeholder weapon damage for a survivor until an
// equipment system lands: a flat base plus a strength bonus.
func WeaponDamage(s *survivor.Survivor) int {
	return baseWeaponDamage + weaponDamagePerSTR*s.Attributes.Strength
}

// ResolveCombat runs an engagement to completion and mutates both rosters'
// health in place.
//
// Zombies above danger level 1 get a flat health bonus before round one.
// Each round the survivors attack in shuffled order against uniformly random
// living targets, then the zombies do the same; combatants reaching zero
// health leave their roster immediately, so later attacks in the same phase
// cannot target them. The fight ends when a roster empties or after
// MaxRounds rounds.
//
// Precondition: src and logger must be non-nil.
// Postcondition: Exactly one of Victory, Defeat, Stalemate is set, except
// when both rosters start empty (all false, zero rounds).
func ResolveCombat(
	survivors []*survivor.Survivor,
	zombies []*horde.Instance,
	conditions chance.Conditions,
	danger int,
	src dice.Source,
	logger *zap.Logger,
) Summary {
	activeSurvivors := make([]*survivor.Survivor, 0, len(survivors))
	for _, s := range survivors {
		if s.IsAlive() {
			activeSurvivors = append(activeSurvivors, s)
		}
	}
	activeZombies := make([]*horde.Instance, 0, len(zombies))
	for _, z := range zombies {
		if z.IsAlive() {
			activeZombies = append(activeZombies, z)
		}
	}

	if danger > 1 {
		bonus := (danger - 1) * zombieHPPerDanger
		for _, z := range activeZombies {
			z.ScaleHealth(bonus)
		}
		logger.Debug("zombies toughened by danger",
			zap.Int("danger", danger),
			zap.Int("bonus_hp", bonus),
		)
	}

	logger.Info("combat engaged",
		zap.Int("survivors", len(activeSurvivors)),
		zap.Int("zombies", len(activeZombies)),
		zap.Int("danger", danger),
	)

	round := 0
	for len(activeSurvivors) > 0 && len(activeZombies) > 0 && round < MaxRounds {
		round++

		activeZombies = survivorPhase(activeSurvivors, activeZombies, conditions, src, logger)
		if len(activeZombies) == 0 {
			break
		}

		activeSurvivors = zombiePhase(activeZombies, activeSurvivors, conditions, src, logger)
		if len(activeSurvivors) == 0 {
			break
		}
	}

	summary := Summary{
		SurvivorsRemaining: len(activeSurvivors),
		ZombiesRemaining:   len(activeZombies),
		TotalRounds:        round,
		Victory:            len(activeSurvivors) > 0 && len(activeZombies) == 0,
		Defeat:             len(activeSurvivors) == 0 && len(activeZombies) > 0,
		Stalemate:          len(activeSurvivors) > 0 && len(activeZombies) > 0 && round >= MaxRounds,
	}
	logger.Info("combat ended",
		zap.Int("rounds", summary.TotalRounds),
		zap.Bool("victory", summary.Victory),
		zap.Bool("defeat", summary.Defeat),
		zap.Bool("stalemate", summary.Stalemate),
	)
	return summary
}

// survivorPhase has every living survivor attack one random living zombie.
// Returns the surviving zombie roster.
func survivorPhase(
	attackers []*survivor.Survivor,
	zombies []*horde.Instance,
	conditions chance.Conditions,
	src dice.Source,
	logger *zap.Logger,
) []*horde.Instance {
	dice.Shuffle(len(attackers), src, func(i, j int) {
		attackers[i], attackers[j] = attackers[j], attackers[i]
	})
	for _, attacker := range attackers {
		if !attacker.IsAlive() || len(zombies) == 0 {
			continue
		}
		idx := src.Intn(len(zombies))
		target := zombies[idx]

		hitChance := chance.SurvivorHitChance(attacker, target, conditions)
		hit, _ := dice.ChanceCheck(hitChance, src)
		if !hit {
			continue
		}
		damage := WeaponDamage(attacker)
		if crit, _ := dice.ChanceCheck(survivorCritChance, src); crit {
			damage *= 2
		}
		target.ApplyDamage(damage)
		logger.Debug("survivor hit",
			zap.String("attacker", attacker.DisplayName()),
			zap.String("target", target.DisplayName()),
			zap.Int("damage", damage),
			zap.Int("target_hp", target.Health()),
		)
		if !target.IsAlive() {
			zombies = append(zombies[:idx], zombies[idx+1:]...)
			logger.Info("zombie destroyed", zap.String("zombie", target.DisplayName()))
		}
	}
	return zombies
}

// zombiePhase has every living zombie attack one random living survivor.
// Struck survivors also gain stress equal to half the damage dealt, rounded
// up, whether or not the hit incapacitates them. Returns the surviving
// survivor roster.
func zombiePhase(
	attackers []*horde.Instance,
	targets []*survivor.Survivor,
	conditions chance.Conditions,
	src dice.Source,
	logger *zap.Logger,
) []*survivor.Survivor {
	dice.Shuffle(len(attackers), src, func(i, j int) {
		attackers[i], attackers[j] = attackers[j], attackers[i]
	})
	for _, attacker := range attackers {
		if !attacker.IsAlive() || len(targets) == 0 {
			continue
		}
		idx := src.Intn(len(targets))
		target := targets[idx]

		hitChance := chance.ZombieHitChance(attacker, target, conditions)
		hit, _ := dice.ChanceCheck(hitChance, src)
		if !hit {
			continue
		}
		damage := attacker.Damage
		if crit, _ := dice.ChanceCheck(zombieCritChance, src); crit {
			damage *= 2
		}
		target.ApplyDamage(damage)
		target.GainStress((damage + 1) / stressPerDamageDealt)
		logger.Debug("zombie hit",
			zap.String("attacker", attacker.DisplayName()),
			zap.String("target", target.DisplayName()),
			zap.Int("damage", damage),
			zap.Int("target_hp", target.Health()),
		)
		if !target.IsAlive() {
			targets = append(targets[:idx], targets[idx+1:]...)
			logger.Info("survivor incapacitated", zap.String("survivor", target.DisplayName()))
		}
	}
	return targets
}
