package event

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deadroad/internal/game/chance"
	"github.com/cory-johannsen/deadroad/internal/game/crafting"
	"github.com/cory-johannsen/deadroad/internal/game/dice"
	"github.com/cory-johannsen/deadroad/internal/game/ledger"
	"github.com/cory-johannsen/deadroad/internal/game/ruleset"
	"github.com/cory-johannsen/deadroad/internal/game/survivor"
)

// Reward and consequence keys interpreted by name.
const (
	rewardExperience    = "Experience"
	craftedSuffix       = "_crafted"
	consequenceHPLoss   = "HP_loss_per_survivor"
	consequenceStress   = "Stress_gain_per_survivor"
	consequenceInjury   = "Injury_chance"
	successStressRelief = 10
	failureStressGain   = 15
)

// Result reports how a resolution went.
type Result struct {
	Outcome Outcome
	Chance  float64
	Roll    int
}

// Resolver applies quest and base-job outcomes to participants and the
// shared ledger.
type Resolver struct {
	ledger  *ledger.Ledger
	crafter *crafting.Crafter
	src     dice.Source
	logger  *zap.Logger
}

// NewResolver wires the resolver's collaborators.
//
// Precondition: all arguments must be non-nil.
func NewResolver(led *ledger.Ledger, crafter *crafting.Crafter, src dice.Source, logger *zap.Logger) *Resolver {
	if led == nil || crafter == nil || src == nil || logger == nil {
		panic("event.NewResolver: precondition violated: all collaborators must be non-nil")
	}
	return &Resolver{ledger: led, crafter: crafter, src: src, logger: logger}
}

// Resolve rolls once for the whole group and applies the outcome tier's
// rewards or consequences in place.
//
// On success every reward entry is applied by key convention and every
// participant sheds stress. On failure the action's consequences apply, and
// every participant additionally gains a flat 15 stress that stacks with any
// stress consequence. Critical tiers double every numeric amount.
//
// Precondition: action must be non-nil and structurally valid; participants
// must be non-empty.
// Postcondition: Returns an error only for contract violations, before any
// participant or ledger mutation. Normal failure is a Result, not an error.
func (r *Resolver) Resolve(participants []*survivor.Survivor, action *ruleset.Action, danger int) (Result, error) {
	if action == nil {
		return Result{}, fmt.Errorf("resolve: action must be non-nil")
	}
	if err := action.Validate(); err != nil {
		return Result{}, fmt.Errorf("resolve %q: %w", action.ID, err)
	}
	if len(participants) == 0 {
		return Result{}, fmt.Errorf("resolve %q: no participants", action.ID)
	}

	successChance := chance.ActionSuccessChance(participants, action, danger)
	roll := dice.RollD100(r.src)
	outcome := Classify(roll, successChance)

	r.logger.Info("action resolved",
		zap.String("action", action.ID),
		zap.String("kind", action.Kind.String()),
		zap.Float64("chance", successChance),
		zap.Int("roll", roll),
		zap.String("outcome", outcome.String()),
	)

	if outcome.Succeeded() {
		r.applyRewards(participants, action, outcome == CriticalSuccess)
	} else {
		r.applyConsequences(participants, action, outcome == CriticalFailure)
	}
	return Result{Outcome: outcome, Chance: successChance, Roll: roll}, nil
}

func (r *Resolver) applyRewards(participants []*survivor.Survivor, action *ruleset.Action, critical bool) {
	mult := 1
	if critical {
		mult = 2
	}
	// Crafted rewards consume dice rolls, so map order would leak into the
	// roll sequence. Apply rewards in sorted key order.
	for _, res := range sortedKeys(action.Rewards) {
		qty := action.Rewards[res]
		switch {
		case res == rewardExperience:
			// No experience system wired in yet; surface the signal in the log.
			for _, s := range participants {
				r.logger.Info("experience gained",
					zap.String("survivor", s.Name),
					zap.Int("amount", qty),
				)
			}
		case strings.HasSuffix(res, craftedSuffix):
			r.craftReward(participants, strings.TrimSuffix(res, craftedSuffix), qty*mult)
		default:
			r.ledger.Add(res, qty*mult)
		}
	}
	for _, s := range participants {
		s.ReduceStress(successStressRelief * mult)
	}
}

// craftReward routes a crafted reward through the crafting primitive so the
// recipe's inputs are actually consumed. If the recipe is unknown or the
// ledger cannot afford the inputs, the reward degrades to a raw grant.
func (r *Resolver) craftReward(participants []*survivor.Survivor, itemName string, qty int) {
	crafter := bestMechanic(participants)
	res, err := r.crafter.Craft(r.ledger, itemName, qty, crafter, r.src)
	if err != nil || (!res.Success && len(res.Consumed) == 0) {
		r.logger.Info("craft reward fell back to raw grant",
			zap.String("item", itemName),
			zap.Int("quantity", qty),
		)
		r.ledger.Add(itemName, qty)
		return
	}
	// A failed roll after consumption wastes the inputs; the reward is lost.
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// bestMechanic picks the living participant with the highest Mechanics level.
func bestMechanic(participants []*survivor.Survivor) *survivor.Survivor {
	var best *survivor.Survivor
	for _, s := range participants {
		if !s.Alive {
			continue
		}
		if best == nil || s.SkillLevel("Mechanics") > best.SkillLevel("Mechanics") {
			best = s
		}
	}
	return best
}

func (r *Resolver) applyConsequences(participants []*survivor.Survivor, action *ruleset.Action, critical bool) {
	mult := 1.0
	if critical {
		mult = 2.0
	}
	// Injury checks consume dice rolls and HP loss can kill before a stress
	// consequence lands, so consequence order must be stable too.
	for _, effect := range sortedKeys(action.FailConsequences) {
		value := action.FailConsequences[effect]
		switch effect {
		case consequenceHPLoss:
			amount := int(math.Round(value * mult))
			for _, s := range participants {
				s.TakeDamage(amount)
			}
		case consequenceStress:
			amount := int(math.Round(value * mult))
			for _, s := range participants {
				s.GainStress(amount)
			}
		case consequenceInjury:
			if value <= 0 {
				continue
			}
			injuryChance := chance.Clamp(value * mult)
			for _, s := range participants {
				injured, err := dice.ChanceCheck(injuryChance, r.src)
				if err != nil {
					continue
				}
				if injured {
					s.Injured = true
					r.logger.Info("survivor injured", zap.String("survivor", s.Name))
				}
			}
		default:
			r.logger.Warn("unknown consequence key ignored",
				zap.String("action", action.ID),
				zap.String("consequence", effect),
			)
		}
	}
	// Flat failure stress applies on top of any stress consequence above.
	for _, s := range participants {
		s.GainStress(int(failureStressGain * mult))
	}
}
