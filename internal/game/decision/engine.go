package decision

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deadroad/internal/game/chance"
	"github.com/cory-johannsen/deadroad/internal/game/dice"
	"github.com/cory-johannsen/deadroad/internal/game/event"
	"github.com/cory-johannsen/deadroad/internal/game/prompt"
	"github.com/cory-johannsen/deadroad/internal/game/survivor"
	"github.com/cory-johannsen/deadroad/internal/scripting"
)

// Per-participant bonuses for exceeding a prerequisite threshold.
const (
	skillBonusPerLevelOver = 5.0
	attrBonusPerPointOver  = 2.0
)

// ScriptGate evaluates named Lua precondition functions against a party
// snapshot. scripting.Evaluator satisfies it.
type ScriptGate interface {
	EvalChoicePrecondition(fn string, participants []scripting.SurvivorInfo) (bool, error)
}

// Engine filters, prices, presents, and resolves choices.
type Engine struct {
	prompter prompt.Prompter
	src      dice.Source
	scripts  ScriptGate
	logger   *zap.Logger
}

// NewEngine wires the engine's collaborators.
//
// Precondition: prompter, src, and logger must be non-nil. scripts may be
// nil, in which case script-gated choices are never available.
func NewEngine(prompter prompt.Prompter, src dice.Source, scripts ScriptGate, logger *zap.Logger) *Engine {
	if prompter == nil || src == nil || logger == nil {
		panic("decision.NewEngine: precondition violated: prompter, src, and logger must be non-nil")
	}
	return &Engine{prompter: prompter, src: src, scripts: scripts, logger: logger}
}

// Available reports whether the party unlocks the choice: the skill block is
// met if any participant reaches any one listed skill threshold, the
// attribute block likewise, and both blocks must hold when both are present.
// A script gate must also approve when configured.
func (e *Engine) Available(c *Choice, participants []*survivor.Survivor) bool {
	if len(c.Prerequisites.Skills) > 0 && !anySkillMet(c.Prerequisites.Skills, participants) {
		return false
	}
	if len(c.Prerequisites.Attributes) > 0 && !anyAttributeMet(c.Prerequisites.Attributes, participants) {
		return false
	}
	if fn := c.Prerequisites.Script; fn != "" {
		if e.scripts == nil {
			return false
		}
		ok, err := e.scripts.EvalChoicePrecondition(fn, snapshot(participants))
		if err != nil {
			e.logger.Warn("choice script gate failed, locking choice",
				zap.String("choice", c.Text),
				zap.String("script", fn),
				zap.Error(err),
			)
			return false
		}
		return ok
	}
	return true
}

func anySkillMet(required map[string]int, participants []*survivor.Survivor) bool {
	for _, s := range participants {
		for name, level := range required {
			if s.SkillLevel(name) >= level {
				return true
			}
		}
	}
	return false
}

func anyAttributeMet(required map[string]int, participants []*survivor.Survivor) bool {
	for _, s := range participants {
		for code, value := range required {
			if s.Attributes.Get(code) >= value {
				return true
			}
		}
	}
	return false
}

// snapshot converts live survivors to the flat structs the script sandbox
// accepts.
func snapshot(participants []*survivor.Survivor) []scripting.SurvivorInfo {
	out := make([]scripting.SurvivorInfo, len(participants))
	for i, s := range participants {
		attrs := map[string]int{
			survivor.AttrStrength:     s.Attributes.Strength,
			survivor.AttrAgility:      s.Attributes.Agility,
			survivor.AttrIntellect:    s.Attributes.Intellect,
			survivor.AttrPerception:   s.Attributes.Perception,
			survivor.AttrCharisma:     s.Attributes.Charisma,
			survivor.AttrConstitution: s.Attributes.Constitution,
			survivor.AttrSanity:       s.Attributes.Sanity,
		}
		skills := make(map[string]int, len(s.Skills))
		for name, lvl := range s.Skills {
			skills[name] = lvl
		}
		traits := make([]string, 0, len(s.Traits))
		for name := range s.Traits {
			traits = append(traits, name)
		}
		out[i] = scripting.SurvivorInfo{
			Name:       s.Name,
			Attributes: attrs,
			Skills:     skills,
			Traits:     traits,
			Injured:    s.IsInjured(),
			Stressed:   s.IsStressed(),
		}
	}
	return out
}

// ChoiceChance computes the party-specific success chance for a choice:
// the base percentage plus, for every participant and every prerequisite
// entry that participant individually meets, a bonus scaled by how far they
// exceed the threshold. Unlike group-action resolution this rewards
// exceeding prerequisites per participant.
//
// Postcondition: Result is in [0,100].
func ChoiceChance(c *Choice, participants []*survivor.Survivor) float64 {
	total := c.BaseChance
	for _, s := range participants {
		for name, req := range c.Prerequisites.Skills {
			if lvl := s.SkillLevel(name); lvl >= req {
				total += float64(lvl-req+1) * skillBonusPerLevelOver
			}
		}
		for code, req := range c.Prerequisites.Attributes {
			if val := s.Attributes.Get(code); val >= req {
				total += float64(val-req+1) * attrBonusPerPointOver
			}
		}
	}
	return chance.Clamp(total)
}

// Resolution is what a decision produced: the tier, the selected choice (nil
// when no choice was available), and the effect bundle for the caller to
// apply.
type Resolution struct {
	Outcome event.Outcome
	Choice  *Choice
	Effects Effects
	Chance  float64
	Roll    int
}

// PresentAndResolve filters choices to the available ones, presents them
// through the prompter, rolls the selected choice, and returns the matching
// effect bundle verbatim. It never applies effects itself.
//
// When no choice survives filtering the decision degrades to a forced
// failure with a diagnostic bundle; that is a defined fallback, not an
// error. Prompter failures propagate.
func (e *Engine) PresentAndResolve(promptText string, choices []*Choice, participants []*survivor.Survivor) (Resolution, error) {
	available := make([]*Choice, 0, len(choices))
	chances := make([]float64, 0, len(choices))
	options := make([]string, 0, len(choices))
	for _, c := range choices {
		if !e.Available(c, participants) {
			continue
		}
		pct := ChoiceChance(c, participants)
		available = append(available, c)
		chances = append(chances, pct)
		options = append(options, fmt.Sprintf("%s (%.0f%% chance) - %s", c.Text, pct, c.KnownConsequences))
	}

	if len(available) == 0 {
		e.logger.Info("no viable choices, forced failure", zap.String("prompt", promptText))
		return Resolution{
			Outcome: event.Failure,
			Effects: Effects{Info: "No viable choices, forced to wait."},
		}, nil
	}

	idx, err := e.prompter.PromptForChoice(promptText, options)
	if err != nil {
		return Resolution{}, fmt.Errorf("choice selection: %w", err)
	}
	if idx < 0 || idx >= len(available) {
		return Resolution{}, fmt.Errorf("prompter selected index %d of %d options", idx, len(available))
	}

	selected := available[idx]
	pct := chances[idx]
	roll := dice.RollD100(e.src)
	outcome := event.Classify(roll, pct)

	e.logger.Info("decision resolved",
		zap.String("choice", selected.Text),
		zap.Float64("chance", pct),
		zap.Int("roll", roll),
		zap.String("outcome", outcome.String()),
	)

	effects := selected.OnFailure
	if outcome.Succeeded() {
		effects = selected.OnSuccess
	}
	return Resolution{
		Outcome: outcome,
		Choice:  selected,
		Effects: effects,
		Chance:  pct,
		Roll:    roll,
	}, nil
}
