// Package decision presents branching choices, gates them on prerequisites,
// and resolves the selected one with the same roll and tier rules as quest
// resolution. Effects are returned as data; the caller applies them.
package decision

// Prerequisites gates a choice's availability. The skill block is satisfied
// when any participant meets any one listed skill threshold; the attribute
// block likewise. A choice with both blocks requires both satisfied,
// possibly by different participants. The loose any-of matching is the
// intended behavior: choices unlock off the party's best member, they do not
// require a single qualified specialist.
type Prerequisites struct {
	Skills     map[string]int `yaml:"skills"`
	Attributes map[string]int `yaml:"attributes"`
	// Script names a Lua precondition function evaluated against the party
	// in addition to the threshold blocks.
	Script string `yaml:"script"`
}

// Empty reports whether no gate is configured at all.
func (p Prerequisites) Empty() bool {
	return len(p.Skills) == 0 && len(p.Attributes) == 0 && p.Script == ""
}

// Effects is the bundle attached to one outcome branch of a choice. The
// engine returns it verbatim; interpreting and applying the keys is the
// caller's job.
type Effects struct {
	ResourceGain          map[string]int `yaml:"resource_gain"`
	ResourceLoss          map[string]int `yaml:"resource_loss"`
	HPLossPerSurvivor     int            `yaml:"hp_loss_per_survivor"`
	StressGainPerSurvivor int            `yaml:"stress_gain_per_survivor"`
	RecruitSurvivor       string         `yaml:"recruit_survivor"`
	UnlocksQuest          string         `yaml:"unlocks_new_quest"`
	Info                  string         `yaml:"info"`
}

// Choice is a single decision option.
type Choice struct {
	Text        string  `yaml:"text"`
	Description string  `yaml:"description"`
	BaseChance  float64 `yaml:"base_success_chance"`

	Prerequisites Prerequisites `yaml:"prerequisites"`

	OnSuccess Effects `yaml:"effects_on_success"`
	OnFailure Effects `yaml:"effects_on_failure"`

	// KnownConsequences is the player-facing summary shown next to the
	// option, telling them what they are risking before they pick it.
	KnownConsequences string `yaml:"known_consequences_text"`
}
