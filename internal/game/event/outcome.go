// Package event resolves quests and base jobs: one group roll, a four-tier
// outcome, and direct application of rewards or consequences to the
// participants and the shared ledger.
package event

// Roll thresholds for the critical tiers.
const (
	CriticalSuccessThreshold = 95
	CriticalFailureThreshold = 5
)

// Outcome is the four-tier classification of a resolution roll.
type Outcome int

const (
	CriticalFailure Outcome = iota
	Failure
	Success
	CriticalSuccess
)

// String returns the outcome's display name.
func (o Outcome) String() string {
	switch o {
	case CriticalFailure:
		return "critical failure"
	case Failure:
		return "failure"
	case Success:
		return "success"
	case CriticalSuccess:
		return "critical success"
	default:
		return "unknown"
	}
}

// Succeeded reports whether the outcome is one of the success tiers.
func (o Outcome) Succeeded() bool {
	return o == Success || o == CriticalSuccess
}

// Critical reports whether the outcome is one of the critical tiers.
func (o Outcome) Critical() bool {
	return o == CriticalSuccess || o == CriticalFailure
}

// Classify maps a d100 roll against a success chance to an outcome tier.
//
// Success iff roll <= chance. A successful roll of 95 or higher is a critical
// success; a failed roll of 5 or lower is a critical failure. The critical
// tiers are therefore strict subsets of their parent tiers.
//
// Precondition: roll in [1,100]; chance in [0,100].
func Classify(roll int, chance float64) Outcome {
	if roll < 1 || roll > 100 {
		panic("event.Classify: precondition violated: roll must be in [1,100]")
	}
	if chance < 0 || chance > 100 {
		panic("event.Classify: precondition violated: chance must be in [0,100]")
	}
	succeeded := float64(roll) <= chance
	switch {
	case succeeded && roll >= CriticalSuccessThreshold:
		return CriticalSuccess
	case succeeded:
		return Success
	case roll <= CriticalFailureThreshold:
		return CriticalFailure
	default:
		return Failure
	}
}
