// Package dice provides the core randomness abstraction and the percentage
// check primitives shared by the deadroad resolution engine.
package dice

import "fmt"

// Source is the randomness provider for all rolls.
//
// Implementations MUST be safe for concurrent use unless documented otherwise.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// RollDie rolls a single die with the given number of sides.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a value in [1, sides], or an error if sides < 1.
func RollDie(sides int, src Source) (int, error) {
	if sides < 1 {
		return 0, fmt.Errorf("dice: die must have at least 1 side, got %d", sides)
	}
	return src.Intn(sides) + 1, nil
}

// RollD100 rolls the percentile die used by every chance check.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a value in [1, 100].
func RollD100(src Source) int {
	return src.Intn(100) + 1
}

// ChanceCheck performs a percentage-based success check: a d100 roll of
// percentage or below succeeds.
//
// The percentage argument is an input, not a computed chance: values outside
// [0, 100] are a configuration error, never clamped.
//
// Postcondition: Returns (roll <= percentage, nil), or a non-nil error when
// percentage is outside [0, 100]. ChanceCheck(0) never succeeds;
// ChanceCheck(100) always succeeds.
func ChanceCheck(percentage float64, src Source) (bool, error) {
	if percentage < 0 || percentage > 100 {
		return false, fmt.Errorf("dice: chance percentage must be in [0, 100], got %v", percentage)
	}
	return float64(RollD100(src)) <= percentage, nil
}

// Shuffle permutes n elements using the Fisher-Yates algorithm driven by src.
// Combat phases use this to randomize attack order without positional bias.
//
// Precondition: n >= 0; swap must be non-nil; src must be non-nil.
func Shuffle(n int, src Source, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		swap(i, j)
	}
}
