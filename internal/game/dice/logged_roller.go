package dice

import (
	"fmt"

	"go.uber.org/zap"
)

// Roller wraps a Source and logger to provide logged percentage checks.
// All checks are logged at debug level with percentage, roll, and result.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each check to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Source returns the underlying randomness source.
func (r *Roller) Source() Source {
	return r.src
}

// ChanceCheck performs a logged percentage check.
//
// Postcondition: Result logged at debug level; returns the check result or an
// error when percentage is outside [0, 100].
func (r *Roller) ChanceCheck(percentage float64) (bool, error) {
	if percentage < 0 || percentage > 100 {
		return false, fmt.Errorf("dice: chance percentage must be in [0, 100], got %v", percentage)
	}
	roll := RollD100(r.src)
	ok := float64(roll) <= percentage
	r.logger.Debug("chance check",
		zap.Float64("percentage", percentage),
		zap.Int("roll", roll),
		zap.Bool("success", ok),
	)
	return ok, nil
}
