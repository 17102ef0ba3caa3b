// Package campaign holds the explicit shared-state context threaded through
// every resolver call: the party roster, the resource ledger, and the day
// counter. There are no process-wide singletons.
package campaign

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/deadroad/internal/game/ledger"
	"github.com/cory-johannsen/deadroad/internal/game/survivor"
)

// Campaign is the mutable state owned by the campaign loop and passed by
// reference into resolution calls.
//
// Campaign is not safe for concurrent use; the host serializes all
// resolution calls (one action resolves to completion before the next).
type Campaign struct {
	Day       int
	Ledger    *ledger.Ledger
	survivors []*survivor.Survivor
	logger    *zap.Logger
}

// New creates a campaign starting on day 1 with an empty roster and ledger.
//
// Precondition: logger must be non-nil (use zap.NewNop() to discard).
func New(logger *zap.Logger) *Campaign {
	return &Campaign{
		Day:    1,
		Ledger: ledger.New(logger),
		logger: logger,
	}
}

// AddSurvivor appends a survivor to the roster.
//
// Precondition: s must be non-nil.
func (c *Campaign) AddSurvivor(s *survivor.Survivor) {
	if s == nil {
		panic("campaign.AddSurvivor: precondition violated: survivor must be non-nil")
	}
	c.survivors = append(c.survivors, s)
	c.logger.Info("survivor joined",
		zap.String("name", s.Name),
		zap.Int("max_hp", s.MaxHP),
		zap.Int("max_stress", s.MaxStress),
	)
}

// Survivors returns the full roster, dead members included.
func (c *Campaign) Survivors() []*survivor.Survivor {
	return c.survivors
}

// LivingSurvivors returns the roster members still alive.
//
// Postcondition: Every returned survivor has Alive == true.
func (c *Campaign) LivingSurvivors() []*survivor.Survivor {
	var alive []*survivor.Survivor
	for _, s := range c.survivors {
		if s.Alive {
			alive = append(alive, s)
		}
	}
	return alive
}

// AdvanceDay increments the day counter.
func (c *Campaign) AdvanceDay() {
	c.Day++
	c.logger.Info("day advanced", zap.Int("day", c.Day))
}
