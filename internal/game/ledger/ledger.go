// Package ledger implements the shared keyed resource store debited and
// credited by the resolution engine.
package ledger

import "go.uber.org/zap"

// Ledger maps resource names to non-negative quantities. Unknown keys are
// created at zero on first write; the engine never assumes a fixed key set.
//
// Invariant: every stored quantity is >= 0.
//
// Ledger is not safe for concurrent use; the host serializes resolution calls.
type Ledger struct {
	resources map[string]int
	logger    *zap.Logger
}

// New returns an empty ledger.
//
// Precondition: logger must be non-nil (use zap.NewNop() to discard).
func New(logger *zap.Logger) *Ledger {
	return &Ledger{
		resources: make(map[string]int),
		logger:    logger,
	}
}

// Add credits quantity of the named resource, creating the key at zero first
// if absent.
//
// Precondition: quantity >= 0.
// Postcondition: Quantity(name) increases by quantity.
func (l *Ledger) Add(name string, quantity int) {
	if quantity < 0 {
		panic("ledger.Add: precondition violated: quantity must be >= 0")
	}
	l.resources[name] += quantity
	l.logger.Debug("resource added",
		zap.String("resource", name),
		zap.Int("quantity", quantity),
		zap.Int("total", l.resources[name]),
	)
}

// Remove debits quantity of the named resource if enough is present.
//
// Postcondition: Returns true and debits on sufficiency; returns false and
// leaves the ledger unchanged otherwise. No entry ever goes negative.
func (l *Ledger) Remove(name string, quantity int) bool {
	if quantity < 0 {
		panic("ledger.Remove: precondition violated: quantity must be >= 0")
	}
	if l.resources[name] < quantity {
		l.logger.Debug("resource removal refused",
			zap.String("resource", name),
			zap.Int("requested", quantity),
			zap.Int("available", l.resources[name]),
		)
		return false
	}
	l.resources[name] -= quantity
	l.logger.Debug("resource removed",
		zap.String("resource", name),
		zap.Int("quantity", quantity),
		zap.Int("total", l.resources[name]),
	)
	return true
}

// Quantity returns the current amount of the named resource (0 if absent).
func (l *Ledger) Quantity(name string) int {
	return l.resources[name]
}

// Snapshot returns a copy of all resource quantities.
//
// Postcondition: Mutating the returned map does not affect the ledger.
func (l *Ledger) Snapshot() map[string]int {
	out := make(map[string]int, len(l.resources))
	for k, v := range l.resources {
		out[k] = v
	}
	return out
}

// Restore replaces the ledger contents with the given quantities.
//
// Precondition: every quantity in resources must be >= 0.
func (l *Ledger) Restore(resources map[string]int) {
	l.resources = make(map[string]int, len(resources))
	for k, v := range resources {
		if v < 0 {
			panic("ledger.Restore: precondition violated: quantities must be >= 0")
		}
		l.resources[k] = v
	}
}
