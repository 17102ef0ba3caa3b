package horde

import "github.com/google/uuid"

// Instance is a live zombie participating in one encounter.
//
// Invariant: CurrentHP >= 0; Alive == false iff CurrentHP == 0. Instances are
// never shared between encounters.
type Instance struct {
	// ID uniquely identifies this runtime instance, distinct from TemplateID.
	ID string
	// TemplateID is the source template's ID.
	TemplateID string
	// Name is copied from the template for display.
	Name string
	// Description is copied from the template.
	Description string
	// BaseHP is the maximum hit points, including any danger scaling applied
	// before round 1.
	BaseHP int
	// CurrentHP is the instance's current hit points.
	CurrentHP int
	// Damage is the flat damage dealt on a successful hit.
	Damage int
	// Speed is advisory and unused in turn order.
	Speed int
	// Defense reduces attacker hit chance.
	Defense int
	// Traits are advisory tags copied from the template.
	Traits []string
	// Alive is false once CurrentHP reaches zero.
	Alive bool
}

// Spawn creates a fresh live instance from a template with an independent HP
// pool and a unique instance ID.
//
// Precondition: tmpl must be non-nil and validated.
// Postcondition: CurrentHP equals tmpl.BaseHP; Alive is true; the template is
// not retained or mutated.
func Spawn(tmpl *Template) *Instance {
	traits := make([]string, len(tmpl.Traits))
	copy(traits, tmpl.Traits)
	return &Instance{
		ID:          uuid.NewString(),
		TemplateID:  tmpl.ID,
		Name:        tmpl.Name,
		Description: tmpl.Description,
		BaseHP:      tmpl.BaseHP,
		CurrentHP:   tmpl.BaseHP,
		Damage:      tmpl.Damage,
		Speed:       tmpl.Speed,
		Defense:     tmpl.Defense,
		Traits:      traits,
		Alive:       true,
	}
}

// DisplayName returns the instance's name for combat narration.
func (i *Instance) DisplayName() string { return i.Name }

// IsAlive reports whether the instance can still act and be targeted.
func (i *Instance) IsAlive() bool { return i.Alive }

// Health returns the instance's current hit points.
func (i *Instance) Health() int { return i.CurrentHP }

// TakeDamage reduces CurrentHP by amount, flooring at zero. Reaching zero
// marks the instance dead. No-op on dead instances.
//
// Postcondition: CurrentHP >= 0; Alive == false iff CurrentHP == 0.
func (i *Instance) TakeDamage(amount int) {
	if !i.Alive || amount <= 0 {
		return
	}
	i.CurrentHP -= amount
	if i.CurrentHP <= 0 {
		i.CurrentHP = 0
		i.Alive = false
	}
}

// ApplyDamage satisfies the combat capability interface; zombies take damage
// without mitigation.
func (i *Instance) ApplyDamage(amount int) { i.TakeDamage(amount) }

// ScaleHealth raises both BaseHP and CurrentHP by bonus. Used once per
// encounter to apply danger-level scaling before round 1.
//
// Precondition: bonus >= 0; must be called before any damage is dealt.
func (i *Instance) ScaleHealth(bonus int) {
	if bonus <= 0 {
		return
	}
	i.BaseHP += bonus
	i.CurrentHP += bonus
}

// HealthDescription returns a visible health state string suitable for
// examine output.
//
// Postcondition: Returns a non-empty string.
func (i *Instance) HealthDescription() string {
	if i.CurrentHP <= 0 {
		return "destroyed"
	}
	pct := float64(i.CurrentHP) / float64(i.BaseHP)
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.60:
		return "shambling steadily"
	case pct >= 0.30:
		return "badly mangled"
	default:
		return "barely holding together"
	}
}
