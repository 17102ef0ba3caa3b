// Package survivor defines the party-member domain model: attributes, skills,
// traits, inventory, and the health/stress pools mutated by the resolvers.
package survivor

// Attribute codes used by content files and prerequisite checks.
const (
	AttrStrength     = "STR"
	AttrAgility      = "AGI"
	AttrIntellect    = "INT"
	AttrPerception   = "PER"
	AttrCharisma     = "CHR"
	AttrConstitution = "CON"
	AttrSanity       = "SAN"
)

// baseMaxHP and baseMaxStress are the pool bases before attribute bonuses.
const (
	baseMaxHP     = 40
	baseMaxStress = 40
	poolPerPoint  = 10
)

// Attributes holds the seven core attribute values for a survivor.
//
// Invariant: every value is in [1, 10] after construction.
type Attributes struct {
	Strength     int
	Agility      int
	Intellect    int
	Perception   int
	Charisma     int
	Constitution int
	Sanity       int
}

// Get returns the attribute value for the given code, or 0 for unknown codes.
func (a Attributes) Get(code string) int {
	switch code {
	case AttrStrength:
		return a.Strength
	case AttrAgility:
		return a.Agility
	case AttrIntellect:
		return a.Intellect
	case AttrPerception:
		return a.Perception
	case AttrCharisma:
		return a.Charisma
	case AttrConstitution:
		return a.Constitution
	case AttrSanity:
		return a.Sanity
	default:
		return 0
	}
}

func clampAttr(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

// clamp forces every attribute into [1, 10].
func (a Attributes) clamp() Attributes {
	return Attributes{
		Strength:     clampAttr(a.Strength),
		Agility:      clampAttr(a.Agility),
		Intellect:    clampAttr(a.Intellect),
		Perception:   clampAttr(a.Perception),
		Charisma:     clampAttr(a.Charisma),
		Constitution: clampAttr(a.Constitution),
		Sanity:       clampAttr(a.Sanity),
	}
}

// Survivor represents a party member's live state.
//
// Invariant: 0 <= CurrentHP <= MaxHP; 0 <= CurrentStress <= MaxStress.
// Invariant: Alive == false iff CurrentHP == 0. Once Alive is false, all
// mutation methods are no-ops (dead actors are inert, not invalid).
type Survivor struct {
	Name       string
	Attributes Attributes

	// Skills maps skill name to level. Levels are plain non-negative ints
	// with no artificial ceiling; bonuses scale linearly without an upper
	// clamp. Gameplay content currently tops out at level 5.
	Skills map[string]int
	// Traits is the set of trait names held by this survivor.
	Traits map[string]bool
	// Inventory maps item name to quantity in this survivor's personal pack.
	Inventory map[string]int

	MaxHP         int
	CurrentHP     int
	MaxStress     int
	CurrentStress int

	Alive bool
	// Injured is set explicitly by failed-action injury checks. IsInjured
	// also derives from low health regardless of this flag.
	Injured bool
}

// New creates a living survivor with full health and zero stress.
// Attributes are clamped into [1, 10].
//
// Postcondition: MaxHP == 40 + 10*CON; MaxStress == 40 + 10*SAN;
// CurrentHP == MaxHP; CurrentStress == 0; Alive == true.
func New(name string, attrs Attributes) *Survivor {
	attrs = attrs.clamp()
	maxHP := baseMaxHP + poolPerPoint*attrs.Constitution
	maxStress := baseMaxStress + poolPerPoint*attrs.Sanity
	return &Survivor{
		Name:          name,
		Attributes:    attrs,
		Skills:        make(map[string]int),
		Traits:        make(map[string]bool),
		Inventory:     make(map[string]int),
		MaxHP:         maxHP,
		CurrentHP:     maxHP,
		MaxStress:     maxStress,
		CurrentStress: 0,
		Alive:         true,
	}
}

// DisplayName returns the survivor's name for combat narration.
func (s *Survivor) DisplayName() string { return s.Name }

// IsAlive reports whether the survivor can still act and be mutated.
func (s *Survivor) IsAlive() bool { return s.Alive }

// Health returns the survivor's current hit points.
func (s *Survivor) Health() int { return s.CurrentHP }

// ApplyDamage satisfies the combat capability interface; survivor damage is
// always routed through Constitution mitigation.
func (s *Survivor) ApplyDamage(amount int) { s.TakeDamage(amount) }

// IsInjured reports whether the survivor counts as injured: either flagged by
// an injury check or below half of maximum health.
func (s *Survivor) IsInjured() bool {
	return s.Injured || 2*s.CurrentHP < s.MaxHP
}

// IsStressed reports whether current stress exceeds 75% of maximum.
func (s *Survivor) IsStressed() bool {
	return 4*s.CurrentStress > 3*s.MaxStress
}

// SkillLevel returns the survivor's level in the named skill, 0 if unlearned.
func (s *Survivor) SkillLevel(name string) int {
	return s.Skills[name]
}

// LearnSkill sets the survivor's level in the named skill.
//
// Precondition: level >= 0; name must be non-empty.
func (s *Survivor) LearnSkill(name string, level int) {
	if level < 0 {
		level = 0
	}
	s.Skills[name] = level
}

// AddTrait adds the named trait to the survivor's trait set.
func (s *Survivor) AddTrait(name string) {
	s.Traits[name] = true
}

// HasTrait reports whether the survivor holds the named trait.
func (s *Survivor) HasTrait(name string) bool {
	return s.Traits[name]
}

// AddItem adds quantity of the named item to the survivor's inventory.
//
// Precondition: quantity >= 0.
func (s *Survivor) AddItem(name string, quantity int) {
	if quantity <= 0 {
		return
	}
	s.Inventory[name] += quantity
}

// RemoveItem removes quantity of the named item, reporting whether enough was
// present. Insufficient quantity leaves the inventory unchanged.
func (s *Survivor) RemoveItem(name string, quantity int) bool {
	if s.Inventory[name] < quantity {
		return false
	}
	s.Inventory[name] -= quantity
	return true
}

// mitigate reduces a raw amount by pct percent, rounding the survivor-facing
// result up so a nonzero hit always costs at least one point.
func mitigate(raw, pct int) int {
	if raw <= 0 {
		return 0
	}
	reduced := float64(raw) * (1 - float64(pct)/100)
	out := int(reduced)
	if reduced > float64(out) {
		out++
	}
	return out
}

// conReductionPct returns the damage-reduction percentage from Constitution:
// 5% per point, capped at 50%.
func (s *Survivor) conReductionPct() int {
	pct := s.Attributes.Constitution * 5
	if pct > 50 {
		pct = 50
	}
	return pct
}

// sanMitigationPct returns the stress-mitigation percentage from Sanity:
// 5% per point, capped at 50%.
func (s *Survivor) sanMitigationPct() int {
	pct := s.Attributes.Sanity * 5
	if pct > 50 {
		pct = 50
	}
	return pct
}

// TakeDamage applies raw damage after Constitution reduction. No-op on dead
// survivors. Reaching zero health marks the survivor dead.
//
// Postcondition: CurrentHP >= 0; Alive == false iff CurrentHP == 0.
func (s *Survivor) TakeDamage(raw int) {
	if !s.Alive || raw <= 0 {
		return
	}
	actual := mitigate(raw, s.conReductionPct())
	s.CurrentHP -= actual
	if s.CurrentHP <= 0 {
		s.CurrentHP = 0
		s.Alive = false
	}
}

// GainStress applies raw stress after Sanity mitigation, capping at MaxStress.
// No-op on dead survivors.
//
// Postcondition: CurrentStress <= MaxStress.
func (s *Survivor) GainStress(raw int) {
	if !s.Alive || raw <= 0 {
		return
	}
	s.CurrentStress += mitigate(raw, s.sanMitigationPct())
	if s.CurrentStress > s.MaxStress {
		s.CurrentStress = s.MaxStress
	}
}

// ReduceStress lowers current stress by amount, flooring at zero. No-op on
// dead survivors.
func (s *Survivor) ReduceStress(amount int) {
	if !s.Alive || amount <= 0 {
		return
	}
	s.CurrentStress -= amount
	if s.CurrentStress < 0 {
		s.CurrentStress = 0
	}
}

// Heal restores hit points up to MaxHP. No-op on dead survivors; revival is
// not implemented.
func (s *Survivor) Heal(amount int) {
	if !s.Alive || amount <= 0 {
		return
	}
	s.CurrentHP += amount
	if s.CurrentHP > s.MaxHP {
		s.CurrentHP = s.MaxHP
	}
}
