package ruleset

// Registry provides lookup of loaded content by ID or name.
type Registry struct {
	actions map[string]*Action
	skills  map[string]*Skill
	traits  map[string]*Trait
}

// NewRegistry returns an empty Registry.
//
// Postcondition: Returns a non-nil *Registry ready to accept registrations.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]*Action),
		skills:  make(map[string]*Skill),
		traits:  make(map[string]*Trait),
	}
}

// RegisterAction adds an action descriptor to the registry.
//
// Precondition: a must be non-nil with a non-empty ID.
// Postcondition: a is retrievable via Action(a.ID); last registration wins.
func (r *Registry) RegisterAction(a *Action) {
	if a == nil {
		panic("Registry.RegisterAction: precondition violated: action must be non-nil")
	}
	if a.ID == "" {
		panic("Registry.RegisterAction: precondition violated: action ID must be non-empty")
	}
	r.actions[a.ID] = a
}

// Action returns the action descriptor for the given ID, if registered.
func (r *Registry) Action(id string) (*Action, bool) {
	a, ok := r.actions[id]
	return a, ok
}

// Actions returns all registered actions of the given kind.
func (r *Registry) Actions(kind ActionKind) []*Action {
	var out []*Action
	for _, a := range r.actions {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// RegisterSkill adds a skill to the registry.
//
// Precondition: s must be non-nil with a non-empty Name.
func (r *Registry) RegisterSkill(s *Skill) {
	if s == nil || s.Name == "" {
		panic("Registry.RegisterSkill: precondition violated: skill must be non-nil with a name")
	}
	r.skills[s.Name] = s
}

// Skill returns the skill with the given name, if registered.
func (r *Registry) Skill(name string) (*Skill, bool) {
	s, ok := r.skills[name]
	return s, ok
}

// RegisterTrait adds a trait to the registry.
//
// Precondition: t must be non-nil with a non-empty Name.
func (r *Registry) RegisterTrait(t *Trait) {
	if t == nil || t.Name == "" {
		panic("Registry.RegisterTrait: precondition violated: trait must be non-nil with a name")
	}
	r.traits[t.Name] = t
}

// Trait returns the trait with the given name, if registered.
func (r *Registry) Trait(name string) (*Trait, bool) {
	t, ok := r.traits[name]
	return t, ok
}
