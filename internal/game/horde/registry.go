package horde

import "fmt"

// Registry provides lookup of zombie templates by ID and spawns fresh
// encounter instances from them.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry returns an empty Registry.
//
// Postcondition: Returns a non-nil *Registry ready to accept registrations.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// Register adds a template to the registry.
//
// Precondition: tmpl must be non-nil with a non-empty ID.
// Postcondition: tmpl is retrievable via Template(tmpl.ID); last registration wins.
func (r *Registry) Register(tmpl *Template) {
	if tmpl == nil {
		panic("horde.Registry.Register: precondition violated: template must be non-nil")
	}
	if tmpl.ID == "" {
		panic("horde.Registry.Register: precondition violated: template ID must be non-empty")
	}
	r.templates[tmpl.ID] = tmpl
}

// Template returns the template for the given ID, if registered.
func (r *Registry) Template(id string) (*Template, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// SpawnByID creates count fresh instances of the named template.
//
// Precondition: count >= 1.
// Postcondition: Returns count independent instances, or an error if the
// template is unknown.
func (r *Registry) SpawnByID(id string, count int) ([]*Instance, error) {
	tmpl, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("unknown zombie template %q", id)
	}
	if count < 1 {
		return nil, fmt.Errorf("spawn count must be >= 1, got %d", count)
	}
	out := make([]*Instance, count)
	for i := range out {
		out[i] = Spawn(tmpl)
	}
	return out, nil
}
