// Package world models the travel map: named locations with danger levels,
// hazards, connections, and harvestable resources.
package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/deadroad/internal/game/chance"
)

// Hazard names recognized on map nodes. Fog feeds directly into combat
// conditions; the others are reserved for future encounter effects.
const (
	HazardFog         = "Fog"
	HazardFire        = "Fire"
	HazardPlagueCloud = "Plague Cloud"
)

// Node is a single location on the map.
type Node struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// DangerLevel scales encounter difficulty, nominally 1 through 5.
	DangerLevel int `yaml:"danger_level"`
	// Hazard is an optional named environmental hazard.
	Hazard string `yaml:"hazard"`
	// ConnectedNodes lists IDs reachable from here.
	ConnectedNodes []string `yaml:"connected_nodes"`
	// PotentialQuests lists action IDs that can surface at this node.
	PotentialQuests []string `yaml:"potential_quests"`
	// AvailableResources maps resource name to the quantity scavengeable here.
	AvailableResources map[string]int `yaml:"available_resources"`

	// Visited tracks whether the party has been here this campaign.
	Visited bool `yaml:"-"`
}

// Validate checks the node for structural errors.
func (n *Node) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("node has no id")
	}
	if n.Name == "" {
		return fmt.Errorf("node %q has no name", n.ID)
	}
	if n.DangerLevel < 1 {
		return fmt.Errorf("node %q danger level %d, must be >= 1", n.ID, n.DangerLevel)
	}
	for res, qty := range n.AvailableResources {
		if qty < 0 {
			return fmt.Errorf("node %q has negative quantity %d of %q", n.ID, qty, res)
		}
	}
	return nil
}

// Conditions translates the node's hazard into combat environment flags.
func (n *Node) Conditions() chance.Conditions {
	conds := chance.Conditions{}
	if n.Hazard == HazardFog {
		conds[chance.Fog] = true
	}
	return conds
}

// LoadNodeFromBytes parses and validates a single node document.
func LoadNodeFromBytes(data []byte) (*Node, error) {
	var n Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("unmarshal node: %w", err)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return &n, nil
}

// LoadNodes reads every .yaml file in dir as one node each.
func LoadNodes(dir string) ([]*Node, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read node dir %s: %w", dir, err)
	}
	var out []*Node
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read node file %s: %w", entry.Name(), err)
		}
		n, err := LoadNodeFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("node file %s: %w", entry.Name(), err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Map indexes nodes by ID and answers connectivity queries.
type Map struct {
	nodes map[string]*Node
}

// NewMap builds a map from loaded nodes.
//
// Postcondition: Returns an error if any connection references an unknown
// node ID; a map with dangling edges is a content bug.
func NewMap(nodes []*Node) (*Map, error) {
	m := &Map{nodes: make(map[string]*Node, len(nodes))}
	for _, n := range nodes {
		if _, dup := m.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		m.nodes[n.ID] = n
	}
	for _, n := range nodes {
		for _, conn := range n.ConnectedNodes {
			if _, ok := m.nodes[conn]; !ok {
				return nil, fmt.Errorf("node %q connects to unknown node %q", n.ID, conn)
			}
		}
	}
	return m, nil
}

// Node returns the node for the given ID, if present.
func (m *Map) Node(id string) (*Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// Neighbors returns the nodes reachable from the given ID.
func (m *Map) Neighbors(id string) []*Node {
	n, ok := m.nodes[id]
	if !ok {
		return nil
	}
	out := make([]*Node, 0, len(n.ConnectedNodes))
	for _, conn := range n.ConnectedNodes {
		out = append(out, m.nodes[conn])
	}
	return out
}
