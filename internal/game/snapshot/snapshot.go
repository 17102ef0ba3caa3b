// Package snapshot flattens live campaign state into plain records for
// persistence and reconstructs equivalent live objects from them. The
// round-trip is exact for every persisted field.
package snapshot

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deadroad/internal/game/campaign"
	"github.com/cory-johannsen/deadroad/internal/game/survivor"
)

// SurvivorRecord is the flat persisted form of a survivor.
type SurvivorRecord struct {
	Name          string         `yaml:"name" json:"name"`
	Attributes    map[string]int `yaml:"attributes" json:"attributes"`
	Skills        map[string]int `yaml:"skills" json:"skills"`
	Traits        []string       `yaml:"traits" json:"traits"`
	Inventory     map[string]int `yaml:"inventory" json:"inventory"`
	MaxHP         int            `yaml:"max_hp" json:"max_hp"`
	CurrentHP     int            `yaml:"current_hp" json:"current_hp"`
	MaxStress     int            `yaml:"max_stress" json:"max_stress"`
	CurrentStress int            `yaml:"current_stress" json:"current_stress"`
	Alive         bool           `yaml:"alive" json:"alive"`
	Injured       bool           `yaml:"injured" json:"injured"`
}

// CampaignRecord is the flat persisted form of a whole campaign.
type CampaignRecord struct {
	Day       int              `yaml:"day" json:"day"`
	Resources map[string]int   `yaml:"resources" json:"resources"`
	Survivors []SurvivorRecord `yaml:"survivors" json:"survivors"`
}

// FromSurvivor captures a survivor's full persisted state.
func FromSurvivor(s *survivor.Survivor) SurvivorRecord {
	attrs := map[string]int{
		survivor.AttrStrength:     s.Attributes.Strength,
		survivor.AttrAgility:      s.Attributes.Agility,
		survivor.AttrIntellect:    s.Attributes.Intellect,
		survivor.AttrPerception:   s.Attributes.Perception,
		survivor.AttrCharisma:     s.Attributes.Charisma,
		survivor.AttrConstitution: s.Attributes.Constitution,
		survivor.AttrSanity:       s.Attributes.Sanity,
	}
	skills := make(map[string]int, len(s.Skills))
	for name, lvl := range s.Skills {
		skills[name] = lvl
	}
	traits := make([]string, 0, len(s.Traits))
	for name := range s.Traits {
		traits = append(traits, name)
	}
	inventory := make(map[string]int, len(s.Inventory))
	for name, qty := range s.Inventory {
		inventory[name] = qty
	}
	return SurvivorRecord{
		Name:          s.Name,
		Attributes:    attrs,
		Skills:        skills,
		Traits:        traits,
		Inventory:     inventory,
		MaxHP:         s.MaxHP,
		CurrentHP:     s.CurrentHP,
		MaxStress:     s.MaxStress,
		CurrentStress: s.CurrentStress,
		Alive:         s.Alive,
		Injured:       s.Injured,
	}
}

// ToSurvivor reconstructs a live survivor from a record.
//
// Postcondition: Every persisted field matches the record exactly, including
// current pools and status flags; derived pool maxima are taken from the
// record, not recomputed.
func (r SurvivorRecord) ToSurvivor() (*survivor.Survivor, error) {
	if r.Name == "" {
		return nil, fmt.Errorf("survivor record has no name")
	}
	s := survivor.New(r.Name, survivor.Attributes{
		Strength:     r.Attributes[survivor.AttrStrength],
		Agility:      r.Attributes[survivor.AttrAgility],
		Intellect:    r.Attributes[survivor.AttrIntellect],
		Perception:   r.Attributes[survivor.AttrPerception],
		Charisma:     r.Attributes[survivor.AttrCharisma],
		Constitution: r.Attributes[survivor.AttrConstitution],
		Sanity:       r.Attributes[survivor.AttrSanity],
	})
	for name, lvl := range r.Skills {
		s.LearnSkill(name, lvl)
	}
	for _, name := range r.Traits {
		s.AddTrait(name)
	}
	for name, qty := range r.Inventory {
		s.AddItem(name, qty)
	}
	s.MaxHP = r.MaxHP
	s.CurrentHP = r.CurrentHP
	s.MaxStress = r.MaxStress
	s.CurrentStress = r.CurrentStress
	s.Alive = r.Alive
	s.Injured = r.Injured
	return s, nil
}

// FromCampaign captures the campaign's persisted state.
func FromCampaign(c *campaign.Campaign) CampaignRecord {
	roster := c.Survivors()
	records := make([]SurvivorRecord, len(roster))
	for i, s := range roster {
		records[i] = FromSurvivor(s)
	}
	return CampaignRecord{
		Day:       c.Day,
		Resources: c.Ledger.Snapshot(),
		Survivors: records,
	}
}

// ToCampaign reconstructs a live campaign from a record.
//
// Precondition: logger must be non-nil (use zap.NewNop() to discard).
func (r CampaignRecord) ToCampaign(logger *zap.Logger) (*campaign.Campaign, error) {
	c := campaign.New(logger)
	c.Day = r.Day
	c.Ledger.Restore(r.Resources)
	for i, rec := range r.Survivors {
		s, err := rec.ToSurvivor()
		if err != nil {
			return nil, fmt.Errorf("survivor record %d: %w", i, err)
		}
		c.AddSurvivor(s)
	}
	return c, nil
}
