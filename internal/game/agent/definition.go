// Package agent provides agent type definitions, the live Agent record, and
// the manager that tracks spawned agents.
package agent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/duskfall/duskfall/internal/game/behavior"
)

// Defaults applied to definition fields left unset in the YAML file.
const (
	defaultBehavior       = "wander"
	defaultSpeed          = 1.0
	defaultRadius         = 1.2
	defaultAttackRange    = 4.0
	defaultAttackCooldown = 1.2
)

// Definition describes one agent type, loaded once at startup and read-only
// afterwards.
type Definition struct {
	// Sprite names the billboard texture the renderer uses.
	Sprite string `yaml:"sprite"`
	// Scale is the render scale and doubles as the hit-target radius.
	Scale     float64 `yaml:"scale"`
	MaxHealth float64 `yaml:"max_health"`
	// Armor is flat damage reduction.
	Armor int `yaml:"armor"`
	// PhysicalResistance is the fraction of physical damage ignored (0–1).
	PhysicalResistance float64 `yaml:"physical_resistance"`
	// Radius is the collision half-size used for movement queries.
	Radius float64 `yaml:"radius"`
	// Speed is the movement speed multiplier.
	Speed float64 `yaml:"speed"`
	// Behavior is the movement behavior name: stand, wander, or aggressive.
	Behavior string `yaml:"behavior"`
	// OnHit and OnDeath name script hooks invoked by the event sink.
	OnHit   string `yaml:"on_hit"`
	OnDeath string `yaml:"on_death"`

	AttackDamage   int     `yaml:"attack_damage"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
}

// applyDefaults fills zero-valued optional fields.
func (d *Definition) applyDefaults() {
	if d.Behavior == "" {
		d.Behavior = defaultBehavior
	}
	if d.Speed == 0 {
		d.Speed = defaultSpeed
	}
	if d.Radius == 0 {
		d.Radius = defaultRadius
	}
	if d.AttackRange == 0 {
		d.AttackRange = defaultAttackRange
	}
	if d.AttackCooldown == 0 {
		d.AttackCooldown = defaultAttackCooldown
	}
}

// Validate checks the definition's invariants.
//
// Postcondition: Returns nil iff MaxHealth >= 1, Scale > 0, resistance is in
// [0,1], combat numbers are non-negative, and Behavior parses.
func (d *Definition) Validate(name string) error {
	if d.MaxHealth < 1 {
		return fmt.Errorf("agent %q: max_health must be >= 1", name)
	}
	if d.Scale <= 0 {
		return fmt.Errorf("agent %q: scale must be > 0", name)
	}
	if d.Armor < 0 {
		return fmt.Errorf("agent %q: armor must be >= 0", name)
	}
	if d.PhysicalResistance < 0 || d.PhysicalResistance > 1 {
		return fmt.Errorf("agent %q: physical_resistance must be in [0,1]", name)
	}
	if d.Radius <= 0 {
		return fmt.Errorf("agent %q: radius must be > 0", name)
	}
	if d.Speed <= 0 {
		return fmt.Errorf("agent %q: speed must be > 0", name)
	}
	if d.AttackDamage < 0 {
		return fmt.Errorf("agent %q: attack_damage must be >= 0", name)
	}
	if d.AttackRange <= 0 {
		return fmt.Errorf("agent %q: attack_range must be > 0", name)
	}
	if d.AttackCooldown <= 0 {
		return fmt.Errorf("agent %q: attack_cooldown must be > 0", name)
	}
	if _, err := behavior.KindFromString(d.Behavior); err != nil {
		return fmt.Errorf("agent %q: %w", name, err)
	}
	return nil
}

// definitionsFile is the on-disk shape: a map of type name to definition.
type definitionsFile struct {
	Agents map[string]*Definition `yaml:"agents"`
}

// LoadDefinitions reads and validates the agent definitions file.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns all definitions with defaults applied, or an error
// on the first parse or validation failure. A missing definition at spawn
// time is therefore impossible once loading succeeds.
func LoadDefinitions(path string) (map[string]*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agent definitions %q: %w", path, err)
	}
	var file definitionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing agent definitions %q: %w", path, err)
	}
	if len(file.Agents) == 0 {
		return nil, fmt.Errorf("agent definitions %q: no agents defined", path)
	}
	for name, def := range file.Agents {
		if def == nil {
			return nil, fmt.Errorf("agent %q: definition must not be empty", name)
		}
		def.applyDefaults()
		if err := def.Validate(name); err != nil {
			return nil, err
		}
	}
	return file.Agents, nil
}
