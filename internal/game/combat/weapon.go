// Package combat implements melee resolution: the weapon swing state machine,
// the simpler NPC melee phase machine, geometric hit detection, and damage
// calculation. The package is pure simulation — it performs no I/O and emits
// outcomes as values for the caller to act on.
package combat

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DamageType classifies the damage a weapon deals. Status-effect attachment
// keys off this value.
type DamageType string

// DamageTypePhysical is currently the only damage type; it attaches no
// status effect.
const DamageTypePhysical DamageType = "physical"

// KeyframePosition is a weapon sprite offset in view space.
type KeyframePosition struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// AnimationKeyframe is one pose of the weapon sprite: a position offset and
// two rotation angles in radians.
type AnimationKeyframe struct {
	Position  KeyframePosition `yaml:"position"`
	RotationZ float64          `yaml:"rotation_z"`
	RotationY float64          `yaml:"rotation_y"`
}

// WeaponDefinition is the shared, read-only description of one weapon type.
type WeaponDefinition struct {
	// AttackPower is the base damage before charge and critical modifiers.
	AttackPower int `yaml:"attack_power"`
	// SwingDuration is the total attack animation length in seconds.
	SwingDuration float64 `yaml:"swing_duration"`
	// MaxChargeTime caps how long holding the attack input keeps charging.
	MaxChargeTime float64 `yaml:"max_charge_time"`
	// ChargeBonus is the damage multiplier gained at full charge
	// (0.5 = +50%).
	ChargeBonus float64 `yaml:"charge_bonus"`
	// Range is the forward reach of the hit volume in world units.
	Range float64 `yaml:"range"`
	// HitboxWidth is the full lateral spread of the hit volume.
	HitboxWidth float64 `yaml:"hitbox_width"`
	// HitboxHeight is the vertical band of the hit volume.
	HitboxHeight float64 `yaml:"hitbox_height"`
	// DamageType selects the status effect attached on hit.
	DamageType DamageType `yaml:"damage_type"`

	Rest   AnimationKeyframe `yaml:"rest_keyframe"`
	Windup AnimationKeyframe `yaml:"windup_keyframe"`
	Swing  AnimationKeyframe `yaml:"swing_keyframe"`
	Thrust AnimationKeyframe `yaml:"thrust_keyframe"`
}

// Validate checks a weapon definition's invariants.
//
// Postcondition: Returns nil iff all timing and geometry fields are positive,
// ChargeBonus is non-negative, and DamageType is known.
func (w *WeaponDefinition) Validate(name string) error {
	if w.AttackPower < 1 {
		return fmt.Errorf("weapon %q: attack_power must be >= 1", name)
	}
	if w.SwingDuration <= 0 {
		return fmt.Errorf("weapon %q: swing_duration must be > 0", name)
	}
	if w.MaxChargeTime <= 0 {
		return fmt.Errorf("weapon %q: max_charge_time must be > 0", name)
	}
	if w.ChargeBonus < 0 {
		return fmt.Errorf("weapon %q: charge_bonus must be >= 0", name)
	}
	if w.Range <= 0 {
		return fmt.Errorf("weapon %q: range must be > 0", name)
	}
	if w.HitboxWidth <= 0 || w.HitboxHeight <= 0 {
		return fmt.Errorf("weapon %q: hitbox dimensions must be > 0", name)
	}
	if w.DamageType != DamageTypePhysical {
		return fmt.Errorf("weapon %q: unknown damage_type %q", name, w.DamageType)
	}
	return nil
}

// LoadWeaponDefinitions reads a YAML file mapping weapon type names to
// definitions.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns all definitions validated, or an error on the first
// parse or validation failure; missing definitions are a fatal load-time
// error, never re-checked per tick.
func LoadWeaponDefinitions(path string) (map[string]*WeaponDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading weapon definitions %q: %w", path, err)
	}
	var raw map[string]*WeaponDefinition
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing weapon definitions %q: %w", path, err)
	}
	for name, def := range raw {
		if def == nil {
			return nil, fmt.Errorf("weapon %q: definition must not be empty", name)
		}
		if err := def.Validate(name); err != nil {
			return nil, err
		}
	}
	return raw, nil
}
