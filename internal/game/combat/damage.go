package combat

import (
	"math"

	"github.com/duskfall/duskfall/internal/game/rng"
)

// CritChance is the uniform probability of a critical hit, which doubles
// damage.
const CritChance = 0.05

// DamageResult is the pure value produced by a damage calculation; it is
// never persisted.
type DamageResult struct {
	// Amount is the final damage, floored at zero.
	Amount int
	// Critical is true when the 5% critical roll succeeded.
	Critical bool
	// Type drives status-effect attachment on the target.
	Type DamageType
}

// CalculateDamage resolves a weapon strike against a target's defenses:
// base power scaled by charge, doubled on a critical, reduced by flat armor,
// then scaled down by the clamped resistance fraction.
//
// Postcondition: Amount >= 0 for all inputs.
func CalculateDamage(weapon *WeaponDefinition, chargeRatio float64, targetArmor int, targetResistance float64, src rng.Source) DamageResult {
	damage := float64(weapon.AttackPower)
	damage *= 1 + chargeRatio*weapon.ChargeBonus

	critical := rng.Chance(src, CritChance)
	if critical {
		damage *= 2
	}

	damage -= float64(targetArmor)

	resistance := targetResistance
	if resistance < 0 {
		resistance = 0
	} else if resistance > 1 {
		resistance = 1
	}
	damage *= 1 - resistance

	if damage < 0 {
		damage = 0
	}
	return DamageResult{
		Amount:   int(math.Round(damage)),
		Critical: critical,
		Type:     weapon.DamageType,
	}
}
