// Package craft
package craft

import (
	"errors"
	"fmt"
	"github.com/samber/lo"
)

var (
	ErrUnknownWeapon          = errors.New("unknown ship weapon type")
	ErrHullTooSmall           = errors.New("hull is below the weapon's minimum tonnage")
	ErrWeaponSlotsExceeded    = errors.New("ship weapon slots exceeded")
	ErrEnergyCapacityExceeded = errors.New("power plant energy weapon capacity exceeded")
	ErrAntiPersonnelExceeded  = errors.New("anti-personnel weapon limit exceeded")
)

type WeaponCategory string

const (
	ShipWeapon          WeaponCategory = "ship"
	AntiPersonnelWeapon WeaponCategory = "anti-personnel"
)

type WeaponType string

const (
	PulseLaserSingle     WeaponType = "pulse_laser_single"
	PulseLaserDouble     WeaponType = "pulse_laser_double"
	PulseLaserTriple     WeaponType = "pulse_laser_triple"
	BeamLaserSingle      WeaponType = "beam_laser_single"
	BeamLaserDouble      WeaponType = "beam_laser_double"
	BeamLaserTriple      WeaponType = "beam_laser_triple"
	MissileRackSingle    WeaponType = "missile_rack_single"
	MissileRackDouble    WeaponType = "missile_rack_double"
	MissileRackTriple    WeaponType = "missile_rack_triple"
	ParticleBeamBarbette WeaponType = "particle_beam_barbette"
	Torpedo              WeaponType = "torpedo"
)

// WeaponFamily groups weapon types for gunner accounting.
type WeaponFamily int

const (
	NoFamily WeaponFamily = iota
	PulseLaserFamily
	BeamLaserFamily
	MissileLauncherFamily
	BarbetteFamily
	TorpedoFamily
)

var weaponFamilyNames = []string{"none", "pulse_laser", "beam_laser", "missile_launcher", "barbette", "torpedo"}

func (f WeaponFamily) String() string {
	if f < 0 || int(f) >= len(weaponFamilyNames) {
		return fmt.Sprintf("WeaponFamily(%d)", int(f))
	}
	return weaponFamilyNames[f]
}

// turret reports whether the family needs one gunner regardless of unit count.
func (f WeaponFamily) turret() bool {
	return f == PulseLaserFamily || f == BeamLaserFamily || f == MissileLauncherFamily
}

type ShipWeaponSpec struct {
	Type           WeaponType   `json:"type"`
	Name           string       `json:"name"`
	Family         WeaponFamily `json:"-"`
	Mass           float64      `json:"mass"`
	Cost           Credits      `json:"cost"`
	SlotsUsed      int          `json:"slots_used"`
	EnergyWeapons  int          `json:"energy_weapons"`
	MinHullTonnage int          `json:"min_hull_tonnage,omitempty"`
	MountType      string       `json:"mount_type"`
}

var shipWeaponSpecs = []*ShipWeaponSpec{
	{PulseLaserSingle, "Single Pulse Laser Turret", PulseLaserFamily, 1, 1_700_000, 1, 1, 0, "turret"},
	{PulseLaserDouble, "Double Pulse Laser Turret", PulseLaserFamily, 1, 2_500_000, 1, 2, 0, "turret"},
	{PulseLaserTriple, "Triple Pulse Laser Turret", PulseLaserFamily, 1, 3_500_000, 1, 3, 0, "turret"},
	{BeamLaserSingle, "Single Beam Laser Turret", BeamLaserFamily, 1, 2_200_000, 1, 1, 0, "turret"},
	{BeamLaserDouble, "Double Beam Laser Turret", BeamLaserFamily, 1, 3_500_000, 1, 2, 0, "turret"},
	{BeamLaserTriple, "Triple Beam Laser Turret", BeamLaserFamily, 1, 5_000_000, 1, 3, 0, "turret"},
	{MissileRackSingle, "Single Missile Rack Turret", MissileLauncherFamily, 1, 950_000, 1, 0, 0, "turret"},
	{MissileRackDouble, "Double Missile Rack Turret", MissileLauncherFamily, 1, 1_700_000, 1, 0, 0, "turret"},
	{MissileRackTriple, "Triple Missile Rack Turret", MissileLauncherFamily, 1, 2_450_000, 1, 0, 0, "turret"},
	{ParticleBeamBarbette, "Particle Beam Barbette", BarbetteFamily, 10, 5_500_000, 2, 2, 40, "barbette"},
	{Torpedo, "Torpedo", TorpedoFamily, 2.5, 2_000_000, 1, 0, 0, "fixed"},
}

func ShipWeaponSpecFor(weaponType WeaponType) (*ShipWeaponSpec, bool) {
	for _, spec := range shipWeaponSpecs {
		if spec.Type == weaponType {
			return spec, true
		}
	}
	return nil, false
}

func (w WeaponType) Family() WeaponFamily {
	if spec, ok := ShipWeaponSpecFor(w); ok {
		return spec.Family
	}
	return NoFamily
}

type WeaponLimits struct {
	ShipWeapons          int `json:"ship_weapons"`
	AntiPersonnelWeapons int `json:"anti_personnel_weapons"`
}

// weaponLimits is indexed by tonnage bracket, 10..100.
var weaponLimits = []WeaponLimits{
	{1, 1}, {1, 2}, {1, 3}, {2, 4}, {2, 5},
	{2, 6}, {3, 7}, {3, 8}, {4, 9}, {5, 10},
}

// WeaponLimitsFor clamps the tonnage bracket into [10,100].
func WeaponLimitsFor(hullTonnage int) WeaponLimits {
	bracket := clampInt(tonnageBracket(float64(hullTonnage)), MinHullTonnage, MaxHullTonnage)
	return weaponLimits[bracket/10-1]
}

// AvailableShipWeapons drops types whose minimum hull tonnage is not met.
func AvailableShipWeapons(hullTonnage int) map[WeaponType]*ShipWeaponSpec {
	result := make(map[WeaponType]*ShipWeaponSpec, len(shipWeaponSpecs))
	for _, spec := range shipWeaponSpecs {
		if hullTonnage >= spec.MinHullTonnage {
			result[spec.Type] = spec
		}
	}
	return result
}

// ShipWeaponSpecs returns every ship weapon in table order.
func ShipWeaponSpecs() []*ShipWeaponSpec {
	return append(make([]*ShipWeaponSpec, 0, len(shipWeaponSpecs)), shipWeaponSpecs...)
}

func isShipWeapon(weapon Weapon) bool {
	if weapon.Category == AntiPersonnelWeapon {
		return false
	}
	_, ok := ShipWeaponSpecFor(weapon.Type)
	return ok || weapon.Category == ShipWeapon
}

func weaponSlots(weapon Weapon) int {
	if weapon.SlotsUsed > 0 {
		return weapon.SlotsUsed
	}
	if spec, ok := ShipWeaponSpecFor(weapon.Type); ok {
		return spec.SlotsUsed
	}
	return 1
}

func UsedWeaponSlots(weapons []Weapon) int {
	return lo.SumBy(weapons, func(weapon Weapon) int {
		if !isShipWeapon(weapon) {
			return 0
		}
		return weaponSlots(weapon) * weapon.Quantity
	})
}

// EnergyWeaponCount counts individual emitters across installed ship weapons.
func EnergyWeaponCount(weapons []Weapon) int {
	return lo.SumBy(weapons, func(weapon Weapon) int {
		if !isShipWeapon(weapon) {
			return 0
		}
		spec, ok := ShipWeaponSpecFor(weapon.Type)
		if !ok {
			return 0
		}
		return spec.EnergyWeapons * weapon.Quantity
	})
}

func AntiPersonnelCount(weapons []Weapon) int {
	return lo.SumBy(weapons, func(weapon Weapon) int {
		if weapon.Category != AntiPersonnelWeapon {
			return 0
		}
		return weapon.Quantity
	})
}

// RequiredGunners derives the gunner count from installed ship weapons:
// one per barbette unit, one if any torpedo is present, and one per distinct
// turret family. The result does not depend on weapon order.
func RequiredGunners(weapons []Weapon) int {
	gunners := 0
	torpedo := false
	families := make(map[WeaponFamily]struct{})
	for _, weapon := range weapons {
		if !isShipWeapon(weapon) || weapon.Quantity <= 0 {
			continue
		}
		family := weapon.Type.Family()
		switch {
		case family == BarbetteFamily:
			gunners += weapon.Quantity
		case family == TorpedoFamily:
			torpedo = true
		case family.turret():
			families[family] = struct{}{}
		}
	}
	if torpedo {
		gunners++
	}
	return gunners + len(families)
}

// CheckShipWeapon reports whether one more unit of weaponType fits the design.
// A nil result means the weapon may be added.
func CheckShipWeapon(design Design, weaponType WeaponType) error {
	spec, ok := ShipWeaponSpecFor(weaponType)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWeapon, weaponType)
	}
	if design.Hull.Tonnage < spec.MinHullTonnage {
		return fmt.Errorf("%w: %s needs %d tons", ErrHullTooSmall, spec.Name, spec.MinHullTonnage)
	}
	limits := WeaponLimitsFor(design.Hull.Tonnage)
	if used := UsedWeaponSlots(design.Weapons); used+spec.SlotsUsed > limits.ShipWeapons {
		return fmt.Errorf("%w: %d used, %d needed, %d available", ErrWeaponSlotsExceeded, used, spec.SlotsUsed, limits.ShipWeapons)
	}
	if spec.EnergyWeapons > 0 {
		capacity := TotalEnergyWeaponCapacity(design.Drives)
		if used := EnergyWeaponCount(design.Weapons); used+spec.EnergyWeapons > capacity {
			return fmt.Errorf("%w: %d installed, %d needed, capacity %d", ErrEnergyCapacityExceeded, used, spec.EnergyWeapons, capacity)
		}
	}
	return nil
}

func CheckAntiPersonnelWeapon(design Design, quantity int) error {
	limit := WeaponLimitsFor(design.Hull.Tonnage).AntiPersonnelWeapons
	if used := AntiPersonnelCount(design.Weapons); used+quantity > limit {
		return fmt.Errorf("%w: %d installed, limit %d", ErrAntiPersonnelExceeded, used, limit)
	}
	return nil
}

func NewShipWeapon(weaponType WeaponType) (Weapon, bool) {
	spec, ok := ShipWeaponSpecFor(weaponType)
	if !ok {
		return Weapon{}, false
	}
	return Weapon{
		Type:      spec.Type,
		Name:      spec.Name,
		Category:  ShipWeapon,
		Mass:      spec.Mass,
		Cost:      spec.Cost,
		Quantity:  1,
		SlotsUsed: spec.SlotsUsed,
		MountType: spec.MountType,
	}, true
}

// NewAntiPersonnelWeapon wraps a caller supplied armament; these have no
// fixed table and never count toward slots, energy or gunners.
func NewAntiPersonnelWeapon(weaponType WeaponType, name string, mass float64, cost Credits, quantity int) Weapon {
	return Weapon{
		Type:      weaponType,
		Name:      name,
		Category:  AntiPersonnelWeapon,
		Mass:      mass,
		Cost:      cost,
		Quantity:  max(quantity, 1),
		MountType: "fixed",
	}
}
