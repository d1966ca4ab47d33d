// Package craft
package craft

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"slices"
	"testing"
)

func mustShipWeapon(t *testing.T, weaponType WeaponType) Weapon {
	t.Helper()
	weapon, ok := NewShipWeapon(weaponType)
	require.True(t, ok, "weapon %s", weaponType)
	return weapon
}

func mustDrive(t *testing.T, driveType DriveType, model DriveModel, tonnage int) Drive {
	t.Helper()
	drive, ok := NewDrive(driveType, model, tonnage)
	require.True(t, ok, "drive %s %s at %d", driveType, model, tonnage)
	return drive
}

func ExampleRequiredGunners() {
	RequiredGunners([]Weapon{{Type: PulseLaserSingle, Quantity: 1}, {Type: Torpedo, Quantity: 2}})
}

func TestWeaponLimitsMonotonic(t *testing.T) {
	previous := WeaponLimitsFor(MinHullTonnage)
	for tonnage := MinHullTonnage; tonnage <= MaxHullTonnage; tonnage++ {
		limits := WeaponLimitsFor(tonnage)
		if limits.ShipWeapons < previous.ShipWeapons {
			t.Fatalf("ship weapon limit drops at %d tons: %d < %d", tonnage, limits.ShipWeapons, previous.ShipWeapons)
		}
		previous = limits
	}
}

func TestWeaponLimitsFor(t *testing.T) {
	tests := []struct {
		tonnage  int
		expected WeaponLimits
	}{
		{5, WeaponLimits{1, 1}},
		{10, WeaponLimits{1, 1}},
		{35, WeaponLimits{2, 4}},
		{70, WeaponLimits{3, 7}},
		{90, WeaponLimits{4, 9}},
		{100, WeaponLimits{5, 10}},
		{250, WeaponLimits{5, 10}},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		result := WeaponLimitsFor(test.tonnage)
		if result != test.expected {
			fail++
			t.Errorf("WeaponLimitsFor(%d) = %+v; expected %+v", test.tonnage, result, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestWeaponLimitsFor: %d pass, %d fail", pass, fail)
}

func TestAvailableShipWeapons(t *testing.T) {
	small := AvailableShipWeapons(30)
	assert.NotContains(t, small, ParticleBeamBarbette)
	assert.Contains(t, small, PulseLaserSingle)
	assert.Contains(t, small, Torpedo)

	large := AvailableShipWeapons(40)
	assert.Contains(t, large, ParticleBeamBarbette)
	assert.Len(t, large, len(ShipWeaponSpecs()))
}

func TestRequiredGunners(t *testing.T) {
	barbette := mustShipWeapon(t, ParticleBeamBarbette)
	barbette.Quantity = 2
	antiPersonnel := NewAntiPersonnelWeapon("autocannon", "Autocannon", 0.5, 100_000, 2)

	tests := []struct {
		name     string
		weapons  []WeaponType
		extra    []Weapon
		expected int
	}{
		{"unarmed", nil, nil, 0},
		{"scenario", []WeaponType{PulseLaserSingle, PulseLaserDouble, BeamLaserSingle, Torpedo, Torpedo}, nil, 3},
		{"one pulse family", []WeaponType{PulseLaserSingle, PulseLaserTriple}, nil, 1},
		{"missile family", []WeaponType{MissileRackSingle, MissileRackDouble, PulseLaserSingle}, nil, 2},
		{"torpedo only", []WeaponType{Torpedo, Torpedo, Torpedo}, nil, 1},
		{"barbettes per unit", nil, []Weapon{barbette}, 2},
		{"anti-personnel ignored", []WeaponType{BeamLaserDouble}, []Weapon{antiPersonnel}, 1},
	}
	for _, test := range tests {
		weapons := append([]Weapon{}, test.extra...)
		for _, weaponType := range test.weapons {
			weapons = append(weapons, mustShipWeapon(t, weaponType))
		}
		assert.Equal(t, test.expected, RequiredGunners(weapons), test.name)
	}
}

func TestRequiredGunnersOrderIndependent(t *testing.T) {
	weapons := []Weapon{
		mustShipWeapon(t, PulseLaserSingle),
		mustShipWeapon(t, BeamLaserDouble),
		mustShipWeapon(t, Torpedo),
		mustShipWeapon(t, ParticleBeamBarbette),
		mustShipWeapon(t, PulseLaserDouble),
	}
	expected := RequiredGunners(weapons)
	for i := range weapons {
		rotated := append(append([]Weapon{}, weapons[i:]...), weapons[:i]...)
		assert.Equal(t, expected, RequiredGunners(rotated))
		reversed := slices.Clone(rotated)
		slices.Reverse(reversed)
		assert.Equal(t, expected, RequiredGunners(reversed))
	}
	assert.Equal(t, expected, RequiredGunners(weapons), "repeated call")
}

func TestCheckShipWeaponEnergyScenario(t *testing.T) {
	design := NewDesign().
		WithHull(NewHull("Gunboat", TechLevelD, 40, "")).
		WithDrives(
			mustDrive(t, FusionPowerPlant, "sG", 40),
			mustDrive(t, FusionPowerPlant, "sL", 40),
		)
	require.Equal(t, 2, TotalEnergyWeaponCapacity(design.Drives))

	require.NoError(t, CheckShipWeapon(design, PulseLaserDouble))
	design = design.WithWeapons(mustShipWeapon(t, PulseLaserDouble))

	err := CheckShipWeapon(design, PulseLaserSingle)
	assert.ErrorIs(t, err, ErrEnergyCapacityExceeded)
}

func TestCheckShipWeaponLimits(t *testing.T) {
	small := NewDesign().WithHull(NewHull("Fighter", TechLevelC, 10, ""))
	assert.ErrorIs(t, CheckShipWeapon(small, ParticleBeamBarbette), ErrHullTooSmall)
	assert.ErrorIs(t, CheckShipWeapon(small, "plasma_gun"), ErrUnknownWeapon)

	require.NoError(t, CheckShipWeapon(small, Torpedo))
	small = small.WithWeapons(mustShipWeapon(t, Torpedo))
	assert.ErrorIs(t, CheckShipWeapon(small, Torpedo), ErrWeaponSlotsExceeded)

	barbetteHull := NewDesign().WithHull(NewHull("Boat", TechLevelC, 40, ""))
	assert.ErrorIs(t, CheckShipWeapon(barbetteHull, ParticleBeamBarbette), ErrEnergyCapacityExceeded)
}

func TestCheckAntiPersonnelWeapon(t *testing.T) {
	design := NewDesign().WithHull(NewHull("Fighter", TechLevelC, 20, ""))
	require.NoError(t, CheckAntiPersonnelWeapon(design, 2))
	design = design.WithWeapons(NewAntiPersonnelWeapon("rifle", "Rifle Mount", 0.1, 5_000, 2))
	assert.ErrorIs(t, CheckAntiPersonnelWeapon(design, 1), ErrAntiPersonnelExceeded)
	assert.Equal(t, 0, UsedWeaponSlots(design.Weapons))
	assert.Equal(t, 0, EnergyWeaponCount(design.Weapons))
}

func TestWeaponCounts(t *testing.T) {
	barbette := mustShipWeapon(t, ParticleBeamBarbette)
	weapons := []Weapon{barbette, mustShipWeapon(t, BeamLaserTriple)}
	assert.Equal(t, 3, UsedWeaponSlots(weapons))
	assert.Equal(t, 5, EnergyWeaponCount(weapons))
	assert.Equal(t, BarbetteFamily, ParticleBeamBarbette.Family())
	assert.Equal(t, "pulse_laser", PulseLaserSingle.Family().String())
}

func TestWeaponFamilyString(t *testing.T) {
	tests := []struct {
		family   WeaponFamily
		expected string
	}{
		{NoFamily, "none"},
		{TorpedoFamily, "torpedo"},
		{WeaponFamily(42), "WeaponFamily(42)"},
		{WeaponFamily(-1), "WeaponFamily(-1)"},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		result := test.family.String()
		if result != test.expected {
			fail++
			t.Errorf("WeaponFamily(%d).String() = %q; expected %q", int(test.family), result, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestWeaponFamilyString: %d pass, %d fail", pass, fail)
}
