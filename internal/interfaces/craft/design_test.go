// Package craft
package craft

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestNewDesign(t *testing.T) {
	design := NewDesign()
	assert.Equal(t, DefaultDesignName, design.Name)
	assert.Equal(t, TechLevelA, design.Hull.TechLevel)
	assert.Equal(t, 1, design.Staff.Pilot)
	assert.NotNil(t, design.Drives)
	assert.NotNil(t, design.Fittings)
	assert.NotNil(t, design.Weapons)
	assert.Nil(t, design.Armor)
}

func TestDesignUpdatesDoNotMutate(t *testing.T) {
	original := sampleDesign(t)
	snapshot := original.Clone()

	_ = original.WithName("Renamed")
	_ = original.WithHull(NewHull("Other", TechLevelH, 90, ""))
	_ = original.WithArmor(nil)
	_ = original.WithDrives()
	_ = original.WithFuel(Fuel{Amount: 9})
	_ = original.WithFittings()
	_ = original.WithWeapons()
	_ = original.WithCargo(Cargo{})
	_ = original.WithStaff(Staff{Pilot: 4})

	assert.Equal(t, snapshot, original)
}

func TestDesignCloneIsDeep(t *testing.T) {
	electronics, ok := NewElectronics(AdvancedElectronics)
	require.True(t, ok)
	original := sampleDesign(t).WithFittings(electronics)
	clone := original.Clone()

	clone.Armor.Rating = 7
	clone.Drives[0].Model = "sZ"
	*clone.Fittings[0].DieModifier = 5
	clone.Weapons[0].Quantity = 3

	assert.Equal(t, 2, original.Armor.Rating)
	assert.Equal(t, DriveModel("sG"), original.Drives[0].Model)
	assert.Equal(t, 1, *original.Fittings[0].DieModifier)
	assert.Equal(t, 1, original.Weapons[0].Quantity)
}

func TestNormalize(t *testing.T) {
	design := sampleDesign(t)
	design.Staff.Gunner = 9
	design.Fuel.Mass = 0

	normalized := design.Normalize()
	assert.Equal(t, 1, normalized.Staff.Gunner)
	assert.InDelta(t, 2.0, normalized.Fuel.Mass, 1e-9)
	assert.Equal(t, 9, design.Staff.Gunner)
}

func TestWithStaffRecomputesGunners(t *testing.T) {
	design := sampleDesign(t).WithStaff(Staff{Pilot: 2, Gunner: 5, Comms: true})
	assert.Equal(t, 1, design.Staff.Gunner)
	assert.Equal(t, 2, design.Staff.Pilot)
	assert.True(t, design.Staff.Comms)
}
