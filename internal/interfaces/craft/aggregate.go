// Package craft
package craft

import (
	"github.com/samber/lo"
	"math"
)

const (
	ModularCutterBayMass    = 30.0
	ShipsLockerCostPerTon   = Credits(200_000)
	// MissileReloadCostPerTon is zero; reloads are bought separately.
	MissileReloadCostPerTon = Credits(0)
)

type MassBreakdown struct {
	Armor    float64 `json:"armor"`
	Drives   float64 `json:"drives"`
	Fuel     float64 `json:"fuel"`
	Fittings float64 `json:"fittings"`
	Weapons  float64 `json:"weapons"`
	Cargo    float64 `json:"cargo"`
	Total    float64 `json:"total"`
}

type CostBreakdown struct {
	Hull     Credits `json:"hull"`
	Armor    Credits `json:"armor"`
	Drives   Credits `json:"drives"`
	Fittings Credits `json:"fittings"`
	Weapons  Credits `json:"weapons"`
	Cargo    Credits `json:"cargo"`
	Total    Credits `json:"total"`
}

func cargoMass(cargo Cargo) float64 {
	mass := cargo.CargoBay + cargo.ShipsLocker + cargo.MissileReloads
	if cargo.ModularCutterBay {
		mass += ModularCutterBayMass
	}
	return mass
}

func cargoCost(cargo Cargo) Credits {
	cost := cargo.ShipsLocker*float64(ShipsLockerCostPerTon) + cargo.MissileReloads*float64(MissileReloadCostPerTon)
	return Credits(math.Round(cost))
}

func Mass(design Design) MassBreakdown {
	breakdown := MassBreakdown{
		Drives: lo.SumBy(design.Drives, func(drive Drive) float64 {
			return drive.Mass * float64(drive.Quantity)
		}),
		Fuel: design.Fuel.Amount,
		Fittings: lo.SumBy(design.Fittings, func(fitting Fitting) float64 {
			return fitting.Mass * float64(fitting.Quantity)
		}),
		Weapons: lo.SumBy(design.Weapons, func(weapon Weapon) float64 {
			return weapon.Mass * float64(weapon.Quantity)
		}),
		Cargo: cargoMass(design.Cargo),
	}
	if design.Armor != nil {
		breakdown.Armor = design.Armor.Mass
	}
	breakdown.Total = breakdown.Armor + breakdown.Drives + breakdown.Fuel + breakdown.Fittings + breakdown.Weapons + breakdown.Cargo
	return breakdown
}

func Cost(design Design) CostBreakdown {
	breakdown := CostBreakdown{
		Hull: design.Hull.Cost,
		Drives: lo.SumBy(design.Drives, func(drive Drive) Credits {
			return drive.Cost * Credits(drive.Quantity)
		}),
		Fittings: lo.SumBy(design.Fittings, func(fitting Fitting) Credits {
			return fitting.Cost * Credits(fitting.Quantity)
		}),
		Weapons: lo.SumBy(design.Weapons, func(weapon Weapon) Credits {
			return weapon.Cost * Credits(weapon.Quantity)
		}),
		Cargo: cargoCost(design.Cargo),
	}
	if design.Armor != nil {
		breakdown.Armor = design.Armor.Cost
	}
	breakdown.Total = breakdown.Hull + breakdown.Armor + breakdown.Drives + breakdown.Fittings + breakdown.Weapons + breakdown.Cargo
	return breakdown
}

func TotalMass(design Design) float64 {
	return Mass(design).Total
}

func TotalCost(design Design) Credits {
	return Cost(design).Total
}

func RemainingMass(design Design) float64 {
	return float64(design.Hull.Tonnage) - TotalMass(design)
}

// IsOverweight is advisory; it only gates wizard advancement.
func IsOverweight(design Design) bool {
	return TotalMass(design) > float64(design.Hull.Tonnage)
}

// CanFitModularCutterBay needs 30 free tons, not counting a bay already fitted.
func CanFitModularCutterBay(design Design) bool {
	without := design.Clone()
	without.Cargo.ModularCutterBay = false
	return RemainingMass(without) >= ModularCutterBayMass
}
