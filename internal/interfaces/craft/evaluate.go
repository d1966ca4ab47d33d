// Package craft
package craft

import (
	"fmt"
	"github.com/samber/lo"
)

type WarningCode string

const (
	WarnOverweight          WarningCode = "OVERWEIGHT"
	WarnWeaponSlots         WarningCode = "WEAPON_SLOTS_EXCEEDED"
	WarnEnergyCapacity      WarningCode = "ENERGY_CAPACITY_EXCEEDED"
	WarnAntiPersonnel       WarningCode = "ANTI_PERSONNEL_EXCEEDED"
	WarnWeaponHullTooSmall  WarningCode = "WEAPON_HULL_TOO_SMALL"
	WarnFuelBelowRequired   WarningCode = "FUEL_BELOW_REQUIREMENT"
	WarnNoPilot             WarningCode = "NO_PILOT"
	WarnEngineerUnavailable WarningCode = "ENGINEER_UNAVAILABLE"
	WarnECMUnavailable      WarningCode = "ECM_UNAVAILABLE"
	WarnCutterBaySpace      WarningCode = "CUTTER_BAY_NO_SPACE"
	WarnArmorLocked         WarningCode = "ARMOR_LOCKED"
	WarnArmorRating         WarningCode = "ARMOR_RATING_EXCEEDED"
	WarnDriveUnavailable    WarningCode = "DRIVE_UNAVAILABLE"
	WarnMultipleCockpits    WarningCode = "MULTIPLE_COCKPITS"
	WarnAirlockLimit        WarningCode = "AIRLOCK_LIMIT_EXCEEDED"
)

type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

type Usage struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

func (u Usage) Exceeded() bool {
	return u.Used > u.Limit
}

// FuelPlan is the operating window fuel is checked against.
type FuelPlan struct {
	Weeks float64 `json:"weeks"`
	Hours float64 `json:"hours"`
}

func DefaultFuelPlan() FuelPlan {
	return FuelPlan{Weeks: DefaultPowerPlantWeeks, Hours: DefaultManeuverHours}
}

type Evaluation struct {
	Mass            MassBreakdown   `json:"mass"`
	Cost            CostBreakdown   `json:"cost"`
	RemainingMass   float64         `json:"remaining_mass"`
	Overweight      bool            `json:"overweight"`
	WeaponSlots     Usage           `json:"weapon_slots"`
	AntiPersonnel   Usage           `json:"anti_personnel"`
	EnergyWeapons   Usage           `json:"energy_weapons"`
	FuelRequired    FuelRequirement `json:"fuel_required"`
	FuelCarried     float64         `json:"fuel_carried"`
	FuelSufficient  bool            `json:"fuel_sufficient"`
	RequiredGunners int             `json:"required_gunners"`
	TotalCrew       int             `json:"total_crew"`
	StaffOptions    StaffOptions    `json:"staff_options"`
	Warnings        []Warning       `json:"warnings"`
}

func (e *Evaluation) warn(code WarningCode, format string, args ...interface{}) {
	e.Warnings = append(e.Warnings, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

func (e *Evaluation) HasWarning(code WarningCode) bool {
	return lo.ContainsBy(e.Warnings, func(w Warning) bool { return w.Code == code })
}

// Evaluate gathers every advisory constraint of a design into one report.
// Nothing here blocks editing; callers decide what to surface.
func Evaluate(design Design, plan FuelPlan) *Evaluation {
	design = design.Normalize()
	tonnage := design.Hull.Tonnage
	limits := WeaponLimitsFor(tonnage)

	e := &Evaluation{
		Mass:          Mass(design),
		Cost:          Cost(design),
		WeaponSlots:   Usage{UsedWeaponSlots(design.Weapons), limits.ShipWeapons},
		AntiPersonnel: Usage{AntiPersonnelCount(design.Weapons), limits.AntiPersonnelWeapons},
		EnergyWeapons: Usage{EnergyWeaponCount(design.Weapons), TotalEnergyWeaponCapacity(design.Drives)},
		FuelRequired:  TotalFuelRequirement(design.Drives, float64(tonnage), plan.Weeks, plan.Hours),
		FuelCarried:   design.Fuel.Amount,
		StaffOptions:  StaffOptionsFor(design),
		Warnings:      make([]Warning, 0),
	}
	e.RemainingMass = float64(tonnage) - e.Mass.Total
	e.Overweight = e.Mass.Total > float64(tonnage)
	e.FuelSufficient = e.FuelCarried >= e.FuelRequired.Total
	e.RequiredGunners = design.Staff.Gunner
	e.TotalCrew = TotalCrew(design.Staff)

	if e.Overweight {
		e.warn(WarnOverweight, "total mass %.2f tons exceeds hull capacity %d tons", e.Mass.Total, tonnage)
	}
	if e.WeaponSlots.Exceeded() {
		e.warn(WarnWeaponSlots, "%d weapon slots used, hull provides %d", e.WeaponSlots.Used, e.WeaponSlots.Limit)
	}
	if e.EnergyWeapons.Exceeded() {
		e.warn(WarnEnergyCapacity, "%d energy weapons installed, power plants support %d", e.EnergyWeapons.Used, e.EnergyWeapons.Limit)
	}
	if e.AntiPersonnel.Exceeded() {
		e.warn(WarnAntiPersonnel, "%d anti-personnel weapons installed, limit is %d", e.AntiPersonnel.Used, e.AntiPersonnel.Limit)
	}
	for _, weapon := range design.Weapons {
		if spec, ok := ShipWeaponSpecFor(weapon.Type); ok && tonnage < spec.MinHullTonnage {
			e.warn(WarnWeaponHullTooSmall, "%s requires a hull of at least %d tons", spec.Name, spec.MinHullTonnage)
		}
	}
	if !e.FuelSufficient {
		e.warn(WarnFuelBelowRequired, "%.2f tons of fuel carried, %.2f tons recommended", e.FuelCarried, e.FuelRequired.Total)
	}
	if design.Staff.Pilot < 1 {
		e.warn(WarnNoPilot, "at least one pilot is required")
	}
	if design.Staff.Engineer && !e.StaffOptions.Engineer {
		e.warn(WarnEngineerUnavailable, "an engineer needs two or more power plants or maneuver drives")
	}
	if design.Staff.ECM && !e.StaffOptions.ECM {
		e.warn(WarnECMUnavailable, "an ECM operator needs advanced electronics")
	}
	if design.Cargo.ModularCutterBay && !CanFitModularCutterBay(design) {
		e.warn(WarnCutterBaySpace, "a modular cutter bay needs %.0f free tons", ModularCutterBayMass)
	}
	evaluateArmor(e, design)
	evaluateDrives(e, design)
	evaluateFittings(e, design)
	return e
}

func evaluateArmor(e *Evaluation, design Design) {
	if design.Armor == nil {
		return
	}
	def, ok := ArmorDefinitionFor(design.Armor.Type)
	techLevel, _ := design.Hull.TechLevel.Value()
	if !ok || techLevel < def.MinTechLevel {
		e.warn(WarnArmorLocked, "armor %s is not available at tech level %s", design.Armor.Type, design.Hull.TechLevel)
		return
	}
	if maxRating := def.MaxRating(techLevel); design.Armor.Rating > maxRating {
		e.warn(WarnArmorRating, "armor rating %d exceeds the maximum %d", design.Armor.Rating, maxRating)
	}
}

func evaluateDrives(e *Evaluation, design Design) {
	tonnage := float64(design.Hull.Tonnage)
	for _, drive := range design.Drives {
		available := lo.Contains(AvailableDriveModelsForType(tonnage, drive.DriveType), drive.Model)
		if !available {
			e.warn(WarnDriveUnavailable, "%s model %s cannot be installed in a %d ton hull", drive.DriveType.Name(), drive.Model, design.Hull.Tonnage)
		}
	}
}

func evaluateFittings(e *Evaluation, design Design) {
	cockpits := lo.CountBy(design.Fittings, func(fitting Fitting) bool {
		return fitting.Type == Cockpit || fitting.Type == ControlCabin
	})
	if cockpits > 1 {
		e.warn(WarnMultipleCockpits, "%d cockpits or control cabins fitted, only one is used", cockpits)
	}
	airlocks := lo.SumBy(design.Fittings, func(fitting Fitting) int {
		if fitting.Type != Airlock {
			return 0
		}
		return fitting.Quantity
	})
	if airlocks > MaxAirlocks {
		e.warn(WarnAirlockLimit, "%d airlocks fitted, at most %d allowed", airlocks, MaxAirlocks)
	}
}
