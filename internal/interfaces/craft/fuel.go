// Package craft
package craft

import "github.com/samber/lo"

const (
	DefaultPowerPlantWeeks = 2
	DefaultManeuverHours   = 1
	HoursPerWeek           = 7 * 24
)

// Tons of fuel per two weeks of power plant operation, indexed like DriveModels.
var (
	fusionFuelPerTwoWeeks = []float64{
		1, 1, 1, 1, 1.5, 1.5, 1.5, 1.5, 2, 2, 2, 2,
		2.5, 2.5, 2.5, 2.5, 3, 3, 3, 3, 3.5, 3.5, 3.5, 3.5,
	}
	chemicalFuelPerTwoWeeks = []float64{
		5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60,
		65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115, 120,
	}
)

type FuelRequirement struct {
	Total      float64 `json:"total"`
	PowerPlant float64 `json:"power_plant"`
	Maneuver   float64 `json:"maneuver"`
}

func WeeksToHours(weeks float64) float64 {
	return weeks * HoursPerWeek
}

// PowerPlantFuel scales the two-week table linearly with weeks. Maneuver
// drives never draw power plant fuel.
func PowerPlantFuel(driveType DriveType, model DriveModel, weeks float64) float64 {
	index := model.Index()
	if index < 0 {
		return 0
	}
	switch driveType {
	case FusionPowerPlant:
		return fusionFuelPerTwoWeeks[index] * weeks / 2
	case ChemicalPowerPlant:
		return chemicalFuelPerTwoWeeks[index] * weeks / 2
	default:
		return 0
	}
}

// ManeuverDriveFuel is zero for gravitic drives; reaction drives burn
// hull * 0.025 * rating tons per hour.
func ManeuverDriveFuel(driveType DriveType, rating int, hullTonnage float64, hours float64) float64 {
	if driveType != ReactionManeuver {
		return 0
	}
	return hullTonnage * ManeuverFuelPerHour * float64(rating) * hours
}

// ManeuverDuration is the operating window shown for a maneuver drive.
// Gravitic drives run as long as the power plant does.
func ManeuverDuration(driveType DriveType, weeks, hours float64) float64 {
	if driveType == GraviticManeuver {
		return WeeksToHours(weeks)
	}
	return hours
}

func driveRating(drive Drive, hullTonnage float64) int {
	if rating, ok := DrivePerformance(drive.Model, hullTonnage); ok {
		return rating
	}
	return drive.Rating
}

func TotalFuelRequirement(drives []Drive, hullTonnage float64, weeks, hours float64) FuelRequirement {
	powerPlant := lo.SumBy(drives, func(drive Drive) float64 {
		return PowerPlantFuel(drive.DriveType, drive.Model, weeks) * float64(drive.Quantity)
	})
	maneuver := lo.SumBy(drives, func(drive Drive) float64 {
		return ManeuverDriveFuel(drive.DriveType, driveRating(drive, hullTonnage), hullTonnage, hours) * float64(drive.Quantity)
	})
	return FuelRequirement{
		Total:      powerPlant + maneuver,
		PowerPlant: powerPlant,
		Maneuver:   maneuver,
	}
}
