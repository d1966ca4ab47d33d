// Package craft
package craft

import "fmt"

type DriveCategory string

const (
	PowerPlant DriveCategory = "powerPlant"
	Maneuver   DriveCategory = "maneuver"
)

type DriveType string

const (
	GraviticManeuver   DriveType = "gravitic_m"
	ReactionManeuver   DriveType = "reaction_m"
	FusionPowerPlant   DriveType = "fusion_p"
	ChemicalPowerPlant DriveType = "chemical_p"
)

var DriveTypes = []DriveType{GraviticManeuver, ReactionManeuver, FusionPowerPlant, ChemicalPowerPlant}

var driveTypeNames = map[DriveType]string{
	GraviticManeuver:   "Gravitic M-Drive",
	ReactionManeuver:   "Reaction M-Drive",
	FusionPowerPlant:   "Fusion P-Plant",
	ChemicalPowerPlant: "Chemical P-Plant",
}

func (dt DriveType) Name() string {
	if name, ok := driveTypeNames[dt]; ok {
		return name
	}
	return string(dt)
}

func (dt DriveType) Valid() bool {
	_, ok := driveTypeNames[dt]
	return ok
}

func (dt DriveType) Category() DriveCategory {
	switch dt {
	case FusionPowerPlant, ChemicalPowerPlant:
		return PowerPlant
	default:
		return Maneuver
	}
}

type DriveModel string

// DriveModels is ordered; the index drives the energy capacity step table.
// I and O are skipped.
var DriveModels = []DriveModel{
	"sA", "sB", "sC", "sD", "sE", "sF", "sG", "sH", "sJ", "sK", "sL", "sM",
	"sN", "sP", "sQ", "sR", "sS", "sT", "sU", "sV", "sW", "sX", "sY", "sZ",
}

func (m DriveModel) Index() int {
	for i, model := range DriveModels {
		if model == m {
			return i
		}
	}
	return -1
}

type DriveSpec struct {
	Tonnage float64 `json:"tonnage"`
	Cost    Credits `json:"cost"`
}

type driveSpecTable struct {
	tonnage []float64
	costMCr []float64
}

var driveSpecs = map[DriveType]driveSpecTable{
	GraviticManeuver: {
		tonnage: []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19},
		costMCr: []float64{1, 2, 3, 3.5, 4, 6, 8, 9, 10, 11, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32, 34, 36, 38},
	},
	ReactionManeuver: {
		tonnage: []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2, 2.25, 2.5, 2.75, 3, 3.25, 3.5, 3.75, 4, 4.5, 5, 5.5, 6, 6.5, 7, 7.5, 8},
		costMCr: []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5, 5.5, 6, 6.5, 7, 7.5, 8, 9, 10, 11, 12, 13, 14, 15, 16},
	},
	FusionPowerPlant: {
		tonnage: []float64{1.2, 1.5, 1.8, 2.1, 2.4, 2.7, 3.0, 3.3, 3.6, 3.9, 4.5, 5.1, 5.7, 6.3, 6.9, 7.5, 8.1, 8.7, 9.3, 9.9, 10.5, 11.1, 11.7, 12.3},
		costMCr: []float64{3, 3.5, 4, 4.5, 5, 5.5, 6, 6.5, 7, 7.5, 8, 9, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32},
	},
	ChemicalPowerPlant: {
		tonnage: []float64{2, 2.5, 3, 3.5, 4, 4.5, 5, 5.5, 6, 6.5, 7, 7.5, 8, 8.5, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18},
		costMCr: []float64{1, 1.25, 1.5, 1.75, 2, 2.25, 2.5, 2.75, 3, 3.25, 3.5, 3.75, 4, 4.25, 4.5, 5, 5.5, 6, 6.5, 7, 7.5, 8, 8.5, 9},
	},
}

// DriveSpecFor looks up the per-model mass and cost of a drive type.
func DriveSpecFor(driveType DriveType, model DriveModel) (DriveSpec, bool) {
	table, ok := driveSpecs[driveType]
	if !ok {
		return DriveSpec{}, false
	}
	index := model.Index()
	if index < 0 {
		return DriveSpec{}, false
	}
	return DriveSpec{Tonnage: table.tonnage[index], Cost: MCr(table.costMCr[index])}, true
}

// drivePerformance rows follow DriveModels, columns are the 10..100 ton
// brackets. Zero marks a model that cannot be installed at that size.
var drivePerformance = [][10]int{
	{2, 1, 0, 0, 0, 0, 0, 0, 0, 0},
	{4, 2, 1, 1, 0, 0, 0, 0, 0, 0},
	{6, 3, 2, 1, 1, 1, 0, 0, 0, 0},
	{8, 4, 2, 2, 1, 1, 1, 1, 0, 0},
	{10, 5, 3, 2, 2, 1, 1, 1, 1, 1},
	{12, 6, 4, 3, 2, 2, 1, 1, 1, 1},
	{0, 7, 4, 3, 2, 2, 2, 2, 1, 1},
	{0, 8, 5, 4, 3, 2, 2, 2, 2, 2},
	{0, 9, 6, 4, 3, 3, 2, 2, 2, 2},
	{0, 10, 6, 5, 4, 3, 3, 3, 2, 2},
	{0, 11, 7, 5, 4, 3, 3, 3, 3, 3},
	{0, 12, 8, 6, 4, 4, 3, 3, 3, 3},
	{0, 13, 8, 6, 5, 4, 4, 4, 3, 3},
	{0, 14, 9, 7, 5, 4, 4, 4, 4, 4},
	{0, 0, 10, 7, 6, 5, 4, 4, 4, 4},
	{0, 0, 10, 8, 6, 5, 5, 5, 4, 4},
	{0, 0, 11, 8, 6, 5, 5, 5, 5, 5},
	{0, 0, 12, 9, 7, 6, 5, 5, 5, 5},
	{0, 0, 12, 9, 7, 6, 6, 5, 5, 5},
	{0, 0, 13, 10, 8, 6, 6, 6, 5, 5},
	{0, 0, 14, 10, 8, 7, 6, 6, 6, 5},
	{0, 0, 14, 11, 8, 7, 6, 6, 6, 6},
	{0, 0, 15, 11, 9, 7, 6, 6, 6, 6},
	{0, 0, 16, 12, 9, 8, 6, 6, 6, 6},
}

// DrivePerformance returns the rating of a model at the hull's tonnage
// bracket. ok is false when the model cannot be installed there.
func DrivePerformance(model DriveModel, hullTonnage float64) (rating int, ok bool) {
	index := model.Index()
	if index < 0 {
		return 0, false
	}
	bracket := tonnageBracket(hullTonnage)
	if bracket < MinHullTonnage || bracket > MaxHullTonnage {
		return 0, false
	}
	rating = drivePerformance[index][bracket/10-1]
	return rating, rating > 0
}

// ManeuverFuelPerHour is the reaction drive burn rate per ton of hull per G.
const ManeuverFuelPerHour = 0.025

// reactionFuelLimit is the share of hull tonnage one hour of burn may use.
const reactionFuelLimit = 0.9

// IsReactionDriveValid rejects reaction drives whose single hour of thrust
// would need 90% or more of the hull in fuel.
func IsReactionDriveValid(model DriveModel, hullTonnage float64) bool {
	rating, ok := DrivePerformance(model, hullTonnage)
	if !ok {
		return false
	}
	return hullTonnage*ManeuverFuelPerHour*float64(rating) < hullTonnage*reactionFuelLimit
}

// AvailableDriveModels lists the models installable at the tonnage.
func AvailableDriveModels(hullTonnage float64) []DriveModel {
	result := make([]DriveModel, 0, len(DriveModels))
	for _, model := range DriveModels {
		if _, ok := DrivePerformance(model, hullTonnage); ok {
			result = append(result, model)
		}
	}
	return result
}

func AvailableDriveModelsForType(hullTonnage float64, driveType DriveType) []DriveModel {
	models := AvailableDriveModels(hullTonnage)
	if driveType != ReactionManeuver {
		return models
	}
	result := make([]DriveModel, 0, len(models))
	for _, model := range models {
		if IsReactionDriveValid(model, hullTonnage) {
			result = append(result, model)
		}
	}
	return result
}

// NewDrive builds an installed drive for the hull. The id is left empty for
// the caller to assign.
func NewDrive(driveType DriveType, model DriveModel, hullTonnage int) (Drive, bool) {
	spec, ok := DriveSpecFor(driveType, model)
	if !ok {
		return Drive{}, false
	}
	if driveType == ReactionManeuver && !IsReactionDriveValid(model, float64(hullTonnage)) {
		return Drive{}, false
	}
	rating, ok := DrivePerformance(model, float64(hullTonnage))
	if !ok {
		return Drive{}, false
	}
	return Drive{
		Category:  driveType.Category(),
		DriveType: driveType,
		Model:     model,
		Rating:    rating,
		Mass:      spec.Tonnage,
		Cost:      spec.Cost,
		Quantity:  1,
	}, true
}

func FormatPerformanceRating(rating int, category DriveCategory) string {
	if rating <= 0 {
		return "N/A"
	}
	if category == Maneuver {
		return fmt.Sprintf("M-%d", rating)
	}
	return fmt.Sprintf("P-%d", rating)
}

// energyCapacitySteps maps model index upper bounds to the number of
// energy weapons one power plant can feed.
var energyCapacitySteps = []struct {
	maxIndex int
	capacity int
}{
	{5, 0},
	{10, 1},
	{17, 2},
	{23, 3},
}

func EnergyWeaponCapacity(model DriveModel) int {
	index := model.Index()
	if index < 0 {
		return 0
	}
	for _, step := range energyCapacitySteps {
		if index <= step.maxIndex {
			return step.capacity
		}
	}
	return 0
}

// TotalEnergyWeaponCapacity sums the capacity of every installed power plant.
func TotalEnergyWeaponCapacity(drives []Drive) int {
	total := 0
	for _, drive := range drives {
		if drive.Category != PowerPlant {
			continue
		}
		total += EnergyWeaponCapacity(drive.Model) * drive.Quantity
	}
	return total
}
