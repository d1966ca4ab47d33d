// Package craft
package craft

import "math"

type FittingType string

const (
	Cockpit        FittingType = "cockpit"
	ControlCabin   FittingType = "control_cabin"
	PassengerCabin FittingType = "cabin"
	Airlock        FittingType = "airlock"
	Fresher        FittingType = "fresher"
	Galley         FittingType = "galley"
	Electronics    FittingType = "electronics"
	OtherFitting   FittingType = "other"
)

const (
	CockpitMassPerCrew      = 1.5
	ControlCabinMassPerCrew = 3.0
	CabinMassPerPassenger   = 1.5
	CabinCostPerTon         = Credits(50_000)
	CockpitCostPerBracket   = Credits(100_000)

	AirlockMass  = 1.0
	AirlockCost  = Credits(200_000)
	MaxAirlocks  = 6
	FresherMass  = 1.0
	FresherCost  = Credits(100_000)
	GalleyMass   = 0.5
	GalleyCost   = Credits(100_000)
	cockpitBlock = 20
)

func CockpitMass(crew int) float64 {
	return CockpitMassPerCrew * float64(crew)
}

func ControlCabinMass(crew int) float64 {
	return ControlCabinMassPerCrew * float64(crew)
}

// ControlCabinPassengers is floor(crew / 2).
func ControlCabinPassengers(crew int) int {
	return crew / 2
}

// CockpitCost depends only on hull size, for both cockpits and control cabins.
func CockpitCost(hullTonnage int) Credits {
	blocks := math.Ceil(float64(hullTonnage) / cockpitBlock)
	return Credits(blocks) * CockpitCostPerBracket
}

func CabinMass(passengers int) float64 {
	return CabinMassPerPassenger * float64(passengers)
}

func CabinCost(passengers int) Credits {
	return Credits(math.Round(CabinMass(passengers) * float64(CabinCostPerTon)))
}

func ClampAirlockQuantity(quantity int) int {
	return clampInt(quantity, 1, MaxAirlocks)
}

func NewCockpit(crew int, hullTonnage int) Fitting {
	crew = max(crew, 1)
	return Fitting{
		Type:     Cockpit,
		Name:     "Cockpit",
		Mass:     CockpitMass(crew),
		Cost:     CockpitCost(hullTonnage),
		Quantity: 1,
		Crew:     crew,
	}
}

func NewControlCabin(crew int, hullTonnage int) Fitting {
	crew = max(crew, 1)
	return Fitting{
		Type:       ControlCabin,
		Name:       "Control Cabin",
		Mass:       ControlCabinMass(crew),
		Cost:       CockpitCost(hullTonnage),
		Quantity:   1,
		Crew:       crew,
		Passengers: ControlCabinPassengers(crew),
	}
}

func NewPassengerCabin(passengers int) Fitting {
	passengers = max(passengers, 1)
	return Fitting{
		Type:       PassengerCabin,
		Name:       "Cabin Space",
		Mass:       CabinMass(passengers),
		Cost:       CabinCost(passengers),
		Quantity:   1,
		Passengers: passengers,
	}
}

func NewAirlock(quantity int) Fitting {
	return Fitting{
		Type:     Airlock,
		Name:     "Airlock",
		Mass:     AirlockMass,
		Cost:     AirlockCost,
		Quantity: ClampAirlockQuantity(quantity),
	}
}

func NewFresher() Fitting {
	return Fitting{Type: Fresher, Name: "Fresher", Mass: FresherMass, Cost: FresherCost, Quantity: 1}
}

func NewGalley() Fitting {
	return Fitting{Type: Galley, Name: "Galley", Mass: GalleyMass, Cost: GalleyCost, Quantity: 1}
}

type ElectronicsType string

const (
	StandardElectronics      ElectronicsType = "standard"
	BasicCivilianElectronics ElectronicsType = "basic_civilian"
	BasicMilitaryElectronics ElectronicsType = "basic_military"
	AdvancedElectronics      ElectronicsType = "advanced"
	VeryAdvancedElectronics  ElectronicsType = "very_advanced"
)

type ElectronicsSpec struct {
	Type        ElectronicsType `json:"type"`
	Name        string          `json:"name"`
	TechLevel   int             `json:"tech_level"`
	DieModifier int             `json:"die_modifier"`
	Mass        float64         `json:"mass"`
	Cost        Credits         `json:"cost"`
	Includes    string          `json:"includes"`
}

var electronicsSpecs = []*ElectronicsSpec{
	{StandardElectronics, "Standard Electronics", 8, -4, 0, 0, "Radar, Lidar"},
	{BasicCivilianElectronics, "Basic Civilian Electronics", 9, -2, 1, MCr(0.05), "Radar, Lidar"},
	{BasicMilitaryElectronics, "Basic Military Electronics", 10, 0, 2, MCr(1), "Radar, Lidar, Jammers"},
	{AdvancedElectronics, "Advanced Electronics", 11, 1, 3, MCr(2), "Radar, Lidar, Jammers, Densitometer"},
	{VeryAdvancedElectronics, "Very Advanced Electronics", 12, 2, 5, MCr(4), "Radar, Lidar, Jammers, Densitometer, Neural Activity Sensor"},
}

func ElectronicsSpecFor(electronicsType ElectronicsType) (*ElectronicsSpec, bool) {
	for _, spec := range electronicsSpecs {
		if spec.Type == electronicsType {
			return spec, true
		}
	}
	return nil, false
}

// ElectronicsSpecs returns every electronics suite in table order.
func ElectronicsSpecs() []*ElectronicsSpec {
	return append(make([]*ElectronicsSpec, 0, len(electronicsSpecs)), electronicsSpecs...)
}

// AvailableElectronics lists the suites buildable at the hull's tech level.
func AvailableElectronics(techLevel TechLevel) []*ElectronicsSpec {
	value, ok := techLevel.Value()
	if !ok {
		return []*ElectronicsSpec{}
	}
	result := make([]*ElectronicsSpec, 0, len(electronicsSpecs))
	for _, spec := range electronicsSpecs {
		if spec.TechLevel <= value {
			result = append(result, spec)
		}
	}
	return result
}

func NewElectronics(electronicsType ElectronicsType) (Fitting, bool) {
	spec, ok := ElectronicsSpecFor(electronicsType)
	if !ok {
		return Fitting{}, false
	}
	dm := spec.DieModifier
	return Fitting{
		Type:            Electronics,
		Name:            spec.Name,
		Mass:            spec.Mass,
		Cost:            spec.Cost,
		Quantity:        1,
		ElectronicsType: spec.Type,
		DieModifier:     &dm,
		Includes:        spec.Includes,
	}, true
}
