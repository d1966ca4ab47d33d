// Package craft
package craft

import "math"

type ArmorType string

const (
	TitaniumSteel    ArmorType = "titanium_steel"
	Crystaliron      ArmorType = "crystaliron"
	BondedSuperdense ArmorType = "bonded_superdense"
)

type ArmorDefinition struct {
	Type                  ArmorType `json:"type"`
	Name                  string    `json:"name"`
	MinTechLevel          int       `json:"min_tech_level"`
	ProtectionPer5Percent int       `json:"protection_per_5_percent"`
	CostPercentOfHull     int       `json:"cost_percent_of_hull"`
	ratingCap             int       // 0 means the tech level itself is the cap
}

// MaxRating 指定科技等级下该装甲允许的最大等级
func (def *ArmorDefinition) MaxRating(techLevel int) int {
	if def.ratingCap > 0 && def.ratingCap < techLevel {
		return def.ratingCap
	}
	return techLevel
}

var armorDefinitions = []*ArmorDefinition{
	{TitaniumSteel, "Titanium Steel", 7, 2, 5, 9},
	{Crystaliron, "Crystaliron", 10, 4, 20, 13},
	{BondedSuperdense, "Bonded Superdense", 14, 6, 50, 0},
}

func ArmorDefinitionFor(armorType ArmorType) (*ArmorDefinition, bool) {
	for _, def := range armorDefinitions {
		if def.Type == armorType {
			return def, true
		}
	}
	return nil, false
}

// AvailableArmorTypes returns the armor types unlocked at the tech level,
// in table order. An invalid tech level unlocks nothing.
func AvailableArmorTypes(techLevel TechLevel) []*ArmorDefinition {
	value, ok := techLevel.Value()
	if !ok {
		return []*ArmorDefinition{}
	}
	result := make([]*ArmorDefinition, 0, len(armorDefinitions))
	for _, def := range armorDefinitions {
		if value >= def.MinTechLevel {
			result = append(result, def)
		}
	}
	return result
}

func MaxArmorRating(armorType ArmorType, techLevel TechLevel) int {
	def, ok := ArmorDefinitionFor(armorType)
	if !ok {
		return 0
	}
	value, ok := techLevel.Value()
	if !ok {
		return 0
	}
	return def.MaxRating(value)
}

// ArmorMass never drops below one ton.
func ArmorMass(rating int, armorType ArmorType, hullTonnage int) float64 {
	def, ok := ArmorDefinitionFor(armorType)
	if !ok {
		return 0
	}
	mass := float64(hullTonnage) * float64(rating) * (5 / float64(def.ProtectionPer5Percent)) / 100
	return math.Max(1, mass)
}

func ArmorCost(rating int, armorType ArmorType, hullCost Credits) Credits {
	def, ok := ArmorDefinitionFor(armorType)
	if !ok {
		return 0
	}
	cost := float64(rating) * float64(def.CostPercentOfHull) * float64(hullCost) / float64(100*def.ProtectionPer5Percent)
	return Credits(math.Round(cost))
}

// NewArmor builds an armor layer for the hull, clamping rating into [1, max].
// ok is false when the type is unknown or locked at the hull's tech level.
func NewArmor(armorType ArmorType, rating int, hull Hull) (armor *Armor, ok bool) {
	def, ok := ArmorDefinitionFor(armorType)
	if !ok {
		return nil, false
	}
	techLevel, ok := hull.TechLevel.Value()
	if !ok || techLevel < def.MinTechLevel {
		return nil, false
	}
	rating = clampInt(rating, 1, def.MaxRating(techLevel))
	return &Armor{
		Type:   armorType,
		Rating: rating,
		Mass:   ArmorMass(rating, armorType, hull.Tonnage),
		Cost:   ArmorCost(rating, armorType, hull.Cost),
	}, true
}

// EnableArmor picks the first available type at rating 1.
func EnableArmor(hull Hull) (*Armor, bool) {
	available := AvailableArmorTypes(hull.TechLevel)
	if len(available) == 0 {
		return nil, false
	}
	return NewArmor(available[0].Type, 1, hull)
}

// ChangeArmorType keeps the current rating where the new type allows it.
func ChangeArmorType(armor *Armor, armorType ArmorType, hull Hull) (*Armor, bool) {
	rating := 1
	if armor != nil {
		rating = armor.Rating
	}
	return NewArmor(armorType, rating, hull)
}
