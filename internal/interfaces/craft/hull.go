// Package craft
package craft

import "fmt"

const (
	MinHullTonnage  = 10
	MaxHullTonnage  = 100
	HullTonnageStep = 10
)

// hullCostSteps is indexed by tonnage bracket, s1..s10, in MCr.
var hullCostSteps = []float64{1.0, 1.2, 1.3, 1.4, 1.5, 1.6, 1.7, 1.8, 1.9, 2.0}

func hullBracketIndex(tonnage int) int {
	return clampInt(tonnageBracket(float64(tonnage))/10, 1, len(hullCostSteps)) - 1
}

// HullCode maps a tonnage onto its s1..s10 code, clamping outside [10,100].
func HullCode(tonnage int) string {
	return fmt.Sprintf("s%d", hullBracketIndex(tonnage)+1)
}

func HullCost(tonnage int) Credits {
	return MCr(hullCostSteps[hullBracketIndex(tonnage)])
}

func ResolveHull(tonnage int) (tonnageCode string, cost Credits) {
	return HullCode(tonnage), HullCost(tonnage)
}

func NewHull(name string, techLevel TechLevel, tonnage int, description string) Hull {
	code, cost := ResolveHull(tonnage)
	return Hull{
		Name:        name,
		TechLevel:   techLevel,
		TonnageCode: code,
		Tonnage:     tonnage,
		Cost:        cost,
		Description: description,
	}
}

// HullTonnages lists the selectable hull sizes.
func HullTonnages() []int {
	tonnages := make([]int, 0, MaxHullTonnage/HullTonnageStep)
	for t := MinHullTonnage; t <= MaxHullTonnage; t += HullTonnageStep {
		tonnages = append(tonnages, t)
	}
	return tonnages
}
