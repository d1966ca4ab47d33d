// Package craft
package craft

import "strings"

type Step string

const (
	StepSelect   Step = "select"
	StepHull     Step = "hull"
	StepArmor    Step = "armor"
	StepDrives   Step = "drives"
	StepFittings Step = "fittings"
	StepWeapons  Step = "weapons"
	StepCargo    Step = "cargo"
	StepStaff    Step = "staff"
	StepSummary  Step = "summary"
)

var Steps = []Step{StepSelect, StepHull, StepArmor, StepDrives, StepFittings, StepWeapons, StepCargo, StepStaff, StepSummary}

func (s Step) index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

func (s Step) Valid() bool {
	return s.index() >= 0
}

// NextStep returns the following panel, or the same step at the end.
func NextStep(step Step) Step {
	index := step.index()
	if index < 0 || index == len(Steps)-1 {
		return step
	}
	return Steps[index+1]
}

func PreviousStep(step Step) Step {
	index := step.index()
	if index <= 0 {
		return step
	}
	return Steps[index-1]
}

// StepValid reports whether the panel's own inputs are complete.
func StepValid(step Step, design Design) bool {
	switch step {
	case StepHull:
		return strings.TrimSpace(design.Name) != "" && design.Hull.TechLevel.Valid() && design.Hull.Tonnage > 0
	case StepDrives:
		return len(design.Drives) > 0
	case StepFittings:
		return len(design.Fittings) > 0
	case StepStaff:
		return design.Staff.Pilot > 0
	default:
		return step.Valid()
	}
}

// CanAdvance also refuses to leave a panel while the design is overweight.
func CanAdvance(step Step, design Design) bool {
	return StepValid(step, design) && !IsOverweight(design)
}
