// Package craft
package craft

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestStepNavigation(t *testing.T) {
	assert.Equal(t, StepHull, NextStep(StepSelect))
	assert.Equal(t, StepSummary, NextStep(StepStaff))
	assert.Equal(t, StepSummary, NextStep(StepSummary))
	assert.Equal(t, StepSelect, PreviousStep(StepSelect))
	assert.Equal(t, StepWeapons, PreviousStep(StepCargo))
	assert.Equal(t, Step("bogus"), NextStep("bogus"))

	step := StepSelect
	for range Steps {
		step = NextStep(step)
	}
	assert.Equal(t, StepSummary, step)
}

func TestStepValid(t *testing.T) {
	empty := NewDesign()
	assert.False(t, StepValid(StepHull, empty))
	assert.False(t, StepValid(StepDrives, empty))
	assert.False(t, StepValid(StepFittings, empty))
	assert.True(t, StepValid(StepStaff, empty))
	assert.True(t, StepValid(StepArmor, empty))
	assert.False(t, StepValid("bogus", empty))

	design := sampleDesign(t)
	for _, step := range Steps {
		assert.True(t, StepValid(step, design), "step %s", step)
	}

	blank := design.WithName("   ")
	assert.False(t, StepValid(StepHull, blank))
}

func TestCanAdvanceBlocksOverweight(t *testing.T) {
	design := sampleDesign(t)
	assert.True(t, CanAdvance(StepCargo, design))

	heavy := design.WithCargo(Cargo{CargoBay: 35})
	assert.False(t, CanAdvance(StepCargo, heavy))
	assert.False(t, CanAdvance(StepArmor, heavy))
}
