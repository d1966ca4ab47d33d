// Package craft
package craft

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func ExampleResolveHull() {
	ResolveHull(40)
}

func TestResolveHull(t *testing.T) {
	tests := []struct {
		tonnage      int
		expectedCode string
		expectedCost Credits
	}{
		{5, "s1", 1_000_000},
		{10, "s1", 1_000_000},
		{11, "s2", 1_200_000},
		{20, "s2", 1_200_000},
		{30, "s3", 1_300_000},
		{40, "s4", 1_400_000},
		{45, "s5", 1_500_000},
		{60, "s6", 1_600_000},
		{70, "s7", 1_700_000},
		{80, "s8", 1_800_000},
		{90, "s9", 1_900_000},
		{100, "s10", 2_000_000},
		{150, "s10", 2_000_000},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		code, cost := ResolveHull(test.tonnage)
		if code != test.expectedCode || cost != test.expectedCost {
			fail++
			t.Errorf("ResolveHull(%d) = (%s, %d); expected (%s, %d)", test.tonnage, code, cost, test.expectedCode, test.expectedCost)
			continue
		}
		pass++
	}
	t.Logf("TestResolveHull: %d pass, %d fail", pass, fail)
}

func TestHullCostAtHundredTons(t *testing.T) {
	assert.Equal(t, Credits(2_000_000), HullCost(100))
	assert.InDelta(t, 2.0, HullCost(100).MCr(), 1e-9)
}

func TestNewHull(t *testing.T) {
	hull := NewHull("Pinnace", TechLevelC, 40, "ship's boat")
	assert.Equal(t, "s4", hull.TonnageCode)
	assert.Equal(t, Credits(1_400_000), hull.Cost)
	assert.Equal(t, TechLevelC, hull.TechLevel)
}

func TestHullTonnages(t *testing.T) {
	assert.Equal(t, []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, HullTonnages())
}

func TestTechLevelValue(t *testing.T) {
	tests := []struct {
		code     TechLevel
		expected int
		ok       bool
	}{
		{TechLevelA, 10, true},
		{TechLevelD, 13, true},
		{TechLevelH, 17, true},
		{"Z", 0, false},
		{"", 0, false},
	}
	for _, test := range tests {
		value, ok := test.code.Value()
		assert.Equal(t, test.expected, value, "tech level %q", test.code)
		assert.Equal(t, test.ok, ok, "tech level %q", test.code)
	}
}

func TestCredits(t *testing.T) {
	assert.Equal(t, Credits(1_500_000), MCr(1.5))
	assert.Equal(t, Credits(50_000), MCr(0.05))
	assert.Equal(t, "98.1 MCr", MCr(98.1).String())
}

func TestCreditsUnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected Credits
	}{
		{"1300000", Credits(1_300_000)},
		{"108333.33333333333", Credits(108_333)},
		{"0.5", Credits(1)},
		{"-2.4", Credits(-2)},
		{"null", Credits(0)},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		var result Credits
		if err := json.Unmarshal([]byte(test.input), &result); err != nil {
			fail++
			t.Errorf("Unmarshal(%s) error: %v", test.input, err)
			continue
		}
		if result != test.expected {
			fail++
			t.Errorf("Unmarshal(%s) = %d; expected %d", test.input, result, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestCreditsUnmarshalJSON: %d pass, %d fail", pass, fail)

	var result Credits
	require.Error(t, json.Unmarshal([]byte(`"1.5"`), &result))
}
