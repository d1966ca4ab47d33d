// Package craft
package craft

import (
	"encoding/json"
	"fmt"
	"math"
)

type TechLevel string

const (
	TechLevelA TechLevel = "A"
	TechLevelB TechLevel = "B"
	TechLevelC TechLevel = "C"
	TechLevelD TechLevel = "D"
	TechLevelE TechLevel = "E"
	TechLevelF TechLevel = "F"
	TechLevelG TechLevel = "G"
	TechLevelH TechLevel = "H"
)

type TechLevelModel struct {
	Code  TechLevel `json:"code"`
	Value int       `json:"value"`
}

var TechLevels = []TechLevelModel{
	{TechLevelA, 10},
	{TechLevelB, 11},
	{TechLevelC, 12},
	{TechLevelD, 13},
	{TechLevelE, 14},
	{TechLevelF, 15},
	{TechLevelG, 16},
	{TechLevelH, 17},
}

// Value 返回科技等级对应的数值, ok为false表示代码无效
func (tl TechLevel) Value() (value int, ok bool) {
	for _, model := range TechLevels {
		if model.Code == tl {
			return model.Value, true
		}
	}
	return 0, false
}

func (tl TechLevel) Valid() bool {
	_, ok := tl.Value()
	return ok
}

// Credits is the internal currency representation, whole credits.
type Credits int64

const CreditsPerMCr = 1_000_000

func MCr(value float64) Credits {
	return Credits(math.Round(value * CreditsPerMCr))
}

func (c Credits) MCr() float64 {
	return float64(c) / CreditsPerMCr
}

// UnmarshalJSON accepts fractional credit values and rounds them to whole credits.
func (c *Credits) UnmarshalJSON(data []byte) error {
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*c = Credits(math.Round(value))
	return nil
}

func (c Credits) String() string {
	return fmt.Sprintf("%.1f MCr", c.MCr())
}

// tonnageBracket rounds up to the nearest 10 ton step.
func tonnageBracket(tonnage float64) int {
	return int(math.Ceil(tonnage/10)) * 10
}

func clampInt(value, lower, upper int) int {
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}
	return value
}
