// Package config
package config

import (
	"errors"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/craft"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
)

// GeneralConfig 燃料规划默认值, 用于评估设计时的燃料需求
type GeneralConfig struct {
	PowerPlantWeeks float64 `json:"power_plant_weeks"`
	ManeuverHours   float64 `json:"maneuver_hours"`
}

func defaultGeneralConfig() *GeneralConfig {
	return &GeneralConfig{
		PowerPlantWeeks: craft.DefaultPowerPlantWeeks,
		ManeuverHours:   craft.DefaultManeuverHours,
	}
}

func (config *GeneralConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if config.PowerPlantWeeks <= 0 {
		return ValidFail(errors.New("invalid json field server.general.power_plant_weeks, value must larger than 0"))
	}
	if config.ManeuverHours <= 0 {
		return ValidFail(errors.New("invalid json field server.general.maneuver_hours, value must larger than 0"))
	}
	if config.PowerPlantWeeks > 52 {
		logger.WarnF("power_plant_weeks is %v, fuel recommendations will be very large", config.PowerPlantWeeks)
	}
	return ValidPass()
}

func (config *GeneralConfig) FuelPlan() craft.FuelPlan {
	return craft.FuelPlan{Weeks: config.PowerPlantWeeks, Hours: config.ManeuverHours}
}
