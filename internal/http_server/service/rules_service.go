// Package service
package service

import (
	"errors"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/craft"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/service"
	"github.com/samber/lo"
)

type RulesService struct {
	logger  log.LoggerInterface
	general *config.GeneralConfig
}

func NewRulesService(logger log.LoggerInterface, general *config.GeneralConfig) *RulesService {
	return &RulesService{
		logger:  logger,
		general: general,
	}
}

func validTonnage(tonnage int) bool {
	return tonnage >= craft.MinHullTonnage && tonnage <= craft.MaxHullTonnage
}

func (rulesService *RulesService) GetTechLevels() *ApiResponse[ResponseTechLevels] {
	data := ResponseTechLevels(append([]craft.TechLevelModel{}, craft.TechLevels...))
	return NewApiResponse(&SuccessGetRules, Unsatisfied, &data)
}

func (rulesService *RulesService) ResolveHull(req *RequestResolveHull) *ApiResponse[ResponseResolveHull] {
	if !validTonnage(req.Tonnage) {
		return NewApiResponse[ResponseResolveHull](&ErrInvalidTonnage, Unsatisfied, nil)
	}
	code, cost := craft.ResolveHull(req.Tonnage)
	return NewApiResponse(&SuccessGetRules, Unsatisfied, &ResponseResolveHull{
		Tonnage:     req.Tonnage,
		TonnageCode: code,
		Cost:        cost.MCr(),
		Tonnages:    craft.HullTonnages(),
	})
}

func (rulesService *RulesService) GetArmorOptions(req *RequestArmorOptions) *ApiResponse[ResponseArmorOptions] {
	value, ok := req.TechLevel.Value()
	if !ok {
		return NewApiResponse[ResponseArmorOptions](&ErrInvalidTechLevel, Unsatisfied, nil)
	}
	data := ResponseArmorOptions(lo.Map(craft.AvailableArmorTypes(req.TechLevel), func(def *craft.ArmorDefinition, _ int) ArmorOption {
		return ArmorOption{ArmorDefinition: def, MaxRating: def.MaxRating(value)}
	}))
	return NewApiResponse(&SuccessGetRules, Unsatisfied, &data)
}

func (rulesService *RulesService) BuildArmor(req *RequestBuildArmor) *ApiResponse[ResponseBuildArmor] {
	if !req.Hull.TechLevel.Valid() {
		return NewApiResponse[ResponseBuildArmor](&ErrInvalidTechLevel, Unsatisfied, nil)
	}
	if !validTonnage(req.Hull.Tonnage) {
		return NewApiResponse[ResponseBuildArmor](&ErrInvalidTonnage, Unsatisfied, nil)
	}
	hull := craft.NewHull(req.Hull.Name, req.Hull.TechLevel, req.Hull.Tonnage, req.Hull.Description)
	armor, ok := craft.NewArmor(req.Type, req.Rating, hull)
	if !ok {
		return NewApiResponse[ResponseBuildArmor](&ErrArmorUnavailable, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessGetRules, Unsatisfied, (*ResponseBuildArmor)(armor))
}

// anyDriveOptions 未指定驱动类型时只给出型号和性能等级, 质量和价格依赖具体类型
func anyDriveOptions(tonnage float64) []DriveOption {
	return lo.FilterMap(craft.AvailableDriveModels(tonnage), func(model craft.DriveModel, _ int) (DriveOption, bool) {
		rating, ok := craft.DrivePerformance(model, tonnage)
		if !ok {
			return DriveOption{}, false
		}
		return DriveOption{
			Model:          model,
			Rating:         rating,
			EnergyCapacity: craft.EnergyWeaponCapacity(model),
		}, true
	})
}

func (rulesService *RulesService) GetDriveOptions(req *RequestDriveOptions) *ApiResponse[ResponseDriveOptions] {
	if !validTonnage(req.Tonnage) {
		return NewApiResponse[ResponseDriveOptions](&ErrInvalidTonnage, Unsatisfied, nil)
	}
	if req.DriveType == "" {
		return NewApiResponse(&SuccessGetRules, Unsatisfied, &ResponseDriveOptions{
			Models: anyDriveOptions(float64(req.Tonnage)),
		})
	}
	if !req.DriveType.Valid() {
		return NewApiResponse[ResponseDriveOptions](&ErrDriveUnavailable, Unsatisfied, nil)
	}
	models := craft.AvailableDriveModelsForType(float64(req.Tonnage), req.DriveType)
	options := lo.FilterMap(models, func(model craft.DriveModel, _ int) (DriveOption, bool) {
		drive, ok := craft.NewDrive(req.DriveType, model, req.Tonnage)
		if !ok {
			return DriveOption{}, false
		}
		option := DriveOption{
			Model:       model,
			Rating:      drive.Rating,
			Performance: craft.FormatPerformanceRating(drive.Rating, drive.Category),
			Mass:        drive.Mass,
			Cost:        drive.Cost.MCr(),
		}
		if drive.Category == craft.PowerPlant {
			option.EnergyCapacity = craft.EnergyWeaponCapacity(model)
		}
		return option, true
	})
	return NewApiResponse(&SuccessGetRules, Unsatisfied, &ResponseDriveOptions{
		DriveType: req.DriveType,
		Models:    options,
	})
}

func (rulesService *RulesService) CalculateFuel(req *RequestCalculateFuel) *ApiResponse[ResponseCalculateFuel] {
	plan := rulesService.general.FuelPlan()
	if req.Weeks != nil {
		plan.Weeks = *req.Weeks
	}
	if req.Hours != nil {
		plan.Hours = *req.Hours
	}
	if plan.Weeks < 0 || plan.Hours < 0 || req.HullTonnage <= 0 {
		return NewApiResponse[ResponseCalculateFuel](&ErrInvalidFuelPlan, Unsatisfied, nil)
	}
	requirement := craft.TotalFuelRequirement(req.Drives, req.HullTonnage, plan.Weeks, plan.Hours)
	return NewApiResponse(&SuccessGetRules, Unsatisfied, (*ResponseCalculateFuel)(&requirement))
}

func (rulesService *RulesService) GetWeaponOptions(req *RequestWeaponOptions) *ApiResponse[ResponseWeaponOptions] {
	if !validTonnage(req.Tonnage) {
		return NewApiResponse[ResponseWeaponOptions](&ErrInvalidTonnage, Unsatisfied, nil)
	}
	available := craft.AvailableShipWeapons(req.Tonnage)
	weapons := lo.Filter(craft.ShipWeaponSpecs(), func(spec *craft.ShipWeaponSpec, _ int) bool {
		_, ok := available[spec.Type]
		return ok
	})
	return NewApiResponse(&SuccessGetRules, Unsatisfied, &ResponseWeaponOptions{
		Limits:  craft.WeaponLimitsFor(req.Tonnage),
		Weapons: weapons,
	})
}

// CheckWeapon 判断能否再加装一门武器, 规则不允许时仍返回200并给出原因
func (rulesService *RulesService) CheckWeapon(req *RequestCheckWeapon) *ApiResponse[ResponseCheckWeapon] {
	err := craft.CheckShipWeapon(req.Design, req.Type)
	if errors.Is(err, craft.ErrUnknownWeapon) {
		return NewApiResponse[ResponseCheckWeapon](&ErrUnknownWeaponType, Unsatisfied, nil)
	}
	if err != nil {
		return NewApiResponse(&SuccessGetRules, Unsatisfied, &ResponseCheckWeapon{Allowed: false, Reason: err.Error()})
	}
	return NewApiResponse(&SuccessWeaponAccepted, Unsatisfied, &ResponseCheckWeapon{Allowed: true})
}

func (rulesService *RulesService) GetElectronics(req *RequestElectronics) *ApiResponse[ResponseElectronics] {
	if req.TechLevel == "" {
		data := ResponseElectronics(craft.ElectronicsSpecs())
		return NewApiResponse(&SuccessGetRules, Unsatisfied, &data)
	}
	if !req.TechLevel.Valid() {
		return NewApiResponse[ResponseElectronics](&ErrInvalidTechLevel, Unsatisfied, nil)
	}
	data := ResponseElectronics(craft.AvailableElectronics(req.TechLevel))
	return NewApiResponse(&SuccessGetRules, Unsatisfied, &data)
}

func (rulesService *RulesService) GetStaffOptions(req *RequestStaffOptions) *ApiResponse[ResponseStaffOptions] {
	design := req.Design.Normalize()
	return NewApiResponse(&SuccessGetRules, Unsatisfied, &ResponseStaffOptions{
		StaffOptions:    craft.StaffOptionsFor(design),
		RequiredGunners: craft.RequiredGunners(design.Weapons),
		TotalCrew:       craft.TotalCrew(design.Staff),
	})
}
