// Package service
package service

import (
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/craft"
)

var (
	SuccessGetRules       = ApiStatus{"GET_RULES", "获取规则成功", Ok}
	ErrInvalidTonnage     = ApiStatus{"INVALID_TONNAGE", "船体吨位超出范围", BadRequest}
	ErrInvalidTechLevel   = ApiStatus{"INVALID_TECH_LEVEL", "科技等级无效", BadRequest}
	ErrArmorUnavailable   = ApiStatus{"ARMOR_UNAVAILABLE", "该科技等级无法使用此装甲", BadRequest}
	ErrDriveUnavailable   = ApiStatus{"DRIVE_UNAVAILABLE", "该船体无法安装此引擎", BadRequest}
	ErrUnknownWeaponType  = ApiStatus{"UNKNOWN_WEAPON", "未知的武器类型", BadRequest}
	ErrInvalidFuelPlan    = ApiStatus{"INVALID_FUEL_PLAN", "燃料规划参数不正确", BadRequest}
	SuccessWeaponAccepted = ApiStatus{"WEAPON_ACCEPTED", "可以安装该武器", Ok}
)

// RulesServiceInterface 暴露规则引擎的查询接口, 所有方法均为纯计算
type RulesServiceInterface interface {
	GetTechLevels() *ApiResponse[ResponseTechLevels]
	ResolveHull(req *RequestResolveHull) *ApiResponse[ResponseResolveHull]
	GetArmorOptions(req *RequestArmorOptions) *ApiResponse[ResponseArmorOptions]
	BuildArmor(req *RequestBuildArmor) *ApiResponse[ResponseBuildArmor]
	GetDriveOptions(req *RequestDriveOptions) *ApiResponse[ResponseDriveOptions]
	CalculateFuel(req *RequestCalculateFuel) *ApiResponse[ResponseCalculateFuel]
	GetWeaponOptions(req *RequestWeaponOptions) *ApiResponse[ResponseWeaponOptions]
	CheckWeapon(req *RequestCheckWeapon) *ApiResponse[ResponseCheckWeapon]
	GetElectronics(req *RequestElectronics) *ApiResponse[ResponseElectronics]
	GetStaffOptions(req *RequestStaffOptions) *ApiResponse[ResponseStaffOptions]
}

type ResponseTechLevels []craft.TechLevelModel

type RequestResolveHull struct {
	Tonnage int `query:"tonnage"`
}

type ResponseResolveHull struct {
	Tonnage     int     `json:"tonnage"`
	TonnageCode string  `json:"tonnage_code"`
	Cost        float64 `json:"cost"`
	Tonnages    []int   `json:"tonnages"`
}

type RequestArmorOptions struct {
	TechLevel craft.TechLevel `query:"tech_level"`
}

type ArmorOption struct {
	*craft.ArmorDefinition
	MaxRating int `json:"max_rating"`
}

type ResponseArmorOptions []ArmorOption

type RequestBuildArmor struct {
	Type   craft.ArmorType `json:"type"`
	Rating int             `json:"rating"`
	Hull   craft.Hull      `json:"hull"`
}

type ResponseBuildArmor craft.Armor

type RequestDriveOptions struct {
	Tonnage   int             `query:"tonnage"`
	DriveType craft.DriveType `query:"drive_type"`
}

type DriveOption struct {
	Model          craft.DriveModel `json:"model"`
	Rating         int              `json:"rating"`
	Performance    string           `json:"performance,omitempty"`
	Mass           float64          `json:"mass,omitempty"`
	Cost           float64          `json:"cost,omitempty"`
	EnergyCapacity int              `json:"energy_capacity,omitempty"`
}

type ResponseDriveOptions struct {
	DriveType craft.DriveType `json:"drive_type,omitempty"`
	Models    []DriveOption   `json:"models"`
}

type RequestCalculateFuel struct {
	Drives      []craft.Drive `json:"drives"`
	HullTonnage float64       `json:"hull_tonnage"`
	Weeks       *float64      `json:"weeks"`
	Hours       *float64      `json:"hours"`
}

type ResponseCalculateFuel craft.FuelRequirement

type RequestWeaponOptions struct {
	Tonnage int `query:"tonnage"`
}

type ResponseWeaponOptions struct {
	Limits  craft.WeaponLimits      `json:"limits"`
	Weapons []*craft.ShipWeaponSpec `json:"weapons"`
}

type RequestCheckWeapon struct {
	Design craft.Design     `json:"design"`
	Type   craft.WeaponType `json:"type"`
}

type ResponseCheckWeapon struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

type RequestElectronics struct {
	TechLevel craft.TechLevel `query:"tech_level"`
}

type ResponseElectronics []*craft.ElectronicsSpec

type RequestStaffOptions struct {
	craft.Design
}

type ResponseStaffOptions struct {
	craft.StaffOptions
	RequiredGunners int `json:"required_gunners"`
	TotalCrew       int `json:"total_crew"`
}
