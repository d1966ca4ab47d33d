// Package controller
package controller

import (
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/service"
	"github.com/labstack/echo/v4"
)

type RulesControllerInterface interface {
	GetTechLevels(ctx echo.Context) error
	ResolveHull(ctx echo.Context) error
	GetArmorOptions(ctx echo.Context) error
	BuildArmor(ctx echo.Context) error
	GetDriveOptions(ctx echo.Context) error
	CalculateFuel(ctx echo.Context) error
	GetWeaponOptions(ctx echo.Context) error
	CheckWeapon(ctx echo.Context) error
	GetElectronics(ctx echo.Context) error
	GetStaffOptions(ctx echo.Context) error
}

type RulesController struct {
	logger       log.LoggerInterface
	rulesService RulesServiceInterface
}

func NewRulesController(logger log.LoggerInterface, rulesService RulesServiceInterface) *RulesController {
	return &RulesController{
		logger:       logger,
		rulesService: rulesService,
	}
}

// bindRequest 绑定失败时直接写回错误响应, ok为false表示调用方应立即返回
func bindRequest[T any](controller *RulesController, ctx echo.Context, name string) (data *T, ok bool, err error) {
	data = new(T)
	if bindErr := ctx.Bind(data); bindErr != nil {
		controller.logger.ErrorF("RulesController.%s bind error: %v", name, bindErr)
		return nil, false, NewErrorResponse(ctx, &ErrIllegalParam)
	}
	return data, true, nil
}

func (controller *RulesController) GetTechLevels(ctx echo.Context) error {
	return controller.rulesService.GetTechLevels().Response(ctx)
}

func (controller *RulesController) ResolveHull(ctx echo.Context) error {
	data, ok, err := bindRequest[RequestResolveHull](controller, ctx, "ResolveHull")
	if !ok {
		return err
	}
	return controller.rulesService.ResolveHull(data).Response(ctx)
}

func (controller *RulesController) GetArmorOptions(ctx echo.Context) error {
	data, ok, err := bindRequest[RequestArmorOptions](controller, ctx, "GetArmorOptions")
	if !ok {
		return err
	}
	return controller.rulesService.GetArmorOptions(data).Response(ctx)
}

func (controller *RulesController) BuildArmor(ctx echo.Context) error {
	data, ok, err := bindRequest[RequestBuildArmor](controller, ctx, "BuildArmor")
	if !ok {
		return err
	}
	return controller.rulesService.BuildArmor(data).Response(ctx)
}

func (controller *RulesController) GetDriveOptions(ctx echo.Context) error {
	data, ok, err := bindRequest[RequestDriveOptions](controller, ctx, "GetDriveOptions")
	if !ok {
		return err
	}
	return controller.rulesService.GetDriveOptions(data).Response(ctx)
}

func (controller *RulesController) CalculateFuel(ctx echo.Context) error {
	data, ok, err := bindRequest[RequestCalculateFuel](controller, ctx, "CalculateFuel")
	if !ok {
		return err
	}
	return controller.rulesService.CalculateFuel(data).Response(ctx)
}

func (controller *RulesController) GetWeaponOptions(ctx echo.Context) error {
	data, ok, err := bindRequest[RequestWeaponOptions](controller, ctx, "GetWeaponOptions")
	if !ok {
		return err
	}
	return controller.rulesService.GetWeaponOptions(data).Response(ctx)
}

func (controller *RulesController) CheckWeapon(ctx echo.Context) error {
	data, ok, err := bindRequest[RequestCheckWeapon](controller, ctx, "CheckWeapon")
	if !ok {
		return err
	}
	return controller.rulesService.CheckWeapon(data).Response(ctx)
}

func (controller *RulesController) GetElectronics(ctx echo.Context) error {
	data, ok, err := bindRequest[RequestElectronics](controller, ctx, "GetElectronics")
	if !ok {
		return err
	}
	return controller.rulesService.GetElectronics(data).Response(ctx)
}

func (controller *RulesController) GetStaffOptions(ctx echo.Context) error {
	data, ok, err := bindRequest[RequestStaffOptions](controller, ctx, "GetStaffOptions")
	if !ok {
		return err
	}
	return controller.rulesService.GetStaffOptions(data).Response(ctx)
}
