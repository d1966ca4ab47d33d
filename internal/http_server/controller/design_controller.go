// Package controller
package controller

import (
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/service"
	"github.com/labstack/echo/v4"
)

type DesignControllerInterface interface {
	GetDesigns(ctx echo.Context) error
	GetDesignInfo(ctx echo.Context) error
	CreateDesign(ctx echo.Context) error
	UpdateDesign(ctx echo.Context) error
	DeleteDesign(ctx echo.Context) error
	CheckNameAvailability(ctx echo.Context) error
	EvaluateDesign(ctx echo.Context) error
}

type DesignController struct {
	logger        log.LoggerInterface
	designService DesignServiceInterface
}

func NewDesignController(logger log.LoggerInterface, designService DesignServiceInterface) *DesignController {
	return &DesignController{
		logger:        logger,
		designService: designService,
	}
}

func (controller *DesignController) GetDesigns(ctx echo.Context) error {
	return controller.designService.GetDesigns(&RequestGetDesigns{}).Response(ctx)
}

func (controller *DesignController) GetDesignInfo(ctx echo.Context) error {
	data := &RequestDesignInfo{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("DesignController.GetDesignInfo bind error: %v", err)
		return NewErrorResponse(ctx, &ErrIllegalParam)
	}
	return controller.designService.GetDesignInfo(data).Response(ctx)
}

func (controller *DesignController) CreateDesign(ctx echo.Context) error {
	data := &RequestSaveDesign{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("DesignController.CreateDesign bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	data.DesignId = 0
	return controller.designService.SaveDesign(data).Response(ctx)
}

func (controller *DesignController) UpdateDesign(ctx echo.Context) error {
	data := &RequestSaveDesign{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("DesignController.UpdateDesign bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	if data.DesignId == 0 {
		return NewErrorResponse(ctx, &ErrIllegalParam)
	}
	return controller.designService.SaveDesign(data).Response(ctx)
}

func (controller *DesignController) DeleteDesign(ctx echo.Context) error {
	data := &RequestDeleteDesign{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("DesignController.DeleteDesign bind error: %v", err)
		return NewErrorResponse(ctx, &ErrIllegalParam)
	}
	return controller.designService.DeleteDesign(data).Response(ctx)
}

func (controller *DesignController) CheckNameAvailability(ctx echo.Context) error {
	data := &RequestCheckName{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("DesignController.CheckNameAvailability bind error: %v", err)
		return NewErrorResponse(ctx, &ErrIllegalParam)
	}
	return controller.designService.CheckNameAvailability(data).Response(ctx)
}

// EvaluateDesign 设计在请求体中, 燃料规划可通过weeks/hours查询参数覆盖
func (controller *DesignController) EvaluateDesign(ctx echo.Context) error {
	data := &RequestEvaluateDesign{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("DesignController.EvaluateDesign bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, data); err != nil {
		controller.logger.ErrorF("DesignController.EvaluateDesign bind query error: %v", err)
		return NewErrorResponse(ctx, &ErrIllegalParam)
	}
	return controller.designService.EvaluateDesign(data).Response(ctx)
}
