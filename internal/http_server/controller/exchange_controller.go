// Package controller
package controller

import (
	"fmt"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/service"
	"github.com/labstack/echo/v4"
	"io"
	"net/http"
)

type ExchangeControllerInterface interface {
	ExportDesigns(ctx echo.Context) error
	ExportDesignCSV(ctx echo.Context) error
	ImportDesigns(ctx echo.Context) error
	ImportDesignCSV(ctx echo.Context) error
	SaveSnapshot(ctx echo.Context) error
}

type ExchangeController struct {
	logger          log.LoggerInterface
	exchangeService ExchangeServiceInterface
}

func NewExchangeController(logger log.LoggerInterface, exchangeService ExchangeServiceInterface) *ExchangeController {
	return &ExchangeController{
		logger:          logger,
		exchangeService: exchangeService,
	}
}

func sendDocument(ctx echo.Context, document *Document) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", document.FileName))
	return ctx.Blob(http.StatusOK, document.ContentType, document.Content)
}

func (controller *ExchangeController) ExportDesigns(ctx echo.Context) error {
	document, res := controller.exchangeService.ExportDesigns()
	if res != nil {
		return res.Response(ctx)
	}
	return sendDocument(ctx, document)
}

func (controller *ExchangeController) ExportDesignCSV(ctx echo.Context) error {
	data := &RequestExportCSV{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("ExchangeController.ExportDesignCSV bind error: %v", err)
		return NewErrorResponse(ctx, &ErrIllegalParam)
	}
	document, res := controller.exchangeService.ExportDesignCSV(data)
	if res != nil {
		return res.Response(ctx)
	}
	return sendDocument(ctx, document)
}

func (controller *ExchangeController) ImportDesigns(ctx echo.Context) error {
	content, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		controller.logger.ErrorF("ExchangeController.ImportDesigns read body error: %v", err)
		return NewErrorResponse(ctx, &ErrInvalidDocument)
	}
	return controller.exchangeService.ImportDesigns(&RequestImportDesigns{Content: content}).Response(ctx)
}

func (controller *ExchangeController) ImportDesignCSV(ctx echo.Context) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	return controller.exchangeService.ImportDesignCSV(&RequestImportCSV{File: file}).Response(ctx)
}

func (controller *ExchangeController) SaveSnapshot(ctx echo.Context) error {
	data := &RequestSaveSnapshot{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("ExchangeController.SaveSnapshot bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	return controller.exchangeService.SaveSnapshot(data).Response(ctx)
}
