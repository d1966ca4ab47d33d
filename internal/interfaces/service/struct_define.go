// Package service
package service

import (
	"errors"
	"github.com/half-nothing/smallcraft-designer/internal/interchange"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/operation"
	"github.com/labstack/echo/v4"
)

type HttpCode int

const (
	Unsatisfied         HttpCode = 0
	Ok                  HttpCode = 200
	BadRequest          HttpCode = 400
	NotFound            HttpCode = 404
	Conflict            HttpCode = 409
	TooManyRequests     HttpCode = 429
	ServerInternalError HttpCode = 500
)

func (hc HttpCode) Code() int {
	return int(hc)
}

type ApiStatus struct {
	StatusName  string
	Description string
	HttpCode    HttpCode
}

type ApiResponse[T any] struct {
	HttpCode int    `json:"-"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Data     *T     `json:"data"`
}

func (res *ApiResponse[T]) Response(ctx echo.Context) error {
	return ctx.JSON(res.HttpCode, res)
}

var (
	ErrIllegalParam        = ApiStatus{"PARAM_ERROR", "参数不正确", BadRequest}
	ErrLackParam           = ApiStatus{"PARAM_LACK_ERROR", "缺少参数", BadRequest}
	ErrDatabaseFail        = ApiStatus{"DATABASE_ERROR", "服务器内部错误", ServerInternalError}
	ErrDesignNotFound      = ApiStatus{"DESIGN_NOT_FOUND", "设计不存在", NotFound}
	ErrDesignNameTaken     = ApiStatus{"DESIGN_NAME_TAKEN", "设计名称已被使用", Conflict}
	ErrDesignNameEmpty     = ApiStatus{"DESIGN_NAME_EMPTY", "设计名称不能为空", BadRequest}
	ErrInvalidDocument     = ApiStatus{"INVALID_DOCUMENT", "导入文件格式不正确", BadRequest}
	ErrUnsupportedFormat   = ApiStatus{"UNSUPPORTED_FORMAT", "不支持的导出格式", BadRequest}
	ErrRateLimitExceeded   = ApiStatus{"RATE_LIMIT_EXCEEDED", "请求次数过多, 请稍后再试", TooManyRequests}
	ErrImportBatchTooLarge = ApiStatus{"IMPORT_BATCH_TOO_LARGE", "单次导入的设计数量过多", BadRequest}
)

func NewErrorResponse(ctx echo.Context, codeStatus *ApiStatus) error {
	return NewApiResponse[any](codeStatus, Unsatisfied, nil).Response(ctx)
}

func NewApiResponse[T any](codeStatus *ApiStatus, httpCode HttpCode, data *T) *ApiResponse[T] {
	if httpCode == Unsatisfied {
		httpCode = codeStatus.HttpCode
	}
	if httpCode == Unsatisfied {
		httpCode = Ok
	}
	return &ApiResponse[T]{
		HttpCode: httpCode.Code(),
		Code:     codeStatus.StatusName,
		Message:  codeStatus.Description,
		Data:     data,
	}
}

// StatusForError 将领域错误映射为接口状态, 未知错误返回nil
func StatusForError(err error) *ApiStatus {
	switch {
	case errors.Is(err, operation.ErrDesignNotFound):
		return &ErrDesignNotFound
	case errors.Is(err, operation.ErrDesignNameTaken):
		return &ErrDesignNameTaken
	case errors.Is(err, operation.ErrDesignNameEmpty):
		return &ErrDesignNameEmpty
	case errors.Is(err, interchange.ErrUnsupportedFormat):
		return &ErrUnsupportedFormat
	case errors.Is(err, interchange.ErrEmptyDocument),
		errors.Is(err, interchange.ErrNotDesignArray),
		errors.Is(err, interchange.ErrUnnamedDesign),
		errors.Is(err, interchange.ErrMalformedCSV):
		return &ErrInvalidDocument
	default:
		return nil
	}
}

// CallDBFuncAndCheckError 调用数据库操作函数并处理错误
func CallDBFuncAndCheckError[R any, T any](logger log.LoggerInterface, fc func() (*R, error)) (*R, *ApiResponse[T]) {
	result, err := fc()
	if err == nil {
		return result, nil
	}
	if status := StatusForError(err); status != nil {
		return nil, NewApiResponse[T](status, Unsatisfied, nil)
	}
	logger.ErrorF("Error in DB function: %v", err)
	return nil, NewApiResponse[T](&ErrDatabaseFail, Unsatisfied, nil)
}
