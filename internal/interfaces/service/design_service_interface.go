// Package service
package service

import (
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/craft"
)

var (
	SuccessGetDesigns    = ApiStatus{"GET_DESIGNS", "获取设计列表成功", Ok}
	SuccessGetDesign     = ApiStatus{"GET_DESIGN", "获取设计成功", Ok}
	SuccessSaveDesign    = ApiStatus{"SAVE_DESIGN", "保存设计成功", Ok}
	SuccessDeleteDesign  = ApiStatus{"DELETE_DESIGN", "删除设计成功", Ok}
	SuccessCheckName     = ApiStatus{"CHECK_NAME", "名称检查完成", Ok}
	SuccessEvaluate      = ApiStatus{"EVALUATE_DESIGN", "设计评估完成", Ok}
	ErrDesignNameTooLong = ApiStatus{"DESIGN_NAME_TOO_LONG", "设计名称过长", BadRequest}
	ErrDesignNameShort   = ApiStatus{"DESIGN_NAME_TOO_SHORT", "设计名称过短", BadRequest}
	ErrDescriptionLong   = ApiStatus{"DESCRIPTION_TOO_LONG", "设计描述过长", BadRequest}
)

// DesignServiceInterface 设计记录服务
type DesignServiceInterface interface {
	GetDesigns(req *RequestGetDesigns) *ApiResponse[ResponseGetDesigns]
	GetDesignInfo(req *RequestDesignInfo) *ApiResponse[ResponseDesignInfo]
	// SaveDesign 新建(DesignId为0)或更新设计
	SaveDesign(req *RequestSaveDesign) *ApiResponse[ResponseSaveDesign]
	DeleteDesign(req *RequestDeleteDesign) *ApiResponse[ResponseDeleteDesign]
	CheckNameAvailability(req *RequestCheckName) *ApiResponse[ResponseCheckName]
	EvaluateDesign(req *RequestEvaluateDesign) *ApiResponse[ResponseEvaluateDesign]
}

type RequestGetDesigns struct{}

type ResponseGetDesigns struct {
	Items []craft.Design `json:"items"`
	Total int            `json:"total"`
}

type RequestDesignInfo struct {
	DesignId uint `param:"id"`
}

type ResponseDesignInfo craft.Design

type RequestSaveDesign struct {
	DesignId uint `param:"id" json:"-"`
	craft.Design
}

type ResponseSaveDesign craft.Design

type RequestDeleteDesign struct {
	DesignId uint `param:"id"`
}

type ResponseDeleteDesign bool

type RequestCheckName struct {
	Name      string `query:"name"`
	ExcludeId uint   `query:"exclude_id"`
}

type ResponseCheckName struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

type RequestEvaluateDesign struct {
	craft.Design
	Weeks float64 `query:"weeks" json:"-"`
	Hours float64 `query:"hours" json:"-"`
}

type ResponseEvaluateDesign craft.Evaluation
