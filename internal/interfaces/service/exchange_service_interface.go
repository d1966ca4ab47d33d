// Package service
package service

import (
	"github.com/half-nothing/smallcraft-designer/internal/interchange"
	"mime/multipart"
)

var (
	SuccessImportDesigns = ApiStatus{"IMPORT_DESIGNS", "导入完成", Ok}
	SuccessSaveSnapshot  = ApiStatus{"SAVE_SNAPSHOT", "导出快照已保存", Ok}
)

// Document 导出文件内容
type Document struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExchangeServiceInterface 设计的导入导出
type ExchangeServiceInterface interface {
	// ExportDesigns 导出全部设计为JSON数组, 失败时返回值res非nil
	ExportDesigns() (document *Document, res *ApiResponse[any])
	// ExportDesignCSV 导出单个设计的CSV报告
	ExportDesignCSV(req *RequestExportCSV) (document *Document, res *ApiResponse[any])
	ImportDesigns(req *RequestImportDesigns) *ApiResponse[ResponseImportDesigns]
	ImportDesignCSV(req *RequestImportCSV) *ApiResponse[ResponseImportDesigns]
	SaveSnapshot(req *RequestSaveSnapshot) *ApiResponse[ResponseSaveSnapshot]
}

type RequestExportCSV struct {
	DesignId uint `param:"id"`
}

type RequestImportDesigns struct {
	Content []byte
}

type RequestImportCSV struct {
	File *multipart.FileHeader
}

type ImportFailure struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

type ResponseImportDesigns struct {
	Saved    int             `json:"saved"`
	Failed   int             `json:"failed"`
	Ids      []uint          `json:"ids"`
	Failures []ImportFailure `json:"failures,omitempty"`
}

type RequestSaveSnapshot struct {
	Format   interchange.Format `json:"format"`
	DesignId uint               `json:"design_id"`
}

type ResponseSaveSnapshot struct {
	FileSize   int64  `json:"file_size"`
	AccessPath string `json:"access_path"`
}
