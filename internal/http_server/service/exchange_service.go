// Package service
package service

import (
	"github.com/half-nothing/smallcraft-designer/internal/database"
	"github.com/half-nothing/smallcraft-designer/internal/interchange"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/craft"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/operation"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/service"
	"github.com/samber/lo"
	"io"
	"strings"
)

const exportFileBaseName = "designs"

type ExchangeService struct {
	logger          log.LoggerInterface
	limits          *config.HttpServerLimit
	storeConfig     *config.ExportStoreConfig
	storeService    StoreServiceInterface
	designOperation operation.DesignOperationInterface
}

func NewExchangeService(
	logger log.LoggerInterface,
	limits *config.HttpServerLimit,
	storeConfig *config.ExportStoreConfig,
	storeService StoreServiceInterface,
	designOperation operation.DesignOperationInterface,
) *ExchangeService {
	return &ExchangeService{
		logger:          logger,
		limits:          limits,
		storeConfig:     storeConfig,
		storeService:    storeService,
		designOperation: designOperation,
	}
}

func (exchangeService *ExchangeService) exportAll() (*Document, *ApiResponse[any]) {
	designs, res := CallDBFuncAndCheckError[[]craft.Design, any](exchangeService.logger, func() (*[]craft.Design, error) {
		designs, err := exchangeService.designOperation.GetDesigns()
		return &designs, err
	})
	if res != nil {
		return nil, res
	}
	content, err := interchange.ExportJSON(*designs)
	if err != nil {
		exchangeService.logger.ErrorF("ExportJSON error: %v", err)
		return nil, NewApiResponse[any](&ErrDatabaseFail, Unsatisfied, nil)
	}
	return &Document{
		FileName:    exportFileBaseName + interchange.FormatJSON.Extension(),
		ContentType: interchange.FormatJSON.ContentType(),
		Content:     content,
	}, nil
}

func (exchangeService *ExchangeService) exportOne(designId uint) (*Document, *ApiResponse[any]) {
	if designId == 0 {
		return nil, NewApiResponse[any](&ErrLackParam, Unsatisfied, nil)
	}
	design, res := CallDBFuncAndCheckError[craft.Design, any](exchangeService.logger, func() (*craft.Design, error) {
		design, err := exchangeService.designOperation.GetDesignById(designId)
		return &design, err
	})
	if res != nil {
		return nil, res
	}
	content, err := interchange.ExportCSV(*design)
	if err != nil {
		exchangeService.logger.ErrorF("ExportCSV error for design %d: %v", designId, err)
		return nil, NewApiResponse[any](&ErrDatabaseFail, Unsatisfied, nil)
	}
	return &Document{
		FileName:    interchange.CSVFileName(design.Name),
		ContentType: interchange.FormatCSV.ContentType(),
		Content:     content,
	}, nil
}

func (exchangeService *ExchangeService) ExportDesigns() (*Document, *ApiResponse[any]) {
	return exchangeService.exportAll()
}

func (exchangeService *ExchangeService) ExportDesignCSV(req *RequestExportCSV) (*Document, *ApiResponse[any]) {
	return exchangeService.exportOne(req.DesignId)
}

func (exchangeService *ExchangeService) importBatch(designs []craft.Design) *ApiResponse[ResponseImportDesigns] {
	if exchangeService.limits.ImportBatchMax > 0 && len(designs) > exchangeService.limits.ImportBatchMax {
		return NewApiResponse[ResponseImportDesigns](&ErrImportBatchTooLarge, Unsatisfied, nil)
	}
	designs = lo.Map(designs, func(design craft.Design, _ int) craft.Design {
		design.Name = strings.TrimSpace(design.Name)
		return AssignLineItemIds(design)
	})
	result := database.ImportDesigns(exchangeService.logger, exchangeService.designOperation, designs)
	failures := lo.Map(result.Failures, func(failure database.ImportFailure, _ int) ImportFailure {
		status := StatusForError(failure.Err)
		if status == nil {
			status = &ErrDatabaseFail
		}
		return ImportFailure{Name: failure.Name, Code: status.StatusName, Reason: failure.Err.Error()}
	})
	data := &ResponseImportDesigns{
		Saved:    result.Saved,
		Failed:   result.Failed,
		Ids:      result.Ids,
		Failures: failures,
	}
	return NewApiResponse(&SuccessImportDesigns, Unsatisfied, data)
}

func (exchangeService *ExchangeService) ImportDesigns(req *RequestImportDesigns) *ApiResponse[ResponseImportDesigns] {
	designs, err := interchange.ImportJSON(req.Content)
	if err != nil {
		exchangeService.logger.WarnF("Rejected design import: %v", err)
		return NewApiResponse[ResponseImportDesigns](&ErrInvalidDocument, Unsatisfied, nil)
	}
	return exchangeService.importBatch(designs)
}

func (exchangeService *ExchangeService) ImportDesignCSV(req *RequestImportCSV) *ApiResponse[ResponseImportDesigns] {
	if req.File == nil {
		return NewApiResponse[ResponseImportDesigns](&ErrLackParam, Unsatisfied, nil)
	}
	if exchangeService.storeConfig.MaxFileSize > 0 && req.File.Size > exchangeService.storeConfig.MaxFileSize {
		return NewApiResponse[ResponseImportDesigns](&ErrFileOverSize, Unsatisfied, nil)
	}
	file, err := req.File.Open()
	if err != nil {
		exchangeService.logger.ErrorF("Open uploaded csv error: %v", err)
		return NewApiResponse[ResponseImportDesigns](&ErrInvalidDocument, Unsatisfied, nil)
	}
	defer func() { _ = file.Close() }()
	content, err := io.ReadAll(file)
	if err != nil {
		exchangeService.logger.ErrorF("Read uploaded csv error: %v", err)
		return NewApiResponse[ResponseImportDesigns](&ErrInvalidDocument, Unsatisfied, nil)
	}
	design, err := interchange.ImportCSV(content, req.File.Filename)
	if err != nil {
		exchangeService.logger.WarnF("Rejected csv import %s: %v", req.File.Filename, err)
		return NewApiResponse[ResponseImportDesigns](&ErrInvalidDocument, Unsatisfied, nil)
	}
	return exchangeService.importBatch([]craft.Design{design})
}

// SaveSnapshot 将导出文件写入配置的存储, json导出全部设计, csv导出单个设计
func (exchangeService *ExchangeService) SaveSnapshot(req *RequestSaveSnapshot) *ApiResponse[ResponseSaveSnapshot] {
	var document *Document
	var res *ApiResponse[any]
	switch req.Format {
	case interchange.FormatJSON:
		document, res = exchangeService.exportAll()
	case interchange.FormatCSV:
		document, res = exchangeService.exportOne(req.DesignId)
	default:
		return NewApiResponse[ResponseSaveSnapshot](&ErrUnsupportedFormat, Unsatisfied, nil)
	}
	if res != nil {
		return &ApiResponse[ResponseSaveSnapshot]{HttpCode: res.HttpCode, Code: res.Code, Message: res.Message}
	}

	baseName := strings.TrimSuffix(document.FileName, req.Format.Extension())
	storeInfo, status := NewStoreInfo(exchangeService.storeConfig, baseName, req.Format.Extension(), document.Content)
	if status != nil {
		return NewApiResponse[ResponseSaveSnapshot](status, Unsatisfied, nil)
	}
	if status := exchangeService.storeService.SaveSnapshot(storeInfo); status != nil {
		return NewApiResponse[ResponseSaveSnapshot](status, Unsatisfied, nil)
	}
	accessPath, status := exchangeService.storeService.AccessPath(storeInfo)
	if status != nil {
		return NewApiResponse[ResponseSaveSnapshot](status, Unsatisfied, nil)
	}
	exchangeService.logger.InfoF("Snapshot %s saved, %d bytes", storeInfo.FileName, storeInfo.FileSize)
	return NewApiResponse(&SuccessSaveSnapshot, Unsatisfied, &ResponseSaveSnapshot{
		FileSize:   storeInfo.FileSize,
		AccessPath: accessPath,
	})
}
