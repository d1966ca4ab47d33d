// Package service
package service

import (
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/craft"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/operation"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/service"
	"github.com/thanhpk/randstr"
	"strings"
)

const lineItemIdBytes = 8

type DesignService struct {
	logger          log.LoggerInterface
	general         *config.GeneralConfig
	validator       *DesignValidator
	designOperation operation.DesignOperationInterface
}

func NewDesignService(
	logger log.LoggerInterface,
	general *config.GeneralConfig,
	limits *config.HttpServerLimit,
	designOperation operation.DesignOperationInterface,
) *DesignService {
	return &DesignService{
		logger:          logger,
		general:         general,
		validator:       NewDesignValidator(limits),
		designOperation: designOperation,
	}
}

// AssignLineItemIds gives every drive, fitting and weapon without an id a
// random hex id. Existing ids are kept.
func AssignLineItemIds(design craft.Design) craft.Design {
	clone := design.Clone()
	for i := range clone.Drives {
		if clone.Drives[i].Id == "" {
			clone.Drives[i].Id = randstr.Hex(lineItemIdBytes)
		}
	}
	for i := range clone.Fittings {
		if clone.Fittings[i].Id == "" {
			clone.Fittings[i].Id = randstr.Hex(lineItemIdBytes)
		}
	}
	for i := range clone.Weapons {
		if clone.Weapons[i].Id == "" {
			clone.Weapons[i].Id = randstr.Hex(lineItemIdBytes)
		}
	}
	return clone
}

func (designService *DesignService) GetDesigns(_ *RequestGetDesigns) *ApiResponse[ResponseGetDesigns] {
	designs, res := CallDBFuncAndCheckError[[]craft.Design, ResponseGetDesigns](designService.logger, func() (*[]craft.Design, error) {
		designs, err := designService.designOperation.GetDesigns()
		return &designs, err
	})
	if res != nil {
		return res
	}
	return NewApiResponse(&SuccessGetDesigns, Unsatisfied, &ResponseGetDesigns{
		Items: *designs,
		Total: len(*designs),
	})
}

func (designService *DesignService) GetDesignInfo(req *RequestDesignInfo) *ApiResponse[ResponseDesignInfo] {
	if req.DesignId == 0 {
		return NewApiResponse[ResponseDesignInfo](&ErrIllegalParam, Unsatisfied, nil)
	}
	design, res := CallDBFuncAndCheckError[craft.Design, ResponseDesignInfo](designService.logger, func() (*craft.Design, error) {
		design, err := designService.designOperation.GetDesignById(req.DesignId)
		return &design, err
	})
	if res != nil {
		return res
	}
	return NewApiResponse(&SuccessGetDesign, Unsatisfied, (*ResponseDesignInfo)(design))
}

func (designService *DesignService) SaveDesign(req *RequestSaveDesign) *ApiResponse[ResponseSaveDesign] {
	design := req.Design
	design.Id = req.DesignId
	design.Name = strings.TrimSpace(design.Name)
	if res := designService.validator.Check(design.Name, design.Description); res != nil {
		return NewApiResponse[ResponseSaveDesign](res, Unsatisfied, nil)
	}
	if !design.Hull.TechLevel.Valid() {
		return NewApiResponse[ResponseSaveDesign](&ErrInvalidTechLevel, Unsatisfied, nil)
	}

	if design.Id != 0 {
		if _, res := CallDBFuncAndCheckError[craft.Design, ResponseSaveDesign](designService.logger, func() (*craft.Design, error) {
			existing, err := designService.designOperation.GetDesignById(design.Id)
			return &existing, err
		}); res != nil {
			return res
		}
	}

	design = AssignLineItemIds(design).Normalize()
	stored, res := CallDBFuncAndCheckError[craft.Design, ResponseSaveDesign](designService.logger, func() (*craft.Design, error) {
		id, err := designService.designOperation.SaveDesign(design)
		if err != nil {
			return nil, err
		}
		stored, err := designService.designOperation.GetDesignById(id)
		return &stored, err
	})
	if res != nil {
		return res
	}
	designService.logger.InfoF("Design %q saved with id %d", stored.Name, stored.Id)
	return NewApiResponse(&SuccessSaveDesign, Unsatisfied, (*ResponseSaveDesign)(stored))
}

func (designService *DesignService) DeleteDesign(req *RequestDeleteDesign) *ApiResponse[ResponseDeleteDesign] {
	if req.DesignId == 0 {
		return NewApiResponse[ResponseDeleteDesign](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := CallDBFuncAndCheckError[bool, ResponseDeleteDesign](designService.logger, func() (*bool, error) {
		return nil, designService.designOperation.DeleteDesign(req.DesignId)
	}); res != nil {
		return res
	}
	data := ResponseDeleteDesign(true)
	return NewApiResponse(&SuccessDeleteDesign, Unsatisfied, &data)
}

func (designService *DesignService) CheckNameAvailability(req *RequestCheckName) *ApiResponse[ResponseCheckName] {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return NewApiResponse[ResponseCheckName](&ErrLackParam, Unsatisfied, nil)
	}
	taken, res := CallDBFuncAndCheckError[bool, ResponseCheckName](designService.logger, func() (*bool, error) {
		taken, err := designService.designOperation.IsNameTaken(name, req.ExcludeId)
		return &taken, err
	})
	if res != nil {
		return res
	}
	return NewApiResponse(&SuccessCheckName, Unsatisfied, &ResponseCheckName{Name: name, Available: !*taken})
}

func (designService *DesignService) EvaluateDesign(req *RequestEvaluateDesign) *ApiResponse[ResponseEvaluateDesign] {
	plan := designService.general.FuelPlan()
	if req.Weeks < 0 || req.Hours < 0 {
		return NewApiResponse[ResponseEvaluateDesign](&ErrInvalidFuelPlan, Unsatisfied, nil)
	}
	if req.Weeks > 0 {
		plan.Weeks = req.Weeks
	}
	if req.Hours > 0 {
		plan.Hours = req.Hours
	}
	evaluation := craft.Evaluate(req.Design, plan)
	return NewApiResponse(&SuccessEvaluate, Unsatisfied, (*ResponseEvaluateDesign)(evaluation))
}
