// Package database
package database

import (
	"errors"
	"github.com/half-nothing/smallcraft-designer/internal/interchange"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/craft"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/operation"
	"github.com/half-nothing/smallcraft-designer/internal/utils"
)

const importProgressStep = 50

// ImportFailure 单个设计导入失败的原因
type ImportFailure struct {
	Name string
	Err  error
}

// ImportResult 批量导入结果
type ImportResult struct {
	Saved    int
	Failed   int
	Ids      []uint
	Failures []ImportFailure
}

// ImportDesigns saves each design as a new record. A design that cannot be
// saved is logged, counted and skipped; the rest still go through.
func ImportDesigns(logger log.LoggerInterface, designOperation operation.DesignOperationInterface, designs []craft.Design) *ImportResult {
	result := &ImportResult{Ids: make([]uint, 0, len(designs))}
	progress := utils.NewOverflowTrigger(importProgressStep, func(total int) {
		logger.InfoF("Imported %d/%d designs", total, len(designs))
	})
	for _, design := range interchange.StripIds(designs) {
		id, err := designOperation.SaveDesign(design.Normalize())
		progress.Tick()
		if err != nil {
			logger.ErrorF("Failed to import %q: %v", design.Name, err)
			result.Failed++
			result.Failures = append(result.Failures, ImportFailure{Name: design.Name, Err: err})
			continue
		}
		result.Saved++
		result.Ids = append(result.Ids, id)
	}
	return result
}

// Bootstrap 数据库为空时载入初始设计数据, 任何失败都只记录日志, 不阻止启动
func Bootstrap(logger log.LoggerInterface, cfg *config.BootstrapConfig, designOperation operation.DesignOperationInterface) *ImportResult {
	if !cfg.Enabled {
		logger.Debug("Bootstrap disabled, skipping initial data")
		return nil
	}

	total, err := designOperation.CountDesigns()
	if err != nil {
		logger.ErrorF("Failed to count stored designs, skipping initial data: %v", err)
		return nil
	}
	if total > 0 {
		logger.InfoF("Database already contains %d small craft - skipping initialization", total)
		return nil
	}

	logger.Info("Database is empty - loading initial data...")
	content, err := cfg.LoadInitialData(logger)
	if err != nil {
		logger.WarnF("No initial data available - database will start empty: %v", err)
		return nil
	}

	designs, err := interchange.ImportJSON(content)
	switch {
	case errors.Is(err, interchange.ErrEmptyDocument):
		logger.Info("Initial data file is empty")
		return nil
	case err != nil:
		logger.WarnF("Initial data file is invalid: %v", err)
		return nil
	case len(designs) == 0:
		logger.Info("Initial data file is empty")
		return nil
	}

	logger.InfoF("Loading %d initial small craft...", len(designs))
	result := ImportDesigns(logger, designOperation, designs)
	logger.InfoF("Successfully loaded %d initial small craft", result.Saved)
	if result.Failed > 0 {
		logger.WarnF("%d initial small craft failed to load", result.Failed)
	}
	return result
}
