// Package maintenance 命令行维护操作, 执行完毕后进程直接退出, 不启动http服务
package maintenance

import (
	"errors"
	"fmt"
	"github.com/half-nothing/smallcraft-designer/internal/database"
	"github.com/half-nothing/smallcraft-designer/internal/interchange"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/global"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/operation"
	"os"
	"path/filepath"
)

var ErrNoTask = errors.New("no maintenance task requested")

type Task int

const (
	NoTask Task = iota
	ExtractTask
	PreloadTask
	FlushTask
)

// Options 由命令行参数填充
type Options struct {
	ExtractFile string
	PreloadFile string
	Flush       bool
}

func OptionsFromFlags() Options {
	return Options{
		ExtractFile: *global.ExtractFile,
		PreloadFile: *global.PreloadFile,
		Flush:       *global.FlushDesigns,
	}
}

// Task 同时指定多个时按flush, preload, extract的顺序只执行第一个
func (o Options) Task() Task {
	switch {
	case o.Flush:
		return FlushTask
	case o.PreloadFile != "":
		return PreloadTask
	case o.ExtractFile != "":
		return ExtractTask
	default:
		return NoTask
	}
}

// Extract writes every stored design to path as a JSON interchange document.
func Extract(logger log.LoggerInterface, designOperation operation.DesignOperationInterface, path string) (int, error) {
	designs, err := designOperation.GetDesigns()
	if err != nil {
		return 0, fmt.Errorf("load designs: %w", err)
	}
	content, err := interchange.ExportJSON(designs)
	if err != nil {
		return 0, fmt.Errorf("encode designs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), global.DefaultDirectoryPermission); err != nil {
		return 0, fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, global.DefaultFilePermissions); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	logger.InfoF("Extracted %d small craft to %s", len(designs), path)
	return len(designs), nil
}

// Preload imports a JSON interchange file. Store ids are dropped and designs
// whose name is already taken are counted as failed.
func Preload(logger log.LoggerInterface, designOperation operation.DesignOperationInterface, path string) (*database.ImportResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	designs, err := interchange.ImportJSON(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	logger.InfoF("Preloading %d small craft from %s", len(designs), path)
	result := database.ImportDesigns(logger, designOperation, designs)
	logger.InfoF("Preload finished: %d saved, %d failed", result.Saved, result.Failed)
	return result, nil
}

func Flush(logger log.LoggerInterface, designOperation operation.DesignOperationInterface) (int64, error) {
	deleted, err := designOperation.DeleteAllDesigns()
	if err != nil {
		return 0, fmt.Errorf("delete designs: %w", err)
	}
	logger.InfoF("Flushed %d small craft from the database", deleted)
	return deleted, nil
}

// Run 执行options指定的任务, 未指定任务时返回ErrNoTask
func Run(logger log.LoggerInterface, designOperation operation.DesignOperationInterface, options Options) error {
	var err error
	switch options.Task() {
	case FlushTask:
		_, err = Flush(logger, designOperation)
	case PreloadTask:
		var result *database.ImportResult
		result, err = Preload(logger, designOperation, options.PreloadFile)
		if err == nil && result.Failed > 0 {
			logger.WarnF("%d small craft were skipped during preload", result.Failed)
		}
	case ExtractTask:
		_, err = Extract(logger, designOperation, options.ExtractFile)
	default:
		return ErrNoTask
	}
	return err
}
