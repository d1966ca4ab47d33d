// Package config
package config

import (
	"errors"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/global"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	"path/filepath"
)

// BootstrapConfig 空数据库首次启动时的初始设计数据
type BootstrapConfig struct {
	Enabled         bool   `json:"enabled"`
	InitialDataFile string `json:"initial_data_file"`
	InitialDataUrl  string `json:"initial_data_url"`
}

func defaultBootstrapConfig() *BootstrapConfig {
	return &BootstrapConfig{
		Enabled:         true,
		InitialDataFile: "data/initial_designs.json",
		InitialDataUrl:  global.InitialDataFileUrl,
	}
}

func (config *BootstrapConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if !config.Enabled {
		return ValidPass()
	}
	if config.InitialDataFile == "" {
		return ValidFail(errors.New("invalid json field bootstrap.initial_data_file, path cannot be empty"))
	}
	config.InitialDataFile = filepath.Clean(config.InitialDataFile)
	if config.InitialDataUrl == "" {
		logger.WarnF("bootstrap.initial_data_url is empty, only %s will be used", config.InitialDataFile)
	}
	return ValidPass()
}

// LoadInitialData returns the initial design document, downloading and
// caching it when the local file is missing.
func (config *BootstrapConfig) LoadInitialData(logger log.LoggerInterface) ([]byte, error) {
	return cachedContent(logger, config.InitialDataFile, config.InitialDataUrl)
}
