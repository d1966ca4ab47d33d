// Package base
package base

import (
	"encoding/json"
	"errors"
	"fmt"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/global"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	"github.com/half-nothing/smallcraft-designer/internal/utils"
	"os"
)

func readConfig(logger log.LoggerInterface, path string) (*Config, *ValidResult) {
	config := DefaultConfig()

	// 读取配置文件
	if bytes, err := os.ReadFile(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, ValidFailWith(fmt.Errorf("fail to read configuration file %s", path), err)
		}
		// 如果配置文件不存在，创建默认配置
		if err := saveConfig(path, config); err != nil {
			return nil, ValidFailWith(errors.New("fail to save configuration file while creating configuration file"), err)
		}
		return nil, ValidFail(fmt.Errorf("the configuration file %s does not exist and has been created. Please try again after editing the configuration file", path))
	} else if err := json.Unmarshal(bytes, config); err != nil {
		// 解析JSON配置
		return nil, ValidFailWith(errors.New("the configuration file does not contain valid JSON"), err)
	} else if result := config.CheckValid(logger); result.IsFail() {
		return nil, result
	}
	return config, ValidPass()
}

func saveConfig(path string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, global.DefaultFilePermissions)
}

type Manager struct {
	path   string
	config *utils.CachedValue[Config]
	logger log.LoggerInterface
}

func NewManager(logger log.LoggerInterface) *Manager {
	return NewManagerWithPath(logger, *global.ConfigFilePath)
}

func NewManagerWithPath(logger log.LoggerInterface, path string) *Manager {
	manager := &Manager{
		path:   path,
		logger: logger,
	}
	manager.config = utils.NewCachedValue(0, manager.getConfig)
	return manager
}

func (manager *Manager) getConfig() *Config {
	if config, result := readConfig(manager.logger, manager.path); result.IsFail() {
		manager.logger.Fatal(result.Message())
		panic(result.Error())
	} else {
		return config
	}
}

func (manager *Manager) Config() *Config {
	return manager.config.GetValue()
}

func (manager *Manager) SaveConfig() error {
	return saveConfig(manager.path, manager.Config())
}

// ReloadConfig 重新读取配置文件, 校验失败时保留当前配置
func (manager *Manager) ReloadConfig() (*Config, error) {
	if _, result := readConfig(manager.logger, manager.path); result.IsFail() {
		return nil, errors.New(result.Message())
	}
	manager.config.Invalidate()
	return manager.Config(), nil
}
