// Package interfaces
package interfaces

import (
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
)

// ConfigManagerInterface 配置管理接口, Config在首次调用时读取并校验配置文件
type ConfigManagerInterface interface {
	Config() *Config
	SaveConfig() error
	ReloadConfig() (*Config, error)
}
