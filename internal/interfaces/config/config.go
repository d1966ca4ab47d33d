// Package config
package config

import (
	"errors"
	"fmt"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
)

type Config struct {
	ConfigVersion string           `json:"config_version"`
	Server        *ServerConfig    `json:"server"`
	Database      *DatabaseConfig  `json:"database"`
	Bootstrap     *BootstrapConfig `json:"bootstrap"`
}

func DefaultConfig() *Config {
	return &Config{
		ConfigVersion: ConfVersion.String(),
		Server:        defaultServerConfig(),
		Database:      defaultDatabaseConfig(),
		Bootstrap:     defaultBootstrapConfig(),
	}
}

func (c *Config) CheckValid(logger log.LoggerInterface) *ValidResult {
	if version, err := newVersion(c.ConfigVersion); err != nil {
		return ValidFailWith(errors.New("version string parse fail"), err)
	} else {
		switch ConfVersion.checkVersion(version) {
		case MajorUnmatch:
			return ValidFail(fmt.Errorf("config version mismatch, expected %s, got %s", ConfVersion.String(), version.String()))
		case MinorUnmatch, PatchUnmatch:
			logger.WarnF("config version %s differs from %s, missing fields use their zero value", version.String(), ConfVersion.String())
		case AllMatch:
		}
	}
	if c.Server == nil || c.Database == nil || c.Bootstrap == nil {
		return ValidFail(errors.New("configuration file is missing the server, database or bootstrap section"))
	}
	if result := c.Database.checkValid(logger); result.IsFail() {
		return result
	}
	if result := c.Server.checkValid(logger); result.IsFail() {
		return result
	}
	if result := c.Bootstrap.checkValid(logger); result.IsFail() {
		return result
	}
	return ValidPass()
}
