// Package config
package config

import (
	"errors"
	"fmt"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	"time"
)

type HttpServerConfig struct {
	Enabled         bool               `json:"enabled"`
	ServerAddress   string             `json:"server_address"`
	Host            string             `json:"host"`
	Port            uint               `json:"port"`
	Address         string             `json:"-"`
	ProxyType       int                `json:"proxy_type"` // 0: 直连, 1: X-Forwarded-For, 2: X-Real-IP
	BodyLimit       string             `json:"body_limit"`
	RequestTimeout  string             `json:"request_timeout"`
	RequestDuration time.Duration      `json:"-"`
	Store           *ExportStoreConfig `json:"store"`
	Limits          *HttpServerLimit   `json:"limits"`
	SSL             *SSLConfig         `json:"ssl"`
}

func defaultHttpServerConfig() *HttpServerConfig {
	return &HttpServerConfig{
		Enabled:        true,
		Host:           "127.0.0.1",
		Port:           6820,
		ServerAddress:  "http://127.0.0.1:6820",
		ProxyType:      0,
		BodyLimit:      "5MB",
		RequestTimeout: "30s",
		Store:          defaultExportStoreConfig(),
		Limits:         defaultHttpServerLimit(),
		SSL:            defaultSSLConfig(),
	}
}

func (config *HttpServerConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if !config.Enabled {
		return ValidPass()
	}
	if result := checkPort(logger, config.Port); result.IsFail() {
		return result
	}

	config.Address = fmt.Sprintf("%s:%d", config.Host, config.Port)

	if config.ProxyType < 0 || config.ProxyType > 2 {
		logger.WarnF("proxy_type %d is unknown, falling back to direct connections", config.ProxyType)
		config.ProxyType = 0
	}

	if config.BodyLimit == "" {
		logger.WarnF("body_limit is empty, where the length of the request body is not restricted. This is a very dangerous behavior")
	}

	if duration, err := time.ParseDuration(config.RequestTimeout); err != nil {
		return ValidFailWith(errors.New("invalid json field http_server.request_timeout"), err)
	} else {
		config.RequestDuration = duration
	}

	if config.Store == nil || config.Limits == nil || config.SSL == nil {
		return ValidFail(errors.New("http_server is missing the store, limits or ssl section"))
	}
	if result := config.SSL.checkValid(logger); result.IsFail() {
		return result
	}
	if result := config.Limits.checkValid(logger); result.IsFail() {
		return result
	}
	if result := config.Store.checkValid(logger); result.IsFail() {
		return result
	}
	return ValidPass()
}
