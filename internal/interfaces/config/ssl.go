// Package config
package config

import "github.com/half-nothing/smallcraft-designer/internal/interfaces/log"

type SSLConfig struct {
	Enable          bool   `json:"enable"`
	EnableHSTS      bool   `json:"enable_hsts"`
	ForceSSL        bool   `json:"force_ssl"`
	HstsExpiredTime int    `json:"hsts_expired_time"`
	IncludeDomain   bool   `json:"include_domain"`
	CertFile        string `json:"cert_file"`
	KeyFile         string `json:"key_file"`
}

func defaultSSLConfig() *SSLConfig {
	return &SSLConfig{HstsExpiredTime: 5184000}
}

// checkValid never fails; incomplete TLS settings fall back to plain http.
func (config *SSLConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if config.Enable && (config.CertFile == "" || config.KeyFile == "") {
		logger.WarnF("HTTPS requires both cert and key files (cert: %q, key: %q), falling back to HTTP", config.CertFile, config.KeyFile)
		config.Enable = false
	}
	if config.Enable {
		return ValidPass()
	}
	if config.EnableHSTS || config.ForceSSL {
		logger.Warn("HSTS and forced HTTPS need ssl enabled, both are turned off")
	}
	config.EnableHSTS = false
	config.ForceSSL = false
	config.HstsExpiredTime = 0
	config.IncludeDomain = false
	return ValidPass()
}
