// Package config
package config

import (
	"errors"
	"fmt"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	"time"
)

type HttpServerLimit struct {
	RateLimit            int           `json:"rate_limit"`
	RateLimitWindow      string        `json:"rate_limit_window"`
	RateLimitDuration    time.Duration `json:"-"`
	NameLengthMin        int           `json:"name_length_min"`
	NameLengthMax        int           `json:"name_length_max"`
	DescriptionLengthMax int           `json:"description_length_max"`
	ImportBatchMax       int           `json:"import_batch_max"` // 单次导入的最大设计数量
}

func defaultHttpServerLimit() *HttpServerLimit {
	return &HttpServerLimit{
		RateLimit:            120,
		RateLimitWindow:      "1m",
		NameLengthMin:        1,
		NameLengthMax:        64,
		DescriptionLengthMax: 1024,
		ImportBatchMax:       500,
	}
}

func checkLimitRange(field string, value, min, max int) *ValidResult {
	if value < min {
		return ValidFail(fmt.Errorf("invalid json field http_server.limits.%s, value must not less than %d", field, min))
	}
	if value > max {
		return ValidFail(fmt.Errorf("invalid json field http_server.limits.%s, value must not larger than %d", field, max))
	}
	return ValidPass()
}

func (config *HttpServerLimit) checkValid(_ log.LoggerInterface) *ValidResult {
	if duration, err := time.ParseDuration(config.RateLimitWindow); err != nil {
		return ValidFailWith(errors.New("invalid json field http_server.limits.rate_limit_window"), err)
	} else if duration <= 0 {
		return ValidFail(errors.New("invalid json field http_server.limits.rate_limit_window, value must larger than 0"))
	} else {
		config.RateLimitDuration = duration
	}

	if result := checkLimitRange("rate_limit", config.RateLimit, 1, 100000); result.IsFail() {
		return result
	}
	if result := checkLimitRange("name_length_min", config.NameLengthMin, 1, 128); result.IsFail() {
		return result
	}
	if result := checkLimitRange("name_length_max", config.NameLengthMax, 1, 128); result.IsFail() {
		return result
	}
	if config.NameLengthMin > config.NameLengthMax {
		return ValidFail(errors.New("invalid json field http_server.limits.name_length_min, value must not larger than http_server.limits.name_length_max"))
	}
	if result := checkLimitRange("description_length_max", config.DescriptionLengthMax, 0, 65535); result.IsFail() {
		return result
	}
	if result := checkLimitRange("import_batch_max", config.ImportBatchMax, 1, 100000); result.IsFail() {
		return result
	}
	return ValidPass()
}
