// Package utils
package utils

import (
	"strconv"
	"strings"
)

func StrToInt(str string, defaultValue int) int {
	result, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return defaultValue
	}
	return result
}

func StrToUint(str string, defaultValue uint) uint {
	result, err := strconv.ParseUint(strings.TrimSpace(str), 10, 0)
	if err != nil {
		return defaultValue
	}
	return uint(result)
}

func StrToFloat(str string, defaultValue float64) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return defaultValue
	}
	return result
}
