// Package service
package service

import (
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/service"
	"strings"
	"unicode/utf8"
)

type FieldValidator struct {
	Min, Max          int
	ErrShort, ErrLong *ApiStatus
}

// CheckString 按字符数而非字节数校验长度
func (v *FieldValidator) CheckString(value string) *ApiStatus {
	length := utf8.RuneCountInString(value)
	if length > v.Max {
		return v.ErrLong
	}
	if length < v.Min {
		return v.ErrShort
	}
	return nil
}

type DesignValidator struct {
	name        *FieldValidator
	description *FieldValidator
}

func NewDesignValidator(limits *config.HttpServerLimit) *DesignValidator {
	return &DesignValidator{
		name: &FieldValidator{
			Min:      limits.NameLengthMin,
			Max:      limits.NameLengthMax,
			ErrShort: &ErrDesignNameShort,
			ErrLong:  &ErrDesignNameTooLong,
		},
		description: &FieldValidator{
			Min:     0,
			Max:     limits.DescriptionLengthMax,
			ErrLong: &ErrDescriptionLong,
		},
	}
}

func (v *DesignValidator) Check(name, description string) *ApiStatus {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ErrDesignNameEmpty
	}
	if res := v.name.CheckString(name); res != nil {
		return res
	}
	return v.description.CheckString(description)
}
