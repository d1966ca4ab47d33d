// Package interchange
package interchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/craft"
)

var (
	ErrEmptyDocument     = errors.New("interchange document is empty")
	ErrNotDesignArray    = errors.New("interchange document is not a JSON array of designs")
	ErrUnnamedDesign     = errors.New("design has no name")
	ErrUnsupportedFormat = errors.New("unsupported interchange format")
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

func (f Format) Valid() bool {
	return f == FormatJSON || f == FormatCSV
}

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// ExportJSON renders designs as an indented JSON array; nil exports as [].
func ExportJSON(designs []craft.Design) ([]byte, error) {
	if designs == nil {
		designs = make([]craft.Design, 0)
	}
	return json.MarshalIndent(designs, "", "  ")
}

// ImportJSON decodes a JSON array of designs without altering any field,
// so ImportJSON(ExportJSON(x)) is deep-equal to x.
func ImportJSON(data []byte) ([]craft.Design, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	if data[0] != '[' {
		return nil, ErrNotDesignArray
	}
	designs := make([]craft.Design, 0)
	if err := json.Unmarshal(data, &designs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotDesignArray, err)
	}
	for i, design := range designs {
		if design.Name == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrUnnamedDesign, i)
		}
	}
	return designs, nil
}

// StripIds clears store ids and timestamps so records can be saved as new.
func StripIds(designs []craft.Design) []craft.Design {
	result := make([]craft.Design, 0, len(designs))
	for _, design := range designs {
		clone := design.Clone()
		clone.Id = 0
		clone.CreatedAt = ""
		clone.UpdatedAt = ""
		result = append(result, clone)
	}
	return result
}
