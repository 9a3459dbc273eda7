// Package validation provides common validation utilities.
package validation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/benefit-calculator/pkg/constants"
)

// ErrInvalidOutputFormat is returned for output formats other than pretty, csv and json.
var ErrInvalidOutputFormat = errors.New("invalid output format")

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("%w: expected output format of %s, %s or %s, got %s", ErrInvalidOutputFormat,
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}
