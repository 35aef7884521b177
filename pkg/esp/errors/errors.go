// Package errors defines the error values shared by the partition codec and
// the flash address resolvers.
package errors

import (
	"errors"
	"fmt"
)

var (
	// Codec errors. A validation failure is a refinement of a parse
	// failure: ErrValidation unwraps to ErrParse, so callers filtering on
	// ErrParse catch both.
	ErrParse      = errors.New("partition table parse error")
	ErrValidation = fmt.Errorf("%w: validation", ErrParse)

	// Catalog errors
	ErrFirmwareNotFound = errors.New("firmware not found")

	// Pinout errors
	ErrPinNotFound = errors.New("pin not found")
	ErrAliasCycle  = errors.New("pin alias cycle")
)
