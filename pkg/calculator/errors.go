package calculator

import "errors"

var (
	// ErrUnknownCalculator is returned when no calculator is registered under a name.
	ErrUnknownCalculator = errors.New("unknown calculator")

	// ErrInvalidInput is returned when a submission fails form validation.
	// The joined ValidationErrors carry the field details.
	ErrInvalidInput = errors.New("invalid calculator input")

	// ErrBelowDiffractionLimit is returned when beam measurements imply M² < 1.
	ErrBelowDiffractionLimit = errors.New("beam quality below the diffraction limit")

	// ErrDecodeInput is returned when a validated value cannot be decoded.
	ErrDecodeInput = errors.New("failed to decode calculator input")
)
