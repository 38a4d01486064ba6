package error

import "errors"

// Mineral domain errors.
var (
	// ErrMineralNotFound is returned when a mineral is not found in the system.
	ErrMineralNotFound = errors.New("mineral not found")

	// ErrNoProductionData is returned when a mineral has no production history.
	ErrNoProductionData = errors.New("no production data available")

	// ErrSeedDataInvalid is returned when the embedded seed dataset cannot be parsed.
	ErrSeedDataInvalid = errors.New("invalid mineral seed data")
)

// MineralErrorCode defines error codes for mineral errors.
// Format: MIN-XXYYYY where XX is category and YYYY is specific error.
type MineralErrorCode string

const (
	// Lookup errors (01XXXX)
	ErrCodeMineralNotFound  MineralErrorCode = "MIN-010001"
	ErrCodeNoProductionData MineralErrorCode = "MIN-010002"

	// Seed errors (02XXXX)
	ErrCodeSeedDataInvalid MineralErrorCode = "MIN-020001"
)

// MineralError represents a mineral error with code and message.
type MineralError struct {
	Code    MineralErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *MineralError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *MineralError) Unwrap() error {
	return e.Err
}

// NewMineralError creates a new MineralError with the given code and message.
func NewMineralError(code MineralErrorCode, message string, err error) *MineralError {
	return &MineralError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
