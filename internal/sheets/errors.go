package sheets

import (
	"errors"
	"fmt"
)

var (
	// ErrSinkForward matches every *SinkForwardError.
	ErrSinkForward = errors.New("sheet forward failed")
	// ErrNotConfigured is returned when no delivery mode is configured.
	ErrNotConfigured = errors.New("google sheets not configured")
	// ErrHeaderUnsupported is returned by EnsureHeader in web-hook mode, where
	// the Apps Script writes its own header.
	ErrHeaderUnsupported = errors.New("header initialisation needs API key or service-account access")
)

// SinkForwardError describes a failed delivery to the spreadsheet.
type SinkForwardError struct {
	Mode   Mode
	Status int
	Err    error
}

func (e *SinkForwardError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("sheets %s: status %d: %v", e.Mode, e.Status, e.Err)
	}
	return fmt.Sprintf("sheets %s: %v", e.Mode, e.Err)
}

func (e *SinkForwardError) Unwrap() error {
	return e.Err
}

func (e *SinkForwardError) Is(target error) bool {
	return target == ErrSinkForward
}
