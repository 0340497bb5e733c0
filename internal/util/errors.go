package util

import "errors"

var (
	ErrNotPDF          = errors.New("only PDF files are allowed")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrIncompleteInput = errors.New("a staged PDF and a person name are required")
	ErrSubmitInFlight  = errors.New("a submission is already in progress")
	ErrNoResult        = errors.New("no validation result available")
	ErrInvalidState    = errors.New("operation not allowed in current state")

	ErrTransport         = errors.New("extraction service unreachable")
	ErrServiceStatus     = errors.New("extraction service returned an error status")
	ErrContractViolation = errors.New("extraction response does not match contract")
)
