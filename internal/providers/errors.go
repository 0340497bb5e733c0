package providers

import (
	"errors"
	"fmt"

	"sctr/internal/util"
)

const (
	GenericErrorMessage  = "Error al procesar el documento"
	ContractErrorMessage = "La respuesta del servidor no tiene el formato esperado"
)

type ErrorType string

const (
	ErrorValidation ErrorType = "validation"
	ErrorTransport  ErrorType = "transport"
	ErrorService    ErrorType = "service"
	ErrorContract   ErrorType = "contract"
)

// ServiceError is a failed extraction call. Message is safe to show to the user.
type ServiceError struct {
	Message string
	Status  int
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%v (status %d): %s", e.Err, e.Status, e.Message)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ClassifyError buckets err for metrics and logs.
func ClassifyError(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, util.ErrNotPDF), errors.Is(err, util.ErrFileTooLarge), errors.Is(err, util.ErrIncompleteInput):
		return ErrorValidation
	case errors.Is(err, util.ErrContractViolation):
		return ErrorContract
	case errors.Is(err, util.ErrServiceStatus):
		return ErrorService
	default:
		return ErrorTransport
	}
}

// UserMessage returns the message to show for a failed extraction call.
func UserMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	if errors.Is(err, util.ErrContractViolation) {
		return ContractErrorMessage
	}
	return GenericErrorMessage
}

func transportError(err error) error {
	return &ServiceError{Message: GenericErrorMessage, Err: fmt.Errorf("%w: %w", util.ErrTransport, err)}
}
