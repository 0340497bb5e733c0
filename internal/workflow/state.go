package workflow

import (
	"errors"
	"strconv"

	"github.com/dustin/go-humanize"

	"sctr/internal/models"
	"sctr/internal/providers"
	"sctr/internal/util"
)

type State int

const (
	Idle State = iota
	FileStaged
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case FileStaged:
		return "file_staged"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// StagedFile is an accepted upload waiting to be submitted.
type StagedFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Pages       int    `json:"pages,omitempty"`
	Checksum    string `json:"checksum"`
	Data        []byte `json:"-"`
}

func (f StagedFile) HumanSize() string {
	return humanize.IBytes(uint64(f.Size))
}

// Snapshot is a consistent copy of the workflow for rendering.
type Snapshot struct {
	State      State                    `json:"state"`
	File       *StagedFile              `json:"file,omitempty"`
	PersonName string                   `json:"person_name,omitempty"`
	Progress   int                      `json:"progress"`
	Result     *models.ValidationResult `json:"-"`
	Err        error                    `json:"-"`
	// Error is the failure message of the Failed state.
	Error string `json:"error,omitempty"`
	// Notice is the last local rejection. It never changes State.
	Notice string `json:"notice,omitempty"`
}

// CanSubmit reports whether the submit control should be enabled.
func (s Snapshot) CanSubmit() bool {
	return s.File != nil && (s.State == FileStaged || s.State == Failed)
}

// InputError is a local validation failure. It never reaches the extraction service.
type InputError struct {
	Message string
	Err     error
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Unwrap() error { return e.Err }

const IncompleteInputMessage = "Por favor proporciona un archivo PDF y el nombre de la persona"

func notPDF() error {
	return &InputError{Message: "Solo se permiten archivos PDF", Err: util.ErrNotPDF}
}

func tooLarge(max int64) error {
	mb := strconv.FormatFloat(float64(max)/(1024*1024), 'f', -1, 64)
	return &InputError{Message: "El archivo excede el tamaño máximo permitido de " + mb + "MB", Err: util.ErrFileTooLarge}
}

func incomplete() error {
	return &InputError{Message: IncompleteInputMessage, Err: util.ErrIncompleteInput}
}

// Message is the user-facing text for any workflow error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Message
	}
	switch {
	case errors.Is(err, util.ErrSubmitInFlight):
		return "Ya hay un documento en procesamiento"
	case errors.Is(err, util.ErrInvalidState):
		return "Reinicia el análisis para procesar otro documento"
	}
	return providers.UserMessage(err)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, util.ErrNotPDF):
		return "not_pdf"
	case errors.Is(err, util.ErrFileTooLarge):
		return "too_large"
	case errors.Is(err, util.ErrIncompleteInput):
		return "incomplete"
	case errors.Is(err, util.ErrSubmitInFlight):
		return "in_flight"
	default:
		return "invalid_state"
	}
}
