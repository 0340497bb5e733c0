package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"sctr/internal/util"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorType
	}{
		{nil, ""},
		{util.ErrNotPDF, ErrorValidation},
		{fmt.Errorf("stage: %w", util.ErrFileTooLarge), ErrorValidation},
		{util.ErrIncompleteInput, ErrorValidation},
		{&ServiceError{Message: "x", Status: 500, Err: util.ErrServiceStatus}, ErrorService},
		{&ServiceError{Message: ContractErrorMessage, Err: fmt.Errorf("%w: missing", util.ErrContractViolation)}, ErrorContract},
		{transportError(context.DeadlineExceeded), ErrorTransport},
		{errors.New("connection refused"), ErrorTransport},
	}
	for _, c := range cases {
		if got := ClassifyError(c.err); got != c.want {
			t.Fatalf("classify %v: got %q want %q", c.err, got, c.want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(&ServiceError{Message: "Archivo corrupto", Err: util.ErrServiceStatus}); got != "Archivo corrupto" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := UserMessage(fmt.Errorf("%w: x", util.ErrContractViolation)); got != ContractErrorMessage {
		t.Fatalf("unexpected message %q", got)
	}
	if got := UserMessage(errors.New("boom")); got != GenericErrorMessage {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestServiceErrorUnwraps(t *testing.T) {
	err := transportError(errors.New("dial tcp: refused"))
	if !errors.Is(err, util.ErrTransport) {
		t.Fatalf("expected transport sentinel in %v", err)
	}
}

func TestErrorMessage(t *testing.T) {
	cases := map[string]string{
		`{"detail":"Documento ilegible"}`:                             "Documento ilegible",
		`{"detail":[{"loc":["body","file"],"msg":"field required"}]}`: "field required",
		`{"error":"Servicio no disponible"}`:                          "Servicio no disponible",
		`{"error":{"message":"timeout interno"}}`:                     "timeout interno",
		`{"detail":"","error":"fallback"}`:                            "fallback",
		`{"other":1}`:                                                 GenericErrorMessage,
		`<html>502</html>`:                                            GenericErrorMessage,
		``:                                                            GenericErrorMessage,
		`["detail"]`:                                                  GenericErrorMessage,
	}
	for body, want := range cases {
		if got := errorMessage([]byte(body)); got != want {
			t.Fatalf("errorMessage(%s): got %q want %q", body, got, want)
		}
	}
}
