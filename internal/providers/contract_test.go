package providers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"sctr/internal/util"
)

func TestCheckContract(t *testing.T) {
	valid := []string{
		`{"extracted_text":"x","component":{},"segmented_sections":{"content":[]}}`,
		`{"extracted_text":"x","component":{"metadata":{}},"segmented_sections":[],"person_name":"A"}`,
	}
	for _, body := range valid {
		require.NoError(t, CheckContract([]byte(body)), body)
	}

	invalid := []string{
		`{"extracted_text":"x","segmented_sections":{"content":[]}}`,
		`{"extracted_text":"","component":{},"segmented_sections":{}}`,
		`{"component":{},"segmented_sections":{}}`,
		`{"extracted_text":"x","component":null,"segmented_sections":{}}`,
		`{"extracted_text":"x","component":{},"segmented_sections":"none"}`,
		`[]`,
		`not json`,
	}
	for _, body := range invalid {
		err := CheckContract([]byte(body))
		require.Error(t, err, body)
		require.True(t, errors.Is(err, util.ErrContractViolation), body)
	}
}
