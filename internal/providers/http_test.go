package providers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sctr/internal/config"
	"sctr/internal/util"
)

const okBody = `{
  "extracted_text": "Juan Perez asegurado",
  "person_name": "Juan Perez",
  "component": {"metadata": {"total_length": 20, "section_count": 1}, "sections": []},
  "segmented_sections": {"content": [{"policy_number": "P-1"}, {"policy_number": "P-2"}]}
}`

func pdfDoc() Document {
	return Document{Name: "poliza.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4 test")}
}

func TestHTTPExtractorSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/document/v2/validate", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Juan Perez", r.FormValue("person_name"))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "poliza.pdf", hdr.Filename)
		assert.Equal(t, "application/pdf", hdr.Header.Get("Content-Type"))
		data, _ := io.ReadAll(f)
		assert.Equal(t, "%PDF-1.4 test", string(data))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	ex := NewHTTPExtractor(srv.URL+"/document/v2/validate", time.Second)
	res, err := ex.Validate(context.Background(), pdfDoc(), "Juan Perez")
	require.NoError(t, err)
	assert.Equal(t, "Juan Perez", res.PersonName)
	require.Len(t, res.SegmentedSections.Content, 2)
	v, ok := res.SegmentedSections.Content[1].Get("policy_number")
	require.True(t, ok)
	assert.Equal(t, "P-2", v.Text)
}

func TestHTTPExtractorServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"El PDF no contiene texto"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPExtractor(srv.URL, time.Second).Validate(context.Background(), pdfDoc(), "Ana")
	require.Error(t, err)
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnprocessableEntity, se.Status)
	assert.Equal(t, "El PDF no contiene texto", se.Message)
	assert.Equal(t, ErrorService, ClassifyError(err))
}

func TestHTTPExtractorMissingComponentIsContractViolation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"extracted_text":"x","segmented_sections":{"content":[]}}`))
	}))
	defer srv.Close()

	_, err := NewHTTPExtractor(srv.URL, time.Second).Validate(context.Background(), pdfDoc(), "Ana")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrContractViolation))
	assert.Equal(t, ContractErrorMessage, UserMessage(err))
}

func TestHTTPExtractorTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPExtractor(url, time.Second).Validate(context.Background(), pdfDoc(), "Ana")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrTransport))
	assert.Equal(t, GenericErrorMessage, UserMessage(err))
}

func TestNewExtractor(t *testing.T) {
	cfg := config.Config{ExtractorBaseURL: "http://svc:8001/", ValidatePath: "/document/v2/validate", RequestTimeout: time.Second}
	ex, err := NewExtractor(cfg)
	require.NoError(t, err)
	assert.Equal(t, "http://svc:8001/document/v2/validate", ex.Endpoint())

	_, err = NewExtractor(config.Config{ExtractorBaseURL: "ftp://svc"})
	require.Error(t, err)
	_, err = NewExtractor(config.Config{ExtractorBaseURL: "localhost"})
	require.Error(t, err)
}
