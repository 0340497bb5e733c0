package providers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"sctr/internal/logger"
	"sctr/internal/metrics"
	"sctr/internal/models"
	"sctr/internal/util"
)

// HTTPExtractor posts documents to the remote validate endpoint.
type HTTPExtractor struct {
	endpoint string
	client   *http.Client
}

func NewHTTPExtractor(endpoint string, timeout time.Duration) *HTTPExtractor {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HTTPExtractor{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (h *HTTPExtractor) Endpoint() string { return h.endpoint }

func (h *HTTPExtractor) Validate(ctx context.Context, doc Document, personName string) (models.ValidationResult, error) {
	start := time.Now()
	requestID := uuid.NewString()
	res, status, err := h.validate(ctx, requestID, doc, personName)
	elapsed := time.Since(start)

	outcome := "success"
	if err != nil {
		outcome = string(ClassifyError(err))
	}
	metrics.ExtractionRequests.WithLabelValues(outcome).Inc()
	metrics.ExtractionDuration.Observe(elapsed.Seconds())

	l := logger.Ctx(ctx)
	ev := l.Info()
	if err != nil {
		ev = l.Warn().Err(err)
	}
	ev.Str("endpoint", h.endpoint).
		Str("request_id", requestID).
		Str("file", doc.Name).
		Int("size", len(doc.Data)).
		Int("status", status).
		Dur("duration", elapsed).
		Str("outcome", outcome).
		Msg("extraction call")
	return res, err
}

func (h *HTTPExtractor) validate(ctx context.Context, requestID string, doc Document, personName string) (models.ValidationResult, int, error) {
	body, contentType, err := encodeForm(doc, personName)
	if err != nil {
		return models.ValidationResult{}, 0, transportError(fmt.Errorf("encode form: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, body)
	if err != nil {
		return models.ValidationResult{}, 0, transportError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := h.client.Do(req)
	if err != nil {
		return models.ValidationResult{}, 0, transportError(fmt.Errorf("validate request failed: %w", err))
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ValidationResult{}, resp.StatusCode, transportError(fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Ctx(ctx).Debug().
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Str("body", util.DisplaySnippet(string(raw), 300)).
			Msg("service error body")
		return models.ValidationResult{}, resp.StatusCode, &ServiceError{
			Message: errorMessage(raw),
			Status:  resp.StatusCode,
			Err:     util.ErrServiceStatus,
		}
	}
	if err := CheckContract(raw); err != nil {
		return models.ValidationResult{}, resp.StatusCode, &ServiceError{Message: ContractErrorMessage, Status: resp.StatusCode, Err: err}
	}
	res, err := models.ParseValidationResult(raw)
	if err != nil {
		return models.ValidationResult{}, resp.StatusCode, &ServiceError{
			Message: ContractErrorMessage,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("%w: %w", util.ErrContractViolation, err),
		}
	}
	return res, resp.StatusCode, nil
}

func encodeForm(doc Document, personName string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	name := doc.Name
	if name == "" {
		name = "document.pdf"
	}
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{"name": "file", "filename": name}))
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(doc.Data); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("person_name", personName); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// errorMessage pulls a human readable message out of an error payload. FastAPI style
// bodies carry it under detail (a string or a list of {msg}); others under error (a
// string or {message}).
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return GenericErrorMessage
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return GenericErrorMessage
	}
	for _, path := range []string{"detail", "detail.0.msg", "error", "error.message"} {
		v := doc.Get(path)
		if v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			return v.Str
		}
	}
	return GenericErrorMessage
}
