package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"sctr/internal/config"
	"sctr/internal/export"
	"sctr/internal/logger"
	"sctr/internal/metrics"
	"sctr/internal/models"
	"sctr/internal/providers"
	"sctr/internal/report"
	"sctr/internal/util"
	"sctr/internal/workflow"
)

// multipart bodies carry a little framing on top of the file itself.
const formOverhead = 1 << 20

type Server struct {
	cfg       config.Config
	extractor providers.Extractor
	sessions  *sessionStore
}

func NewServer(cfg config.Config, ex providers.Extractor) *Server {
	s := &Server{cfg: cfg, extractor: ex}
	s.sessions = newSessionStore(cfg.SessionTTL, s.newWorkflow)
	return s
}

func (s *Server) newWorkflow(id string) *workflow.Workflow {
	opts := workflow.OptionsFromConfig(s.cfg)
	opts.ID = id
	return workflow.New(s.extractor, opts)
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/reset", s.handleReset)
	mux.HandleFunc("/progress", s.handleProgress)
	mux.HandleFunc("/export.xlsx", s.handleExport)
	mux.HandleFunc("/text.txt", s.handleText)
	mux.HandleFunc("/api/validate", s.handleValidate)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", metrics.Handler())
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	sess := s.sessions.get(w, r)
	snap := sess.wf.Snapshot()
	data := newPageData(snap, sess.wf.MaxUploadBytes())
	if snap.State == workflow.Succeeded && snap.Result != nil {
		q := r.URL.Query()
		term := q.Get("q")
		data.setReport(report.Build(*snap.Result, term), report.ParseTab(q.Get("tab")), term)
	}
	renderPage(w, data)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	sess := s.sessions.get(w, r)
	if err := s.stageFromForm(w, r, sess.wf, true); err != nil {
		logger.Ctx(r.Context()).Debug().Err(err).Str("session", sess.id).Msg("upload not staged")
	}
	redirectHome(w, r)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	sess := s.sessions.get(w, r)
	if err := s.stageFromForm(w, r, sess.wf, false); err != nil {
		redirectHome(w, r)
		return
	}
	// The call outlives this request; the page refresh follows its progress.
	ctx := context.WithoutCancel(r.Context())
	if _, err := sess.wf.SubmitAsync(ctx, r.FormValue("person_name")); err != nil {
		logger.Ctx(r.Context()).Debug().Err(err).Str("session", sess.id).Msg("submit refused")
	}
	redirectHome(w, r)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	sess := s.sessions.get(w, r)
	_ = sess.wf.Reset()
	redirectHome(w, r)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	writeJSON(w, http.StatusOK, s.sessions.get(w, r).wf.Snapshot())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	snap := s.sessions.get(w, r).wf.Snapshot()
	if snap.Result == nil {
		writeErr(w, http.StatusConflict, util.ErrNoResult)
		return
	}
	data, err := export.WorkbookXLSX(report.Build(*snap.Result, r.URL.Query().Get("q")), snap.Result.ExtractedText)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", attachment(downloadName(snap.File, ".xlsx")))
	_, _ = w.Write(data)
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	snap := s.sessions.get(w, r).wf.Snapshot()
	if snap.Result == nil {
		writeErr(w, http.StatusConflict, util.ErrNoResult)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(downloadName(snap.File, ".txt")))
	_, _ = io.WriteString(w, snap.Result.ExtractedText)
}

type validateResponse struct {
	Report report.Report           `json:"report"`
	Result models.ValidationResult `json:"result"`
}

// handleValidate runs one stateless workflow for programmatic clients.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	wf := s.newWorkflow("api")
	if err := s.stageFromForm(w, r, wf, true); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	res, err := wf.Submit(r.Context(), r.FormValue("person_name"))
	if err != nil {
		status := http.StatusBadGateway
		var ie *workflow.InputError
		if errors.As(err, &ie) {
			status = http.StatusBadRequest
		}
		writeErr(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Report: report.Build(res, r.FormValue("q")), Result: res})
}

// stageFromForm parses the request form and stages its file, if any. With
// requireFile set, a form without a file is an incomplete-input error.
func (s *Server) stageFromForm(w http.ResponseWriter, r *http.Request, wf *workflow.Workflow, requireFile bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, wf.MaxUploadBytes()+formOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) || strings.Contains(err.Error(), "request body too large") {
			return wf.RejectOversized()
		}
		return fmt.Errorf("parse multipart: %w", err)
	}
	if r.MultipartForm == nil {
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("parse form: %w", err)
		}
	}

	fh, ok := uploadedFile(r)
	if !ok {
		if requireFile {
			return wf.RejectMissingFile()
		}
		return nil
	}
	data, err := readUpload(fh)
	if err != nil {
		return err
	}
	return wf.Stage(fh.Filename, uploadContentType(fh), data)
}

func uploadedFile(r *http.Request) (*multipart.FileHeader, bool) {
	if r.MultipartForm == nil {
		return nil, false
	}
	if files := r.MultipartForm.File["file"]; len(files) > 0 && files[0].Filename != "" {
		return files[0], true
	}
	for _, v := range r.MultipartForm.File {
		if len(v) > 0 && v[0].Filename != "" {
			return v[0], true
		}
	}
	return nil, false
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

// uploadContentType is the type the client declared, or the one its extension
// implies when the client declared none.
func uploadContentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename)))
}

func downloadName(f *workflow.StagedFile, ext string) string {
	base := "documento"
	if f != nil && f.Name != "" {
		base = strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
	}
	return base + ext
}

func attachment(name string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": name})
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Solicitud inválida."
	code := "SCTR-API-4000"

	switch {
	case status >= 500 && status != http.StatusBadGateway:
		return apiError{Code: "SCTR-API-5000", Message: "Error interno del servidor."}
	case status == http.StatusBadRequest:
		code = "SCTR-API-4001"
	case status == http.StatusNotFound:
		code = "SCTR-API-4004"
		msg = "Recurso no encontrado."
	case status == http.StatusConflict:
		code = "SCTR-API-4009"
		msg = "No hay resultados de validación disponibles."
	case status == http.StatusMethodNotAllowed:
		code = "SCTR-API-4005"
		msg = "Método no permitido."
	case status == http.StatusBadGateway:
		code = "SCTR-API-5020"
		msg = providers.GenericErrorMessage
	}

	// Validation and upstream failures carry messages meant for the user.
	var ie *workflow.InputError
	var se *providers.ServiceError
	switch {
	case errors.As(err, &ie):
		msg = ie.Message
	case errors.As(err, &se):
		msg = se.Message
		switch providers.ClassifyError(err) {
		case providers.ErrorContract:
			code = "SCTR-UPSTREAM-5022"
		case providers.ErrorService:
			code = "SCTR-UPSTREAM-5021"
		}
	case errors.Is(err, util.ErrSubmitInFlight), errors.Is(err, util.ErrInvalidState):
		msg = workflow.Message(err)
	}
	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
