package workflow

import (
	"context"
	"strings"
	"sync"
	"time"

	"sctr/internal/config"
	"sctr/internal/logger"
	"sctr/internal/metrics"
	"sctr/internal/models"
	"sctr/internal/providers"
	"sctr/internal/util"
)

const PDFContentType = "application/pdf"

type Options struct {
	MaxUploadBytes   int64
	ProgressStep     int
	ProgressInterval time.Duration
	// ProgressCap bounds the cosmetic progress while a call is pending. It is kept
	// below 100.
	ProgressCap int
	// ID labels log lines, typically the browser session.
	ID string
}

// OptionsFromConfig copies the workflow settings out of cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		MaxUploadBytes:   cfg.MaxUploadBytes,
		ProgressStep:     cfg.ProgressStep,
		ProgressInterval: cfg.ProgressInterval,
		ProgressCap:      cfg.ProgressCap,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxUploadBytes <= 0 {
		o.MaxUploadBytes = config.DefaultMaxUploadBytes
	}
	if o.ProgressStep <= 0 {
		o.ProgressStep = 5
	}
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = 300 * time.Millisecond
	}
	if o.ProgressCap <= 0 || o.ProgressCap >= 100 {
		o.ProgressCap = 90
	}
	return o
}

// Workflow is the upload/submit state machine of one interaction. It is safe for
// concurrent use; at most one submission is in flight at a time.
type Workflow struct {
	ex   providers.Extractor
	opts Options

	mu         sync.Mutex
	state      State
	file       *StagedFile
	personName string
	progress   int
	result     *models.ValidationResult
	err        error
	notice     string
	done       chan struct{}
}

func New(ex providers.Extractor, opts Options) *Workflow {
	return &Workflow{ex: ex, opts: opts.withDefaults()}
}

func (w *Workflow) MaxUploadBytes() int64 { return w.opts.MaxUploadBytes }

// CheckFile applies the upload rules without staging anything.
func (w *Workflow) CheckFile(contentType string, size int64) error {
	if contentType != PDFContentType {
		return notPDF()
	}
	if size > w.opts.MaxUploadBytes {
		return tooLarge(w.opts.MaxUploadBytes)
	}
	return nil
}

// Stage accepts a file for the next submission, replacing any staged file. A
// rejected file leaves the state and the previously staged file untouched.
func (w *Workflow) Stage(name, contentType string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case Submitting:
		return w.reject(util.ErrSubmitInFlight)
	case Succeeded:
		return w.reject(util.ErrInvalidState)
	}
	if err := w.CheckFile(contentType, int64(len(data))); err != nil {
		return w.reject(err)
	}

	f := &StagedFile{
		Name:        util.BaseName(name),
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}
	inspect(f)
	w.file = f
	w.err = nil
	w.notice = ""
	w.transition(FileStaged)
	logger.Info().Str("session", w.opts.ID).Str("file", f.Name).Str("size", f.HumanSize()).Int("pages", f.Pages).Msg("file staged")
	return nil
}

// RejectOversized records an upload refused before its body was read in full.
func (w *Workflow) RejectOversized() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reject(tooLarge(w.opts.MaxUploadBytes))
}

// RejectMissingFile records a form that arrived without a file.
func (w *Workflow) RejectMissingFile() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reject(incomplete())
}

// SubmitAsync starts the extraction call for the staged file and returns a channel
// closed once the workflow has left Submitting. ctx governs the remote call only.
func (w *Workflow) SubmitAsync(ctx context.Context, personName string) (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case Submitting:
		return nil, w.reject(util.ErrSubmitInFlight)
	case Succeeded:
		return nil, w.reject(util.ErrInvalidState)
	}
	w.personName = personName
	if w.file == nil || strings.TrimSpace(personName) == "" {
		return nil, w.reject(incomplete())
	}

	w.progress = 0
	w.err = nil
	w.notice = ""
	w.result = nil
	w.done = make(chan struct{})
	w.transition(Submitting)

	doc := providers.Document{Name: w.file.Name, ContentType: w.file.ContentType, Data: w.file.Data}
	go w.run(ctx, doc, personName, w.done)
	return w.done, nil
}

// Submit runs the extraction call and waits for its outcome.
func (w *Workflow) Submit(ctx context.Context, personName string) (models.ValidationResult, error) {
	done, err := w.SubmitAsync(ctx, personName)
	if err != nil {
		return models.ValidationResult{}, err
	}
	select {
	case <-done:
	case <-ctx.Done():
		// The extractor observes ctx too; wait for it to settle the state.
		<-done
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.state == Succeeded && w.result != nil:
		return *w.result, nil
	case w.state == Failed && w.err != nil:
		return models.ValidationResult{}, w.err
	}
	// Reset by another caller between completion and here.
	return models.ValidationResult{}, util.ErrNoResult
}

func (w *Workflow) run(ctx context.Context, doc providers.Document, personName string, done chan struct{}) {
	defer close(done)

	stop := make(chan struct{})
	stopped := make(chan struct{})
	go w.tick(stop, stopped)

	res, err := w.ex.Validate(ctx, doc, personName)
	close(stop)
	<-stopped

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.err = err
		w.progress = 0
		w.transition(Failed)
		logger.Warn().Err(err).Str("session", w.opts.ID).Str("class", string(providers.ClassifyError(err))).Msg("submission failed")
		return
	}
	w.progress = 100
	w.result = &res
	w.transition(Succeeded)
}

func (w *Workflow) tick(stop <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	t := time.NewTicker(w.opts.ProgressInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			w.mu.Lock()
			if w.state == Submitting {
				w.progress = min(w.progress+w.opts.ProgressStep, w.opts.ProgressCap)
			}
			w.mu.Unlock()
		}
	}
}

// Reset discards the staged file and any result or error. It is refused while a
// submission is in flight.
func (w *Workflow) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == Submitting {
		return w.reject(util.ErrSubmitInFlight)
	}
	w.file = nil
	w.personName = ""
	w.progress = 0
	w.result = nil
	w.err = nil
	w.notice = ""
	w.transition(Idle)
	return nil
}

// Wait blocks until no submission is in flight or ctx is done.
func (w *Workflow) Wait(ctx context.Context) error {
	w.mu.Lock()
	done := w.done
	w.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := Snapshot{
		State:      w.state,
		PersonName: w.personName,
		Progress:   w.progress,
		Result:     w.result,
		Err:        w.err,
		Notice:     w.notice,
	}
	if w.file != nil {
		f := *w.file
		s.File = &f
	}
	if w.state == Failed {
		s.Error = Message(w.err)
	}
	return s
}

// reject records a local rejection without changing state. Callers hold mu.
func (w *Workflow) reject(err error) error {
	w.notice = Message(err)
	metrics.UploadRejections.WithLabelValues(rejectionReason(err)).Inc()
	logger.Info().Str("session", w.opts.ID).Str("reason", rejectionReason(err)).Str("state", w.state.String()).Msg("input rejected")
	return err
}

// transition moves to next. Callers hold mu.
func (w *Workflow) transition(next State) {
	if w.state == next {
		return
	}
	logger.Debug().Str("session", w.opts.ID).Stringer("from", w.state).Stringer("to", next).Msg("workflow transition")
	w.state = next
}
