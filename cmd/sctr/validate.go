package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"sctr/internal/config"
	"sctr/internal/export"
	"sctr/internal/logger"
	"sctr/internal/models"
	"sctr/internal/providers"
	"sctr/internal/report"
	"sctr/internal/util"
	"sctr/internal/workflow"
)

type validateOptions struct {
	File     string
	Person   string
	Search   string
	XLSX     string
	JSON     string
	APIURL   string
	MaxSize  int64
	Timeout  time.Duration
	NoColor  bool
	NoText   bool
	LogLevel string
}

type jsonOutput struct {
	Report report.Report           `json:"report"`
	Result models.ValidationResult `json:"result"`
}

func newValidateCmd() *cobra.Command {
	cfg := config.Load()
	opts := validateOptions{
		APIURL:   cfg.ExtractorBaseURL,
		MaxSize:  cfg.MaxUploadBytes,
		Timeout:  cfg.RequestTimeout,
		LogLevel: "warn",
	}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Send a PDF and a person name for validation and print the report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			color := !opts.NoColor
			if f, ok := cmd.OutOrStdout().(*os.File); !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
				color = false
			}
			logger.Init(logger.Config{Level: opts.LogLevel, Format: "pretty", TimeFormat: time.Kitchen, Out: cmd.ErrOrStderr()})
			return runValidate(cmd.Context(), cfg, opts, color, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.File, "file", "f", "", "PDF document to validate")
	f.StringVarP(&opts.Person, "person", "p", "", "name of the person to look for")
	f.StringVarP(&opts.Search, "search", "s", "", "highlight this term in the extracted text")
	f.StringVar(&opts.XLSX, "xlsx", "", "also write the report as an XLSX workbook")
	f.StringVar(&opts.JSON, "json", "", "also write the report and raw result as JSON")
	f.StringVar(&opts.APIURL, "api-url", opts.APIURL, "extraction service base URL")
	f.Int64Var(&opts.MaxSize, "max-size", opts.MaxSize, "maximum upload size in bytes")
	f.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "extraction request timeout")
	f.BoolVar(&opts.NoColor, "no-color", false, "never highlight matches with ANSI colors")
	f.BoolVar(&opts.NoText, "no-text", false, "omit the extracted text from the report")
	f.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "log level")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("person")
	return cmd
}

func runValidate(ctx context.Context, cfg config.Config, opts validateOptions, color bool, out io.Writer) error {
	cfg.ExtractorBaseURL = opts.APIURL
	cfg.MaxUploadBytes = opts.MaxSize
	cfg.RequestTimeout = opts.Timeout

	ex, err := providers.NewExtractor(cfg)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(opts.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.File, err)
	}

	wf := workflow.New(ex, workflow.OptionsFromConfig(cfg))
	if err := wf.Stage(filepath.Base(opts.File), contentTypeOf(opts.File), data); err != nil {
		return errors.New(workflow.Message(err))
	}
	res, err := wf.Submit(ctx, opts.Person)
	if err != nil {
		return errors.New(workflow.Message(err))
	}

	r := report.Build(res, opts.Search)
	if opts.XLSX != "" {
		book, err := export.WorkbookXLSX(r, res.ExtractedText)
		if err != nil {
			return err
		}
		if err := util.WriteFileAtomic(opts.XLSX, book); err != nil {
			return err
		}
	}
	if opts.JSON != "" {
		if err := util.WriteJSONAtomic(opts.JSON, jsonOutput{Report: r, Result: res}); err != nil {
			return err
		}
	}
	return report.WriteText(out, r, report.TextOptions{Color: color, SkipRawText: opts.NoText})
}

// contentTypeOf mirrors a browser file picker, which types a file by its extension.
func contentTypeOf(path string) string {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}
