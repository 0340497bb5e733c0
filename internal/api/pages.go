package api

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"sctr/internal/logger"
	"sctr/internal/report"
	"sctr/internal/workflow"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type tabLink struct {
	Label  string
	Href   string
	Active bool
}

type pageLabels struct {
	PoliciesHeading string
	NoPolicies      string
	Metadata        string
	TotalLength     string
	SectionCount    string
	SearchedPerson  string
}

var labels = pageLabels{
	PoliciesHeading: report.LabelPoliciesHeading,
	NoPolicies:      report.LabelNoPolicies,
	Metadata:        report.LabelMetadata,
	TotalLength:     report.LabelTotalLength,
	SectionCount:    report.LabelSectionCount,
	SearchedPerson:  report.LabelSearchedPerson,
}

type pageData struct {
	Snapshot   workflow.Snapshot
	MaxMB      string
	Submitting bool
	CanSubmit  bool
	Refresh    bool

	Report *report.Report
	Tab    report.Tab
	Query  string
	Tabs   []tabLink
	Labels pageLabels
}

func newPageData(snap workflow.Snapshot, maxBytes int64) pageData {
	return pageData{
		Snapshot:   snap,
		MaxMB:      strconv.FormatFloat(float64(maxBytes)/(1024*1024), 'f', -1, 64),
		Submitting: snap.State == workflow.Submitting,
		CanSubmit:  snap.CanSubmit(),
		Refresh:    snap.State == workflow.Submitting,
		Labels:     labels,
	}
}

func (p *pageData) setReport(r report.Report, tab report.Tab, query string) {
	p.Report = &r
	p.Tab = tab
	p.Query = query
	for _, t := range []struct {
		tab   report.Tab
		label string
	}{
		{report.TabAnalysis, report.TabLabelAnalysis},
		{report.TabStructured, report.TabLabelStructured},
		{report.TabRaw, report.TabLabelRaw},
	} {
		q := url.Values{"tab": {string(t.tab)}}
		if query != "" {
			q.Set("q", query)
		}
		p.Tabs = append(p.Tabs, tabLink{Label: t.label, Href: "/?" + q.Encode(), Active: t.tab == tab})
	}
}

func renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, data); err != nil {
		logger.Error().Err(err).Msg("render page")
	}
}
