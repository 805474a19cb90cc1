// Package page renders the single Riskly landing page.
package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"riskly/risk-simulator/internal/chart"
	apperr "riskly/risk-simulator/internal/errors"
	"riskly/risk-simulator/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	Title     = "RISKLY | AI Audit & Risk Management"
	HeroImage = "https://images.unsplash.com/photo-1556761175-5973dc0f32e7?ixlib=rb-4.0.3&auto=format&fit=crop&w=1632&q=80"
)

var navLinks = []string{"PLATFORM", "SOLUTIONS", "RESOURCES", "PRICING"}

// View is the template input.
type View struct {
	Title      string
	HeroImage  string
	NavLinks   []string
	FieldName  string
	Accept     string
	Assessment model.Assessment
	Chart      template.HTML
	Legend     []chart.LegendEntry
	Error      *apperr.StandardError
}

type Renderer struct {
	tpl       *template.Template
	chartOpts chart.Options
	fieldName string
	accept    string
}

// New parses the embedded templates. fieldName is the multipart field of the
// upload control; accept is its accept attribute (".csv,.xlsx").
func New(fieldName, accept string) (*Renderer, error) {
	tpl, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return &Renderer{
		tpl:       tpl,
		chartOpts: chart.DefaultOptions(),
		fieldName: fieldName,
		accept:    accept,
	}, nil
}

// Build assembles the view for an assessment. The chart is only drawn for
// complete assessments.
func (r *Renderer) Build(a model.Assessment, viewErr *apperr.StandardError) (View, error) {
	v := View{
		Title:      Title,
		HeroImage:  HeroImage,
		NavLinks:   navLinks,
		FieldName:  r.fieldName,
		Accept:     r.accept,
		Assessment: a,
		Error:      viewErr,
	}
	if !a.Complete() {
		return v, nil
	}
	svg, err := chart.RenderBarSVG(a.Rows, r.chartOpts)
	if err != nil {
		return View{}, err
	}
	// go-chart output is generated from our own constant labels.
	v.Chart = template.HTML(svg)
	v.Legend = chart.Legend(a.Rows, r.chartOpts.Colors)
	return v, nil
}

// Render writes the full page. Output is buffered so a template failure
// never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, a model.Assessment, viewErr *apperr.StandardError) error {
	v, err := r.Build(a, viewErr)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "index.html.tmpl", v); err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}
