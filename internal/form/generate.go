// Package form generates per-employee performance-review workbooks from a
// KPI template workbook: one standalone, fully formatted form per visible
// KPI sheet, bundled into a zip archive.
package form

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"

	"reviewforms/internal/layout"
	"reviewforms/internal/textutil"
)

// ErrNoEligibleSheets is returned when the uploaded workbook contains no
// visible KPI sheets to generate forms from.
var ErrNoEligibleSheets = errors.New("no visible KPI sheets in workbook")

// Options holds configuration for a Generator.
type Options struct {
	period     layout.Period
	fiscalYear string
}

func defaultOptions() *Options {
	return &Options{period: layout.PeriodMid}
}

// Option configures a Generator.
type Option func(*Options)

// WithPeriod sets the review period (mid- or end-of-year).
func WithPeriod(p layout.Period) Option {
	return func(o *Options) { o.period = p }
}

// WithFiscalYear sets the fiscal-year string written to each form and used
// in output file names.
func WithFiscalYear(fy string) Option {
	return func(o *Options) { o.fiscalYear = fy }
}

// File is one generated workbook, serialized and named for the archive.
type File struct {
	Name string
	Data []byte
}

// Generator builds review forms from a template workbook.
type Generator struct {
	opts *Options
}

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Generator{opts: o}
}

// Generate reads a template workbook and returns one output workbook per
// eligible sheet: visible, and not the dashboard or the shared soft-skills
// sheet. The soft-skills sheet, when present, contributes Section B to every
// form. Zero eligible sheets is ErrNoEligibleSheets.
func (g *Generator) Generate(r io.Reader) ([]File, error) {
	src, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer src.Close()

	var softRows []TemplateRow
	if slices.Contains(src.GetSheetList(), layout.SheetSoftSkills) {
		softRows, err = ReadRows(src, layout.SheetSoftSkills)
		if err != nil {
			return nil, fmt.Errorf("read soft-skills sheet: %w", err)
		}
	}

	var files []File
	for _, name := range src.GetSheetList() {
		if name == layout.SheetDashboard || name == layout.SheetSoftSkills {
			continue
		}
		visible, err := src.GetSheetVisible(name)
		if err != nil {
			return nil, fmt.Errorf("check visibility of sheet %q: %w", name, err)
		}
		if !visible {
			continue
		}

		rows, err := ReadRows(src, name)
		if err != nil {
			return nil, err
		}
		data, err := g.buildWorkbook(name, rows, softRows)
		if err != nil {
			return nil, fmt.Errorf("build form for sheet %q: %w", name, err)
		}
		files = append(files, File{Name: g.fileName(name), Data: data})
	}

	if len(files) == 0 {
		return nil, ErrNoEligibleSheets
	}
	return files, nil
}

// buildWorkbook assembles one standalone output workbook for a source sheet.
func (g *Generator) buildWorkbook(srcSheet string, rows, softRows []TemplateRow) ([]byte, error) {
	out := excelize.NewFile()
	defer out.Close()

	title := textutil.TruncateRunes(g.opts.period.TitlePrefix()+srcSheet, layout.MaxSheetTitle)
	if err := out.SetSheetName("Sheet1", title); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	if err := buildSheet(out, title, srcSheet, rows, softRows, g.opts.period, g.opts.fiscalYear); err != nil {
		return nil, err
	}

	buf, err := out.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// fileName builds the archive entry name: period code, fiscal year when
// given, and the sanitized source sheet name.
func (g *Generator) fileName(srcSheet string) string {
	name := g.opts.period.Code()
	if g.opts.fiscalYear != "" {
		name += "-" + textutil.SanitizeFilename(g.opts.fiscalYear)
	}
	return name + "-" + textutil.SanitizeFilename(srcSheet) + ".xlsx"
}

// Zip bundles generated files into a single in-memory zip archive.
func Zip(files []File) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("add %q to archive: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("write %q to archive: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
