// Package extract implements the per-format feature extractors. Each
// extractor walks one document format and produces the raw measurements
// (complex tables, images, columns, dense paragraphs) consumed by the
// complexity scorer. Parser-library objects never cross this boundary;
// tables leave as plain grids and everything else as counts.
package extract

import (
	"context"
	"fmt"

	"github.com/brunobiangulo/docscore/complexity"
)

// Extractor walks a specific document format and measures its features.
type Extractor interface {
	Extract(ctx context.Context, path string) (complexity.Features, error)
	SupportedFormats() []string
}

// denseTextThreshold is the rendered-text length (in runes) above which a
// paragraph, text block, or text shape counts as dense.
const denseTextThreshold = 500

// denseBlockColumnLimit is the per-page dense-block count above which the
// PDF and PPTX paths assume a two-column layout. This is a coarse density
// proxy, not column geometry analysis.
const denseBlockColumnLimit = 5

type Registry struct {
	extractors map[string]Extractor
}

func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[string]Extractor)}
	// Register built-in extractors
	pdf := &PDFExtractor{}
	docx := &DOCXExtractor{}
	pptx := &PPTXExtractor{}
	xlsx := &XLSXExtractor{}

	for _, e := range []Extractor{pdf, docx, pptx, xlsx} {
		for _, f := range e.SupportedFormats() {
			r.extractors[f] = e
		}
	}
	return r
}

func (r *Registry) Get(format string) (Extractor, error) {
	e, ok := r.extractors[format]
	if !ok {
		return nil, fmt.Errorf("no extractor for format: %s", format)
	}
	return e, nil
}

func (r *Registry) Register(format string, e Extractor) {
	r.extractors[format] = e
}

// countComplex classifies every grid and returns how many come out
// labeled Complex.
func countComplex(grids [][][]string) int {
	n := 0
	for _, grid := range grids {
		if complexity.Classify(complexity.TextTable(grid)).Label == complexity.TableComplex {
			n++
		}
	}
	return n
}
