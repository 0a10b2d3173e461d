// Package docscore scores office documents for structural complexity.
//
// One document goes in, one report comes out: the per-format extractor
// measures complex tables, embedded images, column layout, and dense
// paragraphs, and the scorer folds the four counts into a weighted final
// score with a Low/Medium/High label. Nothing is cached or persisted; every
// call recomputes from the file, so an Analyzer is safe to share across
// goroutines.
//
// Usage:
//
//	analyzer := docscore.New(docscore.DefaultConfig())
//	report, err := analyzer.Analyze(ctx, "/path/to/report.docx", "")
//	fmt.Println(report.FinalScore, report.Level)
package docscore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brunobiangulo/docscore/complexity"
	"github.com/brunobiangulo/docscore/extract"
)

// Analyzer runs the full pipeline: select a format extractor, collect the
// raw measurements, combine them into a report.
type Analyzer struct {
	cfg      Config
	registry *extract.Registry
}

// New creates an Analyzer with the given configuration.
func New(cfg Config) *Analyzer {
	cfg.defaults()
	return &Analyzer{
		cfg:      cfg,
		registry: extract.NewRegistry(),
	}
}

// Registry exposes the format registry so callers can register custom
// extractors.
func (a *Analyzer) Registry() *extract.Registry { return a.registry }

// Analyze scores one document. format is the declared file type ("pdf",
// "docx", "pptx", "xlsx"); when empty it is derived from the file
// extension. Unsupported formats fail before the file is touched.
func (a *Analyzer) Analyze(ctx context.Context, path, format string) (*complexity.Report, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	format = strings.ToLower(format)

	extractor, err := a.registry.Get(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	if info.Size() > a.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, info.Size(), a.cfg.MaxFileSize)
	}

	a.cfg.Logger.Debug("analyzing document", "path", path, "format", format)

	feats, err := extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	report := complexity.Score(feats)

	a.cfg.Logger.Info("document analyzed",
		"path", path,
		"format", format,
		"complex_tables", report.ComplexTables,
		"images", report.Images,
		"columns", report.Columns,
		"dense_paragraphs", report.DenseParagraphs,
		"final_score", report.FinalScore,
		"level", report.Level,
	)

	return &report, nil
}
