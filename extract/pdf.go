package extract

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/brunobiangulo/docscore/complexity"
)

type PDFExtractor struct{}

func (e *PDFExtractor) SupportedFormats() []string { return []string{"pdf"} }

// Extract measures a PDF in two passes. The first walks pages for table
// grids and embedded images; the second re-walks the positioned text to
// count dense blocks and infer the column count. The passes stay
// independent: tables come from the plain-text rendering, density from
// the layout.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (complexity.Features, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return complexity.Features{}, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var feats complexity.Features
	totalPages := reader.NumPage()

	// Pass 1: tables and images.
	for i := 1; i <= totalPages; i++ {
		if err := ctx.Err(); err != nil {
			return complexity.Features{}, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return complexity.Features{}, fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		feats.ComplexTables += countComplex(tableGridsFromText(text))

		images, err := countPageImages(page)
		if err != nil {
			return complexity.Features{}, fmt.Errorf("counting images on page %d: %w", i, err)
		}
		feats.Images += images
	}

	// Pass 2: layout density.
	columns := 1
	for i := 1; i <= totalPages; i++ {
		if err := ctx.Err(); err != nil {
			return complexity.Features{}, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageDense := 0
		for _, block := range textBlocks(page) {
			if utf8.RuneCountInString(block) > denseTextThreshold {
				pageDense++
			}
		}
		if pageDense > denseBlockColumnLimit {
			columns = 2
		}
		feats.DenseParagraphs += pageDense
	}
	feats.Columns = columns

	return feats, nil
}

// tableGridsFromText recovers cell grids from a page's rendered text.
// Plain-text PDFs carry no explicit table model, so rows are lines split
// on tab or pipe delimiters and consecutive delimited lines form one
// grid. A grid needs at least two rows to count as a table.
func tableGridsFromText(text string) [][][]string {
	var grids [][][]string
	var current [][]string

	flush := func() {
		if len(current) >= 2 {
			grids = append(grids, current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		row, ok := splitDelimitedRow(line)
		if !ok {
			flush()
			continue
		}
		current = append(current, row)
	}
	flush()

	return grids
}

// splitDelimitedRow splits a line into cells when it looks like a table
// row: pipe-delimited with at least two pipes, or tab-delimited.
func splitDelimitedRow(line string) ([]string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, false
	}

	var parts []string
	switch {
	case strings.Count(trimmed, "|") >= 2:
		parts = strings.Split(strings.Trim(trimmed, "|"), "|")
	case strings.Contains(trimmed, "\t"):
		parts = strings.Split(trimmed, "\t")
	default:
		return nil, false
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 {
		return nil, false
	}
	return parts, true
}

// countPageImages counts image XObjects in the page's resource dictionary.
// The pdf package panics on malformed object references, so the walk runs
// under recoverScan and a panic surfaces as an error.
func countPageImages(page pdf.Page) (int, error) {
	return recoverScan(func() int {
		resources := page.V.Key("Resources")
		if resources.IsNull() {
			return 0
		}
		xObjects := resources.Key("XObject")
		if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
			return 0
		}

		n := 0
		for _, key := range xObjects.Keys() {
			obj := xObjects.Key(key)
			if obj.IsNull() {
				continue
			}
			if obj.Key("Subtype").Name() == "Image" {
				n++
			}
		}
		return n
	})
}

// recoverScan converts a panic inside a pdf value walk into an error.
func recoverScan(scan func() int) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("resolving page resources: %v", r)
		}
	}()
	return scan(), nil
}

// Row grouping tolerances for the layout pass, in points. Characters
// within rowTolerancePt of each other vertically belong to one row; rows
// closer than blockGapPt merge into one text block.
const (
	rowTolerancePt = 2.0
	blockGapPt     = 18.0
)

// textBlocks groups a page's positioned text into paragraph-sized blocks
// and returns their concatenated text, top to bottom.
func textBlocks(page pdf.Page) []string {
	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	texts := make([]pdf.Text, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return nil
	}

	// PDF Y grows upward: sort top of page first, then left to right.
	sort.SliceStable(texts, func(i, j int) bool {
		if texts[i].Y != texts[j].Y {
			return texts[i].Y > texts[j].Y
		}
		return texts[i].X < texts[j].X
	})

	// Bucket characters into rows by baseline Y.
	type row struct {
		y    float64
		text strings.Builder
	}
	var rows []*row
	for _, t := range texts {
		if len(rows) > 0 && rows[len(rows)-1].y-t.Y <= rowTolerancePt {
			rows[len(rows)-1].text.WriteString(t.S)
			continue
		}
		r := &row{y: t.Y}
		r.text.WriteString(t.S)
		rows = append(rows, r)
	}

	// Merge adjacent rows into blocks while the vertical gap stays small.
	var blocks []string
	var block strings.Builder
	prevY := rows[0].y
	for i, r := range rows {
		if i > 0 && prevY-r.y > blockGapPt {
			blocks = append(blocks, block.String())
			block.Reset()
		}
		if block.Len() > 0 {
			block.WriteString("\n")
		}
		block.WriteString(r.text.String())
		prevY = r.y
	}
	if block.Len() > 0 {
		blocks = append(blocks, block.String())
	}

	return blocks
}
