package extract

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/brunobiangulo/docscore/complexity"
)

// XLSXExtractor treats each sheet's used range as one table. Spreadsheets
// have no flowing text, so the column count stays at the single-column
// baseline and only unusually long cell values count as dense.
type XLSXExtractor struct{}

func (e *XLSXExtractor) SupportedFormats() []string { return []string{"xlsx"} }

func (e *XLSXExtractor) Extract(ctx context.Context, path string) (complexity.Features, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return complexity.Features{}, fmt.Errorf("opening XLSX: %w", err)
	}
	defer f.Close()

	var feats complexity.Features
	feats.Columns = 1

	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return complexity.Features{}, err
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			return complexity.Features{}, fmt.Errorf("reading sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}

		feats.ComplexTables += countComplex([][][]string{rows})

		for _, row := range rows {
			for _, cell := range row {
				if utf8.RuneCountInString(cell) > denseTextThreshold {
					feats.DenseParagraphs++
				}
			}
		}

		cells, err := f.GetPictureCells(sheet)
		if err != nil {
			return complexity.Features{}, fmt.Errorf("listing pictures in sheet %q: %w", sheet, err)
		}
		feats.Images += len(cells)
	}

	return feats, nil
}
