package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/brunobiangulo/docscore/complexity"
)

type DOCXExtractor struct{}

func (e *DOCXExtractor) SupportedFormats() []string { return []string{"docx"} }

func (e *DOCXExtractor) Extract(ctx context.Context, path string) (complexity.Features, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return complexity.Features{}, fmt.Errorf("opening DOCX: %w", err)
	}
	defer r.Close()

	// Find word/document.xml
	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return complexity.Features{}, fmt.Errorf("word/document.xml not found in DOCX")
	}

	rc, err := docFile.Open()
	if err != nil {
		return complexity.Features{}, fmt.Errorf("opening document.xml: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return complexity.Features{}, err
	}

	var doc docxDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return complexity.Features{}, fmt.Errorf("parsing DOCX XML: %w", err)
	}

	var feats complexity.Features

	grids := make([][][]string, 0, len(doc.Body.Tables))
	for _, tbl := range doc.Body.Tables {
		grid := make([][]string, 0, len(tbl.Rows))
		for _, row := range tbl.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				cells = append(cells, docxCellText(cell))
			}
			grid = append(grid, cells)
		}
		grids = append(grids, grid)
	}
	feats.ComplexTables = countComplex(grids)

	for _, para := range doc.Body.Paras {
		if utf8.RuneCountInString(extractParaText(para)) > denseTextThreshold {
			feats.DenseParagraphs++
		}
	}

	feats.Images = countDocxInlineImages(data)
	feats.Columns = docxColumnCount(doc)

	return feats, nil
}

// countDocxInlineImages counts embedded graphical objects via their
// drawing blip references, the same elements the relationship table
// resolves to media files. Only blips inside wp:inline drawings count;
// floating wp:anchor shapes are not inline content.
func countDocxInlineImages(docXML []byte) int {
	decoder := xml.NewDecoder(bytes.NewReader(docXML))

	count := 0
	inlineDepth := 0
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case el.Name.Local == "inline":
				inlineDepth++
			case el.Name.Local == "blip" && inlineDepth > 0:
				count++
			}
		case xml.EndElement:
			if el.Name.Local == "inline" {
				inlineDepth--
			}
		}
	}
	return count
}

// docxColumnCount returns the widest declared column layout across all
// section definitions, both body-level and paragraph-level. Sections
// without explicit w:col entries keep the single-column default.
func docxColumnCount(doc docxDocument) int {
	columns := 1

	consider := func(sectPr *docxSectPr) {
		if sectPr == nil || sectPr.Cols == nil {
			return
		}
		if n := len(sectPr.Cols.Cols); n > columns {
			columns = n
		}
	}

	consider(doc.Body.SectPr)
	for _, para := range doc.Body.Paras {
		if para.PPr != nil {
			consider(para.PPr.SectPr)
		}
	}
	return columns
}

// DOCX XML structures (simplified)
type docxDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    docxBody `xml:"body"`
}

type docxBody struct {
	XMLName xml.Name    `xml:"body"`
	Paras   []docxPara  `xml:"p"`
	Tables  []docxTable `xml:"tbl"`
	SectPr  *docxSectPr `xml:"sectPr"`
}

type docxPara struct {
	XMLName xml.Name    `xml:"p"`
	PPr     *docxParaPr `xml:"pPr"`
	Runs    []docxRun   `xml:"r"`
}

type docxParaPr struct {
	SectPr *docxSectPr `xml:"sectPr"`
}

type docxSectPr struct {
	Cols *docxCols `xml:"cols"`
}

type docxCols struct {
	Cols []docxCol `xml:"col"`
}

type docxCol struct{}

type docxRun struct {
	Text []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Paras []docxPara `xml:"p"`
}

// docxCellText flattens a table cell's paragraphs into one string.
func docxCellText(cell docxCell) string {
	var b strings.Builder
	for _, p := range cell.Paras {
		t := extractParaText(p)
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(t)
	}
	return b.String()
}

func extractParaText(para docxPara) string {
	var b strings.Builder
	for _, run := range para.Runs {
		for _, t := range run.Text {
			b.WriteString(t.Content)
		}
	}
	return b.String()
}
