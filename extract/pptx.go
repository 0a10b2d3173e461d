package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/brunobiangulo/docscore/complexity"
)

type PPTXExtractor struct{}

func (e *PPTXExtractor) SupportedFormats() []string { return []string{"pptx"} }

func (e *PPTXExtractor) Extract(ctx context.Context, path string) (complexity.Features, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return complexity.Features{}, fmt.Errorf("opening PPTX: %w", err)
	}
	defer r.Close()

	// Collect slide files (ppt/slides/slide1.xml, slide2.xml, ...)
	slideFiles := make(map[int]*zip.File)
	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			num := extractSlideNumber(f.Name)
			if num > 0 {
				slideFiles[num] = f
			}
		}
	}

	// Sort by slide number
	nums := make([]int, 0, len(slideFiles))
	for n := range slideFiles {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	var feats complexity.Features
	denseShapes := 0

	for _, num := range nums {
		if err := ctx.Err(); err != nil {
			return complexity.Features{}, err
		}

		f := slideFiles[num]
		rc, err := f.Open()
		if err != nil {
			return complexity.Features{}, fmt.Errorf("opening slide %d: %w", num, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return complexity.Features{}, fmt.Errorf("reading slide %d: %w", num, err)
		}

		var slide pptxSlide
		if err := xml.Unmarshal(data, &slide); err != nil {
			return complexity.Features{}, fmt.Errorf("parsing slide %d: %w", num, err)
		}

		tree := slide.CSld.SpTree

		var grids [][][]string
		for _, frame := range tree.GraphicFrames {
			tbl := frame.Graphic.GraphicData.Tbl
			if tbl == nil {
				continue
			}
			grids = append(grids, pptxTableGrid(tbl))
		}
		feats.ComplexTables += countComplex(grids)

		feats.Images += len(tree.Pics)

		for _, sp := range tree.SPs {
			if sp.TxBody == nil {
				continue
			}
			if utf8.RuneCountInString(txBodyText(sp.TxBody)) > denseTextThreshold {
				denseShapes++
			}
		}
	}

	if denseShapes < denseBlockColumnLimit {
		feats.Columns = 1
	} else {
		feats.Columns = 2
	}
	// The dense-shape count only drives the column decision; slide decks
	// report zero dense paragraphs to the scorer.
	feats.DenseParagraphs = 0

	return feats, nil
}

// pptxSlide simplified XML structure
type pptxSlide struct {
	CSld struct {
		SpTree struct {
			SPs           []pptxSP           `xml:"sp"`
			Pics          []pptxPic          `xml:"pic"`
			GraphicFrames []pptxGraphicFrame `xml:"graphicFrame"`
		} `xml:"spTree"`
	} `xml:"cSld"`
}

type pptxSP struct {
	TxBody *pptxTxBody `xml:"txBody"`
}

// pptxPic marks a picture shape; only its presence matters.
type pptxPic struct{}

type pptxGraphicFrame struct {
	Graphic struct {
		GraphicData struct {
			Tbl *pptxTable `xml:"tbl"`
		} `xml:"graphicData"`
	} `xml:"graphic"`
}

type pptxTable struct {
	Rows []pptxTableRow `xml:"tr"`
}

type pptxTableRow struct {
	Cells []pptxTableCell `xml:"tc"`
}

type pptxTableCell struct {
	TxBody *pptxTxBody `xml:"txBody"`
}

type pptxTxBody struct {
	Paras []pptxAPara `xml:"p"`
}

type pptxAPara struct {
	Runs []pptxARun `xml:"r"`
}

type pptxARun struct {
	Text string `xml:"t"`
}

// pptxTableGrid converts a slide table into a plain grid of cell text.
func pptxTableGrid(tbl *pptxTable) [][]string {
	grid := make([][]string, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			if cell.TxBody == nil {
				cells = append(cells, "")
				continue
			}
			var b strings.Builder
			for _, para := range cell.TxBody.Paras {
				line := paraText(para)
				if b.Len() > 0 && line != "" {
					b.WriteString(" ")
				}
				b.WriteString(line)
			}
			cells = append(cells, b.String())
		}
		grid = append(grid, cells)
	}
	return grid
}

// txBodyText flattens a text frame into one string, one paragraph per line.
func txBodyText(body *pptxTxBody) string {
	var parts []string
	for _, para := range body.Paras {
		parts = append(parts, paraText(para))
	}
	return strings.Join(parts, "\n")
}

func paraText(para pptxAPara) string {
	var line strings.Builder
	for _, run := range para.Runs {
		line.WriteString(run.Text)
	}
	return line.String()
}

func extractSlideNumber(name string) int {
	// Extract number from "ppt/slides/slide1.xml"
	name = strings.TrimPrefix(name, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	var num int
	fmt.Sscanf(name, "%d", &num)
	return num
}
