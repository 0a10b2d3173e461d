// Package complexity implements the document complexity scoring core:
// a per-table structural classifier and a weighted document-level scorer.
// It operates on plain grids and counts handed over by the format
// extractors and depends on no parser library types.
package complexity

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Cell is a single table cell. Most formats produce plain text; a cell
// may instead carry a nested list of values (Items non-empty), which the
// classifier treats as embedded sub-structure.
type Cell struct {
	Text  string
	Items []string
}

// Table is an ordered grid of cells. Rows may vary in length; the
// raggedness itself is a complexity signal.
type Table [][]Cell

// TextTable builds a Table from a plain grid of strings.
func TextTable(rows [][]string) Table {
	t := make(Table, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, s := range row {
			cells[j] = Cell{Text: s}
		}
		t[i] = cells
	}
	return t
}

// TableLabel is the three-level classification of a single table.
type TableLabel string

const (
	TableSimple   TableLabel = "Simple"
	TableModerate TableLabel = "Moderate"
	TableComplex  TableLabel = "Complex"
)

// Classifier signal weights. Each signal contributes its weight once when
// triggered; with all five firing the score reaches 1.6.
const (
	weightEmptyCells  = 0.4
	weightRaggedRows  = 0.3
	weightNestedCells = 0.4
	weightHeaderRows  = 0.3
	weightWordDensity = 0.2
)

// Classifier trigger thresholds.
const (
	// emptyCellRatioMax is the blank-cell ratio above which (strictly) the
	// empty-cell signal fires. A ratio of exactly 0.2 does not trigger.
	emptyCellRatioMax = 0.2

	// rowLengthStdDevMax is the population standard deviation of per-row
	// lengths above which rows count as irregular.
	rowLengthStdDevMax = 1.0

	// cellWordLimit is the per-cell token count above which a cell counts
	// as prose dumped into a cell.
	cellWordLimit = 15

	// headerScanRows and headerRowLimit drive the repeated-header signal:
	// among the first headerScanRows rows, more than headerRowLimit rows of
	// purely alphabetic cells look like multi-level or repeated headers.
	headerScanRows = 3
	headerRowLimit = 1

	// wordDensityPercentile is the percentile of the per-cell word-count
	// distribution the mean is compared against.
	wordDensityPercentile = 75.0
)

// Label boundaries for the per-table score.
const (
	tableSimpleMax   = 0.3
	tableModerateMax = 0.6
)

// TableResult is the outcome of classifying one table.
type TableResult struct {
	Score float64
	Label TableLabel
}

// Classify scores a single extracted table. Five independent structural
// signals each add a fixed weight when triggered. The input may be empty
// or ragged; every derived ratio defaults to zero when its denominator is
// zero, so Classify never fails.
func Classify(t Table) TableResult {
	score := 0.0

	if emptyCellRatio(t) > emptyCellRatioMax {
		score += weightEmptyCells
	}
	if rowLengthStdDev(t) > rowLengthStdDevMax {
		score += weightRaggedRows
	}
	if hasNestedOrVerboseCell(t) {
		score += weightNestedCells
	}
	if headerLikeRows(t) > headerRowLimit {
		score += weightHeaderRows
	}
	if hasHighWordDensity(t) {
		score += weightWordDensity
	}

	return TableResult{Score: score, Label: labelForTableScore(score)}
}

func labelForTableScore(score float64) TableLabel {
	switch {
	case score <= tableSimpleMax:
		return TableSimple
	case score <= tableModerateMax:
		return TableModerate
	default:
		return TableComplex
	}
}

// emptyCellRatio returns blank-or-whitespace cells over rows x max row
// length. Cells missing from short rows are not counted as blank, but the
// denominator still assumes the widest row, matching merged-cell layouts.
func emptyCellRatio(t Table) float64 {
	numRows := len(t)
	numCols := 0
	for _, row := range t {
		if len(row) > numCols {
			numCols = len(row)
		}
	}
	totalCells := numRows * numCols
	if totalCells == 0 {
		return 0
	}

	empty := 0
	for _, row := range t {
		for _, cell := range row {
			if cellIsBlank(cell) {
				empty++
			}
		}
	}
	return float64(empty) / float64(totalCells)
}

func cellIsBlank(c Cell) bool {
	return len(c.Items) == 0 && strings.TrimSpace(c.Text) == ""
}

// rowLengthStdDev returns the population standard deviation of per-row
// cell counts.
func rowLengthStdDev(t Table) float64 {
	if len(t) == 0 {
		return 0
	}
	mean := 0.0
	for _, row := range t {
		mean += float64(len(row))
	}
	mean /= float64(len(t))

	variance := 0.0
	for _, row := range t {
		d := float64(len(row)) - mean
		variance += d * d
	}
	variance /= float64(len(t))
	return math.Sqrt(variance)
}

// hasNestedOrVerboseCell reports whether any cell holds a nested list or
// splits into more than cellWordLimit whitespace tokens.
func hasNestedOrVerboseCell(t Table) bool {
	for _, row := range t {
		for _, cell := range row {
			if len(cell.Items) > 0 {
				return true
			}
			if cellWordCount(cell) > cellWordLimit {
				return true
			}
		}
	}
	return false
}

func cellWordCount(c Cell) int {
	if len(c.Items) > 0 {
		return len(strings.Fields(strings.Join(c.Items, " ")))
	}
	return len(strings.Fields(c.Text))
}

// headerLikeRows counts rows among the first headerScanRows whose text
// cells are all non-empty and purely alphabetic. List-valued cells are
// skipped; an empty text cell disqualifies the row.
func headerLikeRows(t Table) int {
	count := 0
	limit := len(t)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for _, row := range t[:limit] {
		if rowIsHeaderLike(row) {
			count++
		}
	}
	return count
}

func rowIsHeaderLike(row []Cell) bool {
	for _, cell := range row {
		if len(cell.Items) > 0 {
			continue
		}
		if !isAlphabetic(cell.Text) {
			return false
		}
	}
	return true
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// hasHighWordDensity compares the mean per-cell word count of non-blank
// cells to the 75th percentile of that same distribution. The comparison
// is intentionally self-referential: for right-skewed word-count samples
// the mean rarely clears its own upper quartile, so this signal almost
// never fires.
func hasHighWordDensity(t Table) bool {
	var counts []float64
	for _, row := range t {
		for _, cell := range row {
			if cellIsBlank(cell) {
				continue
			}
			counts = append(counts, float64(cellWordCount(cell)))
		}
	}
	if len(counts) == 0 {
		return false
	}

	sum := 0.0
	for _, c := range counts {
		sum += c
	}
	mean := sum / float64(len(counts))

	return mean > percentile(counts, wordDensityPercentile)
}

// percentile computes the p-th percentile with linear interpolation
// between closest ranks. The input slice is not modified.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)

	rank := (p / 100.0) * float64(len(s)-1)
	lo := int(math.Floor(rank))
	if lo >= len(s)-1 {
		return s[len(s)-1]
	}
	frac := rank - float64(lo)
	return s[lo] + frac*(s[lo+1]-s[lo])
}
