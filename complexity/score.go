package complexity

// Features holds the four raw measurements extracted from one document.
// One instance is produced per analysis run and consumed once by Score.
type Features struct {
	ComplexTables   int `json:"complex_tables"`
	Images          int `json:"images"`
	Columns         int `json:"columns"`
	DenseParagraphs int `json:"dense_paragraphs"`
}

// Level is the document-level complexity label.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Document score weights. Each raw count is multiplied by its weight and
// the products are summed into the final score.
const (
	complexTableWeight   = 20
	columnWeight         = 20
	denseParagraphWeight = 5
	imageWeight          = 10
)

// Label boundaries for the final score.
const (
	levelLowMax    = 50
	levelMediumMax = 100
)

// Report is the final output of a document analysis: the four raw
// measurements plus the derived score and label. It is returned to the
// caller and never stored.
type Report struct {
	Features
	FinalScore int   `json:"final_score"`
	Level      Level `json:"complexity_level"`
}

// Score combines the raw measurements into a weighted final score. The
// layout contribution only counts when the document actually shows layout
// complexity (more than one column or at least one dense paragraph);
// otherwise the baseline single column adds nothing.
func Score(f Features) Report {
	tableScore := f.ComplexTables * complexTableWeight

	layoutScore := 0
	if f.Columns > 1 || f.DenseParagraphs > 0 {
		layoutScore = f.Columns*columnWeight + f.DenseParagraphs*denseParagraphWeight
	}

	imageScore := f.Images * imageWeight

	final := tableScore + layoutScore + imageScore

	return Report{
		Features:   f,
		FinalScore: final,
		Level:      levelForScore(final),
	}
}

func levelForScore(score int) Level {
	switch {
	case score > levelMediumMax:
		return LevelHigh
	case score > levelLowMax:
		return LevelMedium
	default:
		return LevelLow
	}
}
