package complexity

import "testing"

// ---------------------------------------------------------------------------
// Score tests
// ---------------------------------------------------------------------------

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		features  Features
		wantScore int
		wantLevel Level
	}{
		{
			name:      "zero_features",
			features:  Features{Columns: 1},
			wantScore: 0,
			wantLevel: LevelLow,
		},
		{
			// tableScore 40, layoutScore 0 (single column, no dense
			// paragraphs), imageScore 30.
			name:      "tables_and_images_single_column",
			features:  Features{ComplexTables: 2, Images: 3, Columns: 1},
			wantScore: 70,
			wantLevel: LevelMedium,
		},
		{
			// Same document with two columns: layoutScore 40 kicks in.
			name:      "tables_and_images_two_columns",
			features:  Features{ComplexTables: 2, Images: 3, Columns: 2},
			wantScore: 110,
			wantLevel: LevelHigh,
		},
		{
			// Dense paragraphs alone activate the layout term, which then
			// includes the single-column contribution.
			name:      "dense_paragraphs_single_column",
			features:  Features{Columns: 1, DenseParagraphs: 2},
			wantScore: 30,
			wantLevel: LevelLow,
		},
		{
			name:      "images_only",
			features:  Features{Images: 5, Columns: 1},
			wantScore: 50,
			wantLevel: LevelLow,
		},
		{
			name:      "medium_boundary",
			features:  Features{Images: 10, Columns: 1},
			wantScore: 100,
			wantLevel: LevelMedium,
		},
		{
			name:      "high_just_above_boundary",
			features:  Features{ComplexTables: 5, Columns: 1, DenseParagraphs: 1},
			wantScore: 125,
			wantLevel: LevelHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Score(tt.features)

			if report.FinalScore != tt.wantScore {
				t.Errorf("FinalScore = %d, want %d", report.FinalScore, tt.wantScore)
			}
			if report.Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", report.Level, tt.wantLevel)
			}
			if report.Features != tt.features {
				t.Errorf("Features = %+v, want %+v (raw counts must pass through)", report.Features, tt.features)
			}
		})
	}
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  Level
	}{
		{"zero", 0, LevelLow},
		{"low_boundary", 50, LevelLow},
		{"just_above_low", 51, LevelMedium},
		{"medium_boundary", 100, LevelMedium},
		{"just_above_medium", 101, LevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := levelForScore(tt.score)
			if got != tt.want {
				t.Errorf("levelForScore(%d) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}
