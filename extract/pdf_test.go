package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// splitDelimitedRow tests
// ---------------------------------------------------------------------------

func TestSplitDelimitedRow(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantRow  []string
		wantGrid bool
	}{
		{"pipes", "| a | b | c |", []string{"a", "b", "c"}, true},
		{"pipes_no_edges", "a | b | c", []string{"a", "b", "c"}, true},
		{"tabs", "a\tb\tc", []string{"a", "b", "c"}, true},
		{"single_pipe", "a | b", nil, false},
		{"plain_text", "just a sentence", nil, false},
		{"empty", "", nil, false},
		{"whitespace", "   ", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok := splitDelimitedRow(tt.line)
			if ok != tt.wantGrid {
				t.Fatalf("splitDelimitedRow(%q) ok = %v, want %v", tt.line, ok, tt.wantGrid)
			}
			if !ok {
				return
			}
			if len(row) != len(tt.wantRow) {
				t.Fatalf("row = %v, want %v", row, tt.wantRow)
			}
			for i := range row {
				if row[i] != tt.wantRow[i] {
					t.Errorf("row[%d] = %q, want %q", i, row[i], tt.wantRow[i])
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// tableGridsFromText tests
// ---------------------------------------------------------------------------

func TestTableGridsFromText(t *testing.T) {
	text := "Intro paragraph.\n" +
		"| h1 | h2 | h3 |\n" +
		"| a | b | c |\n" +
		"| d | e | f |\n" +
		"Some prose between tables.\n" +
		"x\ty\tz\n" +
		"1\t2\t3\n"

	grids := tableGridsFromText(text)

	if len(grids) != 2 {
		t.Fatalf("expected 2 grids, got %d", len(grids))
	}
	if len(grids[0]) != 3 {
		t.Errorf("first grid has %d rows, want 3", len(grids[0]))
	}
	if len(grids[1]) != 2 {
		t.Errorf("second grid has %d rows, want 2", len(grids[1]))
	}
	if grids[1][0][1] != "y" {
		t.Errorf("grids[1][0][1] = %q, want %q", grids[1][0][1], "y")
	}
}

func TestTableGridsFromTextSingleRowIgnored(t *testing.T) {
	// A lone delimited line is not a table.
	grids := tableGridsFromText("before\n| a | b | c |\nafter")
	if len(grids) != 0 {
		t.Errorf("expected 0 grids for a single delimited line, got %d", len(grids))
	}
}

func TestTableGridsFromTextEmpty(t *testing.T) {
	if grids := tableGridsFromText(""); len(grids) != 0 {
		t.Errorf("expected 0 grids for empty text, got %d", len(grids))
	}
}

// ---------------------------------------------------------------------------
// recoverScan tests
// ---------------------------------------------------------------------------

func TestRecoverScanPassesCount(t *testing.T) {
	n, err := recoverScan(func() int { return 3 })
	if err != nil {
		t.Fatalf("recoverScan returned error: %v", err)
	}
	if n != 3 {
		t.Errorf("n = %d, want 3", n)
	}
}

func TestRecoverScanConvertsPanic(t *testing.T) {
	// A malformed object reference must surface as an error, never as a
	// silently truncated count.
	n, err := recoverScan(func() int {
		panic("malformed object reference")
	})
	if err == nil {
		t.Fatal("expected error from panicking scan")
	}
	if n != 0 {
		t.Errorf("n = %d, want 0 on error", n)
	}
}

// ---------------------------------------------------------------------------
// PDFExtractor tests
// ---------------------------------------------------------------------------

// writeTestPDF assembles a one-page PDF by hand, computing the xref table
// from the actual byte offsets so the file parses cleanly.
func writeTestPDF(t *testing.T) string {
	t.Helper()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefPos)

	path := filepath.Join(t.TempDir(), "test.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing pdf: %v", err)
	}
	return path
}

func TestPDFExtractorCancelledContext(t *testing.T) {
	path := writeTestPDF(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&PDFExtractor{}).Extract(ctx, path)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
