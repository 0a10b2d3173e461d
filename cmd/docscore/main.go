// Command docscore analyzes a single document and prints its complexity
// report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/brunobiangulo/docscore"
)

func main() {
	format := flag.String("type", "", `Declared file type: pdf, docx, pptx, xlsx (default: from extension)`)
	jsonOut := flag.Bool("json", false, "Print the report as JSON")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: docscore [flags] <file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	analyzer := docscore.New(docscore.DefaultConfig())

	report, err := analyzer.Analyze(context.Background(), flag.Arg(0), *format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Complex Tables Found    %d\n", report.ComplexTables)
	fmt.Printf("Columns Detected        %d\n", report.Columns)
	fmt.Printf("Dense Paragraphs        %d\n", report.DenseParagraphs)
	fmt.Printf("Images Found            %d\n", report.Images)
	fmt.Printf("Final Complexity Score  %d\n", report.FinalScore)
	fmt.Printf("Complexity Level        %s\n", report.Level)
}
