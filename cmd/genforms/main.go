// Command genforms generates review forms from a KPI template workbook on
// disk, writing the bundled archive next to it. Useful for trying a
// template without running the server.
package main

import (
	"flag"
	"fmt"
	"os"

	"reviewforms/internal/form"
	"reviewforms/internal/layout"
)

func main() {
	input := flag.String("input", "template.xlsx", "path to the KPI template workbook")
	output := flag.String("output", "review-forms.zip", "path for the generated archive")
	reviewType := flag.String("type", "mid", `review period: "mid" or "end"`)
	fiscalYear := flag.String("fy", "", "fiscal year written to each form")
	flag.Parse()

	src, err := os.Open(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open template: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	gen := form.NewGenerator(
		form.WithPeriod(layout.ParsePeriod(*reviewType)),
		form.WithFiscalYear(*fiscalYear),
	)
	files, err := gen.Generate(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate: %v\n", err)
		os.Exit(1)
	}

	archive, err := form.Zip(files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bundle: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, archive, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "save: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d forms to %s\n", len(files), *output)
}
