package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jtsw1990/shap-article/pkg/export"
	"github.com/jtsw1990/shap-article/pkg/table"
)

//
// ---------------------- CLI FLAGS ----------------------
//
// --input   : Path to input CSV file (header row, response in last column)
// --outdir  : Directory to write the plots into (created if absent)
// --format  : Image extension: png, svg, pdf, ...
// --workers : Number of concurrent plot renderers (1 = sequential)
//
// Example:
//   go run main.go --input insurance.csv --outdir out --format png
//
// -------------------------------------------------------
//

func main() {
	inputPath := flag.String("input", "insurance.csv", "Path to input CSV file")
	outDir := flag.String("outdir", "out", "Directory to write plots into")
	format := flag.String("format", "png", "Plot image format")
	workers := flag.Int("workers", 1, "Concurrent plot renderers")
	flag.Parse()

	log := logrus.New()

	t, err := table.LoadCSV(*inputPath)
	if err != nil {
		log.WithError(err).Fatal("could not load dataset")
	}
	predictors := t.Predictors()
	numeric, categorical := table.Classify(t, predictors, table.DefaultClassifyOptions())
	log.WithFields(logrus.Fields{
		"rows":        t.Rows(),
		"numeric":     numeric,
		"categorical": categorical,
	}).Info("loaded dataset")

	opts := export.Options{Dir: *outDir, Format: *format, Workers: *workers}
	outcomes, err := export.Export(t, t.Response(), predictors, opts)
	if err != nil {
		log.WithError(err).Fatal("export aborted")
	}

	failures := 0
	fmt.Println("Export summary:")
	for _, o := range outcomes {
		if o.Err != nil {
			failures++
			fmt.Printf("  FAILED  %-12s %v\n", o.Predictor, o.Err)
		} else {
			fmt.Printf("  ok      %-12s %s\n", o.Predictor, o.Path)
		}
	}
	fmt.Printf("%d of %d plots exported\n", len(outcomes)-failures, len(outcomes))
	if failures == len(outcomes) && len(outcomes) > 0 {
		os.Exit(1)
	}
}
