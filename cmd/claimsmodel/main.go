package main

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jtsw1990/shap-article/pkg/pipeline"
	"github.com/jtsw1990/shap-article/pkg/table"
)

//
// ---------------------- CLI FLAGS ----------------------
//
// --input      : Path to input CSV file (header row, response in last column)
// --outdir     : Directory for the correlation plots
// --format     : Plot image format: png, svg, pdf, ...
// --workers    : Concurrent plot renderers (1 = sequential)
// --test-ratio : Fraction of rows held out for scoring (0 = fit on all rows)
// --seed       : Shuffle seed for the train/test split
//
// Example:
//   go run main.go --input insurance.csv --outdir out --test-ratio 0.2 --seed 42
//
// -------------------------------------------------------
//

func main() {
	inputPath := flag.String("input", "insurance.csv", "Path to input CSV file")
	outDir := flag.String("outdir", "out", "Directory for correlation plots")
	format := flag.String("format", "png", "Plot image format")
	workers := flag.Int("workers", 1, "Concurrent plot renderers")
	testRatio := flag.Float64("test-ratio", 0.2, "Fraction of rows held out for scoring")
	seed := flag.Int64("seed", 42, "Shuffle seed for the train/test split")
	flag.Parse()

	log := logrus.New()

	rep, err := pipeline.Run(pipeline.Config{
		InputPath: *inputPath,
		OutputDir: *outDir,
		Format:    *format,
		Workers:   *workers,
		TestRatio: *testRatio,
		Seed:      *seed,
		Classify:  table.DefaultClassifyOptions(),
		Logger:    log,
	})
	if err != nil {
		log.WithError(err).Fatal("pipeline failed")
	}

	fmt.Printf("Response: %s\n", rep.Response)
	fmt.Printf("Numeric factors:     %v\n", rep.Numeric)
	fmt.Printf("Categorical factors: %v\n", rep.Categorical)
	fmt.Printf("Design matrix columns (%d):\n", len(rep.EncodedColumns))
	for i, name := range rep.EncodedColumns {
		fmt.Printf("  %-20s %+.4f\n", name, rep.Coef[i])
	}
	fmt.Printf("Intercept: %+.4f\n", rep.Intercept)
	fmt.Printf("Train: R2=%.4f RMSE=%.2f\n", rep.TrainR2, rep.TrainRMSE)
	if rep.HasTest {
		fmt.Printf("Test:  R2=%.4f RMSE=%.2f\n", rep.TestR2, rep.TestRMSE)
	}

	if failed := rep.ExportFailures(); len(failed) > 0 {
		fmt.Printf("%d plot exports failed:\n", len(failed))
		for _, o := range failed {
			fmt.Printf("  %-12s %v\n", o.Predictor, o.Err)
		}
	} else {
		fmt.Printf("All %d plots exported to %s\n", len(rep.Outcomes), *outDir)
	}
}
