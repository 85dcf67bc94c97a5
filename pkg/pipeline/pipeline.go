// Package pipeline wires the loading, classification, encoding, modeling and
// plot-export stages into a single run with a reportable outcome.
package pipeline

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/jtsw1990/shap-article/pkg/dataprep"
	"github.com/jtsw1990/shap-article/pkg/export"
	"github.com/jtsw1990/shap-article/pkg/model"
	"github.com/jtsw1990/shap-article/pkg/table"
)

// Config holds everything a pipeline run needs.
type Config struct {
	InputPath string
	OutputDir string
	Format    string  // plot image extension, default "png"
	Workers   int     // exporter fan-out, <=1 sequential
	TestRatio float64 // fraction of rows held out; 0 fits on all rows
	Seed      int64   // split shuffle seed
	Classify  table.ClassifyOptions
	Logger    *logrus.Logger
}

// Report summarizes a completed run.
type Report struct {
	Response       string
	Numeric        []string
	Categorical    []string
	EncodedColumns []string
	Outcomes       []export.Outcome

	Intercept float64
	Coef      []float64 // aligned with EncodedColumns
	TrainR2   float64
	TrainRMSE float64
	HasTest   bool
	TestR2    float64
	TestRMSE  float64
}

// ExportFailures returns the outcomes that failed, if any.
func (r *Report) ExportFailures() []export.Outcome {
	var failed []export.Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Run executes the full pipeline: load, classify, split, fit the vocabulary
// on training rows, encode, fit an OLS model, and export one correlation
// plot per rating factor. Loader and encoder failures abort the run; export
// failures are collected per predictor in the report.
func Run(cfg Config) (*Report, error) {
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
	}

	t, err := table.LoadCSV(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	if t.Rows() == 0 {
		return nil, fmt.Errorf("dataset %s has a header but no rows", cfg.InputPath)
	}
	log.WithFields(logrus.Fields{
		"rows":     t.Rows(),
		"columns":  len(t.Columns()),
		"response": t.Response(),
	}).Info("loaded dataset")

	predictors := t.Predictors()
	numeric, categorical := table.Classify(t, predictors, cfg.Classify)
	log.WithFields(logrus.Fields{
		"numeric":     numeric,
		"categorical": categorical,
	}).Info("classified rating factors")

	train, test := t, (*table.Table)(nil)
	if cfg.TestRatio > 0 {
		rng := rand.New(rand.NewSource(cfg.Seed))
		train, test, err = dataprep.TrainTestSplit(t, cfg.TestRatio, rng)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{
			"train": train.Rows(),
			"test":  test.Rows(),
		}).Info("split dataset")
	}

	vocab, err := dataprep.Fit(train, categorical)
	if err != nil {
		return nil, err
	}
	encTrain, err := dataprep.Transform(train, numeric, vocab)
	if err != nil {
		return nil, err
	}
	yTrain, err := dataprep.Target(train)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"rows":    encTrain.Rows(),
		"columns": encTrain.Cols(),
	}).Info("encoded design matrix")

	rep := &Report{
		Response:       t.Response(),
		Numeric:        numeric,
		Categorical:    categorical,
		EncodedColumns: encTrain.Names(),
	}

	m := model.NewLinearRegression()
	if err := m.Fit(encTrain.Matrix(), yTrain); err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}
	rep.Intercept = m.Intercept()
	rep.Coef = m.Coef()
	rep.TrainR2 = m.Score(encTrain.Matrix(), yTrain)
	rep.TrainRMSE = model.RMSE(yTrain, m.Predict(encTrain.Matrix()))
	log.WithFields(logrus.Fields{
		"r2":   rep.TrainR2,
		"rmse": rep.TrainRMSE,
	}).Info("fitted model on training rows")

	if test != nil && test.Rows() > 0 {
		encTest, err := dataprep.Transform(test, numeric, vocab)
		if err != nil {
			return nil, err
		}
		yTest, err := dataprep.Target(test)
		if err != nil {
			return nil, err
		}
		rep.HasTest = true
		rep.TestR2 = m.Score(encTest.Matrix(), yTest)
		rep.TestRMSE = model.RMSE(yTest, m.Predict(encTest.Matrix()))
		log.WithFields(logrus.Fields{
			"r2":   rep.TestR2,
			"rmse": rep.TestRMSE,
		}).Info("scored held-out rows")
	}

	opts := export.Options{Dir: cfg.OutputDir, Format: cfg.Format, Workers: cfg.Workers}
	rep.Outcomes, err = export.Export(t, t.Response(), predictors, opts)
	if err != nil {
		return nil, err
	}
	for _, o := range rep.Outcomes {
		entry := log.WithField("predictor", o.Predictor)
		if o.Err != nil {
			entry.WithError(o.Err).Warn("plot export failed")
		} else {
			entry.WithField("path", o.Path).Info("plot exported")
		}
	}
	return rep, nil
}
