// Package export renders one scatter plot per rating factor against the
// response column and writes the images to disk.
package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jtsw1990/shap-article/pkg/table"
)

// Options controls where and how plots are written.
type Options struct {
	Dir     string // output directory, created if absent
	Format  string // image extension understood by gonum/plot, e.g. "png", "svg", "pdf"
	Workers int    // number of concurrent renderers; <=1 renders sequentially
}

// DefaultOptions writes sequential PNG plots into dir.
func DefaultOptions(dir string) Options {
	return Options{Dir: dir, Format: "png", Workers: 1}
}

// PlotError reports a rendering or write failure for a single predictor.
type PlotError struct {
	Predictor string
	Err       error
}

func (e *PlotError) Error() string {
	return fmt.Sprintf("plot %s: %v", e.Predictor, e.Err)
}

func (e *PlotError) Unwrap() error { return e.Err }

// Outcome is the per-predictor result of an export run. Err is nil on
// success; on failure it is a *PlotError for that predictor.
type Outcome struct {
	Predictor string
	Path      string
	Err       error
}

const plotSize = 4 * vg.Inch

// Export writes one scatter plot per predictor, plotting the predictor on X
// against the response on Y, to <dir>/<predictor>_corr.<format>. A failure
// for one predictor is recorded in its Outcome and never stops the others.
// The returned error is non-nil only when no plot can be attempted at all:
// an unknown or non-numeric response column, or an output directory that
// cannot be created.
func Export(t *table.Table, response string, predictors []string, opts Options) ([]Outcome, error) {
	respCol, ok := t.Column(response)
	if !ok {
		return nil, fmt.Errorf("export: no response column %q", response)
	}
	ys, err := table.ParseNumeric(response, respCol)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if opts.Format == "" {
		opts.Format = "png"
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	ex := &exporter{t: t, response: response, ys: ys, opts: opts}
	outcomes := make([]Outcome, len(predictors))
	render := func(i int) {
		outcomes[i] = ex.one(predictors[i])
	}

	if opts.Workers <= 1 {
		for i := range predictors {
			render(i)
		}
		return outcomes, nil
	}

	// Workers share only read access to the table; each writes its own
	// outcome slot and its own file, so no locking is needed.
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				render(i)
			}
		}()
	}
	for i := range predictors {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return outcomes, nil
}

// exporter holds the run-wide inputs shared read-only by every render.
type exporter struct {
	t        *table.Table
	response string
	ys       []float64
	opts     Options
}

func (ex *exporter) one(predictor string) Outcome {
	path := filepath.Join(ex.opts.Dir, predictor+"_corr."+ex.opts.Format)
	out := Outcome{Predictor: predictor, Path: path}

	col, ok := ex.t.Column(predictor)
	if !ok {
		out.Err = &PlotError{Predictor: predictor, Err: fmt.Errorf("no such column")}
		return out
	}

	xs, numeric := numericValues(predictor, col)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s", predictor, ex.response)
	p.X.Label.Text = predictor
	p.Y.Label.Text = ex.response

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ex.ys[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		out.Err = &PlotError{Predictor: predictor, Err: err}
		return out
	}
	s.Color = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	p.Add(s)

	if numeric && len(xs) >= 2 {
		addTrendLine(p, xs, ex.ys)
		r := stat.Correlation(xs, ex.ys, nil)
		p.Title.Text = fmt.Sprintf("%s vs %s (r=%.3f)", predictor, ex.response, r)
	}

	if err := p.Save(plotSize, plotSize, path); err != nil {
		// Drop whatever partial file the failed save left behind.
		os.Remove(path)
		out.Err = &PlotError{Predictor: predictor, Err: err}
		return out
	}
	return out
}

// numericValues parses a column to floats when every cell is numeric;
// otherwise it maps each distinct value to its first-seen level index so the
// categorical factor still gets a readable scatter.
func numericValues(name string, col []string) (xs []float64, numeric bool) {
	if vals, err := table.ParseNumeric(name, col); err == nil {
		return vals, true
	}
	levels := make(map[string]int)
	xs = make([]float64, len(col))
	for i, cell := range col {
		idx, ok := levels[cell]
		if !ok {
			idx = len(levels)
			levels[cell] = idx
		}
		xs[i] = float64(idx)
	}
	return xs, false
}

func addTrendLine(p *plot.Plot, xs, ys []float64) {
	minX := floats.Min(xs)
	maxX := floats.Max(xs)
	if minX == maxX {
		return
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	l, err := plotter.NewLine(plotter.XYs{
		{X: minX, Y: alpha + beta*minX},
		{X: maxX, Y: alpha + beta*maxX},
	})
	if err != nil {
		return
	}
	l.Color = color.RGBA{R: 255, A: 255}
	l.LineStyle.Width = vg.Points(2)
	p.Add(l)
}
