package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jtsw1990/shap-article/pkg/table"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New([]string{"age", "sex", "bmi", "claims"}, [][]string{
		{"25", "male", "22.1", "1000.0"},
		{"40", "female", "31.5", "5000.0"},
		{"33", "female", "27.0", "2500.0"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestExportWritesOneFilePerPredictor(t *testing.T) {
	a := assert.New(t)
	// The output directory does not exist beforehand; Export must create it.
	dir := filepath.Join(t.TempDir(), "out")

	outcomes, err := Export(sampleTable(t), "claims", []string{"age", "bmi"}, DefaultOptions(dir))
	a.NoError(err)
	a.Len(outcomes, 2)
	for _, o := range outcomes {
		a.NoError(o.Err)
	}

	for _, name := range []string{"age_corr.png", "bmi_corr.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		a.NoError(err)
		a.Greater(info.Size(), int64(0))
	}
}

func TestExportCategoricalPredictor(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()

	outcomes, err := Export(sampleTable(t), "claims", []string{"sex"}, DefaultOptions(dir))
	a.NoError(err)
	a.Len(outcomes, 1)
	a.NoError(outcomes[0].Err)
	_, err = os.Stat(filepath.Join(dir, "sex_corr.png"))
	a.NoError(err)
}

func TestExportFailureIsolation(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()

	// "zip" does not exist; its failure must not stop "age" or "bmi".
	outcomes, err := Export(sampleTable(t), "claims", []string{"age", "zip", "bmi"}, DefaultOptions(dir))
	a.NoError(err)
	a.Len(outcomes, 3)

	a.NoError(outcomes[0].Err)
	a.NoError(outcomes[2].Err)
	a.Error(outcomes[1].Err)
	var pe *PlotError
	a.True(errors.As(outcomes[1].Err, &pe))
	a.Equal("zip", pe.Predictor)

	_, err = os.Stat(filepath.Join(dir, "age_corr.png"))
	a.NoError(err)
	_, err = os.Stat(filepath.Join(dir, "bmi_corr.png"))
	a.NoError(err)
}

func TestExportSaveFailure(t *testing.T) {
	a := assert.New(t)
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not bind for root")
	}
	dir := filepath.Join(t.TempDir(), "sealed")
	a.NoError(os.Mkdir(dir, 0o755))
	a.NoError(os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	tbl := sampleTable(t)
	outcomes, err := Export(tbl, "claims", []string{"age", "bmi"}, DefaultOptions(dir))
	a.NoError(err)
	a.Len(outcomes, 2)
	for _, o := range outcomes {
		a.Error(o.Err)
		var pe *PlotError
		a.True(errors.As(o.Err, &pe))
		a.Equal(o.Predictor, pe.Predictor)
	}

	// No partial files left behind.
	entries, err := os.ReadDir(dir)
	a.NoError(err)
	a.Empty(entries)

	// A writable directory still exports fine afterwards.
	ok := t.TempDir()
	outcomes, err = Export(tbl, "claims", []string{"age"}, DefaultOptions(ok))
	a.NoError(err)
	a.NoError(outcomes[0].Err)
	_, err = os.Stat(filepath.Join(ok, "age_corr.png"))
	a.NoError(err)
}

func TestExportParallelMatchesSequential(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()

	opts := DefaultOptions(dir)
	opts.Workers = 3
	outcomes, err := Export(sampleTable(t), "claims", []string{"age", "sex", "bmi"}, opts)
	a.NoError(err)
	a.Len(outcomes, 3)
	for i, name := range []string{"age", "sex", "bmi"} {
		a.Equal(name, outcomes[i].Predictor)
		a.NoError(outcomes[i].Err)
		_, err := os.Stat(filepath.Join(dir, name+"_corr.png"))
		a.NoError(err)
	}
}

func TestExportFatalInputs(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()

	// Unknown response column: nothing can be plotted.
	_, err := Export(sampleTable(t), "premium", []string{"age"}, DefaultOptions(dir))
	a.Error(err)

	// Non-numeric response: same.
	tbl, terr := table.New([]string{"age", "status"}, [][]string{{"25", "open"}})
	a.NoError(terr)
	_, err = Export(tbl, "status", []string{"age"}, DefaultOptions(dir))
	a.Error(err)
}
