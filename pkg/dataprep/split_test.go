package dataprep

import (
	"math/rand"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jtsw1990/shap-article/pkg/table"
)

func TestTrainTestSplit(t *testing.T) {
	a := assert.New(t)
	rows := make([][]string, 10)
	for i := range rows {
		rows[i] = []string{strconv.Itoa(i), strconv.Itoa(i * 100)}
	}
	tbl, err := table.New([]string{"id", "claims"}, rows)
	a.NoError(err)

	train, test, err := TrainTestSplit(tbl, 0.3, rand.New(rand.NewSource(1)))
	a.NoError(err)
	a.Equal(3, test.Rows())
	a.Equal(7, train.Rows())

	// Every source row lands in exactly one subset.
	trainIDs, _ := train.Column("id")
	testIDs, _ := test.Column("id")
	all := append(append([]string{}, trainIDs...), testIDs...)
	sort.Strings(all)
	var want []string
	for i := range rows {
		want = append(want, strconv.Itoa(i))
	}
	sort.Strings(want)
	a.Equal(want, all)
}

func TestTrainTestSplitReproducible(t *testing.T) {
	a := assert.New(t)
	tbl, err := table.New([]string{"id", "claims"}, [][]string{
		{"0", "0"}, {"1", "100"}, {"2", "200"}, {"3", "300"},
	})
	a.NoError(err)

	_, test1, err := TrainTestSplit(tbl, 0.5, rand.New(rand.NewSource(7)))
	a.NoError(err)
	_, test2, err := TrainTestSplit(tbl, 0.5, rand.New(rand.NewSource(7)))
	a.NoError(err)

	ids1, _ := test1.Column("id")
	ids2, _ := test2.Column("id")
	a.Equal(ids1, ids2)
}

func TestTrainTestSplitBadRatio(t *testing.T) {
	a := assert.New(t)
	tbl, err := table.New([]string{"id", "claims"}, [][]string{{"0", "0"}})
	a.NoError(err)

	_, _, err = TrainTestSplit(tbl, 1.0, nil)
	a.Error(err)
	_, _, err = TrainTestSplit(tbl, -0.1, nil)
	a.Error(err)
}
