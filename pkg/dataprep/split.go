package dataprep

import (
	"fmt"
	"math/rand"

	"github.com/jtsw1990/shap-article/pkg/table"
)

// TrainTestSplit splits a table's rows into train and test subsets by a
// shuffled permutation. testRatio is the fraction of rows assigned to the
// test set. Pass a seeded rng for reproducible splits; nil uses the global
// source.
func TrainTestSplit(t *table.Table, testRatio float64, rng *rand.Rand) (train, test *table.Table, err error) {
	if testRatio < 0 || testRatio >= 1 {
		return nil, nil, fmt.Errorf("test ratio %v outside [0, 1)", testRatio)
	}
	n := t.Rows()
	var perm []int
	if rng != nil {
		perm = rng.Perm(n)
	} else {
		perm = rand.Perm(n)
	}
	nTest := int(float64(n) * testRatio)

	test, err = t.Select(perm[:nTest])
	if err != nil {
		return nil, nil, err
	}
	train, err = t.Select(perm[nTest:])
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}
