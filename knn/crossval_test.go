package knn

import (
	"testing"

	"github.com/gasparian/knn-search-go/dataset"
)

func TestCrossValidateNominal(t *testing.T) {
	c := getFittedClassifier(
		t,
		Config{K: 5, CrossValidate: true},
		getClustersDataset(t),
	)
	pred, err := c.Predict(dataset.NewInstance([]float64{0.1, 0.1}, 0))
	if err != nil {
		t.Fatal(err)
	}
	if pred != 0.0 {
		t.Fatal("Cross-validated classifier must still classify the clusters")
	}
	if !c.kValid {
		t.Fatal("Hold-one-out result must be cached after the first prediction")
	}
	if c.selectedK < 1 || c.selectedK > 5 {
		t.Fatalf("Selected k must stay in [1, K], got %d", c.selectedK)
	}
}

func TestCrossValidateInvalidation(t *testing.T) {
	c := getFittedClassifier(
		t,
		Config{K: 3, CrossValidate: true},
		getClustersDataset(t),
	)
	if _, err := c.Predict(dataset.NewInstance([]float64{0.0, 0.0}, 0)); err != nil {
		t.Fatal(err)
	}
	if !c.kValid {
		t.Fatal("Hold-one-out result must be cached")
	}
	if err := c.Update(dataset.NewInstance([]float64{1.0, 1.0}, 0)); err != nil {
		t.Fatal(err)
	}
	if c.kValid {
		t.Fatal("New training data must invalidate the selected k")
	}
}

func TestCrossValidateNumeric(t *testing.T) {
	ds := dataset.New(dataset.Numeric, 0, 1)
	for i := 0; i < 10; i++ {
		// noisy but locally smooth target
		if err := ds.Add(dataset.NewInstance([]float64{float64(i)}, float64(i)*2.0)); err != nil {
			t.Fatal(err)
		}
	}
	for _, meanSquared := range []bool{false, true} {
		c := getFittedClassifier(
			t,
			Config{K: 4, CrossValidate: true, MeanSquared: meanSquared},
			ds,
		)
		pred, err := c.Predict(dataset.NewInstance([]float64{4.5}, 0))
		if err != nil {
			t.Fatal(err)
		}
		if pred < 6.0 || pred > 12.0 {
			t.Fatalf("Numeric prediction is out of the plausible range: %v", pred)
		}
	}
}

func TestCrossValidateTinyTrain(t *testing.T) {
	ds := dataset.New(dataset.Nominal, 2, 1)
	if err := ds.Add(dataset.NewInstance([]float64{0.0}, 0)); err != nil {
		t.Fatal(err)
	}
	c := getFittedClassifier(t, Config{K: 5, CrossValidate: true}, ds)
	if err := c.crossValidate(); err != nil {
		t.Fatal(err)
	}
	if c.selectedK != 1 {
		t.Fatal("Single-instance training set must select k=1")
	}
}

func TestDropSelf(t *testing.T) {
	inst := dataset.NewInstance([]float64{1.0, 2.0}, 1)
	c := getFittedClassifier(t, Config{K: 2}, getClustersDataset(t))
	neighbors, err := c.search.KNearest(c.train.Instances[0], 3)
	if err != nil {
		t.Fatal(err)
	}
	dropped := dropSelf(neighbors, c.train.Instances[0])
	if len(dropped) != 2 {
		t.Fatal("The held-out instance itself must be removed from its neighbors")
	}
	for _, n := range dropped {
		if n.Dist == 0 {
			t.Fatal("Zero-distance self match must be gone")
		}
	}
	// unrelated instance drops nothing
	kept := dropSelf(dropped, inst)
	if len(kept) != 2 {
		t.Fatal("Nothing must be dropped for a non-matching instance")
	}
}
