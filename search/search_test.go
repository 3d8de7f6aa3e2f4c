package search

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/gasparian/knn-search-go/dataset"
)

func getTrainDataset(t *testing.T) *dataset.Dataset {
	ds := dataset.New(dataset.Nominal, 2, 2)
	points := [][]float64{
		{0.0, 0.0},
		{1.0, 0.0},
		{0.0, 1.0},
		{5.0, 5.0},
		{6.0, 5.0},
	}
	for i, p := range points {
		err := ds.Add(dataset.NewInstance(p, float64(i%2)))
		if err != nil {
			t.Fatal(err)
		}
	}
	return ds
}

func TestNewFromSpec(t *testing.T) {
	s, err := New("linear")
	if err != nil {
		t.Fatal(err)
	}
	if s.Spec() != "linear" {
		t.Fatal("Linear search spec must round-trip")
	}
	s, err = New("kdtree -L 16")
	if err != nil {
		t.Fatal(err)
	}
	if s.Spec() != "kdtree -L 16" {
		t.Fatalf("KDTree spec must round-trip, got %v", s.Spec())
	}
	if _, err = New(""); err == nil {
		t.Fatal("Empty spec must be rejected")
	}
	if _, err = New("balltree"); err == nil {
		t.Fatal("Unknown strategy name must be rejected")
	}
	if _, err = New("linear -Z 1"); err == nil {
		t.Fatal("Leftover strategy options must be rejected")
	}
	if _, err = New("kdtree -L 0"); err == nil {
		t.Fatal("Non-positive leaf size must be rejected")
	}
}

func TestLinearKNearest(t *testing.T) {
	ds := getTrainDataset(t)
	s := NewLinear()
	if _, err := s.KNearest(dataset.NewInstance([]float64{0.0, 0.0}, 0), 1); err == nil {
		t.Fatal("Unfitted search must fail")
	}
	if err := s.Fit(ds); err != nil {
		t.Fatal(err)
	}
	neighbors, err := s.KNearest(dataset.NewInstance([]float64{0.1, 0.1}, 0), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(neighbors) != 3 {
		t.Fatal("Must return exactly k neighbors")
	}
	if neighbors[0].Instance.Vec[0] != 0.0 || neighbors[0].Instance.Vec[1] != 0.0 {
		t.Fatal("Closest point must come first")
	}
	for i := 1; i < len(neighbors); i++ {
		if neighbors[i].Dist < neighbors[i-1].Dist {
			t.Fatal("Neighbors must be sorted by distance")
		}
	}
	neighbors, err = s.KNearest(dataset.NewInstance([]float64{0.0, 0.0}, 0), 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(neighbors) != ds.Size() {
		t.Fatal("k larger than the dataset must return all instances")
	}
	if _, err := s.KNearest(dataset.NewInstance([]float64{0.0, 0.0}, 0), 0); err == nil {
		t.Fatal("Non-positive k must be rejected")
	}
}

func TestKDTreeMatchesLinear(t *testing.T) {
	rand.Seed(42)
	ds := dataset.New(dataset.Numeric, 0, 3)
	for i := 0; i < 300; i++ {
		vec := []float64{rand.Float64(), rand.Float64(), rand.Float64()}
		if err := ds.Add(dataset.NewInstance(vec, rand.Float64())); err != nil {
			t.Fatal(err)
		}
	}
	linear := NewLinear()
	if err := linear.Fit(ds); err != nil {
		t.Fatal(err)
	}
	tree := NewKDTree()
	if err := tree.SetOptions([]string{"-L", "8"}); err != nil {
		t.Fatal(err)
	}
	if err := tree.Fit(ds); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		query := dataset.NewInstance([]float64{rand.Float64(), rand.Float64(), rand.Float64()}, 0)
		exact, err := linear.KNearest(query, 5)
		if err != nil {
			t.Fatal(err)
		}
		approx, err := tree.KNearest(query, 5)
		if err != nil {
			t.Fatal(err)
		}
		if len(exact) != len(approx) {
			t.Fatal("KDTree must return the same neighbors number as brute-force")
		}
		for j := range exact {
			if exact[j].Dist != approx[j].Dist {
				t.Fatalf("KDTree distances diverge from brute-force at position %d", j)
			}
		}
	}
}

func TestKDTreeUpdate(t *testing.T) {
	ds := getTrainDataset(t)
	tree := NewKDTree()
	if err := tree.Update(dataset.NewInstance([]float64{0.0, 0.0}, 0)); err == nil {
		t.Fatal("Update on the unfitted tree must fail")
	}
	if err := tree.Fit(ds); err != nil {
		t.Fatal(err)
	}
	if err := tree.Update(dataset.NewInstance([]float64{0.5, 0.5}, 1)); err != nil {
		t.Fatal(err)
	}
	neighbors, err := tree.KNearest(dataset.NewInstance([]float64{0.5, 0.5}, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	if neighbors[0].Dist != 0.0 {
		t.Fatal("Added instance must be findable")
	}
}

func TestCandidatesInsert(t *testing.T) {
	c := newCandidates(3)
	dists := []float64{5.0, 1.0, 3.0, 0.5, 4.0}
	for _, d := range dists {
		c.insert(Neighbor{Dist: d})
	}
	if !c.full() {
		t.Fatal("Candidates list must be full")
	}
	got := []float64{c.items[0].Dist, c.items[1].Dist, c.items[2].Dist}
	if !sort.Float64sAreSorted(got) || got[0] != 0.5 || c.worst() != 3.0 {
		t.Fatalf("Wrong candidates kept: %v", got)
	}
}
