package search

import (
	"sort"

	cm "github.com/gasparian/knn-search-go/common"
	"github.com/gasparian/knn-search-go/dataset"
	"github.com/gasparian/knn-search-go/options"
)

// LinearName used in the search strategy specification string
const LinearName = "linear"

// Linear is a brute-force nearest neighbors search
type Linear struct {
	train *dataset.Dataset
}

// NewLinear creates an unfitted brute-force search
func NewLinear() *Linear {
	return &Linear{}
}

// Fit stores the reference to the training data
func (l *Linear) Fit(ds *dataset.Dataset) error {
	if err := ds.CheckNotEmpty(); err != nil {
		return err
	}
	l.train = ds
	return nil
}

// Update is a no-op for the brute-force search since it
// scans the shared training dataset on every query
func (l *Linear) Update(inst dataset.Instance) error {
	if l.train == nil {
		return notFittedErr
	}
	return nil
}

// KNearest scans the whole training set and returns up to k
// closest instances sorted by l2-distance
func (l *Linear) KNearest(target dataset.Instance, k int) ([]Neighbor, error) {
	if l.train == nil {
		return nil, notFittedErr
	}
	if k <= 0 {
		return nil, kOutOfRangeErr
	}
	neighbors := make([]Neighbor, 0, l.train.Size())
	for _, inst := range l.train.Instances {
		neighbors = append(neighbors, Neighbor{
			Instance: inst,
			Dist:     cm.L2Raw(target.Vec, inst.Vec),
		})
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Dist < neighbors[j].Dist
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// Spec returns the specification string of the strategy
func (l *Linear) Spec() string {
	return LinearName
}

// SetOptions rejects any options since brute-force search has none
func (l *Linear) SetOptions(opts []string) error {
	return options.CheckRemaining(opts)
}
