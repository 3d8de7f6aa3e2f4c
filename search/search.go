// Package search holds the nearest neighbors search strategies
// used by the lazy classifiers
package search

import (
	"errors"
	"fmt"

	"github.com/gasparian/knn-search-go/dataset"
	"github.com/gasparian/knn-search-go/options"
)

var (
	emptySpecErr    = errors.New("search strategy specification string must not be empty")
	notFittedErr    = errors.New("search strategy must be fitted with the training data first")
	kOutOfRangeErr  = errors.New("number of neighbors must be a positive integer")
	unknownStratErr = errors.New("unknown search strategy name")
)

// Neighbor holds a single training instance together with
// the raw distance to the query point
type Neighbor struct {
	Instance dataset.Instance
	Dist     float64
}

// NeighborSearch finds the closest training instances for a query point
type NeighborSearch interface {
	// Fit builds the search structure over the training data
	Fit(ds *dataset.Dataset) error
	// Update adds a single training instance to the search structure
	Update(inst dataset.Instance) error
	// KNearest returns up to k closest instances, sorted by distance
	KNearest(target dataset.Instance, k int) ([]Neighbor, error)
	// Spec serializes strategy name and its options into a single string
	Spec() string
	// SetOptions applies strategy-specific options
	SetOptions(opts []string) error
}

// New creates a search strategy from a specification string:
// the strategy name followed by its own options, e.g. "kdtree -L 40"
func New(spec string) (NeighborSearch, error) {
	tokens, err := options.SplitOptions(spec)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, emptySpecErr
	}
	var s NeighborSearch
	switch tokens[0] {
	case LinearName:
		s = NewLinear()
	case KDTreeName:
		s = NewKDTree()
	default:
		return nil, fmt.Errorf("%w: %s", unknownStratErr, tokens[0])
	}
	if err := s.SetOptions(tokens[1:]); err != nil {
		return nil, err
	}
	return s, nil
}
