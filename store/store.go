package store

import (
	"github.com/gasparian/knn-search-go/dataset"
)

// Iterator consists from only one method which returns id of the next instance
type Iterator interface {
	Next() (string, bool)
}

// Store methods to be able to hold labeled training instances
// before they are fed into a classifier
type Store interface {
	SetInstance(id string, inst dataset.Instance) error
	GetInstance(id string) (dataset.Instance, error)
	GetIterator() (Iterator, error)
	Clear() error
}
