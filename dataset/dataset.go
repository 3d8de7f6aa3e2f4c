package dataset

import (
	"errors"
	"math"
)

var (
	attrsNumberErr     = errors.New("instance must have the same number of attributes as the dataset")
	classIndexRangeErr = errors.New("nominal class index is out of range")
	emptyDatasetErr    = errors.New("dataset must contain at least one instance")
)

// Target attribute kinds
const (
	Nominal = iota
	Numeric
)

// Instance holds a single labeled feature vector;
// Class keeps the class index for nominal targets and
// the raw target value for numeric ones
type Instance struct {
	Vec    []float64
	Class  float64
	Weight float64
}

// NewInstance creates an instance with the default unit weight
func NewInstance(vec []float64, class float64) Instance {
	return Instance{
		Vec:    vec,
		Class:  class,
		Weight: 1.0,
	}
}

// HasClass reports whether the instance carries a class value
func (inst Instance) HasClass() bool {
	return !math.IsNaN(inst.Class)
}

// Dataset holds an ordered set of labeled instances
// together with the target attribute description
type Dataset struct {
	ClassType  int
	NumClasses int
	NumAttrs   int
	Instances  []Instance
}

// New creates an empty dataset; numClasses is ignored for numeric targets
func New(classType, numClasses, numAttrs int) *Dataset {
	if classType == Numeric {
		numClasses = 1
	}
	return &Dataset{
		ClassType:  classType,
		NumClasses: numClasses,
		NumAttrs:   numAttrs,
	}
}

// Size returns the number of instances currently held
func (ds *Dataset) Size() int {
	return len(ds.Instances)
}

// Add appends an instance, validating it against the dataset header
func (ds *Dataset) Add(inst Instance) error {
	if len(inst.Vec) != ds.NumAttrs {
		return attrsNumberErr
	}
	if ds.ClassType == Nominal && inst.HasClass() {
		classIdx := int(inst.Class)
		if classIdx < 0 || classIdx >= ds.NumClasses {
			return classIndexRangeErr
		}
	}
	if inst.Weight == 0 {
		inst.Weight = 1.0
	}
	ds.Instances = append(ds.Instances, inst)
	return nil
}

// Truncate drops the oldest instances until at most windowSize remain;
// windowSize <= 0 means no bound
func (ds *Dataset) Truncate(windowSize int) {
	if windowSize <= 0 || len(ds.Instances) <= windowSize {
		return
	}
	ds.Instances = ds.Instances[len(ds.Instances)-windowSize:]
}

// Copy returns a dataset with the same header and a copied instance slice
func (ds *Dataset) Copy() *Dataset {
	cp := New(ds.ClassType, ds.NumClasses, ds.NumAttrs)
	cp.Instances = make([]Instance, len(ds.Instances))
	copy(cp.Instances, ds.Instances)
	return cp
}

// CheckNotEmpty returns an error for datasets with no instances
func (ds *Dataset) CheckNotEmpty() error {
	if len(ds.Instances) == 0 {
		return emptyDatasetErr
	}
	return nil
}
