// Package knn implements a lazy k-nearest neighbors classifier with
// log-distance and gaussian neighbor weighting, a FIFO training window
// and hold-one-out selection of k
package knn

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/gasparian/knn-search-go/dataset"
	"github.com/gasparian/knn-search-go/search"
)

var (
	noModelErr      = errors.New("no model built yet")
	noInstancesErr  = errors.New("training dataset contains no instances")
	missingClassErr = errors.New("training data has no class value")
	nilDatasetErr   = errors.New("training dataset must not be nil")
)

// Weighting defines how a neighbor distance converts into a vote weight
type Weighting int

// Supported neighbor weighting schemes
const (
	WeightLog Weighting = iota + 1
	WeightGaussian
)

// Config holds all tunable classifier parameters
type Config struct {
	// K is the number of neighbors used in classification
	K int
	// WindowSize caps the training set, oldest instances are dropped FIFO;
	// 0 means no window
	WindowSize int
	// Weighting is the neighbor weighting scheme, log-distance by default
	Weighting Weighting
	// SD is the standard deviation of the gaussian used with WeightGaussian
	SD float64
	// CrossValidate enables hold-one-out selection of k in [1, K]
	CrossValidate bool
	// MeanSquared prefers mean squared over mean absolute error
	// during cross-validation with numeric targets
	MeanSquared bool
	// SearchSpec selects the nearest neighbors search strategy
	SearchSpec string
}

func (config Config) withDefaults() Config {
	if config.K <= 0 {
		config.K = 1
	}
	if config.Weighting == 0 {
		config.Weighting = WeightLog
	}
	if config.SD <= 0 {
		config.SD = 1.0
	}
	if config.SearchSpec == "" {
		config.SearchSpec = search.LinearName
	}
	return config
}

// Classifier is a lazy instance-based learner: it keeps the training
// data and predicts from the weighted votes of the k closest instances.
// Not safe for concurrent use without external synchronization.
type Classifier struct {
	config       Config
	train        *dataset.Dataset
	search       search.NeighborSearch
	numAttrsUsed int
	selectedK    int
	kValid       bool
}

// New creates a classifier, validating the search strategy specification
func New(config Config) (*Classifier, error) {
	config = config.withDefaults()
	s, err := search.New(config.SearchSpec)
	if err != nil {
		return nil, err
	}
	return &Classifier{
		config: config,
		search: s,
	}, nil
}

// Config returns a copy of the current configuration
func (c *Classifier) Config() Config {
	return c.config
}

// Fit stores the training data, applying the FIFO window bound,
// and builds the search structure over it
func (c *Classifier) Fit(ds *dataset.Dataset) error {
	if ds == nil {
		return nilDatasetErr
	}
	train := ds.Copy()
	train.Truncate(c.config.WindowSize)
	c.train = train
	c.numAttrsUsed = train.NumAttrs
	c.kValid = false
	if train.Size() == 0 {
		return nil
	}
	return c.search.Fit(c.train)
}

// Update adds a single training instance, evicting the oldest
// one when the window bound is exceeded
func (c *Classifier) Update(inst dataset.Instance) error {
	if c.train == nil {
		return noModelErr
	}
	wasEmpty := c.train.Size() == 0
	if err := c.train.Add(inst); err != nil {
		return err
	}
	c.kValid = false
	if c.config.WindowSize > 0 && c.train.Size() > c.config.WindowSize {
		c.train.Truncate(c.config.WindowSize)
		return c.search.Fit(c.train)
	}
	if wasEmpty {
		return c.search.Fit(c.train)
	}
	return c.search.Update(inst)
}

// TrainSize returns the number of training instances currently held
func (c *Classifier) TrainSize() int {
	if c.train == nil {
		return 0
	}
	return c.train.Size()
}

// Distribution returns class probabilities for nominal targets or a
// single-slot weighted value estimate for numeric ones
func (c *Classifier) Distribution(inst dataset.Instance) ([]float64, error) {
	if c.train == nil {
		return nil, noModelErr
	}
	if c.train.Size() == 0 {
		return nil, noInstancesErr
	}
	if c.config.CrossValidate && !c.kValid {
		if err := c.crossValidate(); err != nil {
			return nil, err
		}
	}
	k := c.effectiveK()
	neighbors, err := c.search.KNearest(inst, k)
	if err != nil {
		return nil, err
	}
	return c.makeDistribution(neighbors)
}

// Predict returns the class index with the highest probability for
// nominal targets and the accumulated value estimate for numeric ones
func (c *Classifier) Predict(inst dataset.Instance) (float64, error) {
	distribution, err := c.Distribution(inst)
	if err != nil {
		return 0, err
	}
	if c.train.ClassType == dataset.Numeric {
		return distribution[0], nil
	}
	return float64(argmax(distribution)), nil
}

// SelectedK returns the number of neighbors actually used for voting
func (c *Classifier) SelectedK() int {
	return c.effectiveK()
}

func (c *Classifier) effectiveK() int {
	k := c.config.K
	if c.config.CrossValidate && c.kValid {
		k = c.selectedK
	}
	if c.train != nil && k > c.train.Size() {
		k = c.train.Size()
	}
	return k
}

// String returns a human-readable description of the classifier state
func (c *Classifier) String() string {
	if c.train == nil {
		return "IBk: no model built yet."
	}
	if c.train.Size() == 0 {
		return "Warning: no training instances - ZeroR model used."
	}
	if c.config.CrossValidate && !c.kValid {
		// best-effort: the description falls back to the configured k
		// when hold-one-out selection fails
		c.crossValidate()
	}
	result := fmt.Sprintf("IB1 instance-based classifier\nusing %d", c.effectiveK())
	switch c.config.Weighting {
	case WeightLog:
		result += " log-distance-weighted"
	case WeightGaussian:
		result += fmt.Sprintf(" gaussian-distance-weighted (Mean:0, SD:%v)", c.config.SD)
	}
	result += " nearest neighbor(s) for classification\n"
	if c.config.WindowSize != 0 {
		result += fmt.Sprintf("using a maximum of %d (windowed) training instances\n", c.config.WindowSize)
	}
	return result
}

type classifierEncode struct {
	Config       Config
	Train        *dataset.Dataset
	NumAttrsUsed int
}

// Dump encodes the classifier as a byte-array
func (c *Classifier) Dump() ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := gob.NewEncoder(buf)
	err := enc.Encode(classifierEncode{
		Config:       c.config,
		Train:        c.train,
		NumAttrsUsed: c.numAttrsUsed,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load restores the classifier from a byte-array and refits the search
func Load(inp []byte) (*Classifier, error) {
	dec := gob.NewDecoder(bytes.NewBuffer(inp))
	var encoded classifierEncode
	if err := dec.Decode(&encoded); err != nil {
		return nil, err
	}
	c, err := New(encoded.Config)
	if err != nil {
		return nil, err
	}
	if encoded.Train != nil {
		if err := c.Fit(encoded.Train); err != nil {
			return nil, err
		}
	}
	c.numAttrsUsed = encoded.NumAttrsUsed
	return c, nil
}
