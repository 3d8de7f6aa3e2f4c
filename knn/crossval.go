package knn

import (
	"math"

	"github.com/gasparian/knn-search-go/dataset"
	"github.com/gasparian/knn-search-go/search"
)

// crossValidate selects the number of neighbors in [1, K] with the best
// hold-one-out performance on the training data: every training instance
// is classified by its neighbors excluding the instance itself, and the
// per-candidate-k errors are accumulated over the whole set.
// Ties go to the smaller k. The result is cached until the training
// data or the configuration changes.
func (c *Classifier) crossValidate() error {
	kUpper := c.config.K
	if kUpper > c.train.Size()-1 {
		kUpper = c.train.Size() - 1
	}
	if kUpper < 1 {
		c.selectedK = 1
		c.kValid = true
		return nil
	}

	performance := make([]float64, kUpper)
	for _, inst := range c.train.Instances {
		neighbors, err := c.search.KNearest(inst, kUpper+1)
		if err != nil {
			return err
		}
		neighbors = dropSelf(neighbors, inst)
		if len(neighbors) > kUpper {
			neighbors = neighbors[:kUpper]
		}
		for j := range neighbors {
			distribution, err := c.makeDistribution(neighbors[:j+1])
			if err != nil {
				return err
			}
			switch c.train.ClassType {
			case dataset.Numeric:
				diff := distribution[0] - inst.Class
				if c.config.MeanSquared {
					performance[j] += diff * diff
				} else {
					performance[j] += math.Abs(diff)
				}
			case dataset.Nominal:
				if argmax(distribution) != int(inst.Class) {
					performance[j]++
				}
			}
		}
	}

	best := 0
	for j := 1; j < kUpper; j++ {
		if performance[j] < performance[best] {
			best = j
		}
	}
	c.selectedK = best + 1
	c.kValid = true
	return nil
}

// dropSelf removes the first neighbor identical to the held-out instance
func dropSelf(neighbors []search.Neighbor, inst dataset.Instance) []search.Neighbor {
	for i, neighbor := range neighbors {
		if neighbor.Dist == 0 &&
			neighbor.Instance.Class == inst.Class &&
			vecsEqual(neighbor.Instance.Vec, inst.Vec) {
			return append(neighbors[:i], neighbors[i+1:]...)
		}
	}
	return neighbors
}

func vecsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func argmax(distribution []float64) int {
	best := 0
	for i := 1; i < len(distribution); i++ {
		if distribution[i] > distribution[best] {
			best = i
		}
	}
	return best
}
