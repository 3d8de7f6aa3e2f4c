package knn

import (
	"math"

	"github.com/gasparian/knn-search-go/dataset"
	"github.com/gasparian/knn-search-go/search"
	"gonum.org/v1/gonum/stat/distuv"
)

// epsilon keeps the log-distance weight finite at zero distance
const epsilon = 1e-10

// neighborWeight converts a raw neighbor distance into a vote weight.
// The distance is first normalized by the attributes number: it is
// squared and re-rooted together with the divisor, matching the
// historical behavior exactly.
func (c *Classifier) neighborWeight(rawDist float64) float64 {
	dist := rawDist * rawDist
	dist = math.Sqrt(dist / float64(c.numAttrsUsed))

	switch c.config.Weighting {
	case WeightLog:
		return -math.Log(dist + epsilon) // avoid infinity
	case WeightGaussian:
		gaussian := distuv.Normal{Mu: 0.0, Sigma: c.config.SD}
		return gaussian.Prob(dist)
	default: // behaves as WeightLog with zero distance
		return -math.Log(epsilon)
	}
}

// makeDistribution turns the list of nearest neighbors into a probability
// distribution for nominal targets, or into a single accumulated weighted
// value for numeric ones. The distribution is normalized only when the
// total collected weight is positive.
func (c *Classifier) makeDistribution(neighbors []search.Neighbor) ([]float64, error) {
	var total float64
	distribution := make([]float64, c.train.NumClasses)

	// set up a correction to the estimator
	if c.train.ClassType == dataset.Nominal {
		prior := 1.0 / math.Max(1, float64(c.train.Size()))
		for i := range distribution {
			distribution[i] = prior
		}
		total = float64(c.train.NumClasses) * prior
	}

	for _, neighbor := range neighbors {
		if !neighbor.Instance.HasClass() {
			return nil, missingClassErr
		}
		weight := c.neighborWeight(neighbor.Dist)
		weight *= neighbor.Instance.Weight

		switch c.train.ClassType {
		case dataset.Nominal:
			distribution[int(neighbor.Instance.Class)] += weight
		case dataset.Numeric:
			distribution[0] += neighbor.Instance.Class * weight
		}
		total += weight
	}

	if total > 0 {
		for i := range distribution {
			distribution[i] /= total
		}
	}
	return distribution, nil
}
