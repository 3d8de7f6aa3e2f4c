package knn

import (
	"strconv"

	"github.com/gasparian/knn-search-go/options"
	"github.com/gasparian/knn-search-go/search"
)

// SetOptions parses a flat option vector:
//
//	-K <n>     number of neighbors (default 1)
//	-W <n>     training window size, 0 = unbounded (default 0)
//	-L         weight neighbors by -log(distance)
//	-G         weight neighbors by a gaussian around them
//	-S <sd>    standard deviation of the gaussian (default 1.0)
//	-X         select k with hold-one-out evaluation on the training data
//	-E         minimize mean squared instead of mean absolute error with -X
//	-A <spec>  search strategy name with its own options (default "linear")
//
// Unrecognized leftover tokens reject the whole vector and the current
// configuration stays untouched.
func (c *Classifier) SetOptions(opts []string) error {
	var config Config

	knnStr, err := options.GetOption("K", opts)
	if err != nil {
		return err
	}
	if knnStr != "" {
		config.K, err = strconv.Atoi(knnStr)
		if err != nil {
			return err
		}
	}

	windowStr, err := options.GetOption("W", opts)
	if err != nil {
		return err
	}
	if windowStr != "" {
		config.WindowSize, err = strconv.Atoi(windowStr)
		if err != nil {
			return err
		}
	}

	sdStr, err := options.GetOption("S", opts)
	if err != nil {
		return err
	}
	if sdStr != "" {
		config.SD, err = strconv.ParseFloat(sdStr, 64)
		if err != nil {
			return err
		}
	}

	if options.GetFlag("L", opts) {
		config.Weighting = WeightLog
	} else if options.GetFlag("G", opts) {
		config.Weighting = WeightGaussian
	} else {
		config.Weighting = WeightLog
	}

	config.CrossValidate = options.GetFlag("X", opts)
	config.MeanSquared = options.GetFlag("E", opts)

	searchSpec, err := options.GetOption("A", opts)
	if err != nil {
		return err
	}
	config.SearchSpec = searchSpec

	if err := options.CheckRemaining(opts); err != nil {
		return err
	}

	config = config.withDefaults()
	s, err := search.New(config.SearchSpec)
	if err != nil {
		return err
	}
	c.config = config
	c.search = s
	c.kValid = false
	if c.train != nil {
		return c.Fit(c.train)
	}
	return nil
}

// Options serializes the current configuration into a flat option vector
// which SetOptions accepts back
func (c *Classifier) Options() []string {
	opts := []string{
		"-K", strconv.Itoa(c.config.K),
		"-W", strconv.Itoa(c.config.WindowSize),
		"-S", strconv.FormatFloat(c.config.SD, 'g', -1, 64),
	}
	if c.config.CrossValidate {
		opts = append(opts, "-X")
	}
	if c.config.MeanSquared {
		opts = append(opts, "-E")
	}
	switch c.config.Weighting {
	case WeightGaussian:
		opts = append(opts, "-G")
	default:
		opts = append(opts, "-L")
	}
	opts = append(opts, "-A", c.search.Spec())
	return opts
}
