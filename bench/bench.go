// Package bench holds helpers for evaluating classifiers
// on ann-benchmarks style hdf5 datasets
package bench

import (
	"errors"
	"math"
	"sort"

	"github.com/cheggaaa/pb/v3"
	"github.com/gasparian/knn-search-go/dataset"
	"github.com/gasparian/knn-search-go/knn"
	"gonum.org/v1/hdf5"
)

var (
	emptyTestSetErr = errors.New("test dataset must contain at least one instance")
	rowLengthErr    = errors.New("vectors number must be divisible by the dimensions number")
)

// Objects inside the hdf5:
// train
// test
// distances
// neighbors

// GetVectorsFromHDF5 returns slice of feature vectors, from the hdf5 table
func GetVectorsFromHDF5(table *hdf5.File, datasetName string, vecs interface{}) error {
	dataset, err := table.OpenDataset(datasetName)
	if err != nil {
		return err
	}
	defer dataset.Close()

	fileSpace := dataset.Space()
	numTicks := fileSpace.SimpleExtentNPoints()

	switch vecs := vecs.(type) {
	case *[]float32:
		*vecs = make([]float32, numTicks)
	case *[]int32:
		*vecs = make([]int32, numTicks)
	}

	err = dataset.Read(vecs)
	if err != nil {
		return err
	}

	return nil
}

// SplitVectors cuts a flat feature array into rows of the given dimension
func SplitVectors(flat []float32, dims int) ([][]float64, error) {
	if dims <= 0 || len(flat)%dims != 0 {
		return nil, rowLengthErr
	}
	rows := make([][]float64, len(flat)/dims)
	for i := 0; i <= len(flat)-dims; i += dims {
		row := make([]float64, dims)
		for j, v := range flat[i : i+dims] {
			row[j] = float64(v)
		}
		rows[i/dims] = row
	}
	return rows, nil
}

// PrecisionRecall returns ratio of relevant predictions over the all true relevant items
// both arrays MUST BE SORTED
func PrecisionRecall(prediction, groundTruth []int) (float64, float64) {
	valid := 0
	for _, val := range prediction {
		idx := sort.SearchInts(groundTruth, val)
		if idx < len(groundTruth) && groundTruth[idx] == val {
			valid++
		}
	}
	precision := 0.0
	if len(prediction) > 0 {
		precision = float64(valid) / float64(len(prediction))
	}
	recall := float64(valid) / float64(len(groundTruth))
	return precision, recall
}

// Accuracy returns the ratio of exact class matches
func Accuracy(prediction, groundTruth []float64) float64 {
	if len(groundTruth) == 0 {
		return 0.0
	}
	valid := 0
	for i := range groundTruth {
		if prediction[i] == groundTruth[i] {
			valid++
		}
	}
	return float64(valid) / float64(len(groundTruth))
}

// Report holds evaluation results; Accuracy is filled for nominal
// targets, the error fields for numeric ones
type Report struct {
	Accuracy   float64
	MeanAbsErr float64
	MeanSqErr  float64
	TestSize   int
}

// Evaluate predicts every test instance and aggregates the metrics
func Evaluate(c *knn.Classifier, test *dataset.Dataset) (Report, error) {
	report := Report{TestSize: test.Size()}
	if test.Size() == 0 {
		return report, emptyTestSetErr
	}
	predictions := make([]float64, 0, test.Size())
	truth := make([]float64, 0, test.Size())

	bar := pb.StartNew(test.Size())
	for _, inst := range test.Instances {
		bar.Increment()
		pred, err := c.Predict(inst)
		if err != nil {
			bar.Finish()
			return report, err
		}
		predictions = append(predictions, pred)
		truth = append(truth, inst.Class)
	}
	bar.Finish()

	switch test.ClassType {
	case dataset.Nominal:
		report.Accuracy = Accuracy(predictions, truth)
	case dataset.Numeric:
		for i := range truth {
			diff := predictions[i] - truth[i]
			report.MeanAbsErr += math.Abs(diff)
			report.MeanSqErr += diff * diff
		}
		report.MeanAbsErr /= float64(len(truth))
		report.MeanSqErr /= float64(len(truth))
	}
	return report, nil
}
