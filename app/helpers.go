package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/gasparian/knn-search-go/dataset"
	"github.com/gasparian/knn-search-go/options"
)

// ServiceConfig holds all needed variables to run the app
type ServiceConfig struct {
	Port       int
	ClassType  int
	NumClasses int
	NumAttrs   int
	KnnOptions []string
}

// getHelloMessage forms a byte array contains message
func getHelloMessage() []byte {
	helloMessage := []byte(`{
		"methods": {
			"GET": {
				"/": "returns this help message",
				"/model": "returns the human-readable classifier description"
			},
			"POST": {
				"/put-instance": "stores a labeled training instance; returns its id",
				"/train": "rebuilds the classifier from all stored instances",
				"/predict": "returns the class distribution for the query vector"
			}
	    }
	}`)
	// NOTE: ugly, but it's more convinient to update the text message by hand and then serialize to json
	var raw map[string]interface{}
	err := json.Unmarshal(helloMessage, &raw)
	out, _ := json.Marshal(raw)
	if err != nil {
		return []byte("")
	}
	return out
}

// ParseEnv forms app config by parsing the environment variables
func ParseEnv() (*ServiceConfig, error) {
	intVars := map[string]int{
		"SERVER_PORT": 0,
		"NUM_CLASSES": 0,
		"NUM_ATTRS":   0,
	}
	for key := range intVars {
		val, err := strconv.Atoi(os.Getenv(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %v", key, err)
		}
		intVars[key] = val
	}

	classType := dataset.Nominal
	if os.Getenv("CLASS_TYPE") == "numeric" {
		classType = dataset.Numeric
	}

	knnOptions, err := options.SplitOptions(os.Getenv("KNN_OPTIONS"))
	if err != nil {
		return nil, err
	}

	return &ServiceConfig{
		Port:       intVars["SERVER_PORT"],
		ClassType:  classType,
		NumClasses: intVars["NUM_CLASSES"],
		NumAttrs:   intVars["NUM_ATTRS"],
		KnnOptions: knnOptions,
	}, nil
}
