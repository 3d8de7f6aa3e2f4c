package main

import (
	"fmt"

	"github.com/gasparian/knn-search-go/app"
	cm "github.com/gasparian/knn-search-go/common"
	"github.com/gasparian/knn-search-go/knn"
	"github.com/gasparian/knn-search-go/store/kv"
)

func main() {
	logger := cm.GetNewLogger()
	config, err := app.ParseEnv()
	if err != nil {
		logger.Err.Fatal(err)
	}

	classifier, err := knn.New(knn.Config{})
	if err != nil {
		logger.Err.Fatal(err)
	}
	if len(config.KnnOptions) > 0 {
		if err := classifier.SetOptions(config.KnnOptions); err != nil {
			logger.Err.Fatal(err)
		}
	}

	server := app.New(*config, classifier, kv.NewKVStore())
	addr := fmt.Sprintf(":%d", config.Port)
	logger.Info.Printf("Starting the classification service at %s", addr)
	logger.Err.Fatal(server.Run(addr))
}
