// Package client holds a typed http client for the classification service
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	cm "github.com/gasparian/knn-search-go/common"
)

var responseErr = errors.New("Response error")

// Config holds necessary constants for initiating the KNNClient
type Config struct {
	ServerAddress string
	Timeout       int
}

type methods struct {
	HealthCheck string
	PutInstance string
	Train       string
	Predict     string
	Model       string
}

// KNNClient holds data needed to perform custom http requests
type KNNClient struct {
	ServerAddress string
	Client        http.Client
	Methods       methods
}

// New creates new instance of KNNClient
func New(config Config) KNNClient {
	return KNNClient{
		ServerAddress: config.ServerAddress,
		Client:        http.Client{Timeout: time.Duration(config.Timeout) * time.Millisecond},
		Methods: methods{
			HealthCheck: config.ServerAddress + "/",
			PutInstance: config.ServerAddress + "/put-instance",
			Train:       config.ServerAddress + "/train",
			Predict:     config.ServerAddress + "/predict",
			Model:       config.ServerAddress + "/model",
		},
	}
}

// MakeRequest performs the http request with specified body
func (client *KNNClient) MakeRequest(method, url string, body io.Reader, target interface{}) error {
	request, err := http.NewRequest(method, url, body)
	if err != nil {
		return err
	}
	request.Header.Set("Content-type", "application/json")

	resp, err := client.Client.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return responseErr
	}

	if target != nil {
		return json.NewDecoder(resp.Body).Decode(target)
	}
	return nil
}

// PutInstance sends a single labeled instance and returns its id
func (client *KNNClient) PutInstance(vec []float64, class, weight float64) (string, error) {
	request := &cm.RequestData{
		Vec:    vec,
		Class:  class,
		Weight: weight,
	}
	jsonRequest, err := json.Marshal(request)
	if err != nil {
		return "", err
	}
	target := &cm.ResponseData{}
	err = client.MakeRequest("POST", client.Methods.PutInstance, bytes.NewBuffer(jsonRequest), target)
	if err != nil {
		return "", err
	}
	id, ok := target.Results.(string)
	if !ok {
		return "", errors.New("PutInstance: can't cast response to the string type")
	}
	return id, nil
}

// Train rebuilds the remote classifier from all stored instances
func (client *KNNClient) Train() (string, error) {
	target := &cm.ResponseData{}
	err := client.MakeRequest("POST", client.Methods.Train, bytes.NewBuffer(nil), target)
	if err != nil {
		return "", err
	}
	return target.Message, nil
}

// Predict returns the class distribution for the query vector
func (client *KNNClient) Predict(vec []float64) ([]cm.PredictionRecord, error) {
	request := &cm.RequestData{Vec: vec}
	jsonRequest, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	target := &struct {
		Results []cm.PredictionRecord `json:"results"`
		Message string                `json:"message"`
	}{}
	err = client.MakeRequest("POST", client.Methods.Predict, bytes.NewBuffer(jsonRequest), target)
	if err != nil {
		return nil, err
	}
	return target.Results, nil
}

// GetModel returns the human-readable description of the remote classifier
func (client *KNNClient) GetModel() (string, error) {
	target := &cm.ResponseData{}
	err := client.MakeRequest("GET", client.Methods.Model, nil, target)
	if err != nil {
		return "", err
	}
	return target.Message, nil
}
