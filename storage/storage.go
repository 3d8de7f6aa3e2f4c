// Package storage persists serialized classifier models
// on a remote pure-kv server
package storage

import (
	"errors"

	pkv "github.com/gasparian/pure-kv-go/client"
)

const modelsBucket = "models"

var (
	modelNotFoundErr = errors.New("Model not found")
	castErr          = errors.New("Stored model is not a byte array")
)

// Config holds address and timeout of the pure-kv server
type Config struct {
	Address string
	Timeout int
}

// ModelStorage holds pure-kv rpc client and its config
type ModelStorage struct {
	config Config
	client *pkv.Client
}

// New creates a model storage talking to the given pure-kv server
func New(config Config) *ModelStorage {
	return &ModelStorage{
		config: config,
		client: pkv.New(config.Address, config.Timeout),
	}
}

// Start opens the connection and prepares the models bucket
func (s *ModelStorage) Start() error {
	err := s.client.Open()
	if err != nil {
		return err
	}
	return s.client.Create(modelsBucket)
}

// Close shutdowns rpc client
func (s *ModelStorage) Close() {
	s.client.Close()
}

// SaveModel stores the serialized model under the given key
func (s *ModelStorage) SaveModel(key string, dump []byte) error {
	return s.client.Set(modelsBucket, key, dump)
}

// LoadModel returns the serialized model stored under the given key
func (s *ModelStorage) LoadModel(key string) ([]byte, error) {
	val, ok := s.client.Get(modelsBucket, key)
	if !ok {
		return nil, modelNotFoundErr
	}
	dump, ok := val.([]byte)
	if !ok {
		return nil, castErr
	}
	return dump, nil
}
