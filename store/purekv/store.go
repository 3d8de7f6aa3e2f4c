package purekv

import (
	"bytes"
	"encoding/gob"
	"errors"

	"github.com/gasparian/knn-search-go/dataset"
	"github.com/gasparian/knn-search-go/store"
	pkv "github.com/gasparian/pure-kv-go/client"
	guuid "github.com/google/uuid"
)

const instancesBucket = "instances"

var (
	keyNotFoundErr = errors.New("Key not found")
	castErr        = errors.New("Stored value is not a byte array")
)

// Config holds address and timeout of the pure-kv server
type Config struct {
	Address string
	Timeout int
}

// PureKvStore keeps labeled instances on a remote pure-kv server;
// instances are gob-encoded so only byte arrays cross the wire
type PureKvStore struct {
	config Config
	client *pkv.Client
}

// KeysIterator iterates over instance ids on a dedicated client
type KeysIterator struct {
	client     *pkv.Client
	bucketName string
}

// Next returns the next stored id, false when the iterator is exhausted
func (it *KeysIterator) Next() (string, bool) {
	if it.client == nil {
		return "", false
	}
	key, _, err := it.client.Next(it.bucketName)
	if key == "" || err != nil {
		it.client.Close()
		return "", false
	}
	return key, true
}

// New creates a store talking to the pure-kv server at the given address
func New(config Config) *PureKvStore {
	return &PureKvStore{
		config: config,
		client: pkv.New(config.Address, config.Timeout),
	}
}

// Start opens the connection and prepares the instances bucket
func (p *PureKvStore) Start() error {
	err := p.client.Open()
	if err != nil {
		return err
	}
	return p.client.Create(instancesBucket)
}

// Close shuts the connection down
func (p *PureKvStore) Close() {
	p.client.Close()
}

// SetInstance puts the gob-encoded instance under the given id
func (p *PureKvStore) SetInstance(id string, inst dataset.Instance) error {
	buf := &bytes.Buffer{}
	if err := gob.NewEncoder(buf).Encode(inst); err != nil {
		return err
	}
	return p.client.Set(instancesBucket, id, buf.Bytes())
}

// AddInstance puts the instance under a fresh random id and returns it
func (p *PureKvStore) AddInstance(inst dataset.Instance) (string, error) {
	uid := guuid.NewString()
	return uid, p.SetInstance(uid, inst)
}

// GetInstance returns the instance stored under the given id
func (p *PureKvStore) GetInstance(id string) (dataset.Instance, error) {
	var inst dataset.Instance
	val, ok := p.client.Get(instancesBucket, id)
	if !ok {
		return inst, keyNotFoundErr
	}
	raw, ok := val.([]byte)
	if !ok {
		return inst, castErr
	}
	err := gob.NewDecoder(bytes.NewBuffer(raw)).Decode(&inst)
	return inst, err
}

// GetIterator returns an iterator over the ids of all stored instances
func (p *PureKvStore) GetIterator() (store.Iterator, error) {
	err := p.client.MakeIterator(instancesBucket)
	if err != nil {
		return nil, err
	}
	it := &KeysIterator{
		client:     pkv.New(p.config.Address, p.config.Timeout),
		bucketName: instancesBucket,
	}
	return it, nil
}

// Clear drops everything stored on the server
func (p *PureKvStore) Clear() error {
	p.client.DestroyAll()
	return nil
}
