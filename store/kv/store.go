package kv

import (
	"errors"
	"sync"

	"github.com/gasparian/knn-search-go/dataset"
	"github.com/gasparian/knn-search-go/store"
	guuid "github.com/google/uuid"
)

var (
	keyNotFoundErr = errors.New("Key not found")
)

// KVStore is an in-memory instance store
type KVStore struct {
	mx sync.RWMutex
	m  map[string]dataset.Instance
}

// NewKVStore creates an empty in-memory instance store
func NewKVStore() *KVStore {
	return &KVStore{
		m: make(map[string]dataset.Instance),
	}
}

// KeysIterator iterates over ids of the stored instances
type KeysIterator struct {
	ids chan string
}

// Next returns the next stored id, false when the iterator is exhausted
func (it *KeysIterator) Next() (string, bool) {
	id, opened := <-it.ids
	if !opened {
		return "", false
	}
	return id, true
}

// SetInstance puts the instance under the given id
func (s *KVStore) SetInstance(id string, inst dataset.Instance) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.m[id] = inst
	return nil
}

// AddInstance puts the instance under a fresh random id and returns it
func (s *KVStore) AddInstance(inst dataset.Instance) (string, error) {
	uid := guuid.NewString()
	return uid, s.SetInstance(uid, inst)
}

// GetInstance returns the instance stored under the given id
func (s *KVStore) GetInstance(id string) (dataset.Instance, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	inst, ok := s.m[id]
	if !ok {
		return dataset.Instance{}, keyNotFoundErr
	}
	return inst, nil
}

// GetIterator returns an iterator over the ids of all stored instances
func (s *KVStore) GetIterator() (store.Iterator, error) {
	s.mx.RLock()
	ids := make([]string, 0, len(s.m))
	for id := range s.m {
		ids = append(ids, id)
	}
	s.mx.RUnlock()

	idsCh := make(chan string)
	go func() {
		for _, id := range ids {
			idsCh <- id
		}
		close(idsCh)
	}()
	return &KeysIterator{ids: idsCh}, nil
}

// Size returns the number of stored instances
func (s *KVStore) Size() int {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return len(s.m)
}

// Clear drops all stored instances
func (s *KVStore) Clear() error {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.m = make(map[string]dataset.Instance)
	return nil
}
