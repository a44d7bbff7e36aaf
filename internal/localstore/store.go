// Package localstore is the storage layer of the local, account-free
// variant: a single JSON file holding namespaced keys, with in-process
// change notifications replacing server push.
package localstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys, one per data family.
const (
	KeyLinks   = "beelinks_links"
	KeyProfile = "beelinks_profile"
	KeyTheme   = "beelinks_theme"
	KeyStats   = "beelinks_stats"
)

var (
	// ErrKeyNotFound indicates the key has never been written
	ErrKeyNotFound = errors.New("Key not found")

	// ErrCorruptStore indicates the backing file could not be parsed
	ErrCorruptStore = errors.New("Store file is corrupt")
)

// ChangeEvent describes a mutation of one key
type ChangeEvent struct {
	Key string `json:"key"`
}

// Store is a file-backed key-value store. Every mutation rewrites the
// whole file; the data set is small enough that this stays cheap.
type Store struct {
	mu     sync.RWMutex
	path   string
	data   map[string]json.RawMessage
	nextID int
	subs   map[int]chan ChangeEvent
}

// Open loads (or initializes) a store at the given file path
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: make(map[string]json.RawMessage),
		subs: make(map[int]chan ChangeEvent),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, ErrCorruptStore
		}
	}

	return s, nil
}

// Get unmarshals the value stored under key into out
func (s *Store) Get(key string, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[key]
	if !ok {
		return ErrKeyNotFound
	}

	return json.Unmarshal(raw, out)
}

// Set stores the value under key and persists the file
func (s *Store) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data[key] = raw
	err = s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(ChangeEvent{Key: key})
	return nil
}

// Delete removes a key and persists the file
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	_, existed := s.data[key]
	delete(s.data, key)
	var err error
	if existed {
		err = s.persistLocked()
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if existed {
		s.publish(ChangeEvent{Key: key})
	}
	return nil
}

// Subscribe registers a change listener and returns its channel plus an
// unsubscribe function
func (s *Store) Subscribe() (<-chan ChangeEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan ChangeEvent, 16)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

// publish delivers a change event to all subscribers without blocking
func (s *Store) publish(event ChangeEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subs {
		select {
		case ch <- event:
		default:
			// Drop for slow subscribers
		}
	}
}

// persistLocked writes the store atomically: temp file then rename.
// Callers must hold the write lock.
func (s *Store) persistLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".beelinks-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
