// Package blobstore provides the object-storage collaborator that holds raw
// image bytes, keyed separately from the relational metadata rows. It defines
// the Store contract, an S3-compatible MinIO implementation, and an in-memory
// implementation for tests and development.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

var (
	// ErrKeyExists is returned by Put when the key is already occupied and
	// overwrite was not allowed.
	ErrKeyExists = errors.New("object key already exists")

	// ErrNotFound is returned by Remove when no object lives under the key.
	ErrNotFound = errors.New("object not found")
)

// Store is the contract for a key-addressed binary object store.
type Store interface {
	// Put stores data under key with the given content type. When
	// allowOverwrite is false and the key is occupied, ErrKeyExists is
	// returned and the existing object is left untouched.
	Put(ctx context.Context, key string, data []byte, contentType string, allowOverwrite bool) error

	// Remove deletes the object under key.
	Remove(ctx context.Context, key string) error

	// SignedURL returns a time-limited URL granting read access to key.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)

	// PublicURL returns a non-expiring URL for key. It does not check that
	// the object exists.
	PublicURL(key string) string
}

type storedObject struct {
	data        []byte
	contentType string
}

// MemoryStore is a thread-safe in-memory Store for tests and development.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]storedObject

	// FailPut, FailRemove and FailSign force the corresponding operation to
	// fail, for exercising partial-failure paths in tests.
	FailPut    error
	FailRemove error
	FailSign   error
}

// NewMemoryStore returns a ready-to-use MemoryStore rooted at baseURL.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		objects: make(map[string]storedObject),
	}
}

func (s *MemoryStore) Put(_ context.Context, key string, data []byte, contentType string, allowOverwrite bool) error {
	if s.FailPut != nil {
		return s.FailPut
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objects[key]; exists && !allowOverwrite {
		return ErrKeyExists
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = storedObject{data: buf, contentType: contentType}
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	if s.FailRemove != nil {
		return s.FailRemove
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objects[key]; !exists {
		return ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

func (s *MemoryStore) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	if s.FailSign != nil {
		return "", s.FailSign
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, exists := s.objects[key]; !exists {
		return "", ErrNotFound
	}
	expires := time.Now().Add(ttl).Unix()
	return fmt.Sprintf("%s/%s?expires=%d&signature=%s", s.baseURL, key, expires, url.QueryEscape(key)), nil
}

func (s *MemoryStore) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

// Contains reports whether an object lives under key.
func (s *MemoryStore) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.objects[key]
	return exists
}

// Object returns the stored bytes and content type for key.
func (s *MemoryStore) Object(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, exists := s.objects[key]
	if !exists {
		return nil, "", false
	}
	return obj.data, obj.contentType, true
}

// Len returns the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
