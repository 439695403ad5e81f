// Package storage provides the durable key/value stores behind the draft and
// feed data. Values are opaque strings; callers exchange JSON documents through
// LoadJSON and SaveJSON.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotFound is returned when a key has never been written.
	ErrNotFound = errors.New("storage: key not found")
	// ErrCorrupt is returned when a stored value cannot be decoded.
	ErrCorrupt = errors.New("storage: corrupt value")
)

// KV is a string key/value store. Implementations must make Set atomic:
// readers observe either the previous value or the new one.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// LoadJSON decodes the value stored at key into v. A missing key yields
// ErrNotFound and an undecodable value yields an error wrapping ErrCorrupt.
func LoadJSON(kv KV, key string, v any) error {
	raw, err := kv.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

// SaveJSON encodes v and stores it under key as a single write.
func SaveJSON(kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(key, string(data))
}

// Memory is an in-process KV, used for tests and as a fallback when no
// database is configured.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}
