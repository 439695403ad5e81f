// Package draft persists in-progress form input so a reload shows exactly what
// the visitor last typed. Values are stored raw, valid or not.
package draft

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/pokefans/storage"
)

// Key is the storage key holding the draft document.
const Key = "formDraft"

// Store is the per-visitor draft of the community form.
type Store struct {
	kv     storage.KV
	logger echo.Logger
}

// New returns a Store over kv.
func New(kv storage.KV, logger echo.Logger) *Store {
	if logger == nil {
		logger = log.New("draft")
	}
	return &Store{kv: kv, logger: logger}
}

// Save records value as the field's latest input, replacing any prior value.
func (s *Store) Save(field, value string) error {
	values := s.LoadAll()
	values[field] = value
	if err := storage.SaveJSON(s.kv, Key, values); err != nil {
		return fmt.Errorf("save draft %s: %w", field, err)
	}
	return nil
}

// LoadAll returns every saved field value. Missing or unreadable drafts come
// back empty.
func (s *Store) LoadAll() map[string]string {
	values := map[string]string{}
	if err := storage.LoadJSON(s.kv, Key, &values); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warnf("draft unreadable, starting empty: %v", err)
		}
		return map[string]string{}
	}
	if values == nil {
		values = map[string]string{}
	}
	return values
}

// Clear removes the given fields from the draft.
func (s *Store) Clear(fields ...string) error {
	values := s.LoadAll()
	for _, f := range fields {
		delete(values, f)
	}
	if len(values) == 0 {
		if err := s.kv.Delete(Key); err != nil {
			return fmt.Errorf("clear draft: %w", err)
		}
		return nil
	}
	if err := storage.SaveJSON(s.kv, Key, values); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
