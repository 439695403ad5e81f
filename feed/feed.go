// Package feed stores completed community submissions, newest first, and turns
// them into summary cards.
package feed

import (
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/pokefans/storage"
)

const (
	// Key is the storage key holding the submission list.
	Key = "communitySubmissions"
	// DisplayLimit is how many submissions the page shows.
	DisplayLimit = 5
	// BaseMembers is added to the feed length for the member counter.
	BaseMembers = 1247
)

// Submission is one completed form submission. It never changes after it is
// created.
type Submission struct {
	ID           string    `json:"id"`
	TrainerName  string    `json:"trainerName"`
	Email        string    `json:"email"`
	FavoriteType string    `json:"favoriteType"`
	Message      string    `json:"message"`
	Timestamp    string    `json:"timestamp,omitempty"`
	SubmittedAt  time.Time `json:"submittedAt,omitzero"`
}

// Store is the per-visitor submission feed. The whole list is the unit of
// persistence, so each mutation is a single write.
type Store struct {
	kv     storage.KV
	logger echo.Logger
}

// NewStore returns a Store over kv.
func NewStore(kv storage.KV, logger echo.Logger) *Store {
	if logger == nil {
		logger = log.New("feed")
	}
	return &Store{kv: kv, logger: logger}
}

// All returns the stored submissions in insertion order, newest first.
// A missing or unreadable list is treated as empty.
func (s *Store) All() []Submission {
	var subs []Submission
	if err := storage.LoadJSON(s.kv, Key, &subs); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warnf("submission feed unreadable, starting empty: %v", err)
		}
		return nil
	}
	return subs
}

// Append puts sub at the front of the feed and persists the list.
func (s *Store) Append(sub Submission) error {
	current := s.All()
	next := make([]Submission, 0, len(current)+1)
	next = append(next, sub)
	next = append(next, current...)
	if err := storage.SaveJSON(s.kv, Key, next); err != nil {
		return fmt.Errorf("append submission %s: %w", sub.ID, err)
	}
	return nil
}

// Recent returns the first n submissions.
func (s *Store) Recent(n int) []Submission {
	subs := s.All()
	if n < len(subs) {
		subs = subs[:n]
	}
	return subs
}

// Len returns the number of stored submissions.
func (s *Store) Len() int {
	return len(s.All())
}

// Stats are the aggregate counters shown next to the feed.
type Stats struct {
	Members     int
	Submissions int
}

// StatsFor derives the counters from a feed length.
func StatsFor(n int) Stats {
	return Stats{Members: n + BaseMembers, Submissions: n}
}
