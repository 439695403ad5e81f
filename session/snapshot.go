package session

import (
	"slices"
	"time"

	"github.com/eringen/pokefans/feed"
	"github.com/eringen/pokefans/gallery"
	"github.com/eringen/pokefans/submit"
	"github.com/eringen/pokefans/ui"
)

// Snapshot is a consistent copy of a session's visible state, safe to render
// outside the loop.
type Snapshot struct {
	ID        string
	Surface   *ui.Surface
	Cards     []feed.Card
	Stats     feed.Stats
	Tiles     []gallery.Tile
	Exhausted bool
	Modal     gallery.Tile
	ModalOpen bool
	State     submit.State
	LastVisit time.Time
	Now       time.Time

	// Pending is set while a timer will still change the page, so the
	// client keeps polling for fragments.
	Pending bool
}

// Snapshot copies the session's current state.
func (s *Session) Snapshot() Snapshot {
	var snap Snapshot
	s.loop.Do(func() {
		tile, open := s.modal.Current()
		snap = Snapshot{
			ID:        s.ID,
			Surface:   s.surface.Clone(),
			Cards:     slices.Clone(s.cards),
			Stats:     s.stats,
			Tiles:     slices.Clone(s.pager.Tiles()),
			Exhausted: s.pager.Exhausted(),
			Modal:     tile,
			ModalOpen: open,
			State:     s.submit.State(),
			LastVisit: s.lastVisit,
			Now:       s.loop.Now(),
			Pending: s.submit.Pending() ||
				s.counters.Running(ui.MemberCount) ||
				s.counters.Running(ui.SubmissionCount),
		}
	})
	return snap
}

// Value returns the input value shown for field.
func (snap Snapshot) Value(field string) string {
	return snap.Surface.Get(field).Value()
}

// Error returns the inline error shown for field, or "" when it is hidden.
func (snap Snapshot) Error(field string) string {
	slot := snap.Surface.Get(ui.ErrorSlot(field))
	if slot.Hidden() {
		return ""
	}
	return slot.Text()
}
