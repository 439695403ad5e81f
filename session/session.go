// Package session ties the community page's components together for one page
// view. A Session owns its own loop, so reactions for one page never
// interleave while separate pages proceed independently.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/pokefans/counter"
	"github.com/eringen/pokefans/draft"
	"github.com/eringen/pokefans/eventloop"
	"github.com/eringen/pokefans/feed"
	"github.com/eringen/pokefans/gallery"
	"github.com/eringen/pokefans/modal"
	"github.com/eringen/pokefans/storage"
	"github.com/eringen/pokefans/submit"
	"github.com/eringen/pokefans/ui"
)

// LastVisitKey is the storage key recording when the visitor last loaded the
// page.
const LastVisitKey = "lastVisit"

// Config tunes a page session.
type Config struct {
	Submit          submit.Config
	Catalog         []gallery.Item
	BatchSize       int
	CounterSteps    int
	CounterInterval time.Duration
}

// Session is one page view.
type Session struct {
	ID string

	loop       *eventloop.Loop
	dispatcher *eventloop.Dispatcher
	surface    *ui.Surface
	kv         storage.KV
	logger     echo.Logger

	form     *submit.Form
	submit   *submit.Controller
	drafts   *draft.Store
	feed     *feed.Store
	pager    *gallery.Pager
	modal    *modal.Controller
	counters *counter.Animator

	initialized bool
	cards       []feed.Card
	stats       feed.Stats
	lastVisit   time.Time
}

// New builds a session over the visitor's storage. Nothing is bound or
// rendered until Init.
func New(id string, kv storage.KV, sched eventloop.Scheduler, cfg Config, logger echo.Logger) *Session {
	if logger == nil {
		logger = log.New("session")
	}
	if cfg.Catalog == nil {
		cfg.Catalog = gallery.DefaultCatalog()
	}
	fields := submit.DefaultFields()
	s := &Session{
		ID:         id,
		loop:       eventloop.NewLoop(sched),
		dispatcher: eventloop.NewDispatcher(),
		surface:    ui.CommunityPage(submit.FieldIDs(fields)...),
		kv:         kv,
		logger:     logger,
		form:       submit.NewForm(fields),
	}
	s.drafts = draft.New(kv, logger)
	s.feed = feed.NewStore(kv, logger)
	s.pager = gallery.NewPager(cfg.Catalog, cfg.BatchSize, s.surface, logger)
	s.modal = modal.New(s.loop, s.surface)
	s.counters = counter.New(s.loop, s.surface, cfg.CounterSteps, cfg.CounterInterval)
	s.submit = submit.NewController(submit.Deps{
		Loop:        s.loop,
		Surface:     s.surface,
		Form:        s.form,
		Drafts:      s.drafts,
		Feed:        s.feed,
		Logger:      logger,
		Config:      cfg.Submit,
		OnSubmitted: func(feed.Submission) { s.refreshFeed() },
	})
	return s
}

// Init wires the page and renders its initial state. Only the first call
// has any effect, so listeners are never bound twice.
func (s *Session) Init() {
	s.loop.Do(func() {
		if s.initialized {
			return
		}
		s.initialized = true

		s.submit.Bind(s.dispatcher)
		s.modal.Bind(s.dispatcher)
		s.bindGallery()

		s.submit.Stamp()
		s.restoreDraft()
		s.refreshFeed()
		s.pager.Init()
		s.pager.RevealNext()
		s.recordVisit()
	})
}

// Initialized reports whether Init has run.
func (s *Session) Initialized() bool {
	var ok bool
	s.loop.Do(func() { ok = s.initialized })
	return ok
}

// Dispatch delivers a UI event to the page's listeners.
func (s *Session) Dispatch(ev eventloop.Event) {
	s.loop.Do(func() {
		s.dispatcher.Emit(ev)
	})
}

func (s *Session) bindGallery() {
	s.dispatcher.On(eventloop.EventClick, func(ev eventloop.Event) {
		switch ev.Target {
		case ui.LoadMore:
			s.pager.RevealNext()
		case ui.GalleryItem:
			i, err := strconv.Atoi(ev.Value)
			if err != nil {
				return
			}
			if tile, ok := s.pager.Tile(i); ok {
				s.modal.Open(tile)
			}
		}
	})
	s.dispatcher.On(eventloop.EventError, func(ev eventloop.Event) {
		if ev.Target != ui.GalleryItem {
			return
		}
		i, err := strconv.Atoi(ev.Value)
		if err != nil {
			return
		}
		cause := errors.New("image failed to load")
		if ev.Key != "" {
			cause = fmt.Errorf("image failed to load: %s", ev.Key)
		}
		s.pager.ImageFailed(i, cause)
	})
}

// restoreDraft replays saved values as input so they flow through the same
// path as typing.
func (s *Session) restoreDraft() {
	saved := s.drafts.LoadAll()
	for _, id := range s.form.DraftIDs() {
		if v := saved[id]; v != "" {
			s.dispatcher.Emit(eventloop.Event{Name: eventloop.EventInput, Target: id, Value: v})
		}
	}
}

func (s *Session) refreshFeed() {
	n := s.feed.Len()
	s.cards = feed.Cards(s.feed.Recent(feed.DisplayLimit), s.loop.Now())
	s.stats = feed.StatsFor(n)
	s.counters.AnimateTo(ui.MemberCount, s.counters.Shown(ui.MemberCount), s.stats.Members)
	s.counters.AnimateTo(ui.SubmissionCount, s.counters.Shown(ui.SubmissionCount), s.stats.Submissions)
}

func (s *Session) recordVisit() {
	if raw, err := s.kv.Get(LastVisitKey); err == nil {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			s.lastVisit = t
		} else {
			s.logger.Warnf("ignoring unreadable last visit %q: %v", raw, err)
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.logger.Warnf("reading last visit: %v", err)
	}
	if err := s.kv.Set(LastVisitKey, s.loop.Now().UTC().Format(time.RFC3339)); err != nil {
		s.logger.Errorf("recording visit: %v", err)
	}
}

// Tile returns the revealed gallery item at index.
func (s *Session) Tile(index int) (gallery.Tile, bool) {
	var (
		tile gallery.Tile
		ok   bool
	)
	s.loop.Do(func() { tile, ok = s.pager.Tile(index) })
	return tile, ok
}
