package pokefans

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pokefans/session"
)

type pageEntry struct {
	visitor string
	session *session.Session
}

// PageCache keeps the most recently used page sessions in memory. A page
// session that falls out of the cache is gone; its page must be reloaded.
type PageCache struct {
	pages  *lru.Cache[string, pageEntry]
	logger echo.Logger
}

// NewPageCache creates a PageCache holding at most size sessions.
func NewPageCache(size int, logger echo.Logger) (*PageCache, error) {
	c := &PageCache{logger: logger}
	pages, err := lru.NewWithEvict(size, c.evicted)
	if err != nil {
		return nil, fmt.Errorf("page cache: %w", err)
	}
	c.pages = pages
	return c, nil
}

func (c *PageCache) evicted(id string, _ pageEntry) {
	if c.logger != nil {
		c.logger.Debugf("page session %s evicted", id)
	}
}

// Add stores s as a page owned by visitor.
func (c *PageCache) Add(visitor string, s *session.Session) {
	c.pages.Add(s.ID, pageEntry{visitor: visitor, session: s})
}

// Get returns the page session id if it exists and belongs to visitor.
func (c *PageCache) Get(id, visitor string) (*session.Session, bool) {
	e, ok := c.pages.Get(id)
	if !ok || e.visitor != visitor {
		return nil, false
	}
	return e.session, true
}

// Len returns the number of live page sessions.
func (c *PageCache) Len() int {
	return c.pages.Len()
}
