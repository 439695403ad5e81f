// Package modal drives the single shared image viewer overlay.
package modal

import (
	"strconv"
	"time"

	"github.com/eringen/pokefans/eventloop"
	"github.com/eringen/pokefans/gallery"
	"github.com/eringen/pokefans/ui"
)

const (
	// FocusDelay is how long after opening the close control takes focus.
	FocusDelay = 100 * time.Millisecond

	ActiveClass   = "active"
	NoScrollClass = "modal-open"
	EscapeKey     = "Escape"
)

// Controller is the page's one modal. Opening it again replaces the content
// in place; it never stacks a second overlay.
type Controller struct {
	loop    *eventloop.Loop
	surface *ui.Surface

	open    bool
	current gallery.Tile
	focus   *eventloop.Handle
}

// New returns a closed modal bound to surface.
func New(loop *eventloop.Loop, surface *ui.Surface) *Controller {
	return &Controller{loop: loop, surface: surface}
}

// Bind registers the dismissal triggers.
func (m *Controller) Bind(d *eventloop.Dispatcher) {
	d.On(eventloop.EventClick, func(ev eventloop.Event) {
		switch ev.Target {
		case ui.ModalClose, ui.Modal:
			// ui.Modal is the backdrop; clicks on the content panel
			// arrive as ui.ModalContent and are ignored.
			if m.open {
				m.Close()
			}
		}
	})
	d.On(eventloop.EventKeyDown, func(ev eventloop.Event) {
		if ev.Key == EscapeKey && m.open {
			m.Close()
		}
	})
}

// Open shows tile in the modal.
func (m *Controller) Open(tile gallery.Tile) {
	overlay := m.surface.Get(ui.Modal)
	if overlay == nil {
		return
	}
	m.current = tile
	m.surface.Get(ui.ModalBody).SetText(tile.Alt)
	m.surface.Get(ui.ModalBody).SetAttr("data-index", strconv.Itoa(tile.Index))
	overlay.Show()
	overlay.AddClass(ActiveClass)
	m.surface.Get(ui.Body).AddClass(NoScrollClass)

	if m.open {
		return
	}
	m.open = true
	m.focus.Cancel()
	m.focus = m.loop.After(FocusDelay, func() {
		m.surface.Focus(ui.ModalClose)
	})
}

// Close hides the modal and gives scrolling back to the page.
func (m *Controller) Close() {
	m.focus.Cancel()
	m.focus = nil
	m.open = false
	m.current = gallery.Tile{}

	overlay := m.surface.Get(ui.Modal)
	overlay.Hide()
	overlay.RemoveClass(ActiveClass)
	m.surface.Get(ui.ModalBody).SetText("")
	m.surface.Get(ui.ModalBody).SetAttr("data-index", "")
	m.surface.Get(ui.Body).RemoveClass(NoScrollClass)
	if m.surface.Focused() == ui.ModalClose {
		m.surface.Blur()
	}
}

// IsOpen reports whether the modal is showing.
func (m *Controller) IsOpen() bool {
	return m.open
}

// Current returns the tile on display.
func (m *Controller) Current() (gallery.Tile, bool) {
	return m.current, m.open
}
