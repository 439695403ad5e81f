// Package ui models the page's markup as a set of element handles addressed by
// logical IDs. An ID that is not present resolves to a nil *Element, and every
// Element method is a no-op on nil, so a missing element disables the feature
// that needs it without failing anything else.
package ui

import (
	"maps"
	"sort"
)

// Logical element IDs rendered by the community page.
const (
	Body            = "body"
	CommunityForm   = "communityForm"
	SubmitButton    = "submit-btn"
	SubmitLabel     = "submit-label"
	SubmitSpinner   = "submit-spinner"
	FormError       = "form-error"
	FormSuccess     = "form-success"
	MessageCounter  = "message-count"
	Feed            = "submissions-feed"
	MemberCount     = "member-count"
	SubmissionCount = "submission-count"
	Gallery         = "fanart-grid"
	GalleryItem     = "gallery-item"
	LoadMore        = "load-more"
	Modal           = "gallery-modal"
	ModalContent    = "modal-content"
	ModalBody       = "modal-body"
	ModalClose      = "modal-close"
)

// ErrorSlot is the ID of the inline error element for a form field.
func ErrorSlot(field string) string {
	return field + "-error"
}

// Element is the mutable state of one element.
type Element struct {
	id       string
	text     string
	value    string
	hidden   bool
	disabled bool
	classes  map[string]bool
	attrs    map[string]string
}

func newElement(id string) *Element {
	return &Element{id: id, classes: map[string]bool{}, attrs: map[string]string{}}
}

func (e *Element) ID() string {
	if e == nil {
		return ""
	}
	return e.id
}

func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return e.text
}

func (e *Element) SetText(s string) {
	if e == nil {
		return
	}
	e.text = s
}

func (e *Element) Value() string {
	if e == nil {
		return ""
	}
	return e.value
}

func (e *Element) SetValue(s string) {
	if e == nil {
		return
	}
	e.value = s
}

func (e *Element) Hidden() bool {
	return e == nil || e.hidden
}

func (e *Element) Show() {
	if e == nil {
		return
	}
	e.hidden = false
}

func (e *Element) Hide() {
	if e == nil {
		return
	}
	e.hidden = true
}

func (e *Element) Disabled() bool {
	return e != nil && e.disabled
}

func (e *Element) SetDisabled(v bool) {
	if e == nil {
		return
	}
	e.disabled = v
}

func (e *Element) HasClass(c string) bool {
	return e != nil && e.classes[c]
}

func (e *Element) AddClass(c string) {
	if e == nil {
		return
	}
	e.classes[c] = true
}

func (e *Element) RemoveClass(c string) {
	if e == nil {
		return
	}
	delete(e.classes, c)
}

// Classes returns the element's classes in sorted order.
func (e *Element) Classes() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.classes))
	for c := range e.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (e *Element) Attr(name string) string {
	if e == nil {
		return ""
	}
	return e.attrs[name]
}

func (e *Element) SetAttr(name, value string) {
	if e == nil {
		return
	}
	e.attrs[name] = value
}

func (e *Element) clone() *Element {
	c := *e
	c.classes = maps.Clone(e.classes)
	c.attrs = maps.Clone(e.attrs)
	return &c
}

// Surface is the set of elements present on a page, plus focus.
type Surface struct {
	elements map[string]*Element
	focused  string
}

// NewSurface creates a surface containing exactly the given IDs.
func NewSurface(ids ...string) *Surface {
	s := &Surface{elements: make(map[string]*Element, len(ids))}
	for _, id := range ids {
		s.elements[id] = newElement(id)
	}
	return s
}

// Get resolves id to its element, or nil when the page has no such element.
func (s *Surface) Get(id string) *Element {
	if s == nil {
		return nil
	}
	return s.elements[id]
}

// Has reports whether id is present.
func (s *Surface) Has(id string) bool {
	return s.Get(id) != nil
}

// Focus moves focus to id. Unknown IDs leave focus unchanged.
func (s *Surface) Focus(id string) {
	if s.Get(id) == nil {
		return
	}
	s.focused = id
}

// Blur clears focus.
func (s *Surface) Blur() {
	if s == nil {
		return
	}
	s.focused = ""
}

// Focused returns the ID holding focus, if any.
func (s *Surface) Focused() string {
	if s == nil {
		return ""
	}
	return s.focused
}

// Clone returns a deep copy, used to render a consistent snapshot.
func (s *Surface) Clone() *Surface {
	if s == nil {
		return nil
	}
	c := &Surface{elements: make(map[string]*Element, len(s.elements)), focused: s.focused}
	for id, e := range s.elements {
		c.elements[id] = e.clone()
	}
	return c
}

// CommunityPage returns a surface holding every element the community page
// renders, including an input and an error slot for each form field.
func CommunityPage(fields ...string) *Surface {
	ids := []string{
		Body, CommunityForm, SubmitButton, SubmitLabel, SubmitSpinner,
		FormError, FormSuccess, MessageCounter, Feed, MemberCount,
		SubmissionCount, Gallery, LoadMore, Modal, ModalContent,
		ModalBody, ModalClose,
	}
	for _, f := range fields {
		ids = append(ids, f, ErrorSlot(f))
	}
	s := NewSurface(ids...)
	for _, id := range []string{SubmitSpinner, FormError, FormSuccess, Modal} {
		s.Get(id).Hide()
	}
	for _, f := range fields {
		s.Get(ErrorSlot(f)).Hide()
	}
	return s
}
