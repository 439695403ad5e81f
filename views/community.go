package views

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/eringen/pokefans/gallery"
	"github.com/eringen/pokefans/pokedex"
	"github.com/eringen/pokefans/session"
	"github.com/eringen/pokefans/submit"
	"github.com/eringen/pokefans/ui"
)

// RootID is the container whose content the client swaps with fragments.
const RootID = "community-root"

// Community renders the full community page for a page session.
func Community(site SiteConfig, meta PageMeta, snap session.Snapshot, csrf string) templ.Component {
	return component(func(m *markup) {
		layout(m, site, meta, csrf, func(m *markup) {
			m.open("div", templ.Attributes{
				"id":            RootID,
				"data-events":   PagePath(snap.ID, "events"),
				"data-fragment": PagePath(snap.ID, "fragment"),
			})
			fragment(m, snap)
			m.close("div")
		})
	})
}

// CommunityFragment renders the swappable content of the community page.
func CommunityFragment(snap session.Snapshot) templ.Component {
	return component(func(m *markup) {
		fragment(m, snap)
	})
}

// state builds attributes for a surface element: its ID, its classes after
// base, visibility, disabled and aria flags, and autofocus when focused.
func state(s *ui.Surface, id, base string, extra templ.Attributes) templ.Attributes {
	e := s.Get(id)
	attrs := templ.Attributes{"id": id}
	classes := append([]string{base}, e.Classes()...)
	if c := classList(classes...); c != "" {
		attrs["class"] = c
	}
	attrs["hidden"] = e.Hidden()
	attrs["disabled"] = e.Disabled()
	for _, name := range []string{"aria-invalid", "aria-busy"} {
		if v := e.Attr(name); v != "" {
			attrs[name] = v
		}
	}
	if s.Focused() == id {
		attrs["autofocus"] = true
	}
	for k, v := range extra {
		attrs[k] = v
	}
	return attrs
}

func fragment(m *markup, snap session.Snapshot) {
	s := snap.Surface
	m.open("div", state(s, ui.Body, "community-page", templ.Attributes{
		"data-pending": strconv.FormatBool(snap.Pending),
	}))

	m.open("section", templ.Attributes{"class": "community-hero"})
	m.element("h1", nil, "Join the PokéFans Community")
	m.open("p", templ.Attributes{"class": "community-stats"})
	m.element("span", state(s, ui.MemberCount, "stat-value", nil), s.Get(ui.MemberCount).Text())
	m.text(" members · ")
	m.element("span", state(s, ui.SubmissionCount, "stat-value", nil), s.Get(ui.SubmissionCount).Text())
	m.text(" submissions")
	m.close("p")
	if !snap.LastVisit.IsZero() {
		m.element("p", templ.Attributes{"class": "last-visit"},
			"Welcome back, trainer! Your last visit was "+humanize.RelTime(snap.LastVisit, snap.Now, "ago", "from now")+".")
	}
	m.close("section")

	form(m, snap)
	feedSection(m, snap)
	gallerySection(m, snap)
	modal(m, snap)

	m.close("div")
}

func form(m *markup, snap session.Snapshot) {
	s := snap.Surface
	m.open("section", templ.Attributes{"class": "community-form"})
	m.element("h2", nil, "Tell us about yourself")
	m.open("form", state(s, ui.CommunityForm, "form", templ.Attributes{
		"data-on":    "submit",
		"novalidate": true,
		"method":     "post",
	}))

	m.element("div", state(s, ui.FormError, "form-banner form-banner--error", templ.Attributes{"role": "alert"}),
		s.Get(ui.FormError).Text())
	m.element("div", state(s, ui.FormSuccess, "form-banner form-banner--success", templ.Attributes{"role": "status"}),
		s.Get(ui.FormSuccess).Text())

	textField(m, s, submit.FieldTrainerName, "Trainer name", "text", templ.Attributes{
		"required": true, "autocomplete": "nickname", "placeholder": "Ash Ketchum",
	})
	textField(m, s, submit.FieldEmail, "Email (optional)", "email", templ.Attributes{
		"autocomplete": "email", "placeholder": "ash@pallet.town",
	})

	m.open("div", templ.Attributes{"class": "field"})
	m.element("label", templ.Attributes{"for": submit.FieldFavoriteType}, "Favorite type")
	m.open("select", state(s, submit.FieldFavoriteType, "input", templ.Attributes{
		"name": submit.FieldFavoriteType, "data-on": "input blur", "required": true,
		"aria-describedby": ui.ErrorSlot(submit.FieldFavoriteType),
	}))
	current := s.Get(submit.FieldFavoriteType).Value()
	m.element("option", templ.Attributes{"value": "", "selected": current == ""}, "Choose a type")
	for _, name := range pokedex.Names() {
		m.element("option", templ.Attributes{"value": name, "selected": current == name}, pokedex.Icon(name)+" "+name)
	}
	m.close("select")
	errorSlot(m, s, submit.FieldFavoriteType)
	m.close("div")

	m.open("div", templ.Attributes{"class": "field"})
	m.element("label", templ.Attributes{"for": submit.FieldMessage}, "Message")
	m.element("textarea", state(s, submit.FieldMessage, "input", templ.Attributes{
		"name": submit.FieldMessage, "data-on": "input", "rows": "4",
		"maxlength": strconv.Itoa(submit.MessageLimit),
	}), s.Get(submit.FieldMessage).Value())
	m.open("p", templ.Attributes{"class": "field-hint"})
	m.element("span", state(s, ui.MessageCounter, "", nil), counterText(s.Get(ui.MessageCounter).Text()))
	m.text(" / " + strconv.Itoa(submit.MessageLimit))
	m.close("p")
	m.close("div")

	m.open("input", templ.Attributes{
		"type": "hidden", "id": submit.FieldTimestamp, "name": submit.FieldTimestamp,
		"value": s.Get(submit.FieldTimestamp).Value(),
	})

	m.open("button", state(s, ui.SubmitButton, "button button--primary", templ.Attributes{"type": "submit"}))
	label := s.Get(ui.SubmitLabel).Text()
	if label == "" {
		label = submit.LabelIdle
	}
	m.element("span", state(s, ui.SubmitLabel, "", nil), label)
	m.element("span", state(s, ui.SubmitSpinner, "spinner", templ.Attributes{"aria-hidden": "true"}),
		s.Get(ui.SubmitSpinner).Text())
	m.close("button")

	m.close("form")
	m.close("section")
}

func counterText(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func textField(m *markup, s *ui.Surface, id, label, typ string, extra templ.Attributes) {
	m.open("div", templ.Attributes{"class": "field"})
	m.element("label", templ.Attributes{"for": id}, label)
	attrs := templ.Attributes{
		"type": typ, "name": id, "value": s.Get(id).Value(), "data-on": "input blur",
		"aria-describedby": ui.ErrorSlot(id),
	}
	for k, v := range extra {
		attrs[k] = v
	}
	m.open("input", state(s, id, "input", attrs))
	errorSlot(m, s, id)
	m.close("div")
}

func errorSlot(m *markup, s *ui.Surface, field string) {
	id := ui.ErrorSlot(field)
	m.element("span", state(s, id, "field-error", templ.Attributes{"role": "alert"}), s.Get(id).Text())
}

func feedSection(m *markup, snap session.Snapshot) {
	m.open("section", templ.Attributes{"class": "community-feed"})
	m.element("h2", nil, "Recent trainers")
	m.open("div", state(snap.Surface, ui.Feed, "feed", nil))
	if len(snap.Cards) == 0 {
		m.element("p", templ.Attributes{"class": "feed-empty"}, "No submissions yet. Be the first trainer to join!")
	}
	for _, c := range snap.Cards {
		m.open("article", templ.Attributes{"class": "feed-card", "data-id": c.ID})
		m.open("header", nil)
		m.element("span", templ.Attributes{"class": "feed-type", "title": c.TypeName}, c.TypeIcon)
		m.element("strong", templ.Attributes{"class": "feed-name"}, c.TrainerName)
		m.close("header")
		if c.Excerpt != "" {
			m.element("p", templ.Attributes{"class": "feed-message"}, c.Excerpt)
		}
		when := c.Date
		if c.Ago != "" {
			when += " · " + c.Ago
		}
		m.element("time", templ.Attributes{"class": "feed-date"}, when)
		m.close("article")
	}
	m.close("div")
	m.close("section")
}

func gallerySection(m *markup, snap session.Snapshot) {
	s := snap.Surface
	m.open("section", templ.Attributes{"class": "community-gallery"})
	m.element("h2", nil, "Fan art")
	m.open("div", state(s, ui.Gallery, "gallery-grid", nil))
	for _, tile := range snap.Tiles {
		idx := strconv.Itoa(tile.Index)
		cls := "gallery-item"
		if tile.Degraded {
			cls += " " + gallery.DegradedClass
		}
		m.open("figure", templ.Attributes{"class": cls})
		m.open("img", templ.Attributes{
			"src": TileSrc(snap.ID, tile), "alt": tile.Alt, "loading": "lazy",
			"width": "300", "height": "300",
			"data-on": "click error", "data-target": ui.GalleryItem, "data-value": idx,
			"tabindex": "0",
		})
		m.open("figcaption", nil)
		m.element("span", templ.Attributes{"class": "gallery-artist"}, "by "+tile.Artist)
		m.element("span", templ.Attributes{"class": "gallery-likes"}, "♥ "+humanize.Comma(int64(tile.Likes)))
		m.close("figcaption")
		m.close("figure")
	}
	m.close("div")
	m.element("button", state(s, ui.LoadMore, "button", templ.Attributes{
		"type": "button", "data-on": "click",
	}), "Load more fan art")
	m.close("section")
}

func modal(m *markup, snap session.Snapshot) {
	s := snap.Surface
	m.open("div", state(s, ui.Modal, "modal", templ.Attributes{
		"data-on": "click", "role": "dialog", "aria-modal": "true",
	}))
	m.open("div", state(s, ui.ModalContent, "modal-content", templ.Attributes{"data-on": "click"}))
	m.element("button", state(s, ui.ModalClose, "modal-close", templ.Attributes{
		"type": "button", "data-on": "click", "aria-label": "Close",
	}), "×")
	m.open("div", state(s, ui.ModalBody, "modal-body", templ.Attributes{
		"data-index": s.Get(ui.ModalBody).Attr("data-index"),
	}))
	if snap.ModalOpen {
		src := snap.Modal.Src
		if snap.Modal.Degraded {
			src = gallery.PlaceholderSrc
		}
		m.open("img", templ.Attributes{"src": src, "alt": snap.Modal.Alt})
		m.element("p", templ.Attributes{"class": "modal-caption"}, s.Get(ui.ModalBody).Text())
		m.element("p", templ.Attributes{"class": "modal-artist"},
			"by "+snap.Modal.Artist+" · ♥ "+humanize.Comma(int64(snap.Modal.Likes)))
	}
	m.close("div")
	m.close("div")
	m.close("div")
}
