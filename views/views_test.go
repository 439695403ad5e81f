package views

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/pokefans/eventloop"
	"github.com/eringen/pokefans/eventloop/eventlooptest"
	"github.com/eringen/pokefans/gallery"
	"github.com/eringen/pokefans/pokedex"
	"github.com/eringen/pokefans/session"
	"github.com/eringen/pokefans/storage"
	"github.com/eringen/pokefans/submit"
	"github.com/eringen/pokefans/ui"
	"github.com/eringen/pokefans/validate"
)

var site = SiteConfig{Name: "PokéFans", URL: "http://localhost:3000"}

func renderDoc(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func newSession(t *testing.T) (*session.Session, *eventlooptest.Scheduler) {
	t.Helper()
	l := log.New("test")
	l.SetOutput(io.Discard)
	sched := eventlooptest.New(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	s := session.New("page-1", storage.NewMemory(), sched, session.Config{}, l)
	s.Init()
	return s, sched
}

func TestCommunityPageRendersInitialState(t *testing.T) {
	s, _ := newSession(t)
	doc := renderDoc(t, Community(site, PageMeta{Title: "Community"}, s.Snapshot(), "tok"))

	assert.Equal(t, "Community | PokéFans", doc.Find("title").Text())
	token, _ := doc.Find(`meta[name="csrf-token"]`).Attr("content")
	assert.Equal(t, "tok", token)

	root := doc.Find("#" + RootID)
	events, _ := root.Attr("data-events")
	assert.Equal(t, "/community/page-1/events/", events)

	assert.Equal(t, gallery.BatchSize, doc.Find("#fanart-grid img").Length())
	_, hidden := doc.Find("#load-more").Attr("hidden")
	assert.False(t, hidden, "load more should be visible")
	_, hidden = doc.Find("#gallery-modal").Attr("hidden")
	assert.True(t, hidden, "modal should start hidden")
	assert.Equal(t, "No submissions yet. Be the first trainer to join!", doc.Find(".feed-empty").Text())
	assert.Equal(t, len(pokedex.Names())+1, doc.Find("#favoriteType option").Length())
}

func TestFragmentShowsFieldErrors(t *testing.T) {
	s, _ := newSession(t)
	s.Dispatch(eventloop.Event{Name: eventloop.EventInput, Target: submit.FieldEmail, Value: "nope"})
	s.Dispatch(eventloop.Event{Name: eventloop.EventSubmit, Target: ui.CommunityForm})

	doc := renderDoc(t, CommunityFragment(s.Snapshot()))

	assert.Equal(t, validate.MsgRequired, doc.Find("#trainerName-error").Text())
	assert.Equal(t, validate.MsgEmail, doc.Find("#email-error").Text())
	invalid, _ := doc.Find("#email").Attr("aria-invalid")
	assert.Equal(t, "true", invalid)
	val, _ := doc.Find("#email").Attr("value")
	assert.Equal(t, "nope", val)
	assert.Equal(t, submit.MsgInvalid, doc.Find("#form-error").Text())
}

func TestFragmentWhileSubmitting(t *testing.T) {
	s, sched := newSession(t)
	for field, v := range map[string]string{
		submit.FieldTrainerName:  "Misty",
		submit.FieldFavoriteType: "Water",
		submit.FieldMessage:      "<b>Hi</b>",
	} {
		s.Dispatch(eventloop.Event{Name: eventloop.EventInput, Target: field, Value: v})
	}
	s.Dispatch(eventloop.Event{Name: eventloop.EventSubmit})

	doc := renderDoc(t, CommunityFragment(s.Snapshot()))
	_, disabled := doc.Find("#submit-btn").Attr("disabled")
	assert.True(t, disabled)
	pending, _ := doc.Find(".community-page").Attr("data-pending")
	assert.Equal(t, "true", pending)

	sched.Advance(submit.DefaultSubmitDelay)
	doc = renderDoc(t, CommunityFragment(s.Snapshot()))
	cards := doc.Find(".feed-card")
	require.Equal(t, 1, cards.Length())
	assert.Equal(t, "Misty", cards.Find(".feed-name").Text())
	assert.Equal(t, "<b>Hi</b>", cards.Find(".feed-message").Text(), "message must be escaped")
	assert.Equal(t, submit.MsgSuccess, doc.Find("#form-success").Text())
}

func TestModalFragment(t *testing.T) {
	s, _ := newSession(t)
	s.Dispatch(eventloop.Event{Name: eventloop.EventClick, Target: ui.GalleryItem, Value: "2"})

	doc := renderDoc(t, CommunityFragment(s.Snapshot()))
	modal := doc.Find("#gallery-modal")
	_, hidden := modal.Attr("hidden")
	assert.False(t, hidden)
	assert.True(t, modal.HasClass("active"))
	assert.True(t, doc.Find(".community-page").HasClass("modal-open"))
	idx, _ := doc.Find("#modal-body").Attr("data-index")
	assert.Equal(t, "2", idx)
}

func TestTypeCalculator(t *testing.T) {
	doc := renderDoc(t, TypeCalculator(site, PageMeta{Title: "Types"}, Calculator{
		Attackers: pokedex.Attackers(),
		Defenders: pokedex.Names(),
		Attacker:  "Electric",
		Defender:  "Ground",
	}))
	result := doc.Find("#type-result")
	assert.Contains(t, result.Text(), "No Effect (0x damage)")
	assert.True(t, result.HasClass("type-result--none"))
	sel, _ := doc.Find(`#attacker option[selected]`).Attr("value")
	assert.Equal(t, "Electric", sel)

	doc = renderDoc(t, TypeResult(pokedex.Calculate("", "Fire")))
	assert.Equal(t, pokedex.PromptVerdict.Message, doc.Find("#type-result").Text())
}
