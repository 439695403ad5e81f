package pokefans

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/pokefans/eventloop/eventlooptest"
	"github.com/eringen/pokefans/gallery"
	"github.com/eringen/pokefans/submit"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type testSite struct {
	app   *App
	ts    *httptest.Server
	sched *eventlooptest.Scheduler
}

// imageServer serves a 600x400 PNG for every path except /missing.
func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 600, 400))
	for x := range 600 {
		for y := range 400 {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0x80, 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestSite(t *testing.T, cfg SiteConfig) *testSite {
	t.Helper()
	images := imageServer(t)
	catalog := gallery.DefaultCatalog()
	for i := range catalog {
		catalog[i].Src = images.URL + "/art/" + catalog[i].Artist
	}
	catalog[1].Src = images.URL + "/missing"

	cfg.SessionSecret = "test-secret"
	cfg.DatabasePath = filepath.Join(t.TempDir(), "community.db")
	sched := eventlooptest.New(epoch)
	app := New(cfg, DefaultViews(),
		WithScheduler(sched),
		WithClock(fakeclock.NewFakeClock(epoch)),
		WithCatalog(catalog),
		WithHTTPClient(images.Client()),
	)
	app.Echo.Logger.SetOutput(io.Discard)
	app.Echo.Logger.SetLevel(log.OFF)
	require.NoError(t, app.Setup())
	t.Cleanup(func() { app.Close() })

	ts := httptest.NewServer(app.Echo)
	t.Cleanup(ts.Close)
	return &testSite{app: app, ts: ts, sched: sched}
}

type browser struct {
	t      *testing.T
	site   *testSite
	client *http.Client
	token  string
	events string
	frag   string
}

func (s *testSite) newVisitor(t *testing.T) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, site: s, client: &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

func parse(t *testing.T, resp *http.Response) *goquery.Document {
	t.Helper()
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

// load opens a fresh community page and remembers its endpoints.
func (v *browser) load() *goquery.Document {
	v.t.Helper()
	resp, err := v.client.Get(v.site.ts.URL + "/community/")
	require.NoError(v.t, err)
	require.Equal(v.t, http.StatusOK, resp.StatusCode)
	doc := parse(v.t, resp)
	v.token, _ = doc.Find(`meta[name="csrf-token"]`).Attr("content")
	v.events, _ = doc.Find("#community-root").Attr("data-events")
	v.frag, _ = doc.Find("#community-root").Attr("data-fragment")
	require.NotEmpty(v.t, v.events)
	return doc
}

func (v *browser) post(name, target, value string) *http.Response {
	v.t.Helper()
	form := url.Values{"name": {name}, "target": {target}, "value": {value}}
	req, err := http.NewRequest(http.MethodPost, v.site.ts.URL+v.events, strings.NewReader(form.Encode()))
	require.NoError(v.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", v.token)
	resp, err := v.client.Do(req)
	require.NoError(v.t, err)
	return resp
}

func (v *browser) send(name, target, value string) *goquery.Document {
	v.t.Helper()
	resp := v.post(name, target, value)
	require.Equal(v.t, http.StatusOK, resp.StatusCode)
	return parse(v.t, resp)
}

func (v *browser) fragment() *goquery.Document {
	v.t.Helper()
	resp, err := v.client.Get(v.site.ts.URL + v.frag)
	require.NoError(v.t, err)
	require.Equal(v.t, http.StatusOK, resp.StatusCode)
	return parse(v.t, resp)
}

func TestRootRedirectsToCommunity(t *testing.T) {
	s := newTestSite(t, SiteConfig{})
	v := s.newVisitor(t)

	resp, err := v.client.Get(s.ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/community/", resp.Header.Get("Location"))
}

func TestCommunityPageRenders(t *testing.T) {
	s := newTestSite(t, SiteConfig{})
	v := s.newVisitor(t)
	doc := v.load()

	assert.Equal(t, "Community | PokéFans", doc.Find("title").Text())
	assert.Equal(t, gallery.BatchSize, doc.Find("#fanart-grid img").Length())
	assert.Equal(t, 1, doc.Find("#communityForm").Length())
	assert.NotEmpty(t, v.token)
	pending, _ := doc.Find(".community-page").Attr("data-pending")
	assert.Equal(t, "true", pending, "stat counters animate after load")

	s.sched.Flush()
	doc = v.fragment()
	assert.Equal(t, "1,247", doc.Find("#member-count").Text())
	assert.Equal(t, "0", doc.Find("#submission-count").Text())
	pending, _ = doc.Find(".community-page").Attr("data-pending")
	assert.Equal(t, "false", pending)
}

func TestSubmissionOverHTTP(t *testing.T) {
	s := newTestSite(t, SiteConfig{})
	v := s.newVisitor(t)
	v.load()

	v.send("input", submit.FieldTrainerName, "Misty")
	v.send("input", submit.FieldEmail, "misty@example.com")
	v.send("input", submit.FieldFavoriteType, "Water")
	v.send("input", submit.FieldMessage, "Hi")

	resp := v.post("submit", "communityForm", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Pending"))
	doc := parse(t, resp)
	_, disabled := doc.Find("#submit-btn").Attr("disabled")
	assert.True(t, disabled, "submit control should be disabled while in flight")

	// duplicate submit while in flight
	v.send("submit", "communityForm", "")

	s.sched.Advance(s.app.Config.SubmitDelay)
	doc = v.fragment()
	cards := doc.Find(".feed-card")
	require.Equal(t, 1, cards.Length())
	assert.Equal(t, "Misty", cards.Find(".feed-name").Text())
	assert.Equal(t, "💧", cards.Find(".feed-type").Text())
	val, _ := doc.Find("#trainerName").Attr("value")
	assert.Empty(t, val)

	doc = v.load()
	assert.Equal(t, 1, doc.Find(".feed-card").Length(), "feed should persist across page loads")
	val, _ = doc.Find("#trainerName").Attr("value")
	assert.Empty(t, val, "draft should be cleared after a submission")
	assert.NotEmpty(t, doc.Find(".last-visit").Text())
}

func TestDraftSurvivesReload(t *testing.T) {
	s := newTestSite(t, SiteConfig{})
	v := s.newVisitor(t)
	v.load()
	v.send("input", submit.FieldTrainerName, "Br")

	doc := v.load()
	val, _ := doc.Find("#trainerName").Attr("value")
	assert.Equal(t, "Br", val)
	assert.Equal(t, 0, doc.Find(".feed-card").Length())

	other := s.newVisitor(t)
	doc = other.load()
	val, _ = doc.Find("#trainerName").Attr("value")
	assert.Empty(t, val, "drafts are per visitor")
}

func TestPageSessionIsPrivate(t *testing.T) {
	s := newTestSite(t, SiteConfig{})
	owner := s.newVisitor(t)
	owner.load()

	stranger := s.newVisitor(t)
	stranger.load()
	resp, err := stranger.client.Get(s.ts.URL + owner.frag)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = owner.client.Get(s.ts.URL + "/community/does-not-exist/fragment/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEventRequiresCSRFToken(t *testing.T) {
	s := newTestSite(t, SiteConfig{})
	v := s.newVisitor(t)
	v.load()
	v.token = "wrong"

	resp := v.post("input", submit.FieldTrainerName, "Ash")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSubmitIsRateLimited(t *testing.T) {
	s := newTestSite(t, SiteConfig{SubmitLimit: 1})
	v := s.newVisitor(t)
	v.load()

	v.send("submit", "communityForm", "")
	resp := v.post("submit", "communityForm", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestGalleryOverHTTP(t *testing.T) {
	s := newTestSite(t, SiteConfig{})
	v := s.newVisitor(t)
	v.load()

	base := strings.TrimSuffix(v.frag, "fragment/")
	resp, err := v.client.Get(s.ts.URL + base + "gallery/0/thumb")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	thumb, _, err := image.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 300, thumb.Bounds().Dx())
	assert.Equal(t, 200, thumb.Bounds().Dy())

	resp, err = v.client.Get(s.ts.URL + base + "gallery/1/thumb")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	doc := v.fragment()
	src, _ := doc.Find("#fanart-grid figure").Eq(1).Find("img").Attr("src")
	assert.Equal(t, gallery.PlaceholderSrc, src)
	assert.True(t, doc.Find("#fanart-grid figure").Eq(1).HasClass(gallery.DegradedClass))
	assert.False(t, doc.Find("#fanart-grid figure").Eq(0).HasClass(gallery.DegradedClass))

	doc = v.send("click", "load-more", "")
	assert.Equal(t, 2*gallery.BatchSize, doc.Find("#fanart-grid img").Length())
	doc = v.send("click", "load-more", "")
	assert.Equal(t, gallery.CatalogSize, doc.Find("#fanart-grid img").Length())
	_, hidden := doc.Find("#load-more").Attr("hidden")
	assert.True(t, hidden)

	doc = v.send("click", "gallery-item", "4")
	_, hidden = doc.Find("#gallery-modal").Attr("hidden")
	assert.False(t, hidden)
	doc = v.send("click", "gallery-modal", "")
	_, hidden = doc.Find("#gallery-modal").Attr("hidden")
	assert.True(t, hidden)

	resp, err = v.client.Get(s.ts.URL + gallery.PlaceholderSrc)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTypeCalculatorRoutes(t *testing.T) {
	s := newTestSite(t, SiteConfig{})
	v := s.newVisitor(t)

	resp, err := v.client.Get(s.ts.URL + "/types/?attacker=Fire&defender=Grass")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := parse(t, resp)
	assert.Contains(t, doc.Find("#type-result").Text(), "Super Effective! (2x damage)")

	resp, err = v.client.Get(s.ts.URL + "/types/effectiveness/?attacker=Water&defender=Pikachu")
	require.NoError(t, err)
	doc = parse(t, resp)
	assert.Equal(t, "Select both types to see effectiveness...", doc.Find("#type-result").Text())

	resp, err = v.client.Get(s.ts.URL + "/types/effectiveness/?attacker=Dragon&defender=Fairy")
	require.NoError(t, err)
	doc = parse(t, resp)
	assert.Contains(t, doc.Find("#type-result").Text(), "No Effect (0x damage)")
}

func TestMiscRoutes(t *testing.T) {
	s := newTestSite(t, SiteConfig{URL: "https://pokefans.example"})
	v := s.newVisitor(t)

	resp, err := v.client.Get(s.ts.URL + "/sitemap.xml")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "<loc>https://pokefans.example/community/</loc>")
	assert.Contains(t, string(body), "<loc>https://pokefans.example/types/</loc>")

	resp, err = v.client.Get(s.ts.URL + "/robots.txt")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "Sitemap: https://pokefans.example/sitemap.xml")

	resp, err = v.client.Get(s.ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = v.client.Get(s.ts.URL + "/public/community.css")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = v.client.Get(s.ts.URL + "/nowhere/")
	require.NoError(t, err)
	doc := parse(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "404", doc.Find("h1").Text())
}
