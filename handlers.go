package pokefans

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pokefans/eventloop"
	"github.com/eringen/pokefans/pokedex"
	"github.com/eringen/pokefans/session"
	"github.com/eringen/pokefans/submit"
	"github.com/eringen/pokefans/views"
)

func handleRootRedirect(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/community/")
}

func handleHealthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (a *App) newPageSession(visitor string) *session.Session {
	s := session.New(uuid.NewString(), a.DB.Scope(visitor), a.scheduler, session.Config{
		Submit: submit.Config{
			SubmitDelay:     a.Config.SubmitDelay,
			SuccessDuration: a.Config.SuccessDuration,
		},
		Catalog: a.catalog,
	}, a.Echo.Logger)
	s.Init()
	a.Pages.Add(visitor, s)
	return s
}

func (a *App) handleCommunity(c echo.Context) error {
	s := a.newPageSession(Visitor(c))
	meta := views.PageMeta{
		Title:       "Community",
		Description: "Join fellow trainers, share your favorite type and browse community fan art.",
		URL:         BuildURL(a.Config.URL, "community"),
	}
	return Render(c, a.Views.Community(a.site(), meta, s.Snapshot(), CsrfToken(c)))
}

func (a *App) pageSession(c echo.Context) (*session.Session, error) {
	s, ok := a.Pages.Get(c.Param("page"), Visitor(c))
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "page session expired")
	}
	return s, nil
}

// handleEvent applies one UI event to a page session and answers with the
// refreshed fragment.
func (a *App) handleEvent(c echo.Context) error {
	s, err := a.pageSession(c)
	if err != nil {
		return err
	}
	ev := eventloop.Event{
		Name:   c.FormValue("name"),
		Target: c.FormValue("target"),
		Value:  c.FormValue("value"),
		Key:    c.FormValue("key"),
	}
	if ev.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing event name")
	}
	if ev.Name == eventloop.EventSubmit && !a.submitLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many submissions. Please wait a minute and try again.")
	}
	s.Dispatch(ev)
	return a.renderFragment(c, s.Snapshot())
}

func (a *App) handleFragment(c echo.Context) error {
	s, err := a.pageSession(c)
	if err != nil {
		return err
	}
	return a.renderFragment(c, s.Snapshot())
}

func (a *App) calculator(c echo.Context) views.Calculator {
	calc := views.Calculator{
		Attackers: pokedex.Attackers(),
		Defenders: pokedex.Names(),
	}
	if _, ok := pokedex.Lookup(c.QueryParam("attacker")); ok {
		calc.Attacker = c.QueryParam("attacker")
	}
	if _, ok := pokedex.Lookup(c.QueryParam("defender")); ok {
		calc.Defender = c.QueryParam("defender")
	}
	return calc
}

func (a *App) handleTypes(c echo.Context) error {
	meta := views.PageMeta{
		Title:       "Type Calculator",
		Description: "Check how effective one Pokémon type is against another.",
		URL:         BuildURL(a.Config.URL, "types"),
	}
	return Render(c, a.Views.TypeCalculator(a.site(), meta, a.calculator(c)))
}

func (a *App) handleEffectiveness(c echo.Context) error {
	calc := a.calculator(c)
	return Render(c, a.Views.TypeResult(pokedex.Calculate(calc.Attacker, calc.Defender)))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
