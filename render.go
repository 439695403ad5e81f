package pokefans

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pokefans/session"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// renderFragment writes the swappable part of a community page. X-Pending
// tells the client whether to poll for another fragment.
func (a *App) renderFragment(c echo.Context, snap session.Snapshot) error {
	c.Response().Header().Set("X-Pending", strconv.FormatBool(snap.Pending))
	return Render(c, a.Views.CommunityFragment(snap))
}
