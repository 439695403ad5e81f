package pokefans

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

// publicPages lists the pages worth indexing; page-session URLs are not.
var publicPages = []struct {
	segments   []string
	changeFreq string
}{
	{nil, "weekly"},
	{[]string{"community"}, "daily"},
	{[]string{"types"}, "monthly"},
}

func (a *App) handleSitemap(c echo.Context) error {
	urls := make([]sitemapURL, 0, len(publicPages))
	for _, p := range publicPages {
		urls = append(urls, sitemapURL{
			Loc:        BuildURL(a.Config.URL, p.segments...),
			ChangeFreq: p.changeFreq,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	// Page-session endpoints are per-visitor and expire.
	b.WriteString("Disallow: /community/*/\n")
	b.WriteString("\nSitemap: " + strings.TrimSuffix(BuildURL(a.Config.URL), "/") + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}
