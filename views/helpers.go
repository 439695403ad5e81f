package views

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/eringen/pokefans/gallery"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PagePath returns the path of a page-session endpoint, e.g.
// PagePath("abc", "events") is "/community/abc/events/".
func PagePath(pageID string, parts ...string) string {
	p := "/community/" + url.PathEscape(pageID) + "/"
	for _, part := range parts {
		p += url.PathEscape(part) + "/"
	}
	return p
}

// ThumbPath returns the thumbnail path for a revealed gallery item.
func ThumbPath(pageID string, index int) string {
	return "/community/" + url.PathEscape(pageID) + "/gallery/" + strconv.Itoa(index) + "/thumb"
}

// TileSrc is the image source the page uses for tile.
func TileSrc(pageID string, tile gallery.Tile) string {
	if tile.Degraded {
		return gallery.PlaceholderSrc
	}
	return ThumbPath(pageID, tile.Index)
}

// ToneClass returns CSS classes for a calculator verdict.
func ToneClass(tone string) string {
	base := "type-result"
	switch tone {
	case "super":
		return base + " type-result--super"
	case "weak":
		return base + " type-result--weak"
	case "none":
		return base + " type-result--none"
	case "neutral":
		return base + " type-result--neutral"
	}
	return base
}

func classList(classes ...string) string {
	var out []string
	for _, c := range classes {
		if s := strings.TrimSpace(c); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, " ")
}
