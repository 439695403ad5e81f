package views

import (
	"time"

	"github.com/a-h/templ"
)

func layout(m *markup, site SiteConfig, meta PageMeta, csrf string, body func(m *markup)) {
	title := site.Name
	if meta.Title != "" {
		title = meta.Title + " | " + site.Name
	}
	description := meta.Description
	if description == "" {
		description = site.Description
	}

	m.raw("<!DOCTYPE html>")
	m.open("html", templ.Attributes{"lang": "en"})
	m.open("head", nil)
	m.open("meta", templ.Attributes{"charset": "utf-8"})
	m.open("meta", templ.Attributes{"name": "viewport", "content": "width=device-width, initial-scale=1"})
	m.element("title", nil, title)
	if description != "" {
		m.open("meta", templ.Attributes{"name": "description", "content": description})
	}
	if meta.URL != "" {
		m.open("link", templ.Attributes{"rel": "canonical", "href": meta.URL})
	}
	if csrf != "" {
		m.open("meta", templ.Attributes{"name": "csrf-token", "content": csrf})
	}
	m.open("link", templ.Attributes{"rel": "stylesheet", "href": "/public/community.css"})
	m.open("script", templ.Attributes{"src": "/public/community.js", "defer": true})
	m.close("script")
	m.close("head")

	m.open("body", nil)
	m.open("header", templ.Attributes{"class": "site-header"})
	m.element("a", templ.Attributes{"class": "site-name", "href": "/"}, site.Name)
	m.open("nav", nil)
	m.element("a", templ.Attributes{"href": "/community/"}, "Community")
	m.element("a", templ.Attributes{"href": "/types/"}, "Type Calculator")
	m.close("nav")
	m.close("header")

	m.open("main", nil)
	body(m)
	m.close("main")

	m.open("footer", templ.Attributes{"class": "site-footer"})
	m.element("p", nil, "© "+time.Now().Format("2006")+" "+site.Name+". Pokémon and its characters are trademarks of Nintendo.")
	m.close("footer")
	m.close("body")
	m.close("html")
}

// NotFound renders the 404 page.
func NotFound(site SiteConfig) templ.Component {
	return component(func(m *markup) {
		layout(m, site, PageMeta{Title: "Not Found"}, "", func(m *markup) {
			m.open("section", templ.Attributes{"class": "error-page"})
			m.element("h1", nil, "404")
			m.element("p", nil, "This route leads to tall grass with nothing in it.")
			m.element("a", templ.Attributes{"href": "/community/"}, "Back to the community")
			m.close("section")
		})
	})
}

// ServerError renders the 500 page.
func ServerError(site SiteConfig) templ.Component {
	return component(func(m *markup) {
		layout(m, site, PageMeta{Title: "Something went wrong"}, "", func(m *markup) {
			m.open("section", templ.Attributes{"class": "error-page"})
			m.element("h1", nil, "500")
			m.element("p", nil, "Something went wrong on our side. Please try again in a moment.")
			m.close("section")
		})
	})
}
