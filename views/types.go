package views

// SiteConfig holds site-wide settings passed to every page so nothing is
// hardcoded.
type SiteConfig struct {
	Name        string // POKEFANS_NAME (default "PokéFans")
	URL         string // POKEFANS_URL  (default "http://localhost:3000")
	Description string
}

// PageMeta carries per-page SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical
}

// Calculator is the state of the type calculator page.
type Calculator struct {
	Attackers []string
	Defenders []string
	Attacker  string
	Defender  string
}
