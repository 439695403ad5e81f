package pokefans

import "embed"

// EmbeddedAssets contains the static assets shipped with the site:
// community.css and community.js.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
