// Package gallery reveals a fixed catalog of fan-art items in batches.
package gallery

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/pokefans/ui"
)

const (
	// CatalogSize is the number of items in the default catalog.
	CatalogSize = 15
	// BatchSize is how many items each reveal adds.
	BatchSize = 6
	// PlaceholderSrc replaces an image that failed to load.
	PlaceholderSrc = "/community/gallery/placeholder.png"
	// DegradedClass marks an item showing the placeholder.
	DegradedClass = "degraded"
)

var artists = []string{
	"MistyWaters", "BrockSolid", "PikaFan99", "GaryOakTree", "JessieRocket",
	"LeafGreen", "DawnPearl",
}

// Item is one catalog entry. Index is its stable position in the catalog.
type Item struct {
	Index  int
	Src    string
	Alt    string
	Artist string
	Likes  int
}

// DefaultCatalog generates the site's fan-art catalog.
func DefaultCatalog() []Item {
	items := make([]Item, CatalogSize)
	for i := range items {
		items[i] = Item{
			Index:  i,
			Src:    fmt.Sprintf("https://picsum.photos/seed/pokemon%d/300/300", i),
			Alt:    fmt.Sprintf("Fan Art %d - Pokémon artwork by community member", i+1),
			Artist: artists[i%len(artists)],
			Likes:  42 + (i*37)%200,
		}
	}
	return items
}

// Tile is a revealed item as the page shows it.
type Tile struct {
	Item
	Degraded bool
}

// Pager tracks how much of the catalog has been revealed in this page session.
type Pager struct {
	catalog   []Item
	batch     int
	surface   *ui.Surface
	logger    echo.Logger
	displayed int
	tiles     []Tile
}

// NewPager returns a pager over catalog. A non-positive batch uses BatchSize.
func NewPager(catalog []Item, batch int, surface *ui.Surface, logger echo.Logger) *Pager {
	if batch <= 0 {
		batch = BatchSize
	}
	if logger == nil {
		logger = log.New("gallery")
	}
	return &Pager{catalog: catalog, batch: batch, surface: surface, logger: logger}
}

// Init resets the pager to nothing revealed and shows the load-more control.
func (p *Pager) Init() {
	p.displayed = 0
	p.tiles = nil
	if len(p.catalog) > 0 {
		p.surface.Get(ui.LoadMore).Show()
	} else {
		p.surface.Get(ui.LoadMore).Hide()
	}
}

// RevealNext reveals the next batch in catalog order and returns it. Once the
// catalog is exhausted the load-more control is hidden and further calls
// reveal nothing. Without a gallery container it does nothing.
func (p *Pager) RevealNext() []Tile {
	if !p.surface.Has(ui.Gallery) {
		return nil
	}
	end := min(p.displayed+p.batch, len(p.catalog))
	start := len(p.tiles)
	for _, item := range p.catalog[p.displayed:end] {
		p.tiles = append(p.tiles, Tile{Item: item})
	}
	p.displayed = end
	if p.Exhausted() {
		p.surface.Get(ui.LoadMore).Hide()
	}
	return p.tiles[start:]
}

// Displayed is the number of revealed items.
func (p *Pager) Displayed() int {
	return p.displayed
}

// Exhausted reports whether every catalog item has been revealed.
func (p *Pager) Exhausted() bool {
	return p.displayed >= len(p.catalog)
}

// Tiles returns the revealed items in catalog order.
func (p *Pager) Tiles() []Tile {
	return p.tiles
}

// Tile returns the revealed item at index.
func (p *Pager) Tile(index int) (Tile, bool) {
	if index < 0 || index >= len(p.tiles) {
		return Tile{}, false
	}
	return p.tiles[index], true
}

// ImageFailed swaps the placeholder into the revealed item at index and marks
// it degraded. The reveal count and other items are unaffected.
func (p *Pager) ImageFailed(index int, cause error) {
	if index < 0 || index >= len(p.tiles) {
		return
	}
	t := &p.tiles[index]
	if t.Degraded {
		return
	}
	p.logger.Warnf("gallery image %d (%s) failed to load: %v", index, t.Src, cause)
	t.Src = PlaceholderSrc
	t.Degraded = true
}
