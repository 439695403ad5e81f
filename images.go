package pokefans

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/eringen/pokefans/eventloop"
	"github.com/eringen/pokefans/ui"
)

const (
	thumbWidth    = 300
	jpegQuality   = 80
	maxSourceSize = 10 << 20 // 10MB
)

// ThumbCache keeps resized gallery images keyed by source URL. Thumbnails
// are shared by every page session.
type ThumbCache struct {
	thumbs *lru.Cache[string, []byte]
}

// NewThumbCache creates a ThumbCache holding at most size images.
func NewThumbCache(size int) (*ThumbCache, error) {
	thumbs, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("thumbnail cache: %w", err)
	}
	return &ThumbCache{thumbs: thumbs}, nil
}

// Get returns the cached thumbnail for src.
func (c *ThumbCache) Get(src string) ([]byte, bool) {
	return c.thumbs.Get(src)
}

// Add caches data as the thumbnail for src.
func (c *ThumbCache) Add(src string, data []byte) {
	c.thumbs.Add(src, data)
}

// resizeThumb decodes an image from src, shrinks it to thumbWidth if wider,
// and encodes it as JPEG.
func resizeThumb(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > thumbWidth {
		newH := h * thumbWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, thumbWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// fetchThumb returns the thumbnail for the image at src, downloading and
// resizing it on a cache miss.
func (a *App) fetchThumb(ctx context.Context, src string) ([]byte, error) {
	if data, ok := a.Thumbs.Get(src); ok {
		return data, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", src, resp.Status)
	}
	data, err := resizeThumb(io.LimitReader(resp.Body, maxSourceSize))
	if err != nil {
		return nil, fmt.Errorf("thumbnail %s: %w", src, err)
	}
	a.Thumbs.Add(src, data)
	return data, nil
}

var placeholderPNG = sync.OnceValues(renderPlaceholder)

// renderPlaceholder draws the grey "image unavailable" tile.
func renderPlaceholder() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, thumbWidth, thumbWidth))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{0xee, 0xee, 0xee, 0xff}), image.Point{}, draw.Src)

	const label = "Image unavailable"
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{0x77, 0x77, 0x77, 0xff}),
		Face: basicfont.Face7x13,
	}
	d.Dot = fixed.Point26_6{
		X: (fixed.I(thumbWidth) - d.MeasureString(label)) / 2,
		Y: fixed.I(thumbWidth / 2),
	}
	d.DrawString(label)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}

func handlePlaceholder(c echo.Context) error {
	data, err := placeholderPNG()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

// handleThumb serves a revealed gallery item's thumbnail. When the image
// cannot be loaded the item is marked degraded through its page session's
// error event and the placeholder is served instead.
func (a *App) handleThumb(c echo.Context) error {
	s, ok := a.Pages.Get(c.Param("page"), Visitor(c))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	tile, ok := s.Tile(index)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if tile.Degraded {
		return handlePlaceholder(c)
	}

	data, err := a.fetchThumb(c.Request().Context(), tile.Src)
	if err != nil {
		s.Dispatch(eventloop.Event{
			Name:   eventloop.EventError,
			Target: ui.GalleryItem,
			Value:  strconv.Itoa(index),
			Key:    err.Error(),
		})
		return handlePlaceholder(c)
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}
