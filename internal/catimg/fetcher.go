// Package catimg fetches cat pictures from an external endpoint and
// prepares them for embedding. The endpoint promises nothing beyond "some
// bitmap", so the fetcher decodes whatever arrives and re-encodes it as
// JPEG; any failure yields a fixed-size placeholder instead of an error.
package catimg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"
	"net/http"
	"time"

	// Bitmap formats the endpoint may serve.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"funnypdf/internal/logger"
	"funnypdf/internal/types"
)

const (
	// DefaultTimeout bounds a single image fetch
	DefaultTimeout = 10 * time.Second
	// MaxImageBytes caps the response body size
	MaxImageBytes = 20 * 1024 * 1024
	// PlaceholderSize is the edge length in pixels of the fallback image
	PlaceholderSize = 200
	// jpegQuality is the re-encode quality for embedded images
	jpegQuality = 85
)

// Image is a decoded picture re-encoded as JPEG, ready for embedding.
type Image struct {
	JPEG        []byte
	Width       int
	Height      int
	Placeholder bool
}

// Fetcher downloads one image per call from a fixed endpoint.
type Fetcher struct {
	url    string
	client *http.Client
}

// NewFetcher creates a Fetcher for the given endpoint with the default
// timeout.
func NewFetcher(url string) *Fetcher {
	return NewFetcherWithTimeout(url, DefaultTimeout)
}

// NewFetcherWithTimeout creates a Fetcher with a custom timeout.
func NewFetcherWithTimeout(url string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		url: url,
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return types.NewAppError(types.ErrNetwork, "too many redirects", nil)
				}
				return nil
			},
		},
	}
}

// Fetch downloads and decodes one image. It never returns an error: on any
// failure it logs the reason and returns a placeholder flagged as such.
func (f *Fetcher) Fetch(ctx context.Context) *Image {
	img, err := f.fetch(ctx)
	if err != nil {
		logger.Warn("cat image fetch failed, using placeholder",
			logger.String("url", f.url), logger.Err(err))
		return Placeholder()
	}
	return img
}

func (f *Fetcher) fetch(ctx context.Context) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	decoded, format, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	logger.Debug("cat image fetched",
		logger.String("format", format),
		logger.Int("width", decoded.Bounds().Dx()),
		logger.Int("height", decoded.Bounds().Dy()))

	return encode(decoded, false)
}

// Placeholder returns a fixed-size white image used when a fetch fails.
func Placeholder() *Image {
	bounds := image.Rect(0, 0, PlaceholderSize, PlaceholderSize)
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	out, err := encode(img, true)
	if err != nil {
		// Encoding an in-memory RGBA cannot realistically fail; keep the
		// contract of never returning nil anyway.
		return &Image{Width: PlaceholderSize, Height: PlaceholderSize, Placeholder: true}
	}
	return out
}

func encode(src image.Image, placeholder bool) (*Image, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	b := src.Bounds()
	return &Image{
		JPEG:        buf.Bytes(),
		Width:       b.Dx(),
		Height:      b.Dy(),
		Placeholder: placeholder,
	}, nil
}
