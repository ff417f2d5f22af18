package images

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// ImageFetcher loads the raw bytes of a network image.
type ImageFetcher func(uri string) ([]byte, error)

// ImageCache caches decoded images by source.
type ImageCache struct {
	cache map[string]image.Image
	mu    sync.RWMutex
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{cache: make(map[string]image.Image)}
}

func (c *ImageCache) get(src string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.cache[src]
	return img, ok
}

func (c *ImageCache) put(src string, img image.Image) {
	c.mu.Lock()
	c.cache[src] = img
	c.mu.Unlock()
}

// Global image cache
var globalCache = NewImageCache()

// IsDataURI reports whether src is a data: URI.
func IsDataURI(src string) bool {
	return strings.HasPrefix(src, "data:")
}

func isNetwork(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// LoadImageFromDataURI decodes a base64 or percent-encoded data URI.
func LoadImageFromDataURI(uri string) (image.Image, error) {
	if !IsDataURI(uri) {
		return nil, errors.Errorf("not a data URI: %.32s", uri)
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, errors.New("data URI has no payload")
	}
	meta, payload := uri[len("data:"):comma], uri[comma+1:]

	var raw []byte
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, errors.Wrap(err, "decode base64 payload")
		}
		raw = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, errors.Wrap(err, "unescape payload")
		}
		raw = []byte(s)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	return img, nil
}

// LoadImage loads an image from a data URI or the filesystem.
func LoadImage(src string) (image.Image, error) {
	return LoadImageWithFetcher(src, nil)
}

// LoadImageWithFetcher also loads http(s) sources through fetcher.
func LoadImageWithFetcher(src string, fetcher ImageFetcher) (image.Image, error) {
	if img, ok := globalCache.get(src); ok {
		return img, nil
	}

	var (
		img image.Image
		err error
	)
	switch {
	case IsDataURI(src):
		img, err = LoadImageFromDataURI(src)
	case isNetwork(src):
		if fetcher == nil {
			return nil, errors.Errorf("no fetcher for %s", src)
		}
		var body []byte
		if body, err = fetcher(src); err == nil {
			img, _, err = image.Decode(bytes.NewReader(body))
			err = errors.Wrapf(err, "decode %s", src)
		}
	default:
		img, err = loadFile(strings.TrimPrefix(src, "file://"))
	}
	if err != nil {
		return nil, err
	}

	globalCache.put(src, img)
	return img, nil
}

func loadFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open image")
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return img, nil
}

// GetImageDimensions returns the width and height of an image
func GetImageDimensions(src string) (width, height int, err error) {
	return GetImageDimensionsWithFetcher(src, nil)
}

// GetImageDimensionsWithFetcher is GetImageDimensions for network sources.
func GetImageDimensionsWithFetcher(src string, fetcher ImageFetcher) (width, height int, err error) {
	img, err := LoadImageWithFetcher(src, fetcher)
	if err != nil {
		return 0, 0, err
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
