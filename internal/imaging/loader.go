package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// BufferCache provides thread-safe caching of decoded pixel buffers so one
// image can feed many analysis calls without redundant disk reads.
//
// Cached buffers remain in memory until Evict() or Clear(); long-running
// processes that scan many images should clear periodically.
type BufferCache struct {
	mu      sync.RWMutex
	buffers map[string]*PixelBuffer
}

// NewBufferCache creates an empty cache, safe for concurrent use.
func NewBufferCache() *BufferCache {
	return &BufferCache{
		buffers: make(map[string]*PixelBuffer),
	}
}

// Load returns the cached buffer for path, decoding from disk on a miss.
//
// Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP. Buffers are keyed by
// the exact path string; relative and absolute spellings of the same file
// cache separately.
func (c *BufferCache) Load(path string) (*PixelBuffer, error) {
	c.mu.RLock()
	if buf, ok := c.buffers[path]; ok {
		c.mu.RUnlock()
		return buf, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	buf, err := FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot image: %w", err)
	}

	c.mu.Lock()
	c.buffers[path] = buf
	c.mu.Unlock()

	return buf, nil
}

// Clear removes all buffers from the cache.
func (c *BufferCache) Clear() {
	c.mu.Lock()
	c.buffers = make(map[string]*PixelBuffer)
	c.mu.Unlock()
}

// Evict removes a single buffer by its load path.
func (c *BufferCache) Evict(path string) {
	c.mu.Lock()
	delete(c.buffers, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width and Height are the pixel dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is derived from the file extension, "unknown" otherwise.
	Format string `json:"format"`

	// HasAlpha reports whether any sampled pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the on-disk size.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into the cache and returns its metadata.
func LoadImageInfo(cache *BufferCache, path string) (*ImageInfo, error) {
	buf, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".bmp":
		format = "bmp"
	case ".tif", ".tiff":
		format = "tiff"
	case ".webp":
		format = "webp"
	}

	hasAlpha := false
	for i := 3; i < len(buf.pix); i += 4 {
		if buf.pix[i] != 255 {
			hasAlpha = true
			break
		}
	}

	return &ImageInfo{
		Width:         buf.Width(),
		Height:        buf.Height(),
		Format:        format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}
