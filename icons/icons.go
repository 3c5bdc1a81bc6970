// Package icons supplies the images drawn in place of <icon=name> glyphs.
package icons

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Atlas looks up icon images by name. Unknown names return nil.
type Atlas interface {
	Icon(name string) image.Image
}

// Map is an in-memory atlas.
type Map map[string]image.Image

func (m Map) Icon(name string) image.Image { return m[name] }

// Extensions are tried in order when resolving <name> inside a Dir.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// Dir resolves icons from image files under a directory, decoding each file
// on first use. Failed lookups are cached too.
type Dir struct {
	root  string
	log   *zap.Logger
	mu    sync.Mutex
	cache map[string]image.Image
}

// NewDir returns an atlas over root.
func NewDir(root string, log *zap.Logger) *Dir {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dir{root: root, log: log, cache: map[string]image.Image{}}
}

func (d *Dir) Icon(name string) image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	if img, ok := d.cache[name]; ok {
		return img
	}
	img, err := d.load(name)
	if err != nil {
		d.log.Warn("icon unavailable", zap.String("icon", name), zap.Error(err))
	}
	d.cache[name] = img
	return img
}

func (d *Dir) load(name string) (image.Image, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid icon name %q", name)
	}
	for _, ext := range Extensions {
		path := filepath.Join(d.root, name+ext)
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		img, _, err := image.Decode(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("no image file for icon %q in %s", name, d.root)
}

// Scale resamples img to a size×size square, the footprint of an icon glyph
// at that font size.
func Scale(img image.Image, size int) image.Image {
	if img == nil || size <= 0 {
		return nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}
