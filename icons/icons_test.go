package icons

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestDirDecodesAndCaches(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writePNG(t, filepath.Join(root, "coin.png"), color.NRGBA{R: 255, A: 255})
	d := NewDir(root, nil)

	img := d.Icon("coin")
	require.NotNil(t, img)
	assert.Equal(t, 4, img.Bounds().Dx())

	require.NoError(t, os.Remove(filepath.Join(root, "coin.png")))
	assert.Same(t, img, d.Icon("coin"), "decoded images are cached")
}

func TestDirUnknownAndInvalidNames(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.png"), []byte("nope"), 0o644))
	d := NewDir(root, nil)

	assert.Nil(t, d.Icon("missing"))
	assert.Nil(t, d.Icon("bad"))
	assert.Nil(t, d.Icon("../coin"))
	assert.Nil(t, d.Icon(""))
}

func TestMapAndScale(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	m := Map{"dot": src}
	assert.Nil(t, m.Icon("other"))

	scaled := Scale(m.Icon("dot"), 16)
	require.NotNil(t, scaled)
	assert.Equal(t, image.Rect(0, 0, 16, 16), scaled.Bounds())
	assert.Nil(t, Scale(nil, 16))
}
