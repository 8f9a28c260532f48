package stage

import (
	"hash/fnv"
	"image/color"
	_ "image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Assets loads board images from a file system and caches them by path.
// Paths that are empty or fail to load get a solid swatch so a board without
// art is still playable.
type Assets struct {
	fsys   fs.FS
	images map[string]*ebiten.Image
	failed map[string]error
}

// NewAssets creates a loader for fsys. fsys may be nil.
func NewAssets(fsys fs.FS) *Assets {
	return &Assets{
		fsys:   fsys,
		images: make(map[string]*ebiten.Image),
		failed: make(map[string]error),
	}
}

// Image returns the image for name, or a swatch keyed by fallback when name
// cannot be loaded.
func (a *Assets) Image(name, fallback string) *ebiten.Image {
	key := cleanAssetPath(name)
	if key != "" && a.fsys != nil {
		if img, ok := a.images[key]; ok {
			return img
		}
		if _, failed := a.failed[key]; !failed {
			img, _, err := ebitenutil.NewImageFromFileSystem(a.fsys, key)
			if err == nil {
				a.images[key] = img
				return img
			}
			a.failed[key] = err
		}
	}
	return a.swatch(fallback)
}

// Err returns the load error recorded for name, if any.
func (a *Assets) Err(name string) error {
	return a.failed[cleanAssetPath(name)]
}

func (a *Assets) swatch(id string) *ebiten.Image {
	key := "swatch:" + id
	if img, ok := a.images[key]; ok {
		return img
	}
	img := ebiten.NewImage(1, 1)
	img.Fill(swatchColor(id))
	a.images[key] = img
	return img
}

// swatchColor derives a stable, fairly saturated color from an item id.
func swatchColor(id string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	v := h.Sum32()
	return color.RGBA{
		R: 64 + uint8(v&0x7f),
		G: 64 + uint8((v>>8)&0x7f),
		B: 64 + uint8((v>>16)&0x7f),
		A: 255,
	}
}

func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	s := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	s = strings.TrimPrefix(s, "/")
	s = strings.TrimPrefix(s, "assets/")
	if s == "." {
		return ""
	}
	return s
}
