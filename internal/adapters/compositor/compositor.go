package compositor

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	_ "image/png"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"reposter/pkg/log"
)

const coverSuffix = ".cover.jpg"

// Compositor overlays downloaded images onto a branded cover template.
type Compositor struct {
	geometry *Geometry
}

// New creates a Compositor using the given geometry.
func New(geometry *Geometry) *Compositor {
	return &Compositor{geometry: geometry}
}

// Compose renders the image at srcPath onto the cover template and writes
// the result next to the source as <base>.cover.jpg, returning the cover
// path. Files that do not decode as an image (videos, sidecars) are
// skipped with an empty path and no error.
func (c *Compositor) Compose(srcPath string) (string, error) {
	src, err := loadImage(srcPath)
	if err != nil {
		log.GlobalDebug("skipping cover for non-image file", "path", srcPath)
		return "", nil
	}

	geom := c.geometry.Snapshot()

	tpl, err := gg.LoadImage(geom.TemplatePath)
	if err != nil {
		return "", fmt.Errorf("load cover template %s: %w", geom.TemplatePath, err)
	}

	src = applyOrientation(src, orientationOf(srcPath))

	resized := image.NewRGBA(image.Rect(0, 0, geom.CoverWidth, geom.CoverHeight))
	xdraw.CatmullRom.Scale(resized, resized.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	dc := gg.NewContextForImage(tpl)
	dc.DrawImage(resized, geom.PosX, geom.PosY)

	coverPath := strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + coverSuffix
	out, err := os.Create(coverPath)
	if err != nil {
		return "", fmt.Errorf("create cover file: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, dc.Image(), &jpeg.Options{Quality: 90}); err != nil {
		return "", fmt.Errorf("encode cover: %w", err)
	}

	return coverPath, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}
