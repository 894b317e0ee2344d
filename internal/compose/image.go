package compose

import (
	"image"
	"os"

	"github.com/disintegration/imaging"

	"github.com/shelfworks/promoframe/internal/config"
	"github.com/shelfworks/promoframe/internal/vars"
)

// renderImageLayer pastes one image layer onto the canvas. A missing or
// unreadable source is a soft failure: logged, canvas returned unchanged.
func (c *Compositor) renderImageLayer(canvas *image.NRGBA, name string, layer *config.ImageLayer, data vars.Data) *image.NRGBA {
	sourcePath := data.Resolve(layer.Source)
	if sourcePath == "" {
		c.logWarnf("layer %s: empty source after resolution, skipping", name)
		return canvas
	}
	if _, err := os.Stat(sourcePath); err != nil {
		c.logWarnf("layer %s: source missing: %s", name, sourcePath)
		return canvas
	}

	img, err := imaging.Open(sourcePath)
	if err != nil {
		c.logErrorf("layer %s: decode %s: %v", name, sourcePath, err)
		return canvas
	}

	layerImg := resizeLayer(img, layer.Width, layer.Height)
	c.logInfof("layer %s: image %s at (%d, %d), %dx%d",
		name, sourcePath, layer.X, layer.Y, layerImg.Bounds().Dx(), layerImg.Bounds().Dy())

	return imaging.Overlay(canvas, layerImg, image.Pt(layer.X, layer.Y), 1.0)
}

// resizeLayer applies the width/height rule: both set scales exactly,
// one set derives the other from the aspect ratio, neither keeps the
// original size. Lanczos resampling throughout.
func resizeLayer(img image.Image, width, height *int) *image.NRGBA {
	switch {
	case width != nil && height != nil:
		return imaging.Resize(img, *width, *height, imaging.Lanczos)
	case width != nil:
		return imaging.Resize(img, *width, 0, imaging.Lanczos)
	case height != nil:
		return imaging.Resize(img, 0, *height, imaging.Lanczos)
	default:
		return imaging.Clone(img)
	}
}
