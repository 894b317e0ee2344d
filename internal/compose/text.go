package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/shelfworks/promoframe/internal/config"
	"github.com/shelfworks/promoframe/internal/vars"
)

// renderTextLayer draws one text layer onto the canvas. Failures are
// logged and leave the canvas unchanged.
func (c *Compositor) renderTextLayer(canvas *image.NRGBA, name string, layer *config.TextLayer, data vars.Data) *image.NRGBA {
	text := data.Resolve(layer.Text)
	if text == "" {
		c.logWarnf("layer %s: empty text after resolution, skipping", name)
		return canvas
	}

	face := c.faces().Face(layer.FontSize)
	bounds, _ := font.BoundString(face, text)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	canvasW := canvas.Bounds().Dx()
	canvasH := canvas.Bounds().Dy()

	var x, y int
	if layer.Absolute() {
		// Explicit coordinates are used verbatim, even off-canvas.
		x, y = *layer.X, *layer.Y
		c.logInfof("layer %s: text %q at (%d, %d)", name, text, x, y)
	} else {
		x, y = anchorPosition(layer.Position, canvasW, canvasH, textW, textH, layer.MarginX, layer.MarginY)
		c.logInfof("layer %s: text %q anchored %s -> (%d, %d)", name, text, layer.Position, x, y)
	}

	// Draw into a transparent overlay and source-over composite, so
	// anti-aliased glyph edges blend with what is already underneath.
	overlay := imaging.New(canvasW, canvasH, color.NRGBA{})
	drawer := &font.Drawer{
		Dst:  overlay,
		Src:  image.NewUniform(layer.FontColor.NRGBA()),
		Face: face,
		// Shift the dot so the glyph bounding box lands at (x, y).
		Dot: fixed.Point26_6{X: fixed.I(x) - bounds.Min.X, Y: fixed.I(y) - bounds.Min.Y},
	}
	drawer.DrawString(text)

	return imaging.Overlay(canvas, overlay, image.Point{}, 1.0)
}
