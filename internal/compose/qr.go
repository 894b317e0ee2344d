package compose

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/skip2/go-qrcode"

	"github.com/shelfworks/promoframe/internal/config"
	"github.com/shelfworks/promoframe/internal/vars"
)

// renderQRLayer draws a QR code layer for the resolved payload.
// An empty payload or an encode failure skips the layer.
func (c *Compositor) renderQRLayer(canvas *image.NRGBA, name string, layer *config.QRLayer, data vars.Data) *image.NRGBA {
	payload := data.Resolve(layer.Payload)
	if payload == "" {
		c.logWarnf("layer %s: empty qr payload after resolution, skipping", name)
		return canvas
	}

	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		c.logErrorf("layer %s: qr encode: %v", name, err)
		return canvas
	}

	c.logInfof("layer %s: qr %q at (%d, %d), %dpx", name, payload, layer.X, layer.Y, layer.Size)
	return imaging.Overlay(canvas, code.Image(layer.Size), image.Pt(layer.X, layer.Y), 1.0)
}
