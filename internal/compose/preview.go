package compose

import (
	"fmt"

	"github.com/shelfworks/promoframe/internal/config"
)

// LayerSummary is a read-only description of one configured layer, with
// placeholders resolved against the current source data. Intended for
// diagnostic display before any rendering happens.
type LayerSummary struct {
	Name     string
	Type     config.Kind
	Content  string // resolved text, source path, or qr payload
	Position string
	Size     string
}

// PreviewLayers summarizes the configured layers in draw order.
func (c *Compositor) PreviewLayers() []LayerSummary {
	data := c.Source.Snapshot()
	summaries := make([]LayerSummary, 0, len(c.Config.Layers))

	for _, name := range sortedLayerNames(c.Config.Layers) {
		layer := c.Config.Layers[name]
		summary := LayerSummary{Name: name, Type: layer.Kind}
		switch layer.Kind {
		case config.KindText:
			text := layer.Text
			summary.Content = data.Resolve(text.Text)
			if text.Absolute() {
				summary.Position = fmt.Sprintf("(%d, %d)", *text.X, *text.Y)
			} else {
				summary.Position = text.Position
			}
			summary.Size = fmt.Sprintf("%dpt", text.FontSize)
		case config.KindQR:
			qr := layer.QR
			summary.Content = data.Resolve(qr.Payload)
			summary.Position = fmt.Sprintf("(%d, %d)", qr.X, qr.Y)
			summary.Size = fmt.Sprintf("%dx%d", qr.Size, qr.Size)
		default:
			img := layer.Image
			summary.Content = data.Resolve(img.Source)
			summary.Position = fmt.Sprintf("(%d, %d)", img.X, img.Y)
			summary.Size = dimensionLabel(img.Width, img.Height)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func dimensionLabel(width, height *int) string {
	format := func(v *int) string {
		if v == nil {
			return "auto"
		}
		return fmt.Sprintf("%d", *v)
	}
	return format(width) + "x" + format(height)
}
