package compose

import "github.com/shelfworks/promoframe/internal/config"

const (
	defaultCanvasWidth  = 1000
	defaultCanvasHeight = 1000
)

// PlanCanvasSize derives a canvas just large enough for the configured
// image and QR layers: the maximum of (x+width, y+height) across them,
// an absent width or height counting as zero so an offset-only layer
// still contributes its position. Text layers never contribute; their
// extent is unknown before rendering, so text near an edge may clip on
// an undersized canvas and callers wanting room must set canvas_size
// explicitly. With no layer yielding a positive extent on both axes,
// the 1000x1000 default is used.
func PlanCanvasSize(layers map[string]config.Layer) config.Dimensions {
	maxWidth, maxHeight := 0, 0
	for _, layer := range layers {
		var right, bottom int
		switch layer.Kind {
		case config.KindImage:
			img := layer.Image
			right, bottom = img.X, img.Y
			if img.Width != nil {
				right += *img.Width
			}
			if img.Height != nil {
				bottom += *img.Height
			}
		case config.KindQR:
			right = layer.QR.X + layer.QR.Size
			bottom = layer.QR.Y + layer.QR.Size
		default:
			continue
		}
		if right > maxWidth {
			maxWidth = right
		}
		if bottom > maxHeight {
			maxHeight = bottom
		}
	}
	if maxWidth == 0 || maxHeight == 0 {
		return config.Dimensions{Width: defaultCanvasWidth, Height: defaultCanvasHeight}
	}
	return config.Dimensions{Width: maxWidth, Height: maxHeight}
}
