package config

import (
	"gopkg.in/yaml.v3"
)

// Kind tags the layer variant. Unrecognized values decode as KindImage;
// the engine treats the tag as advisory rather than strict.
type Kind string

const (
	KindImage Kind = "image"
	KindText  Kind = "text"
	KindQR    Kind = "qr"
)

const (
	defaultFontSize = 32
	defaultMargin   = 10
	defaultQRSize   = 256

	// DefaultAnchor is the position used for text layers that name no
	// anchor, and the fallback for unrecognized anchor names.
	DefaultAnchor = "bottom_right"
)

// Layer is the validated form of one picture_layers entry. Exactly one
// variant pointer is non-nil, matching Kind. The map key under which a
// layer appears doubles as its z-order: layers draw in lexicographic
// name order.
type Layer struct {
	Kind  Kind
	Text  *TextLayer
	Image *ImageLayer
	QR    *QRLayer
}

// TextLayer draws a string, either at an absolute top-left position
// (X and Y both set, used verbatim even out of bounds) or at a named
// anchor with margins.
type TextLayer struct {
	Text      string // may embed ${var} placeholders
	FontSize  int
	FontColor RGBA
	X, Y      *int
	Position  string
	MarginX   int
	MarginY   int
}

// Absolute reports whether the layer uses explicit coordinates. Both
// must be present; a lone x or y falls back to anchored positioning.
func (t *TextLayer) Absolute() bool { return t.X != nil && t.Y != nil }

// ImageLayer pastes a source image at (X, Y). With both Width and
// Height the image is scaled exactly; with one, the other follows the
// aspect ratio; with neither, the original size is kept.
type ImageLayer struct {
	Source        string // may embed ${var} placeholders
	X, Y          int
	Width, Height *int
}

// QRLayer renders a QR code for Payload at (X, Y), Size pixels square.
type QRLayer struct {
	Payload string // may embed ${var} placeholders
	X, Y    int
	Size    int
}

type rawLayer struct {
	Type      string `yaml:"type"`
	Text      string `yaml:"text"`
	FontSize  *int   `yaml:"font_size"`
	FontColor *RGBA  `yaml:"font_color"`
	Position  string `yaml:"position"`
	MarginX   *int   `yaml:"margin_x"`
	MarginY   *int   `yaml:"margin_y"`
	X         *int   `yaml:"x"`
	Y         *int   `yaml:"y"`
	Source    string `yaml:"source"`
	Width     *int   `yaml:"width"`
	Height    *int   `yaml:"height"`
	Payload   string `yaml:"payload"`
	Size      *int   `yaml:"size"`
}

// UnmarshalYAML validates the layer shape at load time so renderers
// never probe dynamic fields.
func (l *Layer) UnmarshalYAML(node *yaml.Node) error {
	var raw rawLayer
	if err := node.Decode(&raw); err != nil {
		return err
	}

	switch Kind(raw.Type) {
	case KindText:
		l.Kind = KindText
		l.Text = &TextLayer{
			Text:      raw.Text,
			FontSize:  intOr(raw.FontSize, defaultFontSize),
			FontColor: RGBA{0, 0, 0, 255},
			X:         raw.X,
			Y:         raw.Y,
			Position:  raw.Position,
			MarginX:   intOr(raw.MarginX, defaultMargin),
			MarginY:   intOr(raw.MarginY, defaultMargin),
		}
		if raw.FontColor != nil {
			l.Text.FontColor = *raw.FontColor
		}
		if l.Text.Position == "" {
			l.Text.Position = DefaultAnchor
		}
	case KindQR:
		l.Kind = KindQR
		l.QR = &QRLayer{
			Payload: raw.Payload,
			X:       intOr(raw.X, 0),
			Y:       intOr(raw.Y, 0),
			Size:    intOr(raw.Size, defaultQRSize),
		}
	default:
		// image, empty, and anything unrecognized
		l.Kind = KindImage
		l.Image = &ImageLayer{
			Source: raw.Source,
			X:      intOr(raw.X, 0),
			Y:      intOr(raw.Y, 0),
			Width:  raw.Width,
			Height: raw.Height,
		}
	}
	return nil
}

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}
