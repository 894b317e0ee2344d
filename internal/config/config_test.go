package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
canvas_size: [1200, 800]
background_color: [10, 20, 30, 255]
quality: 92
picture_layers:
  01_background:
    type: image
    source: assets/bg.png
    x: 0
    y: 0
    width: 1200
    height: 800
  02_price:
    type: text
    text: "${price_text}"
    font_size: 48
    font_color: [255, 0, 0, 255]
    position: bottom_right
    margin_x: 24
    margin_y: 24
  03_link:
    type: qr
    payload: "https://example.com/p/${file_name}"
    x: 1000
    y: 600
    size: 180
copy_files:
  - source: assets/care-card.png
copy_settings:
  overwrite: true
  continue_on_error: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.CanvasSize == nil || cfg.CanvasSize.Width != 1200 || cfg.CanvasSize.Height != 800 {
		t.Errorf("canvas_size = %+v", cfg.CanvasSize)
	}
	if got := cfg.BackgroundColor(); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("background = %+v", got)
	}
	if cfg.JPEGQuality() != 92 {
		t.Errorf("quality = %d", cfg.JPEGQuality())
	}
	if len(cfg.Layers) != 3 {
		t.Fatalf("layers = %d", len(cfg.Layers))
	}

	bg := cfg.Layers["01_background"]
	if bg.Kind != KindImage || bg.Image == nil {
		t.Fatalf("01_background not an image layer: %+v", bg)
	}
	if bg.Image.Source != "assets/bg.png" || *bg.Image.Width != 1200 || *bg.Image.Height != 800 {
		t.Errorf("image layer fields: %+v", bg.Image)
	}

	price := cfg.Layers["02_price"]
	if price.Kind != KindText || price.Text == nil {
		t.Fatalf("02_price not a text layer: %+v", price)
	}
	if price.Text.FontSize != 48 || price.Text.Position != "bottom_right" ||
		price.Text.MarginX != 24 || price.Text.MarginY != 24 {
		t.Errorf("text layer fields: %+v", price.Text)
	}
	if price.Text.Absolute() {
		t.Error("anchored text layer reported absolute")
	}

	link := cfg.Layers["03_link"]
	if link.Kind != KindQR || link.QR == nil {
		t.Fatalf("03_link not a qr layer: %+v", link)
	}
	if link.QR.Size != 180 || link.QR.X != 1000 || link.QR.Y != 600 {
		t.Errorf("qr layer fields: %+v", link.QR)
	}

	if len(cfg.CopyFiles) != 1 || cfg.CopyFiles[0].Source != "assets/care-card.png" {
		t.Errorf("copy_files = %+v", cfg.CopyFiles)
	}
	if !cfg.CopySettings.Overwrite || !cfg.CopySettings.ContinueOnError {
		t.Errorf("copy_settings = %+v", cfg.CopySettings)
	}
}

func TestLayerDefaults(t *testing.T) {
	path := writeConfig(t, `
picture_layers:
  caption:
    type: text
    text: hello
  product:
    type: image
    source: a.png
  code:
    type: qr
    payload: x
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	caption := cfg.Layers["caption"].Text
	if caption.FontSize != 32 {
		t.Errorf("default font_size = %d, want 32", caption.FontSize)
	}
	if caption.FontColor != (RGBA{0, 0, 0, 255}) {
		t.Errorf("default font_color = %v, want opaque black", caption.FontColor)
	}
	if caption.Position != "bottom_right" {
		t.Errorf("default position = %q", caption.Position)
	}
	if caption.MarginX != 10 || caption.MarginY != 10 {
		t.Errorf("default margins = %d,%d", caption.MarginX, caption.MarginY)
	}

	product := cfg.Layers["product"].Image
	if product.X != 0 || product.Y != 0 {
		t.Errorf("default offsets = %d,%d", product.X, product.Y)
	}
	if product.Width != nil || product.Height != nil {
		t.Error("width/height should be absent by default")
	}

	code := cfg.Layers["code"].QR
	if code.Size != 256 {
		t.Errorf("default qr size = %d, want 256", code.Size)
	}
}

func TestLayerTypeFallsBackToImage(t *testing.T) {
	path := writeConfig(t, `
picture_layers:
  odd:
    type: sticker
    source: a.png
  untyped:
    source: b.png
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, name := range []string{"odd", "untyped"} {
		layer := cfg.Layers[name]
		if layer.Kind != KindImage || layer.Image == nil {
			t.Errorf("layer %q kind = %q, want image", name, layer.Kind)
		}
	}
}

func TestTextLayerAbsolutePosition(t *testing.T) {
	path := writeConfig(t, `
picture_layers:
  abs:
    type: text
    text: t
    x: -5
    y: 2000
  half:
    type: text
    text: t
    x: 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	abs := cfg.Layers["abs"].Text
	if !abs.Absolute() {
		t.Fatal("x+y layer not absolute")
	}
	if *abs.X != -5 || *abs.Y != 2000 {
		t.Errorf("absolute coords kept verbatim: %d,%d", *abs.X, *abs.Y)
	}

	// A lone x is not an absolute position.
	if cfg.Layers["half"].Text.Absolute() {
		t.Error("x-only layer reported absolute")
	}
}

func TestConfigDefaults(t *testing.T) {
	path := writeConfig(t, `picture_layers: {}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.BackgroundColor(); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("default background = %+v, want opaque white", got)
	}
	if cfg.JPEGQuality() != 85 {
		t.Errorf("default quality = %d, want 85", cfg.JPEGQuality())
	}
	if cfg.Quality != nil {
		t.Errorf("quality should be unset, got %d", *cfg.Quality)
	}
	if cfg.CanvasSize != nil {
		t.Errorf("canvas size should be unset, got %+v", cfg.CanvasSize)
	}
}

func TestExplicitQualityClamped(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{"quality: 0", 1}, // an explicit 0 is minimum quality, not the default
		{"quality: 1", 1},
		{"quality: 100", 100},
		{"quality: 250", 100},
	}
	for _, tt := range tests {
		cfg, err := Load(writeConfig(t, tt.body))
		if err != nil {
			t.Fatalf("Load(%q): %v", tt.body, err)
		}
		if got := cfg.JPEGQuality(); got != tt.want {
			t.Errorf("JPEGQuality for %q = %d, want %d", tt.body, got, tt.want)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file should error")
	}
	if _, err := Load(writeConfig(t, "picture_layers: [not, a, map")); err == nil {
		t.Error("malformed yaml should error")
	}
	if _, err := Load(writeConfig(t, "background_color: [1, 2, 3]")); err == nil {
		t.Error("3-component color should error")
	}
	if _, err := Load(writeConfig(t, "background_color: [0, 0, 0, 300]")); err == nil {
		t.Error("out-of-range component should error")
	}
	if _, err := Load(writeConfig(t, "canvas_size: [0, 100]")); err == nil {
		t.Error("non-positive canvas size should error")
	}
}
