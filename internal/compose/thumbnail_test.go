package compose

import (
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/shelfworks/promoframe/internal/config"
)

func TestCreateThumbnailKeepAspect(t *testing.T) {
	dir := t.TempDir()
	// A wide source: fitting into a square leaves transparent bands.
	src := writePNG(t, dir, "wide.png", 800, 400, red)
	out := filepath.Join(dir, "thumbs", "wide_thumb.png")

	comp := newTestCompositor(&config.Config{}, nil)
	if err := comp.CreateThumbnail(src, out, config.Dimensions{Width: 400, Height: 400}, true); err != nil {
		t.Fatalf("CreateThumbnail: %v", err)
	}

	thumb, err := imaging.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	if thumb.Bounds().Dx() != 400 || thumb.Bounds().Dy() != 400 {
		t.Fatalf("thumbnail size = %dx%d, want 400x400", thumb.Bounds().Dx(), thumb.Bounds().Dy())
	}

	clone := imaging.Clone(thumb)
	if center := clone.NRGBAAt(200, 200); center != red {
		t.Errorf("center pixel = %+v, want red", center)
	}
	// Above the fitted band the canvas stays transparent.
	if top := clone.NRGBAAt(200, 10); top.A != 0 {
		t.Errorf("letterbox pixel alpha = %d, want 0", top.A)
	}
}

func TestCreateThumbnailStretch(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "wide.png", 800, 400, red)
	out := filepath.Join(dir, "wide_thumb.png")

	comp := newTestCompositor(&config.Config{}, nil)
	if err := comp.CreateThumbnail(src, out, config.Dimensions{Width: 100, Height: 100}, false); err != nil {
		t.Fatalf("CreateThumbnail: %v", err)
	}
	thumb, err := imaging.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	clone := imaging.Clone(thumb)
	// Stretched: every pixel is source color, no letterboxing.
	if px := clone.NRGBAAt(50, 2); px != red {
		t.Errorf("stretched pixel = %+v, want red", px)
	}
}

func TestCreateThumbnailMissingSource(t *testing.T) {
	dir := t.TempDir()
	comp := newTestCompositor(&config.Config{}, nil)
	err := comp.CreateThumbnail(filepath.Join(dir, "absent.png"), filepath.Join(dir, "t.png"),
		config.Dimensions{Width: 100, Height: 100}, true)
	if err == nil {
		t.Fatal("missing source must error")
	}
}
