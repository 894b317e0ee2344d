// Package fonts resolves typefaces for text layers. Discovery walks an
// ordered list of platform font files and falls back to the embedded Go
// Regular face, so text rendering degrades but never fails outright.
package fonts

import (
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

const defaultSizePt = 32

// Provider resolves a drawable face at the requested size. Implementations
// must always return a usable face; substituting a fallback is fine,
// returning nil is not.
type Provider interface {
	Face(sizePt int) font.Face
}

// DefaultPaths mirrors the font locations probed on the platforms the
// batch tool is deployed to. Entries that do not exist or fail to parse
// are skipped.
var DefaultPaths = []string{
	"C:/Windows/Fonts/msyh.ttc",
	"C:/Windows/Fonts/simsun.ttc",
	"C:/Windows/Fonts/arial.ttf",
	"/System/Library/Fonts/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Warnf(component string, format string, args ...interface{})
}

// Discovery is the default Provider. The first path that parses wins and
// is cached; faces are derived per requested size.
type Discovery struct {
	Paths  []string
	Logger Logger

	mu       sync.Mutex
	searched bool
	ttFont   *truetype.Font
	otFont   *sfnt.Font
}

func NewDiscovery(logger Logger) *Discovery {
	return &Discovery{Paths: DefaultPaths, Logger: logger}
}

func (d *Discovery) Face(sizePt int) font.Face {
	if sizePt <= 0 {
		sizePt = defaultSizePt
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.searched {
		d.search()
		d.searched = true
	}

	if d.ttFont != nil {
		return truetype.NewFace(d.ttFont, &truetype.Options{Size: float64(sizePt)})
	}
	if d.otFont != nil {
		face, err := opentype.NewFace(d.otFont, &opentype.FaceOptions{
			Size:    float64(sizePt),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			return face
		}
		d.warnf("face create failed at %dpt: %v", sizePt, err)
	}
	return basicfont.Face7x13
}

func (d *Discovery) search() {
	for _, path := range d.Paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if tt, err := truetype.Parse(raw); err == nil {
			d.ttFont = tt
			d.infof("loaded font %s", path)
			return
		}
		if ot, err := opentype.Parse(raw); err == nil {
			d.otFont = ot
			d.infof("loaded font %s", path)
			return
		}
		d.warnf("font %s unreadable, skipping", path)
	}

	// No system font found; embedded Go Regular keeps text legible.
	if tt, err := truetype.Parse(goregular.TTF); err == nil {
		d.ttFont = tt
		d.warnf("no system font found, using embedded Go Regular")
		return
	}
	d.warnf("embedded font parse failed, using bitmap face")
}

func (d *Discovery) infof(format string, args ...interface{}) {
	if d.Logger != nil {
		d.Logger.Infof("fonts", format, args...)
	}
}

func (d *Discovery) warnf(format string, args ...interface{}) {
	if d.Logger != nil {
		d.Logger.Warnf("fonts", format, args...)
	}
}

// Fixed always serves one pre-built face regardless of size. Used by
// tests and by deployments that ship a single known-good face.
type Fixed struct{ F font.Face }

func (f Fixed) Face(sizePt int) font.Face { return f.F }
