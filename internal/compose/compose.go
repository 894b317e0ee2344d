// Package compose turns a declarative layer configuration into rendered
// raster files. A Compositor walks the configured layers in lexicographic
// name order, drawing each onto an RGBA canvas; individual layer failures
// are logged and skipped so one bad asset never sinks a whole product.
package compose

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/shelfworks/promoframe/internal/config"
	"github.com/shelfworks/promoframe/internal/fonts"
	"github.com/shelfworks/promoframe/internal/vars"
)

// ErrNoLayers is returned when the configuration carries no
// picture_layers; nothing is written in that case.
var ErrNoLayers = errors.New("no picture_layers configured")

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Warnf(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Compositor renders composite images from one shared configuration and
// source-data store. It is not safe for concurrent use: the caller
// updates the store between renders, and a render pass snapshots it
// once. Parallel batches need one Compositor (and store) per worker.
type Compositor struct {
	Config *config.Config
	Source *vars.Store
	Fonts  fonts.Provider
	Logger Logger
}

func NewCompositor(cfg *config.Config, source *vars.Store, logger Logger) *Compositor {
	return &Compositor{
		Config: cfg,
		Source: source,
		Fonts:  fonts.NewDiscovery(logger),
		Logger: logger,
	}
}

// UpdateSourceData merges new variable bindings, typically called once
// per product before CreateComposite.
func (c *Compositor) UpdateSourceData(values map[string]string) {
	c.Source.Update(values)
	c.logInfof("updated source data: %v", values)
}

// CreateComposite renders every configured layer and writes the result
// to outputPath. canvasSize wins over the configured size; with neither,
// the size planner derives one from the image layers. A nil error means
// the file was produced; any error means this product was not produced,
// and the caller should count it and move on rather than abort.
func (c *Compositor) CreateComposite(outputPath string, canvasSize *config.Dimensions, background color.NRGBA) error {
	if len(c.Config.Layers) == 0 {
		c.logErrorf("no picture_layers configured, refusing to render")
		return ErrNoLayers
	}

	size := canvasSize
	if size == nil {
		size = c.Config.CanvasSize
	}
	if size == nil {
		planned := PlanCanvasSize(c.Config.Layers)
		size = &planned
	}
	c.logInfof("canvas %dx%d for %s", size.Width, size.Height, outputPath)

	canvas := imaging.New(size.Width, size.Height, background)

	data := c.Source.Snapshot()
	for _, name := range sortedLayerNames(c.Config.Layers) {
		layer := c.Config.Layers[name]
		switch layer.Kind {
		case config.KindText:
			canvas = c.renderTextLayer(canvas, name, layer.Text, data)
		case config.KindQR:
			canvas = c.renderQRLayer(canvas, name, layer.QR, data)
		default:
			canvas = c.renderImageLayer(canvas, name, layer.Image, data)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		c.logErrorf("create output dir for %s: %v", outputPath, err)
		return err
	}
	if err := c.save(canvas, outputPath); err != nil {
		c.logErrorf("save %s: %v", outputPath, err)
		return err
	}
	c.logInfof("composite saved: %s", outputPath)
	return nil
}

// save writes the canvas in the format implied by the extension.
// Formats without alpha support get the canvas flattened onto opaque
// white first, blended through its alpha channel.
func (c *Compositor) save(canvas *image.NRGBA, outputPath string) error {
	if isLossyOpaque(outputPath) {
		return imaging.Save(flattenToWhite(canvas), outputPath,
			imaging.JPEGQuality(c.Config.JPEGQuality()))
	}
	return imaging.Save(canvas, outputPath)
}

func isLossyOpaque(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}

func flattenToWhite(canvas *image.NRGBA) *image.NRGBA {
	bounds := canvas.Bounds()
	flat := imaging.New(bounds.Dx(), bounds.Dy(), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	draw.Draw(flat, bounds, canvas, bounds.Min, draw.Over)
	return flat
}

func sortedLayerNames(layers map[string]config.Layer) []string {
	names := make([]string, 0, len(layers))
	for name := range layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Compositor) faces() fonts.Provider {
	if c.Fonts == nil {
		c.Fonts = fonts.NewDiscovery(c.Logger)
	}
	return c.Fonts
}

func (c *Compositor) logInfof(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Infof("compose", format, args...)
	}
}

func (c *Compositor) logWarnf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Warnf("compose", format, args...)
	}
}

func (c *Compositor) logErrorf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Errorf("compose", format, args...)
	}
}
