// Package app wires the subsystems together: it owns the shared logger
// contract and the sequential per-product batch loop.
package app

import (
	"path/filepath"

	"github.com/shelfworks/promoframe/internal/compose"
	"github.com/shelfworks/promoframe/internal/config"
	"github.com/shelfworks/promoframe/internal/files"
	"github.com/shelfworks/promoframe/internal/price"
)

const (
	// ProcessedSuffix names the composite written per product.
	ProcessedSuffix = "_processed.png"
	// ThumbSuffix names the optional thumbnail written per product.
	ThumbSuffix = "_thumb.png"
)

// Source-data keys the batch binds before each render. The compositor
// itself is agnostic to these names; they are the conventions the layer
// configuration is written against.
const (
	KeyProductImage = "product_image"
	KeyPriceText    = "price_text"
	KeyFileName     = "file_name"
)

var defaultThumbBox = config.Dimensions{Width: 400, Height: 400}

// Batch runs the sequential product loop: one composite per product
// code, each success or failure counted, none aborting the rest. It
// shares one compositor and source-data store, so it must not be run
// concurrently; parallel batches need separate instances throughout.
type Batch struct {
	Files      *files.Manager
	Prices     *price.Book
	Compositor *compose.Compositor
	Logger     Logger

	Thumbs   bool
	ThumbBox config.Dimensions
}

// Report counts the outcome of one batch run.
type Report struct {
	Succeeded int
	Failed    int
	Produced  []string
}

// Run provisions the product folders and renders every product. The
// returned error covers setup only (no products, unreadable source);
// per-product failures land in the report.
func (b *Batch) Run() (*Report, error) {
	provision, err := b.Files.Provision()
	if err != nil {
		return nil, err
	}
	b.logInfof("processing %d products", len(provision.ProductCodes))

	report := &Report{}
	for _, code := range provision.ProductCodes {
		if b.processProduct(code, report) {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}

	b.logInfof("batch done: %d succeeded, %d failed", report.Succeeded, report.Failed)
	for _, path := range report.Produced {
		b.logInfof("produced %s", path)
	}
	return report, nil
}

func (b *Batch) processProduct(code string, report *Report) bool {
	b.logInfof("processing product %s", code)

	mainImage, ok := b.Files.MainImageFor(code)
	if !ok {
		b.logErrorf("product %s: no main image, skipping", code)
		return false
	}

	priceText := b.Prices.Get(code)
	b.Compositor.UpdateSourceData(map[string]string{
		KeyProductImage: mainImage,
		KeyPriceText:    priceText,
		KeyFileName:     code,
	})

	outputPath := filepath.Join(b.Files.ResultDir, code, code+ProcessedSuffix)
	err := b.Compositor.CreateComposite(outputPath, nil, b.Compositor.Config.BackgroundColor())
	if err != nil {
		b.logErrorf("product %s: %v", code, err)
		return false
	}
	report.Produced = append(report.Produced, outputPath)

	if b.Thumbs {
		box := b.ThumbBox
		if box.Width <= 0 || box.Height <= 0 {
			box = defaultThumbBox
		}
		thumbPath := filepath.Join(b.Files.ResultDir, code, code+ThumbSuffix)
		// Thumbnails are a bonus artifact; their failure does not fail
		// the product.
		if err := b.Compositor.CreateThumbnail(mainImage, thumbPath, box, true); err != nil {
			b.logWarnf("product %s: thumbnail: %v", code, err)
		} else {
			report.Produced = append(report.Produced, thumbPath)
		}
	}
	return true
}

func (b *Batch) logInfof(format string, args ...interface{}) {
	if b.Logger != nil {
		b.Logger.Infof("batch", format, args...)
	}
}

func (b *Batch) logWarnf(format string, args ...interface{}) {
	if b.Logger != nil {
		b.Logger.Warnf("batch", format, args...)
	}
}

func (b *Batch) logErrorf(format string, args ...interface{}) {
	if b.Logger != nil {
		b.Logger.Errorf("batch", format, args...)
	}
}
