// Package price loads and serves the product price table that feeds the
// ${price_text} variable: formatted lookup with a configured default for
// unknown products, plus save-back and simple statistics.
package price

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Warnf(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Format controls how raw prices render for display. The format string
// carries a {price} slot.
type Format struct {
	Pattern       string `yaml:"default_format"`
	DefaultPrice  string `yaml:"default_price"`
	DecimalPlaces *int   `yaml:"decimal_places"`
}

type document struct {
	Config Format            `yaml:"price_config"`
	Prices map[string]string `yaml:"prices"`
}

// Book maps product codes to display prices.
type Book struct {
	path   string
	format Format
	prices map[string]string
	logger Logger
}

// Load reads a YAML price table. A missing or unreadable file yields a
// book with defaults only; prices are a convenience, not a requirement.
func Load(path string, logger Logger) *Book {
	book := &Book{
		path:   path,
		format: Format{Pattern: "¥{price}", DefaultPrice: "99.00"},
		prices: map[string]string{},
		logger: logger,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		book.logWarnf("price table %s unavailable, using defaults: %v", path, err)
		return book
	}
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		book.logErrorf("price table %s malformed, using defaults: %v", path, err)
		return book
	}

	if doc.Config.Pattern != "" {
		book.format.Pattern = doc.Config.Pattern
	}
	if doc.Config.DefaultPrice != "" {
		book.format.DefaultPrice = doc.Config.DefaultPrice
	}
	book.format.DecimalPlaces = doc.Config.DecimalPlaces
	for code, value := range doc.Prices {
		book.prices[code] = value
	}
	book.logInfof("loaded %d prices from %s", len(book.prices), path)
	return book
}

// Get returns the formatted display price for a product, falling back
// to the configured default price for unknown codes.
func (b *Book) Get(code string) string {
	raw, ok := b.prices[code]
	if !ok {
		raw = b.format.DefaultPrice
		b.logWarnf("no price for %s, using default %s", code, raw)
	}
	return b.formatPrice(raw)
}

func (b *Book) formatPrice(raw string) string {
	places := 2
	if b.format.DecimalPlaces != nil {
		places = *b.format.DecimalPlaces
	}
	if places >= 0 {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			raw = strconv.FormatFloat(value, 'f', places, 64)
		} else {
			b.logWarnf("price %q is not numeric, formatting verbatim", raw)
		}
	}
	return strings.ReplaceAll(b.format.Pattern, "{price}", raw)
}

// Has reports whether an explicit price exists for the product.
func (b *Book) Has(code string) bool {
	_, ok := b.prices[code]
	return ok
}

// Add sets or replaces a product's raw price.
func (b *Book) Add(code, rawPrice string) {
	b.prices[code] = rawPrice
}

// All returns a copy of the raw price table.
func (b *Book) All() map[string]string {
	copied := make(map[string]string, len(b.prices))
	for code, value := range b.prices {
		copied[code] = value
	}
	return copied
}

// Save writes the table back as YAML. An empty path reuses the loaded
// path.
func (b *Book) Save(path string) error {
	if path == "" {
		path = b.path
	}
	out, err := yaml.Marshal(document{Config: b.format, Prices: b.prices})
	if err != nil {
		return fmt.Errorf("encode price table: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		b.logErrorf("save price table %s: %v", path, err)
		return err
	}
	b.logInfof("price table saved: %s", path)
	return nil
}

// Statistics summarizes the numeric prices in the table.
type Statistics struct {
	TotalProducts int
	PriceRange    string
	AveragePrice  float64
}

func (b *Book) Statistics() Statistics {
	stats := Statistics{TotalProducts: len(b.prices)}
	if len(b.prices) == 0 {
		stats.PriceRange = "no data"
		return stats
	}

	var values []float64
	for _, raw := range b.prices {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		stats.PriceRange = "non-numeric"
		return stats
	}
	sort.Float64s(values)
	var sum float64
	for _, v := range values {
		sum += v
	}
	stats.PriceRange = fmt.Sprintf("¥%.2f - ¥%.2f", values[0], values[len(values)-1])
	stats.AveragePrice = sum / float64(len(values))
	return stats
}

func (b *Book) logInfof(format string, args ...interface{}) {
	if b.logger != nil {
		b.logger.Infof("price", format, args...)
	}
}

func (b *Book) logWarnf(format string, args ...interface{}) {
	if b.logger != nil {
		b.logger.Warnf("price", format, args...)
	}
}

func (b *Book) logErrorf(format string, args ...interface{}) {
	if b.logger != nil {
		b.logger.Errorf("price", format, args...)
	}
}
