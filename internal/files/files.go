// Package files handles the batch tool's filesystem surface: discovering
// product photos in the source directory, deriving product codes from
// file names, and provisioning one result folder per product.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shelfworks/promoframe/internal/config"
)

// supportedExtensions are the photo formats picked up from the source
// directory. Everything else is ignored.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Warnf(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Manager scans a source directory of product photos and provisions the
// per-product result folders, copying any configured static files into
// each.
type Manager struct {
	SourceDir    string
	ResultDir    string
	CopyFiles    []config.CopyFile
	CopySettings config.CopySettings
	Logger       Logger
}

// NewManager validates the source directory and ensures the result
// directory exists.
func NewManager(sourceDir, resultDir string, cfg *config.Config, logger Logger) (*Manager, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("source directory %s: %w", sourceDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source path is not a directory: %s", sourceDir)
	}
	if err := os.MkdirAll(resultDir, 0o755); err != nil {
		return nil, fmt.Errorf("create result directory %s: %w", resultDir, err)
	}
	m := &Manager{SourceDir: sourceDir, ResultDir: resultDir, Logger: logger}
	if cfg != nil {
		m.CopyFiles = cfg.CopyFiles
		m.CopySettings = cfg.CopySettings
	}
	return m, nil
}

// ImageFiles returns the supported image files directly inside the
// source directory, sorted by name.
func (m *Manager) ImageFiles() ([]string, error) {
	entries, err := os.ReadDir(m.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(m.SourceDir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// ProductCodes derives the unique product codes from the image file
// names, sorted. A trailing _<digits> suffix marks one of several photos
// of the same product and is stripped; otherwise the bare stem is the
// code. Codes shorter than two runes are rejected.
func (m *Manager) ProductCodes() ([]string, error) {
	images, err := m.ImageFiles()
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, path := range images {
		code := ExtractCode(stem(path))
		if !validCode(code) {
			m.logWarnf("ignoring invalid product code from %s", filepath.Base(path))
			continue
		}
		seen[code] = true
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

// MainImageFor picks the primary photo for a product: <code>_1 is
// preferred over a bare <code> file. Returns false when neither exists.
func (m *Manager) MainImageFor(code string) (string, bool) {
	images, err := m.ImageFiles()
	if err != nil {
		m.logErrorf("main image lookup for %s: %v", code, err)
		return "", false
	}
	var bare string
	for _, path := range images {
		switch stem(path) {
		case code + "_1":
			return path, true
		case code:
			bare = path
		}
	}
	if bare != "" {
		return bare, true
	}
	m.logWarnf("no main image for product %s", code)
	return "", false
}

// RelatedFiles lists every photo belonging to a product (the bare code
// and any _<n> variants), sorted.
func (m *Manager) RelatedFiles(code string) []string {
	images, err := m.ImageFiles()
	if err != nil {
		m.logErrorf("related files for %s: %v", code, err)
		return nil
	}
	var related []string
	for _, path := range images {
		s := stem(path)
		if s == code || strings.HasPrefix(s, code+"_") {
			related = append(related, path)
		}
	}
	return related
}

// FileInfo summarizes the source directory: image and product counts
// plus the photos grouped per product code.
type FileInfo struct {
	TotalImages   int
	TotalProducts int
	SourceDir     string
	ResultDir     string
	ProductCodes  []string
	ProductFiles  map[string][]string
}

// FileInfo scans the source directory and reports the aggregate counts
// and per-product file groupings.
func (m *Manager) FileInfo() (*FileInfo, error) {
	images, err := m.ImageFiles()
	if err != nil {
		return nil, err
	}
	codes, err := m.ProductCodes()
	if err != nil {
		return nil, err
	}
	info := &FileInfo{
		TotalImages:   len(images),
		TotalProducts: len(codes),
		SourceDir:     m.SourceDir,
		ResultDir:     m.ResultDir,
		ProductCodes:  codes,
		ProductFiles:  make(map[string][]string, len(codes)),
	}
	for _, code := range codes {
		info.ProductFiles[code] = m.RelatedFiles(code)
	}
	return info, nil
}

// ExtractCode strips a trailing _<digits> photo-index suffix from a file
// stem; without one, the stem itself is the product code.
func ExtractCode(fileStem string) string {
	idx := strings.LastIndex(fileStem, "_")
	if idx <= 0 {
		return fileStem
	}
	suffix := fileStem[idx+1:]
	if suffix == "" {
		return fileStem
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return fileStem
		}
	}
	return fileStem[:idx]
}

func validCode(code string) bool {
	return len([]rune(code)) >= 2
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (m *Manager) logInfof(format string, args ...interface{}) {
	if m.Logger != nil {
		m.Logger.Infof("files", format, args...)
	}
}

func (m *Manager) logWarnf(format string, args ...interface{}) {
	if m.Logger != nil {
		m.Logger.Warnf("files", format, args...)
	}
}

func (m *Manager) logErrorf(format string, args ...interface{}) {
	if m.Logger != nil {
		m.Logger.Errorf("files", format, args...)
	}
}
