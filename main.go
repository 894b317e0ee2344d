package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/shelfworks/promoframe/internal/app"
	"github.com/shelfworks/promoframe/internal/compose"
	"github.com/shelfworks/promoframe/internal/config"
	"github.com/shelfworks/promoframe/internal/files"
	"github.com/shelfworks/promoframe/internal/price"
	"github.com/shelfworks/promoframe/internal/vars"
)

func main() {
	// Optional .env so deployments can pin directories without flags.
	_ = godotenv.Load()

	configPath := flag.String("config", envOr("PROMOFRAME_CONFIG", "config.yaml"), "layer configuration file")
	pricesPath := flag.String("prices", envOr("PROMOFRAME_PRICES", "prices.yaml"), "price table file")
	sourceDir := flag.String("source", envOr("PROMOFRAME_SOURCE_DIR", "source_data"), "directory of product photos")
	resultDir := flag.String("result", envOr("PROMOFRAME_RESULT_DIR", "result_data"), "directory for per-product output folders")
	thumbs := flag.Bool("thumbs", false, "also write a thumbnail per product")
	previewOnly := flag.Bool("preview-only", false, "print the layer configuration and exit")
	logPath := flag.String("log", envOr("PROMOFRAME_LOG", ""), "also write the log to this file")
	debug := flag.Bool("debug", false, "verbose logging to a log file (default ./promoframe-debug.log)")
	flag.Parse()

	var logger app.Logger = app.NewFileLogger(os.Stdout)
	if sink := logSinkPath(*logPath, *debug); sink != "" {
		f, err := os.OpenFile(sink, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			logger = app.MultiLogger{app.NewFileLogger(os.Stdout), app.NewFileLogger(f)}
			logger.Infof("main", "logging to %s", sink)
		} else {
			fmt.Println("log open error:", err)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Errorf("main", "configuration: %v", err)
		os.Exit(1)
	}

	compositor := compose.NewCompositor(cfg, vars.NewStore(nil), logger)

	logger.Infof("main", "layer configuration:")
	for _, summary := range compositor.PreviewLayers() {
		logger.Infof("main", "  %s: %s %q at %s (%s)",
			summary.Name, summary.Type, summary.Content, summary.Position, summary.Size)
	}
	if *previewOnly {
		return
	}

	manager, err := files.NewManager(*sourceDir, *resultDir, cfg, logger)
	if err != nil {
		logger.Errorf("main", "file manager: %v", err)
		os.Exit(1)
	}

	if info, err := manager.FileInfo(); err == nil {
		logger.Infof("main", "source: %d images across %d products", info.TotalImages, info.TotalProducts)
	}

	book := price.Load(*pricesPath, logger)
	stats := book.Statistics()
	logger.Infof("main", "price table: %d products, range %s", stats.TotalProducts, stats.PriceRange)

	batch := &app.Batch{
		Files:      manager,
		Prices:     book,
		Compositor: compositor,
		Logger:     logger,
		Thumbs:     *thumbs,
	}
	report, err := batch.Run()
	if err != nil {
		logger.Errorf("main", "batch: %v", err)
		os.Exit(1)
	}
	if report.Failed > 0 {
		os.Exit(1)
	}
}

// logSinkPath picks the log file, if any: an explicit -log path wins,
// and -debug falls back to its conventional file when -log is unset.
func logSinkPath(logPath string, debug bool) string {
	if logPath != "" {
		return logPath
	}
	if debug {
		return "./promoframe-debug.log"
	}
	return ""
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
