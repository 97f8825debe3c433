package main

import (
	"errors"
	"os"
	"strings"

	"github.com/google/uuid"

	"zillow-scraper/config"
	"zillow-scraper/services"
	"zillow-scraper/storage"
	"zillow-scraper/utils"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := utils.NewLogger()

	cfg, err := config.Load(args, os.Stderr)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			return 0
		}
		logger.Error("Invalid configuration: %v", err)
		return 1
	}

	level, err := utils.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("%v; using INFO", err)
	}
	logger.SetLevel(level)
	logger = logger.With(uuid.NewString()[:8])

	logger.Info("=== Zillow Search Scraper starting ===")
	logger.Info("Input file: %s", cfg.InputPath)
	logger.Info("Output directory: %s", cfg.OutputDir)
	logger.Info("Output formats: %s", strings.Join(cfg.Formats, ", "))

	if _, err := storage.ValidateFormats(cfg.Formats); err != nil {
		logger.Error("Invalid export formats: %v", err)
		return 1
	}

	rawListings, err := storage.LoadInput(cfg.InputPath, logger)
	if err != nil {
		logger.Error("Failed to parse input data: %v", err)
		return 1
	}

	result := services.ParseListings(rawListings, logger)
	for _, d := range result.Diagnostics {
		logger.Debug("Skipped %s", d)
	}

	listings := result.Listings
	if len(listings) == 0 {
		logger.Warn("No listings parsed from input data.")
		return 0
	}

	if cfg.Filter.Enabled {
		listings = services.FilterByRadius(listings,
			cfg.Filter.CenterLat, cfg.Filter.CenterLon, cfg.Filter.RadiusKm, logger)
	}

	logger.Info("%d listings selected for export", len(listings))

	insights := services.NewInsightService(logger)
	insights.Print(os.Stdout, insights.Generate(listings))

	written, err := storage.ExportListings(listings, cfg.OutputDir, cfg.Formats, logger)
	if err != nil {
		logger.Error("Failed to export listings: %v", err)
		return 1
	}

	logger.Info("Done. %d file(s) exported to %s", len(written), cfg.OutputDir)
	return 0
}
