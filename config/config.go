package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInputPath = "data/input.sample.json"
	DefaultOutputDir = "data/output"
	DefaultFormats   = "json,csv,html"
	DefaultLogLevel  = "info"
)

// Config holds all application configuration for one run.
type Config struct {
	InputPath  string
	OutputDir  string
	Formats    []string
	LogLevel   string
	ConfigFile string
	Filter     RadiusFilter
}

// RadiusFilter restricts output to listings near a center point.
// It is active once a radius is given by env, config file or flag; a zero
// radius keeps only listings exactly at the center.
type RadiusFilter struct {
	Enabled   bool
	CenterLat float64
	CenterLon float64
	RadiusKm  float64
}

// fileConfig mirrors the optional YAML config file.
type fileConfig struct {
	Input     string   `yaml:"input"`
	OutputDir string   `yaml:"output_dir"`
	Formats   []string `yaml:"formats"`
	LogLevel  string   `yaml:"log_level"`
	Filter    *struct {
		CenterLat float64 `yaml:"center_lat"`
		CenterLon float64 `yaml:"center_lon"`
		RadiusKm  float64 `yaml:"radius_km"`
	} `yaml:"filter"`
}

// ErrHelp is returned when -h or -help was requested.
var ErrHelp = flag.ErrHelp

// Load builds the configuration from, in increasing precedence: built-in
// defaults, environment variables (a .env file is read when present), the
// YAML file named by -config or ZILLOW_CONFIG, and explicitly set flags.
func Load(args []string, usage io.Writer) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		InputPath:  getEnv("ZILLOW_INPUT", DefaultInputPath),
		OutputDir:  getEnv("ZILLOW_OUTPUT_DIR", DefaultOutputDir),
		Formats:    SplitFormats(getEnv("ZILLOW_FORMATS", DefaultFormats)),
		LogLevel:   getEnv("LOG_LEVEL", DefaultLogLevel),
		ConfigFile: os.Getenv("ZILLOW_CONFIG"),
	}
	centerGiven, err := cfg.applyEnvFilter()
	if err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("zillow-scraper", flag.ContinueOnError)
	fs.SetOutput(usage)
	input := fs.String("input", cfg.InputPath, "Path to input JSON file")
	fs.StringVar(input, "i", cfg.InputPath, "Shorthand for -input")
	outputDir := fs.String("output-dir", cfg.OutputDir, "Directory to write output files")
	fs.StringVar(outputDir, "o", cfg.OutputDir, "Shorthand for -output-dir")
	formats := fs.String("formats", strings.Join(cfg.Formats, ","), "Comma-separated output formats. Supported: json, csv, html")
	fs.StringVar(formats, "f", strings.Join(cfg.Formats, ","), "Shorthand for -formats")
	logLevel := fs.String("log-level", cfg.LogLevel, "Logging level (DEBUG, INFO, WARNING, ERROR)")
	configFile := fs.String("config", cfg.ConfigFile, "Optional YAML config file")
	centerLat := fs.Float64("center-lat", 0, "Radius filter center latitude")
	centerLon := fs.Float64("center-lon", 0, "Radius filter center longitude")
	radiusKm := fs.Float64("radius-km", 0, "Keep only listings within this many km of the center")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg.ConfigFile = *configFile
	if cfg.ConfigFile != "" {
		if err := cfg.applyFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["input"] || set["i"] {
		cfg.InputPath = *input
	}
	if set["output-dir"] || set["o"] {
		cfg.OutputDir = *outputDir
	}
	if set["formats"] || set["f"] {
		cfg.Formats = SplitFormats(*formats)
	}
	if set["log-level"] {
		cfg.LogLevel = *logLevel
	}
	if set["center-lat"] {
		cfg.Filter.CenterLat = *centerLat
		centerGiven = true
	}
	if set["center-lon"] {
		cfg.Filter.CenterLon = *centerLon
		centerGiven = true
	}
	if set["radius-km"] {
		cfg.Filter.RadiusKm = *radiusKm
		cfg.Filter.Enabled = true
	}
	if centerGiven && !cfg.Filter.Enabled {
		return nil, errors.New("config: a filter center was given without a radius (-radius-km or ZILLOW_RADIUS_KM)")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvFilter reads the radius filter variables. A radius enables the
// filter; a center alone is reported back so Load can reject it once flags
// and the config file have had their say.
func (c *Config) applyEnvFilter() (centerGiven bool, err error) {
	lat, latSet, err := getEnvFloat("ZILLOW_CENTER_LAT")
	if err != nil {
		return false, err
	}
	lon, lonSet, err := getEnvFloat("ZILLOW_CENTER_LON")
	if err != nil {
		return false, err
	}
	radius, radiusSet, err := getEnvFloat("ZILLOW_RADIUS_KM")
	if err != nil {
		return false, err
	}

	c.Filter.CenterLat = lat
	c.Filter.CenterLon = lon
	if radiusSet {
		c.Filter.RadiusKm = radius
		c.Filter.Enabled = true
	}
	return latSet || lonSet, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}

	if fc.Input != "" {
		c.InputPath = fc.Input
	}
	if fc.OutputDir != "" {
		c.OutputDir = fc.OutputDir
	}
	if len(fc.Formats) > 0 {
		c.Formats = fc.Formats
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.Filter != nil {
		c.Filter = RadiusFilter{
			Enabled:   true,
			CenterLat: fc.Filter.CenterLat,
			CenterLon: fc.Filter.CenterLon,
			RadiusKm:  fc.Filter.RadiusKm,
		}
	}
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.InputPath) == "" {
		return errors.New("config: input path is required")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("config: output directory is required")
	}
	if !c.Filter.Enabled {
		return nil
	}
	if c.Filter.RadiusKm < 0 {
		return fmt.Errorf("config: radius must not be negative, got %v", c.Filter.RadiusKm)
	}
	if c.Filter.CenterLat < -90 || c.Filter.CenterLat > 90 {
		return fmt.Errorf("config: center latitude %v out of range", c.Filter.CenterLat)
	}
	if c.Filter.CenterLon < -180 || c.Filter.CenterLon > 180 {
		return fmt.Errorf("config: center longitude %v out of range", c.Filter.CenterLon)
	}
	return nil
}

// SplitFormats splits a comma or space separated format list.
func SplitFormats(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvFloat parses a numeric variable. An unset or empty variable is not
// an error; a malformed one is.
func getEnvFloat(key string) (float64, bool, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, fmt.Errorf("config: parse %s=%q: %w", key, val, err)
	}
	return f, true, nil
}
