package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ZILLOW_INPUT", "ZILLOW_OUTPUT_DIR", "ZILLOW_FORMATS", "LOG_LEVEL", "ZILLOW_CONFIG",
		"ZILLOW_RADIUS_KM", "ZILLOW_CENTER_LAT", "ZILLOW_CENTER_LON",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil, io.Discard)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.InputPath != DefaultInputPath {
		t.Errorf("InputPath = %q; want %q", cfg.InputPath, DefaultInputPath)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q; want %q", cfg.OutputDir, DefaultOutputDir)
	}
	if want := []string{"json", "csv", "html"}; !reflect.DeepEqual(cfg.Formats, want) {
		t.Errorf("Formats = %v; want %v", cfg.Formats, want)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.Filter.Enabled {
		t.Error("radius filter should be off by default")
	}
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ZILLOW_INPUT", "env.json")
	t.Setenv("ZILLOW_FORMATS", "csv")
	t.Setenv("ZILLOW_RADIUS_KM", "5")
	t.Setenv("ZILLOW_CENTER_LAT", "47.6")
	t.Setenv("ZILLOW_CENTER_LON", "-122.3")

	cfg, err := Load(nil, io.Discard)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.InputPath != "env.json" {
		t.Errorf("InputPath = %q; want env.json", cfg.InputPath)
	}
	if !reflect.DeepEqual(cfg.Formats, []string{"csv"}) {
		t.Errorf("Formats = %v; want [csv]", cfg.Formats)
	}
	want := RadiusFilter{Enabled: true, CenterLat: 47.6, CenterLon: -122.3, RadiusKm: 5}
	if cfg.Filter != want {
		t.Errorf("Filter = %+v; want %+v", cfg.Filter, want)
	}
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ZILLOW_INPUT", "env.json")

	cfg, err := Load([]string{"-i", "flag.json", "--output-dir", "out", "-f", "json, html", "-log-level", "debug"}, io.Discard)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.InputPath != "flag.json" {
		t.Errorf("InputPath = %q; want flag.json", cfg.InputPath)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("OutputDir = %q; want out", cfg.OutputDir)
	}
	if want := []string{"json", "html"}; !reflect.DeepEqual(cfg.Formats, want) {
		t.Errorf("Formats = %v; want %v", cfg.Formats, want)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q; want debug", cfg.LogLevel)
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "zillow.yaml")
	yamlDoc := `input: file.json
output_dir: file-out
formats: [html]
log_level: warning
filter:
  center_lat: 45.5
  center_lon: -122.7
  radius_km: 12.5
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load([]string{"-config", path, "-o", "flag-out"}, io.Discard)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.InputPath != "file.json" {
		t.Errorf("InputPath = %q; want file.json", cfg.InputPath)
	}
	if cfg.OutputDir != "flag-out" {
		t.Errorf("OutputDir = %q; flags should beat the file", cfg.OutputDir)
	}
	if !reflect.DeepEqual(cfg.Formats, []string{"html"}) {
		t.Errorf("Formats = %v; want [html]", cfg.Formats)
	}
	if cfg.LogLevel != "warning" {
		t.Errorf("LogLevel = %q; want warning", cfg.LogLevel)
	}
	want := RadiusFilter{Enabled: true, CenterLat: 45.5, CenterLon: -122.7, RadiusKm: 12.5}
	if cfg.Filter != want {
		t.Errorf("Filter = %+v; want %+v", cfg.Filter, want)
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("formats: [json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{bad, filepath.Join(dir, "missing.yaml")} {
		if _, err := Load([]string{"-config", path}, io.Discard); err == nil {
			t.Errorf("Load(-config %s) should fail", path)
		}
	}
}

func TestLoadRadiusFlags(t *testing.T) {
	clearEnv(t)

	cfg, err := Load([]string{"-center-lat", "47.6", "-center-lon", "-122.3", "-radius-km", "0"}, io.Discard)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := RadiusFilter{Enabled: true, CenterLat: 47.6, CenterLon: -122.3, RadiusKm: 0}
	if cfg.Filter != want {
		t.Errorf("Filter = %+v; want %+v", cfg.Filter, want)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative radius", []string{"-radius-km", "-1"}},
		{"latitude out of range", []string{"-radius-km", "1", "-center-lat", "91"}},
		{"longitude out of range", []string{"-radius-km", "1", "-center-lon", "-181"}},
		{"blank input", []string{"-input", " "}},
		{"unknown flag", []string{"-verbose"}},
		{"extra argument", []string{"input.json"}},
		{"center without radius", []string{"-center-lat", "47.6", "-center-lon", "-122.3"}},
	}

	for _, tt := range tests {
		clearEnv(t)
		if _, err := Load(tt.args, io.Discard); err == nil {
			t.Errorf("%s: Load(%v) should fail", tt.name, tt.args)
		}
	}
}

func TestLoadHelp(t *testing.T) {
	clearEnv(t)
	_, err := Load([]string{"-h"}, io.Discard)
	if !errors.Is(err, ErrHelp) {
		t.Errorf("Load(-h) error = %v; want ErrHelp", err)
	}
}

func TestSplitFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"json,csv,html", []string{"json", "csv", "html"}},
		{"json, csv", []string{"json", "csv"}},
		{"json csv", []string{"json", "csv"}},
		{" ,, ", []string{}},
	}
	for _, tt := range tests {
		got := SplitFormats(tt.in)
		if len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
			t.Errorf("SplitFormats(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadRejectsMalformedFilterEnv(t *testing.T) {
	for _, key := range []string{"ZILLOW_RADIUS_KM", "ZILLOW_CENTER_LAT", "ZILLOW_CENTER_LON"} {
		clearEnv(t)
		t.Setenv("ZILLOW_RADIUS_KM", "10")
		t.Setenv(key, "ten")

		_, err := Load(nil, io.Discard)
		if err == nil {
			t.Errorf("Load with %s=ten should fail", key)
			continue
		}
		if !strings.Contains(err.Error(), "parse "+key) {
			t.Errorf("Load with %s=ten: error = %q; want it to name the variable", key, err)
		}
	}
}

func TestLoadEnvCenterWithFlagRadius(t *testing.T) {
	clearEnv(t)
	t.Setenv("ZILLOW_CENTER_LAT", "45.5")
	t.Setenv("ZILLOW_CENTER_LON", "-122.7")

	if _, err := Load(nil, io.Discard); err == nil {
		t.Error("a center from the environment without a radius should fail")
	}

	cfg, err := Load([]string{"-radius-km", "3"}, io.Discard)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := RadiusFilter{Enabled: true, CenterLat: 45.5, CenterLon: -122.7, RadiusKm: 3}
	if cfg.Filter != want {
		t.Errorf("Filter = %+v; want %+v", cfg.Filter, want)
	}
}
