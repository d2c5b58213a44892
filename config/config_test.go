package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mixplan.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Paths.Database != "mixplan.db" || cfg.Planner.DefaultMode != "openFormat" {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[paths]
database = "/var/lib/mixplan/cache.db"

[analysis]
workers = 4
version = 2

[planner]
default_mode = "warmUp"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Paths.Database != "/var/lib/mixplan/cache.db" {
		t.Errorf("Database = %q", cfg.Paths.Database)
	}
	if cfg.Analysis.Workers != 4 || cfg.Analysis.Version != 2 {
		t.Errorf("Analysis = %+v", cfg.Analysis)
	}
	// Untouched fields keep their defaults
	if cfg.Analysis.WaveformPoints != 1024 {
		t.Errorf("WaveformPoints = %d, want default 1024", cfg.Analysis.WaveformPoints)
	}
	if cfg.Planner.DefaultMode != "warmUp" {
		t.Errorf("DefaultMode = %q", cfg.Planner.DefaultMode)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{"bad mode", "[planner]\ndefault_mode = \"chaos\"\n", "planner.default_mode"},
		{"negative workers", "[analysis]\nworkers = -1\n", "analysis.workers"},
		{"zero version", "[analysis]\nversion = 0\n", "analysis.version"},
		{"zero waveform points", "[analysis]\nwaveform_points = 0\n", "analysis.waveform_points"},
		{"empty database", "[paths]\ndatabase = \"\"\n", "paths.database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load succeeded, want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q does not name field %s", err, tt.wantField)
			}
		})
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	if _, err := Load(writeConfig(t, "this is not toml = =")); err == nil {
		t.Fatal("Load succeeded on malformed TOML")
	}
}

func TestSampleConfigLoadsAndValidates(t *testing.T) {
	cfg, err := Load(writeConfig(t, SampleConfig()))
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config is invalid: %v", err)
	}
}
