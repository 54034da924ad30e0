package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Region != RegionNTSC || cfg.Audio.SampleRate != 44100 {
		t.Fatalf("Load without a file should return Default(), got %+v", cfg)
	}
}

func TestLoadDecodesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `region = "pal"
debug = true

[audio]
sample_rate = 48000

[input]
zapper_enabled = true

[timing]
runahead_frames = 2
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Region != RegionPAL {
		t.Fatalf("Region = %q, want pal", cfg.Region)
	}
	if !cfg.Debug {
		t.Fatal("Debug should be true")
	}
	if cfg.Audio.SampleRate != 48000 {
		t.Fatalf("SampleRate = %d, want 48000", cfg.Audio.SampleRate)
	}
	if !cfg.Input.ZapperEnabled {
		t.Fatal("ZapperEnabled should be true")
	}
	if cfg.Timing.RunaheadFrames != 2 {
		t.Fatalf("RunaheadFrames = %d, want 2", cfg.Timing.RunaheadFrames)
	}
}
