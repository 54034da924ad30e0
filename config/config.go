// Package config defines the core's TOML-decoded settings, following the
// teacher's choice of github.com/BurntSushi/toml over a hand-rolled flag set
// for structured configuration.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Region selects the console timing model (CPU/PPU clock ratios, frame
// timing) the core emulates.
type Region string

const (
	RegionNTSC Region = "ntsc"
	RegionPAL  Region = "pal"
)

// EmulationConfig is the core's complete set of host-tunable settings,
// decoded from a TOML file.
type EmulationConfig struct {
	Region Region `toml:"region"`
	Debug  bool   `toml:"debug"`

	Audio  AudioConfig  `toml:"audio"`
	Input  InputConfig  `toml:"input"`
	Timing TimingConfig `toml:"timing"`
}

type AudioConfig struct {
	SampleRate int `toml:"sample_rate"`
}

// InputConfig gates peripherals the Open Question in spec.md §9 says must
// never be silently assumed on.
type InputConfig struct {
	ZapperEnabled bool `toml:"zapper_enabled"`
}

type TimingConfig struct {
	// RunaheadFrames, when nonzero, is used only by cmd/nescore's bench
	// subcommand: inside its timed window, each frame is preceded by this
	// many speculative frames that are rolled back via a snapshot round
	// trip; the core's own frame stepping never skips ahead, so this has
	// no effect on emulated state or its determinism (spec.md §5).
	RunaheadFrames int `toml:"runahead_frames"`
}

// Default returns the configuration used when no file is present: NTSC
// timing, a 44.1 kHz audio buffer, and the Zapper disabled.
func Default() EmulationConfig {
	return EmulationConfig{
		Region: RegionNTSC,
		Audio:  AudioConfig{SampleRate: 44100},
		Timing: TimingConfig{RunaheadFrames: 0},
	}
}

// Load decodes a TOML configuration file at path, falling back to Default
// when the file doesn't exist.
func Load(path string) (EmulationConfig, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return EmulationConfig{}, err
	}
	return cfg, nil
}
