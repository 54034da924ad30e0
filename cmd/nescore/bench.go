package main

import (
	"bytes"
	"fmt"
	"time"

	"nescore/nes"
)

// BenchCmd measures raw emulation throughput, and — when the config's
// Timing.RunaheadFrames is set — the added cost of speculatively running
// ahead N frames and rolling back every frame via a snapshot round trip (the
// technique a host uses to hide input lag without affecting what the core
// itself computes; see config.TimingConfig.RunaheadFrames's doc comment).
type BenchCmd struct {
	RomPath string `arg:"" name:"rom" help:"Path to an iNES ROM image." type:"existingfile"`

	Config string `name:"config" help:"Path to a TOML config file." type:"path"`
	Frames int    `name:"frames" help:"Number of frames to run." default:"600"`
}

func (b *BenchCmd) Run() error {
	cfg, err := loadConfig(b.Config)
	if err != nil {
		return err
	}
	rom, err := loadROM(b.RomPath)
	if err != nil {
		return err
	}

	console := nes.New(cfg)
	if err := console.InsertCartridge(rom); err != nil {
		return err
	}
	console.PowerOn()

	start := time.Now()
	if cfg.Timing.RunaheadFrames > 0 {
		if err := runWithRunahead(console, b.Frames, cfg.Timing.RunaheadFrames); err != nil {
			return err
		}
	} else {
		for i := 0; i < b.Frames; i++ {
			console.RunFrame()
		}
	}
	elapsed := time.Since(start)

	fps := float64(b.Frames) / elapsed.Seconds()
	fmt.Printf("%d frames in %s (%.1f fps, runahead=%d)\n", b.Frames, elapsed, fps, cfg.Timing.RunaheadFrames)
	return nil
}

// runWithRunahead advances the console n real frames, each preceded by a
// speculative run of `ahead` extra frames that's immediately rolled back via
// a snapshot round trip. The speculative frames' only purpose here is to
// exercise the same snapshot/restore cost a real run-ahead host would pay;
// they don't change anything the core itself produces.
func runWithRunahead(console *nes.Console, n, ahead int) error {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		buf.Reset()
		if err := console.SaveSnapshot(&buf); err != nil {
			return err
		}
		for j := 0; j < ahead; j++ {
			console.RunFrame()
		}
		if err := console.LoadSnapshot(bytes.NewReader(buf.Bytes())); err != nil {
			return err
		}
		console.RunFrame()
	}
	return nil
}
