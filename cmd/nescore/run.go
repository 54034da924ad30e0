package main

import (
	"fmt"
	"os"

	"nescore/config"
	"nescore/ines"
	"nescore/input"
	"nescore/nes"
)

type RunCmd struct {
	RomPath string `arg:"" name:"rom" help:"Path to an iNES ROM image." type:"existingfile"`

	Config    string `name:"config" help:"Path to a TOML config file." type:"path"`
	Frames    int    `name:"frames" help:"Number of frames to run." default:"60"`
	SaveState string `name:"save-state" help:"Write a snapshot to this path after running." type:"path"`
	LoadState string `name:"load-state" help:"Restore a snapshot from this path before running." type:"path"`
	Screenshot string `name:"screenshot" help:"Write the final frame as a PPM image." type:"path"`
	PressA    bool   `name:"press-a" help:"Hold the A button on controller 1 for the whole run (smoke-test convenience)."`
}

func (r *RunCmd) Run() error {
	cfg, err := loadConfig(r.Config)
	if err != nil {
		return err
	}

	rom, err := loadROM(r.RomPath)
	if err != nil {
		return err
	}

	console := nes.New(cfg)
	if err := console.InsertCartridge(rom); err != nil {
		return err
	}
	console.PowerOn()

	if r.LoadState != "" {
		f, err := os.Open(r.LoadState)
		if err != nil {
			return fmt.Errorf("load-state: %w", err)
		}
		defer f.Close()
		if err := console.LoadSnapshot(f); err != nil {
			return fmt.Errorf("load-state: %w", err)
		}
	}

	if r.PressA {
		console.SetButton1(input.ButtonA, true)
	}

	for i := 0; i < r.Frames; i++ {
		console.RunFrame()
	}

	if r.SaveState != "" {
		f, err := os.Create(r.SaveState)
		if err != nil {
			return fmt.Errorf("save-state: %w", err)
		}
		defer f.Close()
		if err := console.SaveSnapshot(f); err != nil {
			return fmt.Errorf("save-state: %w", err)
		}
	}

	if r.Screenshot != "" {
		if err := writePPM(r.Screenshot, console.Framebuffer()); err != nil {
			return fmt.Errorf("screenshot: %w", err)
		}
	}

	fmt.Printf("ran %d frames of %s (mapper %d)\n", r.Frames, r.RomPath, rom.Mapper)
	return nil
}

func loadConfig(path string) (config.EmulationConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func loadROM(path string) (*ines.ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ines.Load(f)
}

// writePPM writes fb as a binary (P6) PPM image, the simplest format that
// needs no codec dependency for a CLI smoke-test convenience feature.
func writePPM(path string, fb *[256 * 240]uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "P6\n256 240\n255\n"); err != nil {
		return err
	}
	buf := make([]byte, 0, 256*240*3)
	for _, px := range fb {
		buf = append(buf, uint8(px>>16), uint8(px>>8), uint8(px))
	}
	_, err = f.Write(buf)
	return err
}
