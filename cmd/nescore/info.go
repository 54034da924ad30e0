package main

import "fmt"

type InfoCmd struct {
	RomPath string `arg:"" name:"rom" help:"Path to an iNES ROM image." type:"existingfile"`
}

func (i *InfoCmd) Run() error {
	rom, err := loadROM(i.RomPath)
	if err != nil {
		return err
	}

	fmt.Printf("mapper:     %d\n", rom.Mapper)
	fmt.Printf("mirroring:  %s\n", rom.Mirroring)
	fmt.Printf("battery:    %t\n", rom.Battery)
	fmt.Printf("prg:        %d KiB\n", len(rom.PRG)/1024)
	if len(rom.CHR) == 0 {
		fmt.Printf("chr:        CHR-RAM (8 KiB)\n")
	} else {
		fmt.Printf("chr:        %d KiB\n", len(rom.CHR)/1024)
	}
	fmt.Printf("trainer:    %t\n", len(rom.Trainer) > 0)
	fmt.Printf("crc32:      %08x\n", rom.CRC32)
	return nil
}
