// Command nescore is a headless NES emulator core CLI: no window, no audio
// device, just the core driven for scripted runs, ROM inspection, and
// benchmarking. Host integrations wanting a GUI build their own launcher on
// top of the nes package the way this command does.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"nescore/log"
)

type CLI struct {
	Run   RunCmd   `cmd:"" help:"Run a ROM headlessly for a number of frames."`
	Info  InfoCmd  `cmd:"" help:"Show ROM header info." name:"info"`
	Bench BenchCmd `cmd:"" help:"Benchmark emulation speed."`

	Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
}

var vars = kong.Vars{
	"log_help": "Enable debug logging for specified modules (comma-separated), or 'all'/'no'.",
}

func main() {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("nescore"),
		kong.Description("Headless NES emulator core."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	checkf(err, "failed to build CLI parser")

	ctx, err := parser.Parse(os.Args[1:])
	checkf(err, "failed to parse command line")

	checkf(ctx.Run(), "command failed")
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "\nLog modules:\n  %s\n", strings.Join(log.ModuleNames(), ", "))
	return nil
}

type logModMask log.ModuleMask

// Decode implements kong.MapperValue: a comma-separated list of module names
// (or the special values "all"/"no") into a debug-logging mask.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	s, ok := tok.Value.(string)
	if !ok {
		return fmt.Errorf("invalid --log value")
	}

	var mask log.ModuleMask
	for _, name := range strings.Split(s, ",") {
		switch name {
		case "all":
			mask = log.ModuleMaskAll
		case "no":
			log.Disable()
			return nil
		default:
			mod, ok := log.ModuleByName(name)
			if !ok {
				return fmt.Errorf("unknown log module %q", name)
			}
			mask |= mod.Mask()
		}
	}
	log.EnableDebugModules(mask)
	return nil
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "nescore: %s: %v\n", fmt.Sprintf(format, args...), err)
	os.Exit(1)
}
