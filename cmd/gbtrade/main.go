// Command gbtrade drives a single Gen I link-cable trade session: it
// impersonates the second Game Boy's Trade Center side over a byte
// exchange transport, offering whatever Pokémon is configured in its
// send slot and persisting whatever it receives in exchange.
//
// Usage:
//
//	gbtrade <command> [options]
//
// Commands:
//
//	run        Run one trade session
//	set-send   Configure the Pokémon this gadget offers
//	show-send  Display the currently configured send slot
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/pkmntrade/gbtrade/pkg/log"
)

var version = "dev"

// globals holds the parsed top-level flags; subcommands read it
// directly rather than threading it through each Execute call.
var globals struct {
	Version func() `short:"V" long:"version" description:"Print version and exit"`
	Verbose bool   `short:"v" long:"verbose" description:"Enable debug logging"`
}

func main() {
	globals.Version = func() {
		fmt.Printf("gbtrade %s\n", version)
		os.Exit(0)
	}

	parser := flags.NewParser(&globals, flags.Default)
	parser.Name = "gbtrade"
	parser.LongDescription = "A standalone trade-link gadget for Generation I Pokémon games"

	addRunCommand(parser)
	addSetSendCommand(parser)
	addShowSendCommand(parser)

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			if flagsErr.Type == flags.ErrCommandRequired {
				parser.WriteHelp(os.Stderr)
				os.Exit(1)
			}
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// configureLogging installs a zerolog-backed log.Logger at the
// requested verbosity. Every subcommand calls this before doing real
// work so library packages (internal/bel, internal/trade, ...) log
// through the same sink as the CLI's own output.
func configureLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	log.SetLogger(log.NewZerologAdapter(zl))
}
