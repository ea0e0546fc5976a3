package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/slidetext/cmd/slidetext/opts"
)

var (
	// Flags
	deckFile   string
	outputFile string
	debug      bool
)

// rootOpts bundles the shared flag values for subcommands.
func rootOpts() *opts.RootOpts {
	return &opts.RootOpts{
		DeckPath:   &deckFile,
		OutputPath: &outputFile,
	}
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&deckFile, "deck", "f", "", "deck file path (.yaml, .yml, or .xml)")
	cmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write the rewritten deck here instead of in place")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
