// Package main is the entry point for the mealmix CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacksmith/mealmix/internal/cli"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mealmix",
	Short: "mealmix - browse, save and remix recipes from TheMealDB",
	Long: `mealmix fetches recipes from TheMealDB, keeps a list of the ones you
like, and asks a language model for themed remixes.

Run without a command to start an interactive session.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE:          runSession,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			cli.SetColorEnabled(false)
		}
	},
}

var (
	homeDir   string
	ephemeral bool
	logLevel  string
	noColor   bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "mealmix home directory (default $MEALMIX_HOME or the user config dir)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep saved recipes in memory only")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output (also NO_COLOR)")

	// Completion is provided by our own command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetVersionTemplate("mealmix version {{.Version}}\n")
}
