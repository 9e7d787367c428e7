package main

import (
	"os"

	"github.com/jacksmith/mealmix/internal/app"
	"github.com/jacksmith/mealmix/internal/cli"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Start an interactive session",
	Long: `Start an interactive session. This is also what mealmix does when run
without a command.

The session loads your saved recipes and a random recipe, then reads
commands such as random, save, select 2, remix vegan. Type help for the
full list. Commands can be shortened to any unique prefix.

When input is not a terminal, commands are run one after another, each
waiting for the previous one to finish.`,
	Args: cobra.NoArgs,
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	s := app.NewSession(e.deps(), app.Options{
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: cli.IsTerminal(os.Stdin) && cli.IsTerminal(os.Stdout),
		Themes:      e.cfg.Remix.Themes,
	})
	return s.Run(cmd.Context())
}
