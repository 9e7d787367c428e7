package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/jacksmith/mealmix/internal/app"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for mealmix.

Besides commands and flags, the scripts complete saved recipe names for
"show", "remix", "saved select" and "saved remove". Names are read from
the configured store; nothing is fetched from TheMealDB while completing.

Load for the current shell:

  bash:  source <(mealmix completion bash)
  zsh:   source <(mealmix completion zsh)
  fish:  mealmix completion fish | source

To load on every start, write the script where your shell looks for
completions, e.g. ~/.local/share/bash-completion/completions/mealmix,
a directory on $fpath named _mealmix, or
~/.config/fish/completions/mealmix.fish.
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletionV2(os.Stdout, true)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeSavedNames completes saved recipe names. It reads the store
// only; nothing is fetched.
func completeSavedNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := openEnv(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer e.Close()

	a := app.New(app.Deps{Store: e.store, Log: e.log}, io.Discard)
	a.Saved.Load(ctx)

	var completions []string
	toCompleteLower := strings.ToLower(toComplete)
	for _, name := range a.Saved.Names() {
		if strings.HasPrefix(strings.ToLower(name), toCompleteLower) {
			completions = append(completions, name)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
