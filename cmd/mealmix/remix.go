package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jacksmith/mealmix/internal/app"
	"github.com/jacksmith/mealmix/internal/cli"
	"github.com/jacksmith/mealmix/internal/ops"
	"github.com/spf13/cobra"
)

var remixCmd = &cobra.Command{
	Use:   "remix [name]",
	Short: "Remix a recipe with a theme",
	Long: `Ask a language model for a themed remix of a recipe.

Without a name a random recipe is remixed. The theme can be one of the
configured themes (by number or prefix) or any text. Without --theme you
are asked to pick one when running in a terminal; otherwise the first
configured theme is used.

Remixes go directly to the configured OpenAI-compatible API, or through a
"mealmix serve" proxy when remix.proxy_url is set.`,
	Args:              cobra.MaximumNArgs(1),
	RunE:              runRemix,
	ValidArgsFunction: completeSavedNames,
}

var remixTheme string

func init() {
	remixCmd.Flags().StringVarP(&remixTheme, "theme", "t", "", "remix theme, by number, prefix, or free text")
	rootCmd.AddCommand(remixCmd)
}

func runRemix(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	theme, err := chooseTheme(e.cfg.Remix.Themes)
	if err != nil {
		return err
	}

	a := app.New(e.deps(), os.Stdout)
	if len(args) == 1 {
		if err := loadByName(ctx, a, args[0], a.Recipes.ApplySearch); err != nil {
			return err
		}
	} else {
		rec, err := a.Recipes.FetchRandom(ctx)
		if res := a.Recipes.ApplyRandom(rec, err); !res.OK() {
			return fmt.Errorf("could not load a recipe: %w", res.Err)
		}
	}

	if res := a.Remixer.Remix(ctx, theme); res.Outcome != ops.OutcomeRemixed {
		return fmt.Errorf("remix failed: %w", res.Err)
	}
	return nil
}

// chooseTheme resolves --theme, or asks on a terminal.
func chooseTheme(themes []string) (string, error) {
	if remixTheme == "" && cli.IsTerminal(os.Stdin) && cli.IsTerminal(os.Stdout) {
		theme, err := cli.Pick("Remix theme", themes)
		if err != nil && !errors.Is(err, cli.ErrNothingToPick) {
			return "", err
		}
		if err == nil {
			return theme, nil
		}
	}
	return app.ResolveTheme(remixTheme, themes)
}
