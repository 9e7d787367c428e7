package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/mealmix/internal/app"
	"github.com/spf13/cobra"
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random recipe",
	Long: `Fetch a random recipe from TheMealDB and print it.

With --save the recipe is added to your saved recipes.`,
	Args: cobra.NoArgs,
	RunE: runRandom,
}

var randomSave bool

func init() {
	randomCmd.Flags().BoolVarP(&randomSave, "save", "s", false, "save the recipe")
	rootCmd.AddCommand(randomCmd)
}

func runRandom(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	a := app.New(e.deps(), os.Stdout)
	rec, err := a.Recipes.FetchRandom(ctx)
	if res := a.Recipes.ApplyRandom(rec, err); !res.OK() {
		return fmt.Errorf("could not load a recipe: %w", res.Err)
	}

	if randomSave {
		saveCurrent(ctx, a)
	}
	return nil
}
