package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jacksmith/mealmix/internal/app"
	"github.com/jacksmith/mealmix/internal/cli"
	"github.com/jacksmith/mealmix/internal/model"
	"github.com/jacksmith/mealmix/internal/ops"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a recipe by name",
	Long: `Look a recipe up by name on TheMealDB and print the first match.

With --save the recipe is added to your saved recipes.`,
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: completeSavedNames,
}

var showSave bool

func init() {
	showCmd.Flags().BoolVarP(&showSave, "save", "s", false, "save the recipe")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	a := app.New(e.deps(), os.Stdout)
	if err := loadByName(ctx, a, args[0], a.Recipes.ApplySearch); err != nil {
		return err
	}
	if showSave {
		saveCurrent(ctx, a)
	}
	return nil
}

// loadByName makes the first match for name current and prints it. apply
// is Recipes.ApplySearch or, for saved names, Recipes.ApplyByName.
func loadByName(ctx context.Context, a *app.App, name string, apply func(string, []model.Recipe, error) ops.Result) error {
	recipes, err := a.Recipes.FetchByName(ctx, name)
	res := apply(name, recipes, err)
	switch res.Outcome {
	case ops.OutcomeLoaded:
		return nil
	case ops.OutcomeNotFound:
		return &cli.NotFoundError{Type: "recipe", ID: name}
	default:
		return fmt.Errorf("could not load %q: %w", name, res.Err)
	}
}

// saveCurrent loads the saved list, adds the current recipe and reports
// what happened.
func saveCurrent(ctx context.Context, a *app.App) {
	a.Saved.Load(ctx)
	res := a.Saved.SaveCurrent(ctx)
	rec, _ := a.Current.Get()
	switch res.Outcome {
	case ops.OutcomeSaved:
		fmt.Println(cli.Green("Saved " + strconv.Quote(rec.Name) + "."))
	case ops.OutcomeUnchanged:
		fmt.Println(cli.Gray(strconv.Quote(rec.Name) + " is already saved."))
	}
}
