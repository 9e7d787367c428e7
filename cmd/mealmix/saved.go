package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jacksmith/mealmix/internal/app"
	"github.com/jacksmith/mealmix/internal/cli"
	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved recipes",
	Long: `List your saved recipes, numbered in the order they were saved.

The numbers can be used with "saved select" and "saved remove".`,
	Args: cobra.NoArgs,
	RunE: runSaved,
}

var savedRemoveCmd = &cobra.Command{
	Use:     "remove <name|#>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a saved recipe",
	Long: `Remove a recipe from your saved recipes.

The recipe can be given by its number in "mealmix saved", by its name, or
by any unique prefix of its name. Case is ignored.`,
	Args:              cobra.ExactArgs(1),
	RunE:              runSavedRemove,
	ValidArgsFunction: completeSavedNames,
}

var savedSelectCmd = &cobra.Command{
	Use:               "select <name|#>",
	Short:             "Show a saved recipe",
	Long:              `Look up a saved recipe on TheMealDB and print it.`,
	Args:              cobra.ExactArgs(1),
	RunE:              runSavedSelect,
	ValidArgsFunction: completeSavedNames,
}

func init() {
	savedCmd.AddCommand(savedRemoveCmd)
	savedCmd.AddCommand(savedSelectCmd)
	rootCmd.AddCommand(savedCmd)
}

func runSaved(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	a := app.New(e.deps(), os.Stdout)
	a.Saved.Load(cmd.Context())
	names := a.Saved.Names()
	if len(names) == 0 {
		fmt.Println("No saved recipes yet.")
		return nil
	}
	cli.WriteNumbered(os.Stdout, names, cli.MaxListNameWidth)
	return nil
}

func runSavedRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	a := app.New(e.deps(), os.Stdout)
	a.Saved.Load(ctx)
	name, err := cli.Resolve("saved recipe", args[0], a.Saved.Names())
	if err != nil {
		return err
	}

	a.Saved.Remove(ctx, name)
	fmt.Println(cli.Gray("Removed " + strconv.Quote(name) + "."))
	return nil
}

func runSavedSelect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	a := app.New(e.deps(), os.Stdout)
	a.Saved.Load(ctx)
	name, err := cli.Resolve("saved recipe", args[0], a.Saved.Names())
	if err != nil {
		return err
	}
	return loadByName(ctx, a, name, a.Recipes.ApplyByName)
}
