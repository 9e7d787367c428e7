// Package app wires the recipe operations to a terminal and runs the
// interactive session.
package app

import (
	"io"

	"github.com/jacksmith/mealmix/internal/cli"
	"github.com/jacksmith/mealmix/internal/model"
	"github.com/jacksmith/mealmix/internal/ops"
	"go.uber.org/zap"
)

// Deps are the external services a session talks to.
type Deps struct {
	Recipes ops.RecipeSource
	Remix   ops.RemixSource
	Store   ops.Store
	Log     *zap.Logger
}

// App holds one set of wired operations sharing a current recipe.
type App struct {
	Current *model.Current
	View    *cli.Terminal
	Recipes *ops.Recipes
	Saved   *ops.Saved
	Remixer *ops.Remixer
	Log     *zap.Logger
}

// New wires deps to a terminal view writing to out.
func New(deps Deps, out io.Writer) *App {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	current := &model.Current{}
	view := cli.NewTerminal(out)
	recipes := ops.NewRecipes(deps.Recipes, current, view, log.Named("recipes"))
	return &App{
		Current: current,
		View:    view,
		Recipes: recipes,
		Saved:   ops.NewSaved(ops.NewNameStore(deps.Store, log.Named("store")), recipes, view, log.Named("saved")),
		Remixer: ops.NewRemixer(deps.Remix, current, view, log.Named("remix")),
		Log:     log,
	}
}
