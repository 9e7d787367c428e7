package ops

import (
	"context"
	"fmt"

	"github.com/jacksmith/mealmix/internal/model"
	"go.uber.org/zap"
)

// Recipes loads recipes from a RecipeSource into the current recipe and
// renders them.
//
// Each load is split into a Fetch step, which only talks to the network and
// may run on any goroutine, and an Apply step, which mutates the current
// recipe and renders and must run on the goroutine that owns the state.
// The Load helpers run both steps in sequence.
type Recipes struct {
	source  RecipeSource
	current *model.Current
	view    View
	log     *zap.Logger
}

// NewRecipes returns a Recipes writing into current. A nil logger discards logs.
func NewRecipes(source RecipeSource, current *model.Current, view View, log *zap.Logger) *Recipes {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recipes{source: source, current: current, view: view, log: log}
}

// Current returns the current recipe holder.
func (r *Recipes) Current() *model.Current {
	return r.current
}

// LoadRandom fetches a random recipe and makes it current.
func (r *Recipes) LoadRandom(ctx context.Context) Result {
	r.view.RenderRecipeMessage(MsgLoading)
	rec, err := r.FetchRandom(ctx)
	return r.ApplyRandom(rec, err)
}

// FetchRandom asks the source for a random recipe.
// A successful response without a recipe is reported as ErrEmptyResult.
func (r *Recipes) FetchRandom(ctx context.Context) (*model.Recipe, error) {
	rec, err := r.source.Random(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrEmptyResult
	}
	return rec, nil
}

// ApplyRandom makes rec current, or shows the load-failed message.
func (r *Recipes) ApplyRandom(rec *model.Recipe, err error) Result {
	if err != nil {
		r.log.Warn("failed to load random recipe", zap.Error(err))
		r.view.RenderRecipeMessage(MsgLoadFailed)
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	r.show(rec)
	return Result{Outcome: OutcomeLoaded}
}

// LoadByName looks up name and makes the first match current.
func (r *Recipes) LoadByName(ctx context.Context, name string) Result {
	r.view.RenderRecipeMessage(MsgLoadingSaved)
	recipes, err := r.FetchByName(ctx, name)
	return r.ApplyByName(name, recipes, err)
}

// FetchByName asks the source for recipes matching name.
func (r *Recipes) FetchByName(ctx context.Context, name string) ([]model.Recipe, error) {
	return r.source.SearchByName(ctx, name)
}

// ApplyByName makes the first match for a saved name current. On an empty
// result or an error the matching message is shown instead and the current
// recipe is left as it was.
func (r *Recipes) ApplyByName(name string, recipes []model.Recipe, err error) Result {
	return r.applyByName(name, recipes, err, MsgSavedLoadFailed)
}

// ApplySearch is ApplyByName for a name typed by the user rather than
// picked from the saved list. Only the failure message differs.
func (r *Recipes) ApplySearch(name string, recipes []model.Recipe, err error) Result {
	return r.applyByName(name, recipes, err, MsgSearchFailed)
}

func (r *Recipes) applyByName(name string, recipes []model.Recipe, err error, failMsg string) Result {
	if err != nil {
		r.log.Warn("failed to load recipe by name", zap.String("name", name), zap.Error(err))
		r.view.RenderRecipeMessage(failMsg)
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	if len(recipes) == 0 {
		r.log.Info("no recipe matched", zap.String("name", name))
		r.view.RenderRecipeMessage(MsgSavedNotFound)
		return Result{Outcome: OutcomeNotFound, Err: fmt.Errorf("%q: %w", name, ErrEmptyResult)}
	}
	rec := recipes[0]
	r.show(&rec)
	return Result{Outcome: OutcomeLoaded}
}

func (r *Recipes) show(rec *model.Recipe) {
	r.current.Replace(rec)
	r.view.RenderRecipe(rec)
}
