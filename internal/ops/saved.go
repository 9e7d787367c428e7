package ops

import (
	"context"
	"strings"

	"github.com/jacksmith/mealmix/internal/model"
	"go.uber.org/zap"
)

// Saved owns the saved-recipe list. It keeps three things in step: the
// in-memory list, its persisted copy, and the rendered saved list.
//
// Every mutation writes the whole list through to the store and then
// re-renders the whole list. Write failures are logged and otherwise
// ignored; the in-memory list stays authoritative for the session.
//
// Saved is not safe for concurrent use. Callers serialize access, which
// the session loop does by construction.
type Saved struct {
	names    model.NameList
	store    *NameStore
	recipes  *Recipes
	view     View
	log      *zap.Logger
	onSelect func(ctx context.Context, name string)
}

// NewSaved returns a controller with an empty list. Call Initialize to
// load the persisted list.
func NewSaved(store *NameStore, recipes *Recipes, view View, log *zap.Logger) *Saved {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Saved{
		names:   model.NameList{},
		store:   store,
		recipes: recipes,
		view:    view,
		log:     log,
	}
	s.onSelect = func(ctx context.Context, name string) {
		s.SelectByName(ctx, name)
	}
	return s
}

// SetSelectHandler replaces what a row's OnSelect does. The session uses
// this to run selections asynchronously.
func (s *Saved) SetSelectHandler(fn func(ctx context.Context, name string)) {
	s.onSelect = fn
}

// Initialize loads the persisted list and renders it.
func (s *Saved) Initialize(ctx context.Context) {
	s.Load(ctx)
	s.render()
}

// Load reads the persisted list without rendering it.
func (s *Saved) Load(ctx context.Context) {
	s.names = s.store.Load(ctx)
}

// Names returns a copy of the saved list.
func (s *Saved) Names() model.NameList {
	return s.names.Clone()
}

// SaveCurrent adds the current recipe's name to the list.
// It does nothing if no recipe is loaded or the name is already saved.
func (s *Saved) SaveCurrent(ctx context.Context) Result {
	rec, ok := s.recipes.Current().Get()
	if !ok {
		return Result{Outcome: OutcomeNoRecipe, Err: ErrNoRecipe}
	}

	names, added := s.names.Add(rec.Name)
	if !added {
		return Result{Outcome: OutcomeUnchanged}
	}
	s.names = names

	err := s.persist(ctx)
	s.render()
	return Result{Outcome: OutcomeSaved, Err: err}
}

// Remove drops every exact match of name. Removing an absent name still
// persists and re-renders, leaving the list unchanged.
func (s *Saved) Remove(ctx context.Context, name string) Result {
	names, removed := s.names.Remove(name)
	s.names = names

	err := s.persist(ctx)
	s.render()

	if !removed {
		return Result{Outcome: OutcomeUnchanged, Err: err}
	}
	return Result{Outcome: OutcomeRemoved, Err: err}
}

// SelectByName loads a recipe by name and makes it current. On failure
// the saved list and the previous current recipe are untouched.
func (s *Saved) SelectByName(ctx context.Context, name string) Result {
	if strings.TrimSpace(name) == "" {
		return Result{Outcome: OutcomeUnchanged}
	}
	return s.recipes.LoadByName(ctx, name)
}

// Rows returns the rows for the current list.
func (s *Saved) Rows() []Row {
	rows := make([]Row, 0, len(s.names))
	for _, name := range s.names {
		name := name
		rows = append(rows, Row{
			Name: name,
			OnSelect: func(ctx context.Context) {
				s.onSelect(ctx, name)
			},
			OnDelete: func(ctx context.Context) {
				s.Remove(ctx, name)
			},
		})
	}
	return rows
}

func (s *Saved) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.names); err != nil {
		s.log.Warn("failed to persist saved recipes, keeping in-memory list",
			zap.Int("count", len(s.names)), zap.Error(err))
		return err
	}
	return nil
}

func (s *Saved) render() {
	s.view.RenderSavedList(s.Rows())
}
