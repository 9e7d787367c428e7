package ops

import (
	"context"
	"errors"
	"testing"

	"github.com/jacksmith/mealmix/internal/model"
	"github.com/jacksmith/mealmix/internal/storage"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

var errOffline = errors.New("network is down")

// fakeSource is an in-memory RecipeSource.
type fakeSource struct {
	random    *model.Recipe
	randomErr error
	byName    map[string][]model.Recipe
	searchErr error
	searches  []string
}

func (f *fakeSource) Random(ctx context.Context) (*model.Recipe, error) {
	if f.randomErr != nil {
		return nil, f.randomErr
	}
	return f.random, nil
}

func (f *fakeSource) SearchByName(ctx context.Context, name string) ([]model.Recipe, error) {
	f.searches = append(f.searches, name)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.byName[name], nil
}

// fakeRemix is an in-memory RemixSource.
type fakeRemix struct {
	text   string
	err    error
	themes []string
	names  []string
}

func (f *fakeRemix) Remix(ctx context.Context, r *model.Recipe, theme string) (string, error) {
	f.themes = append(f.themes, theme)
	f.names = append(f.names, r.Name)
	return f.text, f.err
}

// fakeView records everything rendered.
type fakeView struct {
	recipes       []*model.Recipe
	messages      []string
	lists         [][]Row
	remixes       []string
	listRenders   int
	recipeRenders int
}

func (v *fakeView) RenderRecipe(r *model.Recipe) {
	v.recipes = append(v.recipes, r)
	v.recipeRenders++
}

func (v *fakeView) RenderRecipeMessage(msg string) {
	v.messages = append(v.messages, msg)
}

func (v *fakeView) RenderSavedList(rows []Row) {
	v.lists = append(v.lists, rows)
	v.listRenders++
}

func (v *fakeView) RenderRemix(text string) {
	v.remixes = append(v.remixes, text)
}

// lastList returns the names of the most recently rendered list.
func (v *fakeView) lastList() []string {
	if len(v.lists) == 0 {
		return nil
	}
	names := []string{}
	for _, row := range v.lists[len(v.lists)-1] {
		names = append(names, row.Name)
	}
	return names
}

// listVisible reports whether the last render showed the list.
func (v *fakeView) listVisible() bool {
	return len(v.lastList()) > 0
}

func (v *fakeView) lastMessage() string {
	if len(v.messages) == 0 {
		return ""
	}
	return v.messages[len(v.messages)-1]
}

// harness wires a Saved controller over an in-memory store.
type harness struct {
	store   *storage.MemoryStore
	names   *NameStore
	source  *fakeSource
	current *model.Current
	view    *fakeView
	recipes *Recipes
	saved   *Saved
	logs    *observer.ObservedLogs
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	h := &harness{
		store:   storage.NewMemoryStore(),
		source:  &fakeSource{byName: map[string][]model.Recipe{}},
		current: &model.Current{},
		view:    &fakeView{},
		logs:    logs,
	}
	h.names = NewNameStore(h.store, log)
	h.recipes = NewRecipes(h.source, h.current, h.view, log)
	h.saved = NewSaved(h.names, h.recipes, h.view, log)
	return h
}

// persisted returns the list as currently stored.
func (h *harness) persisted(t *testing.T) model.NameList {
	t.Helper()
	return h.names.Load(context.Background())
}
