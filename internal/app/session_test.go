package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jacksmith/mealmix/internal/cli"
	"github.com/jacksmith/mealmix/internal/model"
	"github.com/jacksmith/mealmix/internal/ops"
	"github.com/jacksmith/mealmix/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

var themes = []string{"Make it vegan", "Give it a spicy twist", "Turn it into comfort food"}

type fakeSource struct {
	mu       sync.Mutex
	random   *model.Recipe
	err      error
	byName   map[string][]model.Recipe
	searches []string
	// randomGate, when set, holds Random until it is closed.
	randomGate chan struct{}
}

func (f *fakeSource) Random(ctx context.Context) (*model.Recipe, error) {
	if f.randomGate != nil {
		select {
		case <-f.randomGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.random, f.err
}

func (f *fakeSource) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches)
}

func (f *fakeSource) SearchByName(ctx context.Context, name string) ([]model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, name)
	return f.byName[name], f.err
}

type fakeRemix struct {
	mu     sync.Mutex
	themes []string
	text   string
	err    error
}

func (f *fakeRemix) Remix(ctx context.Context, r *model.Recipe, theme string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.themes = append(f.themes, theme)
	return f.text, f.err
}

type harness struct {
	source      *fakeSource
	remix       *fakeRemix
	store       *storage.MemoryStore
	out         bytes.Buffer
	logs        *observer.ObservedLogs
	interactive bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cli.SetColorEnabled(false)
	return &harness{
		source: &fakeSource{
			random: &model.Recipe{Name: "Spicy Arrabiata Penne"},
			byName: map[string][]model.Recipe{
				"Tacos": {{Name: "Tacos"}},
			},
		},
		remix: &fakeRemix{text: "Jackfruit tacos!"},
		store: storage.NewMemoryStore(),
	}
}

func (h *harness) session(t *testing.T, input io.Reader) *Session {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	h.logs = logs
	return NewSession(Deps{
		Recipes: h.source,
		Remix:   h.remix,
		Store:   h.store,
		Log:     zap.New(core),
	}, Options{In: input, Out: &h.out, Interactive: h.interactive, Themes: themes})
}

func (h *harness) run(t *testing.T, input string) *Session {
	t.Helper()
	s := h.session(t, strings.NewReader(input))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Run(ctx))
	return s
}

func (h *harness) persisted(t *testing.T) string {
	t.Helper()
	v, _, err := h.store.Get(context.Background(), ops.SavedRecipesKey)
	require.NoError(t, err)
	return v
}

func currentName(t *testing.T, s *Session) string {
	t.Helper()
	rec, ok := s.Current.Get()
	require.True(t, ok, "expected a current recipe")
	return rec.Name
}

func TestSessionStartup(t *testing.T) {
	t.Run("loads saved list and a random recipe", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.store.Set(context.Background(), ops.SavedRecipesKey, `["Tacos"]`))

		s := h.run(t, "")

		out := h.out.String()
		assert.Contains(t, out, "Saved recipes\n#1  Tacos\n")
		assert.Contains(t, out, "Spicy Arrabiata Penne")
		assert.Equal(t, "Spicy Arrabiata Penne", currentName(t, s))
	})

	t.Run("malformed saved list starts empty", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.store.Set(context.Background(), ops.SavedRecipesKey, "not an array"))

		h.run(t, "")

		assert.NotContains(t, h.out.String(), "Saved recipes")
		assert.Equal(t, 1, h.logs.FilterMessage("malformed saved recipes, starting empty").Len())
	})

	t.Run("random failure shows message", func(t *testing.T) {
		h := newHarness(t)
		h.source.err = errors.New("offline")

		s := h.run(t, "")

		assert.Contains(t, h.out.String(), ops.MsgLoadFailed)
		assert.False(t, s.Current.Loaded())
	})
}

func TestSessionSave(t *testing.T) {
	t.Run("save twice keeps one entry", func(t *testing.T) {
		h := newHarness(t)

		h.run(t, "save\nsave\n")

		assert.Equal(t, `["Spicy Arrabiata Penne"]`, h.persisted(t))
		out := h.out.String()
		assert.Contains(t, out, `Saved "Spicy Arrabiata Penne".`)
		assert.Contains(t, out, "Already saved.")
	})

	t.Run("ambiguous prefix is reported", func(t *testing.T) {
		h := newHarness(t)

		h.run(t, "sav\n")

		assert.Contains(t, h.out.String(), `ambiguous command "sav" matches: save, saved`)
	})

	t.Run("write failure keeps in-memory list", func(t *testing.T) {
		h := newHarness(t)
		h.store.FailWrites(errors.New("quota exceeded"))

		s := h.run(t, "save\n")

		assert.Equal(t, model.NameList{"Spicy Arrabiata Penne"}, s.Saved.Names())
		assert.Contains(t, h.out.String(), "Saved recipes\n#1  Spicy Arrabiata Penne\n")
		assert.Equal(t, 1, h.logs.FilterMessage("failed to persist saved recipes, keeping in-memory list").Len())
	})

	t.Run("write failures stay out of the output", func(t *testing.T) {
		h := newHarness(t)
		h.store.FailWrites(errors.New("quota exceeded"))

		s := h.run(t, "save\ndelete 1\n")

		out := h.out.String()
		assert.Contains(t, out, `Saved "Spicy Arrabiata Penne".`)
		assert.Contains(t, out, `Removed "Spicy Arrabiata Penne".`)
		assert.NotContains(t, out, "quota exceeded")
		assert.NotContains(t, out, "persist")
		assert.Empty(t, s.Saved.Names())
		assert.Equal(t, 2, h.logs.FilterMessage("failed to persist saved recipes, keeping in-memory list").Len())
	})
}

func TestSessionSelectAndDelete(t *testing.T) {
	t.Run("select by index loads the saved recipe", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.store.Set(context.Background(), ops.SavedRecipesKey, `["Tacos"]`))

		s := h.run(t, "select #1\n")

		assert.Equal(t, "Tacos", currentName(t, s))
		assert.Contains(t, h.out.String(), ops.MsgLoadingSaved)
		assert.Equal(t, []string{"Tacos"}, h.source.searches)
	})

	t.Run("select of a vanished recipe keeps current", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.store.Set(context.Background(), ops.SavedRecipesKey, `["Ghost Dish"]`))

		s := h.run(t, "select ghost\n")

		assert.Equal(t, "Spicy Arrabiata Penne", currentName(t, s))
		assert.Contains(t, h.out.String(), ops.MsgSavedNotFound)
		assert.Equal(t, model.NameList{"Ghost Dish"}, s.Saved.Names())
	})

	t.Run("delete by name", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.store.Set(context.Background(), ops.SavedRecipesKey, `["Tacos","Soup"]`))

		s := h.run(t, "delete soup\n")

		assert.Equal(t, `["Tacos"]`, h.persisted(t))
		assert.Equal(t, model.NameList{"Tacos"}, s.Saved.Names())
		assert.Contains(t, h.out.String(), `Removed "Soup".`)
	})

	t.Run("delete last hides the list", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.store.Set(context.Background(), ops.SavedRecipesKey, `["Tacos"]`))

		s := h.run(t, "delete 1\n")

		assert.Equal(t, `[]`, h.persisted(t))
		assert.False(t, s.View.ListVisible())
	})

	t.Run("unknown row is reported", func(t *testing.T) {
		h := newHarness(t)

		h.run(t, "select 3\n")

		assert.Contains(t, h.out.String(), `error: saved recipe "#3" not found`)
	})
}

func TestSessionSearch(t *testing.T) {
	t.Run("loads the first match", func(t *testing.T) {
		h := newHarness(t)

		s := h.run(t, "search Tacos\nsearch\n")

		assert.Equal(t, "Tacos", currentName(t, s))
		assert.Contains(t, h.out.String(), "invalid search: name is required")
	})

	t.Run("failure is not reported as a saved recipe", func(t *testing.T) {
		h := newHarness(t)
		h.source.err = errors.New("offline")

		h.run(t, "search Tacos\n")

		out := h.out.String()
		assert.Contains(t, out, ops.MsgSearchFailed)
		assert.NotContains(t, out, ops.MsgSavedLoadFailed)
	})
}

func TestSessionInteractiveLastRequestWins(t *testing.T) {
	h := newHarness(t)
	h.interactive = true
	gate := make(chan struct{})
	h.source.randomGate = gate

	pr, pw := io.Pipe()
	s := h.session(t, pr)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// The startup random is still in flight when the search is issued.
	_, err := io.WriteString(pw, "search Tacos\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return h.source.searchCount() == 1 }, 5*time.Second, 10*time.Millisecond)

	close(gate)
	require.NoError(t, pw.Close())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not finish")
	}

	assert.Equal(t, "Tacos", currentName(t, s))
	assert.NotContains(t, h.out.String(), "Spicy Arrabiata Penne")
	assert.Contains(t, h.out.String(), "> ")
	assert.Equal(t, 1, h.logs.FilterMessage("dropping stale recipe response").Len())
}

func TestSessionRemix(t *testing.T) {
	t.Run("default theme", func(t *testing.T) {
		h := newHarness(t)

		h.run(t, "remix\n")

		assert.Equal(t, []string{"Make it vegan"}, h.remix.themes)
		assert.Contains(t, h.out.String(), "Jackfruit tacos!")
	})

	t.Run("theme by index and prefix", func(t *testing.T) {
		h := newHarness(t)

		h.run(t, "remix #2\nremix turn\n")

		assert.Equal(t, []string{"Give it a spicy twist", "Turn it into comfort food"}, h.remix.themes)
	})

	t.Run("free text theme", func(t *testing.T) {
		h := newHarness(t)

		h.run(t, "remix Make it Thai\n")

		assert.Equal(t, []string{"Make it Thai"}, h.remix.themes)
	})

	t.Run("out of range index is an error", func(t *testing.T) {
		h := newHarness(t)

		h.run(t, "remix 9\n")

		assert.Empty(t, h.remix.themes)
		assert.Contains(t, h.out.String(), `theme "#9" not found`)
	})

	t.Run("failure shows generic message", func(t *testing.T) {
		h := newHarness(t)
		h.remix.err = errors.New("401")

		h.run(t, "remix\n")

		assert.Contains(t, h.out.String(), ops.MsgRemixFailed)
	})

	t.Run("no recipe loaded", func(t *testing.T) {
		h := newHarness(t)
		h.source.err = errors.New("offline")

		h.run(t, "remix\n")

		assert.Empty(t, h.remix.themes)
		assert.Contains(t, h.out.String(), ops.MsgRemixNeedsRecipe)
	})
}

func TestSessionMisc(t *testing.T) {
	t.Run("quit stops reading", func(t *testing.T) {
		h := newHarness(t)

		h.run(t, "quit\nsave\n")

		_, ok, err := h.store.Get(context.Background(), ops.SavedRecipesKey)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("themes and help", func(t *testing.T) {
		h := newHarness(t)

		h.run(t, "themes\nhelp\n")

		out := h.out.String()
		assert.Contains(t, out, "#2  Give it a spicy twist\n")
		assert.Contains(t, out, "Commands may be shortened")
	})

	t.Run("unknown command", func(t *testing.T) {
		h := newHarness(t)

		h.run(t, "bake\n")

		assert.Contains(t, h.out.String(), `error: command "bake" not found`)
	})

	t.Run("cancel ends the session", func(t *testing.T) {
		h := newHarness(t)
		pr, pw := io.Pipe()
		defer pw.Close()

		s := h.session(t, pr)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("session did not stop")
		}
	})
}

func TestStaleResponsesAreDropped(t *testing.T) {
	h := newHarness(t)
	s := h.session(t, strings.NewReader(""))

	// Two by-name requests in flight; the older one answers last.
	s.seq = 2
	s.pending = 2

	res := s.handle(recipeDone{seq: 2, kind: fetchSaved, name: "Tacos", recipes: []model.Recipe{{Name: "Tacos"}}})
	assert.Equal(t, ops.OutcomeLoaded, res.Outcome)

	res = s.handle(recipeDone{seq: 1, kind: fetchSaved, name: "Soup", recipes: []model.Recipe{{Name: "Soup"}}})
	assert.Equal(t, ops.OutcomeStale, res.Outcome)

	assert.Equal(t, "Tacos", currentName(t, s))
	assert.Equal(t, 0, s.pending)
	assert.Equal(t, 1, h.logs.FilterMessage("dropping stale recipe response").Len())

	s.remixSeq = 2
	s.pending = 1
	res = s.handle(remixDone{seq: 1, text: "old remix"})
	assert.Equal(t, ops.OutcomeStale, res.Outcome)
	assert.NotContains(t, h.out.String(), "old remix")
}
