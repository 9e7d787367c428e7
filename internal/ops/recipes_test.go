package ops

import (
	"context"
	"testing"

	"github.com/jacksmith/mealmix/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRandom(t *testing.T) {
	ctx := context.Background()

	t.Run("success replaces current", func(t *testing.T) {
		h := newHarness(t)
		h.source.random = &model.Recipe{Name: "Tacos"}

		res := h.recipes.LoadRandom(ctx)

		assert.Equal(t, OutcomeLoaded, res.Outcome)
		assert.True(t, res.OK())
		got, ok := h.current.Get()
		require.True(t, ok)
		assert.Equal(t, "Tacos", got.Name)
		assert.Equal(t, []string{MsgLoading}, h.view.messages)
		assert.Equal(t, 1, h.view.recipeRenders)
	})

	t.Run("network failure shows message and keeps current", func(t *testing.T) {
		h := newHarness(t)
		soup := &model.Recipe{Name: "Soup"}
		h.current.Replace(soup)
		h.source.randomErr = errOffline

		res := h.recipes.LoadRandom(ctx)

		assert.Equal(t, OutcomeFailed, res.Outcome)
		assert.False(t, res.OK())
		got, _ := h.current.Get()
		assert.Same(t, soup, got)
		assert.Equal(t, MsgLoadFailed, h.view.lastMessage())
		assert.Equal(t, 0, h.view.recipeRenders)
	})

	t.Run("empty response counts as failure", func(t *testing.T) {
		h := newHarness(t)

		res := h.recipes.LoadRandom(ctx)

		assert.Equal(t, OutcomeFailed, res.Outcome)
		assert.ErrorIs(t, res.Err, ErrEmptyResult)
		assert.False(t, h.current.Loaded())
		assert.Equal(t, MsgLoadFailed, h.view.lastMessage())
	})
}

func TestApplyByNameUsesFirstMatch(t *testing.T) {
	h := newHarness(t)

	res := h.recipes.ApplyByName("Soup", []model.Recipe{{Name: "Soup"}, {Name: "Soup 2"}}, nil)

	assert.Equal(t, OutcomeLoaded, res.Outcome)
	got, _ := h.current.Get()
	assert.Equal(t, "Soup", got.Name)
}

func TestApplyFailureMessages(t *testing.T) {
	t.Run("saved name", func(t *testing.T) {
		h := newHarness(t)

		res := h.recipes.ApplyByName("Tacos", nil, errOffline)

		assert.Equal(t, OutcomeFailed, res.Outcome)
		assert.Equal(t, MsgSavedLoadFailed, h.view.lastMessage())
	})

	t.Run("typed search", func(t *testing.T) {
		h := newHarness(t)

		res := h.recipes.ApplySearch("Tacos", nil, errOffline)

		assert.Equal(t, OutcomeFailed, res.Outcome)
		assert.Equal(t, MsgSearchFailed, h.view.lastMessage())
	})

	t.Run("typed search with no match", func(t *testing.T) {
		h := newHarness(t)

		res := h.recipes.ApplySearch("Ghost Dish", nil, nil)

		assert.Equal(t, OutcomeNotFound, res.Outcome)
		assert.Equal(t, MsgSavedNotFound, h.view.lastMessage())
	})
}
