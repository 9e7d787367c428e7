package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jacksmith/mealmix/internal/model"
	"github.com/jacksmith/mealmix/internal/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTerminal(t *testing.T) (*Terminal, *bytes.Buffer) {
	t.Helper()
	SetColorEnabled(false)
	t.Cleanup(func() { SetColorEnabled(false) })
	var buf bytes.Buffer
	return NewTerminal(&buf), &buf
}

func TestRenderRecipe(t *testing.T) {
	term, buf := newTestTerminal(t)

	term.RenderRecipe(&model.Recipe{
		Name:         "Spicy Arrabiata Penne",
		Category:     "Vegetarian",
		Area:         "Italian",
		Tags:         []string{"Pasta", "Curry"},
		Instructions: "Boil water.\r\nAdd penne.",
		Thumbnail:    "https://example.com/penne.jpg",
		Ingredients: []model.Ingredient{
			{Name: "penne rigate", Measure: "1 pound"},
			{Name: "salt"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Spicy Arrabiata Penne\n")
	assert.Contains(t, out, "Vegetarian · Italian · Pasta, Curry\n")
	assert.Contains(t, out, "  - 1 pound penne rigate\n")
	assert.Contains(t, out, "  - salt\n")
	assert.Contains(t, out, "  Boil water.\n  Add penne.\n")
	assert.Contains(t, out, "Image:   https://example.com/penne.jpg\n")
	assert.NotContains(t, out, "Video:")
}

func TestRenderRecipeMessage(t *testing.T) {
	term, buf := newTestTerminal(t)

	term.RenderRecipeMessage(ops.MsgSavedNotFound)
	assert.Equal(t, ops.MsgSavedNotFound+"\n", buf.String())
}

func TestRenderSavedList(t *testing.T) {
	t.Run("rows are numbered in order", func(t *testing.T) {
		term, buf := newTestTerminal(t)

		term.RenderSavedList([]ops.Row{{Name: "Tacos"}, {Name: "Soup"}})

		assert.True(t, term.ListVisible())
		assert.Contains(t, buf.String(), "#1  Tacos\n#2  Soup\n")
		assert.Equal(t, []string{"Tacos", "Soup"}, term.RowNames())
	})

	t.Run("empty list hides", func(t *testing.T) {
		term, buf := newTestTerminal(t)
		term.RenderSavedList([]ops.Row{{Name: "Tacos"}})
		buf.Reset()

		term.RenderSavedList(nil)

		assert.False(t, term.ListVisible())
		assert.Empty(t, buf.String())
		assert.Empty(t, term.Rows())
	})
}

func TestRenderRemix(t *testing.T) {
	term, buf := newTestTerminal(t)

	term.RenderRemix("Jackfruit tacos!")
	assert.Equal(t, "\nJackfruit tacos!\n", buf.String())
}

func TestTerminalRow(t *testing.T) {
	term, _ := newTestTerminal(t)

	var deleted string
	rows := []ops.Row{
		{Name: "Tacos", OnDelete: func(ctx context.Context) { deleted = "Tacos" }},
		{Name: "Soup", OnDelete: func(ctx context.Context) { deleted = "Soup" }},
	}
	term.RenderSavedList(rows)

	t.Run("by index", func(t *testing.T) {
		row, err := term.Row("#2")
		require.NoError(t, err)
		row.OnDelete(context.Background())
		assert.Equal(t, "Soup", deleted)
	})

	t.Run("by name prefix", func(t *testing.T) {
		row, err := term.Row("ta")
		require.NoError(t, err)
		assert.Equal(t, "Tacos", row.Name)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := term.Row("Ghost Dish")
		var nf *NotFoundError
		assert.True(t, errors.As(err, &nf))
	})
}

func TestPickEmpty(t *testing.T) {
	_, err := Pick("Remix theme", nil)
	assert.ErrorIs(t, err, ErrNothingToPick)
}
