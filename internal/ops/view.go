package ops

import (
	"context"

	"github.com/jacksmith/mealmix/internal/model"
)

// User-visible messages shown in place of the recipe or remix panel.
const (
	MsgLoading          = "Loading..."
	MsgLoadingSaved     = "Loading saved recipe..."
	MsgLoadFailed       = "Sorry, couldn't load a recipe."
	MsgSavedNotFound    = "Sorry, couldn't find that recipe."
	MsgSavedLoadFailed  = "Sorry, couldn't load that saved recipe."
	MsgSearchFailed     = "Sorry, couldn't load that recipe."
	MsgRemixNeedsRecipe = "Please load a recipe first!"
	MsgRemixFailed      = "Sorry, couldn't remix the recipe."
)

// Row is one entry of the rendered saved list.
type Row struct {
	Name     string
	OnSelect func(ctx context.Context)
	OnDelete func(ctx context.Context)
}

// View renders state produced by the operations in this package.
type View interface {
	// RenderRecipe replaces the recipe panel with r.
	RenderRecipe(r *model.Recipe)
	// RenderRecipeMessage replaces the recipe panel with a message.
	RenderRecipeMessage(msg string)
	// RenderSavedList replaces the saved list. An empty slice hides it.
	RenderSavedList(rows []Row)
	// RenderRemix replaces the remix panel with text.
	RenderRemix(text string)
}
