package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jacksmith/mealmix/internal/model"
	"github.com/jacksmith/mealmix/internal/ops"
)

// Terminal renders recipes, the saved list and remixes as text. It keeps
// the last rendered saved rows so numbered selections ("select 2") can be
// resolved against what the user saw.
//
// Terminal is not safe for concurrent use; the session loop is its only
// caller.
type Terminal struct {
	w           io.Writer
	rows        []ops.Row
	listVisible bool
}

// NewTerminal returns a Terminal writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// RenderRecipe prints the recipe panel.
func (t *Terminal) RenderRecipe(r *model.Recipe) {
	fmt.Fprintln(t.w)
	fmt.Fprintln(t.w, Bold(Green(r.Name)))

	var meta []string
	if r.Category != "" {
		meta = append(meta, r.Category)
	}
	if r.Area != "" {
		meta = append(meta, r.Area)
	}
	if tags := r.DisplayTags(); tags != "" {
		meta = append(meta, tags)
	}
	if len(meta) > 0 {
		fmt.Fprintln(t.w, Gray(strings.Join(meta, " · ")))
	}

	if len(r.Ingredients) > 0 {
		fmt.Fprintln(t.w)
		fmt.Fprintln(t.w, Bold("Ingredients"))
		for _, ing := range r.Ingredients {
			fmt.Fprintf(t.w, "  - %s\n", ing)
		}
	}

	if lines := r.InstructionLines(); len(lines) > 0 {
		fmt.Fprintln(t.w)
		fmt.Fprintln(t.w, Bold("Instructions"))
		for _, line := range lines {
			fmt.Fprintln(t.w, "  "+line)
		}
	}

	if r.Thumbnail != "" {
		fmt.Fprintln(t.w)
		fmt.Fprintln(t.w, Gray("Image:   "+r.Thumbnail))
	}
	if r.YouTube != "" {
		fmt.Fprintln(t.w, Gray("Video:   "+r.YouTube))
	}
	if r.Source != "" {
		fmt.Fprintln(t.w, Gray("Source:  "+r.Source))
	}
}

// RenderRecipeMessage prints a status message in place of a recipe.
func (t *Terminal) RenderRecipeMessage(msg string) {
	fmt.Fprintln(t.w, Yellow(msg))
}

// RenderSavedList prints the numbered saved list. An empty list prints
// nothing, which is the terminal's way of hiding it.
func (t *Terminal) RenderSavedList(rows []ops.Row) {
	t.rows = rows
	t.listVisible = len(rows) > 0
	if !t.listVisible {
		return
	}

	fmt.Fprintln(t.w)
	fmt.Fprintln(t.w, Bold("Saved recipes"))
	WriteNumbered(t.w, t.RowNames(), MaxListNameWidth)
}

// PrintNumbered prints names as a numbered list without cutting them.
func (t *Terminal) PrintNumbered(names []string) {
	WriteNumbered(t.w, names, 0)
}

// RenderRemix prints the remix panel.
func (t *Terminal) RenderRemix(text string) {
	fmt.Fprintln(t.w)
	fmt.Fprintln(t.w, Cyan(text))
}

// Rows returns the rows from the last saved-list render.
func (t *Terminal) Rows() []ops.Row {
	return t.rows
}

// ListVisible reports whether the saved list is currently shown.
func (t *Terminal) ListVisible() bool {
	return t.listVisible
}

// RowNames returns the names of the last rendered rows, in order.
func (t *Terminal) RowNames() []string {
	names := make([]string, len(t.rows))
	for i, row := range t.rows {
		names[i] = row.Name
	}
	return names
}

// Row finds a rendered row by index ("#2") or name prefix.
func (t *Terminal) Row(input string) (ops.Row, error) {
	name, err := Resolve("saved recipe", input, t.RowNames())
	if err != nil {
		return ops.Row{}, err
	}
	for _, row := range t.rows {
		if row.Name == name {
			return row, nil
		}
	}
	return ops.Row{}, &NotFoundError{Type: "saved recipe", ID: input}
}

// Println writes a plain line, for command feedback.
func (t *Terminal) Println(a ...any) {
	fmt.Fprintln(t.w, a...)
}

// Printf writes formatted command feedback.
func (t *Terminal) Printf(format string, a ...any) {
	fmt.Fprintf(t.w, format, a...)
}
