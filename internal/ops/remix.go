package ops

import (
	"context"

	"github.com/jacksmith/mealmix/internal/model"
	"go.uber.org/zap"
)

// Remixer requests remixes of the current recipe. It reads the current
// recipe but never changes it or the saved list.
type Remixer struct {
	source  RemixSource
	current *model.Current
	view    View
	log     *zap.Logger
}

// NewRemixer returns a Remixer reading from current. A nil logger discards logs.
func NewRemixer(source RemixSource, current *model.Current, view View, log *zap.Logger) *Remixer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Remixer{source: source, current: current, view: view, log: log}
}

// Remix remixes the current recipe with theme and renders the result.
func (m *Remixer) Remix(ctx context.Context, theme string) Result {
	rec, ok := m.Begin()
	if !ok {
		return Result{Outcome: OutcomeNoRecipe, Err: ErrNoRecipe}
	}
	text, err := m.Fetch(ctx, rec, theme)
	return m.Apply(text, err)
}

// Begin snapshots the current recipe and shows the loading message.
// If no recipe is loaded it shows a prompt to load one and returns false.
func (m *Remixer) Begin() (*model.Recipe, bool) {
	rec, ok := m.current.Get()
	if !ok {
		m.view.RenderRemix(MsgRemixNeedsRecipe)
		return nil, false
	}
	m.view.RenderRemix(MsgLoading)
	return rec, true
}

// Fetch calls the remix source. It may run on any goroutine.
func (m *Remixer) Fetch(ctx context.Context, rec *model.Recipe, theme string) (string, error) {
	return m.source.Remix(ctx, rec, theme)
}

// Apply renders the remix text, or the generic failure message.
func (m *Remixer) Apply(text string, err error) Result {
	if err != nil {
		m.log.Warn("remix failed", zap.Error(err))
		m.view.RenderRemix(MsgRemixFailed)
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	m.view.RenderRemix(text)
	return Result{Outcome: OutcomeRemixed}
}
