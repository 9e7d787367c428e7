package app

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/jacksmith/mealmix/internal/cli"
	"github.com/jacksmith/mealmix/internal/model"
	"github.com/jacksmith/mealmix/internal/ops"
	"go.uber.org/zap"
)

// Session commands, matched by unique prefix.
var commands = []string{
	"random", "search", "save", "saved", "select", "delete",
	"remix", "themes", "help", "quit", "exit",
}

const helpText = `Commands:
  random             load a random recipe
  search <name>      load a recipe by name
  save               save the current recipe
  saved              show saved recipes
  select <name|#>    load a saved recipe
  delete <name|#>    remove a saved recipe
  remix [theme|#]    remix the current recipe
  themes             list remix themes
  help               show this help
  quit               leave (Ctrl-D also works)
Commands may be shortened to any unique prefix.`

type fetchKind int

const (
	fetchRandom fetchKind = iota
	fetchSaved
	fetchSearch
)

// Events delivered to the loop goroutine.
type (
	lineEvent   struct{ line string }
	inputClosed struct{ err error }
	recipeDone  struct {
		seq     uint64
		kind    fetchKind
		name    string
		recipe  *model.Recipe
		recipes []model.Recipe
		err     error
	}
	remixDone struct {
		seq  uint64
		text string
		err  error
	}
)

// Options configures a Session.
type Options struct {
	In  io.Reader
	Out io.Writer
	// Interactive prints a prompt and reads input while requests are in
	// flight. Otherwise each line waits for the previous one to finish,
	// which keeps piped input deterministic.
	Interactive bool
	Themes      []string
}

// Session is the interactive event loop. Input lines and fetch completions
// arrive as events on one channel and are handled on one goroutine, which
// is the only one that touches the current recipe and the saved list.
// Fetches run on their own goroutines.
//
// Every recipe-replacing request gets a sequence number; a completion for
// an older request than the latest one is dropped. Remixes are sequenced
// separately.
type Session struct {
	*App
	in          io.Reader
	interactive bool
	themes      []string

	events   chan any
	ready    chan struct{}
	seq      uint64
	remixSeq uint64
	pending  int
}

// NewSession wires deps into a session.
func NewSession(deps Deps, opts Options) *Session {
	a := New(deps, opts.Out)
	themes := opts.Themes
	if len(themes) == 0 {
		themes = []string{"Make it vegan"}
	}
	return &Session{
		App:         a,
		in:          opts.In,
		interactive: opts.Interactive,
		themes:      themes,
		events:      make(chan any),
		ready:       make(chan struct{}, 1),
	}
}

// Run loads the saved list, fetches a random recipe and then handles input
// until quit, end of input or ctx is cancelled. At end of input it waits
// for in-flight requests before returning.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.Saved.SetSelectHandler(func(ctx context.Context, name string) {
		if strings.TrimSpace(name) == "" {
			return
		}
		s.startByName(ctx, name, fetchSaved)
	})

	s.Saved.Initialize(ctx)
	s.startRandom(ctx)
	go s.readInput(ctx)

	inputOpen := true
	for {
		if !inputOpen && s.pending == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-s.events:
			switch ev := ev.(type) {
			case inputClosed:
				inputOpen = false
				if ev.err != nil {
					s.Log.Warn("failed to read input", zap.Error(ev.err))
				}
				continue
			case lineEvent:
				if quit := s.handleLine(ctx, ev.line); quit {
					return nil
				}
			default:
				s.handle(ev)
			}
		}
		if s.pending == 0 {
			s.signalReady()
		}
		if s.interactive {
			s.View.Printf("%s", cli.Gray("> "))
		}
	}
}

// readInput posts each line as an event. Without a terminal it waits
// until the loop is idle before reading the next line.
func (s *Session) readInput(ctx context.Context) {
	scanner := bufio.NewScanner(s.in)
	for {
		if !s.interactive {
			select {
			case <-s.ready:
			case <-ctx.Done():
				return
			}
		}
		if !scanner.Scan() {
			s.post(ctx, inputClosed{err: scanner.Err()})
			return
		}
		if !s.post(ctx, lineEvent{line: scanner.Text()}) {
			return
		}
	}
}

func (s *Session) post(ctx context.Context, ev any) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Session) signalReady() {
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

func (s *Session) startRandom(ctx context.Context) {
	s.seq++
	seq := s.seq
	s.View.RenderRecipeMessage(ops.MsgLoading)
	s.pending++
	go func() {
		rec, err := s.Recipes.FetchRandom(ctx)
		s.post(ctx, recipeDone{seq: seq, kind: fetchRandom, recipe: rec, err: err})
	}()
}

func (s *Session) startByName(ctx context.Context, name string, kind fetchKind) {
	s.seq++
	seq := s.seq
	if kind == fetchSaved {
		s.View.RenderRecipeMessage(ops.MsgLoadingSaved)
	} else {
		s.View.RenderRecipeMessage(ops.MsgLoading)
	}
	s.pending++
	go func() {
		recipes, err := s.Recipes.FetchByName(ctx, name)
		s.post(ctx, recipeDone{seq: seq, kind: kind, name: name, recipes: recipes, err: err})
	}()
}

func (s *Session) startRemix(ctx context.Context, theme string) {
	rec, ok := s.Remixer.Begin()
	if !ok {
		return
	}
	s.remixSeq++
	seq := s.remixSeq
	s.pending++
	go func() {
		text, err := s.Remixer.Fetch(ctx, rec, theme)
		s.post(ctx, remixDone{seq: seq, text: text, err: err})
	}()
}

// handle applies a completion event.
func (s *Session) handle(ev any) ops.Result {
	switch ev := ev.(type) {
	case recipeDone:
		s.pending--
		if ev.seq != s.seq {
			s.Log.Debug("dropping stale recipe response",
				zap.Uint64("seq", ev.seq), zap.Uint64("latest", s.seq), zap.String("name", ev.name))
			return ops.Result{Outcome: ops.OutcomeStale}
		}
		switch ev.kind {
		case fetchRandom:
			return s.Recipes.ApplyRandom(ev.recipe, ev.err)
		case fetchSearch:
			return s.Recipes.ApplySearch(ev.name, ev.recipes, ev.err)
		}
		return s.Recipes.ApplyByName(ev.name, ev.recipes, ev.err)
	case remixDone:
		s.pending--
		if ev.seq != s.remixSeq {
			s.Log.Debug("dropping stale remix response",
				zap.Uint64("seq", ev.seq), zap.Uint64("latest", s.remixSeq))
			return ops.Result{Outcome: ops.OutcomeStale}
		}
		return s.Remixer.Apply(ev.text, ev.err)
	}
	return ops.Result{}
}

// handleLine runs one command. It returns true when the session should end.
func (s *Session) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	word, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	cmd, err := cli.MatchCommand(word, commands)
	if err != nil {
		s.View.Println(cli.Red(cli.FormatError(err)))
		return false
	}

	switch cmd {
	case "random":
		s.startRandom(ctx)
	case "search":
		if arg == "" {
			s.View.Println(cli.Red(cli.FormatError(&cli.ValidationError{Field: "search", Message: "name is required"})))
			return false
		}
		s.startByName(ctx, arg, fetchSearch)
	case "save":
		s.reportSave(s.Saved.SaveCurrent(ctx))
	case "saved":
		rows := s.Saved.Rows()
		if len(rows) == 0 {
			s.View.Println(cli.Gray("No saved recipes yet."))
		}
		s.View.RenderSavedList(rows)
	case "select", "delete":
		row, err := s.View.Row(arg)
		if err != nil {
			s.View.Println(cli.Red(cli.FormatError(err)))
			return false
		}
		if cmd == "select" {
			row.OnSelect(ctx)
		} else {
			row.OnDelete(ctx)
			s.View.Println(cli.Gray("Removed " + strconv.Quote(row.Name) + "."))
		}
	case "remix":
		theme, err := ResolveTheme(arg, s.themes)
		if err != nil {
			s.View.Println(cli.Red(cli.FormatError(err)))
			return false
		}
		s.startRemix(ctx, theme)
	case "themes":
		s.View.PrintNumbered(s.themes)
	case "help":
		s.View.Println(helpText)
	case "quit", "exit":
		return true
	}
	return false
}

func (s *Session) reportSave(res ops.Result) {
	switch res.Outcome {
	case ops.OutcomeSaved:
		rec, _ := s.Current.Get()
		s.View.Println(cli.Green("Saved " + strconv.Quote(rec.Name) + "."))
	case ops.OutcomeUnchanged:
		s.View.Println(cli.Gray("Already saved."))
	case ops.OutcomeNoRecipe:
		s.View.Println(cli.Yellow(ops.MsgRemixNeedsRecipe))
	}
}

// ResolveTheme picks a theme by index ("#2") or prefix. Text matching no
// theme is used as a custom theme. An empty argument picks the first theme.
func ResolveTheme(arg string, themes []string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		if len(themes) == 0 {
			return "", &cli.ValidationError{Field: "theme", Message: "no themes configured"}
		}
		return themes[0], nil
	}
	theme, err := cli.Resolve("theme", arg, themes)
	var nf *cli.NotFoundError
	if errors.As(err, &nf) {
		if _, isIndex := cli.ParseIndex(arg); isIndex {
			return "", err
		}
		return arg, nil
	}
	return theme, err
}
