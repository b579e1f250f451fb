package app

import (
	"errors"
	"flag"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qline/internal/config"
	"github.com/kobzarvs/qline/internal/field"
	"github.com/kobzarvs/qline/internal/history"
	"github.com/kobzarvs/qline/internal/logger"
	"github.com/kobzarvs/qline/internal/pathcomp"
)

// App is the top-level runtime for the qline demo binary: one field session
// against the real terminal, result printed to stdout.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	fs := flag.NewFlagSet("qline", flag.ContinueOnError)
	pathMode := fs.Bool("path", false, "path field with directory completion")
	prompt := fs.String("prompt", "", "prompt segment shown left of the input")
	def := fs.String("default", "", "result committed when the field is left empty")
	limit := fs.Int("limit", 0, "maximum input length, 0 = window width")
	debug := fs.Bool("debug", false, "verbose logging")
	if err := fs.Parse(a.args); err != nil {
		return err
	}

	if err := logger.Init(*debug); err != nil {
		return err
	}
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	histDir, err := cfg.HistoryDir()
	if err != nil {
		return err
	}
	scope := "input"
	hint := "Input:"
	var deco field.Decorator
	if *pathMode {
		scope = "path"
		hint = "Path:"
		deco = pathcomp.New()
	}
	store, err := history.Open(histDir, scope)
	if err != nil {
		return err
	}
	store.Trim(cfg.Field.HistoryLimit)

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}

	lim := *limit
	if lim <= 0 {
		lim = cfg.Field.DefaultBound
	}
	win := NewWindow(s, cfg.Theme, hint, *prompt, *def, lim)

	bound := lim
	if bound <= 0 || bound > win.InputWidth() {
		bound = win.InputWidth()
	}
	if bound <= 0 {
		s.Fini()
		return errors.New("window too narrow for an input field")
	}

	f, err := field.New(field.Options{
		Prompt:    *prompt,
		Default:   *def,
		Bound:     bound,
		Store:     store,
		Sink:      win,
		Decorator: deco,
	})
	if err != nil {
		s.Fini()
		return err
	}

	res, err := f.Run(win)
	s.Fini()
	if err != nil {
		return err
	}
	out := res.Text
	if !res.Committed {
		out = *def
	}
	fmt.Println(out)
	return nil
}
