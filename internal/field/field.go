// Package field implements an interactive single-line entry field: cursor
// editing under a width bound, browsing of persisted history with in-place
// editing of recalled entries, and incremental prefix autocomplete fed by
// history plus an externally extended candidate pool.
//
// The field consumes already-decoded symbolic keys and draws through a
// RenderSink; it owns no terminal state of its own.
package field

import (
	"errors"

	"github.com/kobzarvs/qline/internal/logger"
)

// RenderSink is the drawing capability handed to a field at construction.
// DrawField receives the visible text, the dimmed suggestion suffix to show
// past the cursor ("" for none), the cursor offset and the field bound.
type RenderSink interface {
	DrawField(text, suggestion string, cursor, bound int)
	SetCursorVisible(visible bool)
}

// KeySource delivers decoded key events. Next is the only blocking point of
// a session.
type KeySource interface {
	Next() (Key, error)
}

// Store is the history persistence a session reads at construction and
// appends to on commit.
type Store interface {
	Entries() []string
	Append(line string) error
}

// Decorator lets a field variant react to changes of the active text, e.g.
// a path field injecting directory listings into the candidate pool.
type Decorator interface {
	OnChange(active string, c *Completion)
}

type Status int

const (
	StatusEditing Status = iota
	StatusCommitted
	StatusCancelled
)

// Result is the outcome of a session. Text is set only on commit; cancelled
// sessions leave it empty and the caller applies its own default.
type Result struct {
	Text      string
	Committed bool
}

// Options configures a single field session.
type Options struct {
	Prompt    string
	Default   string
	Bound     int
	Store     Store
	Sink      RenderSink
	Decorator Decorator
}

// Field is the editing state machine: live buffer, history pointer, saved
// draft and completion engine, advanced one key event at a time.
type Field struct {
	prompt string
	def    string
	bound  int

	buf     Buffer
	entries []string
	pointer int     // index into entries; len(entries) = live buffer
	draft   *Buffer // captured when browsing starts, nil otherwise

	eng    *Completion
	sink   RenderSink
	store  Store
	deco   Decorator
	status Status
	result string
}

func New(opts Options) (*Field, error) {
	if opts.Bound <= 0 {
		return nil, errors.New("field: bound must be positive")
	}
	if opts.Store == nil {
		return nil, errors.New("field: store is required")
	}
	entries := opts.Store.Entries()
	f := &Field{
		prompt:  opts.Prompt,
		def:     opts.Default,
		bound:   opts.Bound,
		buf:     NewBuffer(opts.Bound),
		entries: entries,
		pointer: len(entries),
		eng:     NewCompletion(entries, opts.Bound),
		sink:    opts.Sink,
		store:   opts.Store,
		deco:    opts.Decorator,
	}
	return f, nil
}

func (f *Field) Status() Status { return f.status }

func (f *Field) Text() string { return f.buf.String() }

func (f *Field) Cursor() int { return f.buf.Cursor() }

func (f *Field) Completion() *Completion { return f.eng }

// Run drives the session until commit or cancel. The committed line (the
// default when the final text is empty) is appended to the store; append
// and key-source failures abort the session.
func (f *Field) Run(keys KeySource) (Result, error) {
	if f.sink != nil {
		f.sink.SetCursorVisible(true)
		defer f.sink.SetCursorVisible(false)
	}
	f.redraw()
	for {
		k, err := keys.Next()
		if err != nil {
			return Result{}, err
		}
		st, err := f.HandleKey(k)
		if err != nil {
			return Result{}, err
		}
		switch st {
		case StatusCommitted:
			logger.Info("field committed", "len", len(f.result))
			return Result{Text: f.result, Committed: true}, nil
		case StatusCancelled:
			logger.Info("field cancelled")
			return Result{}, nil
		}
	}
}

// HandleKey applies one key event and reports the session status. The only
// error source is the history append on commit.
func (f *Field) HandleKey(k Key) (Status, error) {
	logger.Debug("field key", "code", k.Code.String())
	switch k.Code {
	case KeyConfirm:
		// Mid-browse Enter returns to the live draft instead of committing.
		if f.browsing() {
			f.returnToLive()
			break
		}
		final := f.buf.String()
		if final == "" {
			final = f.def
		}
		if err := f.store.Append(final); err != nil {
			return f.status, err
		}
		f.result = final
		f.status = StatusCommitted

	case KeyCancel:
		if _, ok := f.eng.Current(); ok {
			f.eng.Clear()
		} else if f.browsing() {
			f.returnToLive()
		} else {
			f.status = StatusCancelled
		}

	case KeyBackspace:
		f.pullToLive()
		if f.buf.DeleteBefore() {
			f.afterMutation()
		}

	case KeyDelete:
		f.pullToLive()
		if f.buf.DeleteAt() {
			f.afterMutation()
		}

	case KeyLeft:
		f.buf.MoveLeft()

	case KeyRight:
		if !f.acceptSuggestion() {
			f.buf.MoveRight()
		}

	case KeyHome:
		f.buf.MoveHome()

	case KeyEnd:
		f.buf.MoveEnd()

	case KeyHistoryUp:
		f.older()

	case KeyHistoryDown:
		f.newer()

	case KeyCompleteNext:
		f.eng.Refresh(f.buf.String(), false)
		f.eng.Cycle(true)

	case KeyCompletePrev:
		f.eng.Refresh(f.buf.String(), false)
		f.eng.Cycle(false)

	case KeyRune:
		f.pullToLive()
		if f.buf.Insert(k.Rune) {
			f.afterMutation()
		}
	}

	f.check()
	f.redraw()
	return f.status, nil
}

func (f *Field) browsing() bool {
	return f.pointer < len(f.entries)
}

// older moves the history pointer toward the oldest entry, skipping entries
// wider than the bound. Entering browse mode captures the live draft.
func (f *Field) older() {
	i := f.pointer - 1
	for i >= 0 && len([]rune(f.entries[i])) > f.bound {
		i--
	}
	if i < 0 {
		return
	}
	if !f.browsing() {
		d := f.buf.Clone()
		f.draft = &d
	}
	f.pointer = i
	f.buf.SetText(f.entries[i])
	f.refreshForActiveText()
}

// newer mirrors older toward the live buffer; reaching it restores the
// saved draft verbatim.
func (f *Field) newer() {
	if !f.browsing() {
		return
	}
	i := f.pointer + 1
	for i < len(f.entries) && len([]rune(f.entries[i])) > f.bound {
		i++
	}
	if i == len(f.entries) {
		f.returnToLive()
		return
	}
	f.pointer = i
	f.buf.SetText(f.entries[i])
	f.refreshForActiveText()
}

// pullToLive detaches the buffer from history before any edit: the viewed
// entry stays in the buffer as live text, the draft is dropped and the
// pointer returns to the live position. Idempotent outside browse mode.
func (f *Field) pullToLive() {
	if !f.browsing() {
		return
	}
	f.pointer = len(f.entries)
	f.draft = nil
}

// returnToLive leaves browse mode restoring the draft that was captured
// when browsing started.
func (f *Field) returnToLive() {
	f.pointer = len(f.entries)
	if f.draft != nil {
		f.buf = f.draft.Clone()
		f.buf.MoveEnd()
		f.draft = nil
	}
	f.refreshForActiveText()
}

// acceptSuggestion completes the buffer to the current suggestion. It only
// fires with the cursor at the end of the text, where a plain cursor move
// has no effect; elsewhere Right stays a cursor move.
func (f *Field) acceptSuggestion() bool {
	cur, ok := f.eng.Current()
	if !ok || f.buf.Cursor() != f.buf.Len() {
		return false
	}
	f.pullToLive()
	f.buf.SetText(cur)
	f.eng.Clear()
	f.notifyDecorator()
	return true
}

// afterMutation runs after every buffer edit: the decorator observes the new
// active text and the match list is rebuilt, invalidating the suggestion.
func (f *Field) afterMutation() {
	f.notifyDecorator()
	f.eng.Refresh(f.buf.String(), true)
}

// refreshForActiveText rebuilds matches after the active text changed
// without an edit (history navigation, draft restore).
func (f *Field) refreshForActiveText() {
	f.notifyDecorator()
	f.eng.Refresh(f.buf.String(), true)
}

func (f *Field) notifyDecorator() {
	if f.deco != nil {
		f.deco.OnChange(f.buf.String(), f.eng)
	}
}

func (f *Field) redraw() {
	if f.sink == nil {
		return
	}
	f.sink.DrawField(f.buf.String(), f.eng.Suffix(f.buf.String()), f.buf.Cursor(), f.bound)
}

// check asserts the core invariants after every event. A violation is a
// programming error, not a user error.
func (f *Field) check() {
	n := f.buf.Len()
	if c := f.buf.Cursor(); c < 0 || c > n || n > f.bound {
		logger.Panic("field state out of range",
			"cursor", f.buf.Cursor(), "len", n, "bound", f.bound)
	}
	if (f.draft != nil) != f.browsing() {
		logger.Panic("draft out of sync with history pointer",
			"pointer", f.pointer, "entries", len(f.entries), "draft", f.draft != nil)
	}
}
