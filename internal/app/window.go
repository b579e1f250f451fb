package app

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/qline/internal/config"
	"github.com/kobzarvs/qline/internal/field"
)

const windowHeight = 3

// Window is the bottom-of-screen command box a field session draws into:
// a bordered three-row box with a hint label in the top border, an optional
// prompt segment, an optional default segment and the input area. It
// implements field.RenderSink and field.KeySource over one tcell.Screen.
type Window struct {
	screen tcell.Screen

	hint   string
	prompt string
	def    string
	limit  int // requested input limit, 0 = whole input area

	styleBox        tcell.Style
	styleHint       tcell.Style
	stylePrompt     tcell.Style
	styleText       tcell.Style
	styleDefault    tcell.Style
	styleSuggestion tcell.Style

	width    int
	top      int // top row of the box
	contentY int
	inputX   int

	lastText       string
	lastSuggestion string
	lastCursor     int
	cursorVisible  bool
}

func NewWindow(s tcell.Screen, theme config.Theme, hint, prompt, def string, limit int) *Window {
	w := &Window{
		screen: s,
		hint:   hint,
		prompt: prompt,
		def:    def,
		limit:  limit,
	}
	bg := tcell.GetColor(theme.Background)
	w.styleBox = tcell.StyleDefault.Background(bg).Foreground(tcell.GetColor(theme.BoxForeground))
	w.styleHint = tcell.StyleDefault.Background(bg).Foreground(tcell.GetColor(theme.HintForeground)).Dim(true)
	w.stylePrompt = tcell.StyleDefault.Background(bg).Foreground(tcell.GetColor(theme.PromptForeground)).Bold(true)
	w.styleText = tcell.StyleDefault.Background(bg).Foreground(tcell.GetColor(theme.TextForeground))
	w.styleDefault = tcell.StyleDefault.Background(bg).Foreground(tcell.GetColor(theme.DefaultForeground)).Bold(true)
	w.styleSuggestion = tcell.StyleDefault.Background(bg).Foreground(tcell.GetColor(theme.SuggestionForeground)).Dim(true)
	w.layout()
	w.drawChrome()
	return w
}

// InputWidth reports how many cells the input area spans; the effective
// field bound can never exceed it.
func (w *Window) InputWidth() int {
	n := w.width - w.inputX - 2
	if n < 0 {
		n = 0
	}
	return n
}

func (w *Window) layout() {
	width, height := w.screen.Size()
	w.width = width
	w.top = height - windowHeight
	if w.top < 0 {
		w.top = 0
	}
	w.contentY = w.top + 1

	x := 2
	if w.prompt != "" {
		x += 2 + runewidth.StringWidth(w.prompt) + 2 + 1 + 2 // pad, text, pad, bar, pad
	}
	if w.def != "" {
		seg := runewidth.StringWidth(w.def) + 6
		if lbl := runewidth.StringWidth("Default:") + 2; lbl > seg {
			seg = lbl
		}
		x += seg + 1 + 2
	}
	w.inputX = x
}

// drawChrome paints the box, hint label and the prompt/default segments.
// The input area itself is painted by DrawField.
func (w *Window) drawChrome() {
	right := w.width - 1
	for x := 1; x < right; x++ {
		w.screen.SetContent(x, w.top, '─', nil, w.styleBox)
		w.screen.SetContent(x, w.top+2, '─', nil, w.styleBox)
	}
	w.screen.SetContent(0, w.top, '┌', nil, w.styleBox)
	w.screen.SetContent(right, w.top, '┐', nil, w.styleBox)
	w.screen.SetContent(0, w.contentY, '│', nil, w.styleBox)
	w.screen.SetContent(right, w.contentY, '│', nil, w.styleBox)
	w.screen.SetContent(0, w.top+2, '└', nil, w.styleBox)
	w.screen.SetContent(right, w.top+2, '┘', nil, w.styleBox)

	w.drawString(1, w.top, w.hint, w.styleHint)

	x := 2
	if w.prompt != "" {
		x = w.drawString(x, w.contentY, "  "+w.prompt+"  ", w.stylePrompt)
		w.drawSeparator(x)
		x += 3
	}
	if w.def != "" {
		seg := runewidth.StringWidth(w.def) + 6
		if lbl := runewidth.StringWidth("Default:") + 2; lbl > seg {
			seg = lbl
		}
		w.drawString(x, w.top, "Default:", w.styleBox)
		w.drawString(x, w.contentY, `  "`+w.def+`"  `, w.styleDefault)
		w.drawSeparator(x + seg)
	}
}

// drawSeparator draws the ┬ │ ┴ column splitting two box segments.
func (w *Window) drawSeparator(x int) {
	if x >= w.width-1 {
		return
	}
	w.screen.SetContent(x, w.top, '┬', nil, w.styleBox)
	w.screen.SetContent(x, w.contentY, '│', nil, w.styleBox)
	w.screen.SetContent(x, w.top+2, '┴', nil, w.styleBox)
}

func (w *Window) drawString(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		if x >= w.width-1 {
			break
		}
		w.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// DrawField renders the field state into the input area: underscore
// placeholders when a limit is set, the text, the dimmed suggestion suffix
// and the cursor.
func (w *Window) DrawField(text, suggestion string, cursor, bound int) {
	w.lastText, w.lastSuggestion, w.lastCursor = text, suggestion, cursor
	w.paintField()
	w.screen.Show()
}

func (w *Window) paintField() {
	avail := w.InputWidth()
	placeholders := 0
	if w.limit > 0 {
		placeholders = w.limit
		if placeholders > avail {
			placeholders = avail
		}
	}
	for i := 0; i < avail; i++ {
		ch := ' '
		if i < placeholders {
			ch = '_'
		}
		w.screen.SetContent(w.inputX+i, w.contentY, ch, nil, w.styleText)
	}

	end := w.inputX + avail
	x := w.drawClipped(w.inputX, end, w.lastText, w.styleText)
	w.drawClipped(x, end, w.lastSuggestion, w.styleSuggestion)

	if w.cursorVisible {
		cx := w.inputX + runewidth.StringWidth(string([]rune(w.lastText)[:w.lastCursor]))
		if cx >= end && end > w.inputX {
			cx = end - 1
		}
		w.screen.ShowCursor(cx, w.contentY)
	}
}

func (w *Window) drawClipped(x, end int, s string, style tcell.Style) int {
	for _, r := range s {
		if x >= end {
			break
		}
		w.screen.SetContent(x, w.contentY, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

func (w *Window) SetCursorVisible(visible bool) {
	w.cursorVisible = visible
	if !visible {
		w.screen.HideCursor()
	}
	w.paintField()
	w.screen.Show()
}

// Next blocks for the next decoded key event. Resize events repaint the
// chrome and current field state; unbound keys are swallowed.
func (w *Window) Next() (field.Key, error) {
	for {
		ev := w.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if k, ok := DecodeKey(ev); ok {
				return k, nil
			}
		case *tcell.EventResize:
			w.screen.Sync()
			w.screen.Clear()
			w.layout()
			w.drawChrome()
			w.paintField()
			w.screen.Show()
		case nil:
			return field.Key{}, errors.New("input stream closed")
		}
	}
}
