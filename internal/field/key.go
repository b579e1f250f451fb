package field

// KeyCode enumerates the symbolic keys a field session reacts to. Raw
// terminal escape decoding is the caller's job; the field never sees
// native key codes.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyConfirm
	KeyCancel
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyHistoryUp
	KeyHistoryDown
	KeyCompleteNext
	KeyCompletePrev
)

// Key is one decoded key event. Rune is set only for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

func Rune(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

func (c KeyCode) String() string {
	switch c {
	case KeyRune:
		return "rune"
	case KeyConfirm:
		return "confirm"
	case KeyCancel:
		return "cancel"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyHistoryUp:
		return "history-up"
	case KeyHistoryDown:
		return "history-down"
	case KeyCompleteNext:
		return "complete-next"
	case KeyCompletePrev:
		return "complete-prev"
	}
	return "unknown"
}
