package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qline/internal/field"
)

// DecodeKey translates a raw tcell key event into the field's symbolic key
// set. Readline-style control aliases map onto the same symbols as the
// navigation keys. Unbound keys are dropped.
func DecodeKey(ev *tcell.EventKey) (field.Key, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return field.Key{Code: field.KeyConfirm}, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return field.Key{Code: field.KeyCancel}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return field.Key{Code: field.KeyBackspace}, true
	case tcell.KeyDelete:
		return field.Key{Code: field.KeyDelete}, true
	case tcell.KeyLeft, tcell.KeyCtrlB:
		return field.Key{Code: field.KeyLeft}, true
	case tcell.KeyRight, tcell.KeyCtrlF:
		return field.Key{Code: field.KeyRight}, true
	case tcell.KeyHome, tcell.KeyCtrlA:
		return field.Key{Code: field.KeyHome}, true
	case tcell.KeyEnd, tcell.KeyCtrlE:
		return field.Key{Code: field.KeyEnd}, true
	case tcell.KeyUp, tcell.KeyCtrlP:
		return field.Key{Code: field.KeyHistoryUp}, true
	case tcell.KeyDown, tcell.KeyCtrlN:
		return field.Key{Code: field.KeyHistoryDown}, true
	case tcell.KeyTab:
		return field.Key{Code: field.KeyCompleteNext}, true
	case tcell.KeyBacktab:
		return field.Key{Code: field.KeyCompletePrev}, true
	case tcell.KeyRune:
		return field.Rune(ev.Rune()), true
	}
	return field.Key{}, false
}
